package texture

import (
	"fmt"
	"strings"
)

// Format identifies a pixel or block-compressed texture layout.
type Format int

const (
	RGBA8 Format = iota
	BC1
	BC3
	BC7
)

// BlockDim is the edge length of a compressed block in pixels.
const BlockDim = 4

func (f Format) String() string {
	switch f {
	case RGBA8:
		return "RGBA8"
	case BC1:
		return "BC1"
	case BC3:
		return "BC3"
	case BC7:
		return "BC7"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat converts a format name (case-insensitive) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "rgba8", "rgba":
		return RGBA8, nil
	case "bc1", "dxt1":
		return BC1, nil
	case "bc3", "dxt5":
		return BC3, nil
	case "bc7":
		return BC7, nil
	default:
		return 0, fmt.Errorf("unknown texture format: %q", s)
	}
}

// Compressed reports whether f is a 4x4 block format.
func (f Format) Compressed() bool {
	return f == BC1 || f == BC3 || f == BC7
}

// BlockBytes returns the size of one 4x4 block, or 0 for uncompressed formats.
func (f Format) BlockBytes() int {
	switch f {
	case BC1:
		return 8
	case BC3, BC7:
		return 16
	default:
		return 0
	}
}

// AlignedSize rounds both dimensions up to a multiple of the block size.
func AlignedSize(w, h int) (bw, bh int) {
	return (w + BlockDim - 1) &^ (BlockDim - 1), (h + BlockDim - 1) &^ (BlockDim - 1)
}

// BlockCount returns the number of blocks along each axis.
func BlockCount(w, h int) (nx, ny int) {
	bw, bh := AlignedSize(w, h)
	return bw / BlockDim, bh / BlockDim
}

// DataSize returns the number of bytes a w x h texture occupies.
// BC1 stores half a byte per aligned pixel, BC3 and BC7 one byte.
func (f Format) DataSize(w, h int) int {
	if f == RGBA8 {
		return w * h * 4
	}
	nx, ny := BlockCount(w, h)
	return nx * ny * f.BlockBytes()
}

// Texture is a texture in memory. Width and Height are the logical image
// size; compressed data always covers the block-aligned area.
type Texture struct {
	Width  int
	Height int
	Format Format
	Data   []byte
}

// New allocates a zeroed texture of the given format.
func New(w, h int, f Format) *Texture {
	return &Texture{Width: w, Height: h, Format: f, Data: make([]byte, f.DataSize(w, h))}
}

// Validate checks the dimensions and the data length.
func (t *Texture) Validate() error {
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("invalid texture dimensions %dx%d", t.Width, t.Height)
	}
	if expected := t.Format.DataSize(t.Width, t.Height); len(t.Data) != expected {
		return fmt.Errorf("expected %d bytes for %dx%d %s, got %d", expected, t.Width, t.Height, t.Format, len(t.Data))
	}
	return nil
}
