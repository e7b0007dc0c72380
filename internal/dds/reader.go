package dds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/yoshiyoshyosh/bcbench/internal/texture"
)

// ErrNotDDS is returned when the magic number is missing.
var ErrNotDDS = errors.New("dds: not a DDS file")

// MaxDimension is the largest width or height accepted from a header.
const MaxDimension = 16384

// Info describes a DDS file without its pixel data.
type Info struct {
	Width       int
	Height      int
	Format      texture.Format
	FourCC      string // empty for uncompressed files
	DXGIFormat  int    // 0 unless a DX10 header is present
	MipMapCount int
	DataOffset  int
	DataSize    int // bytes of the top level
}

// GetInfo parses the headers of a DDS file held in memory.
func GetInfo(data []byte) (*Info, error) {
	return readInfo(bytes.NewReader(data))
}

func readInfo(r io.Reader) (*Info, error) {
	var m [4]byte
	if _, err := io.ReadFull(r, m[:]); err != nil {
		return nil, fmt.Errorf("dds: reading magic: %w", err)
	}
	if string(m[:]) != magic {
		return nil, ErrNotDDS
	}
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("dds: reading header: %w", err)
	}
	if h.Size != headerSize || h.PixelFormat.Size != pixelFormatSize {
		return nil, fmt.Errorf("dds: bad header size %d/%d", h.Size, h.PixelFormat.Size)
	}
	if h.Width == 0 || h.Height == 0 || h.Width > MaxDimension || h.Height > MaxDimension {
		return nil, fmt.Errorf("dds: invalid dimensions %dx%d", h.Width, h.Height)
	}

	info := &Info{
		Width:       int(h.Width),
		Height:      int(h.Height),
		MipMapCount: max(1, int(h.MipMapCount)),
		DataOffset:  4 + headerSize,
	}
	pf := h.PixelFormat
	switch {
	case pf.Flags&pfFourCC != 0:
		info.FourCC = string([]byte{byte(pf.FourCC), byte(pf.FourCC >> 8), byte(pf.FourCC >> 16), byte(pf.FourCC >> 24)})
		switch pf.FourCC {
		case fourCCDXT1:
			info.Format = texture.BC1
		case fourCCDXT5:
			info.Format = texture.BC3
		case fourCCDX10:
			var dx headerDX10
			if err := binary.Read(r, binary.LittleEndian, &dx); err != nil {
				return nil, fmt.Errorf("dds: reading DX10 header: %w", err)
			}
			info.DataOffset += 20
			info.DXGIFormat = int(dx.DXGIFormat)
			f, err := formatFromDXGI(dx.DXGIFormat)
			if err != nil {
				return nil, err
			}
			info.Format = f
		default:
			return nil, fmt.Errorf("dds: unsupported FourCC %q", info.FourCC)
		}
	case pf.Flags&pfRGB != 0 && pf.RGBBitCount == 32 &&
		pf.RBitMask == 0xff && pf.GBitMask == 0xff00 && pf.BBitMask == 0xff0000:
		info.Format = texture.RGBA8
	default:
		return nil, fmt.Errorf("dds: unsupported pixel format (flags %#x, %d bits)", pf.Flags, pf.RGBBitCount)
	}
	info.DataSize = info.Format.DataSize(info.Width, info.Height)
	return info, nil
}

func formatFromDXGI(f uint32) (texture.Format, error) {
	switch f {
	case dxgiBC1Unorm, dxgiBC1UnormSRGB:
		return texture.BC1, nil
	case dxgiBC3Unorm, dxgiBC3UnormSRGB:
		return texture.BC3, nil
	case dxgiBC7Unorm, dxgiBC7UnormSRGB:
		return texture.BC7, nil
	case dxgiR8G8B8A8Unorm:
		return texture.RGBA8, nil
	default:
		return 0, fmt.Errorf("dds: unsupported DXGI format %d", f)
	}
}

// Read parses a DDS file and returns its top mip level. Further mip levels
// are ignored.
func Read(r io.Reader) (*texture.Texture, error) {
	info, err := readInfo(r)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := io.CopyN(&buf, r, int64(info.DataSize)); err != nil {
		return nil, fmt.Errorf("dds: reading %d bytes of %s data: %w", info.DataSize, info.Format, err)
	}
	return &texture.Texture{Width: info.Width, Height: info.Height, Format: info.Format, Data: buf.Bytes()}, nil
}

// Decode parses a DDS file held in memory.
func Decode(data []byte) (*texture.Texture, error) {
	info, err := GetInfo(data)
	if err != nil {
		return nil, err
	}
	if end := info.DataOffset + info.DataSize; end > len(data) {
		return nil, fmt.Errorf("dds: %s data needs %d bytes, file has %d", info.Format, end, len(data))
	}
	pix := make([]byte, info.DataSize)
	copy(pix, data[info.DataOffset:])
	return &texture.Texture{Width: info.Width, Height: info.Height, Format: info.Format, Data: pix}, nil
}
