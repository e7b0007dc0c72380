package bc

import (
	"fmt"

	"github.com/yoshiyoshyosh/bcbench/internal/ir"
	"github.com/yoshiyoshyosh/bcbench/internal/texture"
)

// DecodeBlock decodes one compressed block of format f.
func DecodeBlock(f texture.Format, src []byte, out *Block) error {
	switch f {
	case texture.BC1:
		DecodeBC1Block(src, out, false)
	case texture.BC3:
		DecodeBC3Block(src, out)
	case texture.BC7:
		return DecodeBC7Block(src, out)
	default:
		return fmt.Errorf("cannot decode %s blocks", f)
	}
	return nil
}

// Decompress decodes a compressed texture to an RGBA image covering the
// block-aligned area. Callers crop to the logical size when needed.
func Decompress(tex *texture.Texture, threads int) (*ir.RGBAImage, error) {
	if err := tex.Validate(); err != nil {
		return nil, err
	}
	if !tex.Format.Compressed() {
		return nil, fmt.Errorf("texture format %s is not block compressed", tex.Format)
	}
	bw, bh := texture.AlignedSize(tex.Width, tex.Height)
	nx, ny := bw/texture.BlockDim, bh/texture.BlockDim
	size := tex.Format.BlockBytes()
	out := ir.New(bw, bh)

	err := ForEachRow(ny, threads, func(by int) error {
		var b Block
		for bx := 0; bx < nx; bx++ {
			off := (by*nx + bx) * size
			if err := DecodeBlock(tex.Format, tex.Data[off:off+size], &b); err != nil {
				return fmt.Errorf("block (%d, %d): %w", bx, by, err)
			}
			StoreBlock(out, bx, by, &b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
