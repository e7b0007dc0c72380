// Package bc holds the block-level building blocks shared by the BC1, BC3 and
// BC7 encoders, and the decoders the benchmark uses to turn compressed data
// back into pixels.
package bc

import (
	"github.com/yoshiyoshyosh/bcbench/internal/ir"
	"github.com/yoshiyoshyosh/bcbench/internal/texture"
)

// Block is a 4x4 RGBA block, 16 pixels of R,G,B,A in row-major order.
type Block [64]byte

// ExtractBlock copies the 4x4 block at block coordinates (bx, by) out of img.
// Pixels past the right or bottom edge replicate the last column or row.
func ExtractBlock(img *ir.RGBAImage, bx, by int) Block {
	var b Block
	for y := 0; y < texture.BlockDim; y++ {
		sy := by*texture.BlockDim + y
		if sy >= img.Height {
			sy = img.Height - 1
		}
		for x := 0; x < texture.BlockDim; x++ {
			sx := bx*texture.BlockDim + x
			if sx >= img.Width {
				sx = img.Width - 1
			}
			src := img.Offset(sx, sy)
			copy(b[(y*4+x)*4:(y*4+x)*4+4], img.Pixels[src:src+4])
		}
	}
	return b
}

// StoreBlock writes a decoded block into img at block coordinates (bx, by),
// dropping pixels that fall outside the image.
func StoreBlock(img *ir.RGBAImage, bx, by int, b *Block) {
	for y := 0; y < texture.BlockDim; y++ {
		dy := by*texture.BlockDim + y
		if dy >= img.Height {
			break
		}
		for x := 0; x < texture.BlockDim; x++ {
			dx := bx*texture.BlockDim + x
			if dx >= img.Width {
				break
			}
			dst := img.Offset(dx, dy)
			copy(img.Pixels[dst:dst+4], b[(y*4+x)*4:(y*4+x)*4+4])
		}
	}
}

// Opaque reports whether every pixel of the block has alpha 255.
func (b *Block) Opaque() bool {
	for i := 3; i < len(b); i += 4 {
		if b[i] != 255 {
			return false
		}
	}
	return true
}

// ConstantAlpha reports whether all 16 alpha values are equal.
func (b *Block) ConstantAlpha() bool {
	for i := 7; i < len(b); i += 4 {
		if b[i] != b[3] {
			return false
		}
	}
	return true
}
