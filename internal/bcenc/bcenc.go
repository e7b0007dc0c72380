// Package bcenc is a quality-level BC1/BC3/BC7 encoder. BC1 and BC3 take an
// integer level (0-18, higher is slower and better); BC7 always emits mode 6
// blocks and can optimise for a luma-weighted error instead of plain RGBA.
package bcenc

import (
	"fmt"

	"github.com/yoshiyoshyosh/bcbench/internal/bc"
	"github.com/yoshiyoshyosh/bcbench/internal/ir"
	"github.com/yoshiyoshyosh/bcbench/internal/texture"
)

// Name identifies the engine in benchmark output.
const Name = "bcenc"

// MaxQuality is the highest BC1/BC3 level.
const MaxQuality = 18

// Params controls an encode.
type Params struct {
	Format     texture.Format
	Quality    int  // BC1/BC3 level, 0-18
	Perceptual bool // BC7 only
	Threads    int
}

// DefaultParams returns BC7 at the highest BC1/BC3 level on one thread.
func DefaultParams() Params {
	return Params{Format: texture.BC7, Quality: MaxQuality, Threads: 1}
}

// EncodePixels compresses img and returns Format.DataSize(w, h) bytes.
func EncodePixels(img *ir.RGBAImage, p Params) ([]byte, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("bcenc: %w", err)
	}
	if p.Quality < 0 || p.Quality > MaxQuality {
		return nil, fmt.Errorf("bcenc: quality %d out of range 0-%d", p.Quality, MaxQuality)
	}

	var encode func(b *bc.Block, dst []byte)
	switch p.Format {
	case texture.BC1:
		encode = func(b *bc.Block, dst []byte) {
			encodeColor(b, p.Quality, false, dst)
		}
	case texture.BC3:
		encode = func(b *bc.Block, dst []byte) {
			encodeAlpha(b, p.Quality, dst[0:8])
			encodeColor(b, p.Quality, true, dst[8:16])
		}
	case texture.BC7:
		metric := bc.Uniform
		if p.Perceptual {
			metric = perceptual
		}
		encode = func(b *bc.Block, dst []byte) {
			encodeMode6(b, metric, p.Perceptual, dst)
		}
	default:
		return nil, fmt.Errorf("bcenc: unsupported target format %s", p.Format)
	}

	nx, ny := texture.BlockCount(img.Width, img.Height)
	size := p.Format.BlockBytes()
	out := make([]byte, p.Format.DataSize(img.Width, img.Height))
	err := bc.ForEachRow(ny, p.Threads, func(by int) error {
		for bx := 0; bx < nx; bx++ {
			b := bc.ExtractBlock(img, bx, by)
			off := (by*nx + bx) * size
			encode(&b, out[off:off+size])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
