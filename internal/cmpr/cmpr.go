// Package cmpr converts between RGBA8 textures and BC1/BC3/BC7 textures.
// Encoding effort is set by a quality value in [0, 1]; blocks are spread
// over a configurable number of worker goroutines. Compressed sources are
// decoded, so Convert also serves as the decompression path.
package cmpr

import (
	"github.com/yoshiyoshyosh/bcbench/internal/bc"
	"github.com/yoshiyoshyosh/bcbench/internal/ir"
	"github.com/yoshiyoshyosh/bcbench/internal/texture"
)

// Name identifies the engine in benchmark output.
const Name = "cmpr"

// Options controls a conversion.
type Options struct {
	Quality float32 // 0..1
	Threads int
}

// DefaultOptions returns quality 0.05 on one thread.
func DefaultOptions() Options {
	return Options{Quality: 0.05, Threads: 1}
}

// Convert fills dst from src. Supported conversions are RGBA8 to a block
// format and a block format to RGBA8. dst.Data is allocated when nil.
func Convert(src, dst *texture.Texture, opts Options) error {
	if src.Width <= 0 || src.Height <= 0 {
		return newError(ErrCodeBadDimensions, "source is %dx%d", src.Width, src.Height)
	}
	if dst.Width != src.Width || dst.Height != src.Height {
		return newError(ErrCodeBadDimensions, "source is %dx%d, destination %dx%d", src.Width, src.Height, dst.Width, dst.Height)
	}
	if opts.Quality < 0 || opts.Quality > 1 {
		return newError(ErrCodeBadQuality, "%g", opts.Quality)
	}
	if len(src.Data) != src.Format.DataSize(src.Width, src.Height) {
		return newError(ErrCodeBufferSize, "source holds %d bytes, %s needs %d", len(src.Data), src.Format, src.Format.DataSize(src.Width, src.Height))
	}
	want := dst.Format.DataSize(dst.Width, dst.Height)
	if dst.Data == nil {
		dst.Data = make([]byte, want)
	}
	if len(dst.Data) != want {
		return newError(ErrCodeBufferSize, "destination holds %d bytes, %s needs %d", len(dst.Data), dst.Format, want)
	}

	switch {
	case src.Format == texture.RGBA8 && dst.Format.Compressed():
		return compress(src, dst, opts)
	case src.Format.Compressed() && dst.Format == texture.RGBA8:
		return decompress(src, dst, opts)
	default:
		return newError(ErrCodeUnsupported, "%s to %s", src.Format, dst.Format)
	}
}

func compress(src, dst *texture.Texture, opts Options) error {
	img := &ir.RGBAImage{Width: src.Width, Height: src.Height, Pixels: src.Data}
	enc := newBlockEncoder(dst.Format, opts.Quality)
	nx, ny := texture.BlockCount(src.Width, src.Height)
	size := dst.Format.BlockBytes()
	return bc.ForEachRow(ny, opts.Threads, func(by int) error {
		for bx := 0; bx < nx; bx++ {
			b := bc.ExtractBlock(img, bx, by)
			off := (by*nx + bx) * size
			enc(&b, dst.Data[off:off+size])
		}
		return nil
	})
}

func decompress(src, dst *texture.Texture, opts Options) error {
	img, err := bc.Decompress(src, opts.Threads)
	if err != nil {
		return &ConvertError{Code: ErrCodeBlock, Msg: "decoding " + src.Format.String(), Err: err}
	}
	copy(dst.Data, img.Crop(dst.Width, dst.Height).Pixels)
	return nil
}

func newBlockEncoder(f texture.Format, quality float32) func(b *bc.Block, dst []byte) {
	switch f {
	case texture.BC1:
		return func(b *bc.Block, dst []byte) {
			encodeColor(b, quality, false, dst)
		}
	case texture.BC3:
		return func(b *bc.Block, dst []byte) {
			encodeAlpha(b, quality, dst[0:8])
			encodeColor(b, quality, true, dst[8:16])
		}
	default:
		return func(b *bc.Block, dst []byte) {
			encodeBC7(b, quality, dst)
		}
	}
}
