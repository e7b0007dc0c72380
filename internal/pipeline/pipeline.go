package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/disintegration/imaging"

	"github.com/yoshiyoshyosh/bcbench/internal/bc"
	"github.com/yoshiyoshyosh/bcbench/internal/ir"
	"github.com/yoshiyoshyosh/bcbench/internal/ssimulacra2"
	"github.com/yoshiyoshyosh/bcbench/internal/store"
	"github.com/yoshiyoshyosh/bcbench/internal/texture"
)

// Options controls a benchmark of one image.
type Options struct {
	Threads   int
	Trials    []Trial      // DefaultTrials when nil
	ZstdSizes bool         // also measure the zstd-compressed payload size
	OnResult  func(Result) // called after each trial, in order
}

// Result holds the outcome of one trial on one image.
type Result struct {
	Image     string
	Width     int
	Height    int
	Codec     texture.Format
	Encoder   string
	Param     string
	Seconds   float64
	Score     float64
	Bytes     int
	ZstdBytes int
}

// Line formats the result as "<Codec> (<encoder>, <param>): <seconds> | <score>".
func (r Result) Line() string {
	t := Trial{Format: r.Codec, Encoder: r.Encoder, Param: r.Param}
	return fmt.Sprintf("%s: %s | %s", t.Label(),
		strconv.FormatFloat(r.Seconds, 'f', -1, 64),
		strconv.FormatFloat(r.Score, 'f', -1, 64))
}

// Record converts the result for storage under runID.
func (r Result) Record(runID int64) store.Record {
	return store.Record{
		RunID:     runID,
		Image:     r.Image,
		Width:     r.Width,
		Height:    r.Height,
		Codec:     r.Codec.String(),
		Encoder:   r.Encoder,
		Param:     r.Param,
		Seconds:   r.Seconds,
		Score:     r.Score,
		Bytes:     r.Bytes,
		ZstdBytes: r.ZstdBytes,
	}
}

// ThreadsLine is printed once before the first image.
func ThreadsLine(threads int) string {
	return fmt.Sprintf("Using %d threads for cmpr & bcenc", threads)
}

// ImageLine is printed before the results of each image.
func ImageLine(name string, w, h int) string {
	return fmt.Sprintf("=== %s.png (%dx%d) ===", name, w, h)
}

// LoadImage decodes an image file into 8-bit RGBA, adding an opaque alpha
// channel when the file has none.
func LoadImage(path string) (*ir.RGBAImage, error) {
	src, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return ir.FromNRGBA(imaging.Clone(src)), nil
}

// DecodeRGB decompresses tex to its logical size and discards the decoded
// alpha, giving the opaque image that is scored against the reference.
func DecodeRGB(tex *texture.Texture, threads int) (*ir.RGBAImage, error) {
	decoded, err := bc.Decompress(tex, threads)
	if err != nil {
		return nil, err
	}
	decoded = decoded.Crop(tex.Width, tex.Height)
	decoded.DropAlpha()
	return decoded, nil
}

// Run executes every trial on img: encode (timed), decode to opaque RGB at
// the source size and score against img. The first failure aborts the run.
func Run(ctx context.Context, name string, img *ir.RGBAImage, opts Options) ([]Result, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	trials := opts.Trials
	if trials == nil {
		trials = DefaultTrials()
	}

	results := make([]Result, 0, len(trials))
	for _, trial := range trials {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		// 1. Encode, timing only the encoder call
		start := time.Now()
		data, err := trial.Encode(img, opts.Threads)
		elapsed := time.Since(start)
		if err != nil {
			return results, fmt.Errorf("%s %s: %w", name, trial.Label(), err)
		}

		// 2. Decode the block-aligned texture, crop to the source size and
		// keep RGB only; the reference keeps its alpha
		decoded, err := DecodeRGB(&texture.Texture{Width: img.Width, Height: img.Height, Format: trial.Format, Data: data}, opts.Threads)
		if err != nil {
			return results, fmt.Errorf("%s %s: decode: %w", name, trial.Label(), err)
		}

		// 3. Score against the uncompressed reference
		score, err := ssimulacra2.Compute(img, decoded)
		if err != nil {
			return results, fmt.Errorf("%s %s: score: %w", name, trial.Label(), err)
		}

		r := Result{
			Image:   name,
			Width:   img.Width,
			Height:  img.Height,
			Codec:   trial.Format,
			Encoder: trial.Encoder,
			Param:   trial.Param,
			Seconds: elapsed.Seconds(),
			Score:   score,
			Bytes:   len(data),
		}
		if opts.ZstdSizes {
			if r.ZstdBytes, err = store.ZstdSize(data); err != nil {
				return results, fmt.Errorf("%s %s: %w", name, trial.Label(), err)
			}
		}
		results = append(results, r)
		if opts.OnResult != nil {
			opts.OnResult(r)
		}
	}
	return results, nil
}
