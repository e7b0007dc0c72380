// Package ssimulacra2 computes the SSIMULACRA 2 perceptual similarity score
// between a reference image and a distorted version of it. Scores run from
// 100 for identical images down through 90 (visually lossless), 70 (high
// quality), 50 (medium) and below for strong distortion.
package ssimulacra2

import (
	"errors"
	"fmt"
	"math"

	"github.com/yoshiyoshyosh/bcbench/internal/color"
	"github.com/yoshiyoshyosh/bcbench/internal/ir"
)

const numScales = 6

// MinSize is the smallest width and height that can be scored.
const MinSize = 8

var (
	ErrSizeMismatch = errors.New("ssimulacra2: image sizes differ")
	ErrTooSmall     = errors.New("ssimulacra2: image smaller than 8x8")
)

// Backgrounds that images with transparency are composited over, in linear
// light. The reported score is the worse of the two.
var alphaBackgrounds = [2]float32{0.1, 0.9}

// Compute returns the score of dist against ref.
func Compute(ref, dist *ir.RGBAImage) (float64, error) {
	if err := ref.Validate(); err != nil {
		return 0, fmt.Errorf("reference: %w", err)
	}
	if err := dist.Validate(); err != nil {
		return 0, fmt.Errorf("distorted: %w", err)
	}
	if ref.Width != dist.Width || ref.Height != dist.Height {
		return 0, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, ref.Width, ref.Height, dist.Width, dist.Height)
	}
	if ref.Width < MinSize || ref.Height < MinSize {
		return 0, ErrTooSmall
	}

	if !ref.HasAlpha() && !dist.HasAlpha() {
		return score(toLinear(ref, 0), toLinear(dist, 0)), nil
	}
	result := math.Inf(1)
	for _, bg := range alphaBackgrounds {
		result = math.Min(result, score(toLinear(ref, bg), toLinear(dist, bg)))
	}
	return result, nil
}

// toLinear converts to linear RGB planes, compositing over a grey
// background of intensity bg when the pixel is not opaque.
func toLinear(img *ir.RGBAImage, bg float32) *image3 {
	out := newImage3(img.Width, img.Height)
	for i := 0; i < img.Width*img.Height; i++ {
		px := img.Pixels[i*4 : i*4+4]
		a := float32(px[3]) / 255
		for c := 0; c < 3; c++ {
			v := color.SRGBToLinear(px[c])
			if px[3] != 255 {
				v = v*a + bg*(1-a)
			}
			out.p[c][i] = v
		}
	}
	return out
}

func toXYB(lin *image3) *image3 {
	out := newImage3(lin.w, lin.h)
	for i := range lin.p[0] {
		x, y, b := color.LinearToXYB(lin.p[0][i], lin.p[1][i], lin.p[2][i])
		out.p[0][i], out.p[1][i], out.p[2][i] = color.PositiveXYB(x, y, b)
	}
	return out
}

type scaleStats struct {
	ssim [6]float64
	edge [12]float64
}

func score(lin1, lin2 *image3) float64 {
	stats := collectStats(lin1, lin2)
	return combine(&stats)
}

// collectStats computes the statistics of every scale. Scales too small to
// compute stay zero but keep their weights.
func collectStats(lin1, lin2 *image3) [numScales]scaleStats {
	var stats [numScales]scaleStats
	bl := newBlurrer()
	for s := 0; s < numScales; s++ {
		if lin1.w < MinSize || lin1.h < MinSize {
			break
		}
		if s > 0 {
			lin1 = lin1.downsample()
			lin2 = lin2.downsample()
		}
		img1 := toXYB(lin1)
		img2 := toXYB(lin2)

		mu1 := bl.blur(img1)
		mu2 := bl.blur(img2)
		s11 := bl.blur(multiply(img1, img1))
		s22 := bl.blur(multiply(img2, img2))
		s12 := bl.blur(multiply(img1, img2))

		stats[s] = scaleStats{
			ssim: ssimMap(mu1, mu2, s11, s22, s12),
			edge: edgeDiffMap(img1, mu1, img2, mu2),
		}
	}
	return stats
}

// combine weighs the per-scale statistics and maps the sum to the score
// range.
func combine(stats *[numScales]scaleStats) float64 {
	return mapScore(weightedSum(stats))
}

// weightedSum visits channel, then scale, then norm, using three weights
// (SSIM, ringing, blur) per step.
func weightedSum(stats *[numScales]scaleStats) float64 {
	var sum float64
	i := 0
	for c := 0; c < 3; c++ {
		for s := 0; s < numScales; s++ {
			for n := 0; n < 2; n++ {
				sum += weights[i] * math.Abs(stats[s].ssim[c*2+n])
				i++
				sum += weights[i] * math.Abs(stats[s].edge[c*4+n])
				i++
				sum += weights[i] * math.Abs(stats[s].edge[c*4+n+2])
				i++
			}
		}
	}
	return sum
}

func mapScore(sum float64) float64 {
	sum *= 0.9562382616834844
	sum = 2.326765642916932*sum - 0.020884521182843837*sum*sum + 6.248496625763138e-05*sum*sum*sum
	if sum > 0 {
		return 100 - 10*math.Pow(sum, 0.6276336467831387)
	}
	return 100
}
