package bcenc

import (
	"math"

	"github.com/yoshiyoshyosh/bcbench/internal/bc"
)

const mode6Refinements = 3

// perceptual measures error in a luma/chroma split so that green-heavy luma
// errors cost more than blue chroma errors.
func perceptual(src [4]float32, dec [4]uint8) float32 {
	dr := src[0] - float32(dec[0])
	dg := src[1] - float32(dec[1])
	db := src[2] - float32(dec[2])
	da := src[3] - float32(dec[3])
	dy := 0.2126*dr + 0.7152*dg + 0.0722*db
	dcr := dr - dy
	dcb := db - dy
	return 2*dy*dy + dcr*dcr + 0.25*dcb*dcb + 2*da*da
}

var (
	uniformScale    = [4]float32{1, 1, 1, 1}
	perceptualScale = [4]float32{
		float32(math.Sqrt(0.5)), 1, float32(math.Sqrt(0.25)), float32(math.Sqrt(2)),
	}
)

// encodeMode6 fits a single-subset mode 6 block: principal axis bounds,
// then least-squares refinement over the chosen indices.
func encodeMode6(b *bc.Block, m bc.Metric, perceptualAxis bool, dst []byte) {
	p := b.ToPixels()
	scale := uniformScale
	if perceptualAxis {
		scale = perceptualScale
	}
	mean, axis := p.PrincipalAxis(4, scale)
	lo, hi := p.Project(4, mean, axis)
	best := bc.FitMode6(&p, bc.Along(4, mean, axis, lo), bc.Along(4, mean, axis, hi), true, m)

	for i := 0; i < mode6Refinements && best.Err > 0; i++ {
		w := best.Weights()
		e0, e1, ok := bc.LeastSquares(&p, 4, &w)
		if !ok {
			break
		}
		cand := bc.FitMode6(&p, e0, e1, true, m)
		if cand.Err >= best.Err {
			break
		}
		best = cand
	}
	best.Put(dst)
}
