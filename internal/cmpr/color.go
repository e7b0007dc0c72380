package cmpr

import (
	"math"
	"sort"

	"github.com/yoshiyoshyosh/bcbench/internal/bc"
)

// Channel weights used for BC1/BC3 colour error, roughly the luminance
// contribution of each channel.
var colorWeights = [4]float32{0.3086, 0.6094, 0.0820, 0}

var colorMetric = bc.WeightedMetric(colorWeights)

// clusterFitQuality is the quality from which cluster fit replaces range fit.
const clusterFitQuality = 0.5

type colorFit struct {
	c0, c1  uint16
	indices uint32
	err     float32
}

func fitColor(p *bc.Pixels, e0, e1 [4]float32, forceFour bool) colorFit {
	c0 := bc.Pack565(e0[0], e0[1], e0[2])
	c1 := bc.Pack565(e1[0], e1[1], e1[2])
	if !forceFour && c0 < c1 {
		c0, c1 = c1, c0
	}
	idx, err := bc.FitBC1(p, c0, c1, forceFour, colorMetric)
	return colorFit{c0, c1, idx, err}
}

func encodeColor(b *bc.Block, quality float32, forceFour bool, dst []byte) {
	p := b.ToPixels()
	var scale [4]float32
	for c := 0; c < 3; c++ {
		scale[c] = float32(math.Sqrt(float64(colorWeights[c])))
	}
	mean, axis := p.PrincipalAxis(3, scale)
	lo, hi := p.Project(3, mean, axis)
	best := fitColor(&p, bc.Along(3, mean, axis, hi), bc.Along(3, mean, axis, lo), forceFour)

	if quality >= clusterFitQuality && best.err > 0 {
		iterations := 1
		if quality >= 0.9 {
			iterations = 2
		}
		for i := 0; i < iterations; i++ {
			e0, e1, ok := clusterFit(&p, axis)
			if !ok {
				break
			}
			cand := fitColor(&p, e0, e1, forceFour)
			if cand.err >= best.err {
				break
			}
			best = cand
			for c := 0; c < 3; c++ {
				axis[c] = e1[c] - e0[c]
			}
		}
	}
	bc.PutBC1(dst, best.c0, best.c1, best.indices)
}

// clusterFit orders the pixels along axis and tries every split of that
// order into four consecutive clusters mapped to the weights 0, 1/3, 2/3
// and 1. For each split the endpoints are the least-squares solution, and
// the split with the lowest weighted residual wins.
func clusterFit(p *bc.Pixels, axis [4]float32) (e0, e1 [4]float32, ok bool) {
	var order [16]int
	var dots [16]float32
	for i := range order {
		order[i] = i
		for c := 0; c < 3; c++ {
			dots[i] += p[i][c] * axis[c]
		}
	}
	sort.SliceStable(order[:], func(a, b int) bool { return dots[order[a]] < dots[order[b]] })

	var prefix [17][3]float32
	for i, o := range order {
		for c := 0; c < 3; c++ {
			prefix[i+1][c] = prefix[i][c] + p[o][c]
		}
	}
	sum := func(from, to, c int) float32 { return prefix[to][c] - prefix[from][c] }

	bestErr := float32(math.MaxFloat32)
	for i := 0; i <= 16; i++ {
		for j := i; j <= 16; j++ {
			for k := j; k <= 16; k++ {
				n1, n2, n3 := float32(j-i), float32(k-j), float32(16-k)
				n0 := float32(i)
				aa := n0 + n1*4/9 + n2/9
				bb := n3 + n1/9 + n2*4/9
				ab := (n1 + n2) * 2 / 9
				det := aa*bb - ab*ab
				if det < 1e-6 {
					continue
				}
				var c0, c1 [4]float32
				var err float32
				for c := 0; c < 3; c++ {
					s0, s1, s2, s3 := sum(0, i, c), sum(i, j, c), sum(j, k, c), sum(k, 16, c)
					ax := s0 + s1*2/3 + s2/3
					bx := s1/3 + s2*2/3 + s3
					c0[c] = (bb*ax - ab*bx) / det
					c1[c] = (aa*bx - ab*ax) / det
					// residual without the constant sum of squares
					err += colorWeights[c] * (c0[c]*c0[c]*aa + c1[c]*c1[c]*bb + 2*c0[c]*c1[c]*ab - 2*c0[c]*ax - 2*c1[c]*bx)
				}
				if err < bestErr {
					bestErr = err
					e0, e1 = c0, c1
					ok = true
				}
			}
		}
	}
	for c := 0; c < 3; c++ {
		e0[c] = min(255, max(0, e0[c]))
		e1[c] = min(255, max(0, e1[c]))
	}
	return e0, e1, ok
}
