package cmpr

import "github.com/yoshiyoshyosh/bcbench/internal/bc"

var fullWeights = [4]float32{1, 1, 1, 1}

// encodeBC7 fits mode 6 and, for blocks whose alpha varies, mode 5 with
// separate colour and alpha endpoints, keeping whichever has less error.
func encodeBC7(b *bc.Block, quality float32, dst []byte) {
	p := b.ToPixels()
	searchPBits := quality >= 0.2
	refinements := 1 + int(quality*4)

	mean, axis := p.PrincipalAxis(4, fullWeights)
	lo, hi := p.Project(4, mean, axis)
	m6 := bc.FitMode6(&p, bc.Along(4, mean, axis, lo), bc.Along(4, mean, axis, hi), searchPBits, bc.Uniform)
	for i := 0; i < refinements && m6.Err > 0; i++ {
		w := m6.Weights()
		e0, e1, ok := bc.LeastSquares(&p, 4, &w)
		if !ok {
			break
		}
		cand := bc.FitMode6(&p, e0, e1, searchPBits, bc.Uniform)
		if cand.Err >= m6.Err {
			break
		}
		m6 = cand
	}

	if m6.Err > 0 && searchPBits && !b.ConstantAlpha() {
		if m5 := fitMode5(&p, refinements); m5.Err < m6.Err {
			m5.Put(dst)
			return
		}
	}
	m6.Put(dst)
}

func fitMode5(p *bc.Pixels, refinements int) bc.Mode5 {
	mean, axis := p.PrincipalAxis(3, fullWeights)
	lo, hi := p.Project(3, mean, axis)
	c0 := bc.Along(3, mean, axis, lo)
	c1 := bc.Along(3, mean, axis, hi)
	a0, a1 := float32(255), float32(0)
	for i := range p {
		a0 = min(a0, p[i][3])
		a1 = max(a1, p[i][3])
	}
	best := bc.FitMode5(p, rgb(c0), rgb(c1), a0, a1, bc.Uniform, 1)

	var alpha bc.Pixels
	for i := range p {
		alpha[i][0] = p[i][3]
	}
	for i := 0; i < refinements && best.Err > 0; i++ {
		var cw, aw [16]float32
		for j := 0; j < 16; j++ {
			cw[j] = float32(bc.Weights2[best.CIdx[j]]) / 64
			aw[j] = float32(bc.Weights2[best.AIdx[j]]) / 64
		}
		n0, n1, okc := bc.LeastSquares(p, 3, &cw)
		if !okc {
			n0, n1 = c0, c1
		}
		m0, m1, oka := bc.LeastSquares(&alpha, 1, &aw)
		if !oka {
			m0[0], m1[0] = a0, a1
		}
		cand := bc.FitMode5(p, rgb(n0), rgb(n1), m0[0], m1[0], bc.Uniform, 1)
		if cand.Err >= best.Err {
			break
		}
		best = cand
		c0, c1, a0, a1 = n0, n1, m0[0], m1[0]
	}
	return best
}

func rgb(v [4]float32) [3]float32 {
	return [3]float32{v[0], v[1], v[2]}
}
