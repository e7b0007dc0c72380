package bcenc

import "github.com/yoshiyoshyosh/bcbench/internal/bc"

type colorFit struct {
	c0, c1  uint16
	indices uint32
	err     float32
}

// encodeColor writes an 8-byte BC1 colour block. forceFour is set for BC3,
// whose colour half is always decoded with four colours.
func encodeColor(b *bc.Block, level int, forceFour bool, dst []byte) {
	p := b.ToPixels()
	m := bc.UniformRGB

	eval := func(c0, c1 uint16) colorFit {
		if !forceFour && c0 < c1 {
			c0, c1 = c1, c0
		}
		idx, err := bc.FitBC1(&p, c0, c1, forceFour, m)
		return colorFit{c0, c1, idx, err}
	}

	mean, axis := p.PrincipalAxis(3, [4]float32{1, 1, 1, 0})
	lo, hi := p.Project(3, mean, axis)
	e0 := bc.Along(3, mean, axis, hi)
	e1 := bc.Along(3, mean, axis, lo)
	best := eval(bc.Pack565(e0[0], e0[1], e0[2]), bc.Pack565(e1[0], e1[1], e1[2]))

	// least-squares rounds
	for round := 0; round < level/3 && best.err > 0; round++ {
		four := forceFour || best.c0 > best.c1
		w := bc.BC1Weights(best.indices, four)
		f0, f1, ok := bc.LeastSquares(&p, 3, &w)
		if !ok {
			break
		}
		cand := eval(bc.Pack565(f0[0], f0[1], f0[2]), bc.Pack565(f1[0], f1[1], f1[2]))
		if cand.err >= best.err {
			break
		}
		best = cand
	}

	if level >= 14 {
		passes := 1
		if level >= MaxQuality {
			passes = 2
		}
		for i := 0; i < passes && best.err > 0; i++ {
			best = perturb(best, eval)
		}
	}

	if level >= 16 && !forceFour && best.err > 0 {
		best = tryThreeColor(&p, best, m)
	}

	bc.PutBC1(dst, best.c0, best.c1, best.indices)
}

// perturb nudges each 565 component of both endpoints by one step and keeps
// any change that lowers the error.
func perturb(best colorFit, eval func(c0, c1 uint16) colorFit) colorFit {
	fields := []struct {
		shift uint
		max   uint16
	}{{11, 31}, {5, 63}, {0, 31}}
	for e := 0; e < 2; e++ {
		for _, f := range fields {
			for _, d := range []int{-1, 1} {
				c0, c1 := best.c0, best.c1
				target := &c0
				if e == 1 {
					target = &c1
				}
				v := int(*target>>f.shift&f.max) + d
				if v < 0 || v > int(f.max) {
					continue
				}
				*target = *target&^(f.max<<f.shift) | uint16(v)<<f.shift
				if cand := eval(c0, c1); cand.err < best.err {
					best = cand
				}
			}
		}
	}
	return best
}

// tryThreeColor refits the block in three-colour mode (c0 <= c1) and keeps
// it when it beats the four-colour result.
func tryThreeColor(p *bc.Pixels, best colorFit, m bc.Metric) colorFit {
	idx, _ := bc.FitBC1(p, min(best.c0, best.c1), max(best.c0, best.c1), false, m)
	w := bc.BC1Weights(idx, false)
	f0, f1, ok := bc.LeastSquares(p, 3, &w)
	if !ok {
		return best
	}
	c0 := bc.Pack565(f0[0], f0[1], f0[2])
	c1 := bc.Pack565(f1[0], f1[1], f1[2])
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	idx, err := bc.FitBC1(p, c0, c1, false, m)
	if err < best.err {
		return colorFit{c0, c1, idx, err}
	}
	return best
}
