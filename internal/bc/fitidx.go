package bc

import "math"

// FitBC1 selects the best palette index for every pixel given two RGB565
// endpoints. Four-colour mode is used when c0 > c1 or forceFour is set;
// otherwise the transparent index is never chosen.
func FitBC1(p *Pixels, c0, c1 uint16, forceFour bool, m Metric) (indices uint32, err float32) {
	four := forceFour || c0 > c1
	pal := BC1Palette(c0, c1, four)
	n := 4
	if !four {
		n = 3
	}
	for i := range p {
		best, bestErr := 0, float32(math.MaxFloat32)
		for k := 0; k < n; k++ {
			if e := m(p[i], pal[k]); e < bestErr {
				best, bestErr = k, e
			}
		}
		indices |= uint32(best) << (2 * i)
		err += bestErr
	}
	return indices, err
}

// BC1Weights maps BC1 indices to interpolation weights for least squares.
func BC1Weights(indices uint32, four bool) [16]float32 {
	table := [4]float32{0, 1, 1.0 / 3, 2.0 / 3}
	if !four {
		table = [4]float32{0, 1, 0.5, 0.5}
	}
	var w [16]float32
	for i := range w {
		w[i] = table[indices>>(2*i)&3]
	}
	return w
}

// FitAlpha selects BC3 alpha indices for the given endpoints.
func FitAlpha(p *Pixels, a0, a1 uint8) (indices uint64, err float32) {
	pal := AlphaPalette(a0, a1)
	for i := range p {
		best, bestErr := 0, float32(math.MaxFloat32)
		for k, v := range pal {
			d := p[i][3] - float32(v)
			if d*d < bestErr {
				best, bestErr = k, d*d
			}
		}
		indices |= uint64(best) << (3 * i)
		err += bestErr
	}
	return indices, err
}

// Mode6 is a fitted BC7 mode 6 block.
type Mode6 struct {
	E0, E1  [4]uint8 // 7-bit endpoint values
	P0, P1  uint8
	Indices [16]uint8
	Err     float32
}

// Put writes the block to dst.
func (b *Mode6) Put(dst []byte) {
	PutBC7Mode6(dst, b.E0, b.E1, b.P0, b.P1, b.Indices)
}

// Weights returns the interpolation weight of every pixel in [0, 1].
func (b *Mode6) Weights() [16]float32 {
	var w [16]float32
	for i, idx := range b.Indices {
		w[i] = float32(Weights4[idx]) / 64
	}
	return w
}

func quantPBit(v float32, p uint8) uint8 {
	q := int(math.Floor(float64((v-float32(p))/2 + 0.5)))
	return uint8(max(0, min(127, q)))
}

// FitMode6 quantises float endpoints to mode 6 and selects indices. When
// searchPBits is set all four p-bit combinations are tried; otherwise the
// p-bits are taken from the rounding of each endpoint's mean.
func FitMode6(p *Pixels, e0, e1 [4]float32, searchPBits bool, m Metric) Mode6 {
	best := Mode6{Err: float32(math.MaxFloat32)}
	try := func(p0, p1 uint8) {
		var cand Mode6
		cand.P0, cand.P1 = p0, p1
		var d0, d1 [4]uint8
		for c := 0; c < 4; c++ {
			cand.E0[c] = quantPBit(e0[c], p0)
			cand.E1[c] = quantPBit(e1[c], p1)
			d0[c] = cand.E0[c]<<1 | p0
			d1[c] = cand.E1[c]<<1 | p1
		}
		var pal [16][4]uint8
		for k := 0; k < 16; k++ {
			for c := 0; c < 4; c++ {
				pal[k][c] = Interpolate(d0[c], d1[c], Weights4[k])
			}
		}
		for i := range p {
			bi, be := 0, float32(math.MaxFloat32)
			for k := 0; k < 16; k++ {
				if e := m(p[i], pal[k]); e < be {
					bi, be = k, e
				}
			}
			cand.Indices[i] = uint8(bi)
			cand.Err += be
			if cand.Err >= best.Err {
				return
			}
		}
		best = cand
	}
	if searchPBits {
		for p0 := uint8(0); p0 < 2; p0++ {
			for p1 := uint8(0); p1 < 2; p1++ {
				try(p0, p1)
			}
		}
		return best
	}
	try(parity(e0), parity(e1))
	return best
}

func parity(e [4]float32) uint8 {
	var sum int
	for _, v := range e {
		sum += int(v+0.5) & 1
	}
	if sum >= 2 {
		return 1
	}
	return 0
}

// Mode5 is a fitted BC7 mode 5 block with rotation 0.
type Mode5 struct {
	C0, C1     [3]uint8 // 7-bit colour endpoints
	A0, A1     uint8
	CIdx, AIdx [16]uint8
	Err        float32
}

// Put writes the block to dst.
func (b *Mode5) Put(dst []byte) {
	PutBC7Mode5(dst, 0, b.C0, b.C1, b.A0, b.A1, b.CIdx, b.AIdx)
}

// FitMode5 quantises colour and alpha endpoints for mode 5 and selects the
// two independent index sets. m is evaluated with alpha fixed to the source
// value for colour, and alpha error is added separately with weight aw.
func FitMode5(p *Pixels, c0, c1 [3]float32, a0, a1 float32, m Metric, aw float32) Mode5 {
	var b Mode5
	var d0, d1 [3]uint8
	for c := 0; c < 3; c++ {
		b.C0[c] = uint8(max(0, min(127, int(c0[c]*127/255+0.5))))
		b.C1[c] = uint8(max(0, min(127, int(c1[c]*127/255+0.5))))
		d0[c] = b.C0[c]<<1 | b.C0[c]>>6
		d1[c] = b.C1[c]<<1 | b.C1[c]>>6
	}
	b.A0 = uint8(max(0, min(255, int(a0+0.5))))
	b.A1 = uint8(max(0, min(255, int(a1+0.5))))

	var cpal [4][4]uint8
	var apal [4]uint8
	for k := 0; k < 4; k++ {
		for c := 0; c < 3; c++ {
			cpal[k][c] = Interpolate(d0[c], d1[c], Weights2[k])
		}
		apal[k] = Interpolate(b.A0, b.A1, Weights2[k])
	}
	for i := range p {
		src := p[i]
		bi, be := 0, float32(math.MaxFloat32)
		for k := 0; k < 4; k++ {
			dec := cpal[k]
			dec[3] = uint8(src[3] + 0.5)
			if e := m(src, dec); e < be {
				bi, be = k, e
			}
		}
		b.CIdx[i] = uint8(bi)
		b.Err += be

		ai, ae := 0, float32(math.MaxFloat32)
		for k := 0; k < 4; k++ {
			d := src[3] - float32(apal[k])
			if d*d < ae {
				ai, ae = k, d*d
			}
		}
		b.AIdx[i] = uint8(ai)
		b.Err += ae * aw
	}
	return b
}
