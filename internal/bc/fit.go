package bc

import "math"

// Pixels is a block converted to float channels for fitting.
type Pixels [16][4]float32

// ToPixels converts a block to float channels.
func (b *Block) ToPixels() Pixels {
	var p Pixels
	for i := 0; i < 16; i++ {
		for c := 0; c < 4; c++ {
			p[i][c] = float32(b[i*4+c])
		}
	}
	return p
}

// Mean returns the per-channel average of the first n channels.
func (p *Pixels) Mean(n int) [4]float32 {
	var m [4]float32
	for i := range p {
		for c := 0; c < n; c++ {
			m[c] += p[i][c]
		}
	}
	for c := 0; c < n; c++ {
		m[c] /= 16
	}
	return m
}

// PrincipalAxis returns the dominant direction of the first n channels
// (n is 3 or 4), scaled by weights, found with power iteration on the
// covariance matrix. A constant block yields the luminance diagonal.
func (p *Pixels) PrincipalAxis(n int, weights [4]float32) (mean, axis [4]float32) {
	mean = p.Mean(n)
	var cov [4][4]float32
	for i := range p {
		var d [4]float32
		for c := 0; c < n; c++ {
			d[c] = (p[i][c] - mean[c]) * weights[c]
		}
		for a := 0; a < n; a++ {
			for b := a; b < n; b++ {
				cov[a][b] += d[a] * d[b]
			}
		}
	}
	for a := 0; a < n; a++ {
		for b := 0; b < a; b++ {
			cov[a][b] = cov[b][a]
		}
	}

	// Start from the channel with the largest variance.
	best := 0
	for c := 1; c < n; c++ {
		if cov[c][c] > cov[best][best] {
			best = c
		}
	}
	if cov[best][best] < 1e-6 {
		for c := 0; c < n; c++ {
			axis[c] = 1 / float32(math.Sqrt(float64(n)))
		}
		return mean, axis
	}
	for c := 0; c < n; c++ {
		axis[c] = cov[best][c]
	}
	for iter := 0; iter < 8; iter++ {
		var next [4]float32
		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				next[a] += cov[a][b] * axis[b]
			}
		}
		var norm float32
		for c := 0; c < n; c++ {
			norm += next[c] * next[c]
		}
		if norm < 1e-12 {
			break
		}
		inv := 1 / float32(math.Sqrt(float64(norm)))
		for c := 0; c < n; c++ {
			axis[c] = next[c] * inv
		}
	}
	for c := 0; c < n; c++ {
		if weights[c] > 0 {
			axis[c] /= weights[c]
		}
	}
	return mean, axis
}

// Project returns the minimum and maximum projections of the pixels onto
// axis relative to mean.
func (p *Pixels) Project(n int, mean, axis [4]float32) (lo, hi float32) {
	lo, hi = float32(math.Inf(1)), float32(math.Inf(-1))
	for i := range p {
		var t float32
		for c := 0; c < n; c++ {
			t += (p[i][c] - mean[c]) * axis[c]
		}
		lo = min(lo, t)
		hi = max(hi, t)
	}
	return lo, hi
}

// Along returns mean + t*axis.
func Along(n int, mean, axis [4]float32, t float32) [4]float32 {
	var v [4]float32
	for c := 0; c < n; c++ {
		v[c] = clamp255(mean[c] + t*axis[c])
	}
	return v
}

// LeastSquares solves for the two endpoints that best reproduce the pixels
// given fixed interpolation weights in [0, 1]. ok is false when every pixel
// uses the same weight and the system is singular.
func LeastSquares(p *Pixels, n int, w *[16]float32) (e0, e1 [4]float32, ok bool) {
	var aa, ab, bb float32
	var ax, bx [4]float32
	for i := range p {
		a := 1 - w[i]
		b := w[i]
		aa += a * a
		ab += a * b
		bb += b * b
		for c := 0; c < n; c++ {
			ax[c] += a * p[i][c]
			bx[c] += b * p[i][c]
		}
	}
	det := aa*bb - ab*ab
	if math.Abs(float64(det)) < 1e-8 {
		return e0, e1, false
	}
	inv := 1 / det
	for c := 0; c < n; c++ {
		e0[c] = clamp255((bb*ax[c] - ab*bx[c]) * inv)
		e1[c] = clamp255((aa*bx[c] - ab*ax[c]) * inv)
	}
	return e0, e1, true
}

func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// SquaredError returns the weighted squared distance of the first n channels.
func SquaredError(n int, a [4]float32, b [4]uint8, weights [4]float32) float32 {
	var e float32
	for c := 0; c < n; c++ {
		d := a[c] - float32(b[c])
		e += d * d * weights[c]
	}
	return e
}
