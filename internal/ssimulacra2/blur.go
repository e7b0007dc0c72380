package ssimulacra2

import "math"

const blurSigma = 1.5

// blurrer applies a separable Gaussian. Taps that fall outside the image
// are dropped and the remaining weights renormalised.
type blurrer struct {
	kernel []float32
	radius int
	tmp    []float32
}

func newBlurrer() *blurrer {
	radius := int(math.Ceil(3 * blurSigma))
	kernel := make([]float32, 2*radius+1)
	for i := -radius; i <= radius; i++ {
		kernel[i+radius] = float32(math.Exp(-float64(i*i) / (2 * blurSigma * blurSigma)))
	}
	return &blurrer{kernel: kernel, radius: radius}
}

func (b *blurrer) blur(img *image3) *image3 {
	out := newImage3(img.w, img.h)
	if cap(b.tmp) < img.w*img.h {
		b.tmp = make([]float32, img.w*img.h)
	}
	tmp := b.tmp[:img.w*img.h]
	for c := 0; c < 3; c++ {
		b.horizontal(img.p[c], tmp, img.w, img.h)
		b.vertical(tmp, out.p[c], img.w, img.h)
	}
	return out
}

func (b *blurrer) horizontal(src, dst []float32, w, h int) {
	for y := 0; y < h; y++ {
		row := src[y*w : (y+1)*w]
		for x := 0; x < w; x++ {
			var sum, norm float32
			for k := -b.radius; k <= b.radius; k++ {
				sx := x + k
				if sx < 0 || sx >= w {
					continue
				}
				kw := b.kernel[k+b.radius]
				sum += row[sx] * kw
				norm += kw
			}
			dst[y*w+x] = sum / norm
		}
	}
}

func (b *blurrer) vertical(src, dst []float32, w, h int) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum, norm float32
			for k := -b.radius; k <= b.radius; k++ {
				sy := y + k
				if sy < 0 || sy >= h {
					continue
				}
				kw := b.kernel[k+b.radius]
				sum += src[sy*w+x] * kw
				norm += kw
			}
			dst[y*w+x] = sum / norm
		}
	}
}
