package ssimulacra2

// image3 is a three-channel float image, one plane per channel.
type image3 struct {
	w, h int
	p    [3][]float32
}

func newImage3(w, h int) *image3 {
	img := &image3{w: w, h: h}
	for c := range img.p {
		img.p[c] = make([]float32, w*h)
	}
	return img
}

// downsample halves both dimensions with a 2x2 box filter, repeating the
// last row and column for odd sizes.
func (img *image3) downsample() *image3 {
	out := newImage3((img.w+1)/2, (img.h+1)/2)
	for c := 0; c < 3; c++ {
		src, dst := img.p[c], out.p[c]
		for y := 0; y < out.h; y++ {
			for x := 0; x < out.w; x++ {
				var sum float32
				for iy := 0; iy < 2; iy++ {
					sy := min(y*2+iy, img.h-1)
					for ix := 0; ix < 2; ix++ {
						sx := min(x*2+ix, img.w-1)
						sum += src[sy*img.w+sx]
					}
				}
				dst[y*out.w+x] = sum * 0.25
			}
		}
	}
	return out
}

// multiply returns the per-pixel product of a and b.
func multiply(a, b *image3) *image3 {
	out := newImage3(a.w, a.h)
	for c := 0; c < 3; c++ {
		for i := range out.p[c] {
			out.p[c][i] = a.p[c][i] * b.p[c][i]
		}
	}
	return out
}
