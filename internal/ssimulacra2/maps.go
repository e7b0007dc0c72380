package ssimulacra2

import "math"

const c2 = 0.0009

// ssimMap returns, per channel, the mean and the 4-norm of the per-pixel
// SSIM error. The luminance term is 1 - (mu1-mu2)^2 instead of the usual
// ratio, which behaves better on the XYB value range.
func ssimMap(m1, m2, s11, s22, s12 *image3) [6]float64 {
	var out [6]float64
	inv := 1 / float64(m1.w*m1.h)
	for c := 0; c < 3; c++ {
		var sum1, sum4 float64
		for i := range m1.p[c] {
			mu1 := float64(m1.p[c][i])
			mu2 := float64(m2.p[c][i])
			mu11 := mu1 * mu1
			mu22 := mu2 * mu2
			mu12 := mu1 * mu2
			numM := 1 - (mu1-mu2)*(mu1-mu2)
			numS := 2*(float64(s12.p[c][i])-mu12) + c2
			denS := (float64(s11.p[c][i]) - mu11) + (float64(s22.p[c][i]) - mu22) + c2
			d := math.Max(0, 1-numM*numS/denS)
			sum1 += d
			d2 := d * d
			sum4 += d2 * d2
		}
		out[c*2] = inv * sum1
		out[c*2+1] = math.Sqrt(math.Sqrt(inv * sum4))
	}
	return out
}

// edgeDiffMap compares local detail (distance from the blurred image) of
// the reference and the distorted image. Extra detail in the distorted
// image is ringing, missing detail is blur. Per channel the result holds
// the ringing mean, ringing 4-norm, blur mean and blur 4-norm.
func edgeDiffMap(img1, mu1, img2, mu2 *image3) [12]float64 {
	var out [12]float64
	inv := 1 / float64(img1.w*img1.h)
	for c := 0; c < 3; c++ {
		var sum [4]float64
		for i := range img1.p[c] {
			d1 := (1+math.Abs(float64(img2.p[c][i]-mu2.p[c][i])))/
				(1+math.Abs(float64(img1.p[c][i]-mu1.p[c][i]))) - 1
			artifact := math.Max(d1, 0)
			sum[0] += artifact
			a2 := artifact * artifact
			sum[2] += a2 * a2
			lost := math.Max(-d1, 0)
			sum[1] += lost
			l2 := lost * lost
			sum[3] += l2 * l2
		}
		out[c*4+0] = inv * sum[0]
		out[c*4+1] = math.Sqrt(math.Sqrt(inv * sum[2]))
		out[c*4+2] = inv * sum[1]
		out[c*4+3] = math.Sqrt(math.Sqrt(inv * sum[3]))
	}
	return out
}
