package color

import "math"

// Opsin absorbance matrix and bias of the XYB colour space.
const (
	opsinM00 = 0.30
	opsinM01 = 0.622
	opsinM02 = 0.078

	opsinM10 = 0.23
	opsinM11 = 0.692
	opsinM12 = 0.078

	opsinM20 = 0.24342268924547819
	opsinM21 = 0.20476744424496821
	opsinM22 = 0.55180986650955360

	opsinBias = 0.0037930732552754493
)

var cbrtBias = float32(math.Cbrt(opsinBias))

func cbrt(v float32) float32 {
	return float32(math.Cbrt(float64(v)))
}

// LinearToXYB converts linear RGB in [0, 1] to XYB.
func LinearToXYB(r, g, b float32) (x, y, bb float32) {
	l := max(0, opsinM00*r+opsinM01*g+opsinM02*b+opsinBias)
	m := max(0, opsinM10*r+opsinM11*g+opsinM12*b+opsinBias)
	s := max(0, opsinM20*r+opsinM21*g+opsinM22*b+opsinBias)
	l = cbrt(l) - cbrtBias
	m = cbrt(m) - cbrtBias
	s = cbrt(s) - cbrtBias
	return 0.5 * (l - m), 0.5 * (l + m), s
}

// PositiveXYB shifts and scales XYB so that all three channels are
// non-negative and of comparable magnitude, which the SSIM terms need.
func PositiveXYB(x, y, b float32) (float32, float32, float32) {
	return x*14 + 0.42, y + 0.01, (b - y) + 0.55
}
