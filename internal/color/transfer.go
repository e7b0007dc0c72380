// Package color converts between the sRGB encoding of 8-bit pixels, linear
// light and the XYB opponent space used for perceptual comparison.
package color

import "math"

var srgbToLinear [256]float32

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = float32(decodeSRGB(float64(i) / 255))
	}
}

func decodeSRGB(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func encodeSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// SRGBToLinear returns the linear-light value in [0, 1] of an sRGB byte.
func SRGBToLinear(v uint8) float32 {
	return srgbToLinear[v]
}

// LinearToSRGB encodes a linear-light value, clamping to [0, 1].
func LinearToSRGB(v float32) uint8 {
	f := math.Max(0, math.Min(1, float64(v)))
	return uint8(math.Round(encodeSRGB(f) * 255))
}
