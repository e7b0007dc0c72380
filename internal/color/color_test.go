package color

import (
	"math"
	"testing"
)

func TestSRGBRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		if got := LinearToSRGB(SRGBToLinear(uint8(i))); got != uint8(i) {
			t.Errorf("round trip of %d gave %d", i, got)
		}
	}
	if SRGBToLinear(0) != 0 || SRGBToLinear(255) != 1 {
		t.Errorf("endpoints: %v %v", SRGBToLinear(0), SRGBToLinear(255))
	}
	if v := SRGBToLinear(188); math.Abs(float64(v)-0.5029) > 0.001 {
		t.Errorf("SRGBToLinear(188) = %v, want ~0.503", v)
	}
}

func TestXYBGray(t *testing.T) {
	// neutral colours have X = 0 because L and M respond equally to grey
	for _, v := range []float32{0, 0.18, 0.5, 1} {
		x, y, b := LinearToXYB(v, v, v)
		if math.Abs(float64(x)) > 1e-6 {
			t.Errorf("gray %v: X = %v, want 0", v, x)
		}
		if v == 0 && (math.Abs(float64(y)) > 1e-6 || math.Abs(float64(b)) > 1e-6) {
			t.Errorf("black: Y = %v, B = %v, want 0", y, b)
		}
	}
	_, y1, _ := LinearToXYB(0.2, 0.2, 0.2)
	_, y2, _ := LinearToXYB(0.8, 0.8, 0.8)
	if y2 <= y1 {
		t.Errorf("Y not increasing with intensity: %v <= %v", y2, y1)
	}
}

func TestPositiveXYB(t *testing.T) {
	x, y, b := LinearToXYB(1, 0, 1)
	px, py, pb := PositiveXYB(x, y, b)
	if px < 0 || py < 0 || pb < 0 {
		t.Errorf("PositiveXYB(magenta) = %v %v %v", px, py, pb)
	}
}
