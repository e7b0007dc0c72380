package bcenc

import (
	"testing"

	"github.com/yoshiyoshyosh/bcbench/internal/bc"
	"github.com/yoshiyoshyosh/bcbench/internal/ir"
	"github.com/yoshiyoshyosh/bcbench/internal/texture"
)

func makeTestImage(w, h int) *ir.RGBAImage {
	img := ir.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := img.Offset(x, y)
			img.Pixels[o] = uint8(x * 255 / max(1, w-1))
			img.Pixels[o+1] = uint8(y * 255 / max(1, h-1))
			img.Pixels[o+2] = uint8((x + y) * 255 / max(1, w+h-2))
			img.Pixels[o+3] = uint8(255 - (x+y)*2)
		}
	}
	return img
}

// meanSquaredError compares the first channels of two images of equal size.
func meanSquaredError(t *testing.T, a, b *ir.RGBAImage, channels int) float64 {
	t.Helper()
	var sum float64
	for i := 0; i < len(a.Pixels); i += 4 {
		for c := 0; c < channels; c++ {
			d := float64(a.Pixels[i+c]) - float64(b.Pixels[i+c])
			sum += d * d
		}
	}
	return sum / float64(a.Width*a.Height*channels)
}

func roundTrip(t *testing.T, img *ir.RGBAImage, p Params) *ir.RGBAImage {
	t.Helper()
	data, err := EncodePixels(img, p)
	if err != nil {
		t.Fatalf("EncodePixels(%s): %v", p.Format, err)
	}
	if want := p.Format.DataSize(img.Width, img.Height); len(data) != want {
		t.Fatalf("%s output is %d bytes, want %d", p.Format, len(data), want)
	}
	dec, err := bc.Decompress(&texture.Texture{Width: img.Width, Height: img.Height, Format: p.Format, Data: data}, 2)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	return dec.Crop(img.Width, img.Height)
}

func TestEncodeFormats(t *testing.T) {
	img := makeTestImage(37, 21)
	for _, tc := range []struct {
		name     string
		params   Params
		channels int
		maxMSE   float64
	}{
		{"bc1_q18", Params{Format: texture.BC1, Quality: 18, Threads: 4}, 3, 400},
		{"bc1_q0", Params{Format: texture.BC1, Quality: 0}, 3, 600},
		{"bc3_q14", Params{Format: texture.BC3, Quality: 14, Threads: 2}, 4, 400},
		{"bc7", Params{Format: texture.BC7, Quality: 18, Threads: 3}, 4, 200},
		{"bc7_perceptual", Params{Format: texture.BC7, Quality: 18, Perceptual: true}, 4, 250},
	} {
		t.Run(tc.name, func(t *testing.T) {
			dec := roundTrip(t, img, tc.params)
			mse := meanSquaredError(t, img, dec, tc.channels)
			t.Logf("%s MSE %.2f", tc.name, mse)
			if mse > tc.maxMSE {
				t.Errorf("MSE %.2f exceeds %.2f", mse, tc.maxMSE)
			}
		})
	}
}

func TestHigherQualityIsNotWorse(t *testing.T) {
	img := makeTestImage(32, 32)
	low := roundTrip(t, img, Params{Format: texture.BC1, Quality: 0})
	high := roundTrip(t, img, Params{Format: texture.BC1, Quality: 18})
	lowMSE := meanSquaredError(t, img, low, 3)
	highMSE := meanSquaredError(t, img, high, 3)
	if highMSE > lowMSE {
		t.Errorf("quality 18 MSE %.2f worse than quality 0 MSE %.2f", highMSE, lowMSE)
	}
}

func TestSolidColorIsExact(t *testing.T) {
	img := ir.New(8, 8)
	for i := 0; i < len(img.Pixels); i += 4 {
		copy(img.Pixels[i:i+4], []byte{255, 0, 255, 255})
	}
	for _, tc := range []struct {
		format    texture.Format
		tolerance int
	}{
		{texture.BC1, 0},
		{texture.BC3, 0},
		// mode 6 shares one p-bit per endpoint, so 0 and 255 cannot both be exact
		{texture.BC7, 1},
	} {
		dec := roundTrip(t, img, Params{Format: tc.format, Quality: 18})
		for i := 0; i < len(dec.Pixels); i++ {
			d := int(dec.Pixels[i]) - int(img.Pixels[i])
			if d < -tc.tolerance || d > tc.tolerance {
				t.Fatalf("%s pixel %d = %v, want %v", tc.format, i/4, dec.Pixels[i/4*4:i/4*4+4], img.Pixels[i/4*4:i/4*4+4])
			}
		}
	}
}

func TestBC3KeepsAlpha(t *testing.T) {
	img := ir.New(4, 4)
	for i := 0; i < 16; i++ {
		img.Pixels[i*4+3] = []uint8{0, 255}[i%2]
	}
	dec := roundTrip(t, img, Params{Format: texture.BC3, Quality: 18})
	for i := 0; i < 16; i++ {
		if dec.Pixels[i*4+3] != img.Pixels[i*4+3] {
			t.Errorf("pixel %d alpha = %d, want %d", i, dec.Pixels[i*4+3], img.Pixels[i*4+3])
		}
	}
}

func TestEncodeRejectsBadParams(t *testing.T) {
	img := makeTestImage(4, 4)
	if _, err := EncodePixels(img, Params{Format: texture.BC1, Quality: 19}); err == nil {
		t.Error("expected error for quality 19")
	}
	if _, err := EncodePixels(img, Params{Format: texture.RGBA8}); err == nil {
		t.Error("expected error for RGBA8 target")
	}
	if _, err := EncodePixels(&ir.RGBAImage{Width: 4, Height: 4}, DefaultParams()); err == nil {
		t.Error("expected error for empty pixel buffer")
	}
}

func BenchmarkEncodeBC7(b *testing.B) {
	img := makeTestImage(256, 256)
	p := DefaultParams()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := EncodePixels(img, p); err != nil {
			b.Fatal(err)
		}
	}
}
