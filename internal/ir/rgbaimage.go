package ir

import (
	"fmt"
	"image"
)

// RGBAImage is the intermediate representation passed between the image
// loader, the encoders, the block decoders and the metric. Pixels are stored
// as interleaved R,G,B,A bytes with straight alpha (4 bytes per pixel,
// row-major order).
type RGBAImage struct {
	Width  int
	Height int
	Pixels []byte // len = Width * Height * 4
}

// New allocates a zeroed image.
func New(width, height int) *RGBAImage {
	return &RGBAImage{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*4),
	}
}

// Validate checks that the pixel buffer matches the dimensions.
func (m *RGBAImage) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", m.Width, m.Height)
	}
	if expected := m.Width * m.Height * 4; len(m.Pixels) != expected {
		return fmt.Errorf("expected %d RGBA bytes for %dx%d, got %d", expected, m.Width, m.Height, len(m.Pixels))
	}
	return nil
}

// Offset returns the index of pixel (x, y) in Pixels.
func (m *RGBAImage) Offset(x, y int) int {
	return (y*m.Width + x) * 4
}

// Crop returns a copy of the top-left w x h region.
func (m *RGBAImage) Crop(w, h int) *RGBAImage {
	if w > m.Width {
		w = m.Width
	}
	if h > m.Height {
		h = m.Height
	}
	out := New(w, h)
	for y := 0; y < h; y++ {
		copy(out.Pixels[y*w*4:(y+1)*w*4], m.Pixels[y*m.Width*4:y*m.Width*4+w*4])
	}
	return out
}

// DropAlpha sets every pixel fully opaque, leaving the colour channels
// untouched.
func (m *RGBAImage) DropAlpha() {
	for i := 3; i < len(m.Pixels); i += 4 {
		m.Pixels[i] = 255
	}
}

// HasAlpha reports whether any pixel is not fully opaque.
func (m *RGBAImage) HasAlpha() bool {
	for i := 3; i < len(m.Pixels); i += 4 {
		if m.Pixels[i] != 255 {
			return true
		}
	}
	return false
}

// FromNRGBA wraps an *image.NRGBA without copying when its stride is tight.
func FromNRGBA(src *image.NRGBA) *RGBAImage {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if src.Stride == w*4 && b.Min == (image.Point{}) {
		return &RGBAImage{Width: w, Height: h, Pixels: src.Pix[:w*h*4]}
	}
	out := New(w, h)
	for y := 0; y < h; y++ {
		off := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out.Pixels[y*w*4:], src.Pix[off:off+w*4])
	}
	return out
}

// NRGBA returns a view of the image as *image.NRGBA sharing the pixel buffer.
func (m *RGBAImage) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    m.Pixels,
		Stride: m.Width * 4,
		Rect:   image.Rect(0, 0, m.Width, m.Height),
	}
}
