package bc

// Pack565 quantises an 8-bit colour to RGB565 with rounding.
func Pack565(r, g, b float32) uint16 {
	ri := quant(r, 31)
	gi := quant(g, 63)
	bi := quant(b, 31)
	return uint16(ri<<11 | gi<<5 | bi)
}

func quant(v float32, max int) int {
	q := int(v*float32(max)/255 + 0.5)
	if q < 0 {
		return 0
	}
	if q > max {
		return max
	}
	return q
}

// Unpack565 expands an RGB565 value to 8 bits per channel.
func Unpack565(c uint16) [3]uint8 {
	r := uint8(c >> 11 & 31)
	g := uint8(c >> 5 & 63)
	b := uint8(c & 31)
	return [3]uint8{r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2}
}

// BC1Palette returns the four colours selectable by a BC1 colour block.
// In three-colour mode the last entry is transparent black.
func BC1Palette(c0, c1 uint16, fourColor bool) [4][4]uint8 {
	e0 := Unpack565(c0)
	e1 := Unpack565(c1)
	var p [4][4]uint8
	p[0] = [4]uint8{e0[0], e0[1], e0[2], 255}
	p[1] = [4]uint8{e1[0], e1[1], e1[2], 255}
	if fourColor {
		for i := 0; i < 3; i++ {
			p[2][i] = uint8((2*int(e0[i]) + int(e1[i])) / 3)
			p[3][i] = uint8((int(e0[i]) + 2*int(e1[i])) / 3)
		}
		p[2][3], p[3][3] = 255, 255
	} else {
		for i := 0; i < 3; i++ {
			p[2][i] = uint8((int(e0[i]) + int(e1[i])) / 2)
		}
		p[2][3] = 255
	}
	return p
}
