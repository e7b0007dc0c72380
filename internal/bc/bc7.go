package bc

import (
	"errors"
	"fmt"
)

// ErrUnsupportedMode is returned for BC7 blocks using a partitioned mode.
// Only the single-subset modes 4, 5 and 6 are decoded.
var ErrUnsupportedMode = errors.New("unsupported BC7 mode")

// Interpolation weights for 2, 3 and 4 bit BC7 indices.
var (
	Weights2 = [4]int{0, 21, 43, 64}
	Weights3 = [8]int{0, 9, 18, 27, 37, 46, 55, 64}
	Weights4 = [16]int{0, 4, 9, 13, 17, 21, 26, 30, 34, 38, 43, 47, 51, 55, 60, 64}
)

// Interpolate blends two 8-bit endpoints with a BC7 weight out of 64.
func Interpolate(e0, e1 uint8, w int) uint8 {
	return uint8(((64-w)*int(e0) + w*int(e1) + 32) >> 6)
}

// Mode returns the BC7 mode of a block, or -1 for the reserved encoding.
func Mode(src []byte) int {
	for m := 0; m < 8; m++ {
		if src[0]&(1<<m) != 0 {
			return m
		}
	}
	return -1
}

// DecodeBC7Block decodes a 16-byte BC7 block.
func DecodeBC7Block(src []byte, out *Block) error {
	mode := Mode(src)
	switch mode {
	case -1:
		*out = Block{}
		return nil
	case 4:
		decodeMode4(src, out)
	case 5:
		decodeMode5(src, out)
	case 6:
		decodeMode6(src, out)
	default:
		return fmt.Errorf("%w %d", ErrUnsupportedMode, mode)
	}
	return nil
}

func decodeMode6(src []byte, out *Block) {
	r := newBitReader(src)
	r.read(7)
	var e [2][4]uint8
	for c := 0; c < 4; c++ {
		e[0][c] = uint8(r.read(7))
		e[1][c] = uint8(r.read(7))
	}
	p0, p1 := uint8(r.read(1)), uint8(r.read(1))
	for c := 0; c < 4; c++ {
		e[0][c] = e[0][c]<<1 | p0
		e[1][c] = e[1][c]<<1 | p1
	}
	for i := 0; i < 16; i++ {
		n := uint(4)
		if i == 0 {
			n = 3
		}
		w := Weights4[r.read(n)]
		for c := 0; c < 4; c++ {
			out[i*4+c] = Interpolate(e[0][c], e[1][c], w)
		}
	}
}

func decodeMode5(src []byte, out *Block) {
	r := newBitReader(src)
	r.read(6)
	rotation := r.read(2)
	var e [2][4]uint8
	for c := 0; c < 3; c++ {
		v0, v1 := uint8(r.read(7)), uint8(r.read(7))
		e[0][c] = v0<<1 | v0>>6
		e[1][c] = v1<<1 | v1>>6
	}
	e[0][3], e[1][3] = uint8(r.read(8)), uint8(r.read(8))
	var cidx, aidx [16]int
	readIndices(r, cidx[:], 2)
	readIndices(r, aidx[:], 2)
	for i := 0; i < 16; i++ {
		for c := 0; c < 3; c++ {
			out[i*4+c] = Interpolate(e[0][c], e[1][c], Weights2[cidx[i]])
		}
		out[i*4+3] = Interpolate(e[0][3], e[1][3], Weights2[aidx[i]])
	}
	rotate(out, rotation)
}

func decodeMode4(src []byte, out *Block) {
	r := newBitReader(src)
	r.read(5)
	rotation := r.read(2)
	idxMode := r.read(1)
	var e [2][4]uint8
	for c := 0; c < 3; c++ {
		v0, v1 := uint8(r.read(5)), uint8(r.read(5))
		e[0][c] = v0<<3 | v0>>2
		e[1][c] = v1<<3 | v1>>2
	}
	a0, a1 := uint8(r.read(6)), uint8(r.read(6))
	e[0][3] = a0<<2 | a0>>4
	e[1][3] = a1<<2 | a1>>4
	var idx2, idx3 [16]int
	readIndices(r, idx2[:], 2)
	readIndices(r, idx3[:], 3)
	for i := 0; i < 16; i++ {
		cw, aw := Weights2[idx2[i]], Weights3[idx3[i]]
		if idxMode == 1 {
			cw, aw = Weights3[idx3[i]], Weights2[idx2[i]]
		}
		for c := 0; c < 3; c++ {
			out[i*4+c] = Interpolate(e[0][c], e[1][c], cw)
		}
		out[i*4+3] = Interpolate(e[0][3], e[1][3], aw)
	}
	rotate(out, rotation)
}

func readIndices(r *bitReader, dst []int, bits uint) {
	for i := range dst {
		n := bits
		if i == 0 {
			n--
		}
		dst[i] = int(r.read(n))
	}
}

func rotate(out *Block, rotation uint32) {
	if rotation == 0 {
		return
	}
	ch := int(rotation - 1)
	for i := 0; i < 16; i++ {
		out[i*4+ch], out[i*4+3] = out[i*4+3], out[i*4+ch]
	}
}

// PutBC7Mode6 writes a mode 6 block. Endpoints are 7-bit RGBA values, p0 and
// p1 the shared p-bits, indices 4-bit. The anchor constraint is applied here:
// if pixel 0 would need the high index bit the endpoints are swapped.
func PutBC7Mode6(dst []byte, e0, e1 [4]uint8, p0, p1 uint8, indices [16]uint8) {
	if indices[0] >= 8 {
		e0, e1 = e1, e0
		p0, p1 = p1, p0
		for i := range indices {
			indices[i] = 15 - indices[i]
		}
	}
	var w bitWriter
	w.write(1<<6, 7)
	for c := 0; c < 4; c++ {
		w.write(uint32(e0[c]), 7)
		w.write(uint32(e1[c]), 7)
	}
	w.write(uint32(p0), 1)
	w.write(uint32(p1), 1)
	writeIndices(&w, indices[:], 4)
	w.flush(dst)
}

// PutBC7Mode5 writes a mode 5 block with the given rotation. Colour
// endpoints are 7-bit, alpha endpoints 8-bit, both index sets 2-bit.
func PutBC7Mode5(dst []byte, rotation uint8, c0, c1 [3]uint8, a0, a1 uint8, cidx, aidx [16]uint8) {
	if cidx[0] >= 2 {
		c0, c1 = c1, c0
		for i := range cidx {
			cidx[i] = 3 - cidx[i]
		}
	}
	if aidx[0] >= 2 {
		a0, a1 = a1, a0
		for i := range aidx {
			aidx[i] = 3 - aidx[i]
		}
	}
	var w bitWriter
	w.write(1<<5, 6)
	w.write(uint32(rotation), 2)
	for c := 0; c < 3; c++ {
		w.write(uint32(c0[c]), 7)
		w.write(uint32(c1[c]), 7)
	}
	w.write(uint32(a0), 8)
	w.write(uint32(a1), 8)
	writeIndices(&w, cidx[:], 2)
	writeIndices(&w, aidx[:], 2)
	w.flush(dst)
}

func writeIndices(w *bitWriter, indices []uint8, bits uint) {
	for i, v := range indices {
		n := bits
		if i == 0 {
			n--
		}
		w.write(uint32(v), n)
	}
}
