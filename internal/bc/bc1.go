package bc

import "encoding/binary"

// PutBC1 writes a BC1 colour block: two RGB565 endpoints and sixteen 2-bit
// indices, pixel 0 in the lowest bits.
func PutBC1(dst []byte, c0, c1 uint16, indices uint32) {
	binary.LittleEndian.PutUint16(dst[0:2], c0)
	binary.LittleEndian.PutUint16(dst[2:4], c1)
	binary.LittleEndian.PutUint32(dst[4:8], indices)
}

// DecodeBC1Block decodes an 8-byte colour block. When forceFourColor is set
// the endpoint order is ignored, as BC3 colour blocks require.
func DecodeBC1Block(src []byte, out *Block, forceFourColor bool) {
	c0 := binary.LittleEndian.Uint16(src[0:2])
	c1 := binary.LittleEndian.Uint16(src[2:4])
	indices := binary.LittleEndian.Uint32(src[4:8])
	p := BC1Palette(c0, c1, forceFourColor || c0 > c1)
	for i := 0; i < 16; i++ {
		c := p[indices>>(2*i)&3]
		copy(out[i*4:i*4+4], c[:])
	}
}
