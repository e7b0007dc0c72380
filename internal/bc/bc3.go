package bc

// AlphaPalette returns the eight alpha values selectable by a BC3 alpha block.
func AlphaPalette(a0, a1 uint8) [8]uint8 {
	var p [8]uint8
	p[0], p[1] = a0, a1
	if a0 > a1 {
		for i := 1; i < 7; i++ {
			p[i+1] = uint8(((7-i)*int(a0) + i*int(a1)) / 7)
		}
	} else {
		for i := 1; i < 5; i++ {
			p[i+1] = uint8(((5-i)*int(a0) + i*int(a1)) / 5)
		}
		p[6], p[7] = 0, 255
	}
	return p
}

// PutBC3Alpha writes an 8-byte alpha block with sixteen 3-bit indices.
func PutBC3Alpha(dst []byte, a0, a1 uint8, indices uint64) {
	dst[0] = a0
	dst[1] = a1
	for i := 0; i < 6; i++ {
		dst[2+i] = byte(indices >> (8 * i))
	}
}

// DecodeBC3AlphaBlock decodes an alpha block into the A channel of out.
func DecodeBC3AlphaBlock(src []byte, out *Block) {
	p := AlphaPalette(src[0], src[1])
	var indices uint64
	for i := 0; i < 6; i++ {
		indices |= uint64(src[2+i]) << (8 * i)
	}
	for i := 0; i < 16; i++ {
		out[i*4+3] = p[indices>>(3*i)&7]
	}
}

// DecodeBC3Block decodes a 16-byte BC3 block: alpha first, then colour.
func DecodeBC3Block(src []byte, out *Block) {
	DecodeBC1Block(src[8:16], out, true)
	DecodeBC3AlphaBlock(src[0:8], out)
}
