package bc

import "encoding/binary"

// bitReader reads little-endian bit fields out of a 128-bit block.
type bitReader struct {
	lo, hi uint64
	pos    uint
}

func newBitReader(src []byte) *bitReader {
	return &bitReader{
		lo: binary.LittleEndian.Uint64(src[0:8]),
		hi: binary.LittleEndian.Uint64(src[8:16]),
	}
}

func (r *bitReader) read(n uint) uint32 {
	var v uint64
	switch {
	case r.pos >= 64:
		v = r.hi >> (r.pos - 64)
	case r.pos+n > 64:
		v = r.lo>>r.pos | r.hi<<(64-r.pos)
	default:
		v = r.lo >> r.pos
	}
	r.pos += n
	return uint32(v & (1<<n - 1))
}

// bitWriter packs little-endian bit fields into a 128-bit block.
type bitWriter struct {
	lo, hi uint64
	pos    uint
}

func (w *bitWriter) write(v uint32, n uint) {
	x := uint64(v) & (1<<n - 1)
	switch {
	case w.pos >= 64:
		w.hi |= x << (w.pos - 64)
	case w.pos+n > 64:
		w.lo |= x << w.pos
		w.hi |= x >> (64 - w.pos)
	default:
		w.lo |= x << w.pos
	}
	w.pos += n
}

func (w *bitWriter) flush(dst []byte) {
	binary.LittleEndian.PutUint64(dst[0:8], w.lo)
	binary.LittleEndian.PutUint64(dst[8:16], w.hi)
}
