package bc

import (
	"encoding/hex"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/yoshiyoshyosh/bcbench/internal/ir"
	"github.com/yoshiyoshyosh/bcbench/internal/texture"
)

func TestBitWriterReader(t *testing.T) {
	fields := []struct {
		v uint32
		n uint
	}{
		{0x5, 3}, {0x7f, 7}, {0x1, 1}, {0x3ff, 10}, {0x12345, 20}, {0xabcdef, 24},
		{0x1f, 5}, {0x0, 2}, {0xffff, 16}, {0x2a, 6}, {0x1234, 13}, {0x3, 2},
	}
	var w bitWriter
	total := uint(0)
	for _, f := range fields {
		w.write(f.v, f.n)
		total += f.n
	}
	if total > 128 {
		t.Fatalf("test fields use %d bits", total)
	}
	var buf [16]byte
	w.flush(buf[:])

	r := newBitReader(buf[:])
	for i, f := range fields {
		if got := r.read(f.n); got != f.v {
			t.Errorf("field %d: got %#x, want %#x", i, got, f.v)
		}
	}
}

func TestUnpack565(t *testing.T) {
	if got := Unpack565(0xffff); got != [3]uint8{255, 255, 255} {
		t.Errorf("white = %v", got)
	}
	if got := Unpack565(0); got != [3]uint8{0, 0, 0} {
		t.Errorf("black = %v", got)
	}
	if got := Unpack565(Pack565(255, 0, 0)); got != [3]uint8{255, 0, 0} {
		t.Errorf("red = %v", got)
	}
}

func TestDecodeBC1Block(t *testing.T) {
	white := Pack565(255, 255, 255)
	black := Pack565(0, 0, 0)

	t.Run("FourColor", func(t *testing.T) {
		var src [8]byte
		// index 0,1,2,3 repeated
		var idx uint32
		for i := 0; i < 16; i++ {
			idx |= uint32(i%4) << (2 * i)
		}
		PutBC1(src[:], white, black, idx)
		var out Block
		DecodeBC1Block(src[:], &out, false)
		want := []uint8{255, 0, 170, 85}
		for i := 0; i < 4; i++ {
			if out[i*4] != want[i] || out[i*4+3] != 255 {
				t.Errorf("pixel %d = %v, want gray %d opaque", i, out[i*4:i*4+4], want[i])
			}
		}
	})

	t.Run("ThreeColorTransparent", func(t *testing.T) {
		var src [8]byte
		PutBC1(src[:], black, white, 0xffffffff)
		var out Block
		DecodeBC1Block(src[:], &out, false)
		for i := 0; i < 16; i++ {
			if out[i*4+3] != 0 {
				t.Fatalf("pixel %d alpha = %d, want 0", i, out[i*4+3])
			}
		}
		DecodeBC1Block(src[:], &out, true)
		if out[3] != 255 || out[0] != 170 {
			t.Errorf("forced four-colour pixel = %v", out[0:4])
		}
	})
}

func TestAlphaPalette(t *testing.T) {
	p := AlphaPalette(255, 0)
	want := [8]uint8{255, 0, 218, 182, 145, 109, 72, 36}
	if p != want {
		t.Errorf("8-value palette = %v, want %v", p, want)
	}
	p = AlphaPalette(0, 255)
	if p[6] != 0 || p[7] != 255 || p[2] != 51 {
		t.Errorf("6-value palette = %v", p)
	}
}

func TestDecodeBC3Block(t *testing.T) {
	var src [16]byte
	var aidx uint64
	for i := 0; i < 16; i++ {
		aidx |= uint64(i%2) << (3 * i)
	}
	PutBC3Alpha(src[0:8], 200, 10, aidx)
	PutBC1(src[8:16], Pack565(0, 0, 255), Pack565(0, 0, 255), 0)
	var out Block
	DecodeBC3Block(src[:], &out)
	for i := 0; i < 16; i++ {
		wantA := uint8(200)
		if i%2 == 1 {
			wantA = 10
		}
		if out[i*4+3] != wantA || out[i*4+2] != 255 {
			t.Errorf("pixel %d = %v", i, out[i*4:i*4+4])
		}
	}
}

func TestBC7Mode6RoundTrip(t *testing.T) {
	e0 := [4]uint8{10, 20, 30, 127}
	e1 := [4]uint8{120, 100, 80, 64}
	var idx [16]uint8
	for i := range idx {
		idx[i] = uint8(15 - i)
	}
	var src [16]byte
	PutBC7Mode6(src[:], e0, e1, 1, 0, idx)
	if Mode(src[:]) != 6 {
		t.Fatalf("mode = %d, want 6", Mode(src[:]))
	}
	var out Block
	if err := DecodeBC7Block(src[:], &out); err != nil {
		t.Fatalf("DecodeBC7Block: %v", err)
	}
	// anchor swap must not change the decoded colours
	for i := 0; i < 16; i++ {
		w := Weights4[idx[i]]
		for c := 0; c < 4; c++ {
			want := Interpolate(e0[c]<<1|1, e1[c]<<1, w)
			if out[i*4+c] != want {
				t.Fatalf("pixel %d channel %d = %d, want %d", i, c, out[i*4+c], want)
			}
		}
	}
}

func TestBC7Mode5RoundTrip(t *testing.T) {
	c0 := [3]uint8{0, 64, 127}
	c1 := [3]uint8{127, 64, 0}
	var cidx, aidx [16]uint8
	for i := range cidx {
		cidx[i] = uint8(3 - i%4)
		aidx[i] = uint8(i % 4)
	}
	var src [16]byte
	PutBC7Mode5(src[:], 0, c0, c1, 30, 220, cidx, aidx)
	var out Block
	if err := DecodeBC7Block(src[:], &out); err != nil {
		t.Fatalf("DecodeBC7Block: %v", err)
	}
	for i := 0; i < 16; i++ {
		for c := 0; c < 3; c++ {
			v0, v1 := c0[c]<<1|c0[c]>>6, c1[c]<<1|c1[c]>>6
			if want := Interpolate(v0, v1, Weights2[cidx[i]]); out[i*4+c] != want {
				t.Fatalf("pixel %d channel %d = %d, want %d", i, c, out[i*4+c], want)
			}
		}
		if want := Interpolate(30, 220, Weights2[aidx[i]]); out[i*4+3] != want {
			t.Fatalf("pixel %d alpha = %d, want %d", i, out[i*4+3], want)
		}
	}
}

func TestDecodeBC7KnownBlocks(t *testing.T) {
	// Blocks packed field by field from the BC7 bit layout; expected pixels
	// follow from the endpoint expansion, weight tables and rotation.
	tests := []struct {
		name   string
		block  string
		pixels map[int][4]uint8
	}{
		{"mode 4 index mode 0", "10c2c3f051c1cfc9c9c99fc3ab98c3ab", map[int][4]uint8{0: {92, 91, 193, 114}, 1: {92, 91, 193, 114}, 6: {171, 49, 128, 83}, 15: {247, 8, 66, 180}}},
		{"mode 4 index mode 1", "90c2c3f051c1cfc9c9c99fc3ab98c3ab", map[int][4]uint8{0: {113, 80, 175, 93}, 1: {113, 80, 175, 93}, 6: {81, 97, 202, 170}, 15: {182, 43, 119, 243}}},
		{"mode 4 rotation 2", "50c2c3f051c1cfc9c9c99fc3ab98c3ab", map[int][4]uint8{0: {92, 114, 193, 91}, 1: {92, 114, 193, 91}, 6: {171, 83, 128, 49}, 15: {247, 180, 66, 8}}},
		{"mode 5 rotation 1", "600a3c70f047214700aa54ff1b1b1b1b", map[int][4]uint8{0: {140, 129, 255, 20}, 1: {77, 129, 255, 20}, 6: {140, 89, 198, 93}, 15: {200, 6, 80, 241}}},
		{"mode 5 rotation 2", "a00a3c70f047214700aa54ff1b1b1b1b", map[int][4]uint8{0: {20, 140, 255, 129}, 1: {20, 77, 255, 129}, 6: {93, 140, 198, 89}, 15: {241, 200, 80, 6}}},
		{"mode 5 rotation 3", "e00a3c70f047214700aa54ff1b1b1b1b", map[int][4]uint8{0: {20, 129, 140, 255}, 1: {20, 129, 77, 255}, 6: {93, 89, 140, 198}, 15: {241, 6, 200, 80}}},
		{"mode 6", "400519f00702ff801032547698badcfe", map[int][4]uint8{0: {21, 1, 129, 255}, 1: {32, 17, 129, 239}, 6: {94, 104, 129, 151}, 15: {200, 254, 128, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := hex.DecodeString(tt.block)
			if err != nil {
				t.Fatal(err)
			}
			var out Block
			if err := DecodeBC7Block(src, &out); err != nil {
				t.Fatalf("DecodeBC7Block: %v", err)
			}
			for i, want := range tt.pixels {
				got := [4]uint8{out[i*4], out[i*4+1], out[i*4+2], out[i*4+3]}
				if got != want {
					t.Errorf("pixel %d: got %v, want %v", i, got, want)
				}
			}
		})
	}
}

func TestBC7ReservedAndPartitioned(t *testing.T) {
	var out Block
	out[0] = 99
	if err := DecodeBC7Block(make([]byte, 16), &out); err != nil {
		t.Fatalf("reserved mode: %v", err)
	}
	if out != (Block{}) {
		t.Error("reserved mode should decode to transparent black")
	}

	src := make([]byte, 16)
	src[0] = 0x02 // mode 1
	if err := DecodeBC7Block(src, &out); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("mode 1: got %v, want ErrUnsupportedMode", err)
	}
}

func TestExtractBlockReplicatesEdges(t *testing.T) {
	img := ir.New(5, 2)
	for i := range img.Pixels {
		img.Pixels[i] = uint8(i)
	}
	b := ExtractBlock(img, 1, 0)
	// block x=1 covers image column 4 only, replicated across the block
	last := img.Offset(4, 1)
	if b[15*4] != img.Pixels[last] {
		t.Errorf("bottom-right pixel = %d, want %d", b[15*4], img.Pixels[last])
	}
	if b[0] != img.Pixels[img.Offset(4, 0)] {
		t.Errorf("top-left pixel = %d, want %d", b[0], img.Pixels[img.Offset(4, 0)])
	}
}

func TestDecompress(t *testing.T) {
	tex := texture.New(6, 5, texture.BC1)
	for i := 0; i < len(tex.Data); i += 8 {
		PutBC1(tex.Data[i:i+8], Pack565(255, 0, 0), Pack565(255, 0, 0), 0)
	}
	img, err := Decompress(tex, 4)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if img.Width != 8 || img.Height != 8 {
		t.Fatalf("decoded size %dx%d, want 8x8", img.Width, img.Height)
	}
	for i := 0; i < len(img.Pixels); i += 4 {
		if img.Pixels[i] != 255 || img.Pixels[i+1] != 0 || img.Pixels[i+3] != 255 {
			t.Fatalf("pixel %d = %v", i/4, img.Pixels[i:i+4])
		}
	}

	if _, err := Decompress(&texture.Texture{Width: 4, Height: 4, Format: texture.RGBA8, Data: make([]byte, 64)}, 1); err == nil {
		t.Error("expected error for uncompressed texture")
	}
}

func TestForEachRow(t *testing.T) {
	var count atomic.Int64
	if err := ForEachRow(100, 8, func(int) error {
		count.Add(1)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if count.Load() != 100 {
		t.Errorf("visited %d rows, want 100", count.Load())
	}

	boom := errors.New("boom")
	err := ForEachRow(10, 3, func(r int) error {
		if r == 7 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want boom", err)
	}
}

func TestLeastSquares(t *testing.T) {
	var p Pixels
	var w [16]float32
	for i := 0; i < 16; i++ {
		w[i] = float32(i%4) / 3
		for c := 0; c < 3; c++ {
			p[i][c] = 30 + w[i]*(200-30)
		}
	}
	e0, e1, ok := LeastSquares(&p, 3, &w)
	if !ok {
		t.Fatal("system reported singular")
	}
	if d := e0[0] - 30; d > 0.01 || d < -0.01 {
		t.Errorf("e0 = %v, want 30", e0[0])
	}
	if d := e1[0] - 200; d > 0.01 || d < -0.01 {
		t.Errorf("e1 = %v, want 200", e1[0])
	}
	var flat [16]float32
	if _, _, ok := LeastSquares(&p, 3, &flat); ok {
		t.Error("expected singular system for constant weights")
	}
}
