package dds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/yoshiyoshyosh/bcbench/internal/texture"
)

func TestWriteReadRoundTrip(t *testing.T) {
	for _, f := range []texture.Format{texture.BC1, texture.BC3, texture.BC7, texture.RGBA8} {
		t.Run(f.String(), func(t *testing.T) {
			tex := texture.New(13, 9, f)
			for i := range tex.Data {
				tex.Data[i] = byte(i * 31)
			}
			data, err := Encode(tex)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if string(data[:4]) != "DDS " {
				t.Fatal("missing DDS magic")
			}

			info, err := GetInfo(data)
			if err != nil {
				t.Fatalf("GetInfo: %v", err)
			}
			if info.Width != 13 || info.Height != 9 || info.Format != f {
				t.Errorf("info = %+v", info)
			}
			if want := len(data) - info.DataOffset; info.DataSize != want {
				t.Errorf("DataSize = %d, file has %d payload bytes", info.DataSize, want)
			}
			if f == texture.BC7 && info.DXGIFormat != dxgiBC7Unorm {
				t.Errorf("DXGIFormat = %d, want %d", info.DXGIFormat, dxgiBC7Unorm)
			}

			got, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !bytes.Equal(got.Data, tex.Data) {
				t.Error("payload changed in round trip")
			}
		})
	}
}

func TestHeaderLayout(t *testing.T) {
	data, err := Encode(texture.New(4, 4, texture.BC1))
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 4+headerSize+8 {
		t.Errorf("BC1 4x4 file is %d bytes, want %d", len(data), 4+headerSize+8)
	}
	if string(data[84:88]) != "DXT1" {
		t.Errorf("FourCC = %q, want DXT1", data[84:88])
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := Decode([]byte("PNG\x00 not a texture")); !errors.Is(err, ErrNotDDS) {
		t.Errorf("got %v, want ErrNotDDS", err)
	}
	data, _ := Encode(texture.New(8, 8, texture.BC3))
	if _, err := Decode(data[:len(data)-1]); err == nil {
		t.Error("expected error for truncated payload")
	}
	if _, err := Decode(data[:50]); err == nil {
		t.Error("expected error for truncated header")
	}
}

func TestDecodeRejectsOversizedHeaders(t *testing.T) {
	setSize := func(data []byte, w, h uint32) []byte {
		out := bytes.Clone(data)
		binary.LittleEndian.PutUint32(out[12:], h)
		binary.LittleEndian.PutUint32(out[16:], w)
		return out
	}
	bc1, _ := Encode(texture.New(8, 8, texture.BC1))
	bc7, _ := Encode(texture.New(8, 8, texture.BC7))

	tests := []struct {
		name string
		data []byte
	}{
		{"overflowing BC1", setSize(bc1, 0xFFFFFFF0, 0xFFFFFFF0)},
		{"above limit BC7", setSize(bc7, 65536, 65536)},
		{"valid size, short data", setSize(bc7, MaxDimension, MaxDimension)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data); err == nil {
				t.Error("Decode: expected error")
			}
			if _, err := Read(bytes.NewReader(tt.data)); err == nil {
				t.Error("Read: expected error")
			}
		})
	}
}
