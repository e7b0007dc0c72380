package dds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/yoshiyoshyosh/bcbench/internal/texture"
)

// Write stores tex as a DDS file. BC1 and BC3 use the legacy DXT1/DXT5
// FourCC; BC7 needs the DX10 extension header.
func Write(w io.Writer, tex *texture.Texture) error {
	if err := tex.Validate(); err != nil {
		return err
	}

	h := header{
		Size:        headerSize,
		Flags:       flagCaps | flagHeight | flagWidth | flagPixelFormat,
		Height:      uint32(tex.Height),
		Width:       uint32(tex.Width),
		MipMapCount: 1,
		Caps:        capsTexture,
	}
	h.PixelFormat.Size = pixelFormatSize

	var dx10 *headerDX10
	switch tex.Format {
	case texture.BC1:
		h.PixelFormat.Flags = pfFourCC
		h.PixelFormat.FourCC = fourCCDXT1
	case texture.BC3:
		h.PixelFormat.Flags = pfFourCC
		h.PixelFormat.FourCC = fourCCDXT5
	case texture.BC7:
		h.PixelFormat.Flags = pfFourCC
		h.PixelFormat.FourCC = fourCCDX10
		dx10 = &headerDX10{
			DXGIFormat:        dxgiBC7Unorm,
			ResourceDimension: dimensionTexture2D,
			ArraySize:         1,
		}
	case texture.RGBA8:
		h.PixelFormat.Flags = pfRGB | pfAlphaPixels
		h.PixelFormat.RGBBitCount = 32
		h.PixelFormat.RBitMask = 0x000000ff
		h.PixelFormat.GBitMask = 0x0000ff00
		h.PixelFormat.BBitMask = 0x00ff0000
		h.PixelFormat.ABitMask = 0xff000000
	default:
		return fmt.Errorf("dds: cannot store %s", tex.Format)
	}
	if tex.Format.Compressed() {
		h.Flags |= flagLinearSize
		h.PitchOrLinearSize = uint32(len(tex.Data))
	} else {
		h.Flags |= flagPitch
		h.PitchOrLinearSize = uint32(tex.Width * 4)
	}

	var buf bytes.Buffer
	buf.WriteString(magic)
	if err := binary.Write(&buf, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("dds: encoding header: %w", err)
	}
	if dx10 != nil {
		if err := binary.Write(&buf, binary.LittleEndian, dx10); err != nil {
			return fmt.Errorf("dds: encoding DX10 header: %w", err)
		}
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("dds: writing header: %w", err)
	}
	if _, err := w.Write(tex.Data); err != nil {
		return fmt.Errorf("dds: writing data: %w", err)
	}
	return nil
}

// Encode returns tex as DDS bytes.
func Encode(tex *texture.Texture) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, tex); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
