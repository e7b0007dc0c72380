// Package dds reads and writes DirectDraw Surface containers holding a
// single 2D texture level in BC1, BC3, BC7 or 32-bit RGBA.
package dds

const (
	magic = "DDS "

	headerSize      = 124
	pixelFormatSize = 32

	flagCaps        = 0x1
	flagHeight      = 0x2
	flagWidth       = 0x4
	flagPitch       = 0x8
	flagPixelFormat = 0x1000
	flagLinearSize  = 0x80000

	pfAlphaPixels = 0x1
	pfFourCC      = 0x4
	pfRGB         = 0x40

	capsTexture = 0x1000

	dimensionTexture2D = 3

	dxgiR8G8B8A8Unorm = 28
	dxgiBC1Unorm      = 71
	dxgiBC1UnormSRGB  = 72
	dxgiBC3Unorm      = 77
	dxgiBC3UnormSRGB  = 78
	dxgiBC7Unorm      = 98
	dxgiBC7UnormSRGB  = 99
)

func fourCC(s string) uint32 {
	return uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24
}

var (
	fourCCDXT1 = fourCC("DXT1")
	fourCCDXT5 = fourCC("DXT5")
	fourCCDX10 = fourCC("DX10")
)

type pixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      uint32
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

type header struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       pixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

type headerDX10 struct {
	DXGIFormat        uint32
	ResourceDimension uint32
	MiscFlag          uint32
	ArraySize         uint32
	MiscFlags2        uint32
}
