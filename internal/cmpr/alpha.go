package cmpr

import "github.com/yoshiyoshyosh/bcbench/internal/bc"

func encodeAlpha(b *bc.Block, quality float32, dst []byte) {
	p := b.ToPixels()
	lo, hi := 255, 0
	for i := 0; i < 16; i++ {
		a := int(b[i*4+3])
		lo = min(lo, a)
		hi = max(hi, a)
	}
	if lo == hi {
		bc.PutBC3Alpha(dst, uint8(hi), uint8(lo), 0)
		return
	}

	a0, a1 := uint8(hi), uint8(lo)
	idx, err := bc.FitAlpha(&p, a0, a1)
	if quality < clusterFitQuality {
		bc.PutBC3Alpha(dst, a0, a1, idx)
		return
	}

	radius := int(quality * 4)
	for d0 := -radius; d0 <= radius && err > 0; d0++ {
		for d1 := -radius; d1 <= radius; d1++ {
			h := hi + d0
			l := lo + d1
			if h < 0 || h > 255 || l < 0 || l > 255 || h == l {
				continue
			}
			// both orders: descending selects eight values, ascending six
			for _, pair := range [2][2]int{{h, l}, {l, h}} {
				ci, ce := bc.FitAlpha(&p, uint8(pair[0]), uint8(pair[1]))
				if ce < err {
					a0, a1, idx, err = uint8(pair[0]), uint8(pair[1]), ci, ce
				}
			}
		}
	}
	bc.PutBC3Alpha(dst, a0, a1, idx)
}
