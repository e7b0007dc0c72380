package bcenc

import "github.com/yoshiyoshyosh/bcbench/internal/bc"

// encodeAlpha writes a BC3 alpha block. Levels 14 and up search a small
// window around the extremes in both palette modes.
func encodeAlpha(b *bc.Block, level int, dst []byte) {
	p := b.ToPixels()
	lo, hi := uint8(255), uint8(0)
	for i := 0; i < 16; i++ {
		a := b[i*4+3]
		lo = min(lo, a)
		hi = max(hi, a)
	}
	if lo == hi {
		bc.PutBC3Alpha(dst, hi, lo, 0)
		return
	}

	bestA0, bestA1 := hi, lo
	bestIdx, bestErr := bc.FitAlpha(&p, hi, lo)

	radius := 0
	switch {
	case level >= MaxQuality:
		radius = 3
	case level >= 14:
		radius = 1
	}
	for d0 := -radius; d0 <= radius && bestErr > 0; d0++ {
		for d1 := -radius; d1 <= radius; d1++ {
			a0 := clampByte(int(hi) + d0)
			a1 := clampByte(int(lo) + d1)
			if a0 <= a1 {
				continue
			}
			if idx, err := bc.FitAlpha(&p, a0, a1); err < bestErr {
				bestA0, bestA1, bestIdx, bestErr = a0, a1, idx, err
			}
		}
	}

	// six-value mode has exact 0 and 255 entries, useful for cut-outs
	if level >= 10 && bestErr > 0 {
		inner0, inner1 := uint8(255), uint8(0)
		for i := 0; i < 16; i++ {
			a := b[i*4+3]
			if a == 0 || a == 255 {
				continue
			}
			inner0 = min(inner0, a)
			inner1 = max(inner1, a)
		}
		if inner0 > inner1 {
			inner0, inner1 = 0, 255
		}
		if idx, err := bc.FitAlpha(&p, inner0, inner1); err < bestErr {
			bestA0, bestA1, bestIdx, bestErr = inner0, inner1, idx, err
		}
	}

	bc.PutBC3Alpha(dst, bestA0, bestA1, bestIdx)
}

func clampByte(v int) uint8 {
	return uint8(max(0, min(255, v)))
}
