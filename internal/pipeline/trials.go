package pipeline

import (
	"fmt"

	"github.com/yoshiyoshyosh/bcbench/internal/bcenc"
	"github.com/yoshiyoshyosh/bcbench/internal/cmpr"
	"github.com/yoshiyoshyosh/bcbench/internal/ir"
	"github.com/yoshiyoshyosh/bcbench/internal/texture"
)

// DefaultImages are the names (without .png) of the standard test set.
var DefaultImages = []string{
	"carrots", "colorpatch", "flowers", "helicopter", "noise_extreme_2", "noise_extreme",
	"noise_slight", "normal_avalisuit", "paperclips", "rainbow", "sap_body", "shanghai",
	"squares", "texture_avalisuit", "wings", "Grass001_4K-PNG_Color", "Grass001_4K-PNG_NormalGL",
	"PavingStones150_4K-PNG_Color", "PavingStones150_4K-PNG_NormalGL",
}

// EncodeFunc compresses img to the trial's format using threads workers.
type EncodeFunc func(img *ir.RGBAImage, threads int) ([]byte, error)

// Trial is one encoder configuration measured on every image.
type Trial struct {
	Format  texture.Format
	Encoder string // name shown in output
	Param   string // quality setting shown in output, may be empty
	Encode  EncodeFunc
}

// Label returns "<Codec> (<encoder>, <param>)" or "<Codec> (<encoder>)".
func (t Trial) Label() string {
	if t.Param == "" {
		return fmt.Sprintf("%s (%s)", t.Format, t.Encoder)
	}
	return fmt.Sprintf("%s (%s, %s)", t.Format, t.Encoder, t.Param)
}

// BcencTrial encodes with the level-based engine.
func BcencTrial(f texture.Format, quality int, perceptual bool) Trial {
	t := Trial{
		Format:  f,
		Encoder: bcenc.Name,
		Encode: func(img *ir.RGBAImage, threads int) ([]byte, error) {
			return bcenc.EncodePixels(img, bcenc.Params{
				Format:     f,
				Quality:    quality,
				Perceptual: perceptual,
				Threads:    threads,
			})
		},
	}
	if f == texture.BC7 {
		if perceptual {
			t.Encoder = bcenc.Name + "_perceptual"
		}
	} else {
		t.Param = fmt.Sprint(quality)
	}
	return t
}

// CmprTrial encodes with the quality-float engine. param is the quality as
// it should be printed.
func CmprTrial(f texture.Format, quality float32, param string) Trial {
	return Trial{
		Format:  f,
		Encoder: cmpr.Name,
		Param:   param,
		Encode: func(img *ir.RGBAImage, threads int) ([]byte, error) {
			src := &texture.Texture{Width: img.Width, Height: img.Height, Format: texture.RGBA8, Data: img.Pixels}
			dst := texture.New(img.Width, img.Height, f)
			if err := cmpr.Convert(src, dst, cmpr.Options{Quality: quality, Threads: threads}); err != nil {
				return nil, fmt.Errorf("couldn't convert: %w", err)
			}
			return dst.Data, nil
		},
	}
}

// DefaultTrials returns the standard comparison, in output order.
func DefaultTrials() []Trial {
	return []Trial{
		BcencTrial(texture.BC1, 18, false),
		BcencTrial(texture.BC1, 14, false),
		BcencTrial(texture.BC3, 18, false),
		BcencTrial(texture.BC3, 14, false),
		BcencTrial(texture.BC7, bcenc.MaxQuality, false),
		BcencTrial(texture.BC7, bcenc.MaxQuality, true),
		CmprTrial(texture.BC1, 1.0, "1.0"),
		CmprTrial(texture.BC3, 1.0, "1.0"),
		CmprTrial(texture.BC7, 0.25, "0.25"),
	}
}
