package main

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/yoshiyoshyosh/bcbench/internal/bcenc"
	"github.com/yoshiyoshyosh/bcbench/internal/cmpr"
	"github.com/yoshiyoshyosh/bcbench/internal/dds"
	"github.com/yoshiyoshyosh/bcbench/internal/pipeline"
	"github.com/yoshiyoshyosh/bcbench/internal/store"
	"github.com/yoshiyoshyosh/bcbench/internal/texture"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Compress an image to a BC1/BC3/BC7 DDS file",
	Args:  cobra.NoArgs,
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().StringP("input", "i", "", "Input image file")
	encodeCmd.Flags().StringP("output", "o", "", "Output DDS file")
	encodeCmd.Flags().String("format", "bc7", "Block format (bc1, bc3, bc7)")
	encodeCmd.Flags().String("encoder", bcenc.Name, "Encoder engine (bcenc, cmpr)")
	encodeCmd.Flags().Float64("quality", -1, "Quality: bcenc level 0-18 or cmpr 0.0-1.0 (default: engine default)")
	encodeCmd.Flags().Bool("perceptual", false, "Use perceptual error weighting (bcenc BC7)")
	encodeCmd.Flags().Int("threads", runtime.NumCPU(), "Worker threads")
	encodeCmd.Flags().Bool("zstd", false, "Compress the DDS file with zstd")
	encodeCmd.MarkFlagRequired("input")
	encodeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(encodeCmd)
}

// bcencLevel maps --quality to a bcenc level. Negative selects the default;
// fractional values are rejected.
func bcencLevel(quality float64) (int, error) {
	if quality < 0 {
		return bcenc.DefaultParams().Quality, nil
	}
	if quality != math.Trunc(quality) || quality > bcenc.MaxQuality {
		return 0, fmt.Errorf("bcenc quality must be an integer level 0-%d, got %v", bcenc.MaxQuality, quality)
	}
	return int(quality), nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	formatStr, _ := cmd.Flags().GetString("format")
	encoder, _ := cmd.Flags().GetString("encoder")
	quality, _ := cmd.Flags().GetFloat64("quality")
	perceptual, _ := cmd.Flags().GetBool("perceptual")
	threads, _ := cmd.Flags().GetInt("threads")
	useZstd, _ := cmd.Flags().GetBool("zstd")

	format, err := texture.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	if !format.Compressed() {
		return fmt.Errorf("format %s is not block compressed", format)
	}

	var trial pipeline.Trial
	switch encoder {
	case bcenc.Name:
		level, err := bcencLevel(quality)
		if err != nil {
			return err
		}
		trial = pipeline.BcencTrial(format, level, perceptual)
	case cmpr.Name:
		q := cmpr.DefaultOptions().Quality
		if quality >= 0 {
			q = float32(quality)
		}
		trial = pipeline.CmprTrial(format, q, strconv.FormatFloat(float64(q), 'f', -1, 32))
	default:
		return fmt.Errorf("unknown encoder %q (want %s or %s)", encoder, bcenc.Name, cmpr.Name)
	}

	img, err := pipeline.LoadImage(inputPath)
	if err != nil {
		return err
	}

	start := time.Now()
	data, err := trial.Encode(img, max(1, threads))
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	elapsed := time.Since(start)

	out, err := dds.Encode(&texture.Texture{Width: img.Width, Height: img.Height, Format: format, Data: data})
	if err != nil {
		return fmt.Errorf("writing DDS: %w", err)
	}
	if useZstd {
		if out, err = store.ZstdCompress(out); err != nil {
			return fmt.Errorf("zstd: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("Encoded %dx%d as %s in %.3fs\n", img.Width, img.Height, trial.Label(), elapsed.Seconds())
	fmt.Printf("Output: %s (%d bytes, payload %d bytes)\n", outputPath, len(out), len(data))
	return nil
}
