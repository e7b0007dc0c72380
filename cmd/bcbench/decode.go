package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/yoshiyoshyosh/bcbench/internal/bc"
	"github.com/yoshiyoshyosh/bcbench/internal/dds"
	"github.com/yoshiyoshyosh/bcbench/internal/ir"
	"github.com/yoshiyoshyosh/bcbench/internal/store"
	"github.com/yoshiyoshyosh/bcbench/internal/texture"
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decompress a DDS (optionally .zst) file to PNG",
	Args:  cobra.NoArgs,
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().StringP("input", "i", "", "Input DDS or DDS.zst file")
	decodeCmd.Flags().StringP("output", "o", "", "Output image file (format from extension)")
	decodeCmd.Flags().Int("threads", runtime.NumCPU(), "Worker threads")
	decodeCmd.MarkFlagRequired("input")
	decodeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(decodeCmd)
}

// readDDS loads a DDS file, undoing zstd compression for .zst paths.
func readDDS(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".zst") {
		if data, err = store.ZstdDecompress(data); err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", path, err)
		}
	}
	return data, nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	threads, _ := cmd.Flags().GetInt("threads")

	data, err := readDDS(inputPath)
	if err != nil {
		return err
	}
	tex, err := dds.Decode(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", inputPath, err)
	}

	var img *ir.RGBAImage
	if tex.Format == texture.RGBA8 {
		img = &ir.RGBAImage{Width: tex.Width, Height: tex.Height, Pixels: tex.Data}
	} else {
		img, err = bc.Decompress(tex, max(1, threads))
		if err != nil {
			return fmt.Errorf("decoding: %w", err)
		}
		img = img.Crop(tex.Width, tex.Height)
	}

	if err := imaging.Save(img.NRGBA(), outputPath); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	fmt.Printf("Decoded %dx%d %s -> %s\n", tex.Width, tex.Height, tex.Format, outputPath)
	return nil
}
