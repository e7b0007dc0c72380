package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yoshiyoshyosh/bcbench/internal/dds"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect DDS header info",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := readDDS(path)
	if err != nil {
		return err
	}

	info, err := dds.GetInfo(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	fmt.Printf("File:       %s\n", path)
	fmt.Printf("Dimensions: %d x %d\n", info.Width, info.Height)
	fmt.Printf("Format:     %s\n", info.Format)
	if info.FourCC != "" {
		fmt.Printf("FourCC:     %s\n", info.FourCC)
	}
	if info.DXGIFormat != 0 {
		fmt.Printf("DXGI:       %d\n", info.DXGIFormat)
	}
	fmt.Printf("Mip levels: %d\n", info.MipMapCount)
	fmt.Printf("Data:       %d bytes at offset %d\n", info.DataSize, info.DataOffset)
	fmt.Printf("File size:  %d bytes (%.1f MB)\n", len(data), float64(len(data))/(1024*1024))
	return nil
}
