package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yoshiyoshyosh/bcbench/internal/pipeline"
	"github.com/yoshiyoshyosh/bcbench/internal/ssimulacra2"
)

var scoreCmd = &cobra.Command{
	Use:   "score [reference] [distorted]",
	Short: "Print the SSIMULACRA2 score of an image against a reference",
	Args:  cobra.ExactArgs(2),
	RunE:  runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	ref, err := pipeline.LoadImage(args[0])
	if err != nil {
		return err
	}
	dist, err := pipeline.LoadImage(args[1])
	if err != nil {
		return err
	}
	score, err := ssimulacra2.Compute(ref, dist)
	if err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	fmt.Println(strconv.FormatFloat(score, 'f', -1, 64))
	return nil
}
