package main

import (
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/yoshiyoshyosh/bcbench/internal/pipeline"
	"github.com/yoshiyoshyosh/bcbench/internal/store"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Encode every input image with each trial and print time | score",
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().String("input-dir", "input", "Directory holding <name>.png inputs")
	benchCmd.Flags().StringSlice("images", nil, "Image names without extension (default: built-in set)")
	benchCmd.Flags().Int("threads", runtime.NumCPU(), "Worker threads for the encoders")
	benchCmd.Flags().String("db", "", "Optional sqlite file to record results in")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	inputDir, _ := cmd.Flags().GetString("input-dir")
	names, _ := cmd.Flags().GetStringSlice("images")
	threads, _ := cmd.Flags().GetInt("threads")
	dbPath, _ := cmd.Flags().GetString("db")

	if threads < 1 {
		return fmt.Errorf("threads must be at least 1, got %d", threads)
	}
	if len(names) == 0 {
		names = pipeline.DefaultImages
	}

	var rdb *store.ResultsDB
	var runID int64
	if dbPath != "" {
		var err error
		rdb, err = store.NewResultsDB(dbPath)
		if err != nil {
			return fmt.Errorf("opening results database: %w", err)
		}
		defer rdb.Close()
		runID, err = rdb.BeginRun(time.Now(), threads)
		if err != nil {
			return fmt.Errorf("starting run: %w", err)
		}
		log.Printf("recording run %d in %s", runID, dbPath)
	}

	fmt.Println(pipeline.ThreadsLine(threads))

	start := time.Now()
	for _, name := range names {
		img, err := pipeline.LoadImage(filepath.Join(inputDir, name+".png"))
		if err != nil {
			return err
		}
		fmt.Println(pipeline.ImageLine(name, img.Width, img.Height))

		results, err := pipeline.Run(cmd.Context(), name, img, pipeline.Options{
			Threads:   threads,
			ZstdSizes: rdb != nil,
			OnResult:  func(r pipeline.Result) { fmt.Println(r.Line()) },
		})
		if err != nil {
			return err
		}

		if rdb != nil {
			for _, r := range results {
				if err := rdb.PutResult(r.Record(runID)); err != nil {
					return fmt.Errorf("storing result: %w", err)
				}
			}
		}
	}

	if rdb != nil {
		if err := rdb.FinishRun(runID, time.Now()); err != nil {
			return fmt.Errorf("finishing run: %w", err)
		}
	}
	log.Printf("benchmarked %d images in %s", len(names), time.Since(start).Round(time.Millisecond))
	return nil
}
