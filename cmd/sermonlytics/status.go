package main

import (
	"errors"

	"github.com/jwheeler-fc/sermonlytics/internal/analytics"
	"github.com/jwheeler-fc/sermonlytics/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current state of the analytics data",
	RunE:  runStatus,
}

// StatusResult is the response for the status command.
type StatusResult struct {
	TotalSermons    int    `json:"total_sermons"`
	TotalChunks     int    `json:"total_chunks"`
	TotalReferences int    `json:"total_references"`
	ProcessedCount  int    `json:"processed_count"`
	DistinctBooks   int    `json:"distinct_books"`
	GeneratedAt     string `json:"generated_at,omitempty"`
	OutputDir       string `json:"output_dir"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	aggs, err := analytics.Load(cfg.OutputDir)
	if err != nil {
		if errors.Is(err, store.ErrCorrupt) {
			exitWithError(ExitDataError, "%v\n\nRun 'sermonlytics rebuild' to recompute the aggregate files", err)
		}
		exitWithError(ExitError, "%v", err)
	}
	processed, err := analytics.LoadProcessed(cfg.OutputDir)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	result := StatusResult{
		TotalSermons:    aggs.Summary.TotalSermons,
		TotalChunks:     aggs.Summary.TotalChunks,
		TotalReferences: aggs.Summary.TotalReferences,
		ProcessedCount:  processed.Len(),
		DistinctBooks:   aggs.BookCounts.Len(),
		GeneratedAt:     aggs.Summary.GeneratedAt,
		OutputDir:       cfg.OutputDir,
	}

	if humanOutput {
		outputHuman("Output directory: %s\n", result.OutputDir)
		outputHuman("Sermons: %d (%d processed)\n", result.TotalSermons, result.ProcessedCount)
		outputHuman("Chunks: %d\n", result.TotalChunks)
		outputHuman("References: %d across %d books\n", result.TotalReferences, result.DistinctBooks)
		if result.GeneratedAt != "" {
			outputHuman("Last generated: %s\n", result.GeneratedAt)
		}
		return nil
	}
	return outputJSON(result)
}
