package main

import (
	"time"

	"github.com/jwheeler-fc/sermonlytics/internal/analytics"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Recompute aggregate files from the occurrence shards",
	Long: `Recompute the book, chapter, verse, and testament counters plus the
references index from the reference shard files.

Use this when an aggregate file is corrupted or has drifted. Shard files
are the source of truth; sermon metadata, the timeline, and the processed
list are kept as loaded. Counts derived this way reflect deduplicated
occurrences.`,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status     string   `json:"status"`
	References int      `json:"references"`
	Books      int      `json:"books"`
	Skipped    []string `json:"skipped_files,omitempty"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	st := openStore(cfg)

	base, skipped := analytics.LoadTolerant(cfg.OutputDir)

	rebuilt, index, err := analytics.Rebuild(st, base)
	if err != nil {
		exitWithError(ExitDataError, "rebuilding from shards: %v", err)
	}

	if err := rebuilt.Save(cfg.OutputDir, time.Now()); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := analytics.WriteReferenceIndex(cfg.OutputDir, index); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	result := RebuildResult{
		Status:     "rebuilt",
		References: rebuilt.Summary.TotalReferences,
		Books:      rebuilt.BookCounts.Len(),
		Skipped:    skipped,
	}

	if humanOutput {
		outputHuman("Rebuilt %d references across %d books\n", result.References, result.Books)
		for _, name := range skipped {
			outputHuman("Skipped unreadable file: %s\n", name)
		}
		return nil
	}
	return outputJSON(result)
}
