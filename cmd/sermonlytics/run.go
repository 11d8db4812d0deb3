package main

import (
	"context"
	"errors"

	"github.com/jwheeler-fc/sermonlytics/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one incremental analytics cycle",
	Long: `Fetch the sermon catalog, analyze any sermons not yet processed, and
update the aggregate files and occurrence shards.

Sermons whose transcripts are not available yet are skipped and picked up
on a later run. State is saved after every batch, so an interrupted run
loses at most one batch of work.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	e := newEngine(cfg)

	report, err := e.Run(context.Background())
	if err != nil {
		if errors.Is(err, store.ErrCorrupt) {
			exitWithError(ExitDataError, "%v\n\nRun 'sermonlytics rebuild' to recompute the aggregate files from the occurrence shards", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Listed %d sermons (%d already processed)\n",
			report.TotalListed, report.AlreadyProcessed)
		outputHuman("Processed: %d  Skipped (no transcript): %d  Failed: %d\n",
			report.Processed, report.Skipped, report.Failed)
		outputHuman("New references: %d\n", report.NewReferences)
		return nil
	}
	return outputJSON(report)
}
