package main

import (
	"context"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(metadataCmd)
}

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Refresh sermon metadata without fetching transcripts",
	Long: `Update sermons.json and timeline.json from the catalog listing alone.

No transcript chunks are fetched and no citation counters change. Useful
for picking up title or date corrections, or for seeding the site before
a full run.`,
	RunE: runMetadata,
}

// MetadataResult is the response for the metadata command.
type MetadataResult struct {
	Status string `json:"status"`
	Added  int    `json:"added"`
}

func runMetadata(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	e := newEngine(cfg)

	added, err := e.Metadata(context.Background())
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	result := MetadataResult{Status: "refreshed", Added: added}
	if humanOutput {
		outputHuman("Metadata refreshed, %d new sermons recorded\n", added)
		return nil
	}
	return outputJSON(result)
}
