package main

import (
	"context"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(bibledataCmd)
}

var bibledataCmd = &cobra.Command{
	Use:   "bibledata",
	Short: "Fetch book-level reference statistics as static JSON",
	Long: `Fetch the corpus-wide bible statistics, the per-book count list, and one
reference document per book from the API, saving them under the bible data
directory for the static site.`,
	RunE: runBibledata,
}

// BibledataResult is the response for the bibledata command.
type BibledataResult struct {
	Status string `json:"status"`
	Books  int    `json:"books"`
	Dir    string `json:"dir"`
}

func runBibledata(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	e := newEngine(cfg)

	written, err := e.FetchBibleData(context.Background(), cfg.BibleDataDir)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	result := BibledataResult{Status: "saved", Books: written, Dir: cfg.BibleDataDir}
	if humanOutput {
		outputHuman("Saved statistics for %d books to %s\n", written, cfg.BibleDataDir)
		return nil
	}
	return outputJSON(result)
}
