package main

import (
	"github.com/jwheeler-fc/sermonlytics/internal/index"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the SQLite occurrence index from the shard files",
	Long: `Build or rebuild the ephemeral SQLite occurrence index under the
output directory's cache/.

The shard files stay canonical; the index is a derived query layer used by
the lookup command and is safe to delete at any time.`,
	RunE: runIndex,
}

// IndexResult is the response for the index command.
type IndexResult struct {
	Status      string `json:"status"`
	Occurrences int    `json:"occurrences"`
	Path        string `json:"path"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	st := openStore(cfg)

	path := cachePath(cfg)
	db, err := index.Open(path)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	n, err := db.RebuildFromStore(st)
	if err != nil {
		exitWithError(ExitDataError, "indexing shards: %v", err)
	}

	result := IndexResult{Status: "indexed", Occurrences: n, Path: path}
	if humanOutput {
		outputHuman("Indexed %d occurrences into %s\n", n, path)
		return nil
	}
	return outputJSON(result)
}
