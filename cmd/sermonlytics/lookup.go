package main

import (
	"os"

	"github.com/jwheeler-fc/sermonlytics/internal/index"
	"github.com/spf13/cobra"
)

var (
	lookupBook   bool
	lookupSermon bool
	lookupTop    int
)

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().BoolVar(&lookupBook, "book", false, "Treat the argument as a book name")
	lookupCmd.Flags().BoolVar(&lookupSermon, "sermon", false, "Treat the argument as a sermon id")
	lookupCmd.Flags().IntVar(&lookupTop, "top", 0, "List the N most-cited references instead")
}

var lookupCmd = &cobra.Command{
	Use:   "lookup [reference]",
	Short: "Query the occurrence index",
	Long: `Query the SQLite occurrence index by citation key, book, or sermon id.

Examples:
  sermonlytics lookup "John 3:16"
  sermonlytics lookup --book "1 John"
  sermonlytics lookup --sermon dQw4w9WgXcQ
  sermonlytics lookup --top 10

Run 'sermonlytics index' first to build the index.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLookup,
}

// LookupEntry is one occurrence row in lookup output.
type LookupEntry struct {
	Reference   string  `json:"reference"`
	SermonID    string  `json:"sermon_id"`
	SermonTitle string  `json:"sermon_title,omitempty"`
	Timestamp   float64 `json:"timestamp"`
	PlaybackURL string  `json:"playback_url,omitempty"`
	Context     string  `json:"context,omitempty"`
}

// LookupResult is the response for the lookup command.
type LookupResult struct {
	Query   string        `json:"query"`
	Count   int           `json:"count"`
	Entries []LookupEntry `json:"entries"`
}

// TopResult is the response for lookup --top.
type TopResult struct {
	References []index.RefCount `json:"references"`
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	path := cachePath(cfg)
	if _, err := os.Stat(path); err != nil {
		exitWithError(ExitConfigError, "occurrence index not found at %s\n\nRun 'sermonlytics index' first", path)
	}
	db, err := index.Open(path)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	if lookupTop > 0 {
		return printTop(db)
	}

	if len(args) != 1 {
		exitWithError(ExitError, "a reference, book, or sermon id argument is required")
	}
	query := args[0]

	var entries []index.Entry
	switch {
	case lookupBook:
		entries, err = db.LookupBook(query)
	case lookupSermon:
		entries, err = db.SermonReferences(query)
	default:
		entries, err = db.Lookup(query)
	}
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	result := LookupResult{Query: query, Count: len(entries), Entries: make([]LookupEntry, 0, len(entries))}
	for _, e := range entries {
		result.Entries = append(result.Entries, LookupEntry{
			Reference:   e.Reference,
			SermonID:    e.SermonID,
			SermonTitle: e.SermonTitle,
			Timestamp:   e.Timestamp,
			PlaybackURL: e.PlaybackURL,
			Context:     e.Context,
		})
	}

	if humanOutput {
		outputHuman("%d occurrences of %q\n", result.Count, query)
		for _, e := range result.Entries {
			outputHuman("  %-14s %8.0fs  %s\n", e.Reference, e.Timestamp, e.SermonTitle)
			if e.PlaybackURL != "" {
				outputHuman("    %s\n", e.PlaybackURL)
			}
		}
		return nil
	}
	return outputJSON(result)
}

func printTop(db *index.DB) error {
	top, err := db.TopReferences(lookupTop)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if humanOutput {
		for i, rc := range top {
			outputHuman("%3d. %-16s %d\n", i+1, rc.Reference, rc.Count)
		}
		return nil
	}
	return outputJSON(TopResult{References: top})
}
