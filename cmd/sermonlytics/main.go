// Package main provides the sermonlytics CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sermonlytics",
	Short: "Incremental Scripture-citation analytics for a sermon archive",
	Long: `sermonlytics ingests sermon transcripts from the sermon search API,
extracts Bible citations, and maintains aggregate statistics as flat JSON
files suitable for static site serving. Runs are incremental: sermons
already processed are never fetched again.

All commands output JSON by default for easy scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
