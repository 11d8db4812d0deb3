package main

import (
	"github.com/jwheeler-fc/sermonlytics/internal/site"
	"github.com/spf13/cobra"
)

var viewerPath string

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().StringVar(&viewerPath, "viewer", "", "Also rewrite this reference viewer page to use the external explorer script")
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Publish the analytics data into the assets directory",
	Long: `Copy the analytics JSON files and citation shards into the web-served
assets directory, preserving the layout. The processed-sermon tracking
file is never published.`,
	RunE: runSync,
}

// SyncResult is the response for the sync command.
type SyncResult struct {
	Status        string `json:"status"`
	FilesCopied   int    `json:"files_copied"`
	Dest          string `json:"dest"`
	ViewerUpdated bool   `json:"viewer_updated,omitempty"`
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	copied, err := site.Sync(cfg.OutputDir, cfg.AssetsDir)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	result := SyncResult{Status: "synced", FilesCopied: copied, Dest: cfg.AssetsDir}

	if viewerPath != "" {
		changed, err := site.RewriteViewer(viewerPath)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		result.ViewerUpdated = changed
	}

	if humanOutput {
		outputHuman("Copied %d files to %s\n", copied, cfg.AssetsDir)
		if viewerPath != "" {
			if result.ViewerUpdated {
				outputHuman("Updated %s\n", viewerPath)
			} else {
				outputHuman("Viewer already up to date\n")
			}
		}
		return nil
	}
	return outputJSON(result)
}
