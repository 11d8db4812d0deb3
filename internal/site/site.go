// Package site publishes the analytics data directory into the web-served
// assets tree and keeps the reference viewer page pointed at the external
// explorer script.
package site

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/jwheeler-fc/sermonlytics/internal/analytics"
	"github.com/jwheeler-fc/sermonlytics/internal/store"
)

// requiredFiles must exist in the source directory before a sync runs, so a
// half-written or wrong directory is caught instead of published.
var requiredFiles = []string{
	analytics.SummaryFile,
	analytics.BooksFile,
	analytics.ChaptersFile,
	analytics.VersesFile,
}

// shardDirs are the per-citation subdirectories copied alongside the
// aggregate files.
var shardDirs = []string{
	store.ReferencesDir,
	store.BooksDir,
	store.ChaptersDir,
}

// Sync copies every published JSON file from srcDir into destDir, preserving
// the layout. The processed-sermon tracking file stays private and is never
// copied. Returns the number of files copied.
func Sync(srcDir, destDir string) (int, error) {
	for _, name := range requiredFiles {
		if _, err := os.Stat(filepath.Join(srcDir, name)); err != nil {
			return 0, fmt.Errorf("source is not an analytics directory, missing %s: %w", name, err)
		}
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return 0, fmt.Errorf("creating assets dir: %w", err)
	}

	copied, err := copyJSONFiles(srcDir, destDir)
	if err != nil {
		return copied, err
	}

	for _, sub := range shardDirs {
		src := filepath.Join(srcDir, sub)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}
		dest := filepath.Join(destDir, sub)
		if err := os.MkdirAll(dest, 0755); err != nil {
			return copied, fmt.Errorf("creating %s: %w", dest, err)
		}
		n, err := copyJSONFiles(src, dest)
		copied += n
		if err != nil {
			return copied, err
		}
	}

	return copied, nil
}

func copyJSONFiles(srcDir, destDir string) (int, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", srcDir, err)
	}

	copied := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		if name == analytics.ProcessedFile {
			continue
		}
		if err := copyFile(filepath.Join(srcDir, name), filepath.Join(destDir, name)); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return out.Close()
}

// inlineExplorerScript matches the legacy inline Bible Reference Explorer
// script block embedded in the viewer page.
var inlineExplorerScript = regexp.MustCompile(`(?s)<script>\s*/\*\*\s*\*\s*Bible\s*Reference\s*Explorer.*?</script>`)

// externalExplorerScript is what replaces the inline block.
const externalExplorerScript = `<script src="{{ '/assets/js/bible-explorer.js' | relative_url }}"></script>
<script>
  document.addEventListener('DOMContentLoaded', () => {
    BibleExplorer.init();
  });
</script>`

// RewriteViewer swaps the viewer page's inline explorer script for the
// external one. Returns false without error when the page already uses the
// external script (nothing to replace).
func RewriteViewer(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading viewer page: %w", err)
	}

	if !inlineExplorerScript.Match(content) {
		return false, nil
	}

	updated := inlineExplorerScript.ReplaceAll(content, []byte(externalExplorerScript))
	if err := os.WriteFile(path, updated, 0644); err != nil {
		return false, fmt.Errorf("writing viewer page: %w", err)
	}
	return true, nil
}
