package analytics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jwheeler-fc/sermonlytics/internal/store"
)

// Aggregate file names inside the analytics data directory.
const (
	SummaryFile         = "summary.json"
	BooksFile           = "books.json"
	ChaptersFile        = "chapters.json"
	VersesFile          = "verses.json"
	TestamentsFile      = "testament_counts.json"
	SermonsFile         = "sermons.json"
	TimelineFile        = "timeline.json"
	ProcessedFile       = "processed_sermons.json"
	ReferencesIndexFile = "references_index.json"
)

// TopSize is how many entries the published chapter and verse views keep.
const TopSize = 100

// Load reads the aggregate state from dir. Missing files load as empty;
// files that exist but do not parse surface store.ErrCorrupt so the operator
// can run a rebuild instead of silently losing history.
func Load(dir string) (*Aggregates, error) {
	a := NewAggregates()

	targets := []struct {
		file string
		v    any
	}{
		{SummaryFile, &a.Summary},
		{BooksFile, a.BookCounts},
		{ChaptersFile, a.ChapterCounts},
		{VersesFile, a.VerseCounts},
		{TestamentsFile, &a.TestamentCounts},
		{SermonsFile, &a.Sermons},
		{TimelineFile, &a.Timeline},
	}
	for _, t := range targets {
		err := store.ReadJSON(filepath.Join(dir, t.file), t.v)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading aggregates: %w", err)
		}
	}

	// A hand-edited or truncated timeline may lack some buckets.
	if a.Timeline.Years == nil {
		a.Timeline.Years = make(map[string][]string)
	}
	if a.Timeline.Months == nil {
		a.Timeline.Months = make(map[string][]string)
	}
	if a.Timeline.YearMonths == nil {
		a.Timeline.YearMonths = make(map[string][]string)
	}
	if a.Sermons == nil {
		a.Sermons = make(map[string]SermonRecord)
	}

	return a, nil
}

// LoadTolerant reads the aggregate state from dir, skipping files that do
// not parse instead of failing. It returns the names of the skipped files.
// Meant for the repair path, where counter views are about to be recomputed
// from the shards anyway.
func LoadTolerant(dir string) (*Aggregates, []string) {
	a := NewAggregates()

	targets := []struct {
		file string
		v    any
	}{
		{SummaryFile, &a.Summary},
		{BooksFile, a.BookCounts},
		{ChaptersFile, a.ChapterCounts},
		{VersesFile, a.VerseCounts},
		{TestamentsFile, &a.TestamentCounts},
		{SermonsFile, &a.Sermons},
		{TimelineFile, &a.Timeline},
	}
	var skipped []string
	for _, t := range targets {
		err := store.ReadJSON(filepath.Join(dir, t.file), t.v)
		if err != nil && !os.IsNotExist(err) {
			skipped = append(skipped, t.file)
		}
	}

	if a.Timeline.Years == nil {
		a.Timeline.Years = make(map[string][]string)
	}
	if a.Timeline.Months == nil {
		a.Timeline.Months = make(map[string][]string)
	}
	if a.Timeline.YearMonths == nil {
		a.Timeline.YearMonths = make(map[string][]string)
	}
	if a.Sermons == nil {
		a.Sermons = make(map[string]SermonRecord)
	}

	return a, skipped
}

// Save rewrites every aggregate view in dir. Chapter and verse views are
// published as top-100 slices; the summary is stamped with now. Each file is
// rewritten in full.
func (a *Aggregates) Save(dir string, now time.Time) error {
	summary := a.Summary
	summary.GeneratedAt = now.Format(time.RFC3339)

	files := []struct {
		file string
		v    any
	}{
		{SummaryFile, summary},
		{BooksFile, a.BookCounts},
		{ChaptersFile, a.ChapterCounts.Top(TopSize)},
		{VersesFile, a.VerseCounts.Top(TopSize)},
		{TestamentsFile, a.TestamentCounts},
		{SermonsFile, a.Sermons},
		{TimelineFile, a.Timeline},
	}
	for _, f := range files {
		if err := store.WriteJSON(filepath.Join(dir, f.file), f.v); err != nil {
			return fmt.Errorf("saving aggregates: %w", err)
		}
	}
	return nil
}

// WriteReferenceIndex persists the derived citation-key → occurrence-count
// view rebuilt from the shard files.
func WriteReferenceIndex(dir string, index map[string]int) error {
	return store.WriteJSON(filepath.Join(dir, ReferencesIndexFile), index)
}
