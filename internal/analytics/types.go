// Package analytics owns the aggregate citation statistics for the sermon
// corpus: hierarchical book/chapter/verse counters, testament totals, sermon
// metadata, the publish-date timeline, and the processed-sermon set. The
// aggregation engine holds exactly one Aggregates value per run; there is no
// package-level mutable state.
package analytics

import (
	"time"

	"github.com/jwheeler-fc/sermonlytics/internal/api"
	"github.com/jwheeler-fc/sermonlytics/internal/dates"
)

// Summary is the top-level rollup published in summary.json.
type Summary struct {
	TotalSermons    int    `json:"total_sermons"`
	TotalChunks     int    `json:"total_chunks"`
	TotalReferences int    `json:"total_references"`
	GeneratedAt     string `json:"generated_at,omitempty"`
}

// TestamentCounts holds exactly the two coarse buckets.
type TestamentCounts struct {
	Old int `json:"Old Testament"`
	New int `json:"New Testament"`
}

// SermonRecord is the persisted metadata for one ingested sermon.
type SermonRecord struct {
	api.Sermon
	ChunkCount int `json:"chunk_count"`
}

// Timeline buckets sermon ids by publish year, month number, and "YYYY-MM".
// A sermon with an unparsable date contributes to no bucket.
type Timeline struct {
	Years      map[string][]string `json:"years"`
	Months     map[string][]string `json:"months"`
	YearMonths map[string][]string `json:"year_months"`
}

// NewTimeline returns an empty timeline with all buckets initialized.
func NewTimeline() Timeline {
	return Timeline{
		Years:      make(map[string][]string),
		Months:     make(map[string][]string),
		YearMonths: make(map[string][]string),
	}
}

// Add records a sermon id under its date's three buckets.
func (t *Timeline) Add(sermonID string, when time.Time) {
	year, month, yearMonth := dates.Buckets(when)

	t.Years[year] = appendUnique(t.Years[year], sermonID)
	t.Months[month] = appendUnique(t.Months[month], sermonID)
	t.YearMonths[yearMonth] = appendUnique(t.YearMonths[yearMonth], sermonID)
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}


// Aggregates is the full mutable aggregate state for one run, passed by
// reference through the engine.
type Aggregates struct {
	Summary         Summary
	BookCounts      *Counter
	ChapterCounts   *Counter
	VerseCounts     *Counter
	TestamentCounts TestamentCounts
	Sermons         map[string]SermonRecord
	Timeline        Timeline
}

// NewAggregates returns empty aggregate state.
func NewAggregates() *Aggregates {
	return &Aggregates{
		BookCounts:    NewCounter(),
		ChapterCounts: NewCounter(),
		VerseCounts:   NewCounter(),
		Sermons:       make(map[string]SermonRecord),
		Timeline:      NewTimeline(),
	}
}
