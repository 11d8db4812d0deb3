package analytics

import (
	"math"
	"strings"

	"github.com/jwheeler-fc/sermonlytics/internal/api"
	"github.com/jwheeler-fc/sermonlytics/internal/bible"
	"github.com/jwheeler-fc/sermonlytics/internal/citation"
	"github.com/jwheeler-fc/sermonlytics/internal/store"
)

// SermonStats holds one sermon's citation analysis before it is merged into
// the global aggregates: per-granularity counters plus the occurrence list
// for every full citation key, deduplicated by the store's 5-second window.
type SermonStats struct {
	TotalReferences int
	BookCounts      *Counter
	ChapterCounts   *Counter
	VerseCounts     *Counter
	Testaments      TestamentCounts

	occKeys     []string
	occurrences map[string][]store.Occurrence
}

// AnalyzeSermon scans every chunk of a sermon and accumulates its citation
// statistics. Counters count every match; occurrence lists apply the dedup
// window so the same citation spoken twice within five seconds is stored
// once. Chunks are merged in their listed order.
func AnalyzeSermon(matcher *citation.Matcher, videoID string, chunks []api.Chunk) *SermonStats {
	stats := &SermonStats{
		BookCounts:    NewCounter(),
		ChapterCounts: NewCounter(),
		VerseCounts:   NewCounter(),
		occurrences:   make(map[string][]store.Occurrence),
	}

	for _, chunk := range chunks {
		if chunk.Text == "" {
			continue
		}
		for _, m := range matcher.Scan(chunk.Text) {
			c := m.Citation
			stats.TotalReferences++
			stats.BookCounts.Add(c.BookKey(), 1)

			switch t, ok := c.Testament(); {
			case ok && t == bible.OldTestament:
				stats.Testaments.Old++
			case ok && t == bible.NewTestament:
				stats.Testaments.New++
			}

			if key := c.ChapterKey(); key != "" {
				stats.ChapterCounts.Add(key, 1)
			}
			if key := c.VerseKey(); key != "" {
				stats.VerseCounts.Add(key, 1)
			}

			stats.addOccurrence(c.Key(), store.Occurrence{
				SermonID:  videoID,
				Timestamp: chunk.StartTime,
				Text:      chunk.Text,
				Context:   m.Context(chunk.Text),
			})
		}
	}

	return stats
}

// addOccurrence appends occ under key unless an occurrence of the same key
// from the same sermon already sits within the dedup window.
func (st *SermonStats) addOccurrence(key string, occ store.Occurrence) {
	existing, seen := st.occurrences[key]
	for _, e := range existing {
		if e.SermonID == occ.SermonID && math.Abs(e.Timestamp-occ.Timestamp) < store.DedupWindowSeconds {
			return
		}
	}
	if !seen {
		st.occKeys = append(st.occKeys, key)
	}
	st.occurrences[key] = append(existing, occ)
}

// OccurrenceKeys returns every full citation key in first-seen order.
func (st *SermonStats) OccurrenceKeys() []string {
	return st.occKeys
}

// Occurrences returns the deduplicated occurrences for a full citation key.
func (st *SermonStats) Occurrences(key string) []store.Occurrence {
	return st.occurrences[key]
}

// BookOccurrences flattens every occurrence whose citation belongs to book,
// in key order, for the book-level shard.
func (st *SermonStats) BookOccurrences(book string) []store.RefOccurrence {
	return st.collect(func(key string) bool {
		return key == book || strings.HasPrefix(key, book+" ")
	})
}

// ChapterOccurrences flattens every occurrence whose citation falls inside
// chapter (the chapter itself or any verse under it), in key order.
func (st *SermonStats) ChapterOccurrences(chapter string) []store.RefOccurrence {
	return st.collect(func(key string) bool {
		return key == chapter || strings.HasPrefix(key, chapter+":")
	})
}

func (st *SermonStats) collect(match func(string) bool) []store.RefOccurrence {
	var out []store.RefOccurrence
	for _, key := range st.occKeys {
		if !match(key) {
			continue
		}
		for _, occ := range st.occurrences[key] {
			out = append(out, store.RefOccurrence{
				Reference: key,
				SermonID:  occ.SermonID,
				Timestamp: occ.Timestamp,
				Context:   occ.Context,
			})
		}
	}
	return out
}

// MergeSermon folds one sermon's statistics into the aggregates. Every
// increment to a finer-grained counter lands together with its coarser
// ancestors, so the hierarchy stays summable.
func (a *Aggregates) MergeSermon(rec SermonRecord, stats *SermonStats) {
	a.Sermons[rec.VideoID] = rec
	a.Summary.TotalSermons = len(a.Sermons)
	a.Summary.TotalChunks += rec.ChunkCount
	a.Summary.TotalReferences += stats.TotalReferences

	for _, book := range stats.BookCounts.Keys() {
		a.BookCounts.Add(book, stats.BookCounts.Get(book))
	}
	for _, chapter := range stats.ChapterCounts.Keys() {
		a.ChapterCounts.Add(chapter, stats.ChapterCounts.Get(chapter))
	}
	for _, verse := range stats.VerseCounts.Keys() {
		a.VerseCounts.Add(verse, stats.VerseCounts.Get(verse))
	}
	a.TestamentCounts.Old += stats.Testaments.Old
	a.TestamentCounts.New += stats.Testaments.New
}
