package analytics

import (
	"fmt"

	"github.com/jwheeler-fc/sermonlytics/internal/bible"
	"github.com/jwheeler-fc/sermonlytics/internal/citation"
	"github.com/jwheeler-fc/sermonlytics/internal/store"
)

// Rebuild recomputes every counter view from the occurrence shards, which
// remain the source of truth when an aggregate file is corrupted or has
// drifted. Counts derived this way reflect deduplicated occurrences.
// Sermon metadata, timeline, and the processed set are left as loaded.
func Rebuild(s *store.Store, base *Aggregates) (*Aggregates, map[string]int, error) {
	matcher := citation.NewMatcher()

	a := NewAggregates()
	a.Summary = base.Summary
	a.Sermons = base.Sermons
	a.Timeline = base.Timeline

	index := make(map[string]int)

	err := s.WalkReferences(func(shard *store.ReferenceShard) error {
		matches := matcher.Scan(shard.Reference)
		if len(matches) != 1 {
			return fmt.Errorf("shard %q has an unrecognizable reference key", shard.Reference)
		}
		c := matches[0].Citation
		n := len(shard.Occurrences)
		if n == 0 {
			return nil
		}

		index[shard.Reference] = n

		a.BookCounts.Add(c.BookKey(), n)
		if key := c.ChapterKey(); key != "" {
			a.ChapterCounts.Add(key, n)
		}
		if key := c.VerseKey(); key != "" {
			a.VerseCounts.Add(key, n)
		}
		switch t, ok := c.Testament(); {
		case ok && t == bible.OldTestament:
			a.TestamentCounts.Old += n
		case ok && t == bible.NewTestament:
			a.TestamentCounts.New += n
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// Every occurrence lands in exactly one book, so the book counter's
	// total is the deduplicated occurrence total.
	a.Summary.TotalReferences = a.BookCounts.Total()
	return a, index, nil
}
