package store

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/jwheeler-fc/sermonlytics/internal/api"
)

// Occurrence is one in-context appearance of a citation inside a sermon,
// enriched with the sermon's display metadata and a timestamped playback URL.
type Occurrence struct {
	SermonID    string        `json:"sermon_id"`
	Timestamp   float64       `json:"timestamp"`
	Text        string        `json:"text"`
	Context     string        `json:"context"`
	SermonTitle string        `json:"sermon_title,omitempty"`
	URL         string        `json:"url,omitempty"`
	Channel     string        `json:"channel,omitempty"`
	PublishDate api.LooseDate `json:"publish_date,omitempty"`
}

// ReferenceShard is the flat occurrence list for one citation key.
type ReferenceShard struct {
	Reference   string       `json:"reference"`
	Occurrences []Occurrence `json:"occurrences"`
}

// RefOccurrence is an occurrence as stored inside book and chapter shards,
// tagged with the full reference it came from.
type RefOccurrence struct {
	Reference string  `json:"reference"`
	SermonID  string  `json:"sermon_id"`
	Timestamp float64 `json:"timestamp"`
	Context   string  `json:"context"`
}

// SermonEntry groups one sermon's occurrences inside a book or chapter
// shard. Re-processing the same sermon replaces its entry in place.
type SermonEntry struct {
	SermonID    string          `json:"sermon_id"`
	SermonTitle string          `json:"sermon_title"`
	URL         string          `json:"url"`
	PublishDate api.LooseDate   `json:"publish_date"`
	Occurrences []RefOccurrence `json:"occurrences"`
}

// BookShard holds, per sermon, every occurrence citing one book.
type BookShard struct {
	Book    string        `json:"book"`
	Sermons []SermonEntry `json:"sermons"`
}

// ChapterShard holds, per sermon, every occurrence citing one chapter.
type ChapterShard struct {
	Chapter string        `json:"chapter"`
	Sermons []SermonEntry `json:"sermons"`
}

// PlaybackURL builds the timestamped playback link for an occurrence:
// the sermon URL with "&t=<floor(seconds)>" appended.
func PlaybackURL(sermonURL string, timestamp float64) string {
	return fmt.Sprintf("%s&t=%d", sermonURL, int(math.Floor(timestamp)))
}

// isDuplicate reports whether occ matches an existing occurrence from the
// same sermon within the dedup window.
func isDuplicate(existing []Occurrence, occ Occurrence) bool {
	for _, e := range existing {
		if e.SermonID == occ.SermonID && math.Abs(e.Timestamp-occ.Timestamp) < DedupWindowSeconds {
			return true
		}
	}
	return false
}

// LoadReference loads the shard for a citation key. A shard that does not
// exist yet is returned empty; a shard that exists but does not parse
// returns ErrCorrupt.
func (s *Store) LoadReference(key string) (*ReferenceShard, error) {
	shard := &ReferenceShard{Reference: key, Occurrences: []Occurrence{}}
	err := ReadJSON(s.shardPath(ReferencesDir, key), shard)
	if os.IsNotExist(err) {
		return shard, nil
	}
	if err != nil {
		return nil, err
	}
	return shard, nil
}

// UpsertReference appends new occurrences of key to its shard, deduplicating
// by (sermon, 5-second window) against what is already stored, enriching
// each added occurrence with the sermon's metadata, and rewriting the shard.
func (s *Store) UpsertReference(key string, occs []Occurrence, sermon api.Sermon) error {
	shard, err := s.LoadReference(key)
	if err != nil {
		return err
	}

	for _, occ := range occs {
		occ.SermonTitle = sermon.Title
		occ.Channel = sermon.Channel
		occ.PublishDate = sermon.PublishDate
		occ.URL = PlaybackURL(sermon.URL, occ.Timestamp)
		if isDuplicate(shard.Occurrences, occ) {
			continue
		}
		shard.Occurrences = append(shard.Occurrences, occ)
	}

	return WriteJSON(s.shardPath(ReferencesDir, key), shard)
}

// UpsertBook replaces (or adds) the sermon's entry in the book shard.
func (s *Store) UpsertBook(book string, sermon api.Sermon, occs []RefOccurrence) error {
	if len(occs) == 0 {
		return nil
	}

	shard := &BookShard{Book: book, Sermons: []SermonEntry{}}
	err := ReadJSON(s.shardPath(BooksDir, book), shard)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	shard.Sermons = upsertSermonEntry(shard.Sermons, sermon, occs)
	return WriteJSON(s.shardPath(BooksDir, book), shard)
}

// UpsertChapter replaces (or adds) the sermon's entry in the chapter shard.
func (s *Store) UpsertChapter(chapter string, sermon api.Sermon, occs []RefOccurrence) error {
	if len(occs) == 0 {
		return nil
	}

	shard := &ChapterShard{Chapter: chapter, Sermons: []SermonEntry{}}
	err := ReadJSON(s.shardPath(ChaptersDir, chapter), shard)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	shard.Sermons = upsertSermonEntry(shard.Sermons, sermon, occs)
	return WriteJSON(s.shardPath(ChaptersDir, chapter), shard)
}

func upsertSermonEntry(entries []SermonEntry, sermon api.Sermon, occs []RefOccurrence) []SermonEntry {
	for i := range entries {
		if entries[i].SermonID == sermon.VideoID {
			entries[i].Occurrences = occs
			return entries
		}
	}
	return append(entries, SermonEntry{
		SermonID:    sermon.VideoID,
		SermonTitle: sermon.Title,
		URL:         sermon.URL,
		PublishDate: sermon.PublishDate,
		Occurrences: occs,
	})
}

// WalkReferences calls fn for every reference shard in deterministic
// (sorted filename) order. Corrupt shards abort the walk with ErrCorrupt.
func (s *Store) WalkReferences(fn func(*ReferenceShard) error) error {
	pattern := filepath.Join(s.dir, ReferencesDir, "*.json")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}
	sort.Strings(paths)

	for _, path := range paths {
		var shard ReferenceShard
		if err := ReadJSON(path, &shard); err != nil {
			return err
		}
		if err := fn(&shard); err != nil {
			return err
		}
	}
	return nil
}

// ReferenceIndex rescans every reference shard and returns the mapping from
// citation key to stored occurrence count.
func (s *Store) ReferenceIndex() (map[string]int, error) {
	index := make(map[string]int)
	err := s.WalkReferences(func(shard *ReferenceShard) error {
		if shard.Reference != "" {
			index[shard.Reference] = len(shard.Occurrences)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return index, nil
}
