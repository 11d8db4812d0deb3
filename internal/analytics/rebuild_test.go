package analytics

import (
	"testing"

	"github.com/jwheeler-fc/sermonlytics/internal/api"
	"github.com/jwheeler-fc/sermonlytics/internal/store"
)

func TestRebuild_RecomputesCountersFromShards(t *testing.T) {
	s, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New error = %v", err)
	}

	sermon := api.Sermon{VideoID: "s1", Title: "First", URL: "https://example.com/watch?v=s1"}
	occ := func(ts float64) []store.Occurrence {
		return []store.Occurrence{{SermonID: "s1", Timestamp: ts, Text: "t", Context: "c"}}
	}
	if err := s.UpsertReference("John 3:16", occ(10), sermon); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertReference("John 3:17", occ(60), sermon); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertReference("Genesis 1", occ(120), sermon); err != nil {
		t.Fatal(err)
	}

	base := NewAggregates()
	base.Summary.TotalSermons = 1
	base.Summary.TotalChunks = 9
	base.Sermons["s1"] = SermonRecord{Sermon: sermon, ChunkCount: 9}

	rebuilt, index, err := Rebuild(s, base)
	if err != nil {
		t.Fatalf("Rebuild error = %v", err)
	}

	if got := rebuilt.BookCounts.Get("John"); got != 2 {
		t.Errorf("John book count = %d, want 2", got)
	}
	if got := rebuilt.BookCounts.Get("Genesis"); got != 1 {
		t.Errorf("Genesis book count = %d, want 1", got)
	}
	if got := rebuilt.ChapterCounts.Get("John 3"); got != 2 {
		t.Errorf("John 3 chapter count = %d, want 2", got)
	}
	if got := rebuilt.VerseCounts.Get("John 3:16"); got != 1 {
		t.Errorf("John 3:16 verse count = %d, want 1", got)
	}
	if rebuilt.TestamentCounts.Old != 1 || rebuilt.TestamentCounts.New != 2 {
		t.Errorf("testaments = %+v, want Old=1 New=2", rebuilt.TestamentCounts)
	}
	if rebuilt.Summary.TotalReferences != 3 {
		t.Errorf("TotalReferences = %d, want 3", rebuilt.Summary.TotalReferences)
	}

	// Untouched state carries over from the loaded aggregates.
	if rebuilt.Summary.TotalSermons != 1 || rebuilt.Summary.TotalChunks != 9 {
		t.Errorf("summary carry-over lost: %+v", rebuilt.Summary)
	}
	if rebuilt.Sermons["s1"].ChunkCount != 9 {
		t.Error("sermon metadata lost during rebuild")
	}

	if len(index) != 3 || index["John 3:16"] != 1 {
		t.Errorf("index = %v", index)
	}
}

func TestRebuild_EmptyStore(t *testing.T) {
	s, err := store.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	rebuilt, index, err := Rebuild(s, NewAggregates())
	if err != nil {
		t.Fatalf("Rebuild error = %v", err)
	}
	if rebuilt.BookCounts.Len() != 0 || len(index) != 0 {
		t.Error("empty store produced non-empty counters")
	}
}
