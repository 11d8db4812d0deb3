package analytics

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/jwheeler-fc/sermonlytics/internal/api"
	"github.com/jwheeler-fc/sermonlytics/internal/store"
)

func TestLoad_MissingDirYieldsEmptyAggregates(t *testing.T) {
	a, err := Load(filepath.Join(t.TempDir(), "nowhere"))
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if a.Summary.TotalSermons != 0 || a.BookCounts.Len() != 0 {
		t.Errorf("expected empty aggregates, got %+v", a.Summary)
	}
	if a.Sermons == nil || a.Timeline.Years == nil {
		t.Error("maps not initialized on empty load")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	a := NewAggregates()
	a.BookCounts.Add("John", 3)
	a.BookCounts.Add("Genesis", 1)
	a.ChapterCounts.Add("John 3", 3)
	a.VerseCounts.Add("John 3:16", 2)
	a.TestamentCounts.New = 3
	a.TestamentCounts.Old = 1
	a.Sermons["s1"] = SermonRecord{
		Sermon:     api.Sermon{VideoID: "s1", Title: "First", PublishDate: "2022-09-25"},
		ChunkCount: 42,
	}
	a.Summary = Summary{TotalSermons: 1, TotalChunks: 42, TotalReferences: 4}
	a.Timeline.Add("s1", time.Date(2022, 9, 25, 0, 0, 0, 0, time.UTC))

	now := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := a.Save(dir, now); err != nil {
		t.Fatalf("Save error = %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if got.Summary.GeneratedAt != "2023-01-02T03:04:05Z" {
		t.Errorf("GeneratedAt = %q", got.Summary.GeneratedAt)
	}
	if got.BookCounts.Get("John") != 3 || got.BookCounts.Get("Genesis") != 1 {
		t.Errorf("book counts lost: %v", got.BookCounts.Keys())
	}
	if got.Sermons["s1"].ChunkCount != 42 {
		t.Errorf("sermon record lost: %+v", got.Sermons["s1"])
	}
	if ids := got.Timeline.YearMonths["2022-09"]; len(ids) != 1 || ids[0] != "s1" {
		t.Errorf("timeline bucket = %v", ids)
	}
	if ids := got.Timeline.Months["9"]; len(ids) != 1 {
		t.Errorf("month bucket = %v, want unpadded key 9", got.Timeline.Months)
	}
}

func TestSave_ChapterAndVerseViewsTruncate(t *testing.T) {
	dir := t.TempDir()

	a := NewAggregates()
	for i := 0; i < TopSize+20; i++ {
		a.ChapterCounts.Add("Psalms "+strconv.Itoa(i+1), i+1)
	}
	if err := a.Save(dir, time.Now()); err != nil {
		t.Fatalf("Save error = %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if got.ChapterCounts.Len() != TopSize {
		t.Errorf("published chapter view has %d entries, want %d",
			got.ChapterCounts.Len(), TopSize)
	}
	// The highest-count chapter survives truncation.
	if got.ChapterCounts.Get("Psalms "+strconv.Itoa(TopSize+20)) == 0 {
		t.Error("top chapter missing from published view")
	}
}

func TestLoad_CorruptFileSurfacesError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, BooksFile)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	if !errors.Is(err, store.ErrCorrupt) {
		t.Errorf("Load error = %v, want store.ErrCorrupt", err)
	}
}

func TestLoadTolerant_SkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()

	a := NewAggregates()
	a.Sermons["s1"] = SermonRecord{Sermon: api.Sermon{VideoID: "s1"}, ChunkCount: 3}
	if err := a.Save(dir, time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, BooksFile), []byte("{bad"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, skipped := LoadTolerant(dir)
	if len(skipped) != 1 || skipped[0] != BooksFile {
		t.Errorf("skipped = %v, want [%s]", skipped, BooksFile)
	}
	if got.Sermons["s1"].ChunkCount != 3 {
		t.Error("intact files not loaded")
	}
}

func TestProcessedSet_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	p, err := LoadProcessed(dir)
	if err != nil {
		t.Fatalf("LoadProcessed error = %v", err)
	}
	if p.Len() != 0 {
		t.Fatalf("fresh set has %d ids", p.Len())
	}

	p.Add("s2")
	p.Add("s1")
	p.Add("s2")
	if p.Len() != 2 {
		t.Errorf("Len = %d, want 2", p.Len())
	}
	if !p.Contains("s1") || p.Contains("s3") {
		t.Error("Contains gave wrong answers")
	}
	if err := p.Save(dir); err != nil {
		t.Fatalf("Save error = %v", err)
	}

	restored, err := LoadProcessed(dir)
	if err != nil {
		t.Fatalf("LoadProcessed error = %v", err)
	}
	ids := restored.IDs()
	if len(ids) != 2 || ids[0] != "s2" || ids[1] != "s1" {
		t.Errorf("restored ids = %v, want [s2 s1]", ids)
	}
}

func TestProcessedSet_SaveEmptyWritesList(t *testing.T) {
	dir := t.TempDir()
	p := &ProcessedSet{seen: make(map[string]bool)}
	if err := p.Save(dir); err != nil {
		t.Fatalf("Save error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, ProcessedFile))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("empty set saved as %s, want []", data)
	}
}

func TestWriteReferenceIndex(t *testing.T) {
	dir := t.TempDir()
	if err := WriteReferenceIndex(dir, map[string]int{"John 3:16": 2}); err != nil {
		t.Fatalf("WriteReferenceIndex error = %v", err)
	}
	var got map[string]int
	if err := store.ReadJSON(filepath.Join(dir, ReferencesIndexFile), &got); err != nil {
		t.Fatalf("read back error = %v", err)
	}
	if got["John 3:16"] != 2 {
		t.Errorf("index = %v", got)
	}
}
