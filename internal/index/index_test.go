package index

import (
	"path/filepath"
	"testing"

	"github.com/jwheeler-fc/sermonlytics/internal/api"
	"github.com/jwheeler-fc/sermonlytics/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New error = %v", err)
	}

	sermon := api.Sermon{
		VideoID:     "s1",
		Title:       "Grace Abounding",
		URL:         "https://example.com/watch?v=s1",
		PublishDate: "2022-09-25",
	}
	other := api.Sermon{VideoID: "s2", Title: "Second", URL: "https://example.com/watch?v=s2"}

	upsert := func(ref string, sermon api.Sermon, ts float64) {
		t.Helper()
		occ := []store.Occurrence{{
			SermonID:  sermon.VideoID,
			Timestamp: ts,
			Text:      "text",
			Context:   "...context...",
		}}
		if err := s.UpsertReference(ref, occ, sermon); err != nil {
			t.Fatalf("UpsertReference(%q) error = %v", ref, err)
		}
	}

	upsert("John 3:16", sermon, 1200)
	upsert("John 3:16", other, 80)
	upsert("John 17", sermon, 900)
	upsert("1 John 4:8", sermon, 300)
	upsert("Genesis 1:1", other, 10)

	return s
}

func openTestDB(t *testing.T) (*DB, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	db, err := Open(filepath.Join(t.TempDir(), "occurrences.db"))
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	n, err := db.RebuildFromStore(s)
	if err != nil {
		t.Fatalf("RebuildFromStore error = %v", err)
	}
	if n != 5 {
		t.Fatalf("indexed %d occurrences, want 5", n)
	}
	return db, s
}

func TestLookup_ExactReference(t *testing.T) {
	db, _ := openTestDB(t)

	entries, err := db.Lookup("John 3:16")
	if err != nil {
		t.Fatalf("Lookup error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Ordered by sermon id.
	if entries[0].SermonID != "s1" || entries[1].SermonID != "s2" {
		t.Errorf("order = %s, %s", entries[0].SermonID, entries[1].SermonID)
	}
	if entries[0].SermonTitle != "Grace Abounding" {
		t.Errorf("title = %q", entries[0].SermonTitle)
	}
	if entries[0].PlaybackURL != "https://example.com/watch?v=s1&t=1200" {
		t.Errorf("playback url = %q", entries[0].PlaybackURL)
	}
	if entries[0].PublishDate != "2022-09-25" {
		t.Errorf("publish date = %q", entries[0].PublishDate)
	}
}

func TestLookupBook_DigitPrefixedBooksStayDistinct(t *testing.T) {
	db, _ := openTestDB(t)

	john, err := db.LookupBook("John")
	if err != nil {
		t.Fatalf("LookupBook error = %v", err)
	}
	if len(john) != 3 {
		t.Fatalf("John has %d entries, want 3", len(john))
	}
	for _, e := range john {
		if e.Reference == "1 John 4:8" {
			t.Error("1 John leaked into the John book view")
		}
	}

	firstJohn, err := db.LookupBook("1 John")
	if err != nil {
		t.Fatalf("LookupBook error = %v", err)
	}
	if len(firstJohn) != 1 || firstJohn[0].Reference != "1 John 4:8" {
		t.Errorf("1 John entries = %+v", firstJohn)
	}
}

func TestSermonReferences_SpokenOrder(t *testing.T) {
	db, _ := openTestDB(t)

	entries, err := db.SermonReferences("s1")
	if err != nil {
		t.Fatalf("SermonReferences error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	want := []string{"1 John 4:8", "John 17", "John 3:16"}
	for i, ref := range want {
		if entries[i].Reference != ref {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Reference, ref)
		}
	}
}

func TestTopReferences(t *testing.T) {
	db, _ := openTestDB(t)

	top, err := db.TopReferences(2)
	if err != nil {
		t.Fatalf("TopReferences error = %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d rows, want 2", len(top))
	}
	if top[0].Reference != "John 3:16" || top[0].Count != 2 {
		t.Errorf("top row = %+v", top[0])
	}
	// Alphabetical among the count-1 ties.
	if top[1].Reference != "1 John 4:8" {
		t.Errorf("second row = %+v", top[1])
	}
}

func TestRebuildFromStore_Replaces(t *testing.T) {
	db, s := openTestDB(t)

	// A second rebuild must not double-count.
	n, err := db.RebuildFromStore(s)
	if err != nil {
		t.Fatalf("second rebuild error = %v", err)
	}
	if n != 5 {
		t.Errorf("second rebuild indexed %d, want 5", n)
	}
	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count error = %v", err)
	}
	if count != 5 {
		t.Errorf("Count = %d, want 5", count)
	}
}

func TestBookOf(t *testing.T) {
	cases := []struct{ ref, want string }{
		{"John 3:16", "John"},
		{"John 3:16-18", "John"},
		{"John 3", "John"},
		{"John", "John"},
		{"1 John 4:8", "1 John"},
		{"Song of Solomon 2", "Song of Solomon"},
		{"Psalms 119", "Psalms"},
	}
	for _, c := range cases {
		if got := bookOf(c.ref); got != c.want {
			t.Errorf("bookOf(%q) = %q, want %q", c.ref, got, c.want)
		}
	}
}
