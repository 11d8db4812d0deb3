// Package bible holds the canonical 66-book vocabulary, name aliases, and
// testament classification used by citation extraction and aggregation.
package bible

import "strings"

// Testament identifies which half of the canon a book belongs to.
type Testament string

const (
	OldTestament Testament = "Old Testament"
	NewTestament Testament = "New Testament"
)

// OldTestamentBooks lists the 39 Old Testament books in canonical order.
var OldTestamentBooks = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy", "Joshua",
	"Judges", "Ruth", "1 Samuel", "2 Samuel", "1 Kings", "2 Kings",
	"1 Chronicles", "2 Chronicles", "Ezra", "Nehemiah", "Esther", "Job",
	"Psalms", "Proverbs", "Ecclesiastes", "Song of Solomon", "Isaiah",
	"Jeremiah", "Lamentations", "Ezekiel", "Daniel", "Hosea", "Joel", "Amos",
	"Obadiah", "Jonah", "Micah", "Nahum", "Habakkuk", "Zephaniah", "Haggai",
	"Zechariah", "Malachi",
}

// NewTestamentBooks lists the 27 New Testament books in canonical order.
var NewTestamentBooks = []string{
	"Matthew", "Mark", "Luke", "John", "Acts", "Romans", "1 Corinthians",
	"2 Corinthians", "Galatians", "Ephesians", "Philippians", "Colossians",
	"1 Thessalonians", "2 Thessalonians", "1 Timothy", "2 Timothy", "Titus",
	"Philemon", "Hebrews", "James", "1 Peter", "2 Peter", "1 John", "2 John",
	"3 John", "Jude", "Revelation",
}

// Aliases maps accepted variant spellings (lowercased) to canonical names.
var Aliases = map[string]string{
	"psalm":         "Psalms",
	"song of songs": "Song of Solomon",
}

var (
	testamentByBook map[string]Testament
	canonicalByName map[string]string
)

func init() {
	testamentByBook = make(map[string]Testament, 66)
	canonicalByName = make(map[string]string, 70)
	for _, b := range OldTestamentBooks {
		testamentByBook[b] = OldTestament
		canonicalByName[strings.ToLower(b)] = b
	}
	for _, b := range NewTestamentBooks {
		testamentByBook[b] = NewTestament
		canonicalByName[strings.ToLower(b)] = b
	}
	for alias, canonical := range Aliases {
		canonicalByName[alias] = canonical
	}
}

// AllNames returns every recognized book name: the 66 canonical names plus
// accepted alias spellings. Matching against the list is case-insensitive.
func AllNames() []string {
	names := make([]string, 0, 66+len(Aliases))
	names = append(names, OldTestamentBooks...)
	names = append(names, NewTestamentBooks...)
	for alias := range Aliases {
		names = append(names, alias)
	}
	return names
}

// Normalize folds a raw book token to its canonical name. It trims
// whitespace, resolves aliases, and title-cases the result. The boolean
// reports whether the name belongs to the closed vocabulary.
func Normalize(raw string) (string, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	canonical, ok := canonicalByName[key]
	return canonical, ok
}

// TestamentOf classifies a canonical book name. A name outside both
// membership lists returns ok=false and counts toward neither testament.
func TestamentOf(book string) (Testament, bool) {
	t, ok := testamentByBook[book]
	return t, ok
}
