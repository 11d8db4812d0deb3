// Package citation recognizes scripture citations embedded in free sermon
// text and normalizes them into canonical hierarchical keys.
package citation

import (
	"fmt"

	"github.com/jwheeler-fc/sermonlytics/internal/bible"
)

// Citation is an immutable scripture reference at one of three granularities:
// book, book+chapter, or book+chapter:verse with an optional end-of-range
// verse. Chapter 0 means absent; verse fields are only meaningful when the
// chapter is present.
type Citation struct {
	Book       string
	Chapter    int
	VerseStart int
	VerseEnd   int
}

// Key returns the canonical string key at the citation's full specificity:
// "John", "John 3", "John 3:16", or "John 3:16-18".
func (c Citation) Key() string {
	switch {
	case c.Chapter == 0:
		return c.Book
	case c.VerseStart == 0:
		return fmt.Sprintf("%s %d", c.Book, c.Chapter)
	case c.VerseEnd == 0:
		return fmt.Sprintf("%s %d:%d", c.Book, c.Chapter, c.VerseStart)
	default:
		return fmt.Sprintf("%s %d:%d-%d", c.Book, c.Chapter, c.VerseStart, c.VerseEnd)
	}
}

// BookKey returns the book-level key.
func (c Citation) BookKey() string { return c.Book }

// ChapterKey returns the "Book Chapter" key, or "" when no chapter matched.
func (c Citation) ChapterKey() string {
	if c.Chapter == 0 {
		return ""
	}
	return fmt.Sprintf("%s %d", c.Book, c.Chapter)
}

// VerseKey returns the "Book Chapter:Verse" key, or "" when no verse matched.
// Range endings are not part of the verse-count key.
func (c Citation) VerseKey() string {
	if c.Chapter == 0 || c.VerseStart == 0 {
		return ""
	}
	return fmt.Sprintf("%s %d:%d", c.Book, c.Chapter, c.VerseStart)
}

// Testament classifies the citation's book into Old or New Testament.
func (c Citation) Testament() (bible.Testament, bool) {
	return bible.TestamentOf(c.Book)
}
