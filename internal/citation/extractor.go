package citation

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jwheeler-fc/sermonlytics/internal/bible"
)

// contextRadius is how many runes of surrounding text are kept on each side
// of a matched reference when building the context snippet.
const contextRadius = 100

// Match is one recognized citation together with its position in the
// scanned text.
type Match struct {
	Citation Citation
	Start    int
	End      int
}

// Matcher scans text for scripture citations. It is compiled once from the
// static book-name table and is safe for concurrent use.
type Matcher struct {
	re *regexp.Regexp
}

// NewMatcher builds a Matcher from the canonical book vocabulary and its
// aliases. Names are ordered longest-first so multi-word and numbered books
// ("Song of Solomon", "1 John") win over their shorter suffixes.
func NewMatcher() *Matcher {
	names := bible.AllNames()
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}

	// Book name, then optionally a chapter and a verse or verse range.
	// A book name with no chapter still matches; Scan decides whether a
	// chapterless match is kept.
	pattern := `(?i)\b(` + strings.Join(quoted, "|") + `)\b(?:\s+(\d+)(?::(\d+)(?:-(\d+))?)?)?`
	return &Matcher{re: regexp.MustCompile(pattern)}
}

// Scan extracts every citation from text in left-to-right order. Matches are
// non-overlapping. A match with no chapter number is kept only when it is a
// trailing partial at the very end of the text; a bare book name mid-sentence
// ("John said...") is not a citation. Scan is pure: the same text always
// yields the same ordered matches.
func (m *Matcher) Scan(text string) []Match {
	if text == "" {
		return nil
	}

	var out []Match
	for _, idx := range m.re.FindAllStringSubmatchIndex(text, -1) {
		book, ok := bible.Normalize(text[idx[2]:idx[3]])
		if !ok {
			continue
		}

		c := Citation{Book: book}
		if idx[4] >= 0 {
			c.Chapter = mustAtoi(text[idx[4]:idx[5]])
		}
		if idx[6] >= 0 {
			c.VerseStart = mustAtoi(text[idx[6]:idx[7]])
		}
		if idx[8] >= 0 {
			c.VerseEnd = mustAtoi(text[idx[8]:idx[9]])
		}

		// Chapterless matches only count as trailing partials.
		if c.Chapter == 0 && strings.TrimRight(text[idx[1]:], " \t\r\n.,;!?'\"") != "" {
			continue
		}

		out = append(out, Match{Citation: c, Start: idx[0], End: idx[1]})
	}
	return out
}

// Context returns a snippet of text around the match, up to contextRadius
// runes on each side, with ellipses marking truncation. Offsets move whole
// runes so the snippet is always valid UTF-8.
func (m Match) Context(text string) string {
	start := m.Start
	for n := 0; n < contextRadius && start > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}
	end := m.End
	for n := 0; n < contextRadius && end < len(text); n++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}

	snippet := text[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(text) {
		snippet = snippet + "..."
	}
	return snippet
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
