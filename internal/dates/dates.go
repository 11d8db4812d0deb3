// Package dates parses the loosely-typed publish dates attached to sermons.
// The remote API has emitted ISO strings, bare YYYYMMDD strings, YYYYMMDD
// integers, and Unix timestamps over its lifetime, so parsing runs an ordered
// list of named strategies and reports failure rather than guessing.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Strategy is one pure date-parsing rule, tried in order.
type Strategy struct {
	Name  string
	Parse func(string) (time.Time, bool)
}

// Strategies is the ordered strategy list. Earlier entries win.
var Strategies = []Strategy{
	{"iso8601", parseISO},
	{"yyyymmdd", parseCompact},
	{"unix-seconds", parseUnix},
}

// Parse resolves a raw publish-date value to a time. The boolean is false
// when no strategy accepts the input; callers exclude such sermons from the
// timeline but still ingest their citations.
func Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, s := range Strategies {
		if t, ok := s.Parse(raw); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseISO(raw string) (time.Time, bool) {
	if !strings.Contains(raw, "-") {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseCompact(raw string) (time.Time, bool) {
	if len(raw) != 8 {
		return time.Time{}, false
	}
	t, err := time.Parse("20060102", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseUnix(raw string) (time.Time, bool) {
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(secs, 0).UTC(), true
}

// Buckets returns the three timeline bucket keys for a date: year, month
// number, and zero-padded "YYYY-MM".
func Buckets(t time.Time) (year, month, yearMonth string) {
	year = strconv.Itoa(t.Year())
	month = strconv.Itoa(int(t.Month()))
	yearMonth = fmt.Sprintf("%s-%02d", year, int(t.Month()))
	return year, month, yearMonth
}
