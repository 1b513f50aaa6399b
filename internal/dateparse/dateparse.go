// Package dateparse normalizes the date strings found on central-bank sites
// into calendar dates. Feeds, listing pages and minutes all format dates
// differently; a fixed cleanup pass plus an ordered layout list covers the
// common cases, with regex extraction as a last resort.
package dateparse

import (
	"regexp"
	"strings"
	"time"
)

// Cleanup rewrites applied in order before any layout is tried.
var cleanups = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\s+`), " "},                         // collapse whitespace
	{regexp.MustCompile(`^[A-Za-z]{3,9},\s*`), ""},           // "Thursday, 5 ..." -> "5 ..."
	{regexp.MustCompile(`\s+\d{2}:\d{2}(:\d{2})?.*$`), ""},   // trailing clock time
	{regexp.MustCompile(`(\d)(?:st|nd|rd|th)\b`), "$1"},      // "5th" -> "5"
	{regexp.MustCompile(`[+-]\d{2}:\d{2}$`), ""},             // trailing UTC offset
}

var (
	reDayMonthYear = regexp.MustCompile(`\d{1,2} [A-Za-z]+ \d{4}`)
	reMonthDayYear = regexp.MustCompile(`[A-Za-z]+ \d{1,2},? \d{4}`)
	reISO          = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// UKLayouts puts day-first forms before US forms so "05/02/2026" reads as
// 5 February. Order matters everywhere a string is valid under two layouts.
var UKLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
	"02/01/2006",
	"January 2006",
	"2006-01-02T15:04:05",
}

// USLayouts is the month-first ordering used for US sources.
var USLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2,2006",
	"2006-01-02",
	"01/02/2006",
	"2 January 2006",
	"January 2006",
	"2 Jan 2006",
	"2006/01/02",
	"2006-01-02T15:04:05",
}

// Parser tries a fixed ordered list of layouts.
type Parser struct {
	layouts []string
}

func New(layouts []string) Parser {
	return Parser{layouts: layouts}
}

// Parse returns the calendar date (UTC midnight) found in text, and false if
// no strategy succeeds. Callers must drop candidates on false, never default
// to the current date.
func (p Parser) Parse(text string) (time.Time, bool) {
	if text == "" {
		return time.Time{}, false
	}
	s := strings.TrimSpace(text)
	for _, c := range cleanups {
		s = c.re.ReplaceAllString(s, c.repl)
	}
	s = strings.TrimSpace(s)
	// Layouts see at most 30 chars; the regex fallbacks scan the whole
	// cleaned string, so a date buried deep in a description still parses.
	head := s
	if len(head) > 30 {
		head = head[:30]
	}
	for _, layout := range p.layouts {
		if t, err := time.Parse(layout, head); err == nil {
			return midnight(t), true
		}
	}
	// Regex fallbacks, in order: "D Month YYYY", "Month D, YYYY", ISO. The
	// first two recurse into the matched substring; recursion stops when the
	// match is the whole cleaned string (no progress possible).
	if m := reDayMonthYear.FindString(s); m != "" && m != s {
		if t, ok := p.Parse(m); ok {
			return t, true
		}
	}
	if m := reMonthDayYear.FindString(s); m != "" && m != s {
		if t, ok := p.Parse(m); ok {
			return t, true
		}
	}
	if m := reISO.FindString(s); m != "" {
		if t, err := time.Parse("2006-01-02", m); err == nil {
			return midnight(t), true
		}
	}
	return time.Time{}, false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
