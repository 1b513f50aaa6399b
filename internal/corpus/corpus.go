// Package corpus manages the persisted speaker→entries store that feeds the
// tone-tracker dashboard. The store is a single JSON document read in full at
// the start of a run, appended to during the run, and written back in full at
// the end; entries are never mutated in place, corrections arrive only through
// the supplement file.
package corpus

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
)

// Keyword is one signal phrase from the scoring call, tagged hawk/dove/neutral.
type Keyword struct {
	Word string `json:"word"`
	Type string `json:"type"`
}

// Entry is one scored document, immutable once persisted. Text holds a
// bounded excerpt for audit/display, not the full source.
type Entry struct {
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Venue     string    `json:"venue"`
	URL       string    `json:"url"`
	URLHash   string    `json:"url_hash"`
	Source    string    `json:"source"`
	Kind      string    `json:"type"`
	Vote      string    `json:"vote,omitempty"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	Stance    int       `json:"stance"`
	Balance   int       `json:"balance"`
	Direction int       `json:"direction"`
	Reason    string    `json:"reason"`
	Keywords  []Keyword `json:"keywords"`
	Model     string    `json:"model"`
	ScrapedAt string    `json:"scraped_at"`
}

// Valid reports whether the entry carries every required field. Numeric
// scores are value types and always present; the string fields are the ones
// that can arrive empty from a bad scrape.
func (e Entry) Valid() bool {
	return e.Date != "" && e.Title != "" && e.Source != "" && e.URL != ""
}

// Corpus maps speaker ID (or the per-bank "general" sentinel) to entries in
// scoring order.
type Corpus map[string][]Entry

// Load reads the first existing path. No path existing is not an error: a
// fresh deployment starts with an empty corpus.
func Load(paths ...string) (Corpus, error) {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading corpus %s: %w", p, err)
		}
		c := Corpus{}
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decoding corpus %s: %w", p, err)
		}
		return c, nil
	}
	return Corpus{}, nil
}

// Save writes the full corpus to primary and mirrors it to mirror. The
// mirror copy is a convenience for consumers reading the secondary location;
// its failure is not fatal.
func Save(c Corpus, primary, mirror string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding corpus: %w", err)
	}
	if err := os.WriteFile(primary, data, 0o644); err != nil {
		return fmt.Errorf("writing corpus %s: %w", primary, err)
	}
	if mirror != "" {
		_ = os.WriteFile(mirror, data, 0o644)
	}
	return nil
}

// Append adds an entry under key, creating the speaker list if needed.
func (c Corpus) Append(key string, e Entry) {
	c[key] = append(c[key], e)
}

// Len is the total entry count across speakers.
func (c Corpus) Len() int {
	n := 0
	for _, v := range c {
		n += len(v)
	}
	return n
}

// NewestDate returns the lexicographically greatest ISO date in the corpus,
// or "" when empty. ISO ordering makes string comparison correct.
func (c Corpus) NewestDate() string {
	newest := ""
	for _, entries := range c {
		for _, e := range entries {
			if e.Date > newest {
				newest = e.Date
			}
		}
	}
	return newest
}

// URLHash is the short defensive hash stored alongside the literal URL.
func URLHash(url string) string {
	sum := md5.Sum([]byte(url))
	return hex.EncodeToString(sum[:])[:12]
}

// MergeSupplement additively merges the correction file at path into c,
// keyed by speaker ID. Rows whose URL or (date, title-prefix) key already
// exists are skipped: the supplement only adds missing rows, it never
// overwrites. Returns the number of rows added. A missing file adds nothing.
func MergeSupplement(c Corpus, path string) (int, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	sup := Corpus{}
	if err := json.Unmarshal(data, &sup); err != nil {
		return 0, fmt.Errorf("decoding supplement %s: %w", path, err)
	}

	added := 0
	for key, rows := range sup {
		existing := c[key]
		keys := make(map[string]struct{}, len(existing))
		urls := make(map[string]struct{}, len(existing))
		for _, e := range existing {
			keys[tupleKey(e.Date, e.Title)] = struct{}{}
			urls[e.URL] = struct{}{}
		}
		for _, row := range rows {
			if _, dup := keys[tupleKey(row.Date, row.Title)]; dup {
				continue
			}
			if _, dup := urls[row.URL]; dup && row.URL != "" {
				continue
			}
			existing = append(existing, row)
			keys[tupleKey(row.Date, row.Title)] = struct{}{}
			added++
		}
		c[key] = existing
	}
	return added, nil
}

func titlePrefix(title string) string {
	if len(title) > 30 {
		return title[:30]
	}
	return title
}

func tupleKey(date, title string) string {
	return date + "\x00" + titlePrefix(title)
}
