// Package report renders a Word digest of the corpus: one section per
// committee member with their scoring average and most recent entries, for
// circulation to readers who do not consume the JSON directly.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gingfrederik/docx"

	"tonetracker/internal/bank"
	"tonetracker/internal/corpus"
)

// entriesPerSpeaker bounds how many recent entries each section shows.
const entriesPerSpeaker = 3

// Generate writes the digest for the given corpus to path.
func Generate(p bank.Profile, store corpus.Corpus, path string) error {
	f := docx.NewFile()

	title := f.AddParagraph()
	run := title.AddText(fmt.Sprintf("%s Policy Tone Digest", p.Name))
	run.Size(20)

	meta := f.AddParagraph()
	run = meta.AddText(fmt.Sprintf("%s: %s | Policy gap vs neutral: %+d bp | Entries: %d",
		p.RateLabel, rateDisplay(p), p.PolicyGapBP(), store.Len()))
	run.Size(10)
	run.Color("808080")

	f.AddParagraph() // Spacer
	f.AddParagraph().AddText("--------------------------------------------------")
	f.AddParagraph() // Spacer

	for _, key := range orderedKeys(p, store) {
		entries := store[key]
		if len(entries) == 0 {
			continue
		}
		writeSpeaker(f, displayName(p, key), entries)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("saving report %s: %w", path, err)
	}
	return nil
}

func writeSpeaker(f *docx.File, name string, entries []corpus.Entry) {
	head := f.AddParagraph()
	run := head.AddText(name)
	run.Size(16)

	avg := 0
	for _, e := range entries {
		avg += e.Score
	}
	avg /= len(entries)

	p := f.AddParagraph()
	run = p.AddText(fmt.Sprintf("Average score: %d (%s) across %d entries", avg, toneLabel(avg), len(entries)))
	run.Color("008000")

	recent := append([]corpus.Entry(nil), entries...)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Date > recent[j].Date })
	if len(recent) > entriesPerSpeaker {
		recent = recent[:entriesPerSpeaker]
	}

	for _, e := range recent {
		p = f.AddParagraph()
		run = p.AddText(fmt.Sprintf("%s  %s", e.Date, e.Title))
		run.Size(10)

		p = f.AddParagraph()
		run = p.AddText(fmt.Sprintf("Score %d | stance %d, balance %d, direction %d | %s",
			e.Score, e.Stance, e.Balance, e.Direction, e.Reason))
		run.Size(10)
		run.Color("808080")

		p = f.AddParagraph()
		run = p.AddText(e.URL)
		run.Size(10)
		run.Color("0000FF")
	}

	f.AddParagraph() // Spacer
}

// orderedKeys returns roster order first (so the digest reads like the
// committee list), then any remaining corpus keys alphabetically, with the
// general bucket last.
func orderedKeys(p bank.Profile, store corpus.Corpus) []string {
	seen := make(map[string]bool, len(store))
	var keys []string
	for _, m := range p.Roster.Members {
		if _, ok := store[m.ID]; ok {
			keys = append(keys, m.ID)
			seen[m.ID] = true
		}
	}
	var rest []string
	for k := range store {
		if !seen[k] && k != p.GeneralKey {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)
	if _, ok := store[p.GeneralKey]; ok {
		keys = append(keys, p.GeneralKey)
	}
	return keys
}

func displayName(p bank.Profile, key string) string {
	if key == p.GeneralKey {
		return fmt.Sprintf("%s (unattributed)", p.Name)
	}
	return p.Roster.DisplayName(key)
}

func toneLabel(score int) string {
	switch {
	case score >= 30:
		return "hawkish"
	case score >= 10:
		return "lean hawkish"
	case score > -10:
		return "neutral"
	case score > -30:
		return "lean dovish"
	default:
		return "dovish"
	}
}

func rateDisplay(p bank.Profile) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", p.RateMid), "0"), ".") + "%"
}
