// Package collect produces candidate records from each configured source:
// RSS feeds, HTML listing pages, committee minutes and testimony listings.
// Collectors are independent producers; a source failing yields zero
// candidates and never aborts the run.
package collect

import (
	"context"
	"time"
)

// Kind classifies a candidate document.
type Kind string

const (
	KindSpeech           Kind = "speech"
	KindTestimony        Kind = "testimony"
	KindMinutesRationale Kind = "minutes_rationale"
	KindMinutesGeneral   Kind = "minutes_general"
)

// Candidate is an unscored mention of a document. RawText is set when the
// collector already extracted attributable text (minutes rationales); it is
// empty when the text must be fetched from URL. Collectors only emit
// candidates with a non-empty URL and a resolved date.
type Candidate struct {
	Source    string    `json:"source"`
	SpeakerID string    `json:"member_id,omitempty"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Venue     string    `json:"venue,omitempty"`
	URL       string    `json:"url"`
	Kind      Kind      `json:"type"`
	Vote      string    `json:"vote,omitempty"`
	RawText   string    `json:"raw_text,omitempty"`
}

// ISODate formats the candidate date the way the corpus stores dates.
func (c Candidate) ISODate() string {
	return c.Date.Format("2006-01-02")
}

// Collector produces candidates published on or after cutoff.
type Collector interface {
	ID() string
	Collect(ctx context.Context, cutoff time.Time) ([]Candidate, error)
}
