// Package bank holds the per-bank configuration the pipeline is generic over:
// policy-rate parameters, the committee roster, keyword tables, source
// definitions and the scoring prompt. Profiles are immutable values passed
// into components at construction, so the same logic can score historical
// snapshots under a different rate regime.
package bank

import (
	"fmt"
	"math"

	"tonetracker/internal/roster"
)

// FeedSource is an RSS/Atom feed of speeches.
type FeedSource struct {
	ID  string
	URL string
}

// ListingSource is an HTML listing page. ItemSelectors are tried in order;
// when none matches, the collector falls back to walking links whose href
// contains a speech path token.
type ListingSource struct {
	ID            string
	URL           string
	Base          string
	ItemSelectors []string
	DateSelectors []string
}

// Meeting is a known committee meeting with its minutes URL.
type Meeting struct {
	Date string // ISO calendar date
	URL  string
}

// TestimonySource is a legislative-committee hearings listing.
type TestimonySource struct {
	ID          string
	URL         string
	Base        string
	LinkToken   string
	Venue       string
	TitlePrefix string
}

// Profile is one bank instance. Policy parameters are updated after each
// rate decision.
type Profile struct {
	ID         string
	Name       string
	GeneralKey string // corpus key for unattributed entries

	RateLabel    string
	RateMid      float64
	NeutralRate  float64
	LastVote     string
	LastDecision string
	CPILatest    string

	Model          string
	PolicyKeywords []string
	TextSelectors  []string
	SkipSpeakers   []string
	DateLayouts    []string
	Roster         roster.Roster

	Feeds    []FeedSource
	Listings []ListingSource

	Meetings      []Meeting
	MinutesSource string
	MinutesVenue  string
	MinutesLabel  string

	Testimony *TestimonySource

	ScoringPrompt string // text/template source, see score.NewScorer
}

// PolicyGapBP is the signed distance from neutral in basis points.
func (p Profile) PolicyGapBP() int {
	return int(math.Round((p.RateMid - p.NeutralRate) * 100))
}

// ByID returns a built-in profile.
func ByID(id string) (Profile, error) {
	switch id {
	case "fed":
		return Fed(), nil
	case "boe":
		return BoE(), nil
	}
	return Profile{}, fmt.Errorf("unknown bank profile %q (want fed or boe)", id)
}
