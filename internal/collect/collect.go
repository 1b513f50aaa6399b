package collect

import (
	"tonetracker/internal/bank"
	"tonetracker/internal/dateparse"
)

// FromProfile wires the profile's sources into collectors, in the fixed run
// order: feeds, listings, minutes, testimony.
func FromProfile(p bank.Profile, f *Fetcher) []Collector {
	dp := dateparse.New(p.DateLayouts)

	var out []Collector
	for _, fs := range p.Feeds {
		out = append(out, NewFeedCollector(fs.ID, fs.URL, p.Roster, dp, p.SkipSpeakers))
	}
	for _, ls := range p.Listings {
		out = append(out, NewListingCollector(ls, f, p.Roster, dp))
	}
	if len(p.Meetings) > 0 {
		out = append(out, NewMinutesCollector(p, f))
	}
	if p.Testimony != nil {
		out = append(out, NewTestimonyCollector(*p.Testimony, f, p.Roster, dp))
	}
	return out
}
