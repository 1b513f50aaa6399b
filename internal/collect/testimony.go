package collect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"tonetracker/internal/bank"
	"tonetracker/internal/dateparse"
	"tonetracker/internal/logging"
	"tonetracker/internal/roster"
)

const minTestimonyTitle = 10

// TestimonyCollector scrapes a legislative-committee hearings listing for
// oral-evidence sessions featuring committee members.
type TestimonyCollector struct {
	Source  bank.TestimonySource
	Fetcher *Fetcher
	Roster  roster.Roster
	Dates   dateparse.Parser

	log zerolog.Logger
}

func NewTestimonyCollector(src bank.TestimonySource, f *Fetcher, r roster.Roster, dp dateparse.Parser) *TestimonyCollector {
	return &TestimonyCollector{
		Source:  src,
		Fetcher: f,
		Roster:  r,
		Dates:   dp,
		log:     logging.Named("collect." + src.ID),
	}
}

func (c *TestimonyCollector) ID() string { return c.Source.ID }

func (c *TestimonyCollector) Collect(ctx context.Context, cutoff time.Time) ([]Candidate, error) {
	doc, err := c.Fetcher.Document(ctx, c.Source.URL)
	if err != nil {
		return nil, fmt.Errorf("fetching testimony listing %s: %w", c.Source.URL, err)
	}

	var out []Candidate
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if !strings.Contains(strings.ToLower(href), c.Source.LinkToken) {
			return
		}
		title := strings.TrimSpace(flatText(a))
		if len(title) < minTestimonyTitle {
			return
		}

		par := a.Closest("li, div, tr")
		desc := title
		if par.Length() > 0 {
			desc = flatText(par)
		}
		pub, ok := c.Dates.Parse(desc)
		if !ok || pub.Before(cutoff) {
			return
		}

		out = append(out, Candidate{
			Source:    c.Source.ID,
			SpeakerID: c.Roster.Resolve(desc),
			Title:     c.Source.TitlePrefix + truncate(title, 100),
			Date:      pub,
			Venue:     c.Source.Venue,
			URL:       absoluteURL(c.Source.Base, href),
			Kind:      KindTestimony,
		})
	})
	c.log.Info().Int("found", len(out)).Msg("testimony collected")
	return out, nil
}
