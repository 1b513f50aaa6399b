package collect

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"

	"tonetracker/internal/dateparse"
	"tonetracker/internal/logging"
	"tonetracker/internal/roster"
)

// FeedCollector pulls a speeches RSS/Atom feed. Speaker identity comes from
// the item description plus title; feed items by officials on the skip list
// that resolve to no committee member are dropped (operational and
// regulatory speeches share the feed).
type FeedCollector struct {
	SourceID     string
	URL          string
	Roster       roster.Roster
	Dates        dateparse.Parser
	SkipSpeakers []string

	parser *gofeed.Parser
	log    zerolog.Logger
}

func NewFeedCollector(id, url string, r roster.Roster, dp dateparse.Parser, skip []string) *FeedCollector {
	p := gofeed.NewParser()
	p.UserAgent = userAgent
	p.Client = &http.Client{Timeout: 45 * time.Second}
	return &FeedCollector{
		SourceID:     id,
		URL:          url,
		Roster:       r,
		Dates:        dp,
		SkipSpeakers: skip,
		parser:       p,
		log:          logging.Named("collect." + id),
	}
}

func (c *FeedCollector) ID() string { return c.SourceID }

func (c *FeedCollector) Collect(ctx context.Context, cutoff time.Time) ([]Candidate, error) {
	feed, err := c.parser.ParseURLWithContext(c.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching feed %s: %w", c.URL, err)
	}

	var out []Candidate
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		var pub time.Time
		switch {
		case item.PublishedParsed != nil:
			pub = midnightUTC(*item.PublishedParsed)
		default:
			d, ok := c.Dates.Parse(item.Published)
			if !ok {
				continue
			}
			pub = d
		}
		if pub.Before(cutoff) {
			continue
		}

		url := strings.TrimSpace(item.Link)
		if !strings.HasPrefix(url, "http") {
			url = strings.TrimSpace(item.GUID)
		}
		if !strings.HasPrefix(url, "http") {
			continue
		}

		desc := item.Description + " " + title
		speaker := c.Roster.Resolve(desc)
		if speaker == "" && containsAny(strings.ToLower(desc), c.SkipSpeakers) {
			continue
		}

		out = append(out, Candidate{
			Source:    c.SourceID,
			SpeakerID: speaker,
			Title:     title,
			Date:      pub,
			URL:       url,
			Kind:      KindSpeech,
		})
	}
	c.log.Info().Int("found", len(out)).Msg("feed collected")
	return out, nil
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
