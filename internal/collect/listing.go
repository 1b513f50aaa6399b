package collect

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"tonetracker/internal/bank"
	"tonetracker/internal/dateparse"
	"tonetracker/internal/logging"
	"tonetracker/internal/roster"
)

// Path tokens recognizing speech links when a listing page has no usable
// item structure and the collector falls back to walking every anchor.
var speechPathTokens = []string{
	"/speeches/", "/speech/", "/remarks", "/speaking",
	"/news-and-events/speeches", "/from-the-president",
	"/press_room/speeches", "/testimony",
}

var skipPathTokens = []string{
	"/about/", "/careers/", "/education/", "/org-chart",
	"/media-center", "/publications/", "/data/", "/banking/",
	"/supervision/", "/search", "/contact", "/privacy",
	".pdf", ".xlsx", ".csv", "/feeds/", "/rss/",
}

var (
	// /speech/2026/february/slug → 1 February 2026
	reSpeechYearMonth = regexp.MustCompile(`/speech/(\d{4})/(\w+)/`)
	// 2026-02-05 or 2026/2/5 embedded in a path
	reDateInPath = regexp.MustCompile(`(20\d{2})[-/](\d{1,2})[-/](\d{1,2})`)
)

const (
	minLinkTitle = 8
	maxTitle     = 200
)

// ListingCollector scrapes an HTML speech listing. Configured item selectors
// are tried first; if the site changed its markup and none matches, the
// link-walk fallback recovers candidates from anchor hrefs alone.
type ListingCollector struct {
	Source  bank.ListingSource
	Fetcher *Fetcher
	Roster  roster.Roster
	Dates   dateparse.Parser

	log zerolog.Logger
}

func NewListingCollector(src bank.ListingSource, f *Fetcher, r roster.Roster, dp dateparse.Parser) *ListingCollector {
	return &ListingCollector{
		Source:  src,
		Fetcher: f,
		Roster:  r,
		Dates:   dp,
		log:     logging.Named("collect." + src.ID),
	}
}

func (c *ListingCollector) ID() string { return c.Source.ID }

func (c *ListingCollector) Collect(ctx context.Context, cutoff time.Time) ([]Candidate, error) {
	doc, err := c.Fetcher.Document(ctx, c.Source.URL)
	if err != nil {
		return nil, fmt.Errorf("fetching listing %s: %w", c.Source.URL, err)
	}

	var items *goquery.Selection
	for _, sel := range c.Source.ItemSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			items = found
			break
		}
	}
	if items == nil {
		c.log.Debug().Msg("selector miss, walking links")
		return c.collectLinks(doc, cutoff), nil
	}

	var out []Candidate
	items.Each(func(_ int, item *goquery.Selection) {
		a := item.Find("a").First()
		if a.Length() == 0 {
			return
		}

		var dateEl *goquery.Selection
		for _, ds := range c.Source.DateSelectors {
			if de := item.Find(ds).First(); de.Length() > 0 {
				dateEl = de
				break
			}
		}
		if dateEl == nil {
			dateEl = item.Find("time, .date, span[class*=date]").First()
		}

		var pub time.Time
		ok := false
		if dateEl.Length() > 0 {
			raw := dateEl.AttrOr("datetime", "")
			if raw == "" {
				raw = flatText(dateEl)
			}
			pub, ok = c.Dates.Parse(raw)
		}
		if !ok {
			pub, ok = c.Dates.Parse(flatText(item))
		}
		if !ok || pub.Before(cutoff) {
			return
		}

		href := a.AttrOr("href", "")
		if href == "" {
			return
		}
		desc := flatText(item)
		out = append(out, Candidate{
			Source:    c.Source.ID,
			SpeakerID: c.Roster.Resolve(desc),
			Title:     truncate(flatText(a), maxTitle),
			Date:      pub,
			URL:       absoluteURL(c.Source.Base, href),
			Kind:      KindSpeech,
		})
	})
	c.log.Info().Int("found", len(out)).Msg("listing collected")
	return out, nil
}

// collectLinks is the selector-miss fallback: every anchor whose href looks
// like a speech link, with the publication date recovered from the anchor's
// nearest list-item ancestor or from the URL path itself.
func (c *ListingCollector) collectLinks(doc *goquery.Document, cutoff time.Time) []Candidate {
	seen := map[string]struct{}{}
	var out []Candidate
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		title := strings.TrimSpace(flatText(a))
		if title == "" || len(title) < minLinkTitle {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		hl := strings.ToLower(href)
		if !containsAny(hl, speechPathTokens) || containsAny(hl, skipPathTokens) {
			return
		}
		if strings.ContainsAny(hl, "#") || strings.HasPrefix(hl, "javascript:") || strings.HasPrefix(hl, "mailto:") {
			return
		}
		seen[href] = struct{}{}

		par := a.Closest("li, div, article, tr, p")
		desc := title
		if par.Length() > 0 {
			desc = flatText(par)
		}

		pub, ok := c.Dates.Parse(desc)
		if !ok {
			pub, ok = c.Dates.Parse(title)
		}
		if !ok {
			pub, ok = c.dateFromPath(href)
		}
		if !ok || pub.Before(cutoff) {
			return
		}

		out = append(out, Candidate{
			Source:    c.Source.ID,
			SpeakerID: c.Roster.Resolve(desc + " " + title),
			Title:     truncate(title, maxTitle),
			Date:      pub,
			URL:       absoluteURL(c.Source.Base, href),
			Kind:      KindSpeech,
		})
	})
	c.log.Info().Int("found", len(out)).Msg("link fallback collected")
	return out
}

func (c *ListingCollector) dateFromPath(href string) (time.Time, bool) {
	if m := reSpeechYearMonth.FindStringSubmatch(href); m != nil {
		if d, ok := c.Dates.Parse(fmt.Sprintf("1 %s %s", m[2], m[1])); ok {
			return d, true
		}
	}
	if m := reDateInPath.FindStringSubmatch(href); m != nil {
		if d, err := time.Parse("2006-1-2", fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])); err == nil {
			return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
