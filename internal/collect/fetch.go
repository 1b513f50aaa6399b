package collect

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"tonetracker/internal/window"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// clutter removed from every fetched page before text extraction.
const clutterSelector = "nav, footer, header, script, style, aside, form, noscript"

// site-specific clutter seen on bank pages.
var siteClutter = []string{
	"div.cookie-banner", "div.related-links", "div.footnotes",
	"div.breadcrumb", "ul.pagination",
}

// minContentText is the threshold below which a selector hit is considered a
// miss (empty shells, cookie stubs).
const minContentText = 300

// Fetcher retrieves and parses pages with browser-like headers. Bank sites
// reject obvious bot agents.
type Fetcher struct {
	Client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: 45 * time.Second}}
}

// Document fetches url and parses it into a goquery document.
func (f *Fetcher) Document(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-GB,en;q=0.8,en-US;q=0.5")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("http %d fetching %s", resp.StatusCode, url)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// SpeechText fetches a speech page and returns its policy window: clutter is
// stripped, the selector cascade is tried in order, and the densest window of
// the matched content is returned. A selector whose text is too short is
// skipped; the page body is the final fallback. Returns "" when nothing
// usable is found.
func (f *Fetcher) SpeechText(ctx context.Context, url string, selectors, keywords []string) (string, error) {
	doc, err := f.Document(ctx, url)
	if err != nil {
		return "", err
	}
	doc.Find(clutterSelector).Remove()
	for _, sel := range siteClutter {
		doc.Find(sel).Remove()
	}
	for _, sel := range selectors {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		raw := flatText(el)
		if len(raw) > minContentText {
			return window.Select(raw, window.DefaultMax, keywords), nil
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return window.Select(flatText(body), window.DefaultMax, keywords), nil
	}
	return "", nil
}

// flatText is the space-joined text of a selection with whitespace collapsed.
func flatText(s *goquery.Selection) string {
	var b strings.Builder
	walkText(s, &b, ' ')
	return collapseSpace(b.String())
}

// blockText joins text with newlines at block-element boundaries, preserving
// the line structure the minutes parser segments on.
func blockText(s *goquery.Selection) string {
	var b strings.Builder
	walkText(s, &b, '\n')
	lines := strings.Split(b.String(), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, "\n")
}

func walkText(s *goquery.Selection, b *strings.Builder, blockSep byte) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			if blockSep == ' ' {
				b.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div", "li", "br", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteByte(blockSep)
			}
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
}

var reSpace = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(reSpace.ReplaceAllString(s, " "))
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func absoluteURL(base, href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	if strings.HasPrefix(href, "/") {
		return base + href
	}
	return base + "/" + href
}
