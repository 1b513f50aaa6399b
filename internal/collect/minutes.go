package collect

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tonetracker/internal/bank"
	"tonetracker/internal/logging"
	"tonetracker/internal/minutes"
	"tonetracker/internal/window"
)

// minGeneralText guards against publishing a near-empty general entry when a
// minutes page failed to render its content block.
const minGeneralText = 200

// MinutesCollector walks the known committee meetings, fetches each minutes
// page inside the lookback window and emits one candidate per attributed
// vote rationale plus one "general discussion" candidate for the
// non-attributed body of the minutes. These are the highest-value source:
// each rationale is a named member explaining their recorded vote.
type MinutesCollector struct {
	SourceID string
	Meetings []bank.Meeting
	Venue    string
	Label    string
	Keywords []string
	Fetcher  *Fetcher
	Parser   *minutes.Parser

	// Delay paces meeting fetches; zero in tests.
	Delay time.Duration

	log zerolog.Logger
}

func NewMinutesCollector(p bank.Profile, f *Fetcher) *MinutesCollector {
	return &MinutesCollector{
		SourceID: p.MinutesSource,
		Meetings: p.Meetings,
		Venue:    p.MinutesVenue,
		Label:    p.MinutesLabel,
		Keywords: p.PolicyKeywords,
		Fetcher:  f,
		Parser:   minutes.NewParser(p.Roster, minutes.DefaultVoteGroups()),
		Delay:    2 * time.Second,
		log:      logging.Named("collect." + p.MinutesSource),
	}
}

func (c *MinutesCollector) ID() string { return c.SourceID }

func (c *MinutesCollector) Collect(ctx context.Context, cutoff time.Time) ([]Candidate, error) {
	var out []Candidate
	for _, meeting := range c.Meetings {
		day, err := time.Parse("2006-01-02", meeting.Date)
		if err != nil {
			c.log.Warn().Str("date", meeting.Date).Msg("bad meeting date in profile")
			continue
		}
		if day.Before(cutoff) {
			continue
		}

		cands, err := c.collectMeeting(ctx, meeting, day)
		if err != nil {
			c.log.Error().Err(err).Str("meeting", meeting.Date).Msg("minutes fetch failed")
			continue
		}
		out = append(out, cands...)

		if c.Delay > 0 {
			time.Sleep(c.Delay)
		}
	}
	c.log.Info().Int("found", len(out)).Msg("minutes collected")
	return out, nil
}

func (c *MinutesCollector) collectMeeting(ctx context.Context, meeting bank.Meeting, day time.Time) ([]Candidate, error) {
	doc, err := c.Fetcher.Document(ctx, meeting.URL)
	if err != nil {
		return nil, err
	}
	doc.Find(clutterSelector).Remove()

	content := doc.Find("div.page-content").First()
	if content.Length() == 0 {
		content = doc.Find("article").First()
	}
	if content.Length() == 0 {
		content = doc.Find("body").First()
	}
	if content.Length() == 0 {
		return nil, fmt.Errorf("no content in minutes page %s", meeting.URL)
	}

	fullText := blockText(content)
	rationales := c.Parser.ExtractRationales(fullText)
	c.log.Info().Str("meeting", meeting.Date).Int("rationales", len(rationales)).
		Int("chars", len(fullText)).Msg("minutes parsed")

	out := make([]Candidate, 0, len(rationales)+1)
	for _, rat := range rationales {
		out = append(out, Candidate{
			Source:    c.SourceID,
			SpeakerID: rat.SpeakerID,
			Title:     fmt.Sprintf("%s Vote Rationale — %s — %s", c.Label, rat.Name, meeting.Date),
			Date:      day,
			Venue:     c.Venue,
			URL:       meeting.URL,
			Kind:      KindMinutesRationale,
			Vote:      rat.Vote,
			RawText:   rat.Statement,
		})
	}

	// A composite entry for the non-attributed sections of the minutes.
	if general := window.Select(collapseSpace(fullText), window.DefaultMax, c.Keywords); len(general) > minGeneralText {
		out = append(out, Candidate{
			Source:  c.SourceID,
			Title:   fmt.Sprintf("%s — General Discussion — %s", c.Label, meeting.Date),
			Date:    day,
			Venue:   c.Venue,
			URL:     meeting.URL + "#general",
			Kind:    KindMinutesGeneral,
			RawText: general,
		})
	}
	return out, nil
}
