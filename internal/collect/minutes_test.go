package collect

import (
	"context"
	"strings"
	"testing"
	"time"

	"tonetracker/internal/bank"
	"tonetracker/internal/minutes"
	"tonetracker/internal/roster"
)

const minutesPage = `<html><body>
<nav>Menu</nav>
<div class="page-content">
<p>Seven members (Andrew Bailey and Megan Greene) voted in favour of the proposition.</p>
<p>One member (Swati Dhingra) voted against, preferring to reduce Bank Rate by 25 basis points.</p>
<p>Andrew Bailey: The Governor judged that inflation persistence had eased enough to keep Bank Rate on hold while monitoring pay settlements through the spring round.</p>
<p>Swati Dhingra: She argued that the labour market had loosened materially and that holding Bank Rate at this level risked an unnecessarily sharp slowdown in demand.</p>
<p>The Committee discussed the inflation outlook, Bank Rate, the path of pay growth and the policy stance at considerable length, noting that services inflation remained above a level consistent with the target and that monetary policy would need to stay restrictive for some time yet.</p>
</div>
</body></html>`

func mpcRoster() roster.Roster {
	return roster.Roster{
		Members: []roster.Member{
			{ID: "bailey", FullName: "Andrew Bailey", Aliases: []string{"bailey"}},
			{ID: "greene", FullName: "Megan Greene", Aliases: []string{"greene"}},
			{ID: "dhingra", FullName: "Swati Dhingra", Aliases: []string{"dhingra"}},
		},
	}
}

func TestMinutesCollect(t *testing.T) {
	srv := serveHTML(t, minutesPage)
	r := mpcRoster()
	c := &MinutesCollector{
		SourceID: "boe_minutes",
		Meetings: []bank.Meeting{
			{Date: "2026-02-05", URL: srv.URL},
			{Date: "2025-11-06", URL: srv.URL + "/older"},
		},
		Venue:    "Monetary Policy Committee",
		Label:    "MPC Minutes",
		Keywords: []string{"inflation", "bank rate"},
		Fetcher:  NewFetcher(),
		Parser:   minutes.NewParser(r, minutes.DefaultVoteGroups()),
	}

	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := c.Collect(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	// Two rationales plus the general-discussion candidate; the meeting
	// before the cutoff is never fetched.
	if len(got) != 3 {
		t.Fatalf("got %d candidates, want 3: %+v", len(got), got)
	}

	bailey := got[0]
	if bailey.SpeakerID != "bailey" || bailey.Vote != "hold" {
		t.Errorf("rationale 0 = %s/%s, want bailey/hold", bailey.SpeakerID, bailey.Vote)
	}
	if bailey.Kind != KindMinutesRationale {
		t.Errorf("rationale kind = %q", bailey.Kind)
	}
	if bailey.RawText == "" || !strings.Contains(bailey.RawText, "inflation persistence") {
		t.Errorf("rationale text = %q", bailey.RawText)
	}
	if !strings.Contains(bailey.Title, "Andrew Bailey") {
		t.Errorf("rationale title = %q", bailey.Title)
	}

	dhingra := got[1]
	if dhingra.SpeakerID != "dhingra" || dhingra.Vote != "cut" {
		t.Errorf("rationale 1 = %s/%s, want dhingra/cut", dhingra.SpeakerID, dhingra.Vote)
	}

	general := got[2]
	if general.Kind != KindMinutesGeneral {
		t.Errorf("general kind = %q", general.Kind)
	}
	if general.SpeakerID != "" {
		t.Errorf("general speaker = %q, want unattributed", general.SpeakerID)
	}
	if !strings.HasSuffix(general.URL, "#general") {
		t.Errorf("general url = %q", general.URL)
	}
	if len(general.RawText) <= minGeneralText {
		t.Errorf("general text length = %d", len(general.RawText))
	}
}

func TestMinutesCollectBadMeetingDate(t *testing.T) {
	c := &MinutesCollector{
		SourceID: "boe_minutes",
		Meetings: []bank.Meeting{{Date: "February 5th", URL: "http://127.0.0.1:1/x"}},
		Fetcher:  NewFetcher(),
		Parser:   minutes.NewParser(mpcRoster(), minutes.DefaultVoteGroups()),
	}
	got, err := c.Collect(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d candidates from an unparseable meeting date", len(got))
	}
}
