package bank

import (
	"strings"
	"testing"
	"text/template"
	"time"
)

func TestByID(t *testing.T) {
	for _, id := range []string{"fed", "boe"} {
		p, err := ByID(id)
		if err != nil {
			t.Fatalf("ByID(%s): %v", id, err)
		}
		if p.ID != id {
			t.Errorf("profile ID = %q, want %q", p.ID, id)
		}
	}
	if _, err := ByID("ecb"); err == nil {
		t.Error("ByID(ecb) should fail")
	}
}

func TestPolicyGapBP(t *testing.T) {
	tests := []struct {
		mid, neutral float64
		want         int
	}{
		{3.625, 3.0, 63},
		{3.75, 3.25, 50},
		{3.0, 3.0, 0},
		{2.5, 3.0, -50},
	}
	for _, tt := range tests {
		p := Profile{RateMid: tt.mid, NeutralRate: tt.neutral}
		if got := p.PolicyGapBP(); got != tt.want {
			t.Errorf("PolicyGapBP(%v, %v) = %d, want %d", tt.mid, tt.neutral, got, tt.want)
		}
	}
}

func TestProfilesComplete(t *testing.T) {
	for _, p := range []Profile{Fed(), BoE()} {
		t.Run(p.ID, func(t *testing.T) {
			if len(p.Roster.Members) == 0 {
				t.Error("empty roster")
			}
			if len(p.PolicyKeywords) == 0 {
				t.Error("no policy keywords")
			}
			if len(p.DateLayouts) == 0 {
				t.Error("no date layouts")
			}
			if len(p.Feeds) == 0 && len(p.Listings) == 0 && len(p.Meetings) == 0 {
				t.Error("no sources configured")
			}
			if p.GeneralKey == "" {
				t.Error("no general corpus key")
			}
			if p.Model == "" {
				t.Error("no scoring model")
			}

			tmpl, err := template.New("p").Parse(p.ScoringPrompt)
			if err != nil {
				t.Fatalf("scoring prompt does not parse: %v", err)
			}
			var b strings.Builder
			err = tmpl.Execute(&b, struct {
				NeutralRate, RateMid                                   float64
				GapBP                                                  int
				RateLabel, Speaker, LastVote, LastDecision, CPILatest  string
				VoteContext, Text                                      string
			}{
				NeutralRate: p.NeutralRate, RateMid: p.RateMid, GapBP: p.PolicyGapBP(),
				RateLabel: p.RateLabel, Speaker: "X", LastVote: p.LastVote,
				LastDecision: p.LastDecision, CPILatest: p.CPILatest, Text: "t",
			})
			if err != nil {
				t.Fatalf("scoring prompt does not execute: %v", err)
			}
			if !strings.Contains(b.String(), p.RateLabel) {
				t.Error("prompt missing the rate label")
			}

			for _, m := range p.Meetings {
				if _, err := time.Parse("2006-01-02", m.Date); err != nil {
					t.Errorf("meeting date %q not ISO", m.Date)
				}
				if !strings.HasPrefix(m.URL, "http") {
					t.Errorf("meeting url %q not absolute", m.URL)
				}
			}
		})
	}
}

func TestRosterAliasesLowercase(t *testing.T) {
	for _, p := range []Profile{Fed(), BoE()} {
		for _, m := range append(p.Roster.Members, p.Roster.Former...) {
			for _, a := range m.Aliases {
				if a != strings.ToLower(a) {
					t.Errorf("%s: alias %q of %s not lowercase", p.ID, a, m.ID)
				}
			}
		}
	}
}
