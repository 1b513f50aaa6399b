// Package score turns a policy-text excerpt into a structured directional
// sentiment via the external language-model call. The response schema is
// fixed; anything structurally off counts as a retryable failure, and a
// candidate that exhausts its retries is handed back to the caller for the
// failure queue rather than dropped.
package score

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"tonetracker/internal/bank"
	"tonetracker/internal/corpus"
	"tonetracker/internal/logging"
)

// maxPromptText bounds the excerpt embedded in the prompt.
const maxPromptText = 2800

// Result is the six-field structured score.
type Result struct {
	Composite int
	Stance    int
	Balance   int
	Direction int
	Reason    string
	Keywords  []corpus.Keyword
}

// CompleteFunc is the opaque language-model call: prompt in, raw text out.
type CompleteFunc func(ctx context.Context, prompt string) (string, error)

// Scorer assembles the bank-calibrated prompt, invokes the model with the
// injected retry policy and validates the response shape.
type Scorer struct {
	complete CompleteFunc
	retry    RetryPolicy
	profile  bank.Profile
	tmpl     *template.Template
	log      zerolog.Logger
}

func NewScorer(p bank.Profile, complete CompleteFunc, retry RetryPolicy) (*Scorer, error) {
	tmpl, err := template.New("prompt").Parse(p.ScoringPrompt)
	if err != nil {
		return nil, fmt.Errorf("parsing scoring prompt for %s: %w", p.ID, err)
	}
	return &Scorer{
		complete: complete,
		retry:    retry,
		profile:  p,
		tmpl:     tmpl,
		log:      logging.Named("score"),
	}, nil
}

type promptData struct {
	NeutralRate  float64
	RateLabel    string
	RateMid      float64
	GapBP        int
	Speaker      string
	LastVote     string
	LastDecision string
	CPILatest    string
	VoteContext  string
	Text         string
}

// Score obtains a structured score for the excerpt. speakerName is the
// display name ("Unknown Committee Member" when unattributed); vote, when
// known, is passed to the model as context. Returns an error only after the
// retry policy is exhausted.
func (s *Scorer) Score(ctx context.Context, speakerName, text, vote string) (*Result, error) {
	if len(text) > maxPromptText {
		text = text[:maxPromptText]
	}

	voteCtx := ""
	if vote != "" && vote != "unknown" {
		voteCtx = fmt.Sprintf(
			"IMPORTANT: This member voted to %s at this meeting. The rationale text explains their reasoning.",
			strings.ToUpper(vote))
	}

	var prompt strings.Builder
	err := s.tmpl.Execute(&prompt, promptData{
		NeutralRate:  s.profile.NeutralRate,
		RateLabel:    s.profile.RateLabel,
		RateMid:      s.profile.RateMid,
		GapBP:        s.profile.PolicyGapBP(),
		Speaker:      speakerName,
		LastVote:     s.profile.LastVote,
		LastDecision: s.profile.LastDecision,
		CPILatest:    s.profile.CPILatest,
		VoteContext:  voteCtx,
		Text:         text,
	})
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	var result *Result
	err = s.retry.Do(ctx, func() error {
		raw, err := s.complete(ctx, prompt.String())
		if err != nil {
			s.log.Warn().Err(err).Str("speaker", speakerName).Msg("scoring attempt failed")
			return err
		}
		r, err := parseResult(raw)
		if err != nil {
			s.log.Warn().Err(err).Str("speaker", speakerName).Msg("malformed scoring response")
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scoring %s: %w", speakerName, err)
	}
	return result, nil
}

// Model names the scoring model recorded on every entry.
func (s *Scorer) Model() string {
	return s.profile.Model
}

var reFence = regexp.MustCompile("(?m)^```json|^```|```$")

// parseResult decodes the model output into the fixed six-key schema.
// Pointer fields distinguish a missing key from a zero value; any missing or
// mistyped key fails the whole response.
func parseResult(raw string) (*Result, error) {
	cleaned := strings.TrimSpace(reFence.ReplaceAllString(strings.TrimSpace(raw), ""))

	var p struct {
		Stance    *int             `json:"stance"`
		Balance   *int             `json:"balance"`
		Direction *int             `json:"direction"`
		Composite *int             `json:"composite"`
		Reason    *string          `json:"reason"`
		Keywords  *[]corpus.Keyword `json:"keywords"`
	}
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return nil, fmt.Errorf("invalid score json: %w", err)
	}
	if p.Stance == nil || p.Balance == nil || p.Direction == nil ||
		p.Composite == nil || p.Reason == nil || p.Keywords == nil {
		return nil, fmt.Errorf("score json missing required keys")
	}
	return &Result{
		Composite: *p.Composite,
		Stance:    *p.Stance,
		Balance:   *p.Balance,
		Direction: *p.Direction,
		Reason:    *p.Reason,
		Keywords:  *p.Keywords,
	}, nil
}
