// Package pipeline drives one end-to-end run: load the corpus, merge the
// supplement file, collect candidates from every configured source, score the
// new ones and persist the result. Runs are sequential and idempotent; a run
// interrupted after scoring still saves whatever it accepted.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"tonetracker/internal/bank"
	"tonetracker/internal/collect"
	"tonetracker/internal/corpus"
	"tonetracker/internal/logging"
	"tonetracker/internal/score"
)

const (
	backfillDays = 730

	// Minimum usable text lengths. Pre-extracted minutes text already passed
	// the attribution filter, so it gets a lower bar than a fresh fetch.
	minFetchedText = 80
	minRawText     = 50

	// Excerpt length persisted on each entry.
	excerptLen = 800
)

// Options configures a run. Zero values pick the documented defaults.
type Options struct {
	DryRun       bool
	Backfill     bool
	LookbackDays int // explicit override; 0 means auto

	DefaultLookback int // auto-mode floor, default 7

	CorpusPath     string
	MirrorPath     string
	SupplementPath string
	FailedPath     string

	SourceDelay time.Duration // pause between sources, default 1s
	ScoreDelay  time.Duration // pause between scoring calls, default 1.5s

	Now func() time.Time
}

func (o *Options) setDefaults() {
	if o.DefaultLookback == 0 {
		o.DefaultLookback = 7
	}
	if o.SourceDelay == 0 {
		o.SourceDelay = time.Second
	}
	if o.ScoreDelay == 0 {
		o.ScoreDelay = 1500 * time.Millisecond
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Summary reports what a run did.
type Summary struct {
	Collected int
	Skipped   int
	Scored    int
	Failed    int
	DryRun    bool
}

// Runner wires one bank profile to its collectors and scorer. Collectors is
// populated from the profile; replaceable for tests.
type Runner struct {
	Collectors []collect.Collector

	profile bank.Profile
	fetcher *collect.Fetcher
	scorer  *score.Scorer
	opts    Options
	log     zerolog.Logger
}

func NewRunner(p bank.Profile, scorer *score.Scorer, opts Options) *Runner {
	opts.setDefaults()
	fetcher := collect.NewFetcher()
	return &Runner{
		Collectors: collect.FromProfile(p, fetcher),
		profile:    p,
		fetcher:    fetcher,
		scorer:     scorer,
		opts:       opts,
		log:        logging.Named("pipeline"),
	}
}

// Run executes one batch. The corpus is saved even when collection or
// scoring errors out partway, so accepted entries are never lost.
func (r *Runner) Run(ctx context.Context) (summary Summary, err error) {
	store, err := corpus.Load(r.opts.CorpusPath, r.opts.MirrorPath)
	if err != nil {
		return Summary{}, err
	}
	r.log.Info().Int("entries", store.Len()).Msg("corpus loaded")

	if r.opts.SupplementPath != "" {
		added, err := corpus.MergeSupplement(store, r.opts.SupplementPath)
		if err != nil {
			r.log.Warn().Err(err).Msg("supplement merge failed")
		} else if added > 0 {
			r.log.Info().Int("added", added).Msg("supplement rows merged")
		}
	}

	cutoff := r.cutoff(store)
	r.log.Info().Str("cutoff", cutoff.Format("2006-01-02")).Msg("collection window")

	index := corpus.BuildIndex(store)
	summary = Summary{DryRun: r.opts.DryRun}

	var failed []collect.Candidate
	defer func() {
		if r.opts.DryRun {
			return
		}
		if saveErr := corpus.Save(store, r.opts.CorpusPath, r.opts.MirrorPath); saveErr != nil {
			r.log.Error().Err(saveErr).Msg("corpus save failed")
			if err == nil {
				err = saveErr
			}
		}
		r.writeFailed(failed)
	}()

	for i, c := range r.Collectors {
		if i > 0 {
			sleep(ctx, r.opts.SourceDelay)
		}
		cands, err := c.Collect(ctx, cutoff)
		if err != nil {
			r.log.Warn().Err(err).Str("source", c.ID()).Msg("source failed")
			continue
		}
		summary.Collected += len(cands)

		for _, cand := range cands {
			if index.IsDuplicate(cand.URL, cand.ISODate(), cand.Title) {
				summary.Skipped++
				continue
			}
			if r.opts.DryRun {
				r.log.Info().
					Str("source", cand.Source).
					Str("date", cand.ISODate()).
					Str("title", cand.Title).
					Msg("would score")
				summary.Scored++
				index.Add(cand.URL, cand.ISODate(), cand.Title)
				continue
			}

			entry, err := r.process(ctx, cand)
			if err != nil {
				r.log.Warn().Err(err).Str("url", cand.URL).Msg("candidate failed")
				failed = append(failed, cand)
				summary.Failed++
				continue
			}
			if entry == nil {
				summary.Skipped++
				continue
			}

			key := cand.SpeakerID
			if key == "" {
				key = r.profile.GeneralKey
			}
			store.Append(key, *entry)
			index.Add(entry.URL, entry.Date, entry.Title)
			summary.Scored++
			sleep(ctx, r.opts.ScoreDelay)
		}
	}

	r.log.Info().
		Int("collected", summary.Collected).
		Int("skipped", summary.Skipped).
		Int("scored", summary.Scored).
		Int("failed", summary.Failed).
		Bool("dry_run", summary.DryRun).
		Msg("run complete")
	return summary, ctx.Err()
}

// process turns one candidate into a persisted entry. A nil entry with nil
// error means the candidate was dropped for thin text.
func (r *Runner) process(ctx context.Context, cand collect.Candidate) (*corpus.Entry, error) {
	text := cand.RawText
	if text == "" {
		var err error
		text, err = r.fetcher.SpeechText(ctx, cand.URL, r.profile.TextSelectors, r.profile.PolicyKeywords)
		if err != nil {
			return nil, fmt.Errorf("fetching text: %w", err)
		}
		if len(text) < minFetchedText {
			r.log.Debug().Str("url", cand.URL).Int("len", len(text)).Msg("text too thin")
			return nil, nil
		}
	} else if len(text) < minRawText {
		return nil, nil
	}

	speaker := r.profile.Roster.DisplayName(cand.SpeakerID)
	result, err := r.scorer.Score(ctx, speaker, text, cand.Vote)
	if err != nil {
		return nil, err
	}

	excerpt := text
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen]
	}
	entry := corpus.Entry{
		Date:      cand.ISODate(),
		Title:     cand.Title,
		Venue:     cand.Venue,
		URL:       cand.URL,
		URLHash:   corpus.URLHash(cand.URL),
		Source:    cand.Source,
		Kind:      string(cand.Kind),
		Vote:      cand.Vote,
		Text:      excerpt,
		Score:     result.Composite,
		Stance:    result.Stance,
		Balance:   result.Balance,
		Direction: result.Direction,
		Reason:    result.Reason,
		Keywords:  result.Keywords,
		Model:     r.scorer.Model(),
		ScrapedAt: r.opts.Now().UTC().Format(time.RFC3339),
	}
	if !entry.Valid() {
		return nil, fmt.Errorf("entry missing required fields")
	}
	return &entry, nil
}

// cutoff computes the collection window start. An explicit lookback wins,
// then backfill mode, then auto: far enough back to cover the gap since the
// newest stored entry, never less than the default window.
func (r *Runner) cutoff(store corpus.Corpus) time.Time {
	now := r.opts.Now().UTC()
	days := r.opts.DefaultLookback
	switch {
	case r.opts.LookbackDays > 0:
		days = r.opts.LookbackDays
	case r.opts.Backfill:
		days = backfillDays
	default:
		if newest := store.NewestDate(); newest != "" {
			if t, err := time.Parse("2006-01-02", newest); err == nil {
				gap := int(now.Sub(t).Hours()/24) + 1
				if gap > days {
					days = gap
				}
			}
		}
	}
	return now.AddDate(0, 0, -days)
}

// writeFailed persists candidates that exhausted scoring retries so a later
// run (or an operator) can replay them.
func (r *Runner) writeFailed(failed []collect.Candidate) {
	if r.opts.FailedPath == "" || len(failed) == 0 {
		return
	}
	data, err := json.MarshalIndent(failed, "", "  ")
	if err != nil {
		r.log.Warn().Err(err).Msg("encoding failed queue")
		return
	}
	if err := os.WriteFile(r.opts.FailedPath, data, 0o644); err != nil {
		r.log.Warn().Err(err).Msg("writing failed queue")
		return
	}
	r.log.Info().Int("count", len(failed)).Str("path", r.opts.FailedPath).Msg("failed queue written")
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
