package score

import (
	"context"
	"time"
)

// RetryPolicy wraps a fallible call with a bounded attempt count and capped
// exponential backoff. It is injected rather than hand-written per call site
// so the schedule is configurable in one place (and zeroed out in tests).
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetry matches the scoring-call schedule: three attempts, 2s/4s
// pauses, never more than 30s.
func DefaultRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: 2 * time.Second, MaxDelay: 30 * time.Second}
}

// Do runs fn until it succeeds, attempts run out, or ctx is done. The last
// error is returned on exhaustion.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	var err error
	delay := p.BaseDelay
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
			if delay > p.MaxDelay {
				delay = p.MaxDelay
			}
		}
		if err = fn(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}
