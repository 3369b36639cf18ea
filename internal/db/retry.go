package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-bench/internal/logging"
)

// RetryPolicy bounds retries of transient backend failures with
// exponential backoff. Only errors matching ErrBackendUnavailable are
// retried; everything else returns immediately.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the delay before the first retry; it doubles each
	// attempt up to MaxDelay.
	BaseDelay time.Duration

	// MaxDelay caps the backoff delay.
	MaxDelay time.Duration
}

// DefaultRetryPolicy returns the default retry policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    5 * time.Second,
	}
}

// Do runs op, retrying transient failures until the attempt limit is
// exhausted or the context is cancelled.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	delay := p.BaseDelay
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrBackendUnavailable) {
			return err
		}
		if attempt == attempts {
			break
		}

		logging.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("Backend unavailable, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}

	return fmt.Errorf("retries exhausted after %d attempts: %w", attempts, err)
}
