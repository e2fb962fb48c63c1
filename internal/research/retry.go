package research

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/phuslu/log"

	"github.com/jonathan/leadgen/internal/engine"
	"github.com/jonathan/leadgen/internal/fetch"
)

// isRetryable reports whether another attempt may succeed.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		return fetchErr.Retryable
	}
	return true
}

// pause sleeps a random duration within r, or until ctx is done.
func pause(ctx context.Context, r engine.DelayRange) error {
	span := r.Max - r.Min
	seconds := r.Min
	if span > 0 {
		seconds += rand.Float64() * span
	}
	timer := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// withRetry runs fn up to attempts times, pausing before every attempt.
func (e *Engine) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := e.MaxRetries()
	delay := e.DelayRange()

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if perr := e.sleep(ctx, delay); perr != nil {
			return perr
		}
		if err = fn(ctx); err == nil {
			return nil
		}
		if !isRetryable(err) {
			break
		}
		log.Debug().Str("op", op).Int("attempt", attempt).Int("of", attempts).Err(err).Msg("retrying")
	}
	return err
}
