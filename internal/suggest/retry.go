package suggest

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// backoff retries transient model errors with exponential delay and jitter.
type backoff struct {
	maxAttempts  int
	initialDelay time.Duration
	maxDelay     time.Duration
	jitter       float64

	retryIf func(error) bool
	onRetry func(attempt int, err error, delay time.Duration)
}

func defaultBackoff() backoff {
	return backoff{
		maxAttempts:  3,
		initialDelay: 500 * time.Millisecond,
		maxDelay:     8 * time.Second,
		jitter:       0.2,
	}
}

// do runs op until it succeeds, returns a non-retryable error, runs out of
// attempts, or ctx ends. The last error is returned.
func (b backoff) do(ctx context.Context, op func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= b.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return lastErr
			}
			return err
		}

		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if b.retryIf == nil || !b.retryIf(err) || attempt == b.maxAttempts {
			return err
		}

		delay := b.delay(attempt)
		if b.onRetry != nil {
			b.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}
	}
	return lastErr
}

// delay is initialDelay * 2^(attempt-1), capped at maxDelay, +/- jitter.
func (b backoff) delay(attempt int) time.Duration {
	d := float64(b.initialDelay) * math.Pow(2, float64(attempt-1))
	if d > float64(b.maxDelay) {
		d = float64(b.maxDelay)
	}
	if b.jitter > 0 {
		d += d * b.jitter * (rand.Float64()*2 - 1)
	}
	return time.Duration(max(d, 0))
}
