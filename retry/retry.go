// Package retry implements the bounded retry policy used for bulk vault
// metadata refreshes. Attempts are capped and backed off exponentially;
// context cancellation aborts the loop between attempts.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy bounds a retry loop.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// InitialDelay is the delay before the second attempt.
	InitialDelay time.Duration

	// MaxDelay caps the backoff schedule.
	MaxDelay time.Duration

	// Multiplier scales the delay after each failed attempt.
	Multiplier float64
}

// DefaultPolicy matches the liveliness-check cadence of the metadata
// service: a handful of attempts spread over a few seconds.
var DefaultPolicy = Policy{
	MaxAttempts:  4,
	InitialDelay: 250 * time.Millisecond,
	MaxDelay:     4 * time.Second,
	Multiplier:   2.0,
}

// Retryable decides whether an error is transient.
type Retryable func(error) bool

// Do runs fn under the policy, retrying transient failures with exponential
// backoff. Non-retryable errors return immediately; exhausting the attempt
// budget returns the last error.
func Do[T any](ctx context.Context, p Policy, retryable Retryable, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	delay := p.InitialDelay
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("retry aborted: %w", err)
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if retryable != nil && !retryable(err) {
			return zero, err
		}

		if attempt == p.MaxAttempts-1 {
			break
		}

		select {
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * p.Multiplier)
			if delay > p.MaxDelay {
				delay = p.MaxDelay
			}
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, fmt.Errorf("retry budget exhausted after %d attempts: %w", p.MaxAttempts, lastErr)
}
