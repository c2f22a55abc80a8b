// Package retry provides the single retry policy applied to every
// outbound HTTP call: bounded attempts, exponential backoff, jitter.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// Policy configures retry behavior for transient failures.
type Policy struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultPolicy mirrors the defaults used across the app: 3 attempts,
// 500ms initial wait doubling to a 5s cap.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
	}
}

// permanentError marks an error that must not be retried.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps an error so Do stops immediately instead of retrying.
// Use it for semantic failures (bad credential, malformed request) where
// repeating the call cannot help.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do runs op until it succeeds, returns a permanent error, the context
// is done, or attempts are exhausted. The last error is returned.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := range attempts {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff(attempt)):
		}
	}
	return lastErr
}

// backoff computes the wait before the next attempt, with ±20% jitter.
func (p Policy) backoff(attempt int) time.Duration {
	wait := float64(p.InitialWait) * math.Pow(p.Multiplier, float64(attempt))
	if max := float64(p.MaxWait); p.MaxWait > 0 && wait > max {
		wait = max
	}

	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
