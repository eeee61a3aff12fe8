// Package retry provides a bounded retry engine for polling remote resource
// state. The connection tester drives it with a constant interval; callers
// that talk to rate-limited endpoints can use exponential backoff instead.
//
// Usage:
//
//	err := retry.Do(ctx, retry.PollConfig(12, 5*time.Second), func() error {
//	    status := poll()
//	    if status.Terminal() {
//	        return nil
//	    }
//	    return retry.ErrNotReady
//	})
//
// Exhausting the attempt budget returns the last error from fn; the caller
// decides whether that is a failure. Transport errors should be wrapped with
// Stop so they propagate immediately instead of being retried.
package retry

import (
	"context"
	"errors"
	"time"
)

// ErrNotReady is the conventional error for "poll again": the remote
// resource has not reached a terminal state yet.
var ErrNotReady = errors.New("retry: not ready")

// Strategy defines the backoff algorithm.
type Strategy int

const (
	// Constant sleeps the same interval between every attempt.
	Constant Strategy = iota
	// Exponential doubles the interval each attempt: Interval * 2^attempt.
	Exponential
)

// Config controls retry behaviour.
type Config struct {
	MaxAttempts int           // Total attempts (including the first). 0 means no-op.
	Interval    time.Duration // Base sleep between attempts.
	MaxInterval time.Duration // Upper bound on any single sleep. 0 means unbounded.
	Strategy    Strategy
}

// PollConfig returns a constant-interval config, the shape used for status
// polling loops.
func PollConfig(attempts int, interval time.Duration) Config {
	return Config{
		MaxAttempts: attempts,
		Interval:    interval,
		Strategy:    Constant,
	}
}

// StopError wraps an error to signal that retrying should stop immediately.
// Use this for permanent failures such as upstream service errors.
type StopError struct {
	Err error
}

func (e *StopError) Error() string { return e.Err.Error() }
func (e *StopError) Unwrap() error { return e.Err }

// Stop wraps err so that Do returns it without further attempts.
func Stop(err error) error {
	return &StopError{Err: err}
}

// Sleeper abstracts waiting between attempts so tests can skip real time.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// realSleeper waits on a timer, aborting when the context is cancelled.
type realSleeper struct{}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do executes fn up to cfg.MaxAttempts times, sleeping between attempts. It
// returns nil on the first successful call, the wrapped error when fn
// returns a StopError, ctx.Err() on cancellation, and otherwise the last
// error once the budget is exhausted.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	return DoWithSleeper(ctx, cfg, fn, realSleeper{})
}

// DoWithSleeper is Do with an injected Sleeper.
func DoWithSleeper(ctx context.Context, cfg Config, fn func() error, s Sleeper) error {
	if cfg.MaxAttempts <= 0 {
		return nil
	}

	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		var stop *StopError
		if errors.As(lastErr, &stop) {
			return stop.Err
		}

		if attempt < cfg.MaxAttempts-1 {
			if err := s.Sleep(ctx, delayFor(cfg, attempt)); err != nil {
				return err
			}
		}
	}
	return lastErr
}

func delayFor(cfg Config, attempt int) time.Duration {
	delay := cfg.Interval
	if cfg.Strategy == Exponential {
		delay = cfg.Interval << uint(attempt)
	}
	if cfg.MaxInterval > 0 && delay > cfg.MaxInterval {
		delay = cfg.MaxInterval
	}
	return delay
}
