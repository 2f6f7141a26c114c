// Package retry provides a bounded-attempt exponential-backoff decorator
// for fallible operations.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Defaults applied when a Policy field is missing or invalid.
const (
	DefaultMaxAttempts = 3
	DefaultFloor       = 4 * time.Second
	DefaultCap         = 10 * time.Second
)

// Policy configures the retry behavior for Do.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// Floor is the delay before the first retry. Subsequent delays double
	// per attempt.
	Floor time.Duration

	// Cap bounds the delay between attempts.
	Cap time.Duration

	// Permanent, when non-nil, reports errors that should not be retried.
	Permanent func(error) bool
}

// sleep waits for the given delay or until the context is cancelled.
// Overridable in tests to avoid real waits.
var sleep = func(ctx context.Context, delay time.Duration) error {
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// backoff returns the delay to wait after the given zero-based attempt:
// the floor, doubling per attempt, bounded by the cap. Delays are
// non-decreasing across attempts.
func (p Policy) backoff(attempt int) time.Duration {
	delay := p.Floor << uint(attempt)
	if delay > p.Cap {
		delay = p.Cap
	}
	if delay < p.Floor {
		delay = p.Floor
	}
	return delay
}

// normalize replaces missing or invalid policy fields with defaults,
// logging a warning for each substitution.
func (p Policy) normalize(ctx context.Context, logger *slog.Logger) Policy {
	if p.MaxAttempts < 1 {
		logger.WarnContext(ctx, "invalid max attempts value, using default",
			"configured", p.MaxAttempts,
			"default", DefaultMaxAttempts)
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.Floor <= 0 {
		logger.WarnContext(ctx, "invalid retry floor, using default",
			"configured", p.Floor,
			"default", DefaultFloor)
		p.Floor = DefaultFloor
	}
	if p.Cap < p.Floor {
		logger.WarnContext(ctx, "retry cap below floor, using floor",
			"configured", p.Cap,
			"floor", p.Floor)
		p.Cap = p.Floor
	}
	return p
}

// Do runs op up to p.MaxAttempts times, waiting between attempts with
// exponential backoff. Each attempt's outcome is logged. Failures on
// earlier attempts are logged only; when all attempts fail, the final
// error propagates to the caller unchanged. Errors classified as
// permanent by p.Permanent are returned immediately without retrying.
func Do(ctx context.Context, p Policy, logger *slog.Logger, op func() error) error {
	p = p.normalize(ctx, logger)

	var err error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		attemptNum := attempt + 1

		err = op()
		if err == nil {
			logger.InfoContext(ctx, "attempt succeeded",
				"attempt", attemptNum,
				"max_attempts", p.MaxAttempts)
			return nil
		}

		logger.ErrorContext(ctx, "attempt failed",
			"attempt", attemptNum,
			"max_attempts", p.MaxAttempts,
			"error", err)

		if p.Permanent != nil && p.Permanent(err) {
			logger.WarnContext(ctx, "permanent error, not retrying", "error", err)
			return err
		}

		if attemptNum >= p.MaxAttempts {
			logger.WarnContext(ctx, "maximum retry attempts reached",
				"max_attempts", p.MaxAttempts)
			break
		}

		delay := p.backoff(attempt)
		logger.InfoContext(ctx, "retrying after delay",
			"attempt", attemptNum,
			"delay", delay)

		if sleepErr := sleep(ctx, delay); sleepErr != nil {
			logger.WarnContext(ctx, "cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", sleepErr)
			return fmt.Errorf("cancelled during retry delay: %w", sleepErr)
		}
	}

	return err
}
