package config

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Retry runs op until it succeeds, fails with an error retryable rejects, or runs out
// of attempts. Each attempt gets its own Timeout when one is configured, and the wait
// between attempts follows Backoff.
func Retry(ctx context.Context, rc RetryConfig, operation string, retryable func(error) bool, op func(ctx context.Context) error) error {
	attempts := max(rc.MaxAttempts, 1)
	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		attemptCtx := ctx
		cancel := func() {}
		if rc.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, rc.Timeout)
		}
		err = op(attemptCtx)
		cancel()

		if err == nil || ctx.Err() != nil || !retryable(err) || attempt == attempts {
			return err
		}

		wait := rc.Backoff(attempt)
		log.Warn().
			Err(err).
			Str("operation", operation).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("Request failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return err
}
