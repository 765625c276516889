// Package retry provides a small combinator for wrapping outbound calls
// that may fail transiently. Backoff is exponential with positive
// jitter, capped at a maximum delay.
package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 1 * time.Second
	defaultMaxDelay    = 10 * time.Second
	defaultJitter      = 0.3
)

type Config struct {
	// MaxAttempts is the total number of calls, including the first.
	MaxAttempts int
	// BaseDelay is the sleep before the second attempt.
	BaseDelay time.Duration
	// MaxDelay caps the computed backoff.
	MaxDelay time.Duration
	// Jitter is the maximum fraction added on top of the backoff,
	// drawn uniformly from [0, Jitter).
	Jitter float64
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = defaultBaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = defaultMaxDelay
	}
	if c.Jitter <= 0 {
		c.Jitter = defaultJitter
	}
	return c
}

// Backoff returns the delay before attempt+1, given that attempt
// (1-based) just failed: base * 2^(attempt-1) * (1 + jitter), capped.
func Backoff(cfg Config, attempt int) time.Duration {
	cfg = cfg.withDefaults()

	d := float64(cfg.BaseDelay) * math.Pow(2, float64(attempt-1))
	d *= 1 + rand.Float64()*cfg.Jitter
	if d > float64(cfg.MaxDelay) {
		d = float64(cfg.MaxDelay)
	}

	return time.Duration(d)
}

// Do runs fn up to cfg.MaxAttempts times. An error for which retryable
// returns false is returned immediately. Sleeps between attempts honor
// ctx cancellation. When all attempts fail, the last error is wrapped
// with the attempt count.
func Do(ctx context.Context, cfg Config, retryable func(error) bool, fn func(context.Context) error) error {
	cfg = cfg.withDefaults()

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context error: %w", err)
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) {
			return err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		timer := time.NewTimer(Backoff(cfg, attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("context error: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", cfg.MaxAttempts, lastErr)
}
