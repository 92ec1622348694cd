package ai

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryConfig defines the bounded exponential-backoff policy for provider
// calls.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// DefaultRetryConfig bounds a single enrichment to roughly 7s of backoff
// at worst (1s + 2s waits before the third and final attempt).
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Second,
	}
}

// Retrier runs a provider call with bounded exponential-backoff retries.
// Only transient failures (see IsTransient) are retried; fatal errors
// propagate immediately.
type Retrier struct {
	cfg RetryConfig
}

// NewRetrier creates a Retrier, substituting defaults for zero values.
func NewRetrier(cfg RetryConfig) *Retrier {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultRetryConfig().MaxAttempts
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultRetryConfig().InitialDelay
	}
	return &Retrier{cfg: cfg}
}

// Do invokes fn up to MaxAttempts times, waiting InitialDelay * 2^attempt
// between transient failures. A fatal error, a transient error on the last
// attempt, or a canceled context ends the loop immediately.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !IsTransient(err) || attempt == r.cfg.MaxAttempts-1 {
			return "", err
		}

		delay := r.cfg.InitialDelay * (1 << uint(attempt))
		log.Warn().Err(err).
			Int("attempt", attempt+1).
			Dur("backoff", delay).
			Msg("transient provider error, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return "", lastErr
}
