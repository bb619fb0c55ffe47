package vestaboard

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter gates outgoing posts so the board's message rate is respected.
// Implementations must honor context cancellation so callers can abort pending calls cleanly.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// RateLimiterFunc adapts a function into a RateLimiter.
type RateLimiterFunc func(ctx context.Context) error

// Wait implements the RateLimiter interface by invoking the underlying function.
func (f RateLimiterFunc) Wait(ctx context.Context) error {
	if f == nil {
		return nil
	}
	return f(ctx)
}

// NewFixedIntervalLimiter returns a concurrency-safe limiter that lets one call
// through immediately and then spaces calls at least interval apart. Callers
// queue in order; Wait returns early with an error when ctx is done or its
// deadline falls before the caller's turn. A non-positive interval selects
// DefaultMinInterval.
func NewFixedIntervalLimiter(interval time.Duration) RateLimiter {
	if interval <= 0 {
		interval = DefaultMinInterval
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}
