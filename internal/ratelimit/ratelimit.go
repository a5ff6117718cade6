package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles command input spawns.
type Limiter struct {
	limiter *rate.Limiter
}

// New uses 0 or negative limit for no rate limiting.
func New(spawnsPerSecond float64) *Limiter {
	if spawnsPerSecond <= 0 {
		return &Limiter{
			limiter: rate.NewLimiter(rate.Inf, 1),
		}
	}

	// Burst of 1: the first spawn goes through immediately, later ones
	// wait according to the limit.
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(spawnsPerSecond), 1),
	}
}

func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Limit returns the configured limit, 0 meaning unlimited.
func (l *Limiter) Limit() float64 {
	limit := l.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return float64(limit)
}
