// Package ratelimit caps the rate at which workers start new cycles.
// The benchmark default is unlimited; a cap is useful for measuring
// consumer throughput under a fixed offered load.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter caps cycle starts at opsPerSec. opsPerSec <= 0 returns
// nil, meaning no limiting.
func NewLimiter(opsPerSec int) *Limiter {
	if opsPerSec <= 0 {
		return nil
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(opsPerSec), opsPerSec),
	}
}

// Wait blocks until the next cycle may start. A nil *Limiter never
// blocks, so callers can hold one unconditionally.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
