package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle paces batch job dispatch so directory ingest does not saturate
// disk IO. Safe for concurrent use.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle allowing filesPerSecond sustained with the
// given burst. A non-positive rate disables throttling.
func NewThrottle(filesPerSecond float64, burst int) *Throttle {
	if filesPerSecond <= 0 {
		return &Throttle{}
	}
	if burst <= 0 {
		burst = 1
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Limit(filesPerSecond), burst)}
}

// Wait blocks until the next job may start or the context is done.
func (t *Throttle) Wait(ctx context.Context) error {
	if t.limiter == nil {
		return nil
	}
	return t.limiter.Wait(ctx)
}

// Allow reports whether a job may start immediately.
func (t *Throttle) Allow() bool {
	if t.limiter == nil {
		return true
	}
	return t.limiter.Allow()
}
