package stress

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// trigger fires at most once per period. Its bucket holds a single token,
// so firings that come due while an iteration is running coalesce into one.
type trigger struct {
	limiter *rate.Limiter
}

// newTrigger arms a trigger whose first firing is one period away.
func newTrigger(period time.Duration) *trigger {
	l := rate.NewLimiter(rate.Every(period), 1)
	l.Allow() // drain the initial token
	return &trigger{limiter: l}
}

// wait blocks until the next firing or ctx is done.
func (t *trigger) wait(ctx context.Context) error {
	delay := t.limiter.Reserve().Delay()
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
