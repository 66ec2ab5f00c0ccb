// Package ratelimit provides a sliding-window admission gate for outbound
// browser actions. Unlike a token bucket, the window is recomputed
// continuously: at most `ceiling` actions are admitted in any trailing
// 60-second interval, measured from the instant Acquire returns.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// window is the trailing interval the ceiling applies to.
const window = time.Minute

// Limiter tracks recent action timestamps and blocks callers that would
// exceed the ceiling. It is safe for concurrent use; concurrent Acquire
// calls are serialized so two callers can never both observe room under
// the ceiling and jointly exceed it.
type Limiter struct {
	mu      sync.Mutex
	ceiling int
	stamps  []time.Time // oldest-first, non-decreasing

	// now and sleep are swappable for deterministic tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Limiter admitting at most ceiling actions per trailing
// 60-second window. A non-positive ceiling is rejected at construction
// rather than degenerating into an indefinite block.
func New(ceiling int) (*Limiter, error) {
	if ceiling <= 0 {
		return nil, fmt.Errorf("ratelimit: ceiling must be positive, got %d", ceiling)
	}
	return &Limiter{
		ceiling: ceiling,
		now:     time.Now,
		sleep:   sleepCtx,
	}, nil
}

// Ceiling returns the configured per-window ceiling.
func (l *Limiter) Ceiling() int {
	return l.ceiling
}

// Acquire blocks until the action about to proceed fits under the ceiling,
// then records it and returns. The wait is a plain suspension; it only
// ends early if ctx is cancelled, in which case no timestamp is recorded
// and the context's error is returned.
//
// The mutex is held across the wait on purpose: admissions are strictly
// serialized, so the window invariant holds under concurrent callers.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for {
		now := l.now()
		l.evict(now)

		if len(l.stamps) < l.ceiling {
			l.stamps = append(l.stamps, now)
			return nil
		}

		// Window is full. Wait until the oldest entry falls out of it,
		// then recompact: the window shifted during the suspension.
		wait := window - now.Sub(l.stamps[0])
		if wait <= 0 {
			continue
		}
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// evict drops entries older than now-window from the front. Front-eviction
// is sufficient because stamps are appended in non-decreasing order.
func (l *Limiter) evict(now time.Time) {
	cutoff := now.Add(-window)
	i := 0
	for i < len(l.stamps) && !l.stamps[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.stamps = append(l.stamps[:0], l.stamps[i:]...)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
