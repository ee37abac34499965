package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// sweepThreshold bounds the bucket map before idle entries are evicted.
const sweepThreshold = 10_000

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LocalLimiter keeps a token bucket per key in process memory. Each bucket
// holds perMinute tokens and refills evenly over a minute.
type LocalLimiter struct {
	mu      sync.Mutex
	entries map[string]*localEntry
	limit   rate.Limit
	burst   int
	idle    time.Duration
	now     func() time.Time
}

func NewLocalLimiter(perMinute int) *LocalLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &LocalLimiter{
		entries: make(map[string]*localEntry),
		limit:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   perMinute,
		idle:    10 * time.Minute,
		now:     time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		if len(l.entries) >= sweepThreshold {
			l.sweep(now)
		}
		e = &localEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1), nil
}

// Len reports how many keys are tracked.
func (l *LocalLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *LocalLimiter) sweep(now time.Time) {
	for k, e := range l.entries {
		if now.Sub(e.lastSeen) > l.idle {
			delete(l.entries, k)
		}
	}
}
