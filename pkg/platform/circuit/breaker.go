// Package circuit tracks consecutive failures of a primary dependency and
// tells callers when to serve from a fallback instead.
package circuit

import (
	"sync"
	"time"
)

type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// StateChange reports a transition caused by the last recorded result.
type StateChange struct {
	Opened bool
	Closed bool
}

// Breaker opens after failureThreshold consecutive failures and closes after
// successThreshold consecutive successes. While open, the primary is probed
// at most once per probeInterval.
type Breaker struct {
	mu               sync.Mutex
	name             string
	state            State
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
	probeInterval    time.Duration
	lastProbe        time.Time
	now              func() time.Time
}

type Option func(*Breaker)

func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successThreshold = n
		}
	}
}

func WithProbeInterval(d time.Duration) Option {
	return func(b *Breaker) {
		b.probeInterval = d
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Breaker) {
		b.now = now
	}
}

func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		failureThreshold: 5,
		successThreshold: 3,
		probeInterval:    5 * time.Second,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string {
	return b.name
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) IsOpen() bool {
	return b.State() == StateOpen
}

// ShouldAttempt reports whether the primary should be called now. It is
// always true while closed.
func (b *Breaker) ShouldAttempt() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateClosed {
		return true
	}
	now := b.now()
	if now.Sub(b.lastProbe) < b.probeInterval {
		return false
	}
	b.lastProbe = now
	return true
}

// RecordFailure returns true when the caller should use the fallback.
func (b *Breaker) RecordFailure() (bool, StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount++
	b.successCount = 0
	if b.state == StateOpen {
		return true, StateChange{}
	}
	if b.failureCount >= b.failureThreshold {
		b.state = StateOpen
		b.lastProbe = b.now()
		return true, StateChange{Opened: true}
	}
	return false, StateChange{}
}

// RecordSuccess returns true when the primary result can be used.
func (b *Breaker) RecordSuccess() (bool, StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.state = StateClosed
			b.failureCount = 0
			b.successCount = 0
			return true, StateChange{Closed: true}
		}
		return false, StateChange{}
	}
	b.failureCount = 0
	return true, StateChange{}
}

func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failureCount = 0
	b.successCount = 0
}
