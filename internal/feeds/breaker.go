package feeds

import (
	"log/slog"
	"sync"
	"time"
)

type BreakerState int

const (
	// Closed lets requests through.
	Closed BreakerState = iota
	// Open blocks requests until the cooldown elapses.
	Open
	// HalfOpen lets a single trial request through.
	HalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case Closed:
		return "CLOSED"
	case Open:
		return "OPEN"
	case HalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// Breaker is a consecutive-failure circuit breaker for one feed.
type Breaker struct {
	mu               sync.Mutex
	name             string
	state            BreakerState
	failureCount     int
	failureThreshold int
	lastFailureTime  time.Time
	cooldown         time.Duration
	halfOpenAttempts int
	onChange         []func(name string, from, to BreakerState)
	now              func() time.Time
}

func NewBreaker(name string, threshold int, cooldown time.Duration) *Breaker {
	if threshold < 1 {
		threshold = 1
	}
	b := &Breaker{
		name:             name,
		state:            Closed,
		failureThreshold: threshold,
		cooldown:         cooldown,
		now:              time.Now,
	}
	setBreakerGauge(name, Closed)
	return b
}

// OnStateChange registers fn to be called after every transition. Callbacks
// run outside the breaker's lock.
func (b *Breaker) OnStateChange(fn func(name string, from, to BreakerState)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = append(b.onChange, fn)
}

func (b *Breaker) Name() string {
	return b.name
}

// Allow reports whether a request may proceed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	from := b.state
	allowed := false

	switch b.state {
	case Closed:
		allowed = true
	case Open:
		if b.now().Sub(b.lastFailureTime) >= b.cooldown {
			b.state = HalfOpen
			b.halfOpenAttempts = 1
			allowed = true
		}
	case HalfOpen:
		b.halfOpenAttempts++
		allowed = b.halfOpenAttempts <= 1
	}

	to := b.state
	b.mu.Unlock()
	b.notify(from, to)
	return allowed
}

func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	from := b.state
	b.failureCount = 0
	b.halfOpenAttempts = 0
	b.state = Closed
	b.mu.Unlock()
	b.notify(from, Closed)
}

func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	from := b.state
	b.failureCount++
	b.lastFailureTime = b.now()

	switch {
	case b.state == Closed && b.failureCount >= b.failureThreshold:
		b.state = Open
	case b.state == HalfOpen:
		b.state = Open
		b.halfOpenAttempts = 0
	}
	to := b.state
	count := b.failureCount
	b.mu.Unlock()

	slog.Debug("breaker failure recorded", "feed", b.name, "count", count, "threshold", b.failureThreshold, "state", to.String())
	b.notify(from, to)
}

func (b *Breaker) Reset() {
	b.mu.Lock()
	from := b.state
	b.state = Closed
	b.failureCount = 0
	b.lastFailureTime = time.Time{}
	b.halfOpenAttempts = 0
	b.mu.Unlock()
	b.notify(from, Closed)
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) FailureCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failureCount
}

func (b *Breaker) notify(from, to BreakerState) {
	if from == to {
		return
	}
	slog.Info("breaker state change", "feed", b.name, "from", from.String(), "to", to.String())
	setBreakerGauge(b.name, to)

	b.mu.Lock()
	callbacks := append([]func(string, BreakerState, BreakerState){}, b.onChange...)
	b.mu.Unlock()
	for _, fn := range callbacks {
		fn(b.name, from, to)
	}
}
