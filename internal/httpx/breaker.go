package httpx

import (
	"errors"
	"sync"
	"time"
)

// ErrUpstreamSuspended is returned when an upstream has tripped its guard
// and requests are being short-circuited until the cooldown elapses.
var ErrUpstreamSuspended = errors.New("upstream suspended: too many consecutive failures")

// Guard is a minimal circuit breaker keyed to one upstream. It trips after
// a run of consecutive failures and lets a single probe through once the
// cooldown has elapsed.
type Guard struct {
	name     string
	maxFails int
	cooldown time.Duration

	mu       sync.Mutex
	fails    int
	openedAt time.Time
	probing  bool
}

// NewGuard creates a guard that trips after maxFails consecutive failures
// and stays open for the given cooldown.
func NewGuard(name string, maxFails int, cooldown time.Duration) *Guard {
	if maxFails <= 0 {
		maxFails = 5
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &Guard{name: name, maxFails: maxFails, cooldown: cooldown}
}

// Name returns the upstream name this guard protects.
func (g *Guard) Name() string { return g.name }

// Allow reports whether a request may proceed. While open, only one probe
// request is admitted per cooldown window.
func (g *Guard) Allow() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.fails < g.maxFails {
		return nil
	}
	if time.Since(g.openedAt) < g.cooldown {
		return ErrUpstreamSuspended
	}
	if g.probing {
		return ErrUpstreamSuspended
	}
	g.probing = true
	return nil
}

// Record reports the outcome of a request admitted by Allow.
func (g *Guard) Record(success bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.probing = false
	if success {
		g.fails = 0
		return
	}
	g.fails++
	if g.fails >= g.maxFails {
		g.openedAt = time.Now()
	}
}

// Open reports whether the guard is currently rejecting requests.
func (g *Guard) Open() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fails >= g.maxFails && time.Since(g.openedAt) < g.cooldown
}
