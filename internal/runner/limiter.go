package runner

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter rate-limits evidence gatherers, one bucket per gatherer name.
// Pure in-memory evaluations never need it; it exists for gatherers that
// call out to shared services.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter with a default per-gatherer rate
func NewLimiter(perSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(perSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the named gatherer may proceed
func (l *Limiter) Wait(ctx context.Context, name string) error {
	return l.getLimiter(name).Wait(ctx)
}

// Allow reports whether the named gatherer may proceed without waiting
func (l *Limiter) Allow(name string) bool {
	return l.getLimiter(name).Allow()
}

// SetRate overrides the rate for one gatherer
func (l *Limiter) SetRate(name string, perSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}
	l.limiters[name] = rate.NewLimiter(rate.Limit(perSecond), burst)
}

func (l *Limiter) getLimiter(name string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[name]
	l.mu.RUnlock()
	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[name]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[name] = limiter
	return limiter
}
