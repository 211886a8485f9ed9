package search

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/provenly/vouch/internal/model"
)

// Limiter enforces each provider's sustained request budget. It is
// shared across all workers of a batch run: independent per-task
// limiters would multiply the real request rate a provider sees.
type Limiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter

	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter with fallback rate settings for
// providers that declare no budget of their own.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// NewLimiterFromConfig creates a limiter pre-configured with every
// declared provider budget.
func NewLimiterFromConfig(providers []model.ProviderConfig) *Limiter {
	l := NewLimiter(0.5, 1)
	for _, p := range providers {
		if p.RequestsPerSecond > 0 {
			l.Configure(p.Name, p.RequestsPerSecond, p.Burst)
		}
	}
	return l
}

// Wait blocks until the named provider's budget admits one request
func (l *Limiter) Wait(ctx context.Context, provider string) error {
	return l.limiterFor(provider).Wait(ctx)
}

// Configure sets a provider-specific budget
func (l *Limiter) Configure(provider string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if burst <= 0 {
		burst = l.defaultBurst
	}
	l.limiters[provider] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func (l *Limiter) limiterFor(provider string) *rate.Limiter {
	l.mu.RLock()
	lim, ok := l.limiters[provider]
	l.mu.RUnlock()
	if ok {
		return lim
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.limiters[provider]; ok {
		return lim
	}
	lim = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[provider] = lim
	return lim
}
