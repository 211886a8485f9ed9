// Package search issues categorized queries against pluggable
// providers. The chain owns pacing and fallback; individual providers
// own transport and parsing. Search failure is evidence absence, never
// a fatal condition for the caller.
package search

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/provenly/vouch/internal/model"
	"github.com/provenly/vouch/internal/util"
)

// Provider executes one text query and returns raw hits. A provider
// reports a ProviderError instead of crashing the caller; it never
// deduplicates its own results.
type Provider interface {
	// Name returns the provider identifier used in provenance
	Name() string

	// Pacing declares the provider's randomized inter-call delay
	Pacing() DelayInterval

	// Search runs the query and returns up to maxResults hits
	Search(ctx context.Context, query string, maxResults int) ([]model.RawHit, error)
}

// DelayInterval is the closed interval the pre-call sleep is sampled
// from. A sampled delay, not a fixed one, avoids detectable
// periodicity in the request pattern.
type DelayInterval struct {
	Min time.Duration
	Max time.Duration
}

// Sample draws a uniform duration from the interval
func (d DelayInterval) Sample() time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + time.Duration(rand.Int63n(int64(d.Max-d.Min)))
}

// ProviderError is a transport, HTTP, or parse failure for a single
// provider call. The chain recovers it locally by advancing to the
// next provider; it never escapes past the chain.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Browser user agents rotated by the scraping providers
var browserUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
}

func pickUserAgent() string {
	return browserUserAgents[rand.Intn(len(browserUserAgents))]
}

// newScrapeClient builds the HTTP client shared by scraping providers
func newScrapeClient(cfg model.HTTPConfig) *http.Client {
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("stopped after 3 redirects")
			}
			return nil
		},
	}
}
