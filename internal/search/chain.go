package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/provenly/vouch/internal/cache"
	"github.com/provenly/vouch/internal/model"
)

// Chain tries providers in preference order with automatic fallback.
// A provider call that hard-fails (transport/protocol error, non-2xx
// status) or answers with zero hits advances to the next provider,
// never retrying the same one within a search. If the whole chain is
// exhausted the caller gets no hits plus a flag telling whether any
// provider actually answered; search failure is evidence absence, not
// an error for the caller.
type Chain struct {
	providers []Provider
	limiter   *Limiter
	store     cache.Cache // nil disables caching
	log       *slog.Logger

	// Injectable for tests
	sleep func(ctx context.Context, d time.Duration) error
}

// NewChain builds a chain over the given providers. The limiter must
// be the shared instance when multiple runs execute concurrently.
func NewChain(providers []Provider, limiter *Limiter, store cache.Cache, log *slog.Logger) *Chain {
	return &Chain{
		providers: providers,
		limiter:   limiter,
		store:     store,
		log:       log,
		sleep:     sleepCtx,
	}
}

// Search runs the query through the chain. The second return value
// reports whether any provider completed the call without a hard
// failure, zero-hit answers included; background coverage distinguishes
// "registry checked, clean" from "no provider could be reached".
func (c *Chain) Search(ctx context.Context, query string, maxResults int) ([]model.RawHit, bool) {
	answered := false
	for _, p := range c.providers {
		if ctx.Err() != nil {
			return nil, answered
		}

		if hits, ok := c.cached(p.Name(), query); ok {
			c.log.Debug("cache hit", "provider", p.Name(), "query", query)
			return hits, true
		}

		if err := c.pace(ctx, p); err != nil {
			return nil, answered
		}

		hits, err := p.Search(ctx, query, maxResults)
		if err != nil {
			c.log.Warn("provider failed, falling back", "provider", p.Name(), "query", query, "err", err)
			continue
		}
		answered = true
		if len(hits) == 0 {
			c.log.Debug("provider returned no hits, falling back", "provider", p.Name(), "query", query)
			continue
		}

		for i := range hits {
			hits[i].Source = p.Name()
		}
		c.remember(p.Name(), query, hits)
		return hits, true
	}

	c.log.Debug("all providers exhausted", "query", query, "answered", answered)
	return nil, answered
}

// pace waits for the shared budget, then sleeps a duration drawn from
// the provider's declared interval.
func (c *Chain) pace(ctx context.Context, p Provider) error {
	if err := c.limiter.Wait(ctx, p.Name()); err != nil {
		return err
	}
	return c.sleep(ctx, p.Pacing().Sample())
}

func (c *Chain) cached(provider, query string) ([]model.RawHit, bool) {
	if c.store == nil {
		return nil, false
	}
	data, found := c.store.Get(cache.QueryKey(provider, query))
	if !found {
		return nil, false
	}
	var hits []model.RawHit
	if err := json.Unmarshal(data, &hits); err != nil || len(hits) == 0 {
		return nil, false
	}
	return hits, true
}

func (c *Chain) remember(provider, query string, hits []model.RawHit) {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(hits)
	if err != nil {
		return
	}
	if err := c.store.Set(cache.QueryKey(provider, query), data, 0); err != nil {
		c.log.Debug("cache write failed", "provider", provider, "err", err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
