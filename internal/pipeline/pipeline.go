// Package pipeline wires the search chain, collector, and aggregator
// into the verify-person flow.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/provenly/vouch/internal/aggregate"
	"github.com/provenly/vouch/internal/cache"
	"github.com/provenly/vouch/internal/collect"
	"github.com/provenly/vouch/internal/llm"
	"github.com/provenly/vouch/internal/model"
	"github.com/provenly/vouch/internal/score"
	"github.com/provenly/vouch/internal/search"
)

// Verifier runs the full verification flow for one person at a time.
// A single run is strictly sequential: categories, templates within a
// category, and provider fallback all execute in order, so the only
// state crossing category boundaries is the provenance the aggregator
// assembles at the end.
type Verifier struct {
	collector  *collect.Collector
	aggregator *aggregate.Aggregator
	summarizer *llm.Summarizer
	cfg        *model.Config
	log        *slog.Logger
}

// NewVerifier builds a verifier from configuration. The provider
// limiter is created here once; batch workers sharing this Verifier
// therefore share one request budget per provider.
func NewVerifier(cfg *model.Config, log *slog.Logger) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	robots := search.NewRobotsGate(cfg.HTTP.UserAgent, 5*time.Second)

	var providers []search.Provider
	for _, pc := range cfg.Providers {
		if !pc.Enabled {
			continue
		}
		switch pc.Name {
		case "bing":
			providers = append(providers, search.NewBing(pc, cfg.HTTP, robots))
		case "duckduckgo":
			providers = append(providers, search.NewDuckDuckGo(pc, cfg.HTTP, robots))
		case "google":
			g, err := search.NewGoogle(context.Background(), pc)
			if err != nil {
				log.Warn("skipping google provider", "err", err)
				continue
			}
			providers = append(providers, g)
		default:
			log.Warn("unknown provider in config", "name", pc.Name)
		}
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no search providers enabled")
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = filepath.Join(home, ".vouch", "cache")
			}
		}
		if dir != "" {
			store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		}
	}

	chain := search.NewChain(providers, search.NewLimiterFromConfig(cfg.Providers), store, log)
	scorer := score.NewScorer(&cfg.Scoring)

	aggregator, err := aggregate.NewAggregator(&cfg.Scoring)
	if err != nil {
		return nil, err
	}

	summarizer, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		log.Warn("failed to initialize LLM provider", "err", err)
	}

	return &Verifier{
		collector:  collect.NewCollector(chain, scorer, &cfg.Scoring, cfg.Output.MaxResults, log),
		aggregator: aggregator,
		summarizer: summarizer,
		cfg:        cfg,
		log:        log,
	}, nil
}

// VerifyPerson collects evidence for every claim and aggregates it
// into one result. Per-category problems never abort the run; the
// worst outcome is an overall confidence of 0.0 with an empty
// provenance set.
func (v *Verifier) VerifyPerson(ctx context.Context, person model.PersonClaim) (*model.VerificationResult, error) {
	if err := person.Validate(); err != nil {
		return nil, fmt.Errorf("invalid person claim: %w", err)
	}

	v.log.Info("starting verification", "name", person.Name, "claims", len(person.Claims))

	categories := make([]model.CategoryEvidence, 0, len(person.Claims))
	for _, claim := range person.Claims {
		categories = append(categories, v.collector.Collect(ctx, person, claim))
	}

	result := v.aggregator.Aggregate(person, categories)

	// The summary never affects the score; a failure only warns.
	if v.summarizer.IsEnabled() {
		summary, err := v.summarizer.GenerateSummary(ctx, result)
		if err != nil {
			v.log.Warn("LLM summary generation failed", "err", err)
		} else {
			result.LLM = summary
		}
	}

	v.log.Info("verification complete",
		"name", person.Name,
		"overall_confidence", result.OverallConfidence,
		"provenance", result.Provenance)
	return &result, nil
}
