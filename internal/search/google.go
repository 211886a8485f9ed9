package search

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/provenly/vouch/internal/model"
)

// Google queries the Programmable Search JSON API. Unlike the scraping
// providers it needs credentials, so it ships disabled by default.
type Google struct {
	svc      *customsearch.Service
	engineID string
	pacing   DelayInterval
}

// NewGoogle creates a Google provider. It fails if the API key or
// engine ID is missing, or if the API client cannot be constructed.
func NewGoogle(ctx context.Context, pc model.ProviderConfig) (*Google, error) {
	if pc.APIKey == "" || pc.EngineID == "" {
		return nil, fmt.Errorf("google provider requires api_key and engine_id")
	}
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(pc.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create customsearch service: %w", err)
	}
	return &Google{
		svc:      svc,
		engineID: pc.EngineID,
		pacing:   DelayInterval{Min: pc.MinDelay, Max: pc.MaxDelay},
	}, nil
}

// Name implements Provider
func (g *Google) Name() string { return "google" }

// Pacing implements Provider
func (g *Google) Pacing() DelayInterval { return g.pacing }

// Search implements Provider
func (g *Google) Search(ctx context.Context, query string, maxResults int) ([]model.RawHit, error) {
	// The API caps one page at 10 results
	if maxResults > 10 {
		maxResults = 10
	}

	resp, err := g.svc.Cse.List().
		Q(query).
		Cx(g.engineID).
		Num(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &ProviderError{Provider: g.Name(), Err: err}
	}

	hits := make([]model.RawHit, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Link == "" || item.Title == "" {
			continue
		}
		hits = append(hits, model.RawHit{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
		})
	}
	return hits, nil
}
