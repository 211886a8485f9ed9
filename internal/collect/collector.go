// Package collect turns one claim into a CategoryEvidence record by
// issuing the category's query templates, filtering hits through the
// relevance scorer, and deduplicating what survives.
package collect

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/provenly/vouch/internal/model"
	"github.com/provenly/vouch/internal/score"
)

// Searcher is the slice of the provider chain the collector needs.
// The bool reports whether any provider answered the query at all.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]model.RawHit, bool)
}

// Collector runs the fixed query templates for a category. Templates
// are issued strictly in sequence: the rate-limit policy assumes
// sequential issuance per category so aggregate query volume stays
// predictable.
type Collector struct {
	chain      Searcher
	scorer     *score.Scorer
	cfg        *model.ScoringConfig
	maxResults int
	log        *slog.Logger
}

// NewCollector creates a collector
func NewCollector(chain Searcher, scorer *score.Scorer, cfg *model.ScoringConfig, maxResults int, log *slog.Logger) *Collector {
	return &Collector{
		chain:      chain,
		scorer:     scorer,
		cfg:        cfg,
		maxResults: maxResults,
		log:        log,
	}
}

// Collect gathers evidence for one claim. It never returns an error:
// a malformed claim yields a zero-confidence entry for that category
// only, and zero evidence is a terminal, reportable state.
func (c *Collector) Collect(ctx context.Context, person model.PersonClaim, claim model.ClaimItem) model.CategoryEvidence {
	if err := claim.Validate(); err != nil {
		c.log.Warn("skipping malformed claim", "claim", claim.Label(), "err", err)
		return model.CategoryEvidence{
			Category:    claim,
			CleanRecord: true,
			Err:         err.Error(),
		}
	}

	var (
		retained       []model.ScoredHit
		sourcesChecked int
		cleanRecord    = true
	)

	for _, query := range QueriesFor(person, claim) {
		// Natural suspension point: an in-flight provider call is
		// never abandoned mid-parse.
		if ctx.Err() != nil {
			c.log.Debug("collection cancelled", "claim", claim.Label())
			break
		}

		hits, reached := c.chain.Search(ctx, query, c.maxResults)
		if reached {
			sourcesChecked++
		}

		for _, hit := range hits {
			scored, ok := c.scorer.Score(hit, claim, person.Name)
			if !ok {
				continue
			}
			retained = append(retained, scored)
			if claim.Kind == model.ClaimBackground && score.AdverseFinding(hit, claim.Category) {
				c.log.Info("adverse finding", "category", claim.Category, "url", hit.URL)
				cleanRecord = false
			}
		}
	}

	evidence := dedupeByURL(sortByScore(retained))

	ev := model.CategoryEvidence{
		Category:       claim,
		Evidence:       evidence,
		Sources:        sourceURLs(evidence),
		SourcesChecked: sourcesChecked,
		CleanRecord:    cleanRecord,
	}
	ev.Confidence = c.confidence(claim, len(evidence), sourcesChecked)
	ev.Verified = ev.Confidence > c.threshold(claim.Kind)

	c.log.Info("category collected",
		"claim", claim.Label(),
		"evidence", len(evidence),
		"confidence", ev.Confidence,
		"verified", ev.Verified)
	return ev
}

// confidence maps evidence volume to [0,1]. Education, employment and
// social saturate on a small corroborating-hit count because open-web
// evidence is sparse; background measures coverage of checked
// registries instead, since absence of adverse hits is the desired
// outcome there, not a penalty.
func (c *Collector) confidence(claim model.ClaimItem, evidenceCount, sourcesChecked int) float64 {
	switch claim.Kind {
	case model.ClaimEducation:
		return math.Min(float64(evidenceCount)/c.cfg.EducationSaturation, 1.0)
	case model.ClaimEmployment:
		return math.Min(float64(evidenceCount)/c.cfg.EmploymentSaturation, 1.0)
	case model.ClaimSocial:
		return math.Min(float64(evidenceCount)/c.cfg.SocialSaturation, 1.0)
	case model.ClaimBackground:
		return math.Min(float64(sourcesChecked)/c.cfg.BackgroundRegistryTarget, 1.0)
	default:
		return 0
	}
}

func (c *Collector) threshold(kind model.ClaimKind) float64 {
	switch kind {
	case model.ClaimEducation:
		return c.cfg.EducationThreshold
	case model.ClaimEmployment:
		return c.cfg.EmploymentThreshold
	case model.ClaimSocial:
		return c.cfg.SocialThreshold
	case model.ClaimBackground:
		return c.cfg.BackgroundThreshold
	default:
		return 1
	}
}

// sortByScore orders highest score first; the sort is stable so
// equal-score hits keep their collection order.
func sortByScore(hits []model.ScoredHit) []model.ScoredHit {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return hits
}

// dedupeByURL keeps the first occurrence of each URL. Applied after
// the score sort, so the surviving entry is the best-scored one.
func dedupeByURL(hits []model.ScoredHit) []model.ScoredHit {
	seen := make(map[string]struct{}, len(hits))
	out := make([]model.ScoredHit, 0, len(hits))
	for _, h := range hits {
		if _, ok := seen[h.URL]; ok {
			continue
		}
		seen[h.URL] = struct{}{}
		out = append(out, h)
	}
	return out
}

func sourceURLs(hits []model.ScoredHit) []string {
	urls := make([]string, 0, len(hits))
	for _, h := range hits {
		urls = append(urls, h.URL)
	}
	return urls
}
