// Package aggregate folds per-category evidence into top-level
// confidences and the single overall score, with provenance.
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/provenly/vouch/internal/model"
)

// Aggregator combines CategoryEvidence records into a
// VerificationResult. It is stateless across runs; provenance
// accumulates only within a single Aggregate call.
type Aggregator struct {
	cfg *model.ScoringConfig
}

// NewAggregator creates an aggregator, rejecting a scoring policy
// whose top-level weights do not sum to 1.0.
func NewAggregator(cfg *model.ScoringConfig) (*Aggregator, error) {
	if sum := cfg.Weights.Sum(); math.Abs(sum-1.0) > 1e-9 {
		return nil, fmt.Errorf("category weights must sum to 1.0, got %.4f", sum)
	}
	return &Aggregator{cfg: cfg}, nil
}

// Aggregate computes top-level and overall confidences. Employment is
// averaged across all listed positions (0 with none listed); social
// presence weighs professional profiles 3x generic ones; background
// reflects registry coverage. Weights: education 0.3, employment 0.4,
// social 0.2, background 0.1; employment is judged the strongest
// single corroborating signal.
func (a *Aggregator) Aggregate(person model.PersonClaim, categories []model.CategoryEvidence) model.VerificationResult {
	result := model.VerificationResult{
		Person:      person,
		GeneratedAt: time.Now().UTC(),
		Categories:  categories,
	}

	result.EducationConfidence = meanConfidence(categories, model.ClaimEducation)
	result.EmploymentConfidence = meanConfidence(categories, model.ClaimEmployment)
	result.SocialConfidence = a.socialConfidence(categories)
	result.BackgroundConfidence = meanConfidence(categories, model.ClaimBackground)

	w := a.cfg.Weights
	result.OverallConfidence = clamp01(
		w.Education*result.EducationConfidence +
			w.Employment*result.EmploymentConfidence +
			w.Social*result.SocialConfidence +
			w.Background*result.BackgroundConfidence)

	result.Provenance = provenance(categories)
	return result
}

// socialConfidence is min(professional_profiles*0.3 + all_profiles*0.1, 1.0)
// over every retained social hit across platforms.
func (a *Aggregator) socialConfidence(categories []model.CategoryEvidence) float64 {
	professional := 0
	total := 0
	for _, c := range categories {
		if c.Category.Kind != model.ClaimSocial {
			continue
		}
		total += len(c.Evidence)
		if a.professionalPlatform(c.Category.Platform) {
			professional += len(c.Evidence)
		}
	}
	return math.Min(
		float64(professional)*a.cfg.ProfessionalProfileWeight+
			float64(total)*a.cfg.ProfileWeight, 1.0)
}

func (a *Aggregator) professionalPlatform(platform string) bool {
	platform = strings.ToLower(platform)
	for _, p := range a.cfg.ProfessionalPlatforms {
		if platform == p {
			return true
		}
	}
	return false
}

// meanConfidence averages category confidences of one kind; a kind
// with no claims contributes 0.
func meanConfidence(categories []model.CategoryEvidence, kind model.ClaimKind) float64 {
	sum := 0.0
	n := 0
	for _, c := range categories {
		if c.Category.Kind != kind {
			continue
		}
		sum += c.Confidence
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// provenance is the deduplicated union of every source identifier that
// contributed at least one retained hit: provider names always, plus
// the platform name for social categories. Raw URLs never appear here;
// they stay inside each CategoryEvidence for audit.
func provenance(categories []model.CategoryEvidence) []string {
	seen := make(map[string]struct{})
	for _, c := range categories {
		for _, h := range c.Evidence {
			if h.Source != "" {
				seen[h.Source] = struct{}{}
			}
		}
		if c.Category.Kind == model.ClaimSocial && len(c.Evidence) > 0 {
			seen[strings.ToLower(c.Category.Platform)] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
