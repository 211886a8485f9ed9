// Package score judges a single search hit against one claim and
// produces a relevance scalar in [0,1].
package score

import (
	"net/url"
	"sort"
	"strings"

	"github.com/provenly/vouch/internal/model"
)

// Token length floors. Shorter tokens are too ambiguous to count as
// matches: "al" or "inc" would light up everywhere.
const (
	minNameTokenLen  = 3
	minClaimTokenLen = 4
)

// Scorer computes hit relevance per the configured policy
type Scorer struct {
	cfg *model.ScoringConfig
}

// NewScorer creates a scorer over the given policy
func NewScorer(cfg *model.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score rates the hit against the claim. The returned bool reports
// whether the hit qualifies as evidence:
//   - employment and background tolerate partial token overlap and
//     retain anything above the composite threshold (titles are noisy);
//   - education and social require both the name and the claim term to
//     actually appear; partial credit alone does not qualify.
func (s *Scorer) Score(hit model.RawHit, claim model.ClaimItem, personName string) (model.ScoredHit, bool) {
	haystack := strings.ToLower(hit.Title + " " + hit.Snippet)
	nameFrac, nameMatched := matchFraction(tokenize(personName, minNameTokenLen), haystack)

	var (
		composite float64
		retained  bool
		matched   = nameMatched
	)

	switch claim.Kind {
	case model.ClaimEmployment:
		companyFrac, companyMatched := matchFraction(tokenize(claim.Company, minClaimTokenLen), haystack)
		roleFrac, roleMatched := matchFraction(tokenize(claim.Role, minClaimTokenLen), haystack)
		matched = append(matched, companyMatched...)
		matched = append(matched, roleMatched...)

		composite = 0.4*nameFrac + 0.4*companyFrac + 0.2*roleFrac
		if s.professionalHost(hit.URL) {
			composite += 0.2
		}
		composite = clamp01(composite)
		retained = composite > s.cfg.RetentionThreshold

	case model.ClaimBackground:
		claimFrac, claimMatched := matchFractionTerms(BackgroundTerms(claim.Category), haystack)
		matched = append(matched, claimMatched...)

		composite = clamp01(0.5*nameFrac + 0.5*claimFrac)
		retained = composite > s.cfg.RetentionThreshold

	default: // education, social
		claimFrac, claimMatched := matchFraction(tokenize(claimTerm(claim), minClaimTokenLen), haystack)
		matched = append(matched, claimMatched...)

		composite = clamp01(0.5*nameFrac + 0.5*claimFrac)
		retained = nameFrac > 0 && claimFrac > 0
	}

	return model.ScoredHit{
		RawHit:       hit,
		Score:        composite,
		MatchedTerms: dedupeSorted(matched),
	}, retained
}

func claimTerm(claim model.ClaimItem) string {
	if claim.Kind == model.ClaimSocial {
		return claim.Platform
	}
	return claim.School
}

// professionalHost reports whether the hit URL belongs to a known
// professional-network domain.
func (s *Scorer) professionalHost(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, domain := range s.cfg.ProfessionalNetworks {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// tokenize splits into distinct lowercase whitespace tokens, dropping
// tokens shorter than minLen.
func tokenize(text string, minLen int) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, `"',.()`)
		if len(tok) < minLen {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}
	return tokens
}

// matchFraction returns the fraction of distinct tokens present in the
// haystack, plus the tokens that matched.
func matchFraction(tokens []string, haystack string) (float64, []string) {
	if len(tokens) == 0 {
		return 0, nil
	}
	var matched []string
	for _, tok := range tokens {
		if strings.Contains(haystack, tok) {
			matched = append(matched, tok)
		}
	}
	return float64(len(matched)) / float64(len(tokens)), matched
}

// matchFractionTerms is matchFraction over pre-tokenized vocabulary
func matchFractionTerms(terms []string, haystack string) (float64, []string) {
	return matchFraction(terms, haystack)
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

func dedupeSorted(terms []string) []string {
	if len(terms) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(terms))
	var out []string
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
