package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provenly/vouch/internal/model"
)

func testScoringConfig() *model.ScoringConfig {
	cfg := model.DefaultConfig().Scoring
	return &cfg
}

func TestScoreEmploymentPartialOverlap(t *testing.T) {
	s := NewScorer(testScoringConfig())
	claim := model.ClaimItem{Kind: model.ClaimEmployment, Company: "Acme Corporation", Role: "Software Engineer"}

	// Half the name tokens and half the company tokens match, no role,
	// no professional host: 0.4*0.5 + 0.4*0.5 = 0.4.
	hit := model.RawHit{
		Title:   "John at Acme annual report",
		URL:     "https://news.example.com/report",
		Snippet: "",
	}
	scored, retained := s.Score(hit, claim, "John Smith")
	assert.True(t, retained)
	assert.InDelta(t, 0.4, scored.Score, 1e-9)
	assert.Contains(t, scored.MatchedTerms, "john")
	assert.Contains(t, scored.MatchedTerms, "acme")
	assert.NotContains(t, scored.MatchedTerms, "smith")
}

func TestScoreEmploymentProfessionalHostBonus(t *testing.T) {
	s := NewScorer(testScoringConfig())
	claim := model.ClaimItem{Kind: model.ClaimEmployment, Company: "Acme Corporation", Role: "Software Engineer"}
	hit := model.RawHit{
		Title: "John at Acme annual report",
		URL:   "https://www.linkedin.com/in/john",
	}

	scored, retained := s.Score(hit, claim, "John Smith")
	assert.True(t, retained)
	assert.InDelta(t, 0.6, scored.Score, 1e-9)
}

func TestScoreEmploymentClampedAtOne(t *testing.T) {
	s := NewScorer(testScoringConfig())
	claim := model.ClaimItem{Kind: model.ClaimEmployment, Company: "Acme", Role: "Engineer"}
	hit := model.RawHit{
		Title:   "John Smith, Engineer at Acme",
		URL:     "https://linkedin.com/in/john-smith",
		Snippet: "John Smith works as an engineer at Acme",
	}

	scored, retained := s.Score(hit, claim, "John Smith")
	assert.True(t, retained)
	assert.Equal(t, 1.0, scored.Score)
}

func TestScoreEmploymentBelowRetentionThreshold(t *testing.T) {
	s := NewScorer(testScoringConfig())
	claim := model.ClaimItem{Kind: model.ClaimEmployment, Company: "Acme Corporation", Role: "Software Engineer"}

	// Only half the name matches: 0.4*0.5 = 0.2, under the 0.3 floor.
	hit := model.RawHit{Title: "John speaks at a conference", URL: "https://example.com/talk"}
	_, retained := s.Score(hit, claim, "John Smith")
	assert.False(t, retained)
}

func TestScoreEducationRequiresBothSignals(t *testing.T) {
	s := NewScorer(testScoringConfig())
	claim := model.ClaimItem{Kind: model.ClaimEducation, School: "Stanford University"}

	// Full name but no school term: composite is 0.5 yet the hit does
	// not qualify as education evidence.
	nameOnly := model.RawHit{Title: "Jane Doe wins award", URL: "https://example.com/award"}
	scored, retained := s.Score(nameOnly, claim, "Jane Doe")
	assert.False(t, retained)
	assert.InDelta(t, 0.5, scored.Score, 1e-9)

	// School but no name.
	schoolOnly := model.RawHit{Title: "Stanford University commencement", URL: "https://example.com/grad"}
	_, retained = s.Score(schoolOnly, claim, "Jane Doe")
	assert.False(t, retained)

	both := model.RawHit{
		Title:   "Jane Doe - Stanford graduate",
		URL:     "https://example.com/profile",
		Snippet: "Jane Doe graduated from Stanford University",
	}
	scored, retained = s.Score(both, claim, "Jane Doe")
	assert.True(t, retained)
	assert.Equal(t, 1.0, scored.Score)
}

func TestScoreSocialUsesPlatformTerm(t *testing.T) {
	s := NewScorer(testScoringConfig())
	claim := model.ClaimItem{Kind: model.ClaimSocial, Platform: "LinkedIn"}

	hit := model.RawHit{
		Title: "Jane Doe | LinkedIn",
		URL:   "https://www.linkedin.com/in/janedoe",
	}
	scored, retained := s.Score(hit, claim, "Jane Doe")
	assert.True(t, retained)
	assert.Equal(t, 1.0, scored.Score)
}

func TestScoreBackgroundVocabulary(t *testing.T) {
	s := NewScorer(testScoringConfig())
	claim := model.ClaimItem{Kind: model.ClaimBackground, Category: model.BackgroundCourt}

	// Name fully matched, 2 of 5 court terms: 0.5*1.0 + 0.5*0.4 = 0.7.
	hit := model.RawHit{
		Title:   "John Smith court records",
		URL:     "https://records.example.com/js",
		Snippet: "public records for John Smith",
	}
	scored, retained := s.Score(hit, claim, "John Smith")
	assert.True(t, retained)
	assert.InDelta(t, 0.7, scored.Score, 1e-9)
}

func TestScoreShortTokensDiscarded(t *testing.T) {
	s := NewScorer(testScoringConfig())

	// "Li" and "Na" fall under the name-token floor; only "chen" counts.
	claim := model.ClaimItem{Kind: model.ClaimEducation, School: "Stanford"}
	hit := model.RawHit{Title: "Chen studies at Stanford", URL: "https://example.com/chen"}
	scored, retained := s.Score(hit, claim, "Li Na Chen")
	assert.True(t, retained)
	assert.Equal(t, 1.0, scored.Score)

	// A school whose every token is under the claim-token floor can
	// never produce a claim match.
	short := model.ClaimItem{Kind: model.ClaimEducation, School: "MIT"}
	_, retained = s.Score(hit, short, "Li Na Chen")
	assert.False(t, retained)
}

func TestScoreMatchedTermsDeduplicated(t *testing.T) {
	s := NewScorer(testScoringConfig())
	claim := model.ClaimItem{Kind: model.ClaimEducation, School: "Stanford Stanford"}
	hit := model.RawHit{Title: "Jane Doe Stanford Stanford", URL: "https://example.com"}

	scored, retained := s.Score(hit, claim, "Jane Doe Jane")
	require.True(t, retained)
	assert.Equal(t, []string{"doe", "jane", "stanford"}, scored.MatchedTerms)
}

func TestProfessionalHostSuffixMatch(t *testing.T) {
	s := NewScorer(testScoringConfig())

	assert.True(t, s.professionalHost("https://www.linkedin.com/in/x"))
	assert.True(t, s.professionalHost("https://de.xing.com/profile/x"))
	assert.False(t, s.professionalHost("https://notlinkedin.com/x"))
	assert.False(t, s.professionalHost("https://example.com/linkedin.com"))
	assert.False(t, s.professionalHost("://bad url"))
}

func TestAdverseFinding(t *testing.T) {
	adverse := model.RawHit{Title: "John Smith convicted of fraud", Snippet: ""}
	clean := model.RawHit{Title: "John Smith court records search", Snippet: "no results"}

	assert.True(t, AdverseFinding(adverse, model.BackgroundCourt))
	assert.False(t, AdverseFinding(clean, model.BackgroundCourt))
	assert.False(t, AdverseFinding(adverse, "unknown-category"))
}

func TestBackgroundTermsCaseInsensitive(t *testing.T) {
	assert.NotEmpty(t, BackgroundTerms("Court"))
	assert.NotEmpty(t, BackgroundTerms("SANCTIONS"))
	assert.Empty(t, BackgroundTerms("nope"))
}
