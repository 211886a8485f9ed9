package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/provenly/vouch/internal/model"
)

func TestQueriesForEducation(t *testing.T) {
	person := model.PersonClaim{Name: "Jane Doe", Region: "Germany"}
	claim := model.ClaimItem{Kind: model.ClaimEducation, School: "Stanford University"}

	queries := QueriesFor(person, claim)

	assert.Equal(t, []string{
		`"Jane Doe" "Stanford University" graduate`,
		`"Jane Doe" "Stanford University" alumni`,
		`"Jane Doe" "Stanford University" degree`,
		`Jane Doe Stanford University student`,
	}, queries)
}

func TestQueriesForSocialUsesSiteOperator(t *testing.T) {
	person := model.PersonClaim{Name: "Jane Doe", Region: "Germany"}
	claim := model.ClaimItem{Kind: model.ClaimSocial, Platform: "linkedin"}

	queries := QueriesFor(person, claim)

	assert.Equal(t, []string{
		"Jane Doe site:linkedin.com/in",
		"Jane Doe Germany linkedin",
	}, queries)
}

func TestQueriesForCollapsesEmptyPlaceholders(t *testing.T) {
	// No region: the {region} slot must not leave double spaces behind.
	person := model.PersonClaim{Name: "Jane Doe"}
	claim := model.ClaimItem{Kind: model.ClaimSocial, Platform: "github"}

	queries := QueriesFor(person, claim)
	assert.Equal(t, "Jane Doe github", queries[1])
}

func TestQueriesForBackgroundCategories(t *testing.T) {
	person := model.PersonClaim{Name: "John Smith", Region: "Germany"}

	for category, want := range map[string]int{
		model.BackgroundCourt:      3,
		model.BackgroundBankruptcy: 2,
		model.BackgroundSanctions:  2,
		model.BackgroundMedia:      2,
	} {
		claim := model.ClaimItem{Kind: model.ClaimBackground, Category: category}
		assert.Len(t, QueriesFor(person, claim), want, "category %s", category)
	}

	unknown := model.ClaimItem{Kind: model.ClaimBackground, Category: "astrology"}
	assert.Empty(t, QueriesFor(person, unknown))
}

func TestPlatformDomain(t *testing.T) {
	assert.Equal(t, "linkedin.com/in", PlatformDomain("LinkedIn"))
	assert.Equal(t, "github.com", PlatformDomain("github"))
	assert.Equal(t, "mastodon.com", PlatformDomain("Mastodon"))
}
