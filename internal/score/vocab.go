package score

import (
	"strings"

	"github.com/provenly/vouch/internal/model"
)

// Keyword vocabulary for background categories, kept apart from the
// scoring arithmetic so either can be tested and tuned independently.

// backgroundTerms are the discriminating claim terms per registry
// category; a background hit must overlap these to count as evidence.
var backgroundTerms = map[string][]string{
	model.BackgroundCourt:      {"court", "records", "lawsuit", "criminal", "judgment"},
	model.BackgroundBankruptcy: {"bankruptcy", "insolvency", "creditor", "filing"},
	model.BackgroundSanctions:  {"sanctions", "watchlist", "ofac", "embargo"},
	model.BackgroundMedia:      {"fraud", "charged", "convicted", "investigation", "scandal"},
}

// adverseTerms flag a positive finding: their presence flips the
// clean-record default for the category.
var adverseTerms = map[string][]string{
	model.BackgroundCourt:      {"convicted", "guilty", "sentenced", "indicted"},
	model.BackgroundBankruptcy: {"bankrupt", "insolvent", "liquidation"},
	model.BackgroundSanctions:  {"sanctioned", "designated", "blocked person"},
	model.BackgroundMedia:      {"fraud", "charged", "convicted", "arrested"},
}

// BackgroundTerms returns the claim vocabulary for a registry category
func BackgroundTerms(category string) []string {
	return backgroundTerms[strings.ToLower(category)]
}

// AdverseFinding reports whether a retained background hit is a
// positive (adverse) finding rather than mere registry coverage.
func AdverseFinding(hit model.RawHit, category string) bool {
	haystack := strings.ToLower(hit.Title + " " + hit.Snippet)
	for _, term := range adverseTerms[strings.ToLower(category)] {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}
