package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClaimItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		claim   ClaimItem
		wantErr bool
	}{
		{"education ok", ClaimItem{Kind: ClaimEducation, School: "Stanford"}, false},
		{"education missing school", ClaimItem{Kind: ClaimEducation}, true},
		{"education blank school", ClaimItem{Kind: ClaimEducation, School: "   "}, true},
		{"employment ok", ClaimItem{Kind: ClaimEmployment, Company: "Acme", Role: "Engineer"}, false},
		{"employment missing company", ClaimItem{Kind: ClaimEmployment, Role: "Engineer"}, true},
		{"employment missing role", ClaimItem{Kind: ClaimEmployment, Company: "Acme"}, true},
		{"social ok", ClaimItem{Kind: ClaimSocial, Platform: "linkedin"}, false},
		{"social missing platform", ClaimItem{Kind: ClaimSocial}, true},
		{"background ok", ClaimItem{Kind: ClaimBackground, Category: BackgroundCourt}, false},
		{"background missing category", ClaimItem{Kind: ClaimBackground}, true},
		{"unknown kind", ClaimItem{Kind: "astrology"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.claim.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClaimItemLabel(t *testing.T) {
	assert.Equal(t, "education: Stanford", ClaimItem{Kind: ClaimEducation, School: "Stanford"}.Label())
	assert.Equal(t, "employment: Acme (Engineer)", ClaimItem{Kind: ClaimEmployment, Company: "Acme", Role: "Engineer"}.Label())
	assert.Equal(t, "social: linkedin", ClaimItem{Kind: ClaimSocial, Platform: "linkedin"}.Label())
	assert.Equal(t, "background: court", ClaimItem{Kind: ClaimBackground, Category: BackgroundCourt}.Label())
}

func TestPersonClaimValidate(t *testing.T) {
	valid := PersonClaim{
		Name:   "Jane Doe",
		Claims: []ClaimItem{{Kind: ClaimSocial, Platform: "linkedin"}},
	}
	assert.NoError(t, valid.Validate())

	assert.Error(t, PersonClaim{Claims: valid.Claims}.Validate())
	assert.Error(t, PersonClaim{Name: "  ", Claims: valid.Claims}.Validate())
	assert.Error(t, PersonClaim{Name: "Jane Doe"}.Validate())
}

func TestRecommendationBands(t *testing.T) {
	high := VerificationResult{OverallConfidence: 0.85}
	moderate := VerificationResult{OverallConfidence: 0.5}
	low := VerificationResult{OverallConfidence: 0.2}
	boundary := VerificationResult{OverallConfidence: 0.7}

	assert.Contains(t, high.Recommendation(), "HIGH")
	assert.Contains(t, moderate.Recommendation(), "MODERATE")
	assert.Contains(t, low.Recommendation(), "LOW")
	assert.Contains(t, boundary.Recommendation(), "MODERATE")
}
