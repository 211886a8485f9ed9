package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provenly/vouch/internal/model"
)

func sampleResult() *model.VerificationResult {
	return &model.VerificationResult{
		Person: model.PersonClaim{
			Name:   "Jane Doe",
			Region: "Germany",
			Claims: []model.ClaimItem{
				{Kind: model.ClaimEducation, School: "Stanford"},
				{Kind: model.ClaimEmployment, Company: "Acme", Role: "Engineer"},
				{Kind: model.ClaimBackground, Category: model.BackgroundCourt},
			},
		},
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Categories: []model.CategoryEvidence{
			{
				Category: model.ClaimItem{Kind: model.ClaimEducation, School: "Stanford"},
				Evidence: []model.ScoredHit{{
					RawHit: model.RawHit{Title: "Jane Doe - Stanford", URL: "https://example.com/profile", Source: "bing"},
					Score:  1.0,
				}},
				Sources:    []string{"https://example.com/profile"},
				Confidence: 0.5,
				Verified:   true,
			},
			{
				Category:   model.ClaimItem{Kind: model.ClaimEmployment, Company: "Acme", Role: "Engineer"},
				Confidence: 0,
			},
			{
				Category:       model.ClaimItem{Kind: model.ClaimBackground, Category: model.BackgroundCourt},
				Confidence:     0.6,
				Verified:       true,
				SourcesChecked: 3,
				CleanRecord:    true,
			},
		},
		EducationConfidence:  0.5,
		BackgroundConfidence: 0.6,
		OverallConfidence:    0.21,
		Provenance:           []string{"bing"},
	}
}

func TestRenderJSONRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r := NewRenderer(true)

	require.NoError(t, r.RenderJSON(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded model.VerificationResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Jane Doe", decoded.Person.Name)
	assert.Equal(t, []string{"bing"}, decoded.Provenance)
	assert.InDelta(t, 0.21, decoded.OverallConfidence, 1e-9)
}

func TestRenderMarkdownSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	r := NewRenderer(true)

	require.NoError(t, r.RenderMarkdown(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	md := string(data)

	assert.Contains(t, md, "# Verification Report: Jane Doe")
	assert.Contains(t, md, "| Education | 50% |")
	assert.Contains(t, md, "[Jane Doe - Stanford](https://example.com/profile)")
	assert.Contains(t, md, "No direct evidence found in automated search.")
	assert.Contains(t, md, "Registries checked: 3")
	assert.Contains(t, md, "Clean record: YES")
	assert.Contains(t, md, "## Provenance")
	assert.Contains(t, md, "LOW CONFIDENCE")
	assert.Contains(t, md, "Generated by vouch")
}

func TestRenderMarkdownWithoutFooter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	r := NewRenderer(false)

	require.NoError(t, r.RenderMarkdown(sampleResult(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Generated by vouch")
}

func TestRenderMarkdownIncludesLLMSummary(t *testing.T) {
	result := sampleResult()
	result.LLM = &model.LLMSummary{
		Enabled:   true,
		SummaryMD: "The education claim is corroborated by one source.",
		Warnings:  []string{"cited URL outside evidence allowlist: https://rogue.example.org"},
	}
	path := filepath.Join(t.TempDir(), "report.md")

	require.NoError(t, NewRenderer(true).RenderMarkdown(result, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	md := string(data)
	assert.Contains(t, md, "does not affect scores")
	assert.Contains(t, md, "corroborated by one source")
	assert.Contains(t, md, "> Warning: cited URL outside evidence allowlist")
}
