package model

import "time"

// VerificationResult is the complete outcome of one verify run. It is
// built once, owned by the caller, and read-only thereafter.
type VerificationResult struct {
	Person      PersonClaim `json:"person"`
	GeneratedAt time.Time   `json:"generated_at"`

	Categories []CategoryEvidence `json:"categories"`

	// Top-level confidences, before weighting
	EducationConfidence  float64 `json:"education_confidence"`
	EmploymentConfidence float64 `json:"employment_confidence"`
	SocialConfidence     float64 `json:"social_confidence"`
	BackgroundConfidence float64 `json:"background_confidence"`

	OverallConfidence float64 `json:"overall_confidence"`

	// Provenance lists the distinct provider and platform identifiers
	// that contributed at least one retained hit. Never raw URLs; those
	// stay inside each CategoryEvidence.
	Provenance []string `json:"provenance"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional, never affects the score
}

// Recommendation returns the confidence-banded guidance line used by
// the report renderer.
func (r *VerificationResult) Recommendation() string {
	switch {
	case r.OverallConfidence > 0.7:
		return "HIGH CONFIDENCE: multiple sources corroborate the stated history."
	case r.OverallConfidence > 0.4:
		return "MODERATE CONFIDENCE: partial corroboration found, manual review recommended."
	default:
		return "LOW CONFIDENCE: little open-web corroboration found, thorough manual checks recommended."
	}
}

// LLMSummary contains an optional LLM-generated narrative. It is
// produced after scoring and never feeds back into any confidence.
type LLMSummary struct {
	Enabled        bool     `json:"enabled"`
	Provider       string   `json:"provider,omitempty"`
	Model          string   `json:"model,omitempty"`
	StrictEvidence bool     `json:"strict_evidence"`
	SummaryMD      string   `json:"summary_md,omitempty"`
	Warnings       []string `json:"warnings,omitempty"` // e.g. citation leaks detected
}
