// Package llm generates an optional narrative summary of a
// verification result. It runs after scoring and never feeds back into
// any confidence value.
package llm

import (
	"context"
	"fmt"

	"github.com/provenly/vouch/internal/model"
)

// Provider is the interface for summary backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a summary under strict evidence mode
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest is the input for summarization
type SummarizeRequest struct {
	// Result is the verification result to summarize
	Result model.VerificationResult

	// EvidenceURLs is the strict allowlist of URLs the model may cite.
	// Anything outside it is flagged as a citation leak.
	EvidenceURLs []string

	// Model overrides the configured model for this call
	Model string

	// MaxTokens limits response length
	MaxTokens int
}

// SummarizeResponse is the provider output
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds summary configuration
type Config struct {
	Provider       string // "openai" or "" (disabled)
	Model          string
	APIKey         string
	BaseURL        string
	Timeout        int // seconds
	StrictEvidence bool
	MaxTokens      int
}

// ConfigFromModel converts the runtime LLM config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:       mc.Provider,
		Model:          mc.Model,
		APIKey:         mc.APIKey,
		BaseURL:        mc.BaseURL,
		Timeout:        mc.Timeout,
		StrictEvidence: mc.StrictEvidence,
		MaxTokens:      mc.MaxTokens,
	}
}

// BuildPrompt constructs the default summarization prompt. The model
// is told to describe evidence support, never to assert that a claim
// is true or false.
func BuildPrompt(result model.VerificationResult, evidenceURLs []string) string {
	prompt := fmt.Sprintf(`You are summarizing an automated open-web verification report for %q. The report measures how well the person's stated history is corroborated by search evidence - it NEVER establishes truth or identity.

CRITICAL RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT infer, speculate, or cite sources beyond this list.
3. If evidence is missing for a claim, state that explicitly.
4. Describe support, not truth: "the employment claim is corroborated by N sources", "no evidence was found for...".
5. Never state that a claim is true, false, or fraudulent.

Report summary:
- Overall confidence: %.0f%%
- Education confidence: %.0f%%
- Employment confidence: %.0f%%
- Social presence confidence: %.0f%%
- Background coverage: %.0f%%

Per-category outcomes:
`,
		result.Person.Name,
		joinURLs(evidenceURLs),
		result.OverallConfidence*100,
		result.EducationConfidence*100,
		result.EmploymentConfidence*100,
		result.SocialConfidence*100,
		result.BackgroundConfidence*100)

	for _, c := range result.Categories {
		prompt += fmt.Sprintf("- %s: confidence %.0f%%, %d evidence hits, verified=%v\n",
			c.Category.Label(), c.Confidence*100, len(c.Evidence), c.Verified)
	}

	prompt += "\nProvide a 3-5 sentence summary focusing on evidence quality and gaps."
	return prompt
}

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return "(No evidence URLs available)"
	}
	result := ""
	for i, u := range urls {
		if i >= 20 { // Cap the allowlist to avoid token bloat
			result += fmt.Sprintf("\n... and %d more URLs", len(urls)-20)
			break
		}
		result += "\n- " + u
	}
	return result
}
