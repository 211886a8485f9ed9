package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/provenly/vouch/internal/model"
)

// Summarizer orchestrates summary generation and citation enforcement
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration. An empty
// provider name disables summarization and returns (nil, nil).
func NewSummarizer(config Config) (*Summarizer, error) {
	switch strings.ToLower(config.Provider) {
	case "":
		return nil, nil
	case "openai":
		p, err := NewOpenAIProvider(config)
		if err != nil {
			return nil, err
		}
		return &Summarizer{provider: p, config: config}, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", config.Provider)
	}
}

// IsEnabled reports whether a provider is configured
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary produces the post-scoring narrative. When strict
// evidence mode is on, any cited URL outside the collected evidence is
// recorded as a warning.
func (s *Summarizer) GenerateSummary(ctx context.Context, result model.VerificationResult) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	allowlist := evidenceURLs(result)

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Result:       result,
		EvidenceURLs: allowlist,
		Model:        s.config.Model,
		MaxTokens:    s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	summary := &model.LLMSummary{
		Enabled:        true,
		Provider:       s.provider.Name(),
		Model:          resp.Model,
		StrictEvidence: s.config.StrictEvidence,
		SummaryMD:      resp.Summary,
	}

	if s.config.StrictEvidence {
		summary.Warnings = citationLeaks(resp.Summary, allowlist)
	}
	return summary, nil
}

func evidenceURLs(result model.VerificationResult) []string {
	var urls []string
	for _, c := range result.Categories {
		urls = append(urls, c.Sources...)
	}
	return urls
}

var urlPattern = regexp.MustCompile(`https?://[^\s)\]>"']+`)

// citationLeaks finds URLs in the summary that are not in the
// evidence allowlist.
func citationLeaks(summary string, allowlist []string) []string {
	allowed := make(map[string]struct{}, len(allowlist))
	for _, u := range allowlist {
		allowed[strings.TrimRight(u, "/")] = struct{}{}
	}

	var warnings []string
	for _, cited := range urlPattern.FindAllString(summary, -1) {
		cited = strings.TrimRight(cited, "/.,;")
		if _, ok := allowed[cited]; !ok {
			warnings = append(warnings, "cited URL outside evidence allowlist: "+cited)
		}
	}
	return warnings
}
