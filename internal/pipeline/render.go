package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/provenly/vouch/internal/model"
)

// Renderer writes verification results to files and stdout. It only
// sees the result's read-only surface: confidences, verified flags,
// evidence titles/URLs/scores, and provenance. Never queries or
// provider internals.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the result as indented JSON
func (r *Renderer) RenderJSON(result *model.VerificationResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the human-readable report
func (r *Renderer) RenderMarkdown(result *model.VerificationResult, path string) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Verification Report: %s\n\n", result.Person.Name)
	fmt.Fprintf(&sb, "- Region: %s\n", result.Person.Region)
	fmt.Fprintf(&sb, "- Generated: %s\n", result.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&sb, "- **Overall confidence: %.0f%%**\n\n", result.OverallConfidence*100)

	fmt.Fprintf(&sb, "| Category | Confidence |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Education | %.0f%% |\n", result.EducationConfidence*100)
	fmt.Fprintf(&sb, "| Employment | %.0f%% |\n", result.EmploymentConfidence*100)
	fmt.Fprintf(&sb, "| Social presence | %.0f%% |\n", result.SocialConfidence*100)
	fmt.Fprintf(&sb, "| Background coverage | %.0f%% |\n\n", result.BackgroundConfidence*100)

	for _, c := range result.Categories {
		fmt.Fprintf(&sb, "## %s\n\n", titleCase(string(c.Category.Kind)))
		fmt.Fprintf(&sb, "- Claim: %s\n", c.Category.Label())
		fmt.Fprintf(&sb, "- Confidence: %.0f%%\n", c.Confidence*100)
		fmt.Fprintf(&sb, "- Verified: %s\n", yesNo(c.Verified))
		if c.Category.Kind == model.ClaimBackground {
			fmt.Fprintf(&sb, "- Registries checked: %d\n", c.SourcesChecked)
			fmt.Fprintf(&sb, "- Clean record: %s\n", yesNo(c.CleanRecord))
		}
		if c.Err != "" {
			fmt.Fprintf(&sb, "- Configuration problem: %s\n", c.Err)
		}

		if len(c.Evidence) == 0 {
			sb.WriteString("\nNo direct evidence found in automated search.\n\n")
			continue
		}
		sb.WriteString("\nEvidence:\n\n")
		for _, h := range c.Evidence {
			fmt.Fprintf(&sb, "- [%s](%s) (score %.2f, via %s)\n", h.Title, h.URL, h.Score, h.Source)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Provenance\n\n")
	if len(result.Provenance) == 0 {
		sb.WriteString("No source contributed evidence.\n\n")
	} else {
		for _, p := range result.Provenance {
			fmt.Fprintf(&sb, "- %s\n", p)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Recommendations\n\n")
	fmt.Fprintf(&sb, "- %s\n", result.Recommendation())
	sb.WriteString("- Review all listed URLs manually for context and accuracy.\n")
	sb.WriteString("- This automated check supplements but does not replace human verification.\n")

	if result.LLM != nil && result.LLM.Enabled {
		sb.WriteString("\n## Summary (LLM-generated, does not affect scores)\n\n")
		sb.WriteString(result.LLM.SummaryMD)
		sb.WriteString("\n")
		for _, w := range result.LLM.Warnings {
			fmt.Fprintf(&sb, "\n> Warning: %s\n", w)
		}
	}

	if r.includeFooter {
		sb.WriteString("\n---\nGenerated by vouch. Confidence measures open-web corroboration, not truth or identity.\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}

// RenderSummary prints the short stdout summary
func (r *Renderer) RenderSummary(result *model.VerificationResult) {
	fmt.Printf("\n%s — overall confidence %.0f%%\n", result.Person.Name, result.OverallConfidence*100)
	for _, c := range result.Categories {
		marker := "✗"
		if c.Verified {
			marker = "✓"
		}
		fmt.Printf("  %s %-40s %.0f%% (%d hits)\n", marker, c.Category.Label(), c.Confidence*100, len(c.Evidence))
	}
	if len(result.Provenance) > 0 {
		fmt.Printf("  sources: %s\n", strings.Join(result.Provenance, ", "))
	}
	fmt.Printf("  %s\n", result.Recommendation())
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func yesNo(v bool) string {
	if v {
		return "YES"
	}
	return "NO"
}
