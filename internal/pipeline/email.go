package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/provenly/vouch/internal/model"
)

// VerificationEmail renders the supervisor outreach template for one
// employment claim. The text is a draft for human review, never sent
// automatically.
func VerificationEmail(personName, company, role, supervisorContact string) string {
	if supervisorContact == "" {
		supervisorContact = "Contact information not provided - manual search required"
	}

	return strings.TrimSpace(fmt.Sprintf(`Subject: Employment Verification Request - %[1]s

Dear Hiring Manager/Supervisor,

I am writing to request employment verification for %[1]s, who has listed %[2]s as a previous employer.

Could you please confirm the following:

1. Employment period: when did %[1]s work at %[2]s?
2. Position title: did they hold the position of "%[3]s" as stated?
3. Reason for leaving: what was the reason for their departure?

This information is requested as part of a standard background verification process with the candidate's consent. All information provided will be kept confidential and used solely for employment verification.

Thank you for your time and assistance.

Best regards,
[Your Name]
[Your Title]
[Your Contact Information]

---
Note: this is a template. Review and adjust before sending.
Supervisor contact: %[4]s`, personName, company, role, supervisorContact))
}

// RenderEmails writes one email draft per employment claim into dir.
// File names are derived from the company name.
func (r *Renderer) RenderEmails(result *model.VerificationResult, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create email dir: %w", err)
	}

	var written []string
	for _, c := range result.Categories {
		if c.Category.Kind != model.ClaimEmployment {
			continue
		}
		body := VerificationEmail(result.Person.Name, c.Category.Company, c.Category.Role, "")
		name := fmt.Sprintf("verification-email-%s.txt", slugify(c.Category.Company))
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body+"\n"), 0o644); err != nil {
			return written, fmt.Errorf("write email draft: %w", err)
		}
		written = append(written, path)
	}
	return written, nil
}

func slugify(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteByte('-')
		}
	}
	return strings.Trim(sb.String(), "-")
}
