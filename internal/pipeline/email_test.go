package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationEmail(t *testing.T) {
	body := VerificationEmail("Jane Doe", "Acme Corporation", "Software Engineer", "hr@acme.example")

	assert.Contains(t, body, "Subject: Employment Verification Request - Jane Doe")
	assert.Contains(t, body, "Acme Corporation")
	assert.Contains(t, body, `"Software Engineer"`)
	assert.Contains(t, body, "hr@acme.example")
}

func TestVerificationEmailMissingContact(t *testing.T) {
	body := VerificationEmail("Jane Doe", "Acme", "Engineer", "")
	assert.Contains(t, body, "manual search required")
}

func TestRenderEmailsOnePerEmployment(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "drafts")
	result := sampleResult()

	written, err := NewRenderer(true).RenderEmails(result, dir)
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, filepath.Join(dir, "verification-email-acme.txt"), written[0])

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Jane Doe")
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "acme-corporation", slugify("Acme Corporation"))
	assert.Equal(t, "abc-123", slugify("  ABC_123! "))
	assert.Equal(t, "", slugify("!!!"))
}
