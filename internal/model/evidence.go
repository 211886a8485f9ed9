package model

// CategoryEvidence is the outcome of evidence collection for a single
// claim. Created once per category per run and immutable afterwards.
// Confidence is a pure function of the evidence; Verified compares it
// against the category threshold.
type CategoryEvidence struct {
	Category ClaimItem   `json:"category"`
	Evidence []ScoredHit `json:"evidence"` // Highest score first
	Sources  []string    `json:"sources"`  // Distinct URLs, for audit

	Confidence float64 `json:"confidence"`
	Verified   bool    `json:"verified"`

	// SourcesChecked counts registry queries that at least one provider
	// answered; it drives background-coverage confidence.
	SourcesChecked int `json:"sources_checked,omitempty"`

	// CleanRecord is meaningful for background categories only. It
	// defaults to true and flips false on an adverse finding,
	// independently of the confidence number.
	CleanRecord bool `json:"clean_record,omitempty"`

	// Err records a per-category configuration problem (e.g. an
	// employment claim missing its company). The category still appears
	// in the result with zero confidence and no provenance.
	Err string `json:"error,omitempty"`
}
