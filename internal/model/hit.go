package model

// RawHit is one search result as returned by a provider. Providers do
// not deduplicate; hits are immutable once returned.
type RawHit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
	Source  string `json:"source,omitempty"` // Provider that returned the hit
}

// ScoredHit is a RawHit plus its relevance against one claim.
// Never mutated after creation.
type ScoredHit struct {
	RawHit
	Score        float64  `json:"score"`
	MatchedTerms []string `json:"matched_terms,omitempty"`
}
