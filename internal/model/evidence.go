package model

// Passage is one retrieved evidence passage for a claim
type Passage struct {
	Text   string  `json:"text"`
	Source string  `json:"source"`          // Article or document the passage came from
	Score  float64 `json:"relevance_score"` // Relevance in [0,1], records ordered descending
}

// SearchResult is one web-verification hit for a fact-check query
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// EvidenceRecord collects both verification signals for one claim.
// Both fields are always present; either may be empty after a partial failure.
type EvidenceRecord struct {
	Claim    Claim          `json:"claim"`
	Passages []Passage      `json:"passages"`
	Snippets []SearchResult `json:"search_snippets"`
}

// HasEvidence reports whether any signal source returned anything at all
func (r EvidenceRecord) HasEvidence() bool {
	return len(r.Passages) > 0 || len(r.Snippets) > 0
}
