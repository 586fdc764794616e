package model

// Sentence is one article sentence in article order.
type Sentence struct {
	Index int    `json:"index"` // Position in the article (0-based)
	Text  string `json:"text"`
}

// Claim represents an atomic factual assertion extracted from the article
type Claim struct {
	Text     string     `json:"text"`            // The claim text itself
	Sentence int        `json:"sentence"`        // Origin sentence index in source (0-based)
	Stage    ClaimStage `json:"stage,omitempty"` // Which pipeline stage produced it
}

// ClaimStage records how a claim came to be
type ClaimStage string

const (
	StageSimple   ClaimStage = "simple"   // Single-pass extraction over the whole text
	StageFiltered ClaimStage = "filtered" // Staged extraction from a check-worthy sentence
	StageMerged   ClaimStage = "merged"   // Canonical survivor of a near-duplicate merge
)

// ExtractionResult is an immutable snapshot of one extraction run
type ExtractionResult struct {
	Claims []Claim         `json:"claims"`
	Stats  ExtractionStats `json:"stats"`
}

// ExtractionStats documents how the working set shrank through the pipeline
type ExtractionStats struct {
	SentencesConsidered int `json:"sentences_considered"`
	SentencesFiltered   int `json:"sentences_filtered"` // Dropped as not check-worthy
	ClaimsRaw           int `json:"claims_raw"`
	ClaimsFinal         int `json:"claims_final"`
}
