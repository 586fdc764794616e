package model

// Label is the binary output of the article classifier
type Label string

const (
	LabelFake Label = "FAKE"
	LabelReal Label = "REAL"
)

// Classification is the article-level classifier signal
type Classification struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"` // [0,1]
}

// Verdict is the per-claim outcome of heuristic scoring
type Verdict string

const (
	VerdictTrue          Verdict = "TRUE"
	VerdictFalse         Verdict = "FALSE"
	VerdictPartiallyTrue Verdict = "PARTIALLY_TRUE"
	VerdictUnverified    Verdict = "UNVERIFIED"
)

// ClaimVerdict is the scored outcome for one claim. Every claim gets
// exactly one; upstream failures resolve to UNVERIFIED, never absence.
type ClaimVerdict struct {
	Claim     Claim    `json:"claim"`
	Verdict   Verdict  `json:"verdict"`
	Rationale string   `json:"rationale"`
	Sources   []string `json:"sources"` // "title - url" pairs, capped
}

// DisplayStatus is the user-facing categorical verdict for the whole article
type DisplayStatus string

const (
	StatusFalse             DisplayStatus = "FALSE"
	StatusMisleading        DisplayStatus = "MISLEADING"
	StatusUnverified        DisplayStatus = "UNVERIFIED"
	StatusPartiallyVerified DisplayStatus = "PARTIALLY_VERIFIED"
	StatusVerified          DisplayStatus = "VERIFIED"
)

// AggregatedVerdict is the single terminal artifact of an analysis run
type AggregatedVerdict struct {
	DisplayStatus DisplayStatus  `json:"display_status"`
	Explanation   string         `json:"explanation"`
	KeyFlags      []string       `json:"key_flags"`
	PerClaim      []ClaimVerdict `json:"per_claim"`
}
