package extract

import (
	"strings"

	"veridict/internal/model"
)

// Deduplicator merges near-duplicate claims into a canonical list.
// Similarity is token-overlap Jaccard: deterministic and symmetric.
type Deduplicator struct {
	threshold float64
}

// NewDeduplicator creates a deduplicator with the given similarity
// threshold on [0,1]. Non-positive thresholds fall back to the default.
func NewDeduplicator(threshold float64) *Deduplicator {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.85
	}
	return &Deduplicator{threshold: threshold}
}

// Dedup returns the canonical claim list, preserving first-occurrence
// order. The earlier-seen claim always wins; a survivor that absorbed at
// least one duplicate is re-emitted as a new merged claim. Idempotent:
// running Dedup on its own output changes nothing.
func (d *Deduplicator) Dedup(claims []model.Claim) []model.Claim {
	if len(claims) == 0 {
		return []model.Claim{}
	}

	accepted := make([]model.Claim, 0, len(claims))
	tokens := make([]map[string]bool, 0, len(claims))
	absorbed := make([]bool, 0, len(claims))

	for _, claim := range claims {
		ct := claimTokens(claim.Text)

		duplicate := false
		for i := range accepted {
			if Similarity(ct, tokens[i]) >= d.threshold {
				absorbed[i] = true
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		accepted = append(accepted, claim)
		tokens = append(tokens, ct)
		absorbed = append(absorbed, false)
	}

	out := make([]model.Claim, len(accepted))
	for i, claim := range accepted {
		if absorbed[i] {
			claim.Stage = model.StageMerged
		}
		out[i] = claim
	}
	return out
}

// claimTokens normalizes claim text into a token set
func claimTokens(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, f := range strings.Fields(strings.ToLower(text)) {
		f = strings.Trim(f, `.,;:!?"'()[]`)
		if f != "" {
			tokens[f] = true
		}
	}
	return tokens
}

// Similarity is the Jaccard index of two token sets
func Similarity(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	shared := 0
	for t := range a {
		if b[t] {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	return float64(shared) / float64(union)
}
