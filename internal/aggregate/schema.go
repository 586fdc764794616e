package aggregate

import (
	"encoding/json"
	"strings"

	"veridict/internal/capability"
	"veridict/internal/model"
)

// payload is the JSON schema the explanation generator is asked to emit
type payload struct {
	ThoughtProcess string          `json:"thought_process,omitempty"`
	DisplayStatus  string          `json:"display_status"`
	Explanation    string          `json:"explanation"`
	KeyFlags       []string        `json:"key_flags"`
	ClaimAnalysis  []claimAnalysis `json:"claim_analysis"`
}

type claimAnalysis struct {
	Claim           string `json:"claim"`
	Status          string `json:"status"`
	EvidenceSummary string `json:"evidence_summary"`
}

// parseOutcome classifies a generative response: a usable payload, a
// response with no JSON object at all, or JSON that decodes but does not
// conform to the schema
type parseOutcome int

const (
	payloadOK parseOutcome = iota
	payloadNoJSON
	payloadMalformed
)

// parsePayload extracts and decodes the JSON object from a generative
// response, tolerating markdown fences and surrounding prose
func parsePayload(raw string) (payload, parseOutcome) {
	cleaned := capability.StripFences(raw)

	block, found := capability.ExtractJSONObject(cleaned)
	if !found {
		return payload{}, payloadNoJSON
	}

	var p payload
	if err := json.Unmarshal([]byte(block), &p); err != nil {
		return payload{}, payloadMalformed
	}

	// A decoded object carrying neither explanation nor flags is not a
	// usable answer
	if p.Explanation == "" && len(p.KeyFlags) == 0 && p.DisplayStatus == "" {
		return payload{}, payloadMalformed
	}

	return p, payloadOK
}

// repairPayload fills missing keys with locally computed fallbacks. The
// heuristic display status is authoritative and is never taken from the
// payload; the internal thought_process never leaves the aggregator.
func repairPayload(p payload, in Input, status model.DisplayStatus) payload {
	p.ThoughtProcess = ""
	p.DisplayStatus = string(status)

	if p.Explanation == "" {
		p.Explanation = fallbackExplanation(in, status)
	}
	if p.KeyFlags == nil {
		p.KeyFlags = []string{}
	}
	if p.ClaimAnalysis == nil {
		p.ClaimAnalysis = []claimAnalysis{}
	}

	return p
}

// proseOrEmpty accepts a plain-prose response as a verbatim explanation,
// rejecting empty or fence-only content
func proseOrEmpty(raw string) string {
	prose := strings.TrimSpace(capability.StripFences(raw))
	if prose == "" {
		return ""
	}
	return prose
}
