// Package score assigns per-claim verdicts with a deterministic
// indicator-term heuristic. No external calls: identical evidence always
// yields an identical verdict.
package score

import (
	"fmt"
	"strings"

	"veridict/internal/model"
)

// Indicator-term sets. Counting is per term occurrence over the
// case-normalized snippet corpus (title + snippet).
var (
	falseIndicators = []string{
		"false", "myth", "debunk", "not true", "incorrect", "wrong", "fake", "hoax",
	}
	trueIndicators = []string{
		"true", "correct", "verified", "confirm", "accurate", "fact",
	}
	partialIndicators = []string{
		"partially", "partly", "some truth", "misleading", "context",
	}
)

// Scorer scores claims against their evidence records
type Scorer struct {
	maxSources int
}

// NewScorer creates a scorer. maxSources caps the per-claim source list.
func NewScorer(maxSources int) *Scorer {
	if maxSources <= 0 {
		maxSources = 5
	}
	return &Scorer{maxSources: maxSources}
}

// Score produces the verdict for one claim. Pure and reproducible.
//
// Precedence, first match wins, ties broken toward caution:
//  1. empty corpus                                   -> UNVERIFIED
//  2. partial > 0 and partial >= max(false, true)    -> PARTIALLY_TRUE
//  3. false > true                                   -> FALSE
//  4. true > false                                   -> TRUE
//  5. otherwise                                      -> UNVERIFIED
func (s *Scorer) Score(claim model.Claim, record model.EvidenceRecord) model.ClaimVerdict {
	corpus := buildCorpus(record.Snippets)
	sourceCount := len(record.Snippets)

	verdict := model.VerdictUnverified
	rationale := "No search results were available; the claim could not be verified."

	if corpus != "" {
		falseCount := countIndicators(corpus, falseIndicators)
		trueCount := countIndicators(corpus, trueIndicators)
		partialCount := countIndicators(corpus, partialIndicators)

		switch {
		case partialCount > 0 && partialCount >= maxInt(falseCount, trueCount):
			verdict = model.VerdictPartiallyTrue
			rationale = fmt.Sprintf("Based on %d sources, this claim is partially true: the coverage contains accurate elements but signals missing context or misleading framing.", sourceCount)
		case falseCount > trueCount:
			verdict = model.VerdictFalse
			rationale = fmt.Sprintf("Based on %d sources, this claim appears to be false: falsity indicators dominate the coverage.", sourceCount)
		case trueCount > falseCount:
			verdict = model.VerdictTrue
			rationale = fmt.Sprintf("Based on %d sources, this claim appears to be true: confirmation indicators dominate the coverage.", sourceCount)
		default:
			verdict = model.VerdictUnverified
			rationale = fmt.Sprintf("Based on %d sources, the claim could not be definitively verified: the coverage is inconclusive.", sourceCount)
		}
	}

	return model.ClaimVerdict{
		Claim:     claim,
		Verdict:   verdict,
		Rationale: rationale,
		Sources:   formatSources(record.Snippets, s.maxSources),
	}
}

// ScoreAll scores every claim in record order
func (s *Scorer) ScoreAll(records []model.EvidenceRecord) []model.ClaimVerdict {
	verdicts := make([]model.ClaimVerdict, len(records))
	for i, record := range records {
		verdicts[i] = s.Score(record.Claim, record)
	}
	return verdicts
}

// buildCorpus concatenates title and snippet text, case-normalized
func buildCorpus(snippets []model.SearchResult) string {
	var sb strings.Builder
	for _, s := range snippets {
		if s.Title != "" {
			sb.WriteString(s.Title)
			sb.WriteString(" ")
		}
		if s.Snippet != "" {
			sb.WriteString(s.Snippet)
			sb.WriteString(" ")
		}
	}
	return strings.ToLower(strings.TrimSpace(sb.String()))
}

// countIndicators counts total occurrences of the indicator terms
func countIndicators(corpus string, indicators []string) int {
	count := 0
	for _, term := range indicators {
		count += strings.Count(corpus, term)
	}
	return count
}

// formatSources renders ordered "title - url" pairs, capped at max
func formatSources(snippets []model.SearchResult, max int) []string {
	sources := make([]string, 0, len(snippets))
	for _, s := range snippets {
		if len(sources) >= max {
			break
		}
		sources = append(sources, fmt.Sprintf("%s - %s", s.Title, s.URL))
	}
	return sources
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
