// Package aggregate collapses the classifier output, the per-claim
// verdicts, and the evidence support into one explainable, internally
// consistent final verdict.
package aggregate

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"veridict/internal/capability"
	"veridict/internal/model"
)

// Ratios summarizes the per-claim verdict distribution.
// PARTIALLY_TRUE counts half toward each of the true and false sides.
type Ratios struct {
	False      float64
	True       float64
	Unverified float64
}

// Aggregator computes the final display status and explanation
type Aggregator struct {
	explainer capability.ExplanationGenerator
	timeout   time.Duration
	verbose   bool
}

// NewAggregator creates an aggregator. explainer may be nil; the
// deterministic fallback explanation is used instead.
func NewAggregator(explainer capability.ExplanationGenerator, timeout time.Duration, verbose bool) *Aggregator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Aggregator{explainer: explainer, timeout: timeout, verbose: verbose}
}

// Input carries everything the aggregator reads. All references are
// read-only for the duration of verdict computation.
type Input struct {
	Title          string
	Text           string
	Classification model.Classification
	Claims         []model.Claim
	Evidence       []model.EvidenceRecord
	Verdicts       []model.ClaimVerdict
	Stats          model.ExtractionStats

	// FactCheckUnavailable marks that the web-verification capability
	// produced nothing for any claim (missing backend or total failure)
	FactCheckUnavailable bool
}

// Aggregate produces the terminal verdict. The heuristic display status
// is always authoritative: a disagreeing or malformed generative answer
// never overrides it. Only context cancellation is returned as an error.
func (a *Aggregator) Aggregate(ctx context.Context, in Input) (model.AggregatedVerdict, error) {
	if err := ctx.Err(); err != nil {
		return model.AggregatedVerdict{}, err
	}

	ratios := ComputeRatios(in.Verdicts)
	status := DisplayStatus(in.Classification.Label, ratios)
	flags := KeyFlags(in, ratios)

	verdict := model.AggregatedVerdict{
		DisplayStatus: status,
		KeyFlags:      flags,
		PerClaim:      in.Verdicts,
	}

	explanation, extraFlags := a.explain(ctx, in, status)
	if err := ctx.Err(); err != nil {
		return model.AggregatedVerdict{}, err
	}

	verdict.Explanation = explanation
	verdict.KeyFlags = append(verdict.KeyFlags, extraFlags...)

	return verdict, nil
}

// ComputeRatios computes the verdict distribution over per-claim verdicts
func ComputeRatios(verdicts []model.ClaimVerdict) Ratios {
	if len(verdicts) == 0 {
		return Ratios{Unverified: 1.0}
	}

	var falseN, trueN, unverifiedN float64
	for _, v := range verdicts {
		switch v.Verdict {
		case model.VerdictFalse:
			falseN++
		case model.VerdictTrue:
			trueN++
		case model.VerdictPartiallyTrue:
			falseN += 0.5
			trueN += 0.5
		default:
			unverifiedN++
		}
	}

	total := float64(len(verdicts))
	return Ratios{
		False:      falseN / total,
		True:       trueN / total,
		Unverified: unverifiedN / total,
	}
}

// DisplayStatus applies the precedence table, top to bottom, first
// satisfied rule wins.
func DisplayStatus(label model.Label, r Ratios) model.DisplayStatus {
	switch {
	case label == model.LabelFake && r.False >= 0.5:
		return model.StatusFalse
	case label == model.LabelFake && r.True >= 0.5:
		// The model flags it fake despite claims checking out:
		// a framing or context issue, not factual falsity
		return model.StatusMisleading
	case r.Unverified == 1.0:
		return model.StatusUnverified
	case r.False > 0 && r.False < 0.5:
		return model.StatusPartiallyVerified
	case r.True >= 0.5 && label == model.LabelReal:
		return model.StatusVerified
	default:
		return model.StatusUnverified
	}
}

// KeyFlags derives independent facts about the run; flags may co-occur
func KeyFlags(in Input, r Ratios) []string {
	var flags []string

	if strings.TrimSpace(in.Text) == "" {
		flags = append(flags, "Article text was empty; nothing could be analyzed")
	}
	if in.Classification.Confidence < 0.6 {
		flags = append(flags, fmt.Sprintf("Low classifier confidence (%.0f%%)", in.Classification.Confidence*100))
	}
	if len(in.Claims) == 0 {
		flags = append(flags, "No verifiable claims could be extracted from this article")
	}
	if in.FactCheckUnavailable {
		flags = append(flags, "Fact-check search was unavailable; verdicts rely on retrieval evidence only")
	}
	if r.Unverified == 1.0 && len(in.Claims) > 0 {
		flags = append(flags, "None of the extracted claims could be resolved against independent sources")
	}
	if in.Classification.Label == model.LabelFake && r.True >= 0.5 {
		flags = append(flags, "Classifier flags the article despite claims checking out; framing or context may be misleading")
	}

	return flags
}

// explain produces the prose explanation. One retry on a non-conforming
// structured response, then the deterministic local fallback.
func (a *Aggregator) explain(ctx context.Context, in Input, status model.DisplayStatus) (string, []string) {
	if a.explainer == nil {
		return fallbackExplanation(in, status), nil
	}

	req := capability.ExplainRequest{
		Title:          in.Title,
		Text:           in.Text,
		Classification: in.Classification,
		Claims:         in.Claims,
		Evidence:       in.Evidence,
		Verdicts:       in.Verdicts,
	}

	for attempt := 0; attempt < 2; attempt++ {
		if ctx.Err() != nil {
			return fallbackExplanation(in, status), nil
		}

		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		raw, err := a.explainer.Generate(callCtx, req)
		cancel()
		if err != nil {
			if a.verbose {
				fmt.Fprintf(os.Stderr, "Warning: explanation generation failed (attempt %d): %v\n", attempt+1, err)
			}
			continue
		}

		payload, outcome := parsePayload(raw)
		switch outcome {
		case payloadOK:
			repaired := repairPayload(payload, in, status)
			return repaired.Explanation, repaired.KeyFlags
		case payloadNoJSON:
			// Plain prose with no JSON at all: use it verbatim as the
			// explanation, keep the locally computed status and flags
			if prose := proseOrEmpty(raw); prose != "" {
				return prose, nil
			}
		}
		// Non-conforming JSON never reaches the user; retry, then the
		// deterministic fallback
	}

	return fallbackExplanation(in, status), nil
}

// fallbackExplanation is the deterministic, rule-based explanation used
// when the generative capability is disabled or failed twice
func fallbackExplanation(in Input, status model.DisplayStatus) string {
	confidence := in.Classification.Confidence

	if in.Classification.Label == model.LabelFake {
		return fmt.Sprintf(
			"This article has been classified as potentially unreliable with %.0f%% confidence. "+
				"We extracted %d claims and resolved them against independent sources (overall status: %s). "+
				"Please verify the information with trusted sources before sharing.",
			confidence*100, len(in.Claims), status)
	}

	return fmt.Sprintf(
		"This article appears to be credible based on our analysis (%.0f%% confidence). "+
			"We found %d verifiable claims (overall status: %s). "+
			"As always, cross-reference important information with multiple sources.",
		confidence*100, len(in.Claims), status)
}
