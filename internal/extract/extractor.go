package extract

import (
	"context"
	"fmt"
	"os"

	"veridict/internal/capability"
	"veridict/internal/model"
)

// ClaimExtractor turns article text into a deduplicated list of atomic
// claims. Two operating modes:
//
//   - simple: one generative call over the whole text
//   - staged: checkworthiness filter, then one call per kept sentence,
//     then dedup
//
// Capability failures degrade to an empty claim list; the aggregator
// turns that into the UNVERIFIED terminal state, never an error.
type ClaimExtractor struct {
	generator capability.ClaimGenerator
	filter    *CheckworthyFilter
	dedup     *Deduplicator
	maxClaims int
	staged    bool
	verbose   bool
}

// NewClaimExtractor creates a new extractor
func NewClaimExtractor(generator capability.ClaimGenerator, filter *CheckworthyFilter, dedup *Deduplicator, maxClaims int, staged bool, verbose bool) *ClaimExtractor {
	if maxClaims <= 0 {
		maxClaims = 10
	}
	return &ClaimExtractor{
		generator: generator,
		filter:    filter,
		dedup:     dedup,
		maxClaims: maxClaims,
		staged:    staged,
		verbose:   verbose,
	}
}

// Extract runs the full claim pipeline over the article text
func (e *ClaimExtractor) Extract(ctx context.Context, text string) (model.ExtractionResult, error) {
	sentences := SplitSentences(text)

	var raw []model.Claim
	kept := sentences

	if e.staged {
		kept = e.filter.Filter(ctx, sentences)
		if err := ctx.Err(); err != nil {
			return model.ExtractionResult{}, err
		}
		raw = e.extractStaged(ctx, kept)
	} else {
		raw = e.extractSimple(ctx, text, sentences)
	}
	if err := ctx.Err(); err != nil {
		return model.ExtractionResult{}, err
	}

	// Positional truncation: extraction order is a proxy for article-order salience
	if len(raw) > e.maxClaims {
		raw = raw[:e.maxClaims]
	}

	final := e.dedup.Dedup(raw)

	return model.ExtractionResult{
		Claims: final,
		Stats: model.ExtractionStats{
			SentencesConsidered: len(sentences),
			SentencesFiltered:   len(sentences) - len(kept),
			ClaimsRaw:           len(raw),
			ClaimsFinal:         len(final),
		},
	}, nil
}

// extractSimple makes one generative pass over the whole text
func (e *ClaimExtractor) extractSimple(ctx context.Context, text string, sentences []model.Sentence) []model.Claim {
	if e.generator == nil {
		return nil
	}

	strs, err := e.generator.GenerateClaims(ctx, text, e.maxClaims)
	if err != nil {
		if e.verbose {
			fmt.Fprintf(os.Stderr, "Warning: claim extraction failed: %v\n", err)
		}
		return nil
	}

	claims := make([]model.Claim, 0, len(strs))
	for _, s := range strs {
		claims = append(claims, model.Claim{
			Text:     s,
			Sentence: nearestSentence(s, sentences),
			Stage:    model.StageSimple,
		})
	}
	return claims
}

// extractStaged makes one generative call per check-worthy sentence.
// A sentence producing zero claims is not an error.
func (e *ClaimExtractor) extractStaged(ctx context.Context, sentences []model.Sentence) []model.Claim {
	if e.generator == nil {
		return nil
	}

	var claims []model.Claim
	for _, sentence := range sentences {
		if ctx.Err() != nil {
			return claims
		}
		if len(claims) >= e.maxClaims {
			break
		}

		strs, err := e.generator.GenerateClaims(ctx, sentence.Text, e.maxClaims-len(claims))
		if err != nil {
			if e.verbose {
				fmt.Fprintf(os.Stderr, "Warning: extraction failed for sentence %d: %v\n", sentence.Index, err)
			}
			continue
		}

		for _, s := range strs {
			claims = append(claims, model.Claim{
				Text:     s,
				Sentence: sentence.Index,
				Stage:    model.StageFiltered,
			})
		}
	}
	return claims
}

// nearestSentence attributes a claim to the most similar article
// sentence, best effort only
func nearestSentence(claim string, sentences []model.Sentence) int {
	ct := claimTokens(claim)
	best, bestScore := 0, 0.0
	for _, s := range sentences {
		if score := Similarity(ct, claimTokens(s.Text)); score > bestScore {
			best, bestScore = s.Index, score
		}
	}
	return best
}
