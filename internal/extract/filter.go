package extract

import (
	"context"
	"fmt"
	"os"

	"veridict/internal/capability"
	"veridict/internal/model"
)

// CheckworthyFilter reduces the working set to sentences worth checking.
// Filtering is an optimization, not a correctness requirement: if the
// classification capability is missing or fails, every sentence passes.
type CheckworthyFilter struct {
	classifier capability.CheckworthyClassifier
	verbose    bool
}

// NewCheckworthyFilter creates a new filter
func NewCheckworthyFilter(classifier capability.CheckworthyClassifier, verbose bool) *CheckworthyFilter {
	return &CheckworthyFilter{classifier: classifier, verbose: verbose}
}

// Filter returns the check-worthy subset of sentences, preserving
// original order and indices. Empty input yields empty output.
func (f *CheckworthyFilter) Filter(ctx context.Context, sentences []model.Sentence) []model.Sentence {
	if len(sentences) == 0 {
		return []model.Sentence{}
	}
	if f.classifier == nil {
		return sentences
	}

	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.Text
	}

	flags, err := f.classifier.ClassifyMany(ctx, texts)
	if err != nil || len(flags) != len(sentences) {
		if f.verbose && err != nil {
			fmt.Fprintf(os.Stderr, "Warning: checkworthiness filter degraded, keeping all sentences: %v\n", err)
		}
		return sentences
	}

	var kept []model.Sentence
	for i, s := range sentences {
		if flags[i] {
			kept = append(kept, s)
		}
	}
	if kept == nil {
		kept = []model.Sentence{}
	}
	return kept
}
