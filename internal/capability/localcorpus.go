package capability

import (
	"context"
	"sort"
	"strings"

	"veridict/internal/model"
)

// CorpusSearcher implements the evidence-retrieval capability over a
// fixed in-memory corpus of passages, ranked by token overlap with the
// query. It stands in for an external vector store at the same interface
// boundary and is the default when no retrieval endpoint is configured.
type CorpusSearcher struct {
	passages []model.Passage
}

// NewCorpusSearcher creates a searcher over the given passages.
// The Score field of the input passages is ignored; scores are computed
// per query.
func NewCorpusSearcher(passages []model.Passage) *CorpusSearcher {
	return &CorpusSearcher{passages: passages}
}

// Search returns the topK passages most similar to the query, ordered by
// descending relevance. Passages with zero overlap are not returned.
func (s *CorpusSearcher) Search(ctx context.Context, query string, topK int) ([]model.Passage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = 3
	}

	queryTokens := tokenSet(query)
	if len(queryTokens) == 0 {
		return []model.Passage{}, nil
	}

	scored := make([]model.Passage, 0, len(s.passages))
	for _, p := range s.passages {
		score := overlapScore(queryTokens, tokenSet(p.Text))
		if score == 0 {
			continue
		}
		p.Score = score
		scored = append(scored, p)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

// tokenSet normalizes text into a set of lowercase word tokens
func tokenSet(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, f := range strings.Fields(strings.ToLower(text)) {
		f = strings.Trim(f, `.,;:!?"'()[]`)
		if len(f) > 2 {
			tokens[f] = true
		}
	}
	return tokens
}

// overlapScore is |query ∩ passage| / |query|, clamped to [0,1]
func overlapScore(query, passage map[string]bool) float64 {
	if len(query) == 0 {
		return 0
	}
	shared := 0
	for t := range query {
		if passage[t] {
			shared++
		}
	}
	return float64(shared) / float64(len(query))
}
