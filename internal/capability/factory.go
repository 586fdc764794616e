package capability

import (
	"fmt"
	"strings"
)

// NewSet wires a capability set from configuration. Capabilities whose
// backend is not configured stay nil; every pipeline call site degrades
// to its documented fallback when a capability is missing.
func NewSet(config Config) (Set, error) {
	var set Set

	switch strings.ToLower(config.Provider) {
	case "openai":
		p, err := NewOpenAICapability(config)
		if err != nil {
			return Set{}, err
		}
		set.Classifier = p
		set.Checkworthy = p
		set.Claims = p
		set.Explainer = p

	case "":
		// Generative capabilities disabled

	default:
		return Set{}, fmt.Errorf("unknown capability provider: %s (supported: openai)", config.Provider)
	}

	if config.SearchAPIKey != "" {
		ws, err := NewWebSearchClient(config)
		if err != nil {
			return Set{}, err
		}
		set.WebSearch = ws
	}

	// Retrieval falls back to an empty local corpus; callers may replace
	// it with a populated corpus or a remote store.
	set.Evidence = NewCorpusSearcher(nil)

	return set, nil
}
