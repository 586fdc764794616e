// Package capability defines the external-capability contracts the
// verdict pipeline consumes, plus the concrete adapters shipped with the
// CLI. The pipeline depends only on the interfaces; any implementation
// (remote API, local model, test fake) is substitutable.
package capability

import (
	"context"

	"veridict/internal/model"
)

// Classifier produces the article-level FAKE/REAL signal
type Classifier interface {
	Classify(ctx context.Context, text string) (model.Classification, error)
}

// CheckworthyClassifier decides, per sentence, whether a verifiable
// factual assertion is worth extracting. One batched call per article.
type CheckworthyClassifier interface {
	ClassifyMany(ctx context.Context, sentences []string) ([]bool, error)
}

// ClaimGenerator phrases text into atomic factual claim strings
type ClaimGenerator interface {
	GenerateClaims(ctx context.Context, text string, maxClaims int) ([]string, error)
}

// EvidenceSearcher retrieves top-k ranked passages for a claim query
type EvidenceSearcher interface {
	Search(ctx context.Context, query string, topK int) ([]model.Passage, error)
}

// WebSearcher runs a fact-check-phrased query against a web search backend
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]model.SearchResult, error)
}

// ExplainRequest carries everything the explanation generator may cite
type ExplainRequest struct {
	Title          string
	Text           string
	Classification model.Classification
	Claims         []model.Claim
	Evidence       []model.EvidenceRecord
	Verdicts       []model.ClaimVerdict
}

// ExplanationGenerator renders the final explanation. The response is
// expected to approximate the aggregate JSON schema but may be freeform
// prose; the aggregator validates and repairs it.
type ExplanationGenerator interface {
	Generate(ctx context.Context, req ExplainRequest) (string, error)
}

// Set bundles the capabilities one pipeline invocation needs.
// Any field may be nil; each call site substitutes its documented fallback.
type Set struct {
	Classifier  Classifier
	Checkworthy CheckworthyClassifier
	Claims      ClaimGenerator
	Evidence    EvidenceSearcher
	WebSearch   WebSearcher
	Explainer   ExplanationGenerator
}

// Config holds capability adapter configuration
type Config struct {
	// Provider name: "openai", "" (disabled)
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the generative provider
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// SearchAPIKey / SearchBaseURL for the web-verification backend
	SearchAPIKey  string
	SearchBaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider: "",
		Timeout:  30,
	}
}

// FromModel converts model.CapabilityConfig to capability.Config
func FromModel(mc model.CapabilityConfig, httpc model.HTTPConfig) Config {
	return Config{
		Provider:      mc.Provider,
		Model:         mc.Model,
		APIKey:        mc.APIKey,
		BaseURL:       mc.BaseURL,
		SearchAPIKey:  mc.SearchAPIKey,
		SearchBaseURL: mc.SearchBaseURL,
		Timeout:       mc.Timeout,
		HTTPProxy:     httpc.HTTPProxy,
		HTTPSProxy:    httpc.HTTPSProxy,
		NoProxy:       httpc.NoProxy,
	}
}
