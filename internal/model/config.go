package model

import "time"

// Config holds the complete runtime configuration.
// Everything here is resolved once at process start (flags, env, config
// file) and injected into constructors; pipeline code never re-reads it.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Capability  CapabilityConfig  `yaml:"capability"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls the article fetcher
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty"`
	NoProxy      string        `yaml:"no_proxy,omitempty"`
}

// PipelineConfig holds the tunable constants of the claim pipeline
type PipelineConfig struct {
	MaxClaims           int     `yaml:"max_claims"`           // Positional cap on extracted claims
	SimilarityThreshold float64 `yaml:"similarity_threshold"` // Dedup cutoff on [0,1]
	StagedExtraction    bool    `yaml:"staged_extraction"`    // filter -> per-sentence extract -> dedup
	TopK                int     `yaml:"top_k"`                // Evidence passages per claim
	MaxSearchResults    int     `yaml:"max_search_results"`   // Web-verification hits per claim
	MaxSources          int     `yaml:"max_sources"`          // Sources listed per claim verdict
}

// CapabilityConfig configures the external capability adapters
type CapabilityConfig struct {
	Provider string `yaml:"provider"` // "openai" or "" (generative capabilities disabled)
	Model    string `yaml:"model"`
	APIKey   string `yaml:"-"` // From env only, never written to config files
	BaseURL  string `yaml:"base_url,omitempty"`
	Timeout  int    `yaml:"timeout"` // Seconds, applied per external call

	SearchAPIKey  string `yaml:"-"` // Web-verification backend key, from env only
	SearchBaseURL string `yaml:"search_base_url,omitempty"`

	// RequestsPerSecond throttles outbound capability calls per host
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// ConcurrencyConfig bounds the parallel parts of a run
type ConcurrencyConfig struct {
	ClaimWorkers int `yaml:"claim_workers"` // Concurrent per-claim evidence lookups
	BatchWorkers int `yaml:"batch_workers"` // Concurrent articles in batch mode
}

// CacheConfig controls capability-response caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Veridict/0.1 (+https://github.com/veridict/veridict)",
			MaxBodyBytes: 2_000_000,
		},
		Pipeline: PipelineConfig{
			MaxClaims:           10,
			SimilarityThreshold: 0.85,
			StagedExtraction:    true,
			TopK:                3,
			MaxSearchResults:    5,
			MaxSources:          5,
		},
		Capability: CapabilityConfig{
			Provider:          "",
			Timeout:           30,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Concurrency: ConcurrencyConfig{
			ClaimWorkers: 4,
			BatchWorkers: 4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
