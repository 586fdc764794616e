package model

import "time"

// Report represents the complete analysis artifact for one article
type Report struct {
	Subject    string    `json:"subject"`              // Human-readable subject (title or slug)
	Source     string    `json:"source"`               // File path or final URL analyzed
	AnalyzedAt time.Time `json:"analyzed_at"`          // When the analysis ran
	FetchMeta  FetchMeta `json:"fetch_meta,omitempty"` // HTTP metadata for URL inputs

	Classification Classification   `json:"classification"` // Article-level classifier signal
	Extraction     ExtractionStats  `json:"extraction"`     // Pipeline stats
	Evidence       []EvidenceRecord `json:"evidence,omitempty"`

	Verdict AggregatedVerdict `json:"verdict"` // The terminal aggregated verdict

	// Warnings surface capability-level degradation separately from the
	// verdict itself (unreachable search backend, classifier fallback, ...).
	Warnings []string `json:"warnings,omitempty"`
}

// FetchMeta contains HTTP metadata from fetching the source article
type FetchMeta struct {
	StatusCode   int    `json:"status_code,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
	LastModified string `json:"last_modified,omitempty"`
	ETag         string `json:"etag,omitempty"`
}
