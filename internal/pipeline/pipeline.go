// Package pipeline orchestrates a full article analysis: acquire text,
// classify it, extract claims, collect per-claim evidence, score claim
// verdicts, and aggregate everything into a single report. Every stage
// degrades gracefully; only context cancellation aborts a run.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"veridict/internal/aggregate"
	"veridict/internal/cache"
	"veridict/internal/capability"
	"veridict/internal/evidence"
	"veridict/internal/extract"
	"veridict/internal/model"
	"veridict/internal/score"
	"veridict/internal/worker"
)

// Pipeline wires the analysis stages together
type Pipeline struct {
	cfg        *model.Config
	caps       capability.Set
	fetcher    *Fetcher
	extractor  *extract.ClaimExtractor
	collector  *evidence.Collector
	scorer     *score.Scorer
	aggregator *aggregate.Aggregator
	verbose    bool
}

// New creates a fully wired Pipeline. The cache may be nil.
func New(cfg *model.Config, caps capability.Set, c cache.Cache) *Pipeline {
	verbose := cfg.Output.Verbose
	callTimeout := time.Duration(cfg.Capability.Timeout) * time.Second

	limiter := worker.NewLimiter(cfg.Capability.RequestsPerSecond, cfg.Capability.Burst)

	filter := extract.NewCheckworthyFilter(caps.Checkworthy, verbose)
	dedup := extract.NewDeduplicator(cfg.Pipeline.SimilarityThreshold)

	return &Pipeline{
		cfg:     cfg,
		caps:    caps,
		fetcher: NewFetcher(cfg.HTTP, limiter),
		extractor: extract.NewClaimExtractor(
			caps.Claims, filter, dedup,
			cfg.Pipeline.MaxClaims, cfg.Pipeline.StagedExtraction, verbose),
		collector: evidence.NewCollector(caps.Evidence, caps.WebSearch, c, limiter, evidence.Options{
			TopK:       cfg.Pipeline.TopK,
			MaxResults: cfg.Pipeline.MaxSearchResults,
			Timeout:    callTimeout,
			Verbose:    verbose,
		}),
		scorer:     score.NewScorer(cfg.Pipeline.MaxSources),
		aggregator: aggregate.NewAggregator(caps.Explainer, callTimeout, verbose),
		verbose:    verbose,
	}
}

// Analyze runs the full pipeline for a single input, which may be a
// URL or a local file path
func (p *Pipeline) Analyze(ctx context.Context, input string) (*model.Report, error) {
	if isURL(input) {
		return p.analyzeURL(ctx, input)
	}
	return p.analyzeFile(ctx, input)
}

func (p *Pipeline) analyzeURL(ctx context.Context, rawURL string) (*model.Report, error) {
	res, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	text := res.Body
	if extract.LooksLikeHTML(text) {
		plain, err := extract.VisibleText(text)
		if err == nil && strings.TrimSpace(plain) != "" {
			text = plain
		}
	}

	report, err := p.run(ctx, res.Subject, res.FinalURL, text)
	if err != nil {
		return nil, err
	}
	report.FetchMeta = res.Meta
	return report, nil
}

func (p *Pipeline) analyzeFile(ctx context.Context, path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	text := string(data)
	if extract.LooksLikeHTML(text) {
		plain, err := extract.VisibleText(text)
		if err == nil && strings.TrimSpace(plain) != "" {
			text = plain
		}
	}

	return p.run(ctx, subjectFromPath(path), path, text)
}

// AnalyzeText analyzes already-acquired article text under the given
// subject. Source is recorded as "text".
func (p *Pipeline) AnalyzeText(ctx context.Context, subject, text string) (*model.Report, error) {
	return p.run(ctx, subject, "text", text)
}

func (p *Pipeline) run(ctx context.Context, subject, source, text string) (*model.Report, error) {
	report := &model.Report{
		Subject:    subject,
		Source:     source,
		AnalyzedAt: time.Now().UTC(),
	}

	// Article-level classification. An unavailable classifier degrades
	// to REAL with zero confidence, surfaced as a warning.
	classification := model.Classification{Label: model.LabelReal, Confidence: 0}
	if p.caps.Classifier != nil {
		c, err := p.caps.Classifier.Classify(ctx, text)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.logf("classifier unavailable: %v", err)
			report.Warnings = append(report.Warnings, "classifier unavailable, assuming REAL with zero confidence")
		} else {
			classification = c
		}
	} else {
		report.Warnings = append(report.Warnings, "no classifier configured, assuming REAL with zero confidence")
	}
	report.Classification = classification

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	extraction, err := p.extractor.Extract(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}
	report.Extraction = extraction.Stats
	p.logf("extracted %d claims from %d sentences", extraction.Stats.ClaimsFinal, extraction.Stats.SentencesConsidered)

	records, err := p.collector.CollectAll(ctx, extraction.Claims, p.cfg.Concurrency.ClaimWorkers)
	if err != nil {
		return nil, fmt.Errorf("collect evidence: %w", err)
	}
	report.Evidence = records

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	verdicts := p.scorer.ScoreAll(records)

	unavailable := p.factCheckUnavailable(extraction.Claims, records)
	if unavailable && len(extraction.Claims) > 0 {
		report.Warnings = append(report.Warnings, "fact-check search unavailable, claim verdicts rest on retrieval evidence only")
	}

	verdict, err := p.aggregator.Aggregate(ctx, aggregate.Input{
		Title:                subject,
		Text:                 text,
		Classification:       classification,
		Claims:               extraction.Claims,
		Evidence:             records,
		Verdicts:             verdicts,
		Stats:                extraction.Stats,
		FactCheckUnavailable: unavailable,
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	report.Verdict = verdict

	return report, nil
}

// factCheckUnavailable reports whether the web-verification signal
// contributed nothing: no backend configured, or every claim came back
// without a single search snippet.
func (p *Pipeline) factCheckUnavailable(claims []model.Claim, records []model.EvidenceRecord) bool {
	if p.caps.WebSearch == nil {
		return true
	}
	if len(claims) == 0 {
		return false
	}
	for _, r := range records {
		if len(r.Snippets) > 0 {
			return false
		}
	}
	return true
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.verbose {
		fmt.Fprintf(os.Stderr, "pipeline: "+format+"\n", args...)
	}
}

func isURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

func subjectFromPath(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return base
}
