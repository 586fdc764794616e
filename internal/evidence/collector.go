// Package evidence attaches independently-sourced verification signals
// to claims. Both lookups per claim are best-effort: a failed or missing
// backend yields an empty list, never an error, and the record is always
// well-formed.
package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"veridict/internal/cache"
	"veridict/internal/capability"
	"veridict/internal/model"
	"veridict/internal/worker"
)

// Collector gathers per-claim evidence from the retrieval and
// web-verification collaborators
type Collector struct {
	searcher   capability.EvidenceSearcher
	web        capability.WebSearcher
	cache      cache.Cache
	limiter    *worker.Limiter
	topK       int
	maxResults int
	timeout    time.Duration
	verbose    bool
}

// Options configures a Collector
type Options struct {
	TopK       int           // Passages per claim
	MaxResults int           // Web-search hits per claim
	Timeout    time.Duration // Per external call
	Verbose    bool
}

// NewCollector creates a new evidence collector. Cache and limiter may
// be nil; both lookups then run uncached and unthrottled.
func NewCollector(searcher capability.EvidenceSearcher, web capability.WebSearcher, c cache.Cache, limiter *worker.Limiter, opts Options) *Collector {
	if opts.TopK <= 0 {
		opts.TopK = 3
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Collector{
		searcher:   searcher,
		web:        web,
		cache:      c,
		limiter:    limiter,
		topK:       opts.TopK,
		maxResults: opts.MaxResults,
		timeout:    opts.Timeout,
		verbose:    opts.Verbose,
	}
}

// FactCheckQuery phrases a claim as a fact-check search query
func FactCheckQuery(claim string) string {
	return "Is this claim true or false? Fact-check: " + claim
}

// Collect builds the evidence record for one claim. The two lookups run
// concurrently and fail independently.
func (c *Collector) Collect(ctx context.Context, claim model.Claim) model.EvidenceRecord {
	record := model.EvidenceRecord{
		Claim:    claim,
		Passages: []model.Passage{},
		Snippets: []model.SearchResult{},
	}

	var g errgroup.Group

	g.Go(func() error {
		record.Passages = c.retrievePassages(ctx, claim.Text)
		return nil
	})

	g.Go(func() error {
		record.Snippets = c.searchWeb(ctx, claim.Text)
		return nil
	})

	_ = g.Wait()
	return record
}

// CollectAll collects evidence for all claims with bounded concurrency.
// The returned slice is in claim order regardless of completion order.
// The only error returned is context cancellation: partial results are
// discarded and the run reports as cancelled, not degraded.
func (c *Collector) CollectAll(ctx context.Context, claims []model.Claim, concurrency int) ([]model.EvidenceRecord, error) {
	if len(claims) == 0 {
		return []model.EvidenceRecord{}, nil
	}
	if concurrency <= 0 {
		concurrency = 4
	}

	records := make([]model.EvidenceRecord, len(claims))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, claim := range claims {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = c.Collect(gctx, claim)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// retrievePassages queries the evidence-retrieval collaborator.
// Failures yield an empty list.
func (c *Collector) retrievePassages(ctx context.Context, claim string) []model.Passage {
	if c.searcher == nil {
		return []model.Passage{}
	}

	key := cache.Key("retrieval", claim)
	if cached, ok := c.cacheGet(key); ok {
		var passages []model.Passage
		if json.Unmarshal(cached, &passages) == nil {
			return passages
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	passages, err := c.searcher.Search(callCtx, claim, c.topK)
	if err != nil {
		if c.verbose {
			fmt.Fprintf(os.Stderr, "Warning: evidence retrieval failed for %q: %v\n", truncate(claim, 50), err)
		}
		return []model.Passage{}
	}
	if passages == nil {
		passages = []model.Passage{}
	}

	c.cachePut(key, passages)
	return passages
}

// searchWeb queries the web-verification collaborator. Failures yield an
// empty list.
func (c *Collector) searchWeb(ctx context.Context, claim string) []model.SearchResult {
	if c.web == nil {
		return []model.SearchResult{}
	}

	query := FactCheckQuery(claim)
	key := cache.Key("websearch", query)
	if cached, ok := c.cacheGet(key); ok {
		var snippets []model.SearchResult
		if json.Unmarshal(cached, &snippets) == nil {
			return snippets
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.WaitHost(callCtx, "websearch"); err != nil {
			return []model.SearchResult{}
		}
	}

	snippets, err := c.web.Search(callCtx, query, c.maxResults)
	if err != nil {
		if c.verbose {
			fmt.Fprintf(os.Stderr, "Warning: fact-check search failed for %q: %v\n", truncate(claim, 50), err)
		}
		return []model.SearchResult{}
	}
	if snippets == nil {
		snippets = []model.SearchResult{}
	}

	c.cachePut(key, snippets)
	return snippets
}

func (c *Collector) cacheGet(key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	return c.cache.Get(key)
}

func (c *Collector) cachePut(key string, v interface{}) {
	if c.cache == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(key, data, 0)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
