package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"veridict/internal/cache"
	"veridict/internal/capability"
	"veridict/internal/model"
	"veridict/internal/pipeline"
)

var (
	outJSON    string
	outMD      string
	timeout    time.Duration
	userAgent  string
	maxBytes   int64
	noCache    bool
	noFooter   bool
	provider   string
	modelName  string
	baseURL    string
	searchURL  string
	maxClaims  int
	similarity float64
	simpleMode bool
	topK       int
	maxResults int
	httpProxy  string
	httpsProxy string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <url-or-file>",
	Short: "Analyze one article and produce a fact-check verdict",
	Long: `Analyze runs the full claim pipeline on a single article:
- Split the text into sentences and keep the check-worthy ones
- Extract factual claims and deduplicate near-duplicates
- Gather retrieval passages and fact-check search results per claim
- Score each claim TRUE, FALSE, PARTIALLY_TRUE, or UNVERIFIED
- Aggregate claim verdicts with the article classifier into one status

The input may be an http(s) URL or a local file with article text or HTML.

Example:
  veridict analyze article.txt
  veridict analyze https://example.com/news/story --json report.json --md report.md
  veridict analyze article.txt --provider openai --model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "Veridict/0.1 (+https://github.com/veridict/veridict)", "HTTP User-Agent")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable capability-response caching")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	// Capability flags
	analyzeCmd.Flags().StringVar(&provider, "provider", "", "generative provider (openai, or empty to disable)")
	analyzeCmd.Flags().StringVar(&modelName, "model", "gpt-4o-mini", "generative model name")
	analyzeCmd.Flags().StringVar(&baseURL, "base-url", "", "custom provider endpoint")
	analyzeCmd.Flags().StringVar(&searchURL, "search-url", "", "fact-check search endpoint (default Perplexity API)")

	// Pipeline flags
	analyzeCmd.Flags().IntVar(&maxClaims, "max-claims", 10, "max claims to analyze per article")
	analyzeCmd.Flags().Float64Var(&similarity, "similarity", 0.85, "claim dedup similarity threshold")
	analyzeCmd.Flags().BoolVar(&simpleMode, "simple", false, "single-pass claim extraction instead of the staged pipeline")
	analyzeCmd.Flags().IntVar(&topK, "top-k", 3, "evidence passages per claim")
	analyzeCmd.Flags().IntVar(&maxResults, "max-results", 5, "fact-check search hits per claim")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := buildConfig()

	p, warnings, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "⚠ %s\n", w)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", input)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Provider: %q\n", cfg.Capability.Provider)
		fmt.Fprintln(os.Stderr)
	}

	report, err := p.Analyze(ctx, input)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d claims\n", report.Extraction.ClaimsFinal)
		fmt.Fprintf(os.Stderr, "✓ Display status: %s\n", report.Verdict.DisplayStatus)
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	if err := p.RenderReport(report, renderer, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// buildConfig assembles runtime configuration from flags and environment
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	cfg.Pipeline.MaxClaims = maxClaims
	cfg.Pipeline.SimilarityThreshold = similarity
	cfg.Pipeline.StagedExtraction = !simpleMode
	cfg.Pipeline.TopK = topK
	cfg.Pipeline.MaxSearchResults = maxResults

	cfg.Capability.Provider = provider
	cfg.Capability.Model = modelName
	cfg.Capability.BaseURL = baseURL
	cfg.Capability.SearchBaseURL = searchURL

	// API keys come from the environment only
	cfg.Capability.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Capability.SearchAPIKey = os.Getenv("PERPLEXITY_API_KEY")

	return cfg
}

// buildPipeline wires capabilities, cache, and the pipeline from config.
// Missing capabilities become warnings, not errors.
func buildPipeline(cfg *model.Config) (*pipeline.Pipeline, []string, error) {
	var warnings []string

	if cfg.Capability.Provider != "" && cfg.Capability.APIKey == "" {
		return nil, nil, fmt.Errorf("provider %q requires OPENAI_API_KEY to be set", cfg.Capability.Provider)
	}

	caps, err := capability.NewSet(capability.FromModel(cfg.Capability, cfg.HTTP))
	if err != nil {
		return nil, nil, fmt.Errorf("configure capabilities: %w", err)
	}

	if caps.Classifier == nil {
		warnings = append(warnings, "no generative provider configured, article classification disabled")
	}
	if caps.WebSearch == nil {
		warnings = append(warnings, "PERPLEXITY_API_KEY not set, fact-check search disabled")
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err == nil {
				dir = home + "/.veridict/cache"
			}
		}
		if dir != "" {
			c = cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		} else {
			c = cache.NewMemoryCache(cfg.Cache.MemoryTTL, cfg.Cache.MemoryTTL)
		}
	}

	return pipeline.New(cfg, caps, c), warnings, nil
}
