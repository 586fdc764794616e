package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"veridict/internal/model"
)

// Renderer writes analysis reports as JSON, Markdown, or a terminal summary
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a Renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON to the given path
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes a human-readable Markdown report to the given path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Fact-Check Report: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "**Source:** %s  \n", report.Source)
	fmt.Fprintf(&b, "**Analyzed:** %s\n\n", report.AnalyzedAt.Format(time.RFC3339))

	fmt.Fprintf(&b, "## Verdict: %s %s\n\n", statusEmoji(report.Verdict.DisplayStatus), report.Verdict.DisplayStatus)
	fmt.Fprintf(&b, "%s\n\n", report.Verdict.Explanation)

	fmt.Fprintf(&b, "**Classification:** %s (confidence %.2f)\n\n",
		report.Classification.Label, report.Classification.Confidence)

	if len(report.Verdict.KeyFlags) > 0 {
		b.WriteString("## Key Flags\n\n")
		for _, flag := range report.Verdict.KeyFlags {
			fmt.Fprintf(&b, "- %s\n", flag)
		}
		b.WriteString("\n")
	}

	if len(report.Verdict.PerClaim) > 0 {
		b.WriteString("## Claims\n\n")
		for i, cv := range report.Verdict.PerClaim {
			fmt.Fprintf(&b, "### %d. %s %s\n\n", i+1, verdictEmoji(cv.Verdict), cv.Claim.Text)
			fmt.Fprintf(&b, "**Verdict:** %s  \n", cv.Verdict)
			fmt.Fprintf(&b, "%s\n\n", cv.Rationale)
			if len(cv.Sources) > 0 {
				b.WriteString("Sources:\n\n")
				for _, src := range cv.Sources {
					fmt.Fprintf(&b, "- %s\n", src)
				}
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("## Pipeline Stats\n\n")
	fmt.Fprintf(&b, "| Stage | Count |\n|-------|-------|\n")
	fmt.Fprintf(&b, "| Sentences considered | %d |\n", report.Extraction.SentencesConsidered)
	fmt.Fprintf(&b, "| Sentences filtered | %d |\n", report.Extraction.SentencesFiltered)
	fmt.Fprintf(&b, "| Raw claims | %d |\n", report.Extraction.ClaimsRaw)
	fmt.Fprintf(&b, "| Final claims | %d |\n", report.Extraction.ClaimsFinal)
	b.WriteString("\n")

	if len(report.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by Veridict. Verdicts combine a binary article classifier with per-claim evidence heuristics; treat them as signals, not proof.\n")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderSummary prints a short human summary to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Printf("%s  %s\n", statusEmoji(report.Verdict.DisplayStatus), report.Subject)
	fmt.Printf("Status: %s | Classifier: %s (%.2f)\n",
		report.Verdict.DisplayStatus, report.Classification.Label, report.Classification.Confidence)
	fmt.Println()
	fmt.Println(report.Verdict.Explanation)

	if len(report.Verdict.PerClaim) > 0 {
		fmt.Println()
		fmt.Println("Claims:")
		for _, cv := range report.Verdict.PerClaim {
			fmt.Printf("  %s %s: %s\n", verdictEmoji(cv.Verdict), cv.Verdict, cv.Claim.Text)
		}
	}

	for _, w := range report.Warnings {
		fmt.Printf("⚠ %s\n", w)
	}
	fmt.Println()
}

// RenderReport renders a report to the configured outputs and always
// prints the stdout summary
func (p *Pipeline) RenderReport(report *model.Report, renderer *Renderer, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	renderer.RenderSummary(report)
	return nil
}

func statusEmoji(status model.DisplayStatus) string {
	switch status {
	case model.StatusVerified:
		return "✅"
	case model.StatusPartiallyVerified:
		return "🟡"
	case model.StatusMisleading:
		return "⚠️"
	case model.StatusFalse:
		return "❌"
	default:
		return "❓"
	}
}

func verdictEmoji(v model.Verdict) string {
	switch v {
	case model.VerdictTrue:
		return "✅"
	case model.VerdictFalse:
		return "❌"
	case model.VerdictPartiallyTrue:
		return "⚠️"
	default:
		return "❓"
	}
}
