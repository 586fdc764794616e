package capability

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"veridict/internal/model"
)

// OpenAICapability implements the generative and classification
// capabilities on top of OpenAI-compatible chat completion endpoints.
type OpenAICapability struct {
	client *openai.Client
	config Config
}

// NewOpenAICapability creates a new OpenAI-backed capability adapter
func NewOpenAICapability(config Config) (*OpenAICapability, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAICapability{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (p *OpenAICapability) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (p *OpenAICapability) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	return err == nil
}

// Classify produces the article-level FAKE/REAL signal
func (p *OpenAICapability) Classify(ctx context.Context, text string) (model.Classification, error) {
	prompt := fmt.Sprintf(`Classify the news article below as FAKE or REAL.
Respond with exactly two lines:
label: FAKE or REAL
confidence: a number between 0 and 1

ARTICLE:
"""
%s
"""`, truncate(text, 6000))

	reply, err := p.complete(ctx, "You are a news integrity classifier.", prompt, 0)
	if err != nil {
		return model.Classification{}, err
	}

	cls := model.Classification{Label: model.LabelReal, Confidence: 0.5}
	for _, line := range strings.Split(reply, "\n") {
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "label":
			if strings.EqualFold(val, "FAKE") {
				cls.Label = model.LabelFake
			}
		case "confidence":
			if f, err := strconv.ParseFloat(val, 64); err == nil && f >= 0 && f <= 1 {
				cls.Confidence = f
			}
		}
	}
	return cls, nil
}

// ClassifyMany decides check-worthiness for all sentences in one call
func (p *OpenAICapability) ClassifyMany(ctx context.Context, sentences []string) ([]bool, error) {
	if len(sentences) == 0 {
		return []bool{}, nil
	}

	var sb strings.Builder
	for i, s := range sentences {
		fmt.Fprintf(&sb, "%d. %s\n", i, s)
	}

	prompt := fmt.Sprintf(`For each numbered sentence below, decide whether it contains a
verifiable factual assertion worth fact-checking. Opinions, predictions,
transitions and summaries are not check-worthy.

Respond with a JSON array of booleans, one per sentence, in order.

SENTENCES:
%s`, sb.String())

	reply, err := p.complete(ctx, "You select check-worthy sentences.", prompt, 0)
	if err != nil {
		return nil, err
	}

	block := StripFences(reply)
	start := strings.Index(block, "[")
	end := strings.LastIndex(block, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var flags []bool
	if err := json.Unmarshal([]byte(block[start:end+1]), &flags); err != nil {
		return nil, fmt.Errorf("parse checkworthy response: %w", err)
	}
	if len(flags) != len(sentences) {
		return nil, fmt.Errorf("expected %d flags, got %d", len(sentences), len(flags))
	}
	return flags, nil
}

// GenerateClaims phrases text into up to maxClaims atomic claim strings
func (p *OpenAICapability) GenerateClaims(ctx context.Context, text string, maxClaims int) ([]string, error) {
	prompt := fmt.Sprintf(`Extract up to %d atomic factual claims from the text below.
Each claim must be a single, self-contained statement verifiable without
the surrounding context. Respond with a JSON array of strings.

TEXT:
"""
%s
"""`, maxClaims, truncate(text, 6000))

	reply, err := p.complete(ctx, "You extract atomic factual claims.", prompt, 0)
	if err != nil {
		return nil, err
	}

	claims := ParseClaimList(reply)
	if len(claims) > maxClaims {
		claims = claims[:maxClaims]
	}
	return claims, nil
}

// Generate renders the final explanation from the aggregated evidence
func (p *OpenAICapability) Generate(ctx context.Context, req ExplainRequest) (string, error) {
	return p.complete(ctx, "You are a professional fact-checker.", BuildExplainPrompt(req), 0.3)
}

// complete runs one chat completion with the adapter's timeout
func (p *OpenAICapability) complete(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	m := p.config.Model
	if m == "" {
		m = openai.GPT4oMini
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: m,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// BuildExplainPrompt constructs the fact-checker prompt carrying the
// classification, claims, evidence and per-claim verdicts
func BuildExplainPrompt(req ExplainRequest) string {
	alert := "Likely Real"
	if req.Classification.Label == model.LabelFake {
		alert = "Potentially Fake"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `Role: You are a professional Fact-Checker.
Determine the factual accuracy of the news article below for a confused reader.

Input Data:
1. Automated Alert: **%s** (Confidence: %.2f).
   (Treat this as a lead, but verify it against the evidence.)
2. Independent evidence is provided below.

---
ARTICLE TITLE: %s

ARTICLE TEXT:
"""
%s
"""
---
%s
---

INSTRUCTIONS:
1. Compare the claims against the independent evidence.
2. Decide whether the evidence supports or contradicts the text.
3. Write the response for the user.

OUTPUT FORMAT (JSON):
Strictly output a JSON object with this structure. "thought_process" must be the FIRST key.
{
    "thought_process": "Step-by-step reasoning over the evidence.",
    "display_status": "Short verdict (e.g., 'False', 'Verified', 'Misleading')",
    "explanation": "2-3 clear sentences for the user, quoting the evidence directly.",
    "key_flags": ["Specific contradiction or confirmation", "Tone or framing flag"],
    "claim_analysis": [
        {
            "claim": "The specific claim text",
            "status": "supported / contradicted / unverified / partially_true",
            "evidence_summary": "What the evidence shows"
        }
    ]
}
`, alert, req.Classification.Confidence, req.Title, truncate(req.Text, 4000), formatEvidenceSection(req))

	return sb.String()
}

// formatEvidenceSection formats claims, passages and verdicts for the prompt
func formatEvidenceSection(req ExplainRequest) string {
	if len(req.Claims) == 0 {
		return "No claims were extracted from this article."
	}

	byClaim := make(map[string]model.EvidenceRecord, len(req.Evidence))
	for _, rec := range req.Evidence {
		byClaim[rec.Claim.Text] = rec
	}
	verdictByClaim := make(map[string]model.ClaimVerdict, len(req.Verdicts))
	for _, v := range req.Verdicts {
		verdictByClaim[v.Claim.Text] = v
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Extracted Claims:** %d claims found\n", len(req.Claims))

	for i, claim := range req.Claims {
		fmt.Fprintf(&sb, "\n### Claim %d: %q\n", i+1, claim.Text)

		rec := byClaim[claim.Text]
		if len(rec.Passages) > 0 {
			sb.WriteString("**Retrieved Evidence:**\n")
			for j, p := range rec.Passages {
				if j >= 2 {
					break
				}
				fmt.Fprintf(&sb, "  %d. [%s]: %s\n", j+1, p.Source, truncate(p.Text, 200))
			}
		} else {
			sb.WriteString("**Retrieved Evidence:** No relevant passages found\n")
		}

		if v, ok := verdictByClaim[claim.Text]; ok {
			fmt.Fprintf(&sb, "**Fact-Check Verdict:** %s - %s\n", v.Verdict, v.Rationale)
			if len(v.Sources) > 0 {
				fmt.Fprintf(&sb, "  Sources: %s\n", strings.Join(v.Sources, ", "))
			}
		}
	}

	return sb.String()
}
