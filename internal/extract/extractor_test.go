package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"veridict/internal/model"
)

// fakeGenerator returns scripted claims per input text
type fakeGenerator struct {
	byInput map[string][]string
	all     []string
	err     error
	calls   int
}

func (f *fakeGenerator) GenerateClaims(ctx context.Context, text string, maxClaims int) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.byInput != nil {
		return f.byInput[text], nil
	}
	return f.all, nil
}

func TestExtract_StagedMode(t *testing.T) {
	text := "The dam was built in 1936. What a view! It generates 4 billion kWh annually. Tourists love it."

	gen := &fakeGenerator{byInput: map[string][]string{
		"The dam was built in 1936.":           {"The dam was built in 1936"},
		"It generates 4 billion kWh annually.": {"The dam generates 4 billion kWh annually"},
	}}
	classifier := &fakeCheckworthy{flags: []bool{true, false, true, false}}

	e := NewClaimExtractor(gen, NewCheckworthyFilter(classifier, false), NewDeduplicator(0.85), 10, true, false)

	result, err := e.Extract(context.Background(), text)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Stats.SentencesConsidered != 4 {
		t.Errorf("Expected 4 sentences considered, got %d", result.Stats.SentencesConsidered)
	}
	if result.Stats.SentencesFiltered != 2 {
		t.Errorf("Expected 2 sentences filtered, got %d", result.Stats.SentencesFiltered)
	}
	if len(result.Claims) != 2 {
		t.Fatalf("Expected 2 claims, got %d", len(result.Claims))
	}
	if result.Claims[0].Sentence != 0 || result.Claims[1].Sentence != 2 {
		t.Errorf("Expected claims attributed to sentences 0 and 2, got %d and %d",
			result.Claims[0].Sentence, result.Claims[1].Sentence)
	}
	for _, c := range result.Claims {
		if c.Stage != model.StageFiltered {
			t.Errorf("Expected staged claims marked filtered, got %q", c.Stage)
		}
	}
}

func TestExtract_SimpleMode(t *testing.T) {
	text := "The dam was built in 1936. It generates power."

	gen := &fakeGenerator{all: []string{"The dam was built in 1936", "The dam generates power"}}
	e := NewClaimExtractor(gen, NewCheckworthyFilter(nil, false), NewDeduplicator(0.85), 10, false, false)

	result, err := e.Extract(context.Background(), text)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gen.calls != 1 {
		t.Errorf("Expected a single generative call in simple mode, got %d", gen.calls)
	}
	if len(result.Claims) != 2 {
		t.Fatalf("Expected 2 claims, got %d", len(result.Claims))
	}
	for _, c := range result.Claims {
		if c.Stage != model.StageSimple {
			t.Errorf("Expected simple stage, got %q", c.Stage)
		}
	}
	if result.Claims[0].Sentence != 0 {
		t.Errorf("Expected first claim attributed to sentence 0, got %d", result.Claims[0].Sentence)
	}
	if result.Claims[1].Sentence != 1 {
		t.Errorf("Expected second claim attributed to sentence 1, got %d", result.Claims[1].Sentence)
	}
}

func TestExtract_MaxClaimsTruncation(t *testing.T) {
	var many []string
	for i := 0; i < 8; i++ {
		many = append(many, "Claim number "+strings.Repeat("x", i+1))
	}

	gen := &fakeGenerator{all: many}
	e := NewClaimExtractor(gen, NewCheckworthyFilter(nil, false), NewDeduplicator(0.85), 3, false, false)

	result, err := e.Extract(context.Background(), "Some text. More text.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Stats.ClaimsRaw != 3 {
		t.Errorf("Expected raw claims capped at 3, got %d", result.Stats.ClaimsRaw)
	}
	if len(result.Claims) != 3 {
		t.Errorf("Expected 3 claims, got %d", len(result.Claims))
	}
	if result.Claims[0].Text != many[0] {
		t.Errorf("Expected positional truncation to keep earliest claims, got %q", result.Claims[0].Text)
	}
}

func TestExtract_GeneratorFailureDegrades(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("provider down")}
	e := NewClaimExtractor(gen, NewCheckworthyFilter(nil, false), NewDeduplicator(0.85), 10, false, false)

	result, err := e.Extract(context.Background(), "A sentence. Another one.")
	if err != nil {
		t.Fatalf("Expected graceful degradation, got %v", err)
	}

	if len(result.Claims) != 0 {
		t.Errorf("Expected no claims on generator failure, got %d", len(result.Claims))
	}
	if result.Stats.SentencesConsidered != 2 {
		t.Errorf("Expected stats still populated, got %d sentences", result.Stats.SentencesConsidered)
	}
}

func TestExtract_NilGenerator(t *testing.T) {
	e := NewClaimExtractor(nil, NewCheckworthyFilter(nil, false), NewDeduplicator(0.85), 10, true, false)

	result, err := e.Extract(context.Background(), "A sentence. Another one.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(result.Claims) != 0 {
		t.Errorf("Expected no claims without a generator, got %d", len(result.Claims))
	}
}

func TestExtract_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &fakeGenerator{all: []string{"A claim"}}
	e := NewClaimExtractor(gen, NewCheckworthyFilter(nil, false), NewDeduplicator(0.85), 10, false, false)

	if _, err := e.Extract(ctx, "A sentence."); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestExtract_StagedBudgetAcrossSentences(t *testing.T) {
	text := "First fact here. Second fact here. Third fact here."

	gen := &fakeGenerator{byInput: map[string][]string{
		"First fact here.":  {"Alpha statement one", "Beta statement two"},
		"Second fact here.": {"Gamma statement three"},
		"Third fact here.":  {"Delta statement four"},
	}}
	e := NewClaimExtractor(gen, NewCheckworthyFilter(nil, false), NewDeduplicator(0.85), 3, true, false)

	result, err := e.Extract(context.Background(), text)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(result.Claims) != 3 {
		t.Errorf("Expected claim budget of 3 enforced, got %d", len(result.Claims))
	}
	if gen.calls > 2 {
		t.Errorf("Expected extraction to stop once the budget was reached, got %d calls", gen.calls)
	}
}
