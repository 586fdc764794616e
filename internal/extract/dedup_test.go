package extract

import (
	"testing"

	"veridict/internal/model"
)

func claimsOf(texts ...string) []model.Claim {
	claims := make([]model.Claim, len(texts))
	for i, text := range texts {
		claims[i] = model.Claim{Text: text, Sentence: i, Stage: model.StageFiltered}
	}
	return claims
}

func TestDedup_MergesNearDuplicates(t *testing.T) {
	d := NewDeduplicator(0.85)

	claims := claimsOf(
		"The Eiffel Tower was completed in 1889",
		"The Eiffel Tower was completed in 1889.",
		"Paris is the capital of France",
	)

	out := d.Dedup(claims)

	if len(out) != 2 {
		t.Fatalf("Expected 2 claims after dedup, got %d", len(out))
	}
	if out[0].Text != claims[0].Text {
		t.Errorf("Expected first occurrence to win, got %q", out[0].Text)
	}
	if out[0].Stage != model.StageMerged {
		t.Errorf("Expected survivor that absorbed a duplicate to be marked merged, got %q", out[0].Stage)
	}
	if out[1].Stage != model.StageFiltered {
		t.Errorf("Expected untouched claim to keep its stage, got %q", out[1].Stage)
	}
}

func TestDedup_PreservesOrder(t *testing.T) {
	d := NewDeduplicator(0.85)

	claims := claimsOf(
		"Vaccines reduce severe illness",
		"The moon landing happened in 1969",
		"Coffee consumption is rising worldwide",
	)

	out := d.Dedup(claims)

	if len(out) != 3 {
		t.Fatalf("Expected all 3 distinct claims to survive, got %d", len(out))
	}
	for i, c := range out {
		if c.Text != claims[i].Text {
			t.Errorf("Expected order preserved at %d, got %q", i, c.Text)
		}
	}
}

func TestDedup_Idempotent(t *testing.T) {
	d := NewDeduplicator(0.85)

	claims := claimsOf(
		"The Eiffel Tower was completed in 1889",
		"The Eiffel Tower was completed in 1889!",
		"Paris is the capital of France",
		"Paris is the capital city of France",
	)

	once := d.Dedup(claims)
	twice := d.Dedup(once)

	if len(once) != len(twice) {
		t.Fatalf("Expected idempotent dedup, got %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("Expected claim %d unchanged on second pass: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestDedup_Empty(t *testing.T) {
	d := NewDeduplicator(0.85)

	out := d.Dedup(nil)
	if out == nil || len(out) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", out)
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "the tower is tall", "the tower is tall", 1.0},
		{"disjoint", "alpha beta", "gamma delta", 0.0},
		{"both empty", "", "", 1.0},
		{"one empty", "something", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(claimTokens(tt.a), claimTokens(tt.b))
			if got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := claimTokens("The Eiffel Tower was completed in 1889")
	b := claimTokens("The Eiffel Tower opened in 1889 in Paris")

	if Similarity(a, b) != Similarity(b, a) {
		t.Error("Expected similarity to be symmetric")
	}
}

func TestDedup_SurvivorsBelowThreshold(t *testing.T) {
	d := NewDeduplicator(0.5)

	claims := claimsOf(
		"The Eiffel Tower was completed in 1889",
		"The Eiffel Tower was completed in 1889 by Gustave Eiffel",
		"Paris hosts the Olympic games",
		"Paris will host the Olympic games soon",
	)

	out := d.Dedup(claims)

	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			sim := Similarity(claimTokens(out[i].Text), claimTokens(out[j].Text))
			if sim >= 0.5 {
				t.Errorf("Survivors %d and %d are above threshold: %v", i, j, sim)
			}
		}
	}
}
