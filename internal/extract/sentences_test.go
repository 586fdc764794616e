package extract

import (
	"strings"
	"testing"
)

func TestSplitSentences_Basic(t *testing.T) {
	text := "The Eiffel Tower is in Paris. It was completed in 1889! Is it the tallest structure in France?"

	sentences := SplitSentences(text)

	if len(sentences) != 3 {
		t.Fatalf("Expected 3 sentences, got %d", len(sentences))
	}

	if sentences[0].Text != "The Eiffel Tower is in Paris." {
		t.Errorf("Unexpected first sentence: %q", sentences[0].Text)
	}
	if sentences[2].Text != "Is it the tallest structure in France?" {
		t.Errorf("Unexpected last sentence: %q", sentences[2].Text)
	}

	for i, s := range sentences {
		if s.Index != i {
			t.Errorf("Expected index %d, got %d", i, s.Index)
		}
	}
}

func TestSplitSentences_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n"} {
		if got := SplitSentences(input); len(got) != 0 {
			t.Errorf("Expected no sentences for %q, got %d", input, len(got))
		}
	}
}

func TestSplitSentences_NoTerminator(t *testing.T) {
	sentences := SplitSentences("a headline without punctuation")

	if len(sentences) != 1 {
		t.Fatalf("Expected 1 sentence, got %d", len(sentences))
	}
	if sentences[0].Text != "a headline without punctuation" {
		t.Errorf("Unexpected sentence text: %q", sentences[0].Text)
	}
}

func TestSplitSentences_Abbreviations(t *testing.T) {
	text := "Dr. Smith studies the U.S. economy. Growth slowed last year."

	sentences := SplitSentences(text)

	if len(sentences) != 2 {
		t.Fatalf("Expected 2 sentences, got %d", len(sentences))
	}
	if sentences[0].Text != "Dr. Smith studies the U.S. economy." {
		t.Errorf("Expected abbreviations kept in one sentence, got %q", sentences[0].Text)
	}
	if sentences[1].Text != "Growth slowed last year." {
		t.Errorf("Unexpected second sentence: %q", sentences[1].Text)
	}
}

func TestSplitSentences_NewlinesTreatedAsSpaces(t *testing.T) {
	sentences := SplitSentences("First sentence\ncontinues here. Second one.")

	if len(sentences) != 2 {
		t.Fatalf("Expected 2 sentences, got %d", len(sentences))
	}
	if !strings.Contains(sentences[0].Text, "continues here") {
		t.Errorf("Expected newline-joined sentence, got %q", sentences[0].Text)
	}
}

func TestVisibleText_SkipsScriptsAndStyles(t *testing.T) {
	page := `<html><head><style>body { color: red; }</style></head>
	<body>
		<script>var tracking = true;</script>
		<p>Visible paragraph one.</p>
		<noscript>enable JS</noscript>
		<p>Visible paragraph two.</p>
	</body></html>`

	text, err := VisibleText(page)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(text, "Visible paragraph one.") || !strings.Contains(text, "Visible paragraph two.") {
		t.Errorf("Expected paragraphs in output, got %q", text)
	}
	if strings.Contains(text, "tracking") || strings.Contains(text, "color: red") || strings.Contains(text, "enable JS") {
		t.Errorf("Expected scripts/styles/noscript to be skipped, got %q", text)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"<!DOCTYPE html><html><body>x</body></html>", true},
		{"<html lang=\"en\">", true},
		{"Plain article text. Nothing else.", false},
		{"x < y and y > z in a math article.", false},
	}

	for _, tt := range tests {
		if got := LooksLikeHTML(tt.content); got != tt.want {
			t.Errorf("LooksLikeHTML(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}
