package extract

import (
	"context"
	"errors"
	"testing"

	"veridict/internal/model"
)

// fakeCheckworthy is a scripted checkworthiness classifier
type fakeCheckworthy struct {
	flags []bool
	err   error
}

func (f *fakeCheckworthy) ClassifyMany(ctx context.Context, sentences []string) ([]bool, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.flags, nil
}

func sentencesOf(texts ...string) []model.Sentence {
	out := make([]model.Sentence, len(texts))
	for i, text := range texts {
		out[i] = model.Sentence{Index: i, Text: text}
	}
	return out
}

func TestFilter_KeepsFlaggedSentences(t *testing.T) {
	classifier := &fakeCheckworthy{flags: []bool{true, false, true}}
	f := NewCheckworthyFilter(classifier, false)

	in := sentencesOf(
		"The GDP grew by 3 percent last year.",
		"What a lovely morning!",
		"The reservoir holds 2 million liters.",
	)

	kept := f.Filter(context.Background(), in)

	if len(kept) != 2 {
		t.Fatalf("Expected 2 kept sentences, got %d", len(kept))
	}
	if kept[0].Index != 0 || kept[1].Index != 2 {
		t.Errorf("Expected original indices preserved, got %d and %d", kept[0].Index, kept[1].Index)
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	f := NewCheckworthyFilter(&fakeCheckworthy{}, false)

	kept := f.Filter(context.Background(), nil)
	if kept == nil || len(kept) != 0 {
		t.Errorf("Expected empty non-nil result, got %v", kept)
	}
}

func TestFilter_NilClassifierPassesAll(t *testing.T) {
	f := NewCheckworthyFilter(nil, false)

	in := sentencesOf("One.", "Two.")
	kept := f.Filter(context.Background(), in)

	if len(kept) != 2 {
		t.Errorf("Expected all sentences kept without a classifier, got %d", len(kept))
	}
}

func TestFilter_ErrorPassesAll(t *testing.T) {
	classifier := &fakeCheckworthy{err: errors.New("backend down")}
	f := NewCheckworthyFilter(classifier, false)

	in := sentencesOf("One.", "Two.", "Three.")
	kept := f.Filter(context.Background(), in)

	if len(kept) != 3 {
		t.Errorf("Expected all sentences kept on classifier failure, got %d", len(kept))
	}
}

func TestFilter_LengthMismatchPassesAll(t *testing.T) {
	classifier := &fakeCheckworthy{flags: []bool{true}}
	f := NewCheckworthyFilter(classifier, false)

	in := sentencesOf("One.", "Two.", "Three.")
	kept := f.Filter(context.Background(), in)

	if len(kept) != 3 {
		t.Errorf("Expected all sentences kept on malformed response, got %d", len(kept))
	}
}

func TestFilter_NoneCheckworthy(t *testing.T) {
	classifier := &fakeCheckworthy{flags: []bool{false, false}}
	f := NewCheckworthyFilter(classifier, false)

	in := sentencesOf("One.", "Two.")
	kept := f.Filter(context.Background(), in)

	if kept == nil || len(kept) != 0 {
		t.Errorf("Expected empty non-nil result, got %v", kept)
	}
}
