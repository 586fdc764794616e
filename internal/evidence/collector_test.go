package evidence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"veridict/internal/model"
)

// fakeSearcher returns one passage echoing the query, or fails
type fakeSearcher struct {
	err   error
	delay time.Duration
}

func (f *fakeSearcher) Search(ctx context.Context, query string, topK int) ([]model.Passage, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return []model.Passage{{Text: "passage for " + query, Source: "corpus", Score: 0.9}}, nil
}

// fakeWebSearcher records queries and returns one snippet per call
type fakeWebSearcher struct {
	err     error
	queries atomic.Int32
}

func (f *fakeWebSearcher) Search(ctx context.Context, query string, maxResults int) ([]model.SearchResult, error) {
	f.queries.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []model.SearchResult{{Title: "hit", URL: "https://example.com", Snippet: "snippet for " + query}}, nil
}

func claimsOf(n int) []model.Claim {
	claims := make([]model.Claim, n)
	for i := range claims {
		claims[i] = model.Claim{Text: fmt.Sprintf("claim number %d", i), Sentence: i}
	}
	return claims
}

func TestCollect_BothSignals(t *testing.T) {
	c := NewCollector(&fakeSearcher{}, &fakeWebSearcher{}, nil, nil, Options{})

	record := c.Collect(context.Background(), model.Claim{Text: "the dam was built in 1936"})

	if len(record.Passages) != 1 {
		t.Errorf("Expected 1 passage, got %d", len(record.Passages))
	}
	if len(record.Snippets) != 1 {
		t.Errorf("Expected 1 snippet, got %d", len(record.Snippets))
	}
	if !strings.Contains(record.Snippets[0].Snippet, "Is this claim true or false? Fact-check:") {
		t.Errorf("Expected fact-check phrasing in query, got %q", record.Snippets[0].Snippet)
	}
}

func TestCollect_PartialFailure(t *testing.T) {
	c := NewCollector(&fakeSearcher{err: errors.New("index down")}, &fakeWebSearcher{}, nil, nil, Options{})

	record := c.Collect(context.Background(), model.Claim{Text: "some claim"})

	if record.Passages == nil || len(record.Passages) != 0 {
		t.Errorf("Expected empty non-nil passages on retrieval failure, got %v", record.Passages)
	}
	if len(record.Snippets) != 1 {
		t.Errorf("Expected web search to succeed independently, got %d snippets", len(record.Snippets))
	}
}

func TestCollect_NoBackends(t *testing.T) {
	c := NewCollector(nil, nil, nil, nil, Options{})

	record := c.Collect(context.Background(), model.Claim{Text: "some claim"})

	if record.Passages == nil || record.Snippets == nil {
		t.Error("Expected well-formed record with empty slices")
	}
	if record.HasEvidence() {
		t.Error("Expected no evidence without backends")
	}
}

func TestCollectAll_PreservesClaimOrder(t *testing.T) {
	c := NewCollector(&fakeSearcher{delay: time.Millisecond}, &fakeWebSearcher{}, nil, nil, Options{})

	claims := claimsOf(8)
	records, err := c.CollectAll(context.Background(), claims, 4)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(records) != len(claims) {
		t.Fatalf("Expected %d records, got %d", len(claims), len(records))
	}
	for i, r := range records {
		if r.Claim.Text != claims[i].Text {
			t.Errorf("Expected record %d for %q, got %q", i, claims[i].Text, r.Claim.Text)
		}
	}
}

func TestCollectAll_Empty(t *testing.T) {
	c := NewCollector(&fakeSearcher{}, &fakeWebSearcher{}, nil, nil, Options{})

	records, err := c.CollectAll(context.Background(), nil, 4)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v", records)
	}
}

func TestCollectAll_Cancellation(t *testing.T) {
	c := NewCollector(&fakeSearcher{delay: 50 * time.Millisecond}, &fakeWebSearcher{}, nil, nil, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.CollectAll(ctx, claimsOf(4), 2); err == nil {
		t.Error("Expected error on cancelled context")
	}
}

func TestFactCheckQuery(t *testing.T) {
	got := FactCheckQuery("the dam was built in 1936")
	want := "Is this claim true or false? Fact-check: the dam was built in 1936"

	if got != want {
		t.Errorf("FactCheckQuery = %q, want %q", got, want)
	}
}
