package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"veridict/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "Veridict/0.1 (+https://github.com/veridict/veridict)",
		MaxBodyBytes: 1 << 20,
	}
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html><body><p>The dam was completed in 1936.</p></body></html>")
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig(), nil)

	result, err := fetcher.Fetch(context.Background(), server.URL+"/news/dam-story")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !strings.Contains(result.Body, "The dam was completed in 1936.") {
		t.Errorf("Unexpected body: %q", result.Body)
	}
	if result.Meta.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 in metadata, got %d", result.Meta.StatusCode)
	}
	if result.Meta.ContentType != "text/html" {
		t.Errorf("Expected content type recorded, got %q", result.Meta.ContentType)
	}
	if result.Subject != "dam story" {
		t.Errorf("Expected de-slugged subject, got %q", result.Subject)
	}
}

func TestFetch_RobotsDisallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
			return
		}
		_, _ = fmt.Fprint(w, "should not be reachable")
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig(), nil)

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/private/story"); err == nil {
		t.Error("Expected error for robots-disallowed path")
	}

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/public/story"); err != nil {
		t.Errorf("Expected allowed path to fetch, got %v", err)
	}
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig(), nil)

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/missing"); err == nil {
		t.Error("Expected error for 404 response")
	}
}

func TestFetch_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprint(w, strings.Repeat("x", 4096))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 100
	fetcher := NewFetcher(cfg, nil)

	result, err := fetcher.Fetch(context.Background(), server.URL+"/big")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(result.Body) != 100 {
		t.Errorf("Expected body truncated to 100 bytes, got %d", len(result.Body))
	}
}

func TestFetch_SendsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		gotUA = r.Header.Get("User-Agent")
		_, _ = fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig(), nil)

	if _, err := fetcher.Fetch(context.Background(), server.URL+"/a"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasPrefix(gotUA, "Veridict/") {
		t.Errorf("Expected Veridict user agent, got %q", gotUA)
	}
}
