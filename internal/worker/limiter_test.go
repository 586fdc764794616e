package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_WaitAllowsBurst(t *testing.T) {
	l := NewLimiter(10, 5)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := l.Wait(ctx, "https://a.example/page"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("expected burst to pass immediately, took %v", elapsed)
	}
}

func TestLimiter_PerHostIsolation(t *testing.T) {
	l := NewLimiter(1, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Exhaust host A's burst, then host B must still pass immediately
	if err := l.Wait(ctx, "https://a.example/x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Now()
	if err := l.Wait(ctx, "https://b.example/y"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("expected independent per-host limits, took %v", elapsed)
	}
}

func TestLimiter_WaitHost(t *testing.T) {
	l := NewLimiter(10, 2)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := l.WaitHost(ctx, "websearch"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLimiter_Cancellation(t *testing.T) {
	l := NewLimiter(0.1, 1)

	ctx, cancel := context.WithCancel(context.Background())

	// Consume the burst, then cancel mid-wait
	if err := l.Wait(ctx, "https://a.example/x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	if err := l.Wait(ctx, "https://a.example/x"); err == nil {
		t.Error("expected error when context is cancelled during wait")
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	l := NewLimiter(1, 1)
	l.SetHostRate("slow.example", 100, 10)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := l.WaitHost(ctx, "slow.example"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 300*time.Millisecond {
		t.Errorf("expected custom host rate to apply, took %v", elapsed)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	l := NewLimiter(100, 10)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	if err := l.WaitWithDelay(ctx, "https://a.example/x", 100*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 90*time.Millisecond {
		t.Errorf("expected crawl delay honored, took only %v", elapsed)
	}
}

func TestExtractHost(t *testing.T) {
	host, err := extractHost("https://news.example.com/path?q=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if host != "news.example.com" {
		t.Errorf("expected news.example.com, got %q", host)
	}
}
