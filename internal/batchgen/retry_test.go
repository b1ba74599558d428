package batchgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"flowz-server/internal/providers/genai"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		kind      FailureKind
		retryable bool
	}{
		{"status 429", &genai.APIError{StatusCode: 429}, KindQuotaExceeded, true},
		{"quota message", errors.New("daily quota exhausted"), KindQuotaExceeded, true},
		{"rate limit message", errors.New("rate limit hit"), KindQuotaExceeded, true},
		{"status 503", &genai.APIError{StatusCode: 503}, KindServiceUnavailable, true},
		{"unavailable message", errors.New("model is unavailable"), KindServiceUnavailable, true},
		{"safety", errors.New("response stopped for safety reasons"), KindContentBlocked, false},
		{"blocked", &genai.APIError{StatusCode: 400, Message: "prompt blocked"}, KindContentBlocked, false},
		{"harmful", errors.New("potentially harmful content"), KindContentBlocked, false},
		{"timeout", errors.New("request timeout"), KindTimeout, true},
		{"deadline", context.DeadlineExceeded, KindTimeout, true},
		{"unknown", errors.New("connection reset"), KindUnknown, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, retryable := Classify(tc.err)
			if kind != tc.kind || retryable != tc.retryable {
				t.Fatalf("Classify(%v) = %s/%v, want %s/%v", tc.err, kind, retryable, tc.kind, tc.retryable)
			}
		})
	}
}

func TestClassifyOrderQuotaBeforeUnavailable(t *testing.T) {
	// A 429 whose message also mentions availability still counts as quota.
	kind, _ := Classify(&genai.APIError{StatusCode: 429, Message: "service unavailable"})
	if kind != KindQuotaExceeded {
		t.Fatalf("kind = %s, want %s", kind, KindQuotaExceeded)
	}
}

func TestBackoffDelayBounds(t *testing.T) {
	expected := []time.Duration{
		time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		10 * time.Second,
		10 * time.Second,
	}
	for attempt, base := range expected {
		for i := 0; i < 50; i++ {
			d := backoffDelay(attempt)
			lo := time.Duration(float64(base) * (1 - jitterRatio))
			hi := time.Duration(float64(base) * (1 + jitterRatio))
			if d < lo || d > hi {
				t.Fatalf("backoffDelay(%d) = %s, want within [%s, %s]", attempt, d, lo, hi)
			}
		}
	}
}

func retryHarness(script []scriptEntry) (*Orchestrator, *fakeGenerator, *[]time.Duration) {
	gen := &fakeGenerator{script: script}
	o := New(gen, newFakeJobs(), newFakeProducts(), nil, testLogger())
	var slept []time.Duration
	o.sleep = func(d time.Duration) { slept = append(slept, d) }
	return o, gen, &slept
}

func TestGenerateWithRetryExhaustsRetryable(t *testing.T) {
	o, gen, slept := retryHarness([]scriptEntry{{err: errors.New("request timeout")}})

	_, err := o.generateWithRetry(context.Background(), "job-1", func(ctx context.Context) (string, error) {
		return gen.GenerateText(ctx, genai.TextRequest{})
	})
	if err == nil {
		t.Fatal("expected error after exhaustion")
	}
	if gen.textCalls != maxRetries+1 {
		t.Fatalf("calls = %d, want %d", gen.textCalls, maxRetries+1)
	}
	if len(*slept) != maxRetries {
		t.Fatalf("sleeps = %d, want %d", len(*slept), maxRetries)
	}
}

func TestGenerateWithRetryStopsOnContentBlock(t *testing.T) {
	o, gen, slept := retryHarness([]scriptEntry{{err: errors.New("blocked by safety filter")}})

	_, err := o.generateWithRetry(context.Background(), "job-1", func(ctx context.Context) (string, error) {
		return gen.GenerateText(ctx, genai.TextRequest{})
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if gen.textCalls != 1 {
		t.Fatalf("calls = %d, want 1", gen.textCalls)
	}
	if len(*slept) != 0 {
		t.Fatalf("sleeps = %d, want 0", len(*slept))
	}
}

func TestGenerateWithRetryRecovers(t *testing.T) {
	o, gen, slept := retryHarness([]scriptEntry{
		{err: &genai.APIError{StatusCode: 503}},
		{err: &genai.APIError{StatusCode: 429}},
		{text: "recovered"},
	})

	text, err := o.generateWithRetry(context.Background(), "job-1", func(ctx context.Context) (string, error) {
		return gen.GenerateText(ctx, genai.TextRequest{})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "recovered" {
		t.Fatalf("text = %q", text)
	}
	if gen.textCalls != 3 {
		t.Fatalf("calls = %d, want 3", gen.textCalls)
	}
	if len(*slept) != 2 {
		t.Fatalf("sleeps = %d, want 2", len(*slept))
	}
}
