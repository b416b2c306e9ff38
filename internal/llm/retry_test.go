package llm

import (
	"context"
	"errors"
	"testing"
)

func TestWithRetryTransientError(t *testing.T) {
	calls := 0
	base := Func(func(ctx context.Context, prompt string) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("connection reset by peer")
		}
		return "ok", nil
	})

	got, err := WithRetry(base, "req-1").GenerateText(context.Background(), "hello")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "ok" {
		t.Fatalf("got %q", got)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestWithRetryPermanentError(t *testing.T) {
	calls := 0
	permanent := errors.New("http status 400: bad request")
	base := Func(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", permanent
	})

	_, err := WithRetry(base, "req-2").GenerateText(context.Background(), "hello")
	if !errors.Is(err, permanent) {
		t.Fatalf("got %v, want permanent error", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{context.DeadlineExceeded, true},
		{errors.New("http status 503: overloaded"), true},
		{errors.New("broken pipe"), true},
		{errors.New("http status 401: unauthorized"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := shouldRetry(tt.err); got != tt.want {
			t.Errorf("shouldRetry(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
