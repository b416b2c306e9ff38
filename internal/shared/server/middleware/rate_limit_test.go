package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowAndRefill(t *testing.T) {
	current := time.Unix(0, 0)
	limiter := NewRateLimiter(func() time.Time { return current })
	rule := RateLimitRule{Rate: 1, Burst: 2}

	for i := 0; i < 2; i++ {
		ok, _ := limiter.Allow("u|g", rule)
		if !ok {
			t.Fatalf("expected request %d within burst to be allowed", i+1)
		}
	}

	ok, retryAfter := limiter.Allow("u|g", rule)
	if ok {
		t.Fatalf("expected request beyond burst to be denied")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %v", retryAfter)
	}

	current = current.Add(2 * time.Second)
	if ok, _ := limiter.Allow("u|g", rule); !ok {
		t.Fatalf("expected request after refill to be allowed")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	current := time.Unix(0, 0)
	limiter := NewRateLimiter(func() time.Time { return current })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("a|g", rule); !ok {
		t.Fatalf("expected first key to be allowed")
	}
	if ok, _ := limiter.Allow("b|g", rule); !ok {
		t.Fatalf("expected second key to be allowed")
	}
	if ok, _ := limiter.Allow("a|g", rule); ok {
		t.Fatalf("expected exhausted key to be denied")
	}
}
