package util

import (
	"testing"
	"time"
)

func TestRateLimiterPacing(t *testing.T) {
	limiter := NewRateLimiter(100)

	start := time.Now()
	for i := 0; i < 5; i++ {
		limiter.WaitTurn()
	}
	elapsed := time.Since(start)

	// Five turns at 100 rps need at least four 10ms intervals.
	if elapsed < 40*time.Millisecond {
		t.Fatalf("five turns took %v, paced too fast", elapsed)
	}
}

func TestRateLimiterBadRate(t *testing.T) {
	limiter := NewRateLimiter(0)
	if limiter.interval != time.Second {
		t.Fatalf("interval %v want 1s", limiter.interval)
	}
}
