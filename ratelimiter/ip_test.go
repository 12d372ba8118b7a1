package ratelimiter

import (
	"testing"
	"time"
)

func TestNewIPRateLimiter_Invalid(t *testing.T) {
	if _, err := NewIPRateLimiter(0, 0); err == nil {
		t.Error("expected error for non-positive ceiling")
	}
}

func TestIPRateLimiter_WindowCeiling(t *testing.T) {
	limiter, err := NewIPRateLimiter(5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 5; i++ {
		if !limiter.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("1.2.3.4") {
		t.Error("6th request within the window should be denied")
	}

	// A different address has an independent count.
	if !limiter.Allow("5.6.7.8") {
		t.Error("a different address should be unaffected")
	}
}

func TestIPRateLimiter_DenialNotRecorded(t *testing.T) {
	limiter, err := NewIPRateLimiter(2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	limiter.Allow("1.2.3.4")
	limiter.Allow("1.2.3.4")
	limiter.Allow("1.2.3.4") // denied

	if got := len(limiter.requests["1.2.3.4"]); got != 2 {
		t.Errorf("denied requests must not be recorded, log has %d entries", got)
	}
}

func TestIPRateLimiter_Remaining(t *testing.T) {
	limiter, err := NewIPRateLimiter(5, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := limiter.Remaining("1.2.3.4"); got != 5 {
		t.Errorf("expected 5 remaining for a fresh address, got %d", got)
	}

	limiter.Allow("1.2.3.4")
	limiter.Allow("1.2.3.4")

	if got := limiter.Remaining("1.2.3.4"); got != 3 {
		t.Errorf("expected 3 remaining, got %d", got)
	}

	// Remaining never goes negative.
	for i := 0; i < 10; i++ {
		limiter.Allow("1.2.3.4")
	}
	if got := limiter.Remaining("1.2.3.4"); got != 0 {
		t.Errorf("expected 0 remaining, got %d", got)
	}
}

func TestIPRateLimiter_WindowSlides(t *testing.T) {
	limiter, err := NewIPRateLimiter(1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Plant a timestamp just outside the window.
	limiter.requests["1.2.3.4"] = []time.Time{time.Now().Add(-ipWindow - time.Second)}

	if !limiter.Allow("1.2.3.4") {
		t.Error("a request should be allowed once older entries fall out of the window")
	}
}

func TestIPRateLimiter_SweepEvictsIdleAddresses(t *testing.T) {
	limiter, err := NewIPRateLimiter(5, time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stale := time.Now().Add(-2 * ipWindow)
	limiter.requests["9.9.9.9"] = []time.Time{stale}
	limiter.lastCleanup = stale

	// Any call after the cleanup interval triggers the sweep.
	limiter.Allow("1.2.3.4")

	if _, ok := limiter.requests["9.9.9.9"]; ok {
		t.Error("idle address should have been evicted by the sweep")
	}
	if _, ok := limiter.requests["1.2.3.4"]; !ok {
		t.Error("active address must survive the sweep")
	}
}
