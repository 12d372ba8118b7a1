package ratelimiter

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Config holds the parameters for a token bucket.
type Config struct {
	// Capacity is the maximum number of tokens the bucket can hold.
	Capacity int

	// RefillRate is the number of tokens added per RefillPeriod.
	RefillRate float64

	// RefillPeriod is the duration over which RefillRate tokens are added.
	RefillPeriod time.Duration
}

// DefaultConfig returns the configuration used for limiters that are
// created lazily by the registry: 10 burst tokens, refilled 1 per second.
func DefaultConfig() Config {
	return Config{
		Capacity:     10,
		RefillRate:   1,
		RefillPeriod: time.Second,
	}
}

func (c Config) validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("ratelimiter: capacity must be at least 1, got %d", c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("ratelimiter: refill rate must be positive, got %v", c.RefillRate)
	}
	if c.RefillPeriod <= 0 {
		return fmt.Errorf("ratelimiter: refill period must be positive, got %v", c.RefillPeriod)
	}
	return nil
}

// TokenBucket implements a thread-safe token bucket rate limiter.
//
// Refill is lazy: tokens are credited on demand from the elapsed time since
// the last refill, so no background timer is needed. Only the token count at
// the moment of an Acquire call matters.
type TokenBucket struct {
	mu           sync.Mutex
	capacity     int
	tokens       float64
	refillRate   float64
	refillPeriod time.Duration
	lastRefill   time.Time
}

// Ensure TokenBucket implements Limiter.
var _ Limiter = (*TokenBucket)(nil)

// NewTokenBucket creates a full bucket from the given config.
// It returns an error for a config that could never admit a request.
func NewTokenBucket(cfg Config) (*TokenBucket, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &TokenBucket{
		capacity:     cfg.Capacity,
		tokens:       float64(cfg.Capacity),
		refillRate:   cfg.RefillRate,
		refillPeriod: cfg.RefillPeriod,
		lastRefill:   time.Now(),
	}, nil
}

// Acquire attempts to consume the given number of tokens. It returns true
// if the tokens were deducted, false if the bucket has insufficient capacity.
// Nothing is deducted on denial.
//
// Requesting more tokens than the bucket's capacity is a caller error: such
// a request is denied forever, never silently capped.
func (tb *TokenBucket) Acquire(tokens int) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refillLocked(time.Now())

	if float64(tokens) <= tb.tokens {
		tb.tokens -= float64(tokens)
		return true
	}
	return false
}

// refillLocked credits whole elapsed refill periods. Caller must hold tb.mu.
func (tb *TokenBucket) refillLocked(now time.Time) {
	elapsed := now.Sub(tb.lastRefill)
	if elapsed < tb.refillPeriod {
		return
	}
	periods := float64(elapsed / tb.refillPeriod)
	tb.tokens += periods * tb.refillRate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}
	tb.lastRefill = now
}

// WaitTime returns 0 if at least one token is available, otherwise the time
// until one token becomes available at the configured refill rate.
//
// The returned value is a best-effort estimate. It may be stale immediately:
// a concurrent Acquire can spend the token before the caller acts on it, so
// callers should sleep and then retry Acquire rather than assume admission.
func (tb *TokenBucket) WaitTime() time.Duration {
	return tb.waitTimeFor(1)
}

func (tb *TokenBucket) waitTimeFor(tokens int) time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	needed := float64(tokens) - tb.tokens
	if needed <= 0 {
		return 0
	}
	periods := needed / tb.refillRate
	return time.Duration(periods * float64(tb.refillPeriod))
}

// Reset unconditionally restores the bucket to full capacity.
func (tb *TokenBucket) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.tokens = float64(tb.capacity)
	tb.lastRefill = time.Now()
}

// WaitAndAcquire blocks until the requested tokens are acquired, the context
// is cancelled, or the projected wait exceeds maxWait (0 means no limit).
// The bucket's lock is never held while sleeping.
func (tb *TokenBucket) WaitAndAcquire(ctx context.Context, tokens int, maxWait time.Duration) error {
	if tokens > tb.capacity {
		return fmt.Errorf("ratelimiter: requested %d tokens exceeds bucket capacity %d", tokens, tb.capacity)
	}

	var deadline time.Time
	if maxWait > 0 {
		deadline = time.Now().Add(maxWait)
	}

	for {
		if tb.Acquire(tokens) {
			return nil
		}

		wait := tb.waitTimeFor(tokens)
		if wait <= 0 {
			// A concurrent caller spent the tokens between our Acquire and
			// the estimate. Back off briefly instead of spinning.
			wait = time.Millisecond
		}
		if !deadline.IsZero() && time.Now().Add(wait).After(deadline) {
			return fmt.Errorf("ratelimiter: wait time %v exceeds max wait %v", wait, maxWait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
