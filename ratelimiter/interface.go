package ratelimiter

import (
	"context"
	"time"
)

// Limiter defines the interface for rate limiters.
// Implementations can be local (in-memory) or distributed (Redis, etc.).
type Limiter interface {
	// Acquire atomically checks capacity and consumes tokens if available.
	// Returns true if tokens were consumed, false if insufficient capacity.
	Acquire(tokens int) bool

	// WaitTime returns how long until one token would be available.
	// The estimate may be stale the moment it returns: a concurrent
	// Acquire can take the token before the caller retries.
	WaitTime() time.Duration

	// WaitAndAcquire waits until tokens are available, then consumes them.
	// Returns an error if the context is cancelled or maxWait is exceeded.
	WaitAndAcquire(ctx context.Context, tokens int, maxWait time.Duration) error

	// Reset restores the limiter to full capacity. Intended for tests and
	// administrative resets, not for production rate correction.
	Reset()
}
