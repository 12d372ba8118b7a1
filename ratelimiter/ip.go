package ratelimiter

import (
	"fmt"
	"sync"
	"time"
)

// ipWindow is the trailing window over which per-address requests count.
const ipWindow = time.Minute

// DefaultCleanupInterval is how often the IP limiter sweeps the whole
// registry for idle addresses.
const DefaultCleanupInterval = 5 * time.Minute

// IPRateLimiter bounds the request rate from any single source address
// using a sliding one-minute window of timestamps.
//
// It never returns errors: denial is a normal outcome the caller handles,
// typically by responding with HTTP 429.
type IPRateLimiter struct {
	requestsPerMinute int
	cleanupInterval   time.Duration

	mu          sync.Mutex
	requests    map[string][]time.Time
	lastCleanup time.Time
}

// NewIPRateLimiter creates a limiter allowing requestsPerMinute requests
// per address. cleanupInterval controls how often idle addresses are
// evicted; 0 uses DefaultCleanupInterval.
func NewIPRateLimiter(requestsPerMinute int, cleanupInterval time.Duration) (*IPRateLimiter, error) {
	if requestsPerMinute < 1 {
		return nil, fmt.Errorf("ratelimiter: requests per minute must be at least 1, got %d", requestsPerMinute)
	}
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	return &IPRateLimiter{
		requestsPerMinute: requestsPerMinute,
		cleanupInterval:   cleanupInterval,
		requests:          make(map[string][]time.Time),
		lastCleanup:       time.Now(),
	}, nil
}

// Allow reports whether a request from the address is admitted. Admitted
// requests are recorded; denied requests leave no trace, so a denied
// client does not push its own window further out.
func (l *IPRateLimiter) Allow(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-ipWindow)

	// Sweep the whole map on an interval, not on every call, to bound
	// memory for long-running processes serving many distinct addresses.
	if now.Sub(l.lastCleanup) > l.cleanupInterval {
		l.sweepLocked(cutoff)
		l.lastCleanup = now
	}

	recent := pruneBefore(l.requests[addr], cutoff)

	if len(recent) >= l.requestsPerMinute {
		l.requests[addr] = recent
		return false
	}

	l.requests[addr] = append(recent, now)
	return true
}

// Remaining returns how many more requests the address may make inside the
// current window. It does not record anything.
func (l *IPRateLimiter) Remaining(addr string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-ipWindow)
	inWindow := 0
	for _, t := range l.requests[addr] {
		if t.After(cutoff) {
			inWindow++
		}
	}
	if remaining := l.requestsPerMinute - inWindow; remaining > 0 {
		return remaining
	}
	return 0
}

// sweepLocked evicts addresses with no activity inside the window.
// Caller must hold l.mu.
func (l *IPRateLimiter) sweepLocked(cutoff time.Time) {
	for addr, times := range l.requests {
		recent := pruneBefore(times, cutoff)
		if len(recent) == 0 {
			delete(l.requests, addr)
			continue
		}
		l.requests[addr] = recent
	}
}

func pruneBefore(times []time.Time, cutoff time.Time) []time.Time {
	// Timestamps are appended in order, so find the first one still inside
	// the window and keep the tail.
	for i, t := range times {
		if t.After(cutoff) {
			return times[i:]
		}
	}
	return nil
}
