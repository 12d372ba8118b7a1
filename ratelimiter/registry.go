package ratelimiter

import (
	"sync"
)

// Registry maps resource names (e.g. "gemini", "unsplash") to limiters.
// The first Get for a name lazily creates a bucket from the registry's
// default config; the limiter then lives for the registry's lifetime.
//
// A Registry is an explicitly constructed object owned by the process's
// composition root. Tests should construct a fresh registry rather than
// share one across cases.
type Registry struct {
	mu       sync.Mutex
	defaults Config
	limiters map[string]Limiter
}

// NewRegistry creates a registry whose lazily-created limiters use the
// given default config. It fails fast on a config that could never admit
// a request.
func NewRegistry(defaults Config) (*Registry, error) {
	if err := defaults.validate(); err != nil {
		return nil, err
	}
	return &Registry{
		defaults: defaults,
		limiters: make(map[string]Limiter),
	}, nil
}

// Get returns the limiter for the named resource, creating it with the
// registry's default config on first access. Creation is guarded by the
// registry's lock; the returned limiter has its own lock, so unrelated
// resources never serialize on each other.
func (r *Registry) Get(name string) Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.limiters[name]; ok {
		return l
	}
	// Defaults were validated at construction, so this cannot fail.
	l, _ := NewTokenBucket(r.defaults)
	r.limiters[name] = l
	return l
}

// Configure creates a bucket with a resource-specific config, replacing
// any existing limiter for the name.
func (r *Registry) Configure(name string, cfg Config) error {
	l, err := NewTokenBucket(cfg)
	if err != nil {
		return err
	}
	r.Set(name, l)
	return nil
}

// Set installs a custom limiter for a resource. Use this to swap in a
// distributed limiter (e.g., Redis-based) for production.
func (r *Registry) Set(name string, limiter Limiter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.limiters[name] = limiter
}
