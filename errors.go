package autoblogger

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrModelNotRegistered is returned when a model has no registered provider.
	ErrModelNotRegistered = errors.New("model not registered")

	// ErrProviderNotConfigured is returned when a provider lacks required config.
	ErrProviderNotConfigured = errors.New("provider not configured")

	// ErrPublisherNotConfigured is returned when publishing is attempted
	// without a configured publisher.
	ErrPublisherNotConfigured = errors.New("publisher not configured")

	// ErrEmptyContent is returned when a provider produces empty or
	// too-short output. This is a terminal failure: retrying a model that
	// just returned nothing usually masks a prompt or configuration bug.
	ErrEmptyContent = errors.New("generated content is empty or too short")
)

// RateLimitError is returned when a rate limit is hit, either locally by a
// bucket or remotely by the provider's API.
type RateLimitError struct {
	RetryAfter time.Duration
	LimitType  string
	Model      string
	Err        error // Underlying error from the provider, if any
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s: %s limit, retry after %v",
		e.Model, e.LimitType, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// IsRateLimitError checks if an error is a RateLimitError.
func IsRateLimitError(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}

// ProviderError wraps a failure from a text-generation backend.
type ProviderError struct {
	Provider   string
	StatusCode int
	Temporary  bool // transient server/network failure worth retrying
	Err        error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s failed (status %d): %v", e.Provider, e.StatusCode, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsTemporaryProviderError reports whether err is a transient provider
// failure (e.g. 5xx, network hiccup) that a retry policy may recover from.
func IsTemporaryProviderError(err error) bool {
	var pErr *ProviderError
	return errors.As(err, &pErr) && pErr.Temporary
}

// RetryableFailure is the default retry classifier for provider calls:
// rate limits and transient provider failures are retryable, everything
// else (malformed input, empty output, auth failures) is terminal.
func RetryableFailure(err error) bool {
	return IsRateLimitError(err) || IsTemporaryProviderError(err)
}
