// Package retry re-invokes fallible operations with exponential backoff.
//
// A Policy is pure data plus a stateless predicate, so one policy value can
// be shared across call sites and concurrent operations without
// cross-contamination.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Policy controls how an operation is retried.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first. Must
	// be at least 1.
	MaxAttempts int

	// BackoffBase is the exponential base for computing the delay before
	// attempt n+1: BackoffBase^n seconds.
	BackoffBase float64

	// BackoffMax caps the computed delay.
	BackoffMax time.Duration

	// Jitter adds a uniformly random extra delay in [0, 0.1*delay] to
	// avoid synchronized retry storms.
	Jitter bool

	// RetryIf reports whether a failure is retryable. Failures it rejects
	// propagate immediately without sleeping. If nil, no failure is
	// retryable.
	RetryIf func(error) bool
}

// DefaultPolicy matches the limits used for provider calls: 3 attempts,
// exponential base 2, delays capped at a minute.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BackoffBase: 2,
		BackoffMax:  60 * time.Second,
		Jitter:      true,
	}
}

// WithRetryIf returns a copy of the policy with the given classifier.
func (p Policy) WithRetryIf(retryIf func(error) bool) Policy {
	p.RetryIf = retryIf
	return p
}

func (p Policy) validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("retry: max attempts must be at least 1, got %d", p.MaxAttempts)
	}
	if p.BackoffBase <= 0 {
		return fmt.Errorf("retry: backoff base must be positive, got %v", p.BackoffBase)
	}
	return nil
}

// Delay returns the jitter-free backoff delay before the retry that follows
// failed attempt (0-indexed): min(BackoffBase^attempt, BackoffMax).
// Delays are non-decreasing in attempt and never exceed BackoffMax.
func (p Policy) Delay(attempt int) time.Duration {
	d := time.Duration(math.Pow(p.BackoffBase, float64(attempt)) * float64(time.Second))
	if d > p.BackoffMax || d < 0 {
		return p.BackoffMax
	}
	return d
}

func (p Policy) sleepDelay(attempt int) time.Duration {
	d := p.Delay(attempt)
	if p.Jitter {
		d += time.Duration(rand.Float64() * 0.1 * float64(d))
	}
	return d
}

// IsAny builds a classifier that reports true when the failure matches any
// of the targets under errors.Is.
func IsAny(targets ...error) func(error) bool {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// Do invokes op until it succeeds, fails with a non-retryable error, or
// exhausts the policy's attempts. The final failure is returned unchanged;
// it is never logged-and-swallowed here.
//
// The sleep between attempts is cancellable: a cancelled context returns
// ctx.Err() so callers can tell cancellation apart from the operation's own
// failures.
func Do(ctx context.Context, policy Policy, op func(context.Context) error) error {
	_, err := DoValue(ctx, policy, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// DoValue is Do for operations that return a value.
func DoValue[T any](ctx context.Context, policy Policy, op func(context.Context) (T, error)) (T, error) {
	var zero T

	if err := policy.validate(); err != nil {
		return zero, err
	}

	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		if policy.RetryIf == nil || !policy.RetryIf(err) {
			return zero, err
		}
		if attempt == policy.MaxAttempts-1 {
			return zero, err
		}

		timer := time.NewTimer(policy.sleepDelay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
}
