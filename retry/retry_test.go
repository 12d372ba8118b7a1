package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var (
	errTransient = errors.New("transient failure")
	errPermanent = errors.New("permanent failure")
)

// fastPolicy keeps test sleeps negligible.
func fastPolicy(maxAttempts int) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		BackoffBase: 2,
		BackoffMax:  time.Millisecond,
		RetryIf:     IsAny(errTransient),
	}
}

func TestDo_TerminalPropagation(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(3), func(context.Context) error {
		calls++
		return errTransient
	})

	if calls != 3 {
		t.Errorf("expected exactly 3 invocations, got %d", calls)
	}
	if !errors.Is(err, errTransient) {
		t.Errorf("final failure must be propagated unchanged, got %v", err)
	}
}

func TestDo_ShortCircuitOnNonRetryable(t *testing.T) {
	calls := 0
	start := time.Now()
	err := Do(context.Background(), Policy{
		MaxAttempts: 5,
		BackoffBase: 2,
		BackoffMax:  time.Minute,
		RetryIf:     IsAny(errTransient),
	}, func(context.Context) error {
		calls++
		return errPermanent
	})

	if calls != 1 {
		t.Errorf("non-retryable failure should be invoked exactly once, got %d", calls)
	}
	if !errors.Is(err, errPermanent) {
		t.Errorf("expected the permanent failure, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("no sleep should occur for non-retryable failures, took %v", elapsed)
	}
}

func TestDo_SuccessAfterRetry(t *testing.T) {
	calls := 0
	result, err := DoValue(context.Background(), fastPolicy(3), func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errTransient
		}
		return "content", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 invocations, got %d", calls)
	}
	if result != "content" {
		t.Errorf("expected successful result, got %q", result)
	}
}

func TestDo_SuccessFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastPolicy(5), func(context.Context) error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("expected a single successful invocation, calls=%d err=%v", calls, err)
	}
}

func TestDo_InvalidPolicy(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Policy{MaxAttempts: 0, BackoffBase: 2}, func(context.Context) error {
		calls++
		return nil
	})
	if err == nil {
		t.Error("expected an error for max attempts < 1")
	}
	if calls != 0 {
		t.Errorf("misconfigured policy must fail before invoking the operation, calls=%d", calls)
	}
}

func TestDo_CancelledDuringBackoff(t *testing.T) {
	policy := Policy{
		MaxAttempts: 3,
		BackoffBase: 2,
		BackoffMax:  time.Minute,
		RetryIf:     IsAny(errTransient),
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	calls := 0
	err := Do(ctx, policy, func(context.Context) error {
		calls++
		return errTransient
	})

	if err != context.Canceled {
		t.Errorf("cancellation must surface as ctx.Err(), got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 invocation before cancellation, got %d", calls)
	}
}

func TestPolicy_DelayMonotonicAndCapped(t *testing.T) {
	policy := Policy{MaxAttempts: 10, BackoffBase: 2, BackoffMax: 10 * time.Second}

	prev := time.Duration(-1)
	for attempt := 0; attempt < 40; attempt++ {
		d := policy.Delay(attempt)
		if d < prev {
			t.Errorf("delay decreased at attempt %d: %v < %v", attempt, d, prev)
		}
		if d > policy.BackoffMax {
			t.Errorf("delay at attempt %d exceeds cap: %v", attempt, d)
		}
		prev = d
	}

	if policy.Delay(0) != time.Second {
		t.Errorf("expected base^0 = 1s, got %v", policy.Delay(0))
	}
	if policy.Delay(1) != 2*time.Second {
		t.Errorf("expected base^1 = 2s, got %v", policy.Delay(1))
	}
	if policy.Delay(30) != policy.BackoffMax {
		t.Errorf("large attempts must hit the cap, got %v", policy.Delay(30))
	}
}

func TestIsAny(t *testing.T) {
	classify := IsAny(errTransient, context.DeadlineExceeded)

	if !classify(errTransient) {
		t.Error("direct match should be retryable")
	}
	if !classify(errors.Join(errors.New("wrapped"), errTransient)) {
		t.Error("wrapped match should be retryable")
	}
	if classify(errPermanent) {
		t.Error("unlisted failure kinds must not be retryable")
	}
	if classify(nil) {
		t.Error("nil is not a failure")
	}
}

func TestPolicy_SharedAcrossConcurrentOperations(t *testing.T) {
	policy := fastPolicy(3)

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			done <- Do(context.Background(), policy, func(context.Context) error {
				return errTransient
			})
		}()
	}
	for i := 0; i < 10; i++ {
		if err := <-done; !errors.Is(err, errTransient) {
			t.Errorf("unexpected error: %v", err)
		}
	}
}
