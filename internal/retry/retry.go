// Package retry wraps fallible operations with a bounded exponential backoff
// policy. Only failures the caller's predicate classifies as transient are
// retried; deterministic failures propagate after a single attempt so they
// never burn latency or provider budget.
package retry

import (
	"context"
	"time"
)

// Policy bounds the attempt count and the sleep between attempts.
type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultPolicy matches the provider call budget: three attempts, backoff
// starting at 2s, doubling, capped at 10s.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:  3,
		BaseDelay: 2 * time.Second,
		MaxDelay:  10 * time.Second,
	}
}

// Do runs op until it succeeds, fails non-retryably, or the attempt budget is
// exhausted. On exhaustion the last underlying error is returned unchanged so
// callers see the true cause. The backoff sleep is context-aware: a canceled
// context aborts the wait and returns ctx.Err().
func Do(ctx context.Context, policy Policy, retryable func(error) bool, op func(ctx context.Context) error) error {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}

	delay := policy.BaseDelay
	var lastErr error
	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if retryable == nil || !retryable(lastErr) || attempt == policy.Attempts {
			return lastErr
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if policy.MaxDelay > 0 && delay > policy.MaxDelay {
			delay = policy.MaxDelay
		}
	}
	return lastErr
}
