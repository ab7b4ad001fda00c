package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")
var errFatal = errors.New("fatal")

func fastPolicy() Policy {
	return Policy{Attempts: 3, BaseDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastPolicy(), func(err error) bool {
		return errors.Is(err, errTransient)
	}, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errTransient
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_ExhaustionReturnsLastError(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastPolicy(), func(error) bool { return true }, func(ctx context.Context) error {
		attempts++
		return errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, attempts)
}

func TestDo_FatalErrorNotRetried(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastPolicy(), func(err error) bool {
		return errors.Is(err, errTransient)
	}, func(ctx context.Context) error {
		attempts++
		return errFatal
	})

	assert.ErrorIs(t, err, errFatal)
	assert.Equal(t, 1, attempts)
}

func TestDo_ImmediateSuccess(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), fastPolicy(), func(error) bool { return true }, func(ctx context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_ContextCanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := Policy{Attempts: 3, BaseDelay: time.Minute}

	attempts := 0
	done := make(chan error, 1)
	go func() {
		done <- Do(ctx, policy, func(error) bool { return true }, func(ctx context.Context) error {
			attempts++
			return errTransient
		})
	}()

	// Let the first attempt fail and enter the backoff sleep, then cancel.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	case <-time.After(2 * time.Second):
		t.Fatal("Do did not return after context cancellation")
	}
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), Policy{}, nil, func(ctx context.Context) error {
		attempts++
		return errFatal
	})

	assert.ErrorIs(t, err, errFatal)
	assert.Equal(t, 1, attempts)
}

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()
	assert.Equal(t, 3, policy.Attempts)
	assert.Equal(t, 2*time.Second, policy.BaseDelay)
	assert.Equal(t, 10*time.Second, policy.MaxDelay)
}
