package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Transient failure kinds eligible for retry.
const (
	KindTimeout   = "timeout"
	KindRateLimit = "rate_limit"
	KindProvider  = "provider"
)

// TransientError marks a provider failure that may succeed on retry.
type TransientError struct {
	Kind  string
	Cause error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient provider error (%s): %v", e.Kind, e.Cause)
}

func (e *TransientError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError reports a completion that was empty or not the JSON
// object the call asked for. Never retried: the same prompt deterministically
// costs another call without changing the outcome.
type MalformedResponseError struct {
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed provider response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed provider response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether err is classified transient. It is the
// predicate handed to the retry wrapper around every provider call.
func IsRetryable(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

// classify maps raw provider transport errors onto the taxonomy. Timeouts,
// rate limits and 5xx faults become TransientError; anything else is returned
// as-is and propagates without retry.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TransientError{Kind: KindTimeout, Cause: err}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return &TransientError{Kind: KindRateLimit, Cause: err}
		case apiErr.Code >= http.StatusInternalServerError:
			return &TransientError{Kind: KindProvider, Cause: err}
		}
	}
	return err
}
