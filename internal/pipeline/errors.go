package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/mfcarvalho/cv-generator/internal/config"
	"github.com/mfcarvalho/cv-generator/internal/llm"
	"github.com/mfcarvalho/cv-generator/internal/normalize"
	"github.com/mfcarvalho/cv-generator/internal/payload"
	"github.com/mfcarvalho/cv-generator/internal/schema"
)

// Taxonomy tags recorded for observability. The transport layer maps every
// tag to the same generic failure response; the tag never reaches the caller.
const (
	TagTransient     = "transient_provider_error"
	TagMalformed     = "malformed_response"
	TagEmptyPayload  = "empty_payload"
	TagInvalidDate   = "invalid_date"
	TagSchema        = "schema_validation"
	TagConfiguration = "configuration"
	TagCanceled      = "canceled"
	TagInternal      = "internal"
)

// Error is the single failure shape surfaced at the pipeline boundary. It
// wraps the true cause and records which stage failed and the taxonomy tag.
type Error struct {
	Stage string
	Tag   string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s stage failed (%s): %v", e.Stage, e.Tag, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Classify wraps err into a boundary Error with its taxonomy tag.
func Classify(stage string, err error) *Error {
	return &Error{Stage: stage, Tag: tagFor(err), Cause: err}
}

func tagFor(err error) string {
	var (
		transient *llm.TransientError
		malformed *llm.MalformedResponseError
		empty     *payload.EmptyPayloadError
		dateErr   *normalize.DateError
		schemaErr *schema.ValidationError
		configErr *config.ConfigurationError
	)
	switch {
	case errors.As(err, &transient):
		return TagTransient
	case errors.As(err, &malformed):
		return TagMalformed
	case errors.As(err, &empty):
		return TagEmptyPayload
	case errors.As(err, &dateErr):
		return TagInvalidDate
	case errors.As(err, &schemaErr):
		return TagSchema
	case errors.As(err, &configErr):
		return TagConfiguration
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return TagCanceled
	}
	return TagInternal
}
