package normalize

import "fmt"

// DateError reports the first invalid date found while normalizing a record.
// Field retains the path into the raw payload for diagnostics.
type DateError struct {
	Field string
	Cause error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date in %s: %v", e.Field, e.Cause)
}

func (e *DateError) Unwrap() error {
	return e.Cause
}
