// Package schema enforces the canonical document contract after
// normalization. The resume contract is expressed as an embedded JSON Schema;
// violations surface as a typed ValidationError carrying field paths and are
// never retried.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mfcarvalho/cv-generator/internal/types"
)

//go:embed resume.schema.json
var resumeSchemaJSON string

// minCoverBodyChars is the minimum accepted cover letter body length.
const minCoverBodyChars = 50

// FieldError is a single violation at a specific field path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports one or more contract violations.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("schema validation failed:")
	for _, f := range e.Fields {
		sb.WriteString(fmt.Sprintf("\n  %s: %s", f.Field, f.Message))
	}
	return sb.String()
}

var resumeSchema = gojsonschema.NewStringLoader(resumeSchemaJSON)

// ValidateResume checks a normalized resume against the canonical contract.
func ValidateResume(resume *types.Resume) error {
	data, err := json.Marshal(resume)
	if err != nil {
		return fmt.Errorf("failed to marshal resume: %w", err)
	}

	result, err := gojsonschema.Validate(resumeSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema evaluation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	violation := &ValidationError{Fields: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		violation.Fields = append(violation.Fields, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return violation
}

// ValidateCoverLetter checks the canonical cover letter: greeting and
// signature must be present (locale defaults are applied upstream) and the
// body must carry at least 50 characters of content.
func ValidateCoverLetter(letter *types.CoverLetter) error {
	var fields []FieldError
	if strings.TrimSpace(letter.Greeting) == "" {
		fields = append(fields, FieldError{Field: "greeting", Message: "greeting is required"})
	}
	if strings.TrimSpace(letter.Signature) == "" {
		fields = append(fields, FieldError{Field: "signature", Message: "signature is required"})
	}
	if len(strings.TrimSpace(letter.Body)) < minCoverBodyChars {
		fields = append(fields, FieldError{
			Field:   "body",
			Message: fmt.Sprintf("body must be at least %d characters", minCoverBodyChars),
		})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
