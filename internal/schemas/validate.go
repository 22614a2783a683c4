// Package schemas provides JSON Schema validation for structured data
// exchanged with external scoring providers. Provider output is untrusted;
// a response that does not validate is treated as a provider failure.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed evaluation.schema.json
var evaluationSchema string

var (
	evaluationLoaderOnce sync.Once
	evaluationCompiled   *gojsonschema.Schema
	evaluationCompileErr error
)

// ValidationError reports schema violations with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at one field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for _, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", err.Field, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// ValidateEvaluation checks a raw provider response against the embedded
// evaluation schema.
func ValidateEvaluation(data []byte) error {
	evaluationLoaderOnce.Do(func() {
		evaluationCompiled, evaluationCompileErr = gojsonschema.NewSchema(
			gojsonschema.NewStringLoader(evaluationSchema))
	})
	if evaluationCompileErr != nil {
		return fmt.Errorf("failed to compile evaluation schema: %w", evaluationCompileErr)
	}

	result, err := evaluationCompiled.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to validate evaluation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}
