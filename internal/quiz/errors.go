package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizgen/internal/llm"
)

// Kind classifies a failed request.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindTransport       Kind = "transport"
	KindMalformedOutput Kind = "malformed_output"
	KindSchemaViolation Kind = "schema_violation"
)

// FieldError is one rejected input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError reports an inbound request that failed the shape contract.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// GenerationError reports a failed model round-trip.
type GenerationError struct {
	Kind Kind
	Err  error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case KindMalformedOutput:
		return fmt.Sprintf("failed to parse model output: %v", e.Err)
	case KindSchemaViolation:
		return fmt.Sprintf("model output violates question schema: %v", e.Err)
	default:
		return fmt.Sprintf("model request failed: %v", e.Err)
	}
}

func (e *GenerationError) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or "" when err is nil or unclassified.
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}

// classify maps a provider or validation error to a failure Kind.
// Anything that is not about the content of the reply is a transport failure.
func classify(err error) Kind {
	var (
		mj *llm.ErrMalformedJSON
		mt *llm.ErrMaxTokensExceeded
		er *llm.ErrEmptyResponse
		sv *llm.ErrSchemaViolation
	)
	switch {
	case errors.As(err, &sv):
		return KindSchemaViolation
	case errors.As(err, &mj), errors.As(err, &mt), errors.As(err, &er):
		return KindMalformedOutput
	default:
		return KindTransport
	}
}
