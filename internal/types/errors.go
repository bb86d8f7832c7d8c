package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyOutput is returned when a model call succeeds but yields nothing usable.
var ErrEmptyOutput = errors.New("model returned no output")

// FieldError is a single violated field, addressed by its JSON path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError means the caller's input broke the schema. No processing has
// happened when it is returned.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether the given field path was flagged.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// GenerationError wraps any failure of a generation call: the model
// invocation, a tool it called, or a response that does not fit the schema.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: generation failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// RefinementError is the refine-scoped counterpart of GenerationError.
type RefinementError struct {
	Err error
}

func (e *RefinementError) Error() string {
	return fmt.Sprintf("refinement failed: %v", e.Err)
}

func (e *RefinementError) Unwrap() error { return e.Err }

// UserMessage is what callers show for generation-type failures.
const UserMessage = "We could not generate a plan right now. Please try again."

// fieldErrors collects violations under a JSON path prefix.
type fieldErrors struct {
	fields []FieldError
}

func (f *fieldErrors) add(field, format string, args ...any) {
	f.fields = append(f.fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (f *fieldErrors) merge(prefix string, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		for _, fe := range ve.Fields {
			f.fields = append(f.fields, FieldError{Field: prefix + "." + fe.Field, Message: fe.Message})
		}
	}
}

func (f *fieldErrors) err() error {
	if len(f.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: f.fields}
}
