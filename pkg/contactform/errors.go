package contactform

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violation codes.
const (
	CodeRequired      = "required"
	CodeInvalidType   = "invalid_type"
	CodeInvalidString = "invalid_string"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
)

// Violation describes one failed rule for one field.
type Violation struct {
	Field   string   `json:"field"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Path    []string `json:"path"`
}

// ValidationError is returned when a submission violates the schema.
// Callers detect it with errors.As.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Field == "" {
			parts = append(parts, v.Message)
			continue
		}
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FieldMessages returns the violation message keyed by field name.
func (e *ValidationError) FieldMessages() map[string]string {
	out := make(map[string]string, len(e.Violations))
	for _, v := range e.Violations {
		if _, ok := out[v.Field]; !ok {
			out[v.Field] = v.Message
		}
	}
	return out
}

func violationFor(fe validator.FieldError) Violation {
	field := fe.Field()
	label := labelFor(field)

	v := Violation{Field: field, Path: []string{field}}
	switch fe.Tag() {
	case "min":
		v.Code = CodeTooSmall
		v.Message = fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		v.Code = CodeTooBig
		v.Message = fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "email":
		v.Code = CodeInvalidString
		v.Message = "Invalid email address"
	default:
		v.Code = fe.Tag()
		v.Message = "Invalid " + field
	}
	return v
}

func labelFor(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
