// Package contactform defines the contact-form schema shared by the HTTP
// handler and the client-side form controller. Both sides import this
// package, so a submission accepted by one is accepted by the other.
package contactform

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field names, in declaration order. Violations are always reported in this order.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// Fields lists the schema fields in declaration order.
var Fields = []string{FieldName, FieldEmail, FieldMessage}

// Submission is a contact-form payload. Length bounds are counted in runes
// after trimming surrounding whitespace.
type Submission struct {
	Name    string `json:"name" validate:"min=2,max=100"`
	Email   string `json:"email" validate:"email,max=254"`
	Message string `json:"message" validate:"min=10,max=5000"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalize returns a copy of s with surrounding whitespace removed from every field.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Message: strings.TrimSpace(s.Message),
	}
}

// Validate checks every rule of the schema against the normalized
// submission. It returns nil or a *ValidationError listing one violation
// per failing field.
func (s Submission) Validate() error {
	violations := checkRules(s.Normalize(), nil)
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// Validate checks an untyped, decoded JSON object against the schema. On
// success it returns the normalized Submission. On failure it returns a
// *ValidationError; fields that are missing or not strings are reported
// alongside rule violations of the remaining fields.
func Validate(input map[string]any) (Submission, error) {
	raw := make(map[string]string, len(Fields))
	skip := make(map[string]Violation)
	for _, field := range Fields {
		v, ok := input[field]
		if !ok {
			skip[field] = Violation{
				Field:   field,
				Code:    CodeRequired,
				Message: "Required",
				Path:    []string{field},
			}
			continue
		}
		str, ok := v.(string)
		if !ok {
			skip[field] = Violation{
				Field:   field,
				Code:    CodeInvalidType,
				Message: "Expected string, received " + TypeName(v),
				Path:    []string{field},
			}
			continue
		}
		raw[field] = str
	}

	sub := Submission{
		Name:    raw[FieldName],
		Email:   raw[FieldEmail],
		Message: raw[FieldMessage],
	}.Normalize()

	violations := checkRules(sub, skip)
	if len(violations) > 0 {
		return Submission{}, &ValidationError{Violations: violations}
	}
	return sub, nil
}

// checkRules runs the struct rules and merges the results with the
// pre-computed violations in skip. Fields present in skip keep their
// pre-computed violation and their rule results are discarded.
func checkRules(sub Submission, skip map[string]Violation) []Violation {
	byField := make(map[string]Violation, len(Fields))
	for field, v := range skip {
		byField[field] = v
	}

	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(sub); errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			field := fe.Field()
			if _, done := byField[field]; done {
				continue
			}
			byField[field] = violationFor(fe)
		}
	}

	var out []Violation
	for _, field := range Fields {
		if v, ok := byField[field]; ok {
			out = append(out, v)
		}
	}
	return out
}

// TypeName describes a decoded JSON value the way the error messages name it.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return reflect.TypeOf(v).Kind().String()
	}
}
