package contactclient

import (
	"errors"
	"fmt"

	"github.com/portfolio/backend/pkg/contactform"
)

// ErrSubmissionInFlight is returned by Submit while an earlier submission is
// still waiting for its response.
var ErrSubmissionInFlight = errors.New("contactclient: submission already in flight")

// RemoteValidationError is returned when the server rejects the submission
// with 400 and a list of violations.
type RemoteValidationError struct {
	Message    string
	Violations []contactform.Violation
}

func (e *RemoteValidationError) Error() string {
	ve := contactform.ValidationError{Violations: e.Violations}
	return "server rejected submission: " + ve.Error()
}

// FieldMessages returns the server's violation message keyed by field name.
func (e *RemoteValidationError) FieldMessages() map[string]string {
	ve := contactform.ValidationError{Violations: e.Violations}
	return ve.FieldMessages()
}

// StatusError is returned for any non-201, non-400 response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}
