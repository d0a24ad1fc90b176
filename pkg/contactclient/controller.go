// Package contactclient drives a contact form submission from the client
// side: local validation, a single request, and a transient settled state.
package contactclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/portfolio/backend/pkg/contactform"
)

// Notification texts shown after a submission settles.
const (
	MsgSuccess = "Message sent successfully! I'll get back to you soon."
	MsgFailure = "Failed to send message. Please try again."
)

// Status is the submission lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// NotificationKind distinguishes success from failure notifications.
type NotificationKind int

const (
	NotifySuccess NotificationKind = iota
	NotifyFailure
)

// Notifier surfaces a transient message to the user.
type Notifier interface {
	Notify(kind NotificationKind, text string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(kind NotificationKind, text string)

func (f NotifierFunc) Notify(kind NotificationKind, text string) { f(kind, text) }

type discardNotifier struct{}

func (discardNotifier) Notify(NotificationKind, string) {}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets the notifier. The default discards notifications.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithSettleDelay keeps the succeeded/failed status visible for d before
// returning to idle. Zero returns to idle immediately.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Controller) { c.settleDelay = d }
}

// Controller holds the form values and the submission status.
// It is safe for concurrent use.
type Controller struct {
	transport   Transport
	notifier    Notifier
	settleDelay time.Duration

	mu          sync.Mutex
	values      contactform.Submission
	fieldErrors map[string]string
	status      Status
	generation  uint64
}

// NewController creates a Controller that sends through t.
func NewController(t Transport, opts ...Option) *Controller {
	c := &Controller{
		transport:   t,
		notifier:    discardNotifier{},
		fieldErrors: map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetField stores the raw value of one form field.
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case contactform.FieldName:
		c.values.Name = value
	case contactform.FieldEmail:
		c.values.Email = value
	case contactform.FieldMessage:
		c.values.Message = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// Values returns the current field values.
func (c *Controller) Values() contactform.Submission {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values
}

// FieldErrors returns the messages from the last failed validation,
// keyed by field name.
func (c *Controller) FieldErrors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.fieldErrors))
	for k, v := range c.fieldErrors {
		out[k] = v
	}
	return out
}

// Status returns the current lifecycle state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Submit validates the current values and, when they pass, sends them once.
//
// A local validation failure returns *contactform.ValidationError and sends
// nothing. A call made while another submission is awaiting its response
// returns ErrSubmissionInFlight. On success the values are cleared; on any
// failure they are kept so the user can resubmit.
func (c *Controller) Submit(ctx context.Context) (*Receipt, error) {
	sub, gen, err := c.begin()
	if err != nil {
		return nil, err
	}

	receipt, sendErr := c.transport.Send(ctx, sub)

	kind, text := c.finish(gen, sendErr)
	c.notifier.Notify(kind, text)
	c.settle(ctx, gen)

	if sendErr != nil {
		return nil, sendErr
	}
	return receipt, nil
}

func (c *Controller) begin() (contactform.Submission, uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == StatusSubmitting {
		return contactform.Submission{}, 0, ErrSubmissionInFlight
	}

	sub, err := contactform.Validate(map[string]any{
		contactform.FieldName:    c.values.Name,
		contactform.FieldEmail:   c.values.Email,
		contactform.FieldMessage: c.values.Message,
	})
	if err != nil {
		var ve *contactform.ValidationError
		if errors.As(err, &ve) {
			c.fieldErrors = ve.FieldMessages()
		}
		return contactform.Submission{}, 0, err
	}

	c.fieldErrors = map[string]string{}
	c.status = StatusSubmitting
	c.generation++
	return sub, c.generation, nil
}

func (c *Controller) finish(gen uint64, sendErr error) (NotificationKind, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sendErr != nil {
		var rve *RemoteValidationError
		if errors.As(sendErr, &rve) {
			c.fieldErrors = rve.FieldMessages()
		}
		if gen == c.generation {
			c.status = StatusFailed
		}
		return NotifyFailure, MsgFailure
	}

	c.values = contactform.Submission{}
	if gen == c.generation {
		c.status = StatusSucceeded
	}
	return NotifySuccess, MsgSuccess
}

// settle holds the settled status for settleDelay, then returns to idle
// unless a newer submission has started meanwhile.
func (c *Controller) settle(ctx context.Context, gen uint64) {
	if c.settleDelay > 0 {
		timer := time.NewTimer(c.settleDelay)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
		timer.Stop()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.generation {
		c.status = StatusIdle
	}
}
