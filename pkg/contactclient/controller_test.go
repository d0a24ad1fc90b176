package contactclient

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/portfolio/backend/pkg/contactform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	mu     sync.Mutex
	sent   []contactform.Submission
	sendFn func(ctx context.Context, sub contactform.Submission) (*Receipt, error)
}

func (f *fakeTransport) Send(ctx context.Context, sub contactform.Submission) (*Receipt, error) {
	f.mu.Lock()
	f.sent = append(f.sent, sub)
	f.mu.Unlock()
	if f.sendFn != nil {
		return f.sendFn(ctx, sub)
	}
	return &Receipt{ID: "id-1", Message: "Contact message sent successfully"}, nil
}

func (f *fakeTransport) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type notification struct {
	kind NotificationKind
	text string
}

type recordingNotifier struct {
	mu   sync.Mutex
	seen []notification
}

func (r *recordingNotifier) Notify(kind NotificationKind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, notification{kind, text})
}

func fill(t *testing.T, c *Controller, name, email, message string) {
	t.Helper()
	require.NoError(t, c.SetField(contactform.FieldName, name))
	require.NoError(t, c.SetField(contactform.FieldEmail, email))
	require.NoError(t, c.SetField(contactform.FieldMessage, message))
}

func TestController_SubmitSuccessClearsValues(t *testing.T) {
	tr := &fakeTransport{}
	n := &recordingNotifier{}
	c := NewController(tr, WithNotifier(n))
	fill(t, c, "  Al ", "al@example.com", "Hello there!")

	receipt, err := c.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "id-1", receipt.ID)
	require.Equal(t, 1, tr.calls())
	assert.Equal(t, "Al", tr.sent[0].Name, "values are sent normalized")
	assert.Equal(t, contactform.Submission{}, c.Values())
	assert.Equal(t, StatusIdle, c.Status())
	assert.Equal(t, []notification{{NotifySuccess, MsgSuccess}}, n.seen)
}

func TestController_LocalValidationBlocksRequest(t *testing.T) {
	tr := &fakeTransport{}
	n := &recordingNotifier{}
	c := NewController(tr, WithNotifier(n))
	fill(t, c, "A", "bad", "hi")

	_, err := c.Submit(context.Background())

	var ve *contactform.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Violations, 3)
	assert.Zero(t, tr.calls())
	assert.Empty(t, n.seen)
	assert.Equal(t, StatusIdle, c.Status())

	errs := c.FieldErrors()
	assert.Equal(t, "Name must be at least 2 characters", errs[contactform.FieldName])
	assert.Equal(t, "Invalid email address", errs[contactform.FieldEmail])
	assert.Contains(t, errs, contactform.FieldMessage)
}

func TestController_FieldErrorsClearedOnValidSubmit(t *testing.T) {
	c := NewController(&fakeTransport{})
	fill(t, c, "A", "al@example.com", "Hello there!")
	_, err := c.Submit(context.Background())
	require.Error(t, err)
	require.NotEmpty(t, c.FieldErrors())

	require.NoError(t, c.SetField(contactform.FieldName, "Al"))
	_, err = c.Submit(context.Background())

	require.NoError(t, err)
	assert.Empty(t, c.FieldErrors())
}

func TestController_FailurePreservesValues(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"server error", &StatusError{StatusCode: 500, Message: "Internal server error"}},
		{"network error", errors.New("dial tcp: connection refused")},
		{"remote validation", &RemoteValidationError{
			Message: "Validation failed",
			Violations: []contactform.Violation{
				{Field: "email", Code: contactform.CodeInvalidString, Message: "Invalid email address", Path: []string{"email"}},
			},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTransport{sendFn: func(ctx context.Context, sub contactform.Submission) (*Receipt, error) {
				return nil, tt.err
			}}
			n := &recordingNotifier{}
			c := NewController(tr, WithNotifier(n))
			fill(t, c, "Al", "al@example.com", "Hello there!")

			_, err := c.Submit(context.Background())

			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, 1, tr.calls(), "no automatic retry")
			assert.Equal(t, contactform.Submission{Name: "Al", Email: "al@example.com", Message: "Hello there!"}, c.Values())
			assert.Equal(t, []notification{{NotifyFailure, MsgFailure}}, n.seen)
			assert.Equal(t, StatusIdle, c.Status())
		})
	}
}

func TestController_RemoteViolationsBecomeFieldErrors(t *testing.T) {
	tr := &fakeTransport{sendFn: func(ctx context.Context, sub contactform.Submission) (*Receipt, error) {
		return nil, &RemoteValidationError{Violations: []contactform.Violation{
			{Field: "email", Code: contactform.CodeInvalidString, Message: "Invalid email address"},
		}}
	}}
	c := NewController(tr)
	fill(t, c, "Al", "al@example.com", "Hello there!")

	_, err := c.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, map[string]string{"email": "Invalid email address"}, c.FieldErrors())
}

func TestController_RejectsWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	tr := &fakeTransport{sendFn: func(ctx context.Context, sub contactform.Submission) (*Receipt, error) {
		<-release
		return &Receipt{ID: "id-1"}, nil
	}}
	c := NewController(tr)
	fill(t, c, "Al", "al@example.com", "Hello there!")

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return c.Status() == StatusSubmitting },
		time.Second, time.Millisecond)

	_, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, tr.calls())
}

func TestController_SettleDelayHoldsStatus(t *testing.T) {
	c := NewController(&fakeTransport{}, WithSettleDelay(50*time.Millisecond))
	fill(t, c, "Al", "al@example.com", "Hello there!")

	done := make(chan struct{})
	go func() {
		_, _ = c.Submit(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool { return c.Status() == StatusSucceeded },
		time.Second, time.Millisecond)
	<-done
	assert.Equal(t, StatusIdle, c.Status())
}

func TestController_SetFieldUnknown(t *testing.T) {
	c := NewController(&fakeTransport{})
	assert.Error(t, c.SetField("phone", "555"))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "submitting", StatusSubmitting.String())
	assert.Equal(t, "succeeded", StatusSucceeded.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}

func TestNotifierFunc(t *testing.T) {
	var got string
	NotifierFunc(func(kind NotificationKind, text string) { got = text }).Notify(NotifySuccess, MsgSuccess)
	assert.Equal(t, MsgSuccess, got)
}
