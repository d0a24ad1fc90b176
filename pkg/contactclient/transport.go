package contactclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/portfolio/backend/pkg/contactform"
)

const (
	contactPath      = "/api/contact"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "portfolio-contact/1.0"
)

// Receipt is the server's acknowledgement of a stored message.
type Receipt struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Transport delivers one submission to the server.
type Transport interface {
	Send(ctx context.Context, sub contactform.Submission) (*Receipt, error)
}

// HTTPTransport posts submissions as JSON to a contact API.
type HTTPTransport struct {
	client *resty.Client
}

// NewHTTPTransport creates a transport for the API rooted at baseURL.
// A non-positive timeout uses the default of 10s.
func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("User-Agent", defaultUserAgent).
		SetTimeout(timeout)

	return &HTTPTransport{client: client}
}

type apiError struct {
	Error   string                  `json:"error"`
	Details []contactform.Violation `json:"details"`
}

// Send posts sub once. It never retries.
func (t *HTTPTransport) Send(ctx context.Context, sub contactform.Submission) (*Receipt, error) {
	var receipt Receipt
	var apiErr apiError
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(sub).
		SetResult(&receipt).
		SetError(&apiErr).
		Post(contactPath)
	if err != nil {
		return nil, fmt.Errorf("contact request failed: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusCreated:
		return &receipt, nil
	case http.StatusBadRequest:
		return nil, &RemoteValidationError{Message: apiErr.Error, Violations: apiErr.Details}
	default:
		msg := apiErr.Error
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		return nil, &StatusError{StatusCode: resp.StatusCode(), Message: msg}
	}
}
