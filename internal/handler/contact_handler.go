package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/pkg/contactform"
)

const (
	maxBodyBytes = 64 << 10

	defaultListLimit = 20
	maxListLimit     = 100

	msgCreated          = "Contact message sent successfully"
	msgValidationFailed = "Validation failed"
	msgInternal         = "Internal server error"
)

// ContactHandler handles contact form submission and operator reads.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

type submitResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type errorResponse struct {
	Error   string                  `json:"error"`
	Details []contactform.Violation `json:"details,omitempty"`
}

// Submit handles POST /api/contact.
//
// A body that cannot be read or parsed as JSON is treated as an unexpected
// condition (500), not as a user error. Schema failures return 400 with the
// field-level violations. Storage failures return 500 without detail.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		slog.Warn("contact: malformed request body", "error", err)
		metrics.ContactSubmissions.WithLabelValues(metrics.OutcomeMalformed).Inc()
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternal})
		return
	}

	input, ok := body.(map[string]any)
	if !ok {
		metrics.ContactSubmissions.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: msgValidationFailed,
			Details: []contactform.Violation{{
				Field:   "",
				Code:    contactform.CodeInvalidType,
				Message: "Expected object, received " + contactform.TypeName(body),
				Path:    []string{},
			}},
		})
		return
	}

	start := time.Now()
	msg, err := h.contactService.Submit(r.Context(), input)
	metrics.ContactStoreDuration.Observe(time.Since(start).Seconds())

	var ve *contactform.ValidationError
	switch {
	case errors.As(err, &ve):
		metrics.ContactSubmissions.WithLabelValues(metrics.OutcomeInvalid).Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   msgValidationFailed,
			Details: ve.Violations,
		})
		return
	case err != nil:
		slog.Error("contact: submit failed", "error", err)
		metrics.ContactSubmissions.WithLabelValues(metrics.OutcomeError).Inc()
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgInternal})
		return
	}

	metrics.ContactSubmissions.WithLabelValues(metrics.OutcomeCreated).Inc()
	slog.Info("contact: message stored", "id", msg.ID)
	writeJSON(w, http.StatusCreated, submitResponse{Message: msgCreated, ID: msg.ID})
}

// decodeBody parses exactly one JSON value from the request body.
func decodeBody(w http.ResponseWriter, r *http.Request) (any, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return body, nil
}

// adminListResponse is the JSON response for GET /api/admin/contacts.
type adminListResponse struct {
	Messages []*model.ContactMessage `json:"messages"`
}

// AdminList handles GET /api/admin/contacts.
// Supports query params: limit (1..100, default 20), offset.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	opts := model.ContactListOptions{
		Limit:  defaultListLimit,
		Offset: 0,
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= maxListLimit {
			opts.Limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	messages, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		slog.Error("contact: list failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list_failed"})
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}

	writeJSON(w, http.StatusOK, adminListResponse{Messages: messages})
}

// AdminGet handles GET /api/admin/contacts/{id}.
func (h *ContactHandler) AdminGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		return
	}

	msg, err := h.contactService.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		return
	}
	if err != nil {
		slog.Error("contact: get failed", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "get_failed"})
		return
	}

	writeJSON(w, http.StatusOK, msg)
}
