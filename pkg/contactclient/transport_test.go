package contactclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/pkg/contactform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var validSubmission = contactform.Submission{
	Name:    "Al",
	Email:   "al@example.com",
	Message: "Hello there!",
}

func TestHTTPTransport_Created(t *testing.T) {
	var got contactform.Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/contact", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Contact message sent successfully","id":"abc"}`))
	}))
	defer srv.Close()

	receipt, err := NewHTTPTransport(srv.URL+"/", time.Second).Send(context.Background(), validSubmission)

	require.NoError(t, err)
	assert.Equal(t, &Receipt{ID: "abc", Message: "Contact message sent successfully"}, receipt)
	assert.Equal(t, validSubmission, got)
}

func TestHTTPTransport_ValidationFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Validation failed","details":[` +
			`{"field":"email","code":"invalid_string","message":"Invalid email address","path":["email"]}]}`))
	}))
	defer srv.Close()

	_, err := NewHTTPTransport(srv.URL, time.Second).Send(context.Background(), validSubmission)

	var rve *RemoteValidationError
	require.ErrorAs(t, err, &rve)
	assert.Equal(t, "Validation failed", rve.Message)
	require.Len(t, rve.Violations, 1)
	assert.Equal(t, "email", rve.Violations[0].Field)
}

func TestHTTPTransport_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPTransport(srv.URL, time.Second).Send(context.Background(), validSubmission)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "Internal server error", se.Message)
}

func TestHTTPTransport_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPTransport(url, time.Second).Send(context.Background(), validSubmission)

	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se), "network failures carry no status")
}

// TestController_AgainstServer runs the client against the real router.
func TestController_AgainstServer(t *testing.T) {
	repo := repository.NewMemoryContactRepository()
	srv := httptest.NewServer(handler.NewRouter(handler.RouterConfig{
		DB:             repo,
		ContactService: service.NewContactService(repo),
		FrontendURL:    "http://localhost:3000",
	}))
	defer srv.Close()

	c := NewController(NewHTTPTransport(srv.URL, time.Second))
	fill(t, c, "Al", "al@example.com", "Hello there!")

	receipt, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ID)
	assert.Equal(t, "Contact message sent successfully", receipt.Message)

	stored, err := repo.FindByID(context.Background(), receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, "al@example.com", stored.Email)
}
