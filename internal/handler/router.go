package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/pkg/auth"
)

// RouterConfig carries the dependencies of the HTTP surface.
type RouterConfig struct {
	DB             repository.DB
	ContactService service.ContactService
	FrontendURL    string

	// AdminToken enables the operator endpoints when non-empty.
	AdminToken string

	// RateLimiter guards POST /api/contact when non-nil.
	RateLimiter *RateLimiter

	// Metrics mounts GET /metrics.
	Metrics bool
}

// NewRouter builds the API handler with its middleware chain:
// request id → access log → panic recovery → security headers → CORS → routes.
func NewRouter(cfg RouterConfig) http.Handler {
	h := New(cfg.DB, cfg.FrontendURL)
	contactHandler := NewContactHandler(cfg.ContactService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	var submit http.Handler = http.HandlerFunc(contactHandler.Submit)
	if cfg.RateLimiter != nil {
		submit = cfg.RateLimiter.Middleware(submit)
	}
	mux.Handle("POST /api/contact", submit)

	// Operator routes (read-only)
	if cfg.AdminToken != "" {
		requireAdmin := auth.RequireAdminToken(cfg.AdminToken)
		mux.Handle("GET /api/admin/contacts", requireAdmin(http.HandlerFunc(contactHandler.AdminList)))
		mux.Handle("GET /api/admin/contacts/{id}", requireAdmin(http.HandlerFunc(contactHandler.AdminGet)))
	}

	if cfg.Metrics {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	var root http.Handler = mux
	root = h.CORS(root)
	root = SecurityHeaders(root)
	root = middleware.Recoverer(root)
	root = RequestLogger(root)
	root = middleware.RequestID(root)
	return root
}
