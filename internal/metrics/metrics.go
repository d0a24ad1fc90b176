// Package metrics holds the Prometheus instruments for the contact API.
// All collectors are registered with the global registry, so mounting
// promhttp.Handler() is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes recorded by ContactSubmissions.
const (
	OutcomeCreated   = "created"
	OutcomeInvalid   = "invalid"
	OutcomeMalformed = "malformed"
	OutcomeError     = "error"
)

var (
	ContactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact form submissions by outcome.",
		},
		[]string{"outcome"},
	)

	ContactStoreDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "contact_store_duration_seconds",
			Help:    "Time spent validating and persisting a contact submission.",
			Buckets: prometheus.DefBuckets,
		})

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter.",
		})
)

func init() {
	prometheus.MustRegister(
		ContactSubmissions,
		ContactStoreDuration,
		RateLimited,
	)
}
