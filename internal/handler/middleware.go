package handler

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/portfolio/backend/internal/metrics"
)

// SecurityHeaders adds security response headers (CSP, X-Frame-Options, etc.)
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("X-XSS-Protection", "0")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

const rateWindow = time.Minute

// RateLimiter provides IP-based rate limiting using a sliding one-minute window.
type RateLimiter struct {
	maxPerWindow      int
	trustedProxyCount int
	now               func() time.Time

	mu      sync.Mutex
	clients map[string][]time.Time
}

// NewRateLimiter creates a rate limiter allowing maxPerMinute requests per
// client IP. trustedProxyCount is the number of reverse proxies in front of
// the server that append to X-Forwarded-For; zero ignores the header.
func NewRateLimiter(maxPerMinute, trustedProxyCount int) *RateLimiter {
	return &RateLimiter{
		maxPerWindow:      maxPerMinute,
		trustedProxyCount: trustedProxyCount,
		now:               time.Now,
		clients:           make(map[string][]time.Time),
	}
}

// Run prunes idle clients every interval until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.prune()
		}
	}
}

func (rl *RateLimiter) prune() {
	windowStart := rl.now().Add(-rateWindow)
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, ts := range rl.clients {
		ts = dropBefore(ts, windowStart)
		if len(ts) == 0 {
			delete(rl.clients, ip)
			continue
		}
		rl.clients[ip] = ts
	}
}

// allow records a request from ip. When the client is over its limit it
// returns false and the time until the oldest request leaves the window.
func (rl *RateLimiter) allow(ip string) (bool, time.Duration) {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	ts := dropBefore(rl.clients[ip], now.Add(-rateWindow))
	if len(ts) >= rl.maxPerWindow {
		rl.clients[ip] = ts
		return false, ts[0].Add(rateWindow).Sub(now)
	}
	rl.clients[ip] = append(ts, now)
	return true, 0
}

// Middleware returns an http.Handler that enforces rate limits. A limiter
// with a non-positive limit lets every request through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if rl.maxPerWindow <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)
		ok, retryAfter := rl.allow(ip)
		if !ok {
			metrics.RateLimited.Inc()
			slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", retryAfterSeconds(retryAfter))
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error": "rate limit exceeded",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// dropBefore filters ts in place, keeping timestamps after cutoff.
func dropBefore(ts []time.Time, cutoff time.Time) []time.Time {
	valid := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	return valid
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(d.Seconds()) + 1
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// clientIP extracts the real client IP, reading from the rightmost trusted
// proxy position in X-Forwarded-For to prevent spoofing.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && rl.trustedProxyCount > 0 {
		parts := strings.Split(xff, ",")
		idx := len(parts) - rl.trustedProxyCount
		if idx >= 0 && idx < len(parts) {
			return strings.TrimSpace(parts[idx])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
