// Package ratelimit provides per-client request throttling for the guest
// recovery endpoints, which would otherwise allow email enumeration by
// brute force.
package ratelimit

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"giftlist/internal/models"
)

// Limiter throttles requests per client IP using a token bucket per key.
// Idle buckets are dropped after an expiry sweep so the map does not grow
// unboundedly.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*clientBucket
	rate    rate.Limit
	burst   int
}

type clientBucket struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

const idleExpiry = 10 * time.Minute

// New creates a Limiter allowing n requests per minute with the given
// burst per client IP.
func New(perMinute, burst int) *Limiter {
	l := &Limiter{
		clients: make(map[string]*clientBucket),
		rate:    rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
	}
	go l.sweep()
	return l
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(idleExpiry)
	for range ticker.C {
		l.mu.Lock()
		for key, c := range l.clients {
			if time.Since(c.lastSeen) > idleExpiry {
				delete(l.clients, key)
			}
		}
		l.mu.Unlock()
	}
}

// Allow reports whether the client identified by key may proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok {
		c = &clientBucket{bucket: rate.NewLimiter(l.rate, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = time.Now()
	return c.bucket.Allow()
}

// Middleware rejects over-limit requests with 429 before they reach the
// handler.
func (l *Limiter) Middleware() func(h http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientIP(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(models.ErrorResponse{Errors: models.ErrRateLimited.Error()})
				return
			}
			h.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}

// clientIP extracts the caller address. The rightmost X-Forwarded-For
// entry is used because it is set by the trusted proxy; leftmost entries
// are client-controlled.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[len(parts)-1])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
