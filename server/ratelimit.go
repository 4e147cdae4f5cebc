package server

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	apperrors "github.com/jrsteele09/go-storefront-api/internal/errors"
	"github.com/jrsteele09/go-storefront-api/internal/metrics"
)

const defaultCleanupInterval = 5 * time.Minute

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter keeps one token bucket per route and client IP. Entries idle for two cleanup
// intervals are dropped by a background goroutine until Stop is called.
type RateLimiter struct {
	perMinute       int
	limit           rate.Limit
	burst           int
	cleanupInterval time.Duration
	metrics         metrics.Recorder

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewRateLimiter(perMinute int, recorder metrics.Recorder) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	rl := &RateLimiter{
		perMinute:       perMinute,
		limit:           rate.Limit(float64(perMinute) / 60.0),
		burst:           perMinute,
		cleanupInterval: defaultCleanupInterval,
		metrics:         recorder,
		limiters:        make(map[string]*clientLimiter),
		stopCh:          make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Allow consumes a token for key
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiterFor(key).Allow()
}

// Len is the number of tracked clients
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if cl, ok := rl.limiters[key]; ok {
		cl.lastAccess = time.Now()
		return cl.limiter
	}
	cl := &clientLimiter{
		limiter:    rate.NewLimiter(rl.limit, rl.burst),
		lastAccess: time.Now(),
	}
	rl.limiters[key] = cl
	return cl.limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *RateLimiter) cleanup(now time.Time) {
	ttl := rl.cleanupInterval * 2

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, key)
		}
	}
}

// retryAfter is the estimated seconds until one token is refilled
func (rl *RateLimiter) retryAfter() int {
	secs := int(math.Ceil(60.0 / float64(rl.perMinute)))
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Middleware rejects requests over the per-client budget with 429
func (rl *RateLimiter) Middleware(route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientIP(r)
			if !rl.Allow(route + "|" + client) {
				rl.metrics.RecordRateLimited(route)
				log.Warn().Str("client", client).Str("route", route).Msg("rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(rl.retryAfter()))
				writeError(w, r, apperrors.RateLimited("too many requests, please try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit returns the limiter middleware for route, or a pass-through when limiting is off
func (s *Server) RateLimit(route string) Middleware {
	if s.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return s.limiter.Middleware(route)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
