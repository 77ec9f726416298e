package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"slot-booking/internal/handler/httperr"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const defaultLimiterIdleTTL = 15 * time.Minute

var errRateLimited = errs.New("rate limit exceeded")

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets unused for idleTTL
// are dropped by Cleanup.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

type RateLimiterOption func(*RateLimiter)

func WithIdleTTL(d time.Duration) RateLimiterOption {
	return func(r *RateLimiter) {
		if d > 0 {
			r.idleTTL = d
		}
	}
}

func withNow(now func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) { r.now = now }
}

func NewRateLimiter(cfg config.RateLimitConfig, opts ...RateLimiterOption) *RateLimiter {
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	r := &RateLimiter{
		entries: make(map[string]*limiterEntry),
		rps:     rate.Limit(cfg.RPS),
		burst:   burst,
		idleTTL: defaultLimiterIdleTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RateLimiter) allow(key string) bool {
	now := r.now()

	r.mu.Lock()
	e, ok := r.entries[key]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(r.rps, r.burst)}
		r.entries[key] = e
	}
	e.lastSeen = now
	r.mu.Unlock()

	return e.lim.AllowN(now, 1)
}

func (r *RateLimiter) Cleanup() int {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for k, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, k)
			removed++
		}
	}
	return removed
}

// StartJanitor runs Cleanup every interval until ctx is done.
func (r *RateLimiter) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := r.Cleanup(); n > 0 {
					slog.Debug("rate limiter entries evicted", "count", n)
				}
			}
		}
	}()
}

func (r *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !r.allow(ip) {
			slog.Warn("rate limit exceeded", "client_ip", ip, "request_id", GetRequestID(c))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Too many requests", nil)
			return
		}
		c.Next()
	}
}
