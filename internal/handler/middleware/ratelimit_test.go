//go:build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"slot-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNow struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeNow) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeNow) add(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func newLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/book", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusCreated) })
	return r
}

func post(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/book", nil)
	req.RemoteAddr = ip + ":40000"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	clk := &fakeNow{t: time.Date(2025, 8, 4, 9, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(config.RateLimitConfig{RPS: 1, Burst: 2}, withNow(clk.now))
	r := newLimitedRouter(rl)

	assert.Equal(t, http.StatusCreated, post(r, "10.0.0.1").Code)
	assert.Equal(t, http.StatusCreated, post(r, "10.0.0.1").Code)

	w := post(r, "10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, w.Body.String())

	// other clients keep their own bucket
	assert.Equal(t, http.StatusCreated, post(r, "10.0.0.2").Code)

	clk.add(time.Second)
	assert.Equal(t, http.StatusCreated, post(r, "10.0.0.1").Code)
}

func TestRateLimiter_CleanupDropsIdleEntries(t *testing.T) {
	clk := &fakeNow{t: time.Date(2025, 8, 4, 9, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(config.RateLimitConfig{RPS: 1, Burst: 1}, withNow(clk.now), WithIdleTTL(time.Minute))

	require.True(t, rl.allow("a"))
	clk.add(30 * time.Second)
	require.True(t, rl.allow("b"))

	clk.add(45 * time.Second)
	assert.Equal(t, 1, rl.Cleanup())

	rl.mu.Lock()
	_, hasA := rl.entries["a"]
	_, hasB := rl.entries["b"]
	rl.mu.Unlock()
	assert.False(t, hasA)
	assert.True(t, hasB)
}

func TestNewRateLimiter_BurstFloor(t *testing.T) {
	rl := NewRateLimiter(config.RateLimitConfig{RPS: 1, Burst: 0})
	assert.Equal(t, 1, rl.burst)
}
