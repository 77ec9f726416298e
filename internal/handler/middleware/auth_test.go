//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"slot-booking/internal/handler/middleware"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionProbe struct {
	accountID  uuid.UUID
	lineUserID string
	hasAccount bool
}

func newSessionRouter(svc *jwt.Service, probe *sessionProbe) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.NewSessionMiddleware(svc).OptionalSession())
	r.GET("/probe", func(c *gin.Context) {
		probe.accountID, probe.hasAccount = middleware.GetAccountID(c)
		probe.lineUserID, _ = middleware.GetLineUserID(c)
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestOptionalSession(t *testing.T) {
	now := time.Now()
	svc := jwt.NewService("test-secret", "slot-booking-test", time.Hour, clock.NewMockClock(now))
	accountID := uuid.New()
	token, err := svc.GenerateToken(accountID, "U123")
	require.NoError(t, err)

	t.Run("トークンなしはそのまま通す", func(t *testing.T) {
		probe := &sessionProbe{}
		w := httptest.NewRecorder()
		newSessionRouter(svc, probe).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.False(t, probe.hasAccount)
		assert.Empty(t, probe.lineUserID)
	})

	t.Run("有効なトークンはセッションを設定する", func(t *testing.T) {
		probe := &sessionProbe{}
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		newSessionRouter(svc, probe).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.True(t, probe.hasAccount)
		assert.Equal(t, accountID, probe.accountID)
		assert.Equal(t, "U123", probe.lineUserID)
	})

	t.Run("不正なトークンは401", func(t *testing.T) {
		probe := &sessionProbe{}
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		newSessionRouter(svc, probe).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Invalid or expired token"}`, w.Body.String())
		assert.False(t, probe.hasAccount)
	})
}
