//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"slot-booking/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidators_SlotIDTag(t *testing.T) {
	require.NoError(t, middleware.RegisterValidators())

	type query struct {
		Start string `form:"start" binding:"required,slotid"`
	}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/q", func(c *gin.Context) {
		var q query
		if err := c.ShouldBindQuery(&q); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	cases := map[string]int{
		"2025-08-04-09": http.StatusOK,
		"2025-8-4-9":    http.StatusBadRequest,
		"2025-02-30-09": http.StatusBadRequest,
		"2025-08-04-24": http.StatusBadRequest,
		"":              http.StatusBadRequest,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/q?start="+in, nil))
			assert.Equal(t, want, w.Code)
		})
	}
}
