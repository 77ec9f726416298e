package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"slot-booking/internal/handler/httperr"
	"slot-booking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxAccountIDKey  = "account_id"
	ctxLineUserIDKey = "line_user_id"
)

type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

type SessionMiddleware struct {
	validator TokenValidator
}

func NewSessionMiddleware(validator TokenValidator) *SessionMiddleware {
	return &SessionMiddleware{validator: validator}
}

// OptionalSession attaches the session of a bearer token when one is sent.
// Requests without a token pass through; a bad token is rejected.
func (m *SessionMiddleware) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.validator.ValidateToken(token)
		if err != nil {
			slog.Warn("session token rejected", "error", err.Error(), "request_id", GetRequestID(c))
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxAccountIDKey, claims.AccountID)
		c.Set(ctxLineUserIDKey, claims.LineUserID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

func GetAccountID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxAccountIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetLineUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxLineUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
