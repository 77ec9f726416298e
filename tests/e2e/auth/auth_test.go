//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	resdto "slot-booking/internal/handler/dto/response"
	"slot-booking/internal/pkg/clock"
	"slot-booking/internal/pkg/jwt"
	"slot-booking/tests/common/httptest"
	"slot-booking/tests/e2e"

	"github.com/stretchr/testify/suite"
)

type AuthE2ETestSuite struct {
	e2e.SharedSuite
}

func TestAuthE2ESuite(t *testing.T) {
	suite.Run(t, new(AuthE2ETestSuite))
}

const customTokenPath = "/api/auth/custom-token"

func (s *AuthE2ETestSuite) issue(lineUserID string) string {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, customTokenPath,
		map[string]any{"lineUserId": lineUserID}, "")
	var resp resdto.CustomTokenResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
	s.Require().NotEmpty(resp.CustomToken)
	return resp.CustomToken
}

func (s *AuthE2ETestSuite) TestCustomToken() {
	verifier := func() *jwt.Service {
		return jwt.NewService(s.Config.JWT.Secret, s.Config.JWT.Issuer, 0, clock.NewRealClock())
	}

	s.Run("初回ログインでアカウントが作成され、再ログインでも同じアカウントになる", func() {
		first, err := verifier().ValidateToken(s.issue("U-e2e-1"))
		s.Require().NoError(err)
		second, err := verifier().ValidateToken(s.issue("U-e2e-1"))
		s.Require().NoError(err)

		s.Equal(first.AccountID, second.AccountID)
		s.Equal("U-e2e-1", second.LineUserID)

		var n int
		s.Require().NoError(s.DB.QueryRow(s.T().Context(),
			"SELECT count(*) FROM accounts WHERE line_user_id = $1", "U-e2e-1").Scan(&n))
		s.Equal(1, n)
	})

	s.Run("LINEユーザーIDがなければ400", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, customTokenPath, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Missing LINE user ID")
	})

	s.Run("発行したトークンで予約できる", func() {
		token := s.issue("U-e2e-2")
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reservations", map[string]any{
			"ownerId":       "frank",
			"startDateTime": "2025-08-08-10",
			"durationHours": 1,
		}, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("不正なトークンは401", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/reservations?start=2025-08-08-08&end=2025-08-08-20", nil, "garbage")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}
