package api

import (
	"net/http"
	"strings"

	reqdto "slot-booking/internal/handler/dto/request"
	resdto "slot-booking/internal/handler/dto/response"
	"slot-booking/internal/handler/httperr"
	"slot-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds commands.AuthCommands
}

func NewAuthHandler(cmds commands.AuthCommands) *AuthHandler {
	return &AuthHandler{cmds: cmds}
}

// @Summary Issue custom token
// @Description Exchange a LINE user ID for a session token, creating the account on first login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.CustomTokenRequest true "LINE user"
// @Success 200 {object} resdto.CustomTokenResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /auth/custom-token [post]
func (h *AuthHandler) CustomToken(c *gin.Context) {
	var req reqdto.CustomTokenRequest
	// A malformed body is treated like an absent id.
	_ = c.ShouldBindJSON(&req)
	if strings.TrimSpace(req.LineUserID) == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingLineUserID, "Missing LINE user ID", nil)
		return
	}

	result, err := h.cmds.IssueCustomToken(c.Request.Context(), req.LineUserID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.CustomTokenResponse{CustomToken: result.Token})
}
