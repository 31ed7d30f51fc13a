package v1

import (
	"net/http"

	"github.com/flexprice/billing-console/internal/auth"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/logger"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	provider auth.Provider
	log      *logger.Logger
}

func NewAuthHandler(provider auth.Provider, log *logger.Logger) *AuthHandler {
	return &AuthHandler{provider: provider, log: log}
}

// @Summary Sign in to the console
// @Description Validate credentials against the identity provider and return a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param login body auth.AuthRequest true "Credentials"
// @Success 200 {object} auth.AuthResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.provider.Login(c.Request.Context(), req)
	if err != nil {
		h.log.Debugw("login failed", "email", req.Email, "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
