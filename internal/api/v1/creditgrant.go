package v1

import (
	"net/http"

	"github.com/flexprice/billing-console/internal/api/dto"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/logger"
	"github.com/flexprice/billing-console/internal/service"
	"github.com/gin-gonic/gin"
)

type CreditGrantHandler struct {
	service service.CreditGrantService
	log     *logger.Logger
}

func NewCreditGrantHandler(service service.CreditGrantService, log *logger.Logger) *CreditGrantHandler {
	return &CreditGrantHandler{service: service, log: log}
}

// @Summary Build a credit grant
// @Description Validate the grant form input and return the grant ready to attach to a phase
// @Tags CreditGrants
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param grant body dto.CreateCreditGrantRequest true "Credit grant form"
// @Success 200 {object} dto.CreditGrantResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /credit-grants/build [post]
func (h *CreditGrantHandler) BuildCreditGrant(c *gin.Context) {
	var req dto.CreateCreditGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.BuildCreditGrant(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Validate a batch of credit grants
// @Tags CreditGrants
// @Accept json
// @Security ApiKeyAuth
// @Param grants body dto.ValidateCreditGrantsRequest true "Credit grants"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Router /credit-grants/validate [post]
func (h *CreditGrantHandler) ValidateCreditGrants(c *gin.Context) {
	var req dto.ValidateCreditGrantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.service.ValidateCreditGrants(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
