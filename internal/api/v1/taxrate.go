package v1

import (
	"net/http"

	"github.com/flexprice/billing-console/internal/api/dto"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/logger"
	"github.com/flexprice/billing-console/internal/service"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/gin-gonic/gin"
)

type TaxRateHandler struct {
	service service.TaxRateService
	log     *logger.Logger
}

func NewTaxRateHandler(service service.TaxRateService, log *logger.Logger) *TaxRateHandler {
	return &TaxRateHandler{service: service, log: log}
}

// @Summary Create a tax rate
// @Tags TaxRates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param tax_rate body dto.CreateTaxRateRequest true "Tax rate form"
// @Success 201 {object} dto.TaxRateResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /tax-rates [post]
func (h *TaxRateHandler) CreateTaxRate(c *gin.Context) {
	var req dto.CreateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateTaxRate(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to create tax rate", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary List tax rates
// @Tags TaxRates
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.ListTaxRatesResponse
// @Router /tax-rates [get]
func (h *TaxRateHandler) ListTaxRates(c *gin.Context) {
	var filter types.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListTaxRates(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a tax rate
// @Tags TaxRates
// @Security ApiKeyAuth
// @Param id path string true "Tax Rate ID"
// @Success 204
// @Router /tax-rates/{id} [delete]
func (h *TaxRateHandler) DeleteTaxRate(c *gin.Context) {
	if err := h.service.DeleteTaxRate(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
