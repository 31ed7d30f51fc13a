package v1

import (
	"net/http"

	"github.com/flexprice/billing-console/internal/api/dto"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/logger"
	"github.com/flexprice/billing-console/internal/service"
	"github.com/gin-gonic/gin"
)

// TierHandler exposes the tier table transforms the pricing editor applies
// on every row action. Each endpoint takes the current tier list and returns
// the transformed one; nothing is persisted until the price is saved.
type TierHandler struct {
	service service.TierEditorService
	log     *logger.Logger
}

func NewTierHandler(service service.TierEditorService, log *logger.Logger) *TierHandler {
	return &TierHandler{service: service, log: log}
}

// @Summary Append a tier
// @Description Close the current open-ended tier and append a new open-ended one
// @Tags Tiers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param tiers body dto.TierListRequest true "Current tier list"
// @Success 200 {object} dto.TierListResponse
// @Router /tiers/add [post]
func (h *TierHandler) AddTier(c *gin.Context) {
	var req dto.TierListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	c.JSON(http.StatusOK, dto.TierListResponse{Tiers: h.service.AddTier(req.Tiers)})
}

// @Summary Remove a tier
// @Description Remove one tier, re-linking its neighbours. The sole remaining tier cannot be removed.
// @Tags Tiers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param tiers body dto.RemoveTierRequest true "Tier list and index"
// @Success 200 {object} dto.TierListResponse
// @Router /tiers/remove [post]
func (h *TierHandler) RemoveTier(c *gin.Context) {
	var req dto.RemoveTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	c.JSON(http.StatusOK, dto.TierListResponse{Tiers: h.service.RemoveTier(req.Tiers, req.Index)})
}

// @Summary Update a tier cell
// @Description Apply one cell edit, cascading boundary changes to the adjacent tier
// @Tags Tiers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param update body dto.UpdateTierRequest true "Tier list, index, field and raw value"
// @Success 200 {object} dto.TierListResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /tiers/update [post]
func (h *TierHandler) UpdateTier(c *gin.Context) {
	var req dto.UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	tiers, err := h.service.UpdateTier(req.Tiers, req.Index, req.Field, req.Value)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.TierListResponse{Tiers: tiers})
}

// @Summary Validate a tier list
// @Description Check the contiguity invariant over a full tier list before save
// @Tags Tiers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param tiers body dto.TierListRequest true "Tier list"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Router /tiers/validate [post]
func (h *TierHandler) ValidateTiers(c *gin.Context) {
	var req dto.TierListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.service.ValidateTierList(req.Tiers); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
