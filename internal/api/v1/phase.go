package v1

import (
	"net/http"

	"github.com/flexprice/billing-console/internal/api/dto"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/logger"
	"github.com/flexprice/billing-console/internal/service"
	"github.com/gin-gonic/gin"
)

// PhaseHandler exposes the subscription phase timeline transforms. Each
// endpoint takes the current timeline and returns the transformed one; the
// timeline is only persisted by the submit endpoint.
type PhaseHandler struct {
	service service.PhaseManagerService
	log     *logger.Logger
}

func NewPhaseHandler(service service.PhaseManagerService, log *logger.Logger) *PhaseHandler {
	return &PhaseHandler{service: service, log: log}
}

// @Summary Append a phase
// @Description Append a new phase starting where the last phase ends. The last phase must be closed first.
// @Tags Phases
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param phases body dto.PhaseTimelineRequest true "Current phase timeline"
// @Success 200 {object} dto.PhaseTimelineResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /phases/add [post]
func (h *PhaseHandler) AddPhase(c *gin.Context) {
	var req dto.PhaseTimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.AddPhase(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Remove a phase
// @Description Remove one phase, re-linking the neighbouring boundary
// @Tags Phases
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param phases body dto.RemovePhaseRequest true "Phase timeline and index"
// @Success 200 {object} dto.PhaseTimelineResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /phases/remove [post]
func (h *PhaseHandler) RemovePhase(c *gin.Context) {
	var req dto.RemovePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RemovePhase(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a phase
// @Description Apply a partial update to one phase, propagating boundary changes to its neighbours
// @Tags Phases
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param update body dto.UpdatePhaseRequest true "Phase timeline, index and update"
// @Success 200 {object} dto.PhaseTimelineResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /phases/update [post]
func (h *PhaseHandler) UpdatePhase(c *gin.Context) {
	var req dto.UpdatePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdatePhase(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Validate a phase timeline
// @Tags Phases
// @Accept json
// @Security ApiKeyAuth
// @Param phases body dto.PhaseTimelineRequest true "Phase timeline"
// @Success 204
// @Failure 400 {object} ierr.ErrorResponse
// @Router /phases/validate [post]
func (h *PhaseHandler) ValidateTimeline(c *gin.Context) {
	var req dto.PhaseTimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	if err := h.service.ValidateTimeline(c.Request.Context(), req); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Submit a phase timeline
// @Description Validate the timeline and push it wholesale to the billing backend
// @Tags Phases
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Subscription ID"
// @Param phases body dto.PhaseTimelineRequest true "Phase timeline"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /subscriptions/{id}/phases [put]
func (h *PhaseHandler) SubmitTimeline(c *gin.Context) {
	var req dto.PhaseTimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.SubmitTimeline(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.log.Error("Failed to submit phase timeline", "subscription_id", c.Param("id"), "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
