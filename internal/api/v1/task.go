package v1

import (
	"io"
	"net/http"

	"github.com/flexprice/billing-console/internal/api/dto"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/logger"
	"github.com/flexprice/billing-console/internal/service"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	service service.TaskService
	log     *logger.Logger
}

func NewTaskHandler(service service.TaskService, log *logger.Logger) *TaskHandler {
	return &TaskHandler{service: service, log: log}
}

// @Summary Get a task by ID
// @Tags Tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	resp, err := h.service.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.ListTasksResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var filter types.QueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListTasks(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Register a completed CSV import
// @Description Forward the CSV widget's completion payload to the backend task API
// @Tags Tasks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param import body dto.ImportCompletedRequest true "Import completion payload"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /tasks/import-completed [post]
func (h *TaskHandler) ImportCompleted(c *gin.Context) {
	var req dto.ImportCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ImportCompleted(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Preview an import file
// @Description Parse an uploaded CSV and report row counts before the import task is created
// @Tags Tasks
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param entity_type formData string true "Entity type"
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.ImportPreviewResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /tasks/preview-import [post]
func (h *TaskHandler) PreviewImport(c *gin.Context) {
	entityType := dto.TaskEntityType(c.PostForm("entity_type"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("A CSV file is required").
			Mark(ierr.ErrValidation))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("The file could not be read").
			Mark(ierr.ErrValidation))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("The file could not be read").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.PreviewImport(c.Request.Context(), entityType, data)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
