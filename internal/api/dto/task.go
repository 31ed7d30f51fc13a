package dto

import (
	"github.com/flexprice/billing-console/internal/types"
	"github.com/flexprice/billing-console/internal/validator"
)

type TaskType string

const (
	TaskTypeImport TaskType = "IMPORT"
	TaskTypeExport TaskType = "EXPORT"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusFailed     TaskStatus = "FAILED"
)

type TaskEntityType string

const (
	TaskEntityTypeCustomers TaskEntityType = "CUSTOMERS"
	TaskEntityTypeFeatures  TaskEntityType = "FEATURES"
	TaskEntityTypeEvents    TaskEntityType = "EVENTS"
)

// ImportCompletedRequest is the payload the embedded CSV widget posts when
// an upload finishes. The console forwards it to the backend's task API
// after summarising the file.
type ImportCompletedRequest struct {
	EntityType TaskEntityType `json:"entity_type" validate:"required"`
	FileURL    string         `json:"file_url" validate:"required,url"`
	FileName   string         `json:"file_name,omitempty"`
	RowCount   int            `json:"row_count" validate:"min=0"`
}

func (r *ImportCompletedRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type CreateTaskRequest struct {
	TaskType   TaskType       `json:"task_type" validate:"required"`
	EntityType TaskEntityType `json:"entity_type" validate:"required"`
	FileURL    string         `json:"file_url" validate:"required,url"`
	FileName   string         `json:"file_name,omitempty"`
	Metadata   types.Metadata `json:"metadata,omitempty"`
}

func (r *CreateTaskRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ImportPreviewResponse summarises a CSV file before the import task is
// created: how many data rows it has and which rows fail the per-entity
// column checks.
type ImportPreviewResponse struct {
	EntityType  TaskEntityType `json:"entity_type"`
	RowCount    int            `json:"row_count"`
	InvalidRows []int          `json:"invalid_rows,omitempty"`
}

type TaskResponse struct {
	ID                string         `json:"id"`
	TaskType          TaskType       `json:"task_type"`
	EntityType        TaskEntityType `json:"entity_type"`
	TaskStatus        TaskStatus     `json:"task_status"`
	FileURL           string         `json:"file_url"`
	FileName          string         `json:"file_name,omitempty"`
	TotalRecords      *int           `json:"total_records,omitempty"`
	ProcessedRecords  int            `json:"processed_records"`
	SuccessfulRecords int            `json:"successful_records"`
	FailedRecords     int            `json:"failed_records"`
	ErrorSummary      *string        `json:"error_summary,omitempty"`
	types.BaseModel
}

// ListTasksResponse represents the response for listing tasks.
type ListTasksResponse = types.ListResponse[*TaskResponse]
