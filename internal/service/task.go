package service

import (
	"context"
	"strconv"

	"github.com/flexprice/billing-console/internal/api/dto"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/gocarina/gocsv"
)

// customerImportRow mirrors the columns of a customer import file.
type customerImportRow struct {
	ExternalID string `csv:"external_id"`
	Email      string `csv:"email"`
	Name       string `csv:"name"`
}

// featureImportRow mirrors the columns of a feature import file.
type featureImportRow struct {
	Name       string `csv:"name"`
	LookupKey  string `csv:"lookup_key"`
	UnitPlural string `csv:"unit_plural"`
}

// eventImportRow mirrors the columns of a usage-event import file.
type eventImportRow struct {
	EventName          string `csv:"event_name"`
	ExternalCustomerID string `csv:"external_customer_id"`
	Timestamp          string `csv:"timestamp"`
}

type TaskService interface {
	GetTask(ctx context.Context, id string) (*dto.TaskResponse, error)
	ListTasks(ctx context.Context, filter *types.QueryFilter) (*dto.ListTasksResponse, error)

	// ImportCompleted forwards the CSV widget's completion payload to the
	// backend task API as a new import task.
	ImportCompleted(ctx context.Context, req dto.ImportCompletedRequest) (*dto.TaskResponse, error)

	// PreviewImport parses the raw CSV bytes and reports the row count plus
	// the rows missing required columns for the entity type.
	PreviewImport(ctx context.Context, entityType dto.TaskEntityType, data []byte) (*dto.ImportPreviewResponse, error)
}

type taskService struct {
	ServiceParams
}

func NewTaskService(params ServiceParams) TaskService {
	return &taskService{
		ServiceParams: params,
	}
}

func (s *taskService) GetTask(ctx context.Context, id string) (*dto.TaskResponse, error) {
	if id == "" {
		return nil, ierr.NewError("task ID is required").
			WithHint("Please provide a valid task ID").
			Mark(ierr.ErrValidation)
	}
	return s.TaskClient.Get(ctx, id)
}

func (s *taskService) ListTasks(ctx context.Context, filter *types.QueryFilter) (*dto.ListTasksResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.TaskClient.List(ctx, filter)
}

func (s *taskService) ImportCompleted(ctx context.Context, req dto.ImportCompletedRequest) (*dto.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.TaskClient.Create(ctx, dto.CreateTaskRequest{
		TaskType:   dto.TaskTypeImport,
		EntityType: req.EntityType,
		FileURL:    req.FileURL,
		FileName:   req.FileName,
		Metadata: types.Metadata{
			"row_count": strconv.Itoa(req.RowCount),
		},
	})
	if err != nil {
		s.Logger.Errorw("failed to create import task", "entity_type", req.EntityType, "file_url", req.FileURL, "error", err)
		return nil, err
	}

	s.Logger.Infow("import task created", "task_id", resp.ID, "entity_type", req.EntityType, "row_count", req.RowCount)
	return resp, nil
}

func (s *taskService) PreviewImport(ctx context.Context, entityType dto.TaskEntityType, data []byte) (*dto.ImportPreviewResponse, error) {
	preview := &dto.ImportPreviewResponse{EntityType: entityType}

	var err error
	switch entityType {
	case dto.TaskEntityTypeCustomers:
		var rows []*customerImportRow
		if err = gocsv.UnmarshalBytes(data, &rows); err == nil {
			preview.RowCount = len(rows)
			for i, row := range rows {
				if row.ExternalID == "" {
					preview.InvalidRows = append(preview.InvalidRows, i)
				}
			}
		}

	case dto.TaskEntityTypeFeatures:
		var rows []*featureImportRow
		if err = gocsv.UnmarshalBytes(data, &rows); err == nil {
			preview.RowCount = len(rows)
			for i, row := range rows {
				if row.Name == "" || row.LookupKey == "" {
					preview.InvalidRows = append(preview.InvalidRows, i)
				}
			}
		}

	case dto.TaskEntityTypeEvents:
		var rows []*eventImportRow
		if err = gocsv.UnmarshalBytes(data, &rows); err == nil {
			preview.RowCount = len(rows)
			for i, row := range rows {
				if row.EventName == "" || row.ExternalCustomerID == "" {
					preview.InvalidRows = append(preview.InvalidRows, i)
				}
			}
		}

	default:
		return nil, ierr.NewError("unsupported import entity type").
			WithHint("Unsupported import entity type").
			WithReportableDetails(map[string]interface{}{
				"entity_type": entityType,
			}).
			Mark(ierr.ErrValidation)
	}

	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("The file could not be parsed as CSV").
			Mark(ierr.ErrValidation)
	}

	return preview, nil
}
