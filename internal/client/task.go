package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/flexprice/billing-console/internal/api/dto"
	"github.com/flexprice/billing-console/internal/types"
)

// TaskClient wraps the backend's import/export task resource.
type TaskClient interface {
	Get(ctx context.Context, id string) (*dto.TaskResponse, error)
	List(ctx context.Context, filter *types.QueryFilter) (*dto.ListTasksResponse, error)
	Create(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error)
}

type taskClient struct {
	base *BaseClient
}

func NewTaskClient(base *BaseClient) TaskClient {
	return &taskClient{base: base}
}

func (c *taskClient) Get(ctx context.Context, id string) (*dto.TaskResponse, error) {
	var resp dto.TaskResponse
	if err := c.base.Do(ctx, http.MethodGet, fmt.Sprintf("/v1/tasks/%s", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *taskClient) List(ctx context.Context, filter *types.QueryFilter) (*dto.ListTasksResponse, error) {
	var resp dto.ListTasksResponse
	if err := c.base.Do(ctx, http.MethodGet, "/v1/tasks", filterParams(filter), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *taskClient) Create(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	var resp dto.TaskResponse
	if err := c.base.Do(ctx, http.MethodPost, "/v1/tasks", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
