package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/flexprice/billing-console/internal/api/dto"
	"github.com/flexprice/billing-console/internal/types"
)

// PlanClient wraps the backend's plan resource.
type PlanClient interface {
	Get(ctx context.Context, id string) (*dto.PlanResponse, error)
	List(ctx context.Context, filter *types.QueryFilter) (*dto.ListPlansResponse, error)
	Create(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanResponse, error)
	Update(ctx context.Context, id string, req dto.UpdatePlanRequest) (*dto.PlanResponse, error)
	Delete(ctx context.Context, id string) error
}

type planClient struct {
	base *BaseClient
}

func NewPlanClient(base *BaseClient) PlanClient {
	return &planClient{base: base}
}

func (c *planClient) Get(ctx context.Context, id string) (*dto.PlanResponse, error) {
	var resp dto.PlanResponse
	if err := c.base.Do(ctx, http.MethodGet, fmt.Sprintf("/v1/plans/%s", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *planClient) List(ctx context.Context, filter *types.QueryFilter) (*dto.ListPlansResponse, error) {
	var resp dto.ListPlansResponse
	if err := c.base.Do(ctx, http.MethodGet, "/v1/plans", filterParams(filter), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *planClient) Create(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	var resp dto.PlanResponse
	if err := c.base.Do(ctx, http.MethodPost, "/v1/plans", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *planClient) Update(ctx context.Context, id string, req dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	var resp dto.PlanResponse
	if err := c.base.Do(ctx, http.MethodPut, fmt.Sprintf("/v1/plans/%s", id), nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *planClient) Delete(ctx context.Context, id string) error {
	return c.base.Do(ctx, http.MethodDelete, fmt.Sprintf("/v1/plans/%s", id), nil, nil, nil)
}

// filterParams converts a query filter into request parameters.
func filterParams(filter *types.QueryFilter) map[string]interface{} {
	if filter == nil {
		return nil
	}
	params := map[string]interface{}{}
	if filter.Limit != nil {
		params["limit"] = *filter.Limit
	}
	if filter.Offset != nil {
		params["offset"] = *filter.Offset
	}
	if filter.Status != nil {
		params["status"] = string(*filter.Status)
	}
	if filter.Sort != nil {
		params["sort"] = *filter.Sort
	}
	if filter.Order != nil {
		params["order"] = *filter.Order
	}
	return params
}
