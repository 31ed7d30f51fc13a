package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/flexprice/billing-console/internal/api/dto"
)

// PriceClient wraps the backend's price resource.
type PriceClient interface {
	Get(ctx context.Context, id string) (*dto.PriceResponse, error)
	ListByPlan(ctx context.Context, planID string) (*dto.ListPricesResponse, error)
	Create(ctx context.Context, req dto.CreatePriceRequest) (*dto.PriceResponse, error)
	Delete(ctx context.Context, id string) error
}

type priceClient struct {
	base *BaseClient
}

func NewPriceClient(base *BaseClient) PriceClient {
	return &priceClient{base: base}
}

func (c *priceClient) Get(ctx context.Context, id string) (*dto.PriceResponse, error) {
	var resp dto.PriceResponse
	if err := c.base.Do(ctx, http.MethodGet, fmt.Sprintf("/v1/prices/%s", id), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *priceClient) ListByPlan(ctx context.Context, planID string) (*dto.ListPricesResponse, error) {
	params := map[string]interface{}{
		"plan_id": planID,
	}
	var resp dto.ListPricesResponse
	if err := c.base.Do(ctx, http.MethodGet, "/v1/prices", params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *priceClient) Create(ctx context.Context, req dto.CreatePriceRequest) (*dto.PriceResponse, error) {
	var resp dto.PriceResponse
	if err := c.base.Do(ctx, http.MethodPost, "/v1/prices", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *priceClient) Delete(ctx context.Context, id string) error {
	return c.base.Do(ctx, http.MethodDelete, fmt.Sprintf("/v1/prices/%s", id), nil, nil, nil)
}
