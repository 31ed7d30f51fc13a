package service

import (
	"context"

	"github.com/flexprice/billing-console/internal/api/dto"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
)

type TaxRateService interface {
	CreateTaxRate(ctx context.Context, req dto.CreateTaxRateRequest) (*dto.TaxRateResponse, error)
	ListTaxRates(ctx context.Context, filter *types.QueryFilter) (*dto.ListTaxRatesResponse, error)
	DeleteTaxRate(ctx context.Context, id string) error
}

type taxRateService struct {
	ServiceParams
}

func NewTaxRateService(params ServiceParams) TaxRateService {
	return &taxRateService{
		ServiceParams: params,
	}
}

func (s *taxRateService) CreateTaxRate(ctx context.Context, req dto.CreateTaxRateRequest) (*dto.TaxRateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.TaxRateClient.Create(ctx, req)
}

func (s *taxRateService) ListTaxRates(ctx context.Context, filter *types.QueryFilter) (*dto.ListTaxRatesResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.TaxRateClient.List(ctx, filter)
}

func (s *taxRateService) DeleteTaxRate(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("tax rate ID is required").
			WithHint("Please provide a valid tax rate ID").
			Mark(ierr.ErrValidation)
	}
	return s.TaxRateClient.Delete(ctx, id)
}
