package service

import (
	"context"
	"fmt"

	"github.com/flexprice/billing-console/internal/api/dto"
	"github.com/flexprice/billing-console/internal/cache"
	"github.com/flexprice/billing-console/internal/domain/plan"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

type PlanService interface {
	GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error)
	ListPlans(ctx context.Context, filter *types.QueryFilter) (*dto.ListPlansResponse, error)
	CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanResponse, error)
	UpdatePlan(ctx context.Context, id string, req dto.UpdatePlanRequest) (*dto.PlanResponse, error)
	DeletePlan(ctx context.Context, id string) error

	// NormalizePlan buckets a plan's prices by billing period, then currency,
	// into presentation charge rows. Empty or missing prices yield an empty
	// charges map; buckets with no rows simply do not appear.
	NormalizePlan(planResp *dto.PlanResponse) *plan.NormalizedPlan

	// GetNormalizedPlan fetches the plan with its prices and returns the
	// derived charge view.
	GetNormalizedPlan(ctx context.Context, id string) (*dto.NormalizedPlanResponse, error)

	// PriceTableCharge renders the display string for one charge row.
	PriceTableCharge(charge plan.ChargeRow, period types.BillingPeriod) string

	// ActualPriceForTotal returns the amount the pricing table adds into its
	// preview total. For tiered charges this is the first tier's flat amount,
	// a display approximation only; authoritative totals come from the
	// backend.
	ActualPriceForTotal(charge plan.ChargeRow) decimal.Decimal
}

type planService struct {
	ServiceParams
}

func NewPlanService(params ServiceParams) PlanService {
	return &planService{
		ServiceParams: params,
	}
}

func (s *planService) GetPlan(ctx context.Context, id string) (*dto.PlanResponse, error) {
	if id == "" {
		return nil, ierr.NewError("plan ID is required").
			WithHint("Please provide a valid plan ID").
			Mark(ierr.ErrValidation)
	}

	cacheKey := cache.Key("plan", id)
	if cached, found := s.Cache.Get(ctx, cacheKey); found {
		if resp, ok := cache.UnmarshalCacheValue[dto.PlanResponse](cached); ok {
			return resp, nil
		}
		s.Cache.Delete(ctx, cacheKey)
	}

	var planResp *dto.PlanResponse
	var pricesResp *dto.ListPricesResponse

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		var err error
		planResp, err = s.PlanClient.Get(ctx, id)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		pricesResp, err = s.PriceClient.ListByPlan(ctx, id)
		return err
	})
	if err := p.Wait(); err != nil {
		s.Logger.Errorw("failed to fetch plan with prices", "plan_id", id, "error", err)
		return nil, err
	}

	planResp.Prices = pricesResp.Items

	if s.Config.Cache.TTL > 0 {
		s.Cache.Set(ctx, cacheKey, planResp, s.Config.Cache.TTL)
	}

	return planResp, nil
}

func (s *planService) ListPlans(ctx context.Context, filter *types.QueryFilter) (*dto.ListPlansResponse, error) {
	if filter == nil {
		filter = types.NewDefaultQueryFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.PlanClient.List(ctx, filter)
}

func (s *planService) CreatePlan(ctx context.Context, req dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.PlanClient.Create(ctx, req)
}

func (s *planService) UpdatePlan(ctx context.Context, id string, req dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	if id == "" {
		return nil, ierr.NewError("plan ID is required").
			WithHint("Please provide a valid plan ID").
			Mark(ierr.ErrValidation)
	}

	resp, err := s.PlanClient.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.Cache.Delete(ctx, cache.Key("plan", id))
	return resp, nil
}

func (s *planService) DeletePlan(ctx context.Context, id string) error {
	if id == "" {
		return ierr.NewError("plan ID is required").
			WithHint("Please provide a valid plan ID").
			Mark(ierr.ErrValidation)
	}

	if err := s.PlanClient.Delete(ctx, id); err != nil {
		return err
	}

	s.Cache.Delete(ctx, cache.Key("plan", id))
	return nil
}

func (s *planService) NormalizePlan(planResp *dto.PlanResponse) *plan.NormalizedPlan {
	normalized := &plan.NormalizedPlan{
		Charges: make(map[types.BillingPeriod]map[string][]plan.ChargeRow),
	}
	if planResp == nil || planResp.Plan == nil {
		return normalized
	}

	normalized.ID = planResp.Plan.ID
	normalized.Name = planResp.Plan.Name

	for _, priceResp := range planResp.Prices {
		if priceResp == nil || priceResp.Price == nil {
			continue
		}
		p := priceResp.Price

		row := plan.ChargeRow{
			PriceID:       p.ID,
			MeterID:       p.MeterID,
			Type:          p.Type,
			BillingModel:  p.BillingModel,
			TierMode:      p.TierMode,
			Currency:      p.Currency,
			Amount:        p.Amount,
			DisplayAmount: p.GetDisplayAmount(),
			DivideBy:      p.TransformQuantity.DivideBy,
			Tiers:         p.Tiers,
		}

		byCurrency, ok := normalized.Charges[p.BillingPeriod]
		if !ok {
			byCurrency = make(map[string][]plan.ChargeRow)
			normalized.Charges[p.BillingPeriod] = byCurrency
		}
		byCurrency[p.Currency] = append(byCurrency[p.Currency], row)
	}

	return normalized
}

func (s *planService) GetNormalizedPlan(ctx context.Context, id string) (*dto.NormalizedPlanResponse, error) {
	planResp, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.NormalizedPlanResponse{NormalizedPlan: s.NormalizePlan(planResp)}, nil
}

func (s *planService) PriceTableCharge(charge plan.ChargeRow, period types.BillingPeriod) string {
	unit := period.Unit()

	switch charge.BillingModel {
	case types.BILLING_MODEL_PACKAGE:
		return fmt.Sprintf("%s /unit/%s", charge.DisplayAmount, unit)
	case types.BILLING_MODEL_TIERED:
		flat := decimal.Zero
		if len(charge.Tiers) > 0 && charge.Tiers[0].FlatAmount != nil {
			flat = *charge.Tiers[0].FlatAmount
		}
		symbol := types.GetCurrencySymbol(charge.Currency)
		return fmt.Sprintf("Starts at %s%s/unit/%s", symbol, types.FormatAmountToStringWithPrecision(flat, charge.Currency), unit)
	default:
		return fmt.Sprintf("%s /%s", charge.DisplayAmount, unit)
	}
}

func (s *planService) ActualPriceForTotal(charge plan.ChargeRow) decimal.Decimal {
	if charge.BillingModel == types.BILLING_MODEL_TIERED {
		if len(charge.Tiers) > 0 && charge.Tiers[0].FlatAmount != nil {
			return *charge.Tiers[0].FlatAmount
		}
		return decimal.Zero
	}
	return charge.Amount
}
