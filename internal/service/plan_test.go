package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/flexprice/billing-console/internal/api/dto"
	"github.com/flexprice/billing-console/internal/client"
	"github.com/flexprice/billing-console/internal/domain/plan"
	"github.com/flexprice/billing-console/internal/domain/price"
	"github.com/flexprice/billing-console/internal/testutil"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PlanServiceSuite struct {
	testutil.BaseServiceTestSuite
	backend     *testutil.FakeBackend
	planService PlanService
}

func TestPlanService(t *testing.T) {
	suite.Run(t, new(PlanServiceSuite))
}

func (s *PlanServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	s.backend = testutil.NewFakeBackend()
	cfg := s.GetConfig()
	cfg.Billing.APIURL = s.backend.URL()
	cfg.Billing.APIKey = "test-key"
	cfg.Cache.TTL = time.Minute

	base := client.NewBaseClient(cfg, s.GetLogger())
	params := NewServiceParams(s.GetLogger(), cfg, s.GetCache(), base)
	s.planService = NewPlanService(params)
}

func (s *PlanServiceSuite) TearDownTest() {
	s.backend.Close()
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *PlanServiceSuite) stubPlan() {
	s.backend.RespondJSON(http.MethodGet, "/v1/plans/plan_1", http.StatusOK, dto.PlanResponse{
		Plan: &plan.Plan{ID: "plan_1", Name: "Starter"},
	})
	s.backend.RespondJSON(http.MethodGet, "/v1/prices", http.StatusOK, dto.ListPricesResponse{
		Items: []*dto.PriceResponse{
			{Price: &price.Price{
				ID:            "price_1",
				PlanID:        "plan_1",
				Currency:      "usd",
				Amount:        decimal.NewFromInt(10),
				Type:          types.PRICE_TYPE_FIXED,
				BillingPeriod: types.BILLING_PERIOD_MONTHLY,
				BillingModel:  types.BILLING_MODEL_FLAT_FEE,
			}},
		},
	})
}

func (s *PlanServiceSuite) TestGetPlanFetchesPlanAndPrices() {
	s.stubPlan()

	resp, err := s.planService.GetPlan(s.GetContext(), "plan_1")

	s.NoError(err)
	s.Equal("plan_1", resp.ID)
	s.Equal("Starter", resp.Name)
	s.Len(resp.Prices, 1)
	s.Equal("price_1", resp.Prices[0].ID)

	// Plan and prices are fetched in parallel, one request each.
	s.Len(s.backend.Requests(), 2)
}

func (s *PlanServiceSuite) TestGetPlanServedFromCacheOnSecondCall() {
	s.stubPlan()

	_, err := s.planService.GetPlan(s.GetContext(), "plan_1")
	s.NoError(err)
	requests := len(s.backend.Requests())

	resp, err := s.planService.GetPlan(s.GetContext(), "plan_1")
	s.NoError(err)
	s.Equal("plan_1", resp.ID)
	s.Len(s.backend.Requests(), requests)
}

func (s *PlanServiceSuite) TestUpdatePlanInvalidatesCache() {
	s.stubPlan()
	s.backend.RespondJSON(http.MethodPut, "/v1/plans/plan_1", http.StatusOK, dto.PlanResponse{
		Plan: &plan.Plan{ID: "plan_1", Name: "Starter v2"},
	})

	_, err := s.planService.GetPlan(s.GetContext(), "plan_1")
	s.NoError(err)

	_, err = s.planService.UpdatePlan(s.GetContext(), "plan_1", dto.UpdatePlanRequest{
		Name: lo.ToPtr("Starter v2"),
	})
	s.NoError(err)
	requests := len(s.backend.Requests())

	// The next fetch goes back to the backend.
	_, err = s.planService.GetPlan(s.GetContext(), "plan_1")
	s.NoError(err)
	s.Greater(len(s.backend.Requests()), requests)
}

func (s *PlanServiceSuite) TestGetPlanRequiresID() {
	_, err := s.planService.GetPlan(s.GetContext(), "")
	s.Error(err)
}

func (s *PlanServiceSuite) TestGetPlanNotFound() {
	_, err := s.planService.GetPlan(s.GetContext(), "plan_missing")
	s.Error(err)
}

func (s *PlanServiceSuite) TestNormalizePlanBucketsByPeriodThenCurrency() {
	planResp := &dto.PlanResponse{
		Plan: &plan.Plan{ID: "plan_1", Name: "Starter"},
		Prices: []*dto.PriceResponse{
			{Price: &price.Price{
				ID:            "price_1",
				Currency:      "usd",
				Amount:        decimal.NewFromInt(10),
				BillingPeriod: types.BILLING_PERIOD_MONTHLY,
				BillingModel:  types.BILLING_MODEL_FLAT_FEE,
			}},
			{Price: &price.Price{
				ID:            "price_2",
				Currency:      "eur",
				Amount:        decimal.NewFromInt(9),
				BillingPeriod: types.BILLING_PERIOD_MONTHLY,
				BillingModel:  types.BILLING_MODEL_FLAT_FEE,
			}},
			{Price: &price.Price{
				ID:            "price_3",
				Currency:      "usd",
				Amount:        decimal.NewFromInt(100),
				BillingPeriod: types.BILLING_PERIOD_ANNUAL,
				BillingModel:  types.BILLING_MODEL_FLAT_FEE,
			}},
		},
	}

	normalized := s.planService.NormalizePlan(planResp)

	s.Equal("plan_1", normalized.ID)
	s.Len(normalized.Charges, 2)
	s.Len(normalized.Charges[types.BILLING_PERIOD_MONTHLY]["usd"], 1)
	s.Len(normalized.Charges[types.BILLING_PERIOD_MONTHLY]["eur"], 1)
	s.Len(normalized.Charges[types.BILLING_PERIOD_ANNUAL]["usd"], 1)
	s.Equal("price_3", normalized.Charges[types.BILLING_PERIOD_ANNUAL]["usd"][0].PriceID)
}

func (s *PlanServiceSuite) TestNormalizePlanHandlesNilInput() {
	normalized := s.planService.NormalizePlan(nil)

	s.NotNil(normalized)
	s.Empty(normalized.Charges)
}

func (s *PlanServiceSuite) TestPriceTableCharge() {
	flatFee := plan.ChargeRow{
		BillingModel:  types.BILLING_MODEL_FLAT_FEE,
		Currency:      "usd",
		Amount:        decimal.NewFromInt(10),
		DisplayAmount: "$10.00",
	}
	s.Equal("$10.00 /month", s.planService.PriceTableCharge(flatFee, types.BILLING_PERIOD_MONTHLY))
	s.Equal("$10.00 /year", s.planService.PriceTableCharge(flatFee, types.BILLING_PERIOD_ANNUAL))

	pkg := plan.ChargeRow{
		BillingModel:  types.BILLING_MODEL_PACKAGE,
		Currency:      "usd",
		Amount:        decimal.NewFromInt(5),
		DisplayAmount: "$5.00",
		DivideBy:      10,
	}
	s.Equal("$5.00 /unit/month", s.planService.PriceTableCharge(pkg, types.BILLING_PERIOD_MONTHLY))

	tiered := plan.ChargeRow{
		BillingModel: types.BILLING_MODEL_TIERED,
		Currency:     "usd",
		Tiers: []price.PriceTier{
			{From: 1, UpTo: lo.ToPtr(uint64(10)), UnitAmount: decimal.NewFromInt(1), FlatAmount: lo.ToPtr(decimal.RequireFromString("2.7"))},
			{From: 11, UpTo: nil, UnitAmount: decimal.RequireFromString("0.5")},
		},
	}
	s.Equal("Starts at $2.70/unit/month", s.planService.PriceTableCharge(tiered, types.BILLING_PERIOD_MONTHLY))

	// A tiered charge with no flat amount starts at zero.
	tiered.Tiers[0].FlatAmount = nil
	s.Equal("Starts at $0.00/unit/month", s.planService.PriceTableCharge(tiered, types.BILLING_PERIOD_MONTHLY))
}

func (s *PlanServiceSuite) TestActualPriceForTotal() {
	flatFee := plan.ChargeRow{
		BillingModel: types.BILLING_MODEL_FLAT_FEE,
		Amount:       decimal.NewFromInt(10),
	}
	s.True(s.planService.ActualPriceForTotal(flatFee).Equal(decimal.NewFromInt(10)))

	tiered := plan.ChargeRow{
		BillingModel: types.BILLING_MODEL_TIERED,
		Tiers: []price.PriceTier{
			{From: 1, UpTo: lo.ToPtr(uint64(10)), UnitAmount: decimal.NewFromInt(1), FlatAmount: lo.ToPtr(decimal.RequireFromString("2.7"))},
		},
	}
	s.True(s.planService.ActualPriceForTotal(tiered).Equal(decimal.RequireFromString("2.7")))

	tiered.Tiers[0].FlatAmount = nil
	s.True(s.planService.ActualPriceForTotal(tiered).IsZero())
}
