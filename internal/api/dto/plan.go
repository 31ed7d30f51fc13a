package dto

import (
	"context"

	"github.com/flexprice/billing-console/internal/domain/plan"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/flexprice/billing-console/internal/validator"
)

type CreatePlanRequest struct {
	Name        string            `json:"name" validate:"required"`
	LookupKey   string            `json:"lookup_key,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

func (r *CreatePlanRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreatePlanRequest) ToPlan(ctx context.Context) *plan.Plan {
	return &plan.Plan{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		Name:        r.Name,
		LookupKey:   r.LookupKey,
		Description: r.Description,
		Metadata:    types.Metadata(r.Metadata),
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

type UpdatePlanRequest struct {
	Name        *string           `json:"name,omitempty"`
	LookupKey   *string           `json:"lookup_key,omitempty"`
	Description *string           `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type PlanResponse struct {
	*plan.Plan
	Prices []*PriceResponse `json:"prices,omitempty"`
}

// NormalizedPlanResponse is the derived charge view the pricing table
// renders from.
type NormalizedPlanResponse struct {
	*plan.NormalizedPlan
}

// ListPlansResponse represents the response for listing plans.
type ListPlansResponse = types.ListResponse[*PlanResponse]

// ChargeDisplayResponse pairs a charge row with its rendered display string
// and the preview-total amount.
type ChargeDisplayResponse struct {
	Charge      plan.ChargeRow `json:"charge"`
	Display     string         `json:"display"`
	ActualPrice string         `json:"actual_price"`
}
