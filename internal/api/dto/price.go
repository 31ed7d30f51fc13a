package dto

import (
	"context"
	"fmt"

	"github.com/flexprice/billing-console/internal/domain/price"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/flexprice/billing-console/internal/validator"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type CreatePriceRequest struct {
	Amount             *decimal.Decimal         `json:"amount,omitempty"`
	Currency           string                   `json:"currency" validate:"required,len=3"`
	PlanID             string                   `json:"plan_id" validate:"required"`
	Type               types.PriceType          `json:"type" validate:"required"`
	BillingPeriod      types.BillingPeriod      `json:"billing_period" validate:"required"`
	BillingPeriodCount int                      `json:"billing_period_count" default:"1"`
	BillingModel       types.BillingModel       `json:"billing_model" validate:"required"`
	BillingCadence     types.BillingCadence     `json:"billing_cadence" validate:"required"`
	InvoiceCadence     types.InvoiceCadence     `json:"invoice_cadence" validate:"required"`
	MeterID            string                   `json:"meter_id,omitempty"`
	TierMode           types.BillingTier        `json:"tier_mode,omitempty"`
	Tiers              []CreatePriceTier        `json:"tiers,omitempty"`
	TransformQuantity  *price.TransformQuantity `json:"transform_quantity,omitempty"`
	LookupKey          string                   `json:"lookup_key,omitempty"`
	Description        string                   `json:"description,omitempty"`
	Metadata           map[string]string        `json:"metadata,omitempty"`
}

type CreatePriceTier struct {
	// From is the first unit covered by this tier. The editor pins the first
	// tier's from at 1.
	From uint64 `json:"from"`

	// UpTo is the last unit covered by this tier, inclusive. It is nil on
	// the terminal, open-ended tier only.
	UpTo *uint64 `json:"up_to"`

	UnitAmount decimal.Decimal `json:"unit_amount"`

	// FlatAmount is applied on top of unit_amount*quantity, e.g. "2.7$ + 5c".
	FlatAmount *decimal.Decimal `json:"flat_amount,omitempty"`
}

// Validate checks a single tier's amounts; cross-tier contiguity is enforced
// by the tier editor.
func (t *CreatePriceTier) Validate() error {
	if t.UnitAmount.LessThan(decimal.Zero) {
		return ierr.NewError("unit amount cannot be negative").
			WithHint("Unit amount cannot be negative").
			WithReportableDetails(map[string]interface{}{
				"unit_amount": t.UnitAmount.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	if t.FlatAmount != nil && t.FlatAmount.LessThan(decimal.Zero) {
		return ierr.NewError("flat amount cannot be negative").
			WithHint("Flat amount cannot be negative").
			WithReportableDetails(map[string]interface{}{
				"flat_amount": t.FlatAmount.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// Validate validates the create price request.
func (r *CreatePriceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if r.BillingPeriodCount < 1 {
		return ierr.NewError("billing period count must be greater than 0").
			WithHint("Billing period count must be greater than 0").
			WithReportableDetails(map[string]interface{}{
				"billing_period_count": r.BillingPeriodCount,
			}).
			Mark(ierr.ErrValidation)
	}

	if err := r.Type.Validate(); err != nil {
		return err
	}
	if err := r.BillingModel.Validate(); err != nil {
		return err
	}
	if err := r.BillingCadence.Validate(); err != nil {
		return err
	}
	if err := r.BillingPeriod.Validate(); err != nil {
		return err
	}
	if err := r.InvoiceCadence.Validate(); err != nil {
		return err
	}

	switch r.BillingModel {
	case types.BILLING_MODEL_TIERED:
		if len(r.Tiers) == 0 {
			return ierr.NewError("tiers are required when billing model is TIERED").
				WithHint("Price tiers are required to set up tiered pricing").
				Mark(ierr.ErrValidation)
		}
		if err := r.TierMode.Validate(); err != nil {
			return err
		}
		if err := validateTiers(r.Tiers); err != nil {
			return err
		}

	case types.BILLING_MODEL_PACKAGE:
		if r.TransformQuantity == nil {
			return ierr.NewError("transform_quantity is required when billing model is PACKAGE").
				WithHint("Please provide the number of units to set up package pricing").
				Mark(ierr.ErrValidation)
		}
		if err := r.TransformQuantity.Validate(); err != nil {
			return err
		}
		if r.Amount == nil {
			return ierr.NewError("amount is required when billing model is PACKAGE").
				WithHint("Amount is required to set up package pricing").
				Mark(ierr.ErrValidation)
		}

	case types.BILLING_MODEL_FLAT_FEE:
		if r.Amount == nil {
			return ierr.NewError("amount is required when billing model is FLAT_FEE").
				WithHint("Amount is required to set up flat fee pricing").
				Mark(ierr.ErrValidation)
		}
	}

	if r.Type == types.PRICE_TYPE_USAGE && r.MeterID == "" {
		return ierr.NewError("meter_id is required when type is USAGE").
			WithHint("Please select a metered feature to set up usage pricing").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ToPrice converts the request to a Price domain object.
func (r *CreatePriceRequest) ToPrice(ctx context.Context) *price.Price {
	transformQuantity := price.TransformQuantity{}
	if r.TransformQuantity != nil {
		transformQuantity = *r.TransformQuantity
	}

	p := &price.Price{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRICE),
		Amount:             lo.FromPtrOr(r.Amount, decimal.Zero),
		Currency:           r.Currency,
		PlanID:             r.PlanID,
		Type:               r.Type,
		BillingPeriod:      r.BillingPeriod,
		BillingPeriodCount: r.BillingPeriodCount,
		BillingModel:       r.BillingModel,
		BillingCadence:     r.BillingCadence,
		InvoiceCadence:     r.InvoiceCadence,
		MeterID:            r.MeterID,
		TierMode:           r.TierMode,
		Tiers:              convertTiers(r.Tiers),
		TransformQuantity:  transformQuantity,
		LookupKey:          r.LookupKey,
		Description:        r.Description,
		Metadata:           types.Metadata(r.Metadata),
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	p.DisplayAmount = p.GetDisplayAmount()
	return p
}

func convertTiers(tiers []CreatePriceTier) []price.PriceTier {
	if len(tiers) == 0 {
		return nil
	}
	priceTiers := make([]price.PriceTier, len(tiers))
	for i, tier := range tiers {
		priceTiers[i] = price.PriceTier{
			From:       tier.From,
			UpTo:       tier.UpTo,
			UnitAmount: tier.UnitAmount,
			FlatAmount: tier.FlatAmount,
		}
	}
	return priceTiers
}

func validateTiers(tiers []CreatePriceTier) error {
	for i, tier := range tiers {
		if err := tier.Validate(); err != nil {
			return ierr.WithError(err).
				WithHint(fmt.Sprintf("Tier at index %d is invalid", i)).
				WithReportableDetails(map[string]interface{}{
					"tier_index": i,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

type PriceResponse struct {
	*price.Price
}

// ListPricesResponse represents the response for listing prices.
type ListPricesResponse = types.ListResponse[*PriceResponse]

// CostBreakup provides detailed information about a preview cost calculation
// including which tier was applied and the effective per unit cost.
type CostBreakup struct {
	// EffectiveUnitCost is the per-unit cost based on the applicable tier.
	EffectiveUnitCost decimal.Decimal `json:"effective_unit_cost"`
	// SelectedTierIndex is the index of the tier that was applied (-1 if no tiers).
	SelectedTierIndex int `json:"selected_tier_index"`
	// TierUnitAmount is the unit amount of the selected tier.
	TierUnitAmount decimal.Decimal `json:"tier_unit_amount"`
	// FinalCost is the total cost for the quantity.
	FinalCost decimal.Decimal `json:"final_cost"`
}

// CostPreviewRequest asks for a preview cost of a quantity against a price.
type CostPreviewRequest struct {
	PriceID  string          `json:"price_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

func (r *CostPreviewRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Quantity.LessThan(decimal.Zero) {
		return ierr.NewError("quantity cannot be negative").
			WithHint("Quantity cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
