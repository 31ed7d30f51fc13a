package price

import (
	"fmt"

	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/shopspring/decimal"
)

// TransformQuantity rewrites the billed quantity for PACKAGE prices: the
// quantity is divided into bundles of DivideBy units each.
type TransformQuantity struct {
	DivideBy int             `json:"divide_by,omitempty"`
	Round    types.RoundMode `json:"round,omitempty"`
}

func (t *TransformQuantity) Validate() error {
	if t.DivideBy <= 0 {
		return ierr.NewError("divide_by must be greater than 0").
			WithHint("Please provide a valid number of units for package pricing").
			WithReportableDetails(map[string]interface{}{
				"divide_by": t.DivideBy,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PriceTier is one contiguous unit-quantity range within a TIERED price.
// Boundaries are inclusive: a quantity equal to UpTo still belongs to this
// tier. UpTo is nil only on the terminal, open-ended tier.
type PriceTier struct {
	From       uint64           `json:"from"`
	UpTo       *uint64          `json:"up_to"`
	UnitAmount decimal.Decimal  `json:"unit_amount"`
	FlatAmount *decimal.Decimal `json:"flat_amount,omitempty"`
}

// GetTierUpTo returns the tier's upper bound, treating the open-ended tier
// as unbounded for sorting purposes.
func (t PriceTier) GetTierUpTo() uint64 {
	if t.UpTo == nil {
		return ^uint64(0)
	}
	return *t.UpTo
}

// CalculateTierAmount returns unit_amount*quantity plus the tier's flat
// amount, rounded to the currency's precision.
func (t PriceTier) CalculateTierAmount(quantity decimal.Decimal, currency string) decimal.Decimal {
	cost := t.UnitAmount.Mul(quantity)
	if t.FlatAmount != nil {
		cost = cost.Add(*t.FlatAmount)
	}
	return cost.Round(types.GetCurrencyPrecision(currency))
}

// Price is a single charge attached to a plan.
type Price struct {
	ID                 string               `json:"id"`
	Amount             decimal.Decimal      `json:"amount"`
	DisplayAmount      string               `json:"display_amount"`
	Currency           string               `json:"currency"`
	PlanID             string               `json:"plan_id"`
	Type               types.PriceType      `json:"type"`
	BillingPeriod      types.BillingPeriod  `json:"billing_period"`
	BillingPeriodCount int                  `json:"billing_period_count"`
	BillingModel       types.BillingModel   `json:"billing_model"`
	BillingCadence     types.BillingCadence `json:"billing_cadence"`
	InvoiceCadence     types.InvoiceCadence `json:"invoice_cadence"`
	TierMode           types.BillingTier    `json:"tier_mode,omitempty"`
	Tiers              []PriceTier          `json:"tiers,omitempty"`
	MeterID            string               `json:"meter_id,omitempty"`
	TransformQuantity  TransformQuantity    `json:"transform_quantity,omitempty"`
	LookupKey          string               `json:"lookup_key,omitempty"`
	Description        string               `json:"description,omitempty"`
	Metadata           types.Metadata       `json:"metadata,omitempty"`
	types.BaseModel
}

// GetCurrencySymbol returns the display symbol for the price's currency.
func (p *Price) GetCurrencySymbol() string {
	return types.GetCurrencySymbol(p.Currency)
}

// GetDisplayAmount renders the amount with its currency symbol, e.g. "$10.00".
func (p *Price) GetDisplayAmount() string {
	return fmt.Sprintf("%s%s", p.GetCurrencySymbol(), types.FormatAmountToStringWithPrecision(p.Amount, p.Currency))
}

// CalculateAmount returns amount*quantity without rounding; callers round at
// the final cost.
func (p *Price) CalculateAmount(quantity decimal.Decimal) decimal.Decimal {
	return p.Amount.Mul(quantity)
}

// IsUsage returns true for usage-based prices.
func (p *Price) IsUsage() bool {
	return p.Type == types.PRICE_TYPE_USAGE
}

// Validate enforces the structural invariants between billing model and the
// model-specific fields: tiers present iff TIERED, divide_by present iff
// PACKAGE.
func (p *Price) Validate() error {
	if err := p.BillingModel.Validate(); err != nil {
		return err
	}

	switch p.BillingModel {
	case types.BILLING_MODEL_TIERED:
		if len(p.Tiers) == 0 {
			return ierr.NewError("tiers are required when billing model is TIERED").
				WithHint("Price tiers are required to set up tiered pricing").
				Mark(ierr.ErrValidation)
		}
		if err := p.TierMode.Validate(); err != nil {
			return err
		}
	case types.BILLING_MODEL_PACKAGE:
		if err := p.TransformQuantity.Validate(); err != nil {
			return err
		}
	default:
		if len(p.Tiers) > 0 {
			return ierr.NewError("tiers can only be set for TIERED billing model").
				WithHint("Remove tiers or switch the billing model to TIERED").
				WithReportableDetails(map[string]interface{}{
					"billing_model": p.BillingModel,
				}).
				Mark(ierr.ErrValidation)
		}
	}

	return nil
}
