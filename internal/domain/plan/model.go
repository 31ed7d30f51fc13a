package plan

import (
	"github.com/flexprice/billing-console/internal/domain/price"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/shopspring/decimal"
)

// Plan is a priced offering as returned by the billing backend.
type Plan struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	LookupKey   string         `json:"lookup_key,omitempty"`
	Description string         `json:"description,omitempty"`
	Metadata    types.Metadata `json:"metadata,omitempty"`
	types.BaseModel
}

// ChargeRow is the presentation form of one price inside a normalized plan.
type ChargeRow struct {
	PriceID       string             `json:"price_id"`
	MeterID       string             `json:"meter_id,omitempty"`
	Type          types.PriceType    `json:"type"`
	BillingModel  types.BillingModel `json:"billing_model"`
	TierMode      types.BillingTier  `json:"tier_mode,omitempty"`
	Currency      string             `json:"currency"`
	Amount        decimal.Decimal    `json:"amount"`
	DisplayAmount string             `json:"display_amount"`
	// DivideBy is resolved from transform_quantity; 0 when the price has no
	// quantity transform.
	DivideBy int               `json:"divide_by"`
	Tiers    []price.PriceTier `json:"tiers,omitempty"`
}

// NormalizedPlan is a derived, read-only view of a plan keyed by billing
// period, then currency. It is rebuilt on every plan fetch and never
// persisted.
type NormalizedPlan struct {
	ID      string                                         `json:"id"`
	Name    string                                         `json:"name"`
	Charges map[types.BillingPeriod]map[string][]ChargeRow `json:"charges"`
}

// ChargesFor returns the charge rows for one period/currency bucket. An
// empty slice means the plan has nothing to show there and the caller hides
// the section.
func (n *NormalizedPlan) ChargesFor(period types.BillingPeriod, currency string) []ChargeRow {
	byCurrency, ok := n.Charges[period]
	if !ok {
		return nil
	}
	return byCurrency[currency]
}

// BillingPeriods returns the periods that have at least one charge.
func (n *NormalizedPlan) BillingPeriods() []types.BillingPeriod {
	periods := make([]types.BillingPeriod, 0, len(n.Charges))
	for period := range n.Charges {
		periods = append(periods, period)
	}
	return periods
}

// Currencies returns the currencies present under a billing period.
func (n *NormalizedPlan) Currencies(period types.BillingPeriod) []string {
	byCurrency, ok := n.Charges[period]
	if !ok {
		return nil
	}
	currencies := make([]string, 0, len(byCurrency))
	for currency := range byCurrency {
		currencies = append(currencies, currency)
	}
	return currencies
}
