package types

import (
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/samber/lo"
)

// PriceType determines whether the price is a fixed recurring charge or a
// usage-based charge tied to a meter.
type PriceType string

const (
	PRICE_TYPE_FIXED PriceType = "FIXED"
	PRICE_TYPE_USAGE PriceType = "USAGE"
)

func (p PriceType) Validate() error {
	allowed := []PriceType{PRICE_TYPE_FIXED, PRICE_TYPE_USAGE}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid price type").
			WithHint("Price type must be FIXED or USAGE").
			WithReportableDetails(map[string]interface{}{
				"type": p,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillingModel is the pricing shape of a charge.
type BillingModel string

const (
	BILLING_MODEL_FLAT_FEE BillingModel = "FLAT_FEE"
	BILLING_MODEL_PACKAGE  BillingModel = "PACKAGE"
	BILLING_MODEL_TIERED   BillingModel = "TIERED"
)

func (b BillingModel) Validate() error {
	allowed := []BillingModel{BILLING_MODEL_FLAT_FEE, BILLING_MODEL_PACKAGE, BILLING_MODEL_TIERED}
	if !lo.Contains(allowed, b) {
		return ierr.NewError("invalid billing model").
			WithHint("Billing model must be FLAT_FEE, PACKAGE or TIERED").
			WithReportableDetails(map[string]interface{}{
				"billing_model": b,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillingPeriod is the recurrence unit for a charge.
type BillingPeriod string

const (
	BILLING_PERIOD_DAILY       BillingPeriod = "DAILY"
	BILLING_PERIOD_WEEKLY      BillingPeriod = "WEEKLY"
	BILLING_PERIOD_MONTHLY     BillingPeriod = "MONTHLY"
	BILLING_PERIOD_QUARTERLY   BillingPeriod = "QUARTER"
	BILLING_PERIOD_HALF_YEARLY BillingPeriod = "HALF_YEARLY"
	BILLING_PERIOD_ANNUAL      BillingPeriod = "ANNUAL"
)

func (b BillingPeriod) Validate() error {
	allowed := []BillingPeriod{
		BILLING_PERIOD_DAILY,
		BILLING_PERIOD_WEEKLY,
		BILLING_PERIOD_MONTHLY,
		BILLING_PERIOD_QUARTERLY,
		BILLING_PERIOD_HALF_YEARLY,
		BILLING_PERIOD_ANNUAL,
	}
	if !lo.Contains(allowed, b) {
		return ierr.NewError("invalid billing period").
			WithHint("Billing period must be one of DAILY, WEEKLY, MONTHLY, QUARTER, HALF_YEARLY, ANNUAL").
			WithReportableDetails(map[string]interface{}{
				"billing_period": b,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Unit returns the singular display unit for the period, used when rendering
// charge strings like "$10 /unit/month".
func (b BillingPeriod) Unit() string {
	switch b {
	case BILLING_PERIOD_DAILY:
		return "day"
	case BILLING_PERIOD_WEEKLY:
		return "week"
	case BILLING_PERIOD_MONTHLY:
		return "month"
	case BILLING_PERIOD_QUARTERLY:
		return "quarter"
	case BILLING_PERIOD_HALF_YEARLY:
		return "half-year"
	case BILLING_PERIOD_ANNUAL:
		return "year"
	default:
		return ""
	}
}

// BillingCadence determines whether a charge repeats.
type BillingCadence string

const (
	BILLING_CADENCE_RECURRING BillingCadence = "RECURRING"
	BILLING_CADENCE_ONETIME   BillingCadence = "ONETIME"
)

func (b BillingCadence) Validate() error {
	allowed := []BillingCadence{BILLING_CADENCE_RECURRING, BILLING_CADENCE_ONETIME}
	if !lo.Contains(allowed, b) {
		return ierr.NewError("invalid billing cadence").
			WithHint("Billing cadence must be RECURRING or ONETIME").
			WithReportableDetails(map[string]interface{}{
				"billing_cadence": b,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillingTier determines how tiers apply to a quantity.
// VOLUME charges the whole quantity at the tier it lands in;
// SLAB charges each tier's span separately (graduated pricing).
type BillingTier string

const (
	BILLING_TIER_VOLUME BillingTier = "VOLUME"
	BILLING_TIER_SLAB   BillingTier = "SLAB"
)

func (b BillingTier) Validate() error {
	allowed := []BillingTier{BILLING_TIER_VOLUME, BILLING_TIER_SLAB}
	if !lo.Contains(allowed, b) {
		return ierr.NewError("invalid tier mode").
			WithHint("Tier mode must be VOLUME or SLAB").
			WithReportableDetails(map[string]interface{}{
				"tier_mode": b,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceCadence determines when a charge is invoiced within its period.
type InvoiceCadence string

const (
	InvoiceCadenceAdvance InvoiceCadence = "ADVANCE"
	InvoiceCadenceArrear  InvoiceCadence = "ARREAR"
)

func (i InvoiceCadence) Validate() error {
	allowed := []InvoiceCadence{InvoiceCadenceAdvance, InvoiceCadenceArrear}
	if !lo.Contains(allowed, i) {
		return ierr.NewError("invalid invoice cadence").
			WithHint("Invoice cadence must be ADVANCE or ARREAR").
			WithReportableDetails(map[string]interface{}{
				"invoice_cadence": i,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// RoundMode controls package-quantity rounding.
type RoundMode string

const (
	ROUND_UP   RoundMode = "up"
	ROUND_DOWN RoundMode = "down"
)
