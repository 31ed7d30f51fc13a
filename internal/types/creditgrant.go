package types

import (
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/samber/lo"
)

// CreditGrantCadence determines whether credits are granted once or on a
// recurring period.
type CreditGrantCadence string

const (
	CreditGrantCadenceOneTime   CreditGrantCadence = "ONETIME"
	CreditGrantCadenceRecurring CreditGrantCadence = "RECURRING"
)

func (c CreditGrantCadence) Validate() error {
	allowed := []CreditGrantCadence{CreditGrantCadenceOneTime, CreditGrantCadenceRecurring}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid credit grant cadence").
			WithHint("Credit grant cadence must be ONETIME or RECURRING").
			WithReportableDetails(map[string]interface{}{
				"cadence": c,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CreditGrantPeriod is the recurrence period for RECURRING grants.
type CreditGrantPeriod string

const (
	CreditGrantPeriodDaily      CreditGrantPeriod = "DAILY"
	CreditGrantPeriodWeekly     CreditGrantPeriod = "WEEKLY"
	CreditGrantPeriodMonthly    CreditGrantPeriod = "MONTHLY"
	CreditGrantPeriodQuarterly  CreditGrantPeriod = "QUARTER"
	CreditGrantPeriodHalfYearly CreditGrantPeriod = "HALF_YEARLY"
	CreditGrantPeriodAnnual     CreditGrantPeriod = "ANNUAL"
)

func (c CreditGrantPeriod) Validate() error {
	allowed := []CreditGrantPeriod{
		CreditGrantPeriodDaily,
		CreditGrantPeriodWeekly,
		CreditGrantPeriodMonthly,
		CreditGrantPeriodQuarterly,
		CreditGrantPeriodHalfYearly,
		CreditGrantPeriodAnnual,
	}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid credit grant period").
			WithHint("Credit grant period must be one of DAILY, WEEKLY, MONTHLY, QUARTER, HALF_YEARLY, ANNUAL").
			WithReportableDetails(map[string]interface{}{
				"period": c,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CreditGrantExpiryType is the expiration policy for granted credits.
type CreditGrantExpiryType string

const (
	CreditGrantExpiryTypeNever        CreditGrantExpiryType = "NEVER"
	CreditGrantExpiryTypeDuration     CreditGrantExpiryType = "DURATION"
	CreditGrantExpiryTypeBillingCycle CreditGrantExpiryType = "BILLING_CYCLE"
)

func (c CreditGrantExpiryType) Validate() error {
	allowed := []CreditGrantExpiryType{
		CreditGrantExpiryTypeNever,
		CreditGrantExpiryTypeDuration,
		CreditGrantExpiryTypeBillingCycle,
	}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid credit grant expiration type").
			WithHint("Expiration type must be NEVER, DURATION or BILLING_CYCLE").
			WithReportableDetails(map[string]interface{}{
				"expiration_type": c,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillingCycle anchors a subscription phase's period boundaries.
type BillingCycle string

const (
	BillingCycleAnniversary BillingCycle = "anniversary"
	BillingCycleCalendar    BillingCycle = "calendar"
)

func (b BillingCycle) Validate() error {
	allowed := []BillingCycle{BillingCycleAnniversary, BillingCycleCalendar}
	if !lo.Contains(allowed, b) {
		return ierr.NewError("invalid billing cycle").
			WithHint("Billing cycle must be anniversary or calendar").
			WithReportableDetails(map[string]interface{}{
				"billing_cycle": b,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
