package subscription

import (
	"time"

	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/shopspring/decimal"
)

// PhaseState tracks a phase's position in the edit lifecycle. Exactly one
// phase may be in EDIT at a time; NEW phases are deleted outright when the
// edit is cancelled.
type PhaseState string

const (
	PhaseStateSaved PhaseState = "SAVED"
	PhaseStateEdit  PhaseState = "EDIT"
	PhaseStateNew   PhaseState = "NEW"
)

// CreditGrant is a quantity of billing credits attached to a phase.
type CreditGrant struct {
	ID                 string                      `json:"id"`
	Name               string                      `json:"name,omitempty"`
	Credits            decimal.Decimal             `json:"credits"`
	Cadence            types.CreditGrantCadence    `json:"cadence"`
	Period             *types.CreditGrantPeriod    `json:"period,omitempty"`
	ExpirationType     types.CreditGrantExpiryType `json:"expiration_type"`
	ExpirationDuration *int                        `json:"expiration_duration,omitempty"`
	Priority           *int                        `json:"priority,omitempty"`
}

// Validate enforces the conditional requirements between cadence, period and
// expiration policy.
func (c *CreditGrant) Validate() error {
	if c.Credits.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("credits must be greater than zero").
			WithHint("Please provide a positive number of credits").
			WithReportableDetails(map[string]interface{}{
				"credits": c.Credits.String(),
			}).
			Mark(ierr.ErrValidation)
	}

	if err := c.Cadence.Validate(); err != nil {
		return err
	}

	if c.Cadence == types.CreditGrantCadenceRecurring {
		if c.Period == nil {
			return ierr.NewError("period is required for recurring credit grants").
				WithHint("Please select a period for the recurring credit grant").
				Mark(ierr.ErrValidation)
		}
		if err := c.Period.Validate(); err != nil {
			return err
		}
	} else if c.Period != nil {
		return ierr.NewError("period can only be set for recurring credit grants").
			WithHint("Remove the period or switch the cadence to RECURRING").
			Mark(ierr.ErrValidation)
	}

	if err := c.ExpirationType.Validate(); err != nil {
		return err
	}

	if c.ExpirationType == types.CreditGrantExpiryTypeDuration {
		if c.ExpirationDuration == nil || *c.ExpirationDuration <= 0 {
			return ierr.NewError("expiration_duration is required for DURATION expiry").
				WithHint("Please provide a positive expiration duration in days").
				Mark(ierr.ErrValidation)
		}
	} else if c.ExpirationDuration != nil {
		return ierr.NewError("expiration_duration can only be set for DURATION expiry").
			WithHint("Remove the expiration duration or switch the expiration type to DURATION").
			Mark(ierr.ErrValidation)
	}

	if c.Priority != nil && *c.Priority < 0 {
		return ierr.NewError("priority must be non-negative").
			WithHint("Please provide a non-negative priority").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// Phase is a time-bounded segment of a subscription's lifecycle with its own
// billing cycle and credit grants. Phases form a contiguous, non-overlapping
// timeline: each phase's end date equals the next phase's start date, and
// only the terminal phase may be open-ended (nil end date).
type Phase struct {
	ID               string             `json:"id"`
	BillingCycle     types.BillingCycle `json:"billing_cycle"`
	StartDate        time.Time          `json:"start_date"`
	EndDate          *time.Time         `json:"end_date,omitempty"`
	CreditGrants     []CreditGrant      `json:"credit_grants,omitempty"`
	ProrateCharges   bool               `json:"prorate_charges"`
	CommitmentAmount *decimal.Decimal   `json:"commitment_amount,omitempty"`
	OverageFactor    *decimal.Decimal   `json:"overage_factor,omitempty"`
	State            PhaseState         `json:"state"`
}

// IsOpenEnded returns true when the phase has no end date.
func (p *Phase) IsOpenEnded() bool {
	return p.EndDate == nil
}

// Validate checks the phase's own fields; cross-phase timeline invariants
// are enforced by the phase manager.
func (p *Phase) Validate() error {
	if err := p.BillingCycle.Validate(); err != nil {
		return err
	}

	if p.StartDate.IsZero() {
		return ierr.NewError("start_date is required").
			WithHint("Please provide a start date for the phase").
			Mark(ierr.ErrValidation)
	}

	if p.EndDate != nil && !p.EndDate.After(p.StartDate) {
		return ierr.NewError("end_date must be after start_date").
			WithHint("Phase end date must be after its start date").
			WithReportableDetails(map[string]interface{}{
				"start_date": p.StartDate,
				"end_date":   p.EndDate,
			}).
			Mark(ierr.ErrValidation)
	}

	if p.OverageFactor != nil && p.OverageFactor.LessThan(decimal.NewFromInt(1)) {
		return ierr.NewError("overage_factor must be at least 1").
			WithHint("Overage factor must be at least 1").
			Mark(ierr.ErrValidation)
	}

	if p.CommitmentAmount != nil && p.CommitmentAmount.LessThan(decimal.Zero) {
		return ierr.NewError("commitment_amount cannot be negative").
			WithHint("Commitment amount cannot be negative").
			Mark(ierr.ErrValidation)
	}

	for i := range p.CreditGrants {
		if err := p.CreditGrants[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Clone returns a deep copy of the phase, used for edit snapshots.
func (p *Phase) Clone() *Phase {
	clone := *p
	if p.EndDate != nil {
		end := *p.EndDate
		clone.EndDate = &end
	}
	if p.CommitmentAmount != nil {
		amount := *p.CommitmentAmount
		clone.CommitmentAmount = &amount
	}
	if p.OverageFactor != nil {
		factor := *p.OverageFactor
		clone.OverageFactor = &factor
	}
	if p.CreditGrants != nil {
		clone.CreditGrants = make([]CreditGrant, len(p.CreditGrants))
		copy(clone.CreditGrants, p.CreditGrants)
		for i := range p.CreditGrants {
			if p.CreditGrants[i].Period != nil {
				period := *p.CreditGrants[i].Period
				clone.CreditGrants[i].Period = &period
			}
			if p.CreditGrants[i].ExpirationDuration != nil {
				duration := *p.CreditGrants[i].ExpirationDuration
				clone.CreditGrants[i].ExpirationDuration = &duration
			}
			if p.CreditGrants[i].Priority != nil {
				priority := *p.CreditGrants[i].Priority
				clone.CreditGrants[i].Priority = &priority
			}
		}
	}
	return &clone
}
