package dto

import (
	"time"

	"github.com/flexprice/billing-console/internal/domain/subscription"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/shopspring/decimal"
)

// PhaseUpdate carries a partial edit of one phase. Nil fields are left
// untouched; ClearEndDate distinguishes "unset the end date" from "leave it
// alone".
type PhaseUpdate struct {
	StartDate        *time.Time                 `json:"start_date,omitempty"`
	EndDate          *time.Time                 `json:"end_date,omitempty"`
	ClearEndDate     bool                       `json:"clear_end_date,omitempty"`
	BillingCycle     *types.BillingCycle        `json:"billing_cycle,omitempty"`
	CreditGrants     []subscription.CreditGrant `json:"credit_grants,omitempty"`
	SetCreditGrants  bool                       `json:"set_credit_grants,omitempty"`
	ProrateCharges   *bool                      `json:"prorate_charges,omitempty"`
	CommitmentAmount *decimal.Decimal           `json:"commitment_amount,omitempty"`
	OverageFactor    *decimal.Decimal           `json:"overage_factor,omitempty"`
}

func (u *PhaseUpdate) Validate() error {
	if u.EndDate != nil && u.ClearEndDate {
		return ierr.NewError("end_date and clear_end_date are mutually exclusive").
			WithHint("Provide either a new end date or clear_end_date, not both").
			Mark(ierr.ErrValidation)
	}
	if u.BillingCycle != nil {
		if err := u.BillingCycle.Validate(); err != nil {
			return err
		}
	}
	if u.SetCreditGrants {
		for i := range u.CreditGrants {
			if err := u.CreditGrants[i].Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// PhaseTimelineRequest wraps the full phase list a transform operates on.
type PhaseTimelineRequest struct {
	Phases []*subscription.Phase `json:"phases" validate:"required,min=1"`
}

// UpdatePhaseRequest applies a partial update to one phase of the timeline.
type UpdatePhaseRequest struct {
	Phases []*subscription.Phase `json:"phases" validate:"required,min=1"`
	Index  int                   `json:"index"`
	Update PhaseUpdate           `json:"update"`
}

// RemovePhaseRequest removes one phase of the timeline.
type RemovePhaseRequest struct {
	Phases []*subscription.Phase `json:"phases" validate:"required,min=1"`
	Index  int                   `json:"index"`
}

// PhaseTimelineResponse returns the transformed phase list.
type PhaseTimelineResponse struct {
	Phases []*subscription.Phase `json:"phases"`
}
