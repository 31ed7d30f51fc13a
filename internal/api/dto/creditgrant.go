package dto

import (
	"github.com/flexprice/billing-console/internal/domain/subscription"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/flexprice/billing-console/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateCreditGrantRequest struct {
	Name               string                      `json:"name,omitempty"`
	Credits            decimal.Decimal             `json:"credits"`
	Cadence            types.CreditGrantCadence    `json:"cadence" validate:"required"`
	Period             *types.CreditGrantPeriod    `json:"period,omitempty"`
	ExpirationType     types.CreditGrantExpiryType `json:"expiration_type" validate:"required"`
	ExpirationDuration *int                        `json:"expiration_duration,omitempty"`
	Priority           *int                        `json:"priority,omitempty"`
}

func (r *CreateCreditGrantRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.ToCreditGrant().Validate()
}

func (r *CreateCreditGrantRequest) ToCreditGrant() *subscription.CreditGrant {
	return &subscription.CreditGrant{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CREDIT_GRANT),
		Name:               r.Name,
		Credits:            r.Credits,
		Cadence:            r.Cadence,
		Period:             r.Period,
		ExpirationType:     r.ExpirationType,
		ExpirationDuration: r.ExpirationDuration,
		Priority:           r.Priority,
	}
}

type CreditGrantResponse struct {
	*subscription.CreditGrant
}

// ListCreditGrantsResponse represents the response for listing credit grants.
type ListCreditGrantsResponse = types.ListResponse[*CreditGrantResponse]

// ValidateCreditGrantsRequest validates a batch of grants before they are
// attached to a phase.
type ValidateCreditGrantsRequest struct {
	CreditGrants []subscription.CreditGrant `json:"credit_grants" validate:"required,min=1"`
}

func (r *ValidateCreditGrantsRequest) Validate() error {
	if len(r.CreditGrants) == 0 {
		return ierr.NewError("at least one credit grant is required").
			WithHint("Please provide at least one credit grant").
			Mark(ierr.ErrValidation)
	}
	for i := range r.CreditGrants {
		if err := r.CreditGrants[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
