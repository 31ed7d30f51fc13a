package dto

import (
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/flexprice/billing-console/internal/validator"
	"github.com/shopspring/decimal"
)

type TaxRateType string

const (
	TaxRateTypePercentage TaxRateType = "PERCENTAGE"
	TaxRateTypeFixed      TaxRateType = "FIXED"
)

type CreateTaxRateRequest struct {
	Name            string           `json:"name" validate:"required"`
	Code            string           `json:"code" validate:"required"`
	Type            TaxRateType      `json:"type" validate:"required,oneof=PERCENTAGE FIXED"`
	PercentageValue *decimal.Decimal `json:"percentage_value,omitempty"`
	FixedValue      *decimal.Decimal `json:"fixed_value,omitempty"`
	Currency        string           `json:"currency,omitempty"`
	Description     string           `json:"description,omitempty"`
}

func (r *CreateTaxRateRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	switch r.Type {
	case TaxRateTypePercentage:
		if r.PercentageValue == nil {
			return ierr.NewError("percentage_value is required for percentage tax rates").
				WithHint("Please provide a tax percentage").
				Mark(ierr.ErrValidation)
		}
		if r.PercentageValue.LessThan(decimal.Zero) || r.PercentageValue.GreaterThan(decimal.NewFromInt(100)) {
			return ierr.NewError("percentage_value must be between 0 and 100").
				WithHint("Tax percentage must be between 0 and 100").
				WithReportableDetails(map[string]interface{}{
					"percentage_value": r.PercentageValue.String(),
				}).
				Mark(ierr.ErrValidation)
		}
	case TaxRateTypeFixed:
		if r.FixedValue == nil || r.FixedValue.LessThan(decimal.Zero) {
			return ierr.NewError("fixed_value is required for fixed tax rates").
				WithHint("Please provide a non-negative fixed tax amount").
				Mark(ierr.ErrValidation)
		}
		if r.Currency == "" {
			return ierr.NewError("currency is required for fixed tax rates").
				WithHint("Please select a currency for the fixed tax amount").
				Mark(ierr.ErrValidation)
		}
	}

	return nil
}

type TaxRateResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Code            string           `json:"code"`
	Type            TaxRateType      `json:"type"`
	PercentageValue *decimal.Decimal `json:"percentage_value,omitempty"`
	FixedValue      *decimal.Decimal `json:"fixed_value,omitempty"`
	Currency        string           `json:"currency,omitempty"`
	Description     string           `json:"description,omitempty"`
	types.BaseModel
}

// ListTaxRatesResponse represents the response for listing tax rates.
type ListTaxRatesResponse = types.ListResponse[*TaxRateResponse]
