package dto

import (
	"time"

	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/flexprice/billing-console/internal/validator"
	"github.com/shopspring/decimal"
)

type CouponType string

const (
	CouponTypeFixed      CouponType = "FIXED"
	CouponTypePercentage CouponType = "PERCENTAGE"
)

type CreateCouponRequest struct {
	Name           string           `json:"name" validate:"required"`
	Type           CouponType       `json:"type" validate:"required,oneof=FIXED PERCENTAGE"`
	AmountOff      *decimal.Decimal `json:"amount_off,omitempty"`
	PercentageOff  *decimal.Decimal `json:"percentage_off,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	RedeemBefore   *time.Time       `json:"redeem_before,omitempty"`
	MaxRedemptions *int             `json:"max_redemptions,omitempty"`
}

func (r *CreateCouponRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	switch r.Type {
	case CouponTypeFixed:
		if r.AmountOff == nil || r.AmountOff.LessThanOrEqual(decimal.Zero) {
			return ierr.NewError("amount_off is required for fixed coupons").
				WithHint("Please provide a positive discount amount").
				Mark(ierr.ErrValidation)
		}
		if r.Currency == "" {
			return ierr.NewError("currency is required for fixed coupons").
				WithHint("Please select a currency for the discount amount").
				Mark(ierr.ErrValidation)
		}
	case CouponTypePercentage:
		if r.PercentageOff == nil {
			return ierr.NewError("percentage_off is required for percentage coupons").
				WithHint("Please provide a discount percentage").
				Mark(ierr.ErrValidation)
		}
		if r.PercentageOff.LessThanOrEqual(decimal.Zero) || r.PercentageOff.GreaterThan(decimal.NewFromInt(100)) {
			return ierr.NewError("percentage_off must be between 0 and 100").
				WithHint("Discount percentage must be between 0 and 100").
				WithReportableDetails(map[string]interface{}{
					"percentage_off": r.PercentageOff.String(),
				}).
				Mark(ierr.ErrValidation)
		}
	}

	if r.MaxRedemptions != nil && *r.MaxRedemptions < 1 {
		return ierr.NewError("max_redemptions must be at least 1").
			WithHint("Maximum redemptions must be at least 1").
			Mark(ierr.ErrValidation)
	}

	if r.RedeemBefore != nil && r.RedeemBefore.Before(time.Now().UTC()) {
		return ierr.NewError("redeem_before must be in the future").
			WithHint("Redemption deadline must be in the future").
			Mark(ierr.ErrValidation)
	}

	return nil
}

type CouponResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Type           CouponType       `json:"type"`
	AmountOff      *decimal.Decimal `json:"amount_off,omitempty"`
	PercentageOff  *decimal.Decimal `json:"percentage_off,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	RedeemBefore   *time.Time       `json:"redeem_before,omitempty"`
	MaxRedemptions *int             `json:"max_redemptions,omitempty"`
	Redemptions    int              `json:"redemptions"`
	types.BaseModel
}

// ListCouponsResponse represents the response for listing coupons.
type ListCouponsResponse = types.ListResponse[*CouponResponse]
