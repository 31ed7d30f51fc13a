package dto

import (
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/samber/lo"
)

// TierField names the editable columns of the tier table.
type TierField string

const (
	TierFieldFrom       TierField = "from"
	TierFieldUpTo       TierField = "up_to"
	TierFieldUnitAmount TierField = "unit_amount"
	TierFieldFlatAmount TierField = "flat_amount"
)

func (f TierField) Validate() error {
	allowed := []TierField{
		TierFieldFrom,
		TierFieldUpTo,
		TierFieldUnitAmount,
		TierFieldFlatAmount,
	}
	if !lo.Contains(allowed, f) {
		return ierr.NewError("invalid tier field").
			WithHint("Invalid tier field").
			WithReportableDetails(map[string]interface{}{
				"field":   f,
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TierListRequest wraps the tier list a transform operates on.
type TierListRequest struct {
	TierMode types.BillingTier `json:"tier_mode" validate:"required"`
	Tiers    []CreatePriceTier `json:"tiers"`
}

// UpdateTierRequest applies one cell edit to the tier table. Value is the
// raw input string; non-numeric characters are stripped before parsing.
type UpdateTierRequest struct {
	TierMode types.BillingTier `json:"tier_mode" validate:"required"`
	Tiers    []CreatePriceTier `json:"tiers" validate:"required,min=1"`
	Index    int               `json:"index"`
	Field    TierField         `json:"field" validate:"required"`
	Value    string            `json:"value"`
}

// RemoveTierRequest removes one row of the tier table.
type RemoveTierRequest struct {
	TierMode types.BillingTier `json:"tier_mode" validate:"required"`
	Tiers    []CreatePriceTier `json:"tiers" validate:"required,min=1"`
	Index    int               `json:"index"`
}

// TierListResponse returns the transformed tier list.
type TierListResponse struct {
	Tiers []CreatePriceTier `json:"tiers"`
}
