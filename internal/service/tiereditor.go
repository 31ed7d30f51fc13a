package service

import (
	"strconv"
	"strings"

	"github.com/flexprice/billing-console/internal/api/dto"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/shopspring/decimal"
)

// TierEditorService transforms tier lists for the tiered-pricing table while
// preserving the contiguity invariant: tiers are ordered ascending, each
// non-terminal tier's up_to plus one equals the next tier's from, and exactly
// the last tier is open-ended. Boundary edits cascade to the adjacent tier so
// no gap or overlap can be produced.
type TierEditorService interface {
	// AddTier appends a new open-ended tier. If the current last tier is
	// open-ended it is first closed at from+1. An empty list gets the
	// initial tier starting at 1.
	AddTier(tiers []dto.CreatePriceTier) []dto.CreatePriceTier

	// RemoveTier removes the tier at index. Removing the sole remaining
	// tier is a no-op. Removing the last tier reopens the new last tier;
	// removing a middle tier re-links the next tier's from.
	RemoveTier(tiers []dto.CreatePriceTier, index int) []dto.CreatePriceTier

	// UpdateTier applies one cell edit, cascading boundary changes to the
	// adjacent tier. The raw value is parsed after stripping characters
	// the field's input pattern rejects.
	UpdateTier(tiers []dto.CreatePriceTier, index int, field dto.TierField, value string) ([]dto.CreatePriceTier, error)

	// ValidateTierList checks the full contiguity invariant over a tier
	// list as submitted for save.
	ValidateTierList(tiers []dto.CreatePriceTier) error
}

type tierEditorService struct {
	ServiceParams
}

func NewTierEditorService(params ServiceParams) TierEditorService {
	return &tierEditorService{
		ServiceParams: params,
	}
}

// cloneTiers deep-copies the list so edits never alias the caller's slice.
func cloneTiers(tiers []dto.CreatePriceTier) []dto.CreatePriceTier {
	out := make([]dto.CreatePriceTier, len(tiers))
	for i, t := range tiers {
		out[i] = t
		if t.UpTo != nil {
			upTo := *t.UpTo
			out[i].UpTo = &upTo
		}
		if t.FlatAmount != nil {
			flat := *t.FlatAmount
			out[i].FlatAmount = &flat
		}
	}
	return out
}

func (s *tierEditorService) AddTier(tiers []dto.CreatePriceTier) []dto.CreatePriceTier {
	updated := cloneTiers(tiers)

	if len(updated) == 0 {
		return []dto.CreatePriceTier{{
			From:       1,
			UpTo:       nil,
			UnitAmount: decimal.Zero,
		}}
	}

	last := &updated[len(updated)-1]
	if last.UpTo == nil {
		closedAt := last.From + 1
		last.UpTo = &closedAt
	}

	updated = append(updated, dto.CreatePriceTier{
		From:       *last.UpTo + 1,
		UpTo:       nil,
		UnitAmount: decimal.Zero,
	})
	return updated
}

func (s *tierEditorService) RemoveTier(tiers []dto.CreatePriceTier, index int) []dto.CreatePriceTier {
	if len(tiers) <= 1 || index < 0 || index >= len(tiers) {
		return tiers
	}

	updated := cloneTiers(tiers)

	if index == len(updated)-1 {
		updated = updated[:index]
		// The new last tier becomes the open-ended one.
		updated[len(updated)-1].UpTo = nil
		return updated
	}

	// Removing a middle (or first) tier: the next tier absorbs the removed
	// range so the timeline stays contiguous.
	updated[index+1].From = updated[index].From
	return append(updated[:index], updated[index+1:]...)
}

func (s *tierEditorService) UpdateTier(tiers []dto.CreatePriceTier, index int, field dto.TierField, value string) ([]dto.CreatePriceTier, error) {
	if index < 0 || index >= len(tiers) {
		return nil, ierr.NewError("tier index out of range").
			WithHint("Tier index out of range").
			WithReportableDetails(map[string]interface{}{
				"index": index,
				"tiers": len(tiers),
			}).
			Mark(ierr.ErrValidation)
	}
	if err := field.Validate(); err != nil {
		return nil, err
	}

	updated := cloneTiers(tiers)
	lastIndex := len(updated) - 1

	switch field {
	case dto.TierFieldFrom:
		// The first tier always starts at 1; its from is not editable.
		if index == 0 {
			return nil, ierr.NewError("the first tier always starts at 1").
				WithHint("The first tier always starts at 1").
				Mark(ierr.ErrValidation)
		}
		from, err := parseTierBoundary(value)
		if err != nil {
			return nil, err
		}
		if from < 2 {
			return nil, ierr.NewError("tier start must be at least 2").
				WithHint("Only the first tier can start at 1").
				Mark(ierr.ErrValidation)
		}
		updated[index].From = from
		// Cascade backwards so the previous tier still ends right before
		// this one starts.
		prevUpTo := from - 1
		updated[index-1].UpTo = &prevUpTo

	case dto.TierFieldUpTo:
		// The terminal tier is open-ended and rendered as "∞".
		if index == lastIndex {
			return nil, ierr.NewError("the last tier is open-ended").
				WithHint("The last tier is open-ended and cannot be capped").
				Mark(ierr.ErrValidation)
		}
		upTo, err := parseTierBoundary(value)
		if err != nil {
			return nil, err
		}
		if upTo < updated[index].From {
			return nil, ierr.NewError("tier end cannot be before its start").
				WithHint("Tier end cannot be before its start").
				WithReportableDetails(map[string]interface{}{
					"from":  updated[index].From,
					"up_to": upTo,
				}).
				Mark(ierr.ErrValidation)
		}
		// The cascade moves the next tier's from; if that would run past the
		// next tier's own end, the edit is irreparable and rejected.
		if next := updated[index+1]; next.UpTo != nil && upTo >= *next.UpTo {
			return nil, ierr.NewError("tier end overruns the next tier").
				WithHint("Tier end must be before the next tier ends").
				WithReportableDetails(map[string]interface{}{
					"up_to":      upTo,
					"next_up_to": *next.UpTo,
				}).
				Mark(ierr.ErrValidation)
		}
		updated[index].UpTo = &upTo
		// Cascade forwards so the next tier starts right after this one
		// ends.
		updated[index+1].From = upTo + 1

	case dto.TierFieldUnitAmount:
		amount, err := parseTierAmount(value)
		if err != nil {
			return nil, err
		}
		updated[index].UnitAmount = amount

	case dto.TierFieldFlatAmount:
		if strings.TrimSpace(value) == "" {
			updated[index].FlatAmount = nil
			break
		}
		amount, err := parseTierAmount(value)
		if err != nil {
			return nil, err
		}
		updated[index].FlatAmount = &amount
	}

	return updated, nil
}

func (s *tierEditorService) ValidateTierList(tiers []dto.CreatePriceTier) error {
	if len(tiers) == 0 {
		return ierr.NewError("at least one tier is required").
			WithHint("Price tiers are required to set up tiered pricing").
			Mark(ierr.ErrValidation)
	}

	if tiers[0].From != 1 {
		return ierr.NewError("the first tier must start at 1").
			WithHint("The first tier must start at 1").
			Mark(ierr.ErrValidation)
	}

	for i := range tiers {
		if err := tiers[i].Validate(); err != nil {
			return err
		}

		isLast := i == len(tiers)-1
		if isLast {
			if tiers[i].UpTo != nil {
				return ierr.NewError("the last tier must be open-ended").
					WithHint("The last tier must be open-ended").
					Mark(ierr.ErrValidation)
			}
			continue
		}

		if tiers[i].UpTo == nil {
			return ierr.NewError("only the last tier can be open-ended").
				WithHint("Only the last tier can be open-ended").
				WithReportableDetails(map[string]interface{}{
					"tier_index": i,
				}).
				Mark(ierr.ErrValidation)
		}
		if *tiers[i].UpTo < tiers[i].From {
			return ierr.NewError("tier end cannot be before its start").
				WithHint("Tier end cannot be before its start").
				WithReportableDetails(map[string]interface{}{
					"tier_index": i,
				}).
				Mark(ierr.ErrValidation)
		}
		if *tiers[i].UpTo+1 != tiers[i+1].From {
			return ierr.NewError("tiers must be contiguous").
				WithHint("Each tier must start right after the previous tier ends").
				WithReportableDetails(map[string]interface{}{
					"tier_index": i,
					"up_to":      *tiers[i].UpTo,
					"next_from":  tiers[i+1].From,
				}).
				Mark(ierr.ErrValidation)
		}
	}

	return nil
}

// parseTierBoundary parses a unit boundary from raw input, stripping
// everything the integer input pattern rejects.
func parseTierBoundary(value string) (uint64, error) {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, ierr.NewError("tier boundary must be a number").
			WithHint("Tier boundaries must be whole numbers").
			WithReportableDetails(map[string]interface{}{
				"value": value,
			}).
			Mark(ierr.ErrValidation)
	}

	boundary, err := strconv.ParseUint(digits.String(), 10, 64)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Tier boundaries must be whole numbers").
			WithReportableDetails(map[string]interface{}{
				"value": value,
			}).
			Mark(ierr.ErrValidation)
	}
	return boundary, nil
}

// parseTierAmount parses a monetary cell, stripping characters outside the
// decimal input pattern and rejecting a second decimal point.
func parseTierAmount(value string) (decimal.Decimal, error) {
	var cleaned strings.Builder
	seenDot := false
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			cleaned.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			cleaned.WriteRune(r)
		}
	}
	if cleaned.Len() == 0 || cleaned.String() == "." {
		return decimal.Zero, ierr.NewError("amount must be a number").
			WithHint("Amounts must be decimal numbers").
			WithReportableDetails(map[string]interface{}{
				"value": value,
			}).
			Mark(ierr.ErrValidation)
	}

	amount, err := decimal.NewFromString(cleaned.String())
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("Amounts must be decimal numbers").
			WithReportableDetails(map[string]interface{}{
				"value": value,
			}).
			Mark(ierr.ErrValidation)
	}
	if amount.LessThan(decimal.Zero) {
		return decimal.Zero, ierr.NewError("amount cannot be negative").
			WithHint("Amounts cannot be negative").
			Mark(ierr.ErrValidation)
	}
	return amount, nil
}
