package service

import (
	"testing"

	"github.com/flexprice/billing-console/internal/api/dto"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/testutil"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TierEditorServiceSuite struct {
	testutil.BaseServiceTestSuite
	editor TierEditorService
}

func TestTierEditorService(t *testing.T) {
	suite.Run(t, new(TierEditorServiceSuite))
}

func (s *TierEditorServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.editor = NewTierEditorService(ServiceParams{
		Logger: s.GetLogger(),
		Config: s.GetConfig(),
		Cache:  s.GetCache(),
	})
}

func (s *TierEditorServiceSuite) twoTiers() []dto.CreatePriceTier {
	return []dto.CreatePriceTier{
		{From: 1, UpTo: lo.ToPtr(uint64(5)), UnitAmount: decimal.NewFromInt(10)},
		{From: 6, UpTo: nil, UnitAmount: decimal.NewFromInt(8)},
	}
}

func (s *TierEditorServiceSuite) TestAddTierToEmptyList() {
	tiers := s.editor.AddTier(nil)

	s.Len(tiers, 1)
	s.Equal(uint64(1), tiers[0].From)
	s.Nil(tiers[0].UpTo)
}

func (s *TierEditorServiceSuite) TestAddTierClosesOpenEndedLast() {
	tiers := []dto.CreatePriceTier{
		{From: 1, UpTo: nil, UnitAmount: decimal.NewFromInt(10)},
	}

	updated := s.editor.AddTier(tiers)

	s.Len(updated, 2)
	s.Equal(uint64(1), updated[0].From)
	s.Equal(uint64(2), *updated[0].UpTo)
	s.Equal(uint64(3), updated[1].From)
	s.Nil(updated[1].UpTo)
	s.NoError(s.editor.ValidateTierList(updated))

	// The caller's slice is untouched.
	s.Nil(tiers[0].UpTo)
}

func (s *TierEditorServiceSuite) TestRemoveTierSoleTierIsNoOp() {
	tiers := []dto.CreatePriceTier{
		{From: 1, UpTo: nil, UnitAmount: decimal.NewFromInt(10)},
	}

	updated := s.editor.RemoveTier(tiers, 0)

	s.Len(updated, 1)
}

func (s *TierEditorServiceSuite) TestRemoveLastTierReopensNewLast() {
	updated := s.editor.RemoveTier(s.twoTiers(), 1)

	s.Len(updated, 1)
	s.Equal(uint64(1), updated[0].From)
	s.Nil(updated[0].UpTo)
	s.NoError(s.editor.ValidateTierList(updated))
}

func (s *TierEditorServiceSuite) TestRemoveMiddleTierRelinksNext() {
	tiers := []dto.CreatePriceTier{
		{From: 1, UpTo: lo.ToPtr(uint64(5)), UnitAmount: decimal.NewFromInt(10)},
		{From: 6, UpTo: lo.ToPtr(uint64(10)), UnitAmount: decimal.NewFromInt(8)},
		{From: 11, UpTo: nil, UnitAmount: decimal.NewFromInt(6)},
	}

	updated := s.editor.RemoveTier(tiers, 1)

	s.Len(updated, 2)
	s.Equal(uint64(5), *updated[0].UpTo)
	s.Equal(uint64(6), updated[1].From)
	s.Nil(updated[1].UpTo)
	s.NoError(s.editor.ValidateTierList(updated))
}

func (s *TierEditorServiceSuite) TestRemoveFirstTierAbsorbsRange() {
	updated := s.editor.RemoveTier(s.twoTiers(), 0)

	s.Len(updated, 1)
	s.Equal(uint64(1), updated[0].From)
	s.Nil(updated[0].UpTo)
}

func (s *TierEditorServiceSuite) TestUpdateUpToCascadesNextFrom() {
	updated, err := s.editor.UpdateTier(s.twoTiers(), 0, dto.TierFieldUpTo, "10")

	s.NoError(err)
	s.Equal(uint64(10), *updated[0].UpTo)
	s.Equal(uint64(11), updated[1].From)
	s.NoError(s.editor.ValidateTierList(updated))
}

func (s *TierEditorServiceSuite) TestUpdateFromCascadesPrevUpTo() {
	updated, err := s.editor.UpdateTier(s.twoTiers(), 1, dto.TierFieldFrom, "9")

	s.NoError(err)
	s.Equal(uint64(8), *updated[0].UpTo)
	s.Equal(uint64(9), updated[1].From)
	s.NoError(s.editor.ValidateTierList(updated))
}

func (s *TierEditorServiceSuite) TestUpdateFirstTierFromRejected() {
	_, err := s.editor.UpdateTier(s.twoTiers(), 0, dto.TierFieldFrom, "3")

	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *TierEditorServiceSuite) TestUpdateLastTierUpToRejected() {
	_, err := s.editor.UpdateTier(s.twoTiers(), 1, dto.TierFieldUpTo, "100")

	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *TierEditorServiceSuite) TestUpdateUpToBeforeFromRejected() {
	tiers := []dto.CreatePriceTier{
		{From: 1, UpTo: lo.ToPtr(uint64(5)), UnitAmount: decimal.NewFromInt(10)},
		{From: 6, UpTo: lo.ToPtr(uint64(10)), UnitAmount: decimal.NewFromInt(8)},
		{From: 11, UpTo: nil, UnitAmount: decimal.NewFromInt(6)},
	}

	_, err := s.editor.UpdateTier(tiers, 1, dto.TierFieldUpTo, "3")

	s.Error(err)
	s.True(ierr.IsValidation(err))
}

// Raising a tier's end past a capped next tier would invert that tier; the
// cascade only moves the neighbor's from, so the edit is rejected instead.
func (s *TierEditorServiceSuite) TestUpdateUpToOverrunningNextTierRejected() {
	tiers := []dto.CreatePriceTier{
		{From: 1, UpTo: lo.ToPtr(uint64(5)), UnitAmount: decimal.NewFromInt(10)},
		{From: 6, UpTo: lo.ToPtr(uint64(10)), UnitAmount: decimal.NewFromInt(8)},
		{From: 11, UpTo: nil, UnitAmount: decimal.NewFromInt(6)},
	}

	_, err := s.editor.UpdateTier(tiers, 0, dto.TierFieldUpTo, "10")

	s.Error(err)
	s.True(ierr.IsValidation(err))

	// An edit up to just below the neighbor's end still cascades cleanly.
	updated, err := s.editor.UpdateTier(tiers, 0, dto.TierFieldUpTo, "9")
	s.NoError(err)
	s.Equal(uint64(9), *updated[0].UpTo)
	s.Equal(uint64(10), updated[1].From)
	s.NoError(s.editor.ValidateTierList(updated))
}

func (s *TierEditorServiceSuite) TestUpdateTierIndexOutOfRange() {
	_, err := s.editor.UpdateTier(s.twoTiers(), 5, dto.TierFieldUpTo, "10")

	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *TierEditorServiceSuite) TestUpdateBoundaryStripsNonNumericInput() {
	updated, err := s.editor.UpdateTier(s.twoTiers(), 0, dto.TierFieldUpTo, "1,0 0 0")

	s.NoError(err)
	s.Equal(uint64(1000), *updated[0].UpTo)
	s.Equal(uint64(1001), updated[1].From)
}

func (s *TierEditorServiceSuite) TestUpdateUnitAmountStripsInvalidCharacters() {
	updated, err := s.editor.UpdateTier(s.twoTiers(), 0, dto.TierFieldUnitAmount, "$1,250.75")

	s.NoError(err)
	s.True(updated[0].UnitAmount.Equal(decimal.RequireFromString("1250.75")))
}

func (s *TierEditorServiceSuite) TestUpdateUnitAmountDropsSecondDecimalPoint() {
	updated, err := s.editor.UpdateTier(s.twoTiers(), 0, dto.TierFieldUnitAmount, "3.5.5")

	s.NoError(err)
	s.True(updated[0].UnitAmount.Equal(decimal.RequireFromString("3.55")))
}

func (s *TierEditorServiceSuite) TestUpdateUnitAmountRejectsEmptyInput() {
	_, err := s.editor.UpdateTier(s.twoTiers(), 0, dto.TierFieldUnitAmount, "abc")

	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *TierEditorServiceSuite) TestUpdateFlatAmountEmptyClearsIt() {
	tiers := s.twoTiers()
	tiers[0].FlatAmount = lo.ToPtr(decimal.NewFromInt(5))

	updated, err := s.editor.UpdateTier(tiers, 0, dto.TierFieldFlatAmount, "")

	s.NoError(err)
	s.Nil(updated[0].FlatAmount)
}

func (s *TierEditorServiceSuite) TestValidateTierList() {
	s.NoError(s.editor.ValidateTierList(s.twoTiers()))

	// Empty list.
	s.Error(s.editor.ValidateTierList(nil))

	// First tier must start at 1.
	s.Error(s.editor.ValidateTierList([]dto.CreatePriceTier{
		{From: 2, UpTo: nil, UnitAmount: decimal.NewFromInt(10)},
	}))

	// Gap between tiers.
	s.Error(s.editor.ValidateTierList([]dto.CreatePriceTier{
		{From: 1, UpTo: lo.ToPtr(uint64(5)), UnitAmount: decimal.NewFromInt(10)},
		{From: 7, UpTo: nil, UnitAmount: decimal.NewFromInt(8)},
	}))

	// Only the last tier may be open-ended.
	s.Error(s.editor.ValidateTierList([]dto.CreatePriceTier{
		{From: 1, UpTo: nil, UnitAmount: decimal.NewFromInt(10)},
		{From: 6, UpTo: nil, UnitAmount: decimal.NewFromInt(8)},
	}))

	// The last tier must be open-ended.
	s.Error(s.editor.ValidateTierList([]dto.CreatePriceTier{
		{From: 1, UpTo: lo.ToPtr(uint64(5)), UnitAmount: decimal.NewFromInt(10)},
	}))
}

// Every editor transform must leave the list valid: repeated adds and
// boundary edits never produce a gap or overlap.
func (s *TierEditorServiceSuite) TestTransformsPreserveContiguity() {
	tiers := s.editor.AddTier(nil)
	tiers = s.editor.AddTier(tiers)
	tiers = s.editor.AddTier(tiers)
	s.NoError(s.editor.ValidateTierList(tiers))

	tiers, err := s.editor.UpdateTier(tiers, 0, dto.TierFieldUpTo, "3")
	s.NoError(err)
	s.NoError(s.editor.ValidateTierList(tiers))

	tiers, err = s.editor.UpdateTier(tiers, 1, dto.TierFieldUpTo, "250")
	s.NoError(err)
	s.NoError(s.editor.ValidateTierList(tiers))

	tiers = s.editor.RemoveTier(tiers, 1)
	s.NoError(s.editor.ValidateTierList(tiers))
}
