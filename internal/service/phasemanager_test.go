package service

import (
	"testing"
	"time"

	"github.com/flexprice/billing-console/internal/api/dto"
	"github.com/flexprice/billing-console/internal/domain/subscription"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/testutil"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type PhaseManagerSuite struct {
	testutil.BaseServiceTestSuite
}

func TestPhaseManager(t *testing.T) {
	suite.Run(t, new(PhaseManagerSuite))
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// twoPhases builds a saved timeline of Jan-Jun followed by an open-ended
// phase starting in Jun.
func (s *PhaseManagerSuite) twoPhases() []*subscription.Phase {
	return []*subscription.Phase{
		{
			ID:           "phase_1",
			BillingCycle: types.BillingCycleAnniversary,
			StartDate:    date(2024, time.January, 1),
			EndDate:      lo.ToPtr(date(2024, time.June, 1)),
			State:        subscription.PhaseStateSaved,
		},
		{
			ID:           "phase_2",
			BillingCycle: types.BillingCycleAnniversary,
			StartDate:    date(2024, time.June, 1),
			EndDate:      nil,
			State:        subscription.PhaseStateSaved,
		},
	}
}

func (s *PhaseManagerSuite) TestUpdatePhaseEndDatePropagatesNextStart() {
	m := NewPhaseManager(s.twoPhases())

	err := m.UpdatePhase(0, dto.PhaseUpdate{
		EndDate: lo.ToPtr(date(2024, time.May, 1)),
	})

	s.NoError(err)
	phases := m.Phases()
	s.Equal(date(2024, time.May, 1), *phases[0].EndDate)
	s.Equal(date(2024, time.May, 1), phases[1].StartDate)
	s.NoError(ValidatePhaseTimeline(phases))
}

func (s *PhaseManagerSuite) TestUpdatePhaseStartDatePropagatesPrevEnd() {
	m := NewPhaseManager(s.twoPhases())

	err := m.UpdatePhase(1, dto.PhaseUpdate{
		StartDate: lo.ToPtr(date(2024, time.July, 1)),
	})

	s.NoError(err)
	phases := m.Phases()
	s.Equal(date(2024, time.July, 1), *phases[0].EndDate)
	s.Equal(date(2024, time.July, 1), phases[1].StartDate)
	s.NoError(ValidatePhaseTimeline(phases))
}

func (s *PhaseManagerSuite) TestUpdatePhaseStartBeforePreviousStartRejected() {
	m := NewPhaseManager(s.twoPhases())

	err := m.UpdatePhase(1, dto.PhaseUpdate{
		StartDate: lo.ToPtr(date(2023, time.December, 1)),
	})

	s.Error(err)
	s.True(ierr.IsValidation(err))
}

// A start date equal to the previous phase's start would propagate an end
// date equal to that phase's own start, collapsing it to zero length.
func (s *PhaseManagerSuite) TestUpdatePhaseStartEqualToPreviousStartRejected() {
	m := NewPhaseManager(s.twoPhases())

	err := m.UpdatePhase(1, dto.PhaseUpdate{
		StartDate: lo.ToPtr(date(2024, time.January, 1)),
	})

	s.Error(err)
	s.True(ierr.IsValidation(err))

	phases := m.Phases()
	s.Equal(date(2024, time.June, 1), *phases[0].EndDate)
	s.Equal(date(2024, time.June, 1), phases[1].StartDate)
	s.NoError(ValidatePhaseTimeline(phases))
}

func (s *PhaseManagerSuite) TestUpdatePhaseEndOverrunningNextEndRejected() {
	phases := s.twoPhases()
	phases[1].EndDate = lo.ToPtr(date(2024, time.September, 1))
	m := NewPhaseManager(phases)

	err := m.UpdatePhase(0, dto.PhaseUpdate{
		EndDate: lo.ToPtr(date(2024, time.October, 1)),
	})

	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PhaseManagerSuite) TestUpdatePhaseClearEndDateOnlyOnLast() {
	m := NewPhaseManager(s.twoPhases())

	err := m.UpdatePhase(0, dto.PhaseUpdate{ClearEndDate: true})

	s.Error(err)
	s.True(ierr.IsValidation(err))
}

// A rejected update leaves the timeline exactly as it was.
func (s *PhaseManagerSuite) TestUpdatePhaseRejectionLeavesTimelineUntouched() {
	m := NewPhaseManager(s.twoPhases())

	err := m.UpdatePhase(1, dto.PhaseUpdate{
		StartDate: lo.ToPtr(date(2023, time.December, 1)),
	})
	s.Error(err)

	phases := m.Phases()
	s.Equal(date(2024, time.June, 1), *phases[0].EndDate)
	s.Equal(date(2024, time.June, 1), phases[1].StartDate)
}

func (s *PhaseManagerSuite) TestAddPhaseRejectedWhenLastIsOpenEnded() {
	m := NewPhaseManager(s.twoPhases())

	err := m.AddPhase()

	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PhaseManagerSuite) TestAddPhaseStartsWhereLastEnds() {
	m := NewPhaseManager([]*subscription.Phase{
		{
			ID:           "phase_1",
			BillingCycle: types.BillingCycleAnniversary,
			StartDate:    date(2024, time.January, 1),
			EndDate:      lo.ToPtr(date(2024, time.June, 1)),
			State:        subscription.PhaseStateSaved,
		},
	})

	s.NoError(m.AddPhase())

	phases := m.Phases()
	s.Len(phases, 2)
	s.Equal(date(2024, time.June, 1), phases[1].StartDate)
	s.Nil(phases[1].EndDate)
	s.Equal(subscription.PhaseStateNew, phases[1].State)
	s.NotEmpty(phases[1].ID)
	s.True(m.IsEditing())
}

func (s *PhaseManagerSuite) TestBeginEditAllowsOnlyOneAtATime() {
	m := NewPhaseManager(s.twoPhases())

	s.NoError(m.BeginEdit(0))
	err := m.BeginEdit(1)

	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PhaseManagerSuite) TestSaveEditCommits() {
	m := NewPhaseManager(s.twoPhases())

	s.NoError(m.BeginEdit(0))
	s.NoError(m.UpdatePhase(0, dto.PhaseUpdate{
		EndDate: lo.ToPtr(date(2024, time.May, 1)),
	}))
	s.NoError(m.SaveEdit())

	s.False(m.IsEditing())
	phases := m.Phases()
	s.Equal(subscription.PhaseStateSaved, phases[0].State)
	s.Equal(date(2024, time.May, 1), *phases[0].EndDate)
}

func (s *PhaseManagerSuite) TestCancelEditRestoresSnapshot() {
	m := NewPhaseManager(s.twoPhases())

	s.NoError(m.BeginEdit(0))
	s.NoError(m.UpdatePhase(0, dto.PhaseUpdate{
		EndDate: lo.ToPtr(date(2024, time.May, 1)),
	}))
	s.NoError(m.CancelEdit())

	s.False(m.IsEditing())
	phases := m.Phases()
	s.Equal(date(2024, time.June, 1), *phases[0].EndDate)
	s.Equal(date(2024, time.June, 1), phases[1].StartDate)
	s.Equal(subscription.PhaseStateSaved, phases[0].State)
}

func (s *PhaseManagerSuite) TestCancelEditDeletesNewPhase() {
	m := NewPhaseManager([]*subscription.Phase{
		{
			ID:           "phase_1",
			BillingCycle: types.BillingCycleAnniversary,
			StartDate:    date(2024, time.January, 1),
			EndDate:      lo.ToPtr(date(2024, time.June, 1)),
			State:        subscription.PhaseStateSaved,
		},
	})

	s.NoError(m.AddPhase())
	s.NoError(m.CancelEdit())

	s.False(m.IsEditing())
	s.Len(m.Phases(), 1)
}

func (s *PhaseManagerSuite) TestRemoveMiddlePhaseRelinksNeighbors() {
	phases := []*subscription.Phase{
		{
			ID:           "phase_1",
			BillingCycle: types.BillingCycleAnniversary,
			StartDate:    date(2024, time.January, 1),
			EndDate:      lo.ToPtr(date(2024, time.April, 1)),
			State:        subscription.PhaseStateSaved,
		},
		{
			ID:           "phase_2",
			BillingCycle: types.BillingCycleAnniversary,
			StartDate:    date(2024, time.April, 1),
			EndDate:      lo.ToPtr(date(2024, time.August, 1)),
			State:        subscription.PhaseStateSaved,
		},
		{
			ID:           "phase_3",
			BillingCycle: types.BillingCycleAnniversary,
			StartDate:    date(2024, time.August, 1),
			EndDate:      nil,
			State:        subscription.PhaseStateSaved,
		},
	}
	m := NewPhaseManager(phases)

	s.NoError(m.RemovePhase(1))

	remaining := m.Phases()
	s.Len(remaining, 2)
	s.Equal(date(2024, time.April, 1), remaining[1].StartDate)
	s.NoError(ValidatePhaseTimeline(remaining))
}

func (s *PhaseManagerSuite) TestRemoveSolePhaseRejected() {
	m := NewPhaseManager([]*subscription.Phase{
		{
			ID:           "phase_1",
			BillingCycle: types.BillingCycleAnniversary,
			StartDate:    date(2024, time.January, 1),
			State:        subscription.PhaseStateSaved,
		},
	})

	err := m.RemovePhase(0)

	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PhaseManagerSuite) TestRemovePhaseRejectedMidEdit() {
	m := NewPhaseManager(s.twoPhases())

	s.NoError(m.BeginEdit(0))
	err := m.RemovePhase(1)

	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *PhaseManagerSuite) TestValidatePhaseTimeline() {
	s.NoError(ValidatePhaseTimeline(s.twoPhases()))

	// Gap between phases.
	gapped := s.twoPhases()
	gapped[1].StartDate = date(2024, time.July, 1)
	s.Error(ValidatePhaseTimeline(gapped))

	// Open-ended phase in the middle.
	open := s.twoPhases()
	open[0].EndDate = nil
	s.Error(ValidatePhaseTimeline(open))
}

func (s *PhaseManagerSuite) TestNewPhaseManagerDoesNotAliasInput() {
	phases := s.twoPhases()
	m := NewPhaseManager(phases)

	s.NoError(m.UpdatePhase(0, dto.PhaseUpdate{
		EndDate: lo.ToPtr(date(2024, time.May, 1)),
	}))

	// The caller's slice still holds the original boundary.
	s.Equal(date(2024, time.June, 1), *phases[0].EndDate)
}
