package service

import (
	"context"

	"github.com/flexprice/billing-console/internal/api/dto"
	"github.com/flexprice/billing-console/internal/cache"
	"github.com/flexprice/billing-console/internal/domain/subscription"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/types"
)

// PhaseManager is the in-memory edit session over a subscription's phase
// timeline. Phases form a contiguous, non-overlapping sequence: each phase's
// end date equals the next phase's start date and only the terminal phase may
// be open-ended. At most one phase is in EDIT or NEW at a time; the manager
// snapshots the timeline when an edit begins so a cancel can roll back
// without partial mutation.
//
// Boundary edits always propagate to the adjacent phase. A start date change
// retroactively moves the previous phase's end date; an end date change moves
// the next phase's start date. Edits whose propagation cannot produce a valid
// timeline are rejected wholesale.
type PhaseManager struct {
	phases   []*subscription.Phase
	snapshot []*subscription.Phase
	editing  int
}

// NewPhaseManager starts an edit session over the given timeline. The phases
// are deep-copied; the caller's slice is never mutated.
func NewPhaseManager(phases []*subscription.Phase) *PhaseManager {
	m := &PhaseManager{
		phases:  clonePhases(phases),
		editing: -1,
	}
	for i, p := range m.phases {
		if p.State == "" {
			p.State = subscription.PhaseStateSaved
		}
		if p.State != subscription.PhaseStateSaved {
			m.editing = i
		}
	}
	return m
}

func clonePhases(phases []*subscription.Phase) []*subscription.Phase {
	out := make([]*subscription.Phase, len(phases))
	for i, p := range phases {
		out[i] = p.Clone()
	}
	return out
}

// Phases returns the current timeline.
func (m *PhaseManager) Phases() []*subscription.Phase {
	return m.phases
}

// IsEditing reports whether any phase is mid-edit.
func (m *PhaseManager) IsEditing() bool {
	return m.editing >= 0
}

// BeginEdit moves the phase at index into EDIT and snapshots the timeline
// for rollback. Only one phase may be edited at a time.
func (m *PhaseManager) BeginEdit(index int) error {
	if err := m.checkIndex(index); err != nil {
		return err
	}
	if m.editing >= 0 && m.editing != index {
		return ierr.NewError("another phase is already being edited").
			WithHint("Save or cancel the current phase edit first").
			WithReportableDetails(map[string]interface{}{
				"editing_index": m.editing,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	m.snapshot = clonePhases(m.phases)
	m.phases[index].State = subscription.PhaseStateEdit
	m.editing = index
	return nil
}

// SaveEdit commits the phase currently in EDIT or NEW and drops the
// rollback snapshot.
func (m *PhaseManager) SaveEdit() error {
	if m.editing < 0 {
		return ierr.NewError("no phase is being edited").
			WithHint("Start editing a phase first").
			Mark(ierr.ErrInvalidOperation)
	}
	if err := ValidatePhaseTimeline(m.phases); err != nil {
		return err
	}

	m.phases[m.editing].State = subscription.PhaseStateSaved
	m.editing = -1
	m.snapshot = nil
	return nil
}

// CancelEdit abandons the current edit. A NEW phase is deleted outright;
// an existing phase is restored from the snapshot.
func (m *PhaseManager) CancelEdit() error {
	if m.editing < 0 {
		return ierr.NewError("no phase is being edited").
			WithHint("Start editing a phase first").
			Mark(ierr.ErrInvalidOperation)
	}

	if m.phases[m.editing].State == subscription.PhaseStateNew {
		m.phases = append(m.phases[:m.editing], m.phases[m.editing+1:]...)
	} else if m.snapshot != nil {
		m.phases = clonePhases(m.snapshot)
		m.phases[m.editing].State = subscription.PhaseStateSaved
	} else {
		m.phases[m.editing].State = subscription.PhaseStateSaved
	}

	m.editing = -1
	m.snapshot = nil
	return nil
}

// AddPhase appends a NEW phase starting where the current last phase ends.
// The last phase must be closed first; an open-ended phase cannot be
// followed.
func (m *PhaseManager) AddPhase() error {
	if m.editing >= 0 && len(m.phases) > 1 {
		return ierr.NewError("another phase is already being edited").
			WithHint("Save or cancel the current phase edit first").
			Mark(ierr.ErrInvalidOperation)
	}

	if len(m.phases) == 0 {
		return ierr.NewError("subscription has no phases").
			WithHint("A subscription timeline cannot be empty").
			Mark(ierr.ErrInvalidOperation)
	}

	last := m.phases[len(m.phases)-1]
	if last.IsOpenEnded() {
		return ierr.NewError("the last phase has no end date").
			WithHint("Set an end date on the last phase before adding a new one").
			Mark(ierr.ErrInvalidOperation)
	}

	m.snapshot = clonePhases(m.phases)
	phase := &subscription.Phase{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PHASE),
		BillingCycle: last.BillingCycle,
		StartDate:    *last.EndDate,
		EndDate:      nil,
		State:        subscription.PhaseStateNew,
	}
	m.phases = append(m.phases, phase)
	m.editing = len(m.phases) - 1
	return nil
}

// RemovePhase deletes the phase at index and re-links the neighboring
// boundary so the timeline stays contiguous. The sole remaining phase cannot
// be removed, and nothing can be removed mid-edit.
func (m *PhaseManager) RemovePhase(index int) error {
	if err := m.checkIndex(index); err != nil {
		return err
	}
	if m.editing >= 0 {
		return ierr.NewError("a phase is being edited").
			WithHint("Save or cancel the current phase edit first").
			Mark(ierr.ErrInvalidOperation)
	}
	if len(m.phases) == 1 {
		return ierr.NewError("cannot remove the only phase").
			WithHint("A subscription must have at least one phase").
			Mark(ierr.ErrInvalidOperation)
	}

	// Removing a middle phase: the next phase starts where the previous one
	// ends.
	if index > 0 && index < len(m.phases)-1 {
		prev := m.phases[index-1]
		next := m.phases[index+1]
		if prev.EndDate != nil {
			start := *prev.EndDate
			next.StartDate = start
		}
	}

	m.phases = append(m.phases[:index], m.phases[index+1:]...)
	return nil
}

// UpdatePhase applies a partial update to the phase at index, propagating
// boundary changes to the adjacent phases. On any rejection the timeline is
// left untouched.
func (m *PhaseManager) UpdatePhase(index int, update dto.PhaseUpdate) error {
	if err := m.checkIndex(index); err != nil {
		return err
	}
	if err := update.Validate(); err != nil {
		return err
	}

	updated := clonePhases(m.phases)
	phase := updated[index]

	if update.StartDate != nil {
		start := *update.StartDate

		if phase.EndDate != nil && start.After(*phase.EndDate) && update.EndDate == nil && !update.ClearEndDate {
			return ierr.NewError("start date cannot be after the phase end date").
				WithHint("Phase start date must be before its end date").
				WithReportableDetails(map[string]interface{}{
					"start_date": start,
					"end_date":   phase.EndDate,
				}).
				Mark(ierr.ErrValidation)
		}
		// The previous phase would become zero-length (or inverted) once its
		// end date is propagated to this start.
		if index > 0 && !start.After(updated[index-1].StartDate) {
			return ierr.NewError("start date cannot precede the previous phase").
				WithHint("Phase start date must be after the previous phase starts").
				WithReportableDetails(map[string]interface{}{
					"start_date":           start,
					"previous_phase_start": updated[index-1].StartDate,
				}).
				Mark(ierr.ErrValidation)
		}

		phase.StartDate = start
		// The previous phase retroactively ends where this one now starts.
		if index > 0 {
			end := start
			updated[index-1].EndDate = &end
		}
	}

	if update.ClearEndDate {
		if index != len(updated)-1 {
			return ierr.NewError("only the last phase can be open-ended").
				WithHint("Only the last phase may have no end date").
				WithReportableDetails(map[string]interface{}{
					"phase_index": index,
				}).
				Mark(ierr.ErrValidation)
		}
		phase.EndDate = nil
	}

	if update.EndDate != nil {
		end := *update.EndDate
		if !end.After(phase.StartDate) {
			return ierr.NewError("end date must be after the phase start date").
				WithHint("Phase end date must be after its start date").
				WithReportableDetails(map[string]interface{}{
					"start_date": phase.StartDate,
					"end_date":   end,
				}).
				Mark(ierr.ErrValidation)
		}

		phase.EndDate = &end
		// The next phase starts where this one now ends. If that start
		// would run past the next phase's own end, the edit is irreparable
		// and rejected.
		if index < len(updated)-1 {
			next := updated[index+1]
			if next.EndDate != nil && !end.Before(*next.EndDate) {
				return ierr.NewError("end date overruns the next phase").
					WithHint("Phase end date must be before the next phase ends").
					WithReportableDetails(map[string]interface{}{
						"end_date":       end,
						"next_phase_end": next.EndDate,
					}).
					Mark(ierr.ErrValidation)
			}
			next.StartDate = end
		}
	}

	if update.BillingCycle != nil {
		phase.BillingCycle = *update.BillingCycle
	}
	if update.SetCreditGrants {
		phase.CreditGrants = update.CreditGrants
	}
	if update.ProrateCharges != nil {
		phase.ProrateCharges = *update.ProrateCharges
	}
	if update.CommitmentAmount != nil {
		phase.CommitmentAmount = update.CommitmentAmount
	}
	if update.OverageFactor != nil {
		phase.OverageFactor = update.OverageFactor
	}

	// Propagation touches the neighbors too, so every phase of the candidate
	// timeline must hold, not just the edited one.
	for i := range updated {
		if err := updated[i].Validate(); err != nil {
			return err
		}
	}
	if err := ValidatePhaseTimeline(updated); err != nil {
		return err
	}

	m.phases = updated
	return nil
}

func (m *PhaseManager) checkIndex(index int) error {
	if index < 0 || index >= len(m.phases) {
		return ierr.NewError("phase index out of range").
			WithHint("Phase index out of range").
			WithReportableDetails(map[string]interface{}{
				"index":  index,
				"phases": len(m.phases),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ValidatePhaseTimeline checks the contiguity invariant over a full
// timeline: each phase's end date equals the next phase's start date and
// only the terminal phase may be open-ended.
func ValidatePhaseTimeline(phases []*subscription.Phase) error {
	for i, phase := range phases {
		isLast := i == len(phases)-1

		if phase.EndDate == nil && !isLast {
			return ierr.NewError("only the last phase can be open-ended").
				WithHint("Only the last phase may have no end date").
				WithReportableDetails(map[string]interface{}{
					"phase_index": i,
				}).
				Mark(ierr.ErrValidation)
		}

		if !isLast {
			next := phases[i+1]
			if !phase.EndDate.Equal(next.StartDate) {
				return ierr.NewError("phases must be contiguous").
					WithHint("Each phase must start exactly when the previous phase ends").
					WithReportableDetails(map[string]interface{}{
						"phase_index": i,
						"end_date":    phase.EndDate,
						"next_start":  next.StartDate,
					}).
					Mark(ierr.ErrValidation)
			}
		}
	}
	return nil
}

// PhaseManagerService exposes the timeline transforms over request DTOs.
// Each call builds a fresh manager from the submitted phases, applies one
// operation, and returns the transformed timeline; the backend performs its
// own authoritative validation when the timeline is finally submitted.
type PhaseManagerService interface {
	AddPhase(ctx context.Context, req dto.PhaseTimelineRequest) (*dto.PhaseTimelineResponse, error)
	RemovePhase(ctx context.Context, req dto.RemovePhaseRequest) (*dto.PhaseTimelineResponse, error)
	UpdatePhase(ctx context.Context, req dto.UpdatePhaseRequest) (*dto.PhaseTimelineResponse, error)
	ValidateTimeline(ctx context.Context, req dto.PhaseTimelineRequest) error

	// SubmitTimeline validates the timeline and pushes it wholesale to the
	// billing backend.
	SubmitTimeline(ctx context.Context, subscriptionID string, req dto.PhaseTimelineRequest) (*dto.SubscriptionResponse, error)
}

type phaseManagerService struct {
	ServiceParams
}

func NewPhaseManagerService(params ServiceParams) PhaseManagerService {
	return &phaseManagerService{
		ServiceParams: params,
	}
}

func (s *phaseManagerService) AddPhase(ctx context.Context, req dto.PhaseTimelineRequest) (*dto.PhaseTimelineResponse, error) {
	m := NewPhaseManager(req.Phases)
	if err := m.AddPhase(); err != nil {
		s.Logger.WithContext(ctx).Debugw("add phase rejected", "error", err)
		return nil, err
	}
	return &dto.PhaseTimelineResponse{Phases: m.Phases()}, nil
}

func (s *phaseManagerService) RemovePhase(ctx context.Context, req dto.RemovePhaseRequest) (*dto.PhaseTimelineResponse, error) {
	m := NewPhaseManager(req.Phases)
	if err := m.RemovePhase(req.Index); err != nil {
		s.Logger.WithContext(ctx).Debugw("remove phase rejected", "index", req.Index, "error", err)
		return nil, err
	}
	return &dto.PhaseTimelineResponse{Phases: m.Phases()}, nil
}

func (s *phaseManagerService) UpdatePhase(ctx context.Context, req dto.UpdatePhaseRequest) (*dto.PhaseTimelineResponse, error) {
	m := NewPhaseManager(req.Phases)
	if err := m.UpdatePhase(req.Index, req.Update); err != nil {
		s.Logger.WithContext(ctx).Debugw("update phase rejected", "index", req.Index, "error", err)
		return nil, err
	}
	return &dto.PhaseTimelineResponse{Phases: m.Phases()}, nil
}

func (s *phaseManagerService) ValidateTimeline(ctx context.Context, req dto.PhaseTimelineRequest) error {
	for i, phase := range req.Phases {
		if err := phase.Validate(); err != nil {
			return ierr.WithError(err).
				WithHint("Phase is invalid").
				WithReportableDetails(map[string]interface{}{
					"phase_index": i,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	return ValidatePhaseTimeline(req.Phases)
}

func (s *phaseManagerService) SubmitTimeline(ctx context.Context, subscriptionID string, req dto.PhaseTimelineRequest) (*dto.SubscriptionResponse, error) {
	if subscriptionID == "" {
		return nil, ierr.NewError("subscription ID is required").
			WithHint("Please provide a valid subscription ID").
			Mark(ierr.ErrValidation)
	}
	if err := s.ValidateTimeline(ctx, req); err != nil {
		return nil, err
	}

	resp, err := s.SubscriptionClient.UpdatePhases(ctx, subscriptionID, req)
	if err != nil {
		return nil, err
	}

	s.Cache.DeleteByPrefix(ctx, cache.PrefixKey("subscription", subscriptionID))
	return resp, nil
}
