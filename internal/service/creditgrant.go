package service

import (
	"context"

	"github.com/flexprice/billing-console/internal/api/dto"
	ierr "github.com/flexprice/billing-console/internal/errors"
)

// CreditGrantService validates credit grants before they are attached to a
// subscription phase. Grants live inside phases and travel with the phase
// timeline; there is no standalone grant resource on the backend.
type CreditGrantService interface {
	// BuildCreditGrant validates the form input and returns the grant ready
	// to attach to a phase.
	BuildCreditGrant(ctx context.Context, req dto.CreateCreditGrantRequest) (*dto.CreditGrantResponse, error)

	// ValidateCreditGrants checks a batch of grants as submitted with a
	// phase edit.
	ValidateCreditGrants(ctx context.Context, req dto.ValidateCreditGrantsRequest) error
}

type creditGrantService struct {
	ServiceParams
}

func NewCreditGrantService(params ServiceParams) CreditGrantService {
	return &creditGrantService{
		ServiceParams: params,
	}
}

func (s *creditGrantService) BuildCreditGrant(ctx context.Context, req dto.CreateCreditGrantRequest) (*dto.CreditGrantResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &dto.CreditGrantResponse{CreditGrant: req.ToCreditGrant()}, nil
}

func (s *creditGrantService) ValidateCreditGrants(ctx context.Context, req dto.ValidateCreditGrantsRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	// Priorities must be unique within a batch so grant application order
	// is deterministic.
	seen := make(map[int]int, len(req.CreditGrants))
	for i, grant := range req.CreditGrants {
		if grant.Priority == nil {
			continue
		}
		if prev, ok := seen[*grant.Priority]; ok {
			return ierr.NewError("credit grant priorities must be unique").
				WithHint("Two credit grants cannot share the same priority").
				WithReportableDetails(map[string]interface{}{
					"priority":    *grant.Priority,
					"grant_index": i,
					"conflicts":   prev,
				}).
				Mark(ierr.ErrValidation)
		}
		seen[*grant.Priority] = i
	}

	return nil
}
