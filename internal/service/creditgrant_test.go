package service

import (
	"testing"

	"github.com/flexprice/billing-console/internal/api/dto"
	"github.com/flexprice/billing-console/internal/domain/subscription"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/testutil"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CreditGrantServiceSuite struct {
	testutil.BaseServiceTestSuite
	creditGrantService CreditGrantService
}

func TestCreditGrantService(t *testing.T) {
	suite.Run(t, new(CreditGrantServiceSuite))
}

func (s *CreditGrantServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.creditGrantService = NewCreditGrantService(ServiceParams{
		Logger: s.GetLogger(),
		Config: s.GetConfig(),
		Cache:  s.GetCache(),
	})
}

func (s *CreditGrantServiceSuite) TestBuildCreditGrantOneTime() {
	resp, err := s.creditGrantService.BuildCreditGrant(s.GetContext(), dto.CreateCreditGrantRequest{
		Name:           "Welcome credits",
		Credits:        decimal.NewFromInt(100),
		Cadence:        types.CreditGrantCadenceOneTime,
		ExpirationType: types.CreditGrantExpiryTypeNever,
	})

	s.NoError(err)
	s.Equal("Welcome credits", resp.CreditGrant.Name)
	s.True(resp.CreditGrant.Credits.Equal(decimal.NewFromInt(100)))
}

func (s *CreditGrantServiceSuite) TestBuildCreditGrantRecurringRequiresPeriod() {
	_, err := s.creditGrantService.BuildCreditGrant(s.GetContext(), dto.CreateCreditGrantRequest{
		Credits:        decimal.NewFromInt(100),
		Cadence:        types.CreditGrantCadenceRecurring,
		ExpirationType: types.CreditGrantExpiryTypeNever,
	})

	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CreditGrantServiceSuite) TestBuildCreditGrantPeriodOnlyForRecurring() {
	_, err := s.creditGrantService.BuildCreditGrant(s.GetContext(), dto.CreateCreditGrantRequest{
		Credits:        decimal.NewFromInt(100),
		Cadence:        types.CreditGrantCadenceOneTime,
		Period:         lo.ToPtr(types.CreditGrantPeriodMonthly),
		ExpirationType: types.CreditGrantExpiryTypeNever,
	})

	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CreditGrantServiceSuite) TestBuildCreditGrantDurationExpiryRequiresDuration() {
	_, err := s.creditGrantService.BuildCreditGrant(s.GetContext(), dto.CreateCreditGrantRequest{
		Credits:        decimal.NewFromInt(100),
		Cadence:        types.CreditGrantCadenceOneTime,
		ExpirationType: types.CreditGrantExpiryTypeDuration,
	})

	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CreditGrantServiceSuite) TestBuildCreditGrantRejectsZeroCredits() {
	_, err := s.creditGrantService.BuildCreditGrant(s.GetContext(), dto.CreateCreditGrantRequest{
		Credits:        decimal.Zero,
		Cadence:        types.CreditGrantCadenceOneTime,
		ExpirationType: types.CreditGrantExpiryTypeNever,
	})

	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CreditGrantServiceSuite) TestValidateCreditGrantsUniquePriorities() {
	grants := []subscription.CreditGrant{
		{
			Credits:        decimal.NewFromInt(100),
			Cadence:        types.CreditGrantCadenceOneTime,
			ExpirationType: types.CreditGrantExpiryTypeNever,
			Priority:       lo.ToPtr(1),
		},
		{
			Credits:        decimal.NewFromInt(50),
			Cadence:        types.CreditGrantCadenceOneTime,
			ExpirationType: types.CreditGrantExpiryTypeNever,
			Priority:       lo.ToPtr(2),
		},
	}

	s.NoError(s.creditGrantService.ValidateCreditGrants(s.GetContext(), dto.ValidateCreditGrantsRequest{
		CreditGrants: grants,
	}))

	grants[1].Priority = lo.ToPtr(1)
	err := s.creditGrantService.ValidateCreditGrants(s.GetContext(), dto.ValidateCreditGrantsRequest{
		CreditGrants: grants,
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *CreditGrantServiceSuite) TestValidateCreditGrantsAllowsMissingPriorities() {
	grants := []subscription.CreditGrant{
		{
			Credits:        decimal.NewFromInt(100),
			Cadence:        types.CreditGrantCadenceOneTime,
			ExpirationType: types.CreditGrantExpiryTypeNever,
		},
		{
			Credits:        decimal.NewFromInt(50),
			Cadence:        types.CreditGrantCadenceOneTime,
			ExpirationType: types.CreditGrantExpiryTypeNever,
		},
	}

	s.NoError(s.creditGrantService.ValidateCreditGrants(s.GetContext(), dto.ValidateCreditGrantsRequest{
		CreditGrants: grants,
	}))
}

func (s *CreditGrantServiceSuite) TestValidateCreditGrantsRequiresAtLeastOne() {
	err := s.creditGrantService.ValidateCreditGrants(s.GetContext(), dto.ValidateCreditGrantsRequest{})
	s.Error(err)
}
