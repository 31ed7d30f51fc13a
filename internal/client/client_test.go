package client

import (
	"net/http"
	"testing"

	"github.com/flexprice/billing-console/internal/api/dto"
	"github.com/flexprice/billing-console/internal/config"
	ierr "github.com/flexprice/billing-console/internal/errors"
	"github.com/flexprice/billing-console/internal/logger"
	"github.com/flexprice/billing-console/internal/testutil"
	"github.com/flexprice/billing-console/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestGenerateQueryParams(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]interface{}
		expected string
	}{
		{
			name:     "Empty",
			params:   nil,
			expected: "",
		},
		{
			name:     "KeysSorted",
			params:   map[string]interface{}{"b": "2", "a": "1"},
			expected: "a=1&b=2",
		},
		{
			name:     "SliceCommaJoined",
			params:   map[string]interface{}{"ids": []string{"x", "y"}},
			expected: "ids=x%2Cy",
		},
		{
			name:     "EmptyValuesSkipped",
			params:   map[string]interface{}{"a": "", "b": nil, "c": "3"},
			expected: "c=3",
		},
		{
			name:     "IntAndBool",
			params:   map[string]interface{}{"limit": 50, "expand": true},
			expected: "expand=true&limit=50",
		},
		{
			name:     "NilIntPointerSkipped",
			params:   map[string]interface{}{"offset": (*int)(nil)},
			expected: "",
		},
		{
			name:     "ValuesEscaped",
			params:   map[string]interface{}{"q": "a b"},
			expected: "q=a+b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateQueryParams(tt.params))
		})
	}
}

type BaseClientSuite struct {
	suite.Suite
	backend *testutil.FakeBackend
	base    *BaseClient
}

func TestBaseClient(t *testing.T) {
	suite.Run(t, new(BaseClientSuite))
}

func (s *BaseClientSuite) SetupTest() {
	s.backend = testutil.NewFakeBackend()

	cfg := config.GetDefaultConfig()
	cfg.Billing.APIURL = s.backend.URL()
	cfg.Billing.APIKey = "test-key"
	log, err := logger.NewLogger(cfg)
	s.Require().NoError(err)

	s.base = NewBaseClient(cfg, log)
}

func (s *BaseClientSuite) TearDownTest() {
	s.backend.Close()
}

func (s *BaseClientSuite) TestRequestCarriesAuthAndContextHeaders() {
	s.backend.RespondJSON(http.MethodGet, "/v1/plans/plan_1", http.StatusOK, map[string]string{"id": "plan_1"})

	ctx := testutil.SetupContext()
	ctx = types.SetEnvironmentID(ctx, "env_123")

	var out map[string]string
	err := s.base.Do(ctx, http.MethodGet, "/v1/plans/plan_1", nil, nil, &out)
	s.NoError(err)
	s.Equal("plan_1", out["id"])

	requests := s.backend.Requests()
	s.Require().Len(requests, 1)
	req := requests[0]
	s.Equal("Bearer test-key", req.Header.Get(types.HeaderAuthorization))
	s.Equal("env_123", req.Header.Get(types.HeaderEnvironment))
	s.NotEmpty(req.Header.Get(types.HeaderRequestID))
}

func (s *BaseClientSuite) TestQueryParamsAppended() {
	s.backend.Handle(http.MethodGet, "/v1/prices", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[]}`))
	})

	err := s.base.Do(testutil.SetupContext(), http.MethodGet, "/v1/prices",
		map[string]interface{}{"plan_id": "plan_1"}, nil, nil)
	s.NoError(err)

	requests := s.backend.Requests()
	s.Require().Len(requests, 1)
	s.Equal("plan_id=plan_1", requests[0].URL.RawQuery)
}

func (s *BaseClientSuite) TestErrorStatusMapping() {
	s.backend.RespondJSON(http.MethodGet, "/v1/plans/missing", http.StatusNotFound,
		ierr.NewErrorResponse(ierr.NewError("plan not found").Mark(ierr.ErrNotFound)))
	s.backend.RespondJSON(http.MethodPost, "/v1/plans", http.StatusBadRequest,
		ierr.NewErrorResponse(ierr.NewError("name is required").Mark(ierr.ErrValidation)))
	s.backend.RespondJSON(http.MethodGet, "/v1/secret", http.StatusUnauthorized,
		ierr.NewErrorResponse(ierr.NewError("unauthorized").Mark(ierr.ErrPermissionDenied)))
	s.backend.RespondJSON(http.MethodPost, "/v1/coupons", http.StatusConflict,
		ierr.NewErrorResponse(ierr.NewError("coupon exists").Mark(ierr.ErrAlreadyExists)))

	ctx := testutil.SetupContext()

	err := s.base.Do(ctx, http.MethodGet, "/v1/plans/missing", nil, nil, nil)
	s.True(ierr.IsNotFound(err))

	err = s.base.Do(ctx, http.MethodPost, "/v1/plans", nil, map[string]string{}, nil)
	s.True(ierr.IsValidation(err))

	err = s.base.Do(ctx, http.MethodGet, "/v1/secret", nil, nil, nil)
	s.True(ierr.IsPermissionDenied(err))

	err = s.base.Do(ctx, http.MethodPost, "/v1/coupons", nil, map[string]string{}, nil)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *BaseClientSuite) TestErrorMessageExtractedFromBody() {
	s.backend.RespondJSON(http.MethodGet, "/v1/plans/missing", http.StatusNotFound,
		ierr.NewErrorResponse(ierr.NewError("plan not found").WithHint("plan not found").Mark(ierr.ErrNotFound)))

	err := s.base.Do(testutil.SetupContext(), http.MethodGet, "/v1/plans/missing", nil, nil, nil)
	s.Error(err)
	s.Contains(err.Error(), "plan not found")
}

func (s *BaseClientSuite) TestDownloadPDFRejectsNonPDFBody() {
	invoices := NewInvoiceClient(s.base)

	// A 200 with an HTML error page must not be handed to the browser.
	s.backend.Handle(http.MethodGet, "/v1/invoices/inv_1/pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("<html>backend error</html>"))
	})

	_, err := invoices.DownloadPDF(testutil.SetupContext(), "inv_1")
	s.Error(err)
}

func (s *BaseClientSuite) TestDownloadPDFAcceptsPDFMagicBytes() {
	invoices := NewInvoiceClient(s.base)

	s.backend.Handle(http.MethodGet, "/v1/invoices/inv_1/pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4\n%fake invoice body"))
	})

	data, err := invoices.DownloadPDF(testutil.SetupContext(), "inv_1")
	s.NoError(err)
	s.NotEmpty(data)
}

func (s *BaseClientSuite) TestSubscriptionUpdatePhases() {
	subscriptions := NewSubscriptionClient(s.base)
	s.backend.RespondJSON(http.MethodPut, "/v1/subscriptions/sub_1/phases", http.StatusOK, map[string]string{"id": "sub_1"})

	resp, err := subscriptions.UpdatePhases(testutil.SetupContext(), "sub_1", dto.PhaseTimelineRequest{})
	s.NoError(err)
	s.NotNil(resp)
}
