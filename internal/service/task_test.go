package service

import (
	"net/http"
	"testing"

	"github.com/flexprice/billing-console/internal/api/dto"
	"github.com/flexprice/billing-console/internal/client"
	"github.com/flexprice/billing-console/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type TaskServiceSuite struct {
	testutil.BaseServiceTestSuite
	backend     *testutil.FakeBackend
	taskService TaskService
}

func TestTaskService(t *testing.T) {
	suite.Run(t, new(TaskServiceSuite))
}

func (s *TaskServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	s.backend = testutil.NewFakeBackend()
	cfg := s.GetConfig()
	cfg.Billing.APIURL = s.backend.URL()
	cfg.Billing.APIKey = "test-key"

	base := client.NewBaseClient(cfg, s.GetLogger())
	s.taskService = NewTaskService(NewServiceParams(s.GetLogger(), cfg, s.GetCache(), base))
}

func (s *TaskServiceSuite) TearDownTest() {
	s.backend.Close()
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *TaskServiceSuite) TestImportCompletedCreatesTask() {
	s.backend.RespondJSON(http.MethodPost, "/v1/tasks", http.StatusCreated, dto.TaskResponse{
		ID:         "task_1",
		TaskType:   dto.TaskTypeImport,
		EntityType: dto.TaskEntityTypeCustomers,
	})

	resp, err := s.taskService.ImportCompleted(s.GetContext(), dto.ImportCompletedRequest{
		EntityType: dto.TaskEntityTypeCustomers,
		FileURL:    "https://uploads.example.com/customers.csv",
		FileName:   "customers.csv",
		RowCount:   42,
	})

	s.NoError(err)
	s.Equal("task_1", resp.ID)
	s.Len(s.backend.Requests(), 1)
}

func (s *TaskServiceSuite) TestImportCompletedRequiresFileURL() {
	_, err := s.taskService.ImportCompleted(s.GetContext(), dto.ImportCompletedRequest{
		EntityType: dto.TaskEntityTypeCustomers,
	})

	s.Error(err)
	s.Empty(s.backend.Requests())
}

func (s *TaskServiceSuite) TestPreviewImportCustomers() {
	csv := "external_id,email,name\n" +
		"cust_1,one@example.com,One\n" +
		",two@example.com,Two\n" +
		"cust_3,three@example.com,Three\n"

	preview, err := s.taskService.PreviewImport(s.GetContext(), dto.TaskEntityTypeCustomers, []byte(csv))

	s.NoError(err)
	s.Equal(3, preview.RowCount)
	s.Equal([]int{1}, preview.InvalidRows)
}

func (s *TaskServiceSuite) TestPreviewImportFeaturesRequiresLookupKey() {
	csv := "name,lookup_key,unit_plural\n" +
		"API Calls,api_calls,calls\n" +
		"Storage,,GB\n"

	preview, err := s.taskService.PreviewImport(s.GetContext(), dto.TaskEntityTypeFeatures, []byte(csv))

	s.NoError(err)
	s.Equal(2, preview.RowCount)
	s.Equal([]int{1}, preview.InvalidRows)
}

func (s *TaskServiceSuite) TestPreviewImportEvents() {
	csv := "event_name,external_customer_id,timestamp\n" +
		"api_request,cust_1,2024-01-01T00:00:00Z\n"

	preview, err := s.taskService.PreviewImport(s.GetContext(), dto.TaskEntityTypeEvents, []byte(csv))

	s.NoError(err)
	s.Equal(1, preview.RowCount)
	s.Empty(preview.InvalidRows)
}

func (s *TaskServiceSuite) TestPreviewImportUnsupportedEntityType() {
	_, err := s.taskService.PreviewImport(s.GetContext(), dto.TaskEntityType("INVOICES"), []byte("a,b\n1,2\n"))

	s.Error(err)
}
