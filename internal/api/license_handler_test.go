package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dedsoft/erp-api/internal/api/dto"
	"github.com/dedsoft/erp-api/internal/service"
)

type LicenseHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockLicenseService
	handler     *LicenseHandler
}

type MockLicenseService struct {
	mock.Mock
}

func (m *MockLicenseService) Create(ctx context.Context, req dto.CreateLicenseRequest) (dto.LicenseResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.LicenseResponse), args.Error(1)
}

func (m *MockLicenseService) Get(ctx context.Context, key string) (dto.LicenseResponse, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(dto.LicenseResponse), args.Error(1)
}

func (m *MockLicenseService) List(ctx context.Context) ([]dto.LicenseResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]dto.LicenseResponse), args.Error(1)
}

func (m *MockLicenseService) Update(ctx context.Context, key string, req dto.UpdateLicenseRequest) (dto.LicenseResponse, error) {
	args := m.Called(ctx, key, req)
	return args.Get(0).(dto.LicenseResponse), args.Error(1)
}

func (m *MockLicenseService) Activate(ctx context.Context, key string) (dto.LicenseResponse, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(dto.LicenseResponse), args.Error(1)
}

func (m *MockLicenseService) Deactivate(ctx context.Context, key string) (dto.LicenseResponse, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(dto.LicenseResponse), args.Error(1)
}

func (m *MockLicenseService) Suspend(ctx context.Context, key, reason string) (dto.LicenseResponse, error) {
	args := m.Called(ctx, key, reason)
	return args.Get(0).(dto.LicenseResponse), args.Error(1)
}

func (m *MockLicenseService) Extend(ctx context.Context, key string, days int) (dto.LicenseResponse, error) {
	args := m.Called(ctx, key, days)
	return args.Get(0).(dto.LicenseResponse), args.Error(1)
}

func (m *MockLicenseService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (s *LicenseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockService = new(MockLicenseService)
	s.handler = NewLicenseHandler(s.mockService)

	s.router = gin.New()
	s.router.POST("/licenses", s.handler.CreateLicense)
	s.router.GET("/licenses", s.handler.ListLicenses)
	s.router.GET("/licenses/:key", s.handler.GetLicense)
	s.router.PUT("/licenses/:key", s.handler.UpdateLicense)
	s.router.POST("/licenses/:key/activate", s.handler.ActivateLicense)
	s.router.POST("/licenses/:key/deactivate", s.handler.DeactivateLicense)
	s.router.POST("/licenses/:key/suspend", s.handler.SuspendLicense)
	s.router.POST("/licenses/:key/extend", s.handler.ExtendLicense)
	s.router.DELETE("/licenses/:key", s.handler.DeleteLicense)
}

func TestLicenseHandler(t *testing.T) {
	suite.Run(t, new(LicenseHandlerTestSuite))
}

func (s *LicenseHandlerTestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		buf = bytes.NewBuffer(raw)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	return w
}

func (s *LicenseHandlerTestSuite) TestCreateLicense_Success() {
	req := dto.CreateLicenseRequest{
		ClientName:    "Jane Roe",
		AdminUsername: "admin",
		AdminPassword: "change-me-soon",
	}
	expected := dto.LicenseResponse{
		LicenseKey: "ABCD-1234-EFGH-5678",
		ClientName: "Jane Roe",
		IsActive:   true,
		MaxUsers:   5,
	}
	s.mockService.On("Create", mock.Anything, req).Return(expected, nil)

	w := s.request(http.MethodPost, "/licenses", req)

	s.Equal(http.StatusCreated, w.Code)
	var response dto.LicenseResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal(expected.LicenseKey, response.LicenseKey)
	s.mockService.AssertExpectations(s.T())
}

func (s *LicenseHandlerTestSuite) TestCreateLicense_Duplicate() {
	req := dto.CreateLicenseRequest{
		LicenseKey:    "ABCD-1234-EFGH-5678",
		ClientName:    "Jane Roe",
		AdminUsername: "admin",
		AdminPassword: "change-me-soon",
	}
	s.mockService.On("Create", mock.Anything, req).
		Return(dto.LicenseResponse{}, service.ErrLicenseExists)

	w := s.request(http.MethodPost, "/licenses", req)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *LicenseHandlerTestSuite) TestCreateLicense_MissingRequiredFields() {
	w := s.request(http.MethodPost, "/licenses", map[string]string{"client_name": "Jane"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockService.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *LicenseHandlerTestSuite) TestListLicenses() {
	expected := []dto.LicenseResponse{
		{LicenseKey: "ABCD-1234-EFGH-5678"},
		{LicenseKey: "WXYZ-9876-QRST-5432"},
	}
	s.mockService.On("List", mock.Anything).Return(expected, nil)

	w := s.request(http.MethodGet, "/licenses", nil)

	s.Equal(http.StatusOK, w.Code)
	var response []dto.LicenseResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Len(response, 2)
}

func (s *LicenseHandlerTestSuite) TestGetLicense_NotFound() {
	s.mockService.On("Get", mock.Anything, "ABCD-1234-EFGH-5678").
		Return(dto.LicenseResponse{}, service.ErrLicenseNotFound)

	w := s.request(http.MethodGet, "/licenses/ABCD-1234-EFGH-5678", nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *LicenseHandlerTestSuite) TestUpdateLicense_RekeyRejected() {
	req := dto.UpdateLicenseRequest{LicenseKey: "WXYZ-9876-QRST-5432"}
	s.mockService.On("Update", mock.Anything, "ABCD-1234-EFGH-5678", req).
		Return(dto.LicenseResponse{}, service.ErrLicenseRekeyUnsupported)

	w := s.request(http.MethodPut, "/licenses/ABCD-1234-EFGH-5678", req)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *LicenseHandlerTestSuite) TestSuspendLicense() {
	req := dto.SuspendLicenseRequest{Reason: "payment overdue"}
	reason := "payment overdue"
	expected := dto.LicenseResponse{
		LicenseKey:       "ABCD-1234-EFGH-5678",
		IsSuspended:      true,
		SuspensionReason: &reason,
	}
	s.mockService.On("Suspend", mock.Anything, "ABCD-1234-EFGH-5678", "payment overdue").
		Return(expected, nil)

	w := s.request(http.MethodPost, "/licenses/ABCD-1234-EFGH-5678/suspend", req)

	s.Equal(http.StatusOK, w.Code)
	var response dto.LicenseResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.True(response.IsSuspended)
}

func (s *LicenseHandlerTestSuite) TestExtendLicense_RequiresDays() {
	w := s.request(http.MethodPost, "/licenses/ABCD-1234-EFGH-5678/extend", map[string]int{})

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockService.AssertNotCalled(s.T(), "Extend", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LicenseHandlerTestSuite) TestExtendLicense() {
	s.mockService.On("Extend", mock.Anything, "ABCD-1234-EFGH-5678", 30).
		Return(dto.LicenseResponse{LicenseKey: "ABCD-1234-EFGH-5678"}, nil)

	w := s.request(http.MethodPost, "/licenses/ABCD-1234-EFGH-5678/extend", dto.ExtendLicenseRequest{Days: 30})

	s.Equal(http.StatusOK, w.Code)
}

func (s *LicenseHandlerTestSuite) TestDeleteLicense() {
	s.mockService.On("Delete", mock.Anything, "ABCD-1234-EFGH-5678").Return(nil)

	w := s.request(http.MethodDelete, "/licenses/ABCD-1234-EFGH-5678", nil)

	s.Equal(http.StatusOK, w.Code)
	s.mockService.AssertExpectations(s.T())
}
