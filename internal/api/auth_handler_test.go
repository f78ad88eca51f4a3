package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dedsoft/erp-api/internal/api/dto"
	"github.com/dedsoft/erp-api/internal/domain"
	"github.com/dedsoft/erp-api/internal/service"
	"github.com/dedsoft/erp-api/internal/tenancy"
	"github.com/dedsoft/erp-api/internal/utils"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	mockService *MockAuthService
	handler     *AuthHandler
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockService = new(MockAuthService)
	s.handler = NewAuthHandler(s.mockService)
}

func TestAuthHandler(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) postLogin(body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/auth/login", bytes.NewBuffer(raw))
	c.Request.Header.Set("Content-Type", "application/json")

	s.handler.Login(c)
	return w
}

func (s *AuthHandlerTestSuite) TestLogin_Success() {
	// Arrange
	req := dto.LoginRequest{
		Username:   "jdoe",
		Password:   "correct horse",
		LicenseKey: "ABCD-1234-EFGH-5678",
	}
	expected := &dto.LoginResponse{
		Token:     "signed-token",
		ExpiresAt: time.Now().Add(24 * time.Hour),
		User:      domain.PublicIdentity{ID: "user1", Username: "jdoe"},
		License:   domain.LicenseSnapshot{LicenseKey: req.LicenseKey, MaxUsers: 5},
	}

	s.mockService.On("Authenticate", mock.Anything, req).Return(expected, nil)

	// Act
	w := s.postLogin(req)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	var response dto.LoginResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("signed-token", response.Token)
	s.Equal("jdoe", response.User.Username)
	s.Equal(req.LicenseKey, response.License.LicenseKey)
	s.mockService.AssertExpectations(s.T())
}

func (s *AuthHandlerTestSuite) TestLogin_MissingFields() {
	w := s.postLogin(map[string]string{"username": "jdoe"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockService.AssertNotCalled(s.T(), "Authenticate", mock.Anything, mock.Anything)
}

func (s *AuthHandlerTestSuite) TestLogin_SuspendedLicenseShowsReason() {
	req := dto.LoginRequest{Username: "jdoe", Password: "pw123456", LicenseKey: "ABCD-1234-EFGH-5678"}
	s.mockService.On("Authenticate", mock.Anything, req).
		Return(nil, fmt.Errorf("%w: payment overdue", service.ErrLicenseSuspended))

	w := s.postLogin(req)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(w.Body.String(), "payment overdue")
}

// Unknown user and wrong password must be indistinguishable to the caller.
func (s *AuthHandlerTestSuite) TestLogin_CredentialFailuresIndistinguishable() {
	req := dto.LoginRequest{Username: "jdoe", Password: "pw123456", LicenseKey: "ABCD-1234-EFGH-5678"}

	for _, cause := range []error{service.ErrUserNotFound, service.ErrInvalidCredentials} {
		s.SetupTest()
		s.mockService.On("Authenticate", mock.Anything, req).Return(nil, cause)

		w := s.postLogin(req)

		s.Equal(http.StatusUnauthorized, w.Code)
		var resp dto.Error
		s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal("Invalid username or password", resp.Error)
	}
}

func (s *AuthHandlerTestSuite) TestLogin_InactiveAccount() {
	req := dto.LoginRequest{Username: "jdoe", Password: "pw123456", LicenseKey: "ABCD-1234-EFGH-5678"}
	s.mockService.On("Authenticate", mock.Anything, req).Return(nil, service.ErrAccountInactive)

	w := s.postLogin(req)

	s.Equal(http.StatusForbidden, w.Code)
}

// Provisioning failures return a generic message; internal storage details
// stay in the logs.
func (s *AuthHandlerTestSuite) TestLogin_ProvisioningFailureDoesNotLeak() {
	req := dto.LoginRequest{Username: "jdoe", Password: "pw123456", LicenseKey: "ABCD-1234-EFGH-5678"}
	s.mockService.On("Authenticate", mock.Anything, req).Return(nil, service.ErrProvisioningFailed)

	w := s.postLogin(req)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.NotContains(w.Body.String(), "provision")
}

func (s *AuthHandlerTestSuite) TestLogin_StorageUnavailable() {
	req := dto.LoginRequest{Username: "jdoe", Password: "pw123456", LicenseKey: "ABCD-1234-EFGH-5678"}
	s.mockService.On("Authenticate", mock.Anything, req).
		Return(nil, fmt.Errorf("open tenant store: %w", tenancy.ErrStorageUnavailable))

	w := s.postLogin(req)

	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *AuthHandlerTestSuite) TestLogout_Success() {
	s.mockService.On("Logout", mock.Anything, "sess1").Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/auth/logout", nil)
	c.Set(string(utils.SessionIDKey), "sess1")

	s.handler.Logout(c)

	s.Equal(http.StatusOK, w.Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *AuthHandlerTestSuite) TestLogout_NoSession() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/auth/logout", nil)

	s.handler.Logout(c)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.mockService.AssertNotCalled(s.T(), "Logout", mock.Anything, mock.Anything)
}
