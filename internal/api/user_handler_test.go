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
	"gorm.io/gorm"

	"github.com/dedsoft/erp-api/internal/api/dto"
	"github.com/dedsoft/erp-api/internal/domain"
	"github.com/dedsoft/erp-api/internal/service"
	"github.com/dedsoft/erp-api/internal/utils"
)

type UserHandlerTestSuite struct {
	suite.Suite
	mockService *MockUserService
	handler     *UserHandler
	tenantDB    *gorm.DB
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Get(ctx context.Context, db *gorm.DB, id string) (dto.UserResponse, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(dto.UserResponse), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, db *gorm.DB) ([]dto.UserResponse, error) {
	args := m.Called(ctx, db)
	return args.Get(0).([]dto.UserResponse), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, db *gorm.DB, maxUsers int, req dto.CreateUserRequest) (dto.UserResponse, error) {
	args := m.Called(ctx, db, maxUsers, req)
	return args.Get(0).(dto.UserResponse), args.Error(1)
}

func (s *UserHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockService = new(MockUserService)
	s.handler = NewUserHandler(s.mockService)
	s.tenantDB = &gorm.DB{}
}

func TestUserHandler(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}

// boundContext builds a gin context the way an authenticated, tenant-bound
// request would arrive: handle, snapshot and user id already set.
func (s *UserHandlerTestSuite) boundContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	var buf *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		buf = bytes.NewBuffer(raw)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, path, buf)
	c.Request.Header.Set("Content-Type", "application/json")

	c.Set(string(utils.UserIDKey), "user1")
	c.Set(string(utils.TenantDBKey), s.tenantDB)
	c.Set(string(utils.LicenseSnapshotKey), domain.LicenseSnapshot{
		LicenseKey: "ABCD-1234-EFGH-5678",
		MaxUsers:   5,
		IsActive:   true,
	})
	return c, w
}

func (s *UserHandlerTestSuite) TestMe_Success() {
	expected := dto.UserResponse{ID: "user1", Username: "jdoe", IsActive: true}
	s.mockService.On("Get", mock.Anything, s.tenantDB, "user1").Return(expected, nil)

	c, w := s.boundContext(http.MethodGet, "/me", nil)
	s.handler.Me(c)

	s.Equal(http.StatusOK, w.Code)
	var response dto.UserResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("jdoe", response.Username)
	s.mockService.AssertExpectations(s.T())
}

func (s *UserHandlerTestSuite) TestMe_NoTenantBinding() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/me", nil)

	s.handler.Me(c)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.mockService.AssertNotCalled(s.T(), "Get", mock.Anything, mock.Anything, mock.Anything)
}

func (s *UserHandlerTestSuite) TestListUsers() {
	expected := []dto.UserResponse{
		{ID: "user1", Username: "jdoe"},
		{ID: "user2", Username: "asmith"},
	}
	s.mockService.On("List", mock.Anything, s.tenantDB).Return(expected, nil)

	c, w := s.boundContext(http.MethodGet, "/users", nil)
	s.handler.ListUsers(c)

	s.Equal(http.StatusOK, w.Code)
	var response []dto.UserResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Len(response, 2)
}

// The user cap handed to the service comes from the license snapshot the
// tenant middleware published, not from anything the caller sent.
func (s *UserHandlerTestSuite) TestCreateUser_UsesSnapshotCap() {
	req := dto.CreateUserRequest{
		Username: "newbie",
		Password: "change-me-soon",
		Email:    "newbie@acme.com",
	}
	expected := dto.UserResponse{ID: "user3", Username: "newbie", IsActive: true}
	s.mockService.On("Create", mock.Anything, s.tenantDB, 5, req).Return(expected, nil)

	c, w := s.boundContext(http.MethodPost, "/users", req)
	s.handler.CreateUser(c)

	s.Equal(http.StatusCreated, w.Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *UserHandlerTestSuite) TestCreateUser_MaxUsersReached() {
	req := dto.CreateUserRequest{
		Username: "onetoomany",
		Password: "change-me-soon",
		Email:    "otm@acme.com",
	}
	s.mockService.On("Create", mock.Anything, s.tenantDB, 5, req).
		Return(dto.UserResponse{}, service.ErrMaxUsersReached)

	c, w := s.boundContext(http.MethodPost, "/users", req)
	s.handler.CreateUser(c)

	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *UserHandlerTestSuite) TestGetLicenseSnapshot() {
	c, w := s.boundContext(http.MethodGet, "/license", nil)
	s.handler.GetLicenseSnapshot(c)

	s.Equal(http.StatusOK, w.Code)
	var response domain.LicenseSnapshot
	s.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("ABCD-1234-EFGH-5678", response.LicenseKey)
	s.Equal(5, response.MaxUsers)
}

func (s *UserHandlerTestSuite) TestGetLicenseSnapshot_NoBinding() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/license", nil)

	s.handler.GetLicenseSnapshot(c)

	s.Equal(http.StatusUnauthorized, w.Code)
}
