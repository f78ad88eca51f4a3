package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/dedsoft/erp-api/internal/api/dto"
	"github.com/dedsoft/erp-api/internal/auth"
	"github.com/dedsoft/erp-api/internal/domain"
	"github.com/dedsoft/erp-api/internal/mocks"
	"github.com/dedsoft/erp-api/internal/repository"
	"github.com/dedsoft/erp-api/pkg/logger"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUsers *mocks.UserRepository
	service   *UserService
	db        *gorm.DB
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUsers = new(mocks.UserRepository)
	s.db = &gorm.DB{}
	factory := repository.UserRepositoryFactory(func(db *gorm.DB) repository.UserRepository {
		s.Same(s.db, db)
		return s.mockUsers
	})
	s.service = NewUserService(factory, logger.NewNop())
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestGet_Success() {
	ctx := context.Background()
	user := &domain.User{ID: "user1", Username: "jdoe", Email: "jdoe@acme.com", IsActive: true}
	s.mockUsers.On("FindByID", ctx, "user1").Return(user, nil)

	resp, err := s.service.Get(ctx, s.db, "user1")

	s.NoError(err)
	s.Equal("jdoe", resp.Username)
	s.mockUsers.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestGet_NotFound() {
	ctx := context.Background()
	s.mockUsers.On("FindByID", ctx, "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := s.service.Get(ctx, s.db, "missing")

	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserServiceTestSuite) TestList() {
	ctx := context.Background()
	users := []domain.User{
		{ID: "user1", Username: "jdoe"},
		{ID: "user2", Username: "asmith"},
	}
	s.mockUsers.On("List", ctx).Return(users, nil)

	resp, err := s.service.List(ctx, s.db)

	s.NoError(err)
	s.Len(resp, 2)
	s.Equal("jdoe", resp[0].Username)
}

func (s *UserServiceTestSuite) TestCreate_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "newbie",
		Password: "change-me-soon",
		Email:    "newbie@acme.com",
	}

	var created *domain.User
	s.mockUsers.On("Count", ctx).Return(int64(2), nil)
	s.mockUsers.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.User)
		}).
		Return(func(ctx context.Context, u *domain.User) *domain.User { return u }, nil)

	resp, err := s.service.Create(ctx, s.db, 5, req)

	s.NoError(err)
	s.Equal("newbie", resp.Username)
	s.True(resp.IsActive)

	s.Require().NotNil(created)
	s.NotEqual("change-me-soon", created.PasswordHash)
	s.True(auth.VerifyPassword("change-me-soon", created.PasswordHash))
}

// The license's user cap gates creation before any row is written.
func (s *UserServiceTestSuite) TestCreate_MaxUsersReached() {
	ctx := context.Background()
	s.mockUsers.On("Count", ctx).Return(int64(5), nil)

	_, err := s.service.Create(ctx, s.db, 5, dto.CreateUserRequest{
		Username: "onetoomany",
		Password: "change-me-soon",
		Email:    "otm@acme.com",
	})

	s.ErrorIs(err, ErrMaxUsersReached)
	s.mockUsers.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

// A non-positive cap means the license does not limit users.
func (s *UserServiceTestSuite) TestCreate_UnlimitedWhenNoCap() {
	ctx := context.Background()
	s.mockUsers.On("Count", ctx).Return(int64(1000), nil)
	s.mockUsers.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Return(func(ctx context.Context, u *domain.User) *domain.User { return u }, nil)

	_, err := s.service.Create(ctx, s.db, 0, dto.CreateUserRequest{
		Username: "manymore",
		Password: "change-me-soon",
		Email:    "mm@acme.com",
	})

	s.NoError(err)
}
