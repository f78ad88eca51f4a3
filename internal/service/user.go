package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dedsoft/erp-api/internal/api/dto"
	"github.com/dedsoft/erp-api/internal/auth"
	"github.com/dedsoft/erp-api/internal/domain"
	"github.com/dedsoft/erp-api/internal/repository"
	"github.com/dedsoft/erp-api/pkg/logger"
)

// UserService works against whichever tenant store handle the request is
// bound to. The handle is an explicit argument on every call; the service
// itself holds no tenant state.
type UserService struct {
	users  repository.UserRepositoryFactory
	logger *logger.Logger
}

func NewUserService(users repository.UserRepositoryFactory, logger *logger.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) Get(ctx context.Context, db *gorm.DB, id string) (dto.UserResponse, error) {
	user, err := s.users(db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return dto.FromUser(user), nil
}

func (s *UserService) List(ctx context.Context, db *gorm.DB) ([]dto.UserResponse, error) {
	users, err := s.users(db).List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromUsers(users), nil
}

// Create adds a user to the tenant store, refusing once the license's user
// limit is reached.
func (s *UserService) Create(ctx context.Context, db *gorm.DB, maxUsers int, req dto.CreateUserRequest) (dto.UserResponse, error) {
	repo := s.users(db)

	count, err := repo.Count(ctx)
	if err != nil {
		return dto.UserResponse{}, err
	}
	if maxUsers > 0 && count >= int64(maxUsers) {
		return dto.UserResponse{}, ErrMaxUsersReached
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := repo.Create(ctx, &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		Phone:        req.Phone,
		PasswordHash: hash,
		IsActive:     true,
	})
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.FromUser(user), nil
}
