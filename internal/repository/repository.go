package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dedsoft/erp-api/internal/domain"
)

//go:generate mockery --name LicenseRepository --output ../mocks
type LicenseRepository interface {
	Create(ctx context.Context, lic *domain.License) (*domain.License, error)
	FindByKey(ctx context.Context, key string) (*domain.License, error)
	// FindUsable looks up a license that is active and not suspended.
	// Expiry is left to the caller so it can report it distinctly.
	FindUsable(ctx context.Context, key string) (*domain.License, error)
	Update(ctx context.Context, lic *domain.License) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]domain.License, error)
}

//go:generate mockery --name UserRepository --output ../mocks
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	RecordLogin(ctx context.Context, id string, at time.Time) error
}

// UserRepositoryFactory builds a user repository over a tenant store handle.
// Users live inside tenant stores, so the repository is constructed per
// request from whichever handle the request is bound to.
type UserRepositoryFactory func(db *gorm.DB) UserRepository
