package sqldb

import (
	"context"

	"gorm.io/gorm"

	"github.com/dedsoft/erp-api/internal/domain"
)

// LicenseRepository reads and writes the master registry. It is always bound
// to the master store handle, independent of which tenant a request serves.
type LicenseRepository struct {
	db *gorm.DB
}

func NewLicenseRepository(db *gorm.DB) *LicenseRepository {
	return &LicenseRepository{db: db}
}

func (r *LicenseRepository) Create(ctx context.Context, lic *domain.License) (*domain.License, error) {
	if err := r.db.WithContext(ctx).Create(lic).Error; err != nil {
		return nil, err
	}
	return lic, nil
}

func (r *LicenseRepository) FindByKey(ctx context.Context, key string) (*domain.License, error) {
	var lic domain.License
	if err := r.db.WithContext(ctx).First(&lic, "license_key = ?", key).Error; err != nil {
		return nil, err
	}
	return &lic, nil
}

func (r *LicenseRepository) FindUsable(ctx context.Context, key string) (*domain.License, error) {
	var lic domain.License
	err := r.db.WithContext(ctx).
		Where("license_key = ? AND is_active = ? AND is_suspended = ?", key, true, false).
		First(&lic).Error
	if err != nil {
		return nil, err
	}
	return &lic, nil
}

func (r *LicenseRepository) Update(ctx context.Context, lic *domain.License) error {
	return r.db.WithContext(ctx).Save(lic).Error
}

func (r *LicenseRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&domain.License{}, "license_key = ?", key).Error
}

func (r *LicenseRepository) List(ctx context.Context) ([]domain.License, error) {
	var licenses []domain.License
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&licenses).Error; err != nil {
		return nil, err
	}
	return licenses, nil
}
