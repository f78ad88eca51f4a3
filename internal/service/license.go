package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dedsoft/erp-api/internal/api/dto"
	"github.com/dedsoft/erp-api/internal/auth"
	"github.com/dedsoft/erp-api/internal/domain"
	"github.com/dedsoft/erp-api/internal/repository"
	"github.com/dedsoft/erp-api/internal/tenancy"
	"github.com/dedsoft/erp-api/pkg/logger"
	"github.com/dedsoft/erp-api/pkg/utils"
)

// LicenseService is the administrative collaborator around the master
// registry: create, activate, suspend, extend and delete licenses. Deleting
// a license also drops the tenant's storage target.
type LicenseService struct {
	licenses    repository.LicenseRepository
	provisioner TenantProvisioner
	logger      *logger.Logger
	now         func() time.Time
}

func NewLicenseService(licenses repository.LicenseRepository, provisioner TenantProvisioner, logger *logger.Logger) *LicenseService {
	return &LicenseService{
		licenses:    licenses,
		provisioner: provisioner,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *LicenseService) Create(ctx context.Context, req dto.CreateLicenseRequest) (dto.LicenseResponse, error) {
	key := tenancy.NormalizeKey(req.LicenseKey)
	if key == "" {
		key = newLicenseKey()
	}
	if err := tenancy.ValidateKey(key); err != nil {
		return dto.LicenseResponse{}, err
	}

	if _, err := s.licenses.FindByKey(ctx, key); err == nil {
		return dto.LicenseResponse{}, ErrLicenseExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.LicenseResponse{}, err
	}

	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		t, err := utils.ParseUserTime(req.ExpiresAt, true)
		if err != nil {
			return dto.LicenseResponse{}, err
		}
		expiresAt = &t
	}

	hash, err := auth.HashPassword(req.AdminPassword)
	if err != nil {
		return dto.LicenseResponse{}, fmt.Errorf("hash admin password: %w", err)
	}

	maxUsers := req.MaxUsers
	if maxUsers <= 0 {
		maxUsers = 5
	}

	lic := &domain.License{
		LicenseKey:        key,
		ClientName:        req.ClientName,
		ClientCompany:     req.ClientCompany,
		ClientEmail:       req.ClientEmail,
		ClientPhone:       req.ClientPhone,
		AdminUsername:     req.AdminUsername,
		AdminPasswordHash: hash,
		IsActive:          true,
		ExpiresAt:         expiresAt,
		MaxUsers:          maxUsers,
	}
	created, err := s.licenses.Create(ctx, lic)
	if err != nil {
		return dto.LicenseResponse{}, err
	}

	s.logger.Info("license created", zap.String("license_key", key))
	return dto.FromLicense(created), nil
}

func (s *LicenseService) Get(ctx context.Context, key string) (dto.LicenseResponse, error) {
	lic, err := s.findByKey(ctx, key)
	if err != nil {
		return dto.LicenseResponse{}, err
	}
	return dto.FromLicense(lic), nil
}

func (s *LicenseService) List(ctx context.Context) ([]dto.LicenseResponse, error) {
	licenses, err := s.licenses.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromLicenses(licenses), nil
}

// Update changes contact metadata and the user limit. The license key is
// immutable: a tenant store already derives its name from it and no rename
// path exists, so re-keying is rejected rather than guessed at.
func (s *LicenseService) Update(ctx context.Context, key string, req dto.UpdateLicenseRequest) (dto.LicenseResponse, error) {
	lic, err := s.findByKey(ctx, key)
	if err != nil {
		return dto.LicenseResponse{}, err
	}
	if req.LicenseKey != "" && tenancy.NormalizeKey(req.LicenseKey) != lic.LicenseKey {
		return dto.LicenseResponse{}, ErrLicenseRekeyUnsupported
	}

	if req.ClientName != "" {
		lic.ClientName = req.ClientName
	}
	if req.ClientCompany != "" {
		lic.ClientCompany = req.ClientCompany
	}
	if req.ClientEmail != "" {
		lic.ClientEmail = req.ClientEmail
	}
	if req.ClientPhone != "" {
		lic.ClientPhone = req.ClientPhone
	}
	if req.MaxUsers > 0 {
		lic.MaxUsers = req.MaxUsers
	}
	if err := s.licenses.Update(ctx, lic); err != nil {
		return dto.LicenseResponse{}, err
	}
	return dto.FromLicense(lic), nil
}

// Activate enables the license and clears any suspension.
func (s *LicenseService) Activate(ctx context.Context, key string) (dto.LicenseResponse, error) {
	lic, err := s.findByKey(ctx, key)
	if err != nil {
		return dto.LicenseResponse{}, err
	}
	lic.IsActive = true
	lic.IsSuspended = false
	lic.SuspensionReason = nil
	if err := s.licenses.Update(ctx, lic); err != nil {
		return dto.LicenseResponse{}, err
	}
	s.logger.Info("license activated", zap.String("license_key", lic.LicenseKey))
	return dto.FromLicense(lic), nil
}

// Deactivate disables the license without marking it suspended.
func (s *LicenseService) Deactivate(ctx context.Context, key string) (dto.LicenseResponse, error) {
	lic, err := s.findByKey(ctx, key)
	if err != nil {
		return dto.LicenseResponse{}, err
	}
	lic.IsActive = false
	if err := s.licenses.Update(ctx, lic); err != nil {
		return dto.LicenseResponse{}, err
	}
	s.logger.Info("license deactivated", zap.String("license_key", lic.LicenseKey))
	return dto.FromLicense(lic), nil
}

// Suspend marks the license suspended with a reason shown on rejected logins.
func (s *LicenseService) Suspend(ctx context.Context, key, reason string) (dto.LicenseResponse, error) {
	lic, err := s.findByKey(ctx, key)
	if err != nil {
		return dto.LicenseResponse{}, err
	}
	if reason == "" {
		reason = "suspended from control panel"
	}
	lic.IsSuspended = true
	lic.SuspensionReason = &reason
	if err := s.licenses.Update(ctx, lic); err != nil {
		return dto.LicenseResponse{}, err
	}
	s.logger.Info("license suspended",
		zap.String("license_key", lic.LicenseKey), zap.String("reason", reason))
	return dto.FromLicense(lic), nil
}

// Extend pushes the expiry out by the given number of days, counting from
// the current expiry when one is set and from now for perpetual licenses.
func (s *LicenseService) Extend(ctx context.Context, key string, days int) (dto.LicenseResponse, error) {
	lic, err := s.findByKey(ctx, key)
	if err != nil {
		return dto.LicenseResponse{}, err
	}
	base := s.now()
	if lic.ExpiresAt != nil {
		base = *lic.ExpiresAt
	}
	expires := base.AddDate(0, 0, days)
	lic.ExpiresAt = &expires
	if err := s.licenses.Update(ctx, lic); err != nil {
		return dto.LicenseResponse{}, err
	}
	s.logger.Info("license extended",
		zap.String("license_key", lic.LicenseKey), zap.Int("days", days))
	return dto.FromLicense(lic), nil
}

// Delete removes the license record and drops the tenant's storage target.
// The store is dropped first; a failed drop keeps the registry row so the
// operation can be retried.
func (s *LicenseService) Delete(ctx context.Context, key string) error {
	lic, err := s.findByKey(ctx, key)
	if err != nil {
		return err
	}
	if err := s.provisioner.Deprovision(ctx, lic.LicenseKey); err != nil {
		return fmt.Errorf("drop tenant store: %w", err)
	}
	if err := s.licenses.Delete(ctx, lic.LicenseKey); err != nil {
		return err
	}
	s.logger.Info("license deleted", zap.String("license_key", lic.LicenseKey))
	return nil
}

func (s *LicenseService) findByKey(ctx context.Context, key string) (*domain.License, error) {
	lic, err := s.licenses.FindByKey(ctx, tenancy.NormalizeKey(key))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLicenseNotFound
		}
		return nil, err
	}
	return lic, nil
}

// newLicenseKey derives a fresh XXXX-XXXX-XXXX-XXXX key from random UUID hex.
func newLicenseKey() string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s-%s-%s", hex[0:4], hex[4:8], hex[8:12], hex[12:16])
}
