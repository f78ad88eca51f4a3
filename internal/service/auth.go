package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dedsoft/erp-api/internal/api/dto"
	"github.com/dedsoft/erp-api/internal/auth"
	"github.com/dedsoft/erp-api/internal/domain"
	"github.com/dedsoft/erp-api/internal/repository"
	"github.com/dedsoft/erp-api/internal/session"
	"github.com/dedsoft/erp-api/internal/tenancy"
	"github.com/dedsoft/erp-api/pkg/logger"
)

//go:generate mockery --name TenantProvisioner --output ../mocks
type TenantProvisioner interface {
	Exists(ctx context.Context, licenseKey string) (bool, error)
	EnsureReady(ctx context.Context, licenseKey string, bundle tenancy.SchemaBundle, lic *domain.License) error
	Deprovision(ctx context.Context, licenseKey string) error
}

//go:generate mockery --name SessionStore --output ../mocks
type SessionStore interface {
	Set(ctx context.Context, sessionID string, b session.Binding) error
	Get(ctx context.Context, sessionID string) (*session.Binding, error)
	Clear(ctx context.Context, sessionID string) error
}

//go:generate mockery --name TokenIssuer --output ../mocks
type TokenIssuer interface {
	GenerateToken(sessionID, userID, licenseKey string, roles []string) (string, time.Time, error)
}

// AuthService runs the login sequence: license legitimacy in the master
// registry first, lazy tenant provisioning second, user authentication
// inside the tenant store third, session binding last.
type AuthService struct {
	licenses    repository.LicenseRepository
	provisioner TenantProvisioner
	locator     *tenancy.Locator
	switcher    tenancy.Switcher
	bundle      tenancy.SchemaBundle
	users       repository.UserRepositoryFactory
	sessions    SessionStore
	tokens      TokenIssuer
	logger      *logger.Logger
	now         func() time.Time
}

func NewAuthService(
	licenses repository.LicenseRepository,
	provisioner TenantProvisioner,
	locator *tenancy.Locator,
	switcher tenancy.Switcher,
	bundle tenancy.SchemaBundle,
	users repository.UserRepositoryFactory,
	sessions SessionStore,
	tokens TokenIssuer,
	logger *logger.Logger,
) *AuthService {
	return &AuthService{
		licenses:    licenses,
		provisioner: provisioner,
		locator:     locator,
		switcher:    switcher,
		bundle:      bundle,
		users:       users,
		sessions:    sessions,
		tokens:      tokens,
		logger:      logger,
		now:         time.Now,
	}
}

// Authenticate performs the full login sequence. Failures come from the
// closed taxonomy in errors.go; no stage is retried and no session binding
// survives a failed attempt. Tenant storage is only touched after the
// license has been verified against the master registry.
func (s *AuthService) Authenticate(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	key := tenancy.NormalizeKey(req.LicenseKey)
	if err := tenancy.ValidateKey(key); err != nil {
		return nil, ErrLicenseNotFound
	}

	// Stage 1: license legitimacy, against the master store only.
	lic, err := s.licenses.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLicenseNotFound
		}
		return nil, fmt.Errorf("look up license: %w", err)
	}
	if !lic.IsActive {
		return nil, ErrLicenseInactive
	}
	if lic.IsSuspended {
		reason := "contact support"
		if lic.SuspensionReason != nil && *lic.SuspensionReason != "" {
			reason = *lic.SuspensionReason
		}
		return nil, fmt.Errorf("%w: %s", ErrLicenseSuspended, reason)
	}
	if lic.Expired(s.now()) {
		return nil, ErrLicenseExpired
	}

	// Stage 2: make sure the tenant store exists, provisioning and seeding
	// it on first contact. A failure here aborts the login with no binding.
	if err := s.provisioner.EnsureReady(ctx, key, s.bundle, lic); err != nil {
		s.logger.Error("tenant provisioning failed", err, zap.String("license_key", key))
		return nil, ErrProvisioningFailed
	}

	// Stage 3: authenticate inside the tenant store through a handle local
	// to this call. No shared binding moves until identity is confirmed.
	target, err := s.locator.TargetFor(key)
	if err != nil {
		return nil, ErrLicenseNotFound
	}
	db, err := s.switcher.Open(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("open tenant store: %w", err)
	}
	users := s.users(db)

	user, err := users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("login rejected: unknown user",
				zap.String("license_key", key), zap.String("username", req.Username))
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		s.logger.Warn("login rejected: password mismatch",
			zap.String("license_key", key), zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	// Stage 4: record the login and bind the session to the tenant.
	loginAt := s.now()
	if err := users.RecordLogin(ctx, user.ID, loginAt); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}

	roles := []string{string(domain.RoleUser)}
	if user.IsAdmin {
		roles = append(roles, string(domain.RoleAdmin))
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Set(ctx, sessionID, session.Binding{
		LicenseKey: key,
		UserID:     user.ID,
		Username:   user.Username,
		Roles:      roles,
	}); err != nil {
		return nil, fmt.Errorf("persist session binding: %w", err)
	}

	token, expiresAt, err := s.tokens.GenerateToken(sessionID, user.ID, key, roles)
	if err != nil {
		// The binding must not outlive a failed token issue.
		if clearErr := s.sessions.Clear(ctx, sessionID); clearErr != nil {
			s.logger.Error("failed to clear session binding", clearErr,
				zap.String("session_id", sessionID))
		}
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("login succeeded",
		zap.String("license_key", key),
		zap.String("username", user.Username))

	user.LastLogin = &loginAt
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Identity(),
		License:   lic.Snapshot(),
	}, nil
}

// Logout clears the session's tenant binding.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID)
}
