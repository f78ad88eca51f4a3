package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dedsoft/erp-api/internal/repository"
	"github.com/dedsoft/erp-api/internal/session"
	"github.com/dedsoft/erp-api/internal/tenancy"
	"github.com/dedsoft/erp-api/internal/utils"
	"github.com/dedsoft/erp-api/pkg/logger"
)

//go:generate mockery --name SessionReader --output ../mocks
type SessionReader interface {
	Get(ctx context.Context, sessionID string) (*session.Binding, error)
	Clear(ctx context.Context, sessionID string) error
}

// TenantMiddleware binds every non-exempt request to its tenant store
// before any business logic runs: resolve the session's tenant, re-validate
// the license against the master registry, publish a detached license
// snapshot and place the tenant store handle in the request context.
type TenantMiddleware struct {
	exemptPaths []string
	sessions    SessionReader
	licenses    repository.LicenseRepository
	locator     *tenancy.Locator
	switcher    tenancy.Switcher
	logger      *logger.Logger
	now         func() time.Time
}

func NewTenantMiddleware(
	exemptPaths []string,
	sessions SessionReader,
	licenses repository.LicenseRepository,
	locator *tenancy.Locator,
	switcher tenancy.Switcher,
	logger *logger.Logger,
) *TenantMiddleware {
	return &TenantMiddleware{
		exemptPaths: exemptPaths,
		sessions:    sessions,
		licenses:    licenses,
		locator:     locator,
		switcher:    switcher,
		logger:      logger,
		now:         time.Now,
	}
}

// Resolve is the per-request tenant router.
func (m *TenantMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.isExempt(c.Request.URL.Path) {
			c.Next()
			return
		}
		ctx := c.Request.Context()

		// An authenticated request without a session binding claim is an
		// integrity failure, recovered by forcing a fresh login.
		sessionID := c.GetString(string(utils.SessionIDKey))
		if sessionID == "" {
			m.logger.Warn("authenticated request without session binding",
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session has no tenant binding, please log in again"})
			return
		}

		binding, err := m.sessions.Get(ctx, sessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
				return
			}
			m.logger.Error("session binding lookup failed", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session lookup failed"})
			return
		}

		// Re-validate the license against the master registry on every
		// request; a binding created before a suspension must not keep
		// serving the tenant's data.
		lic, err := m.licenses.FindUsable(ctx, binding.LicenseKey)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				m.clearBinding(ctx, sessionID)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "License is inactive or suspended, please contact support"})
				return
			}
			m.logger.Error("license validation failed", err, zap.String("license_key", binding.LicenseKey))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "License validation failed"})
			return
		}
		if lic.Expired(m.now()) {
			m.clearBinding(ctx, sessionID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "License has expired, please renew"})
			return
		}

		// Publish a detached snapshot so nothing downstream holds a live
		// row from the master store.
		c.Set(string(utils.LicenseSnapshotKey), lic.Snapshot())
		c.Set(string(utils.LicenseKeyKey), binding.LicenseKey)

		target, err := m.locator.TargetFor(binding.LicenseKey)
		if err != nil {
			m.clearBinding(ctx, sessionID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session has no valid tenant binding"})
			return
		}
		db, err := m.switcher.Open(ctx, target)
		if err != nil {
			m.logger.Error("tenant store unavailable", err, zap.String("license_key", binding.LicenseKey))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Tenant store unavailable"})
			return
		}

		c.Set(string(utils.TenantDBKey), db)
		c.Next()
	}
}

func (m *TenantMiddleware) isExempt(path string) bool {
	for _, prefix := range m.exemptPaths {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// clearBinding drops a session binding that turned out to be stale.
// Failures are logged, never swallowed silently.
func (m *TenantMiddleware) clearBinding(ctx context.Context, sessionID string) {
	if err := m.sessions.Clear(ctx, sessionID); err != nil {
		m.logger.Error("failed to clear session binding", err, zap.String("session_id", sessionID))
	}
}
