package utils

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dedsoft/erp-api/internal/domain"
)

type ContextKey string

const (
	ClaimsKey          ContextKey = "claims"
	SessionIDKey       ContextKey = "session_id"
	UserIDKey          ContextKey = "user_id"
	LicenseKeyKey      ContextKey = "license_key"
	LicenseSnapshotKey ContextKey = "license_snapshot"
	TenantDBKey        ContextKey = "tenant_db"
)

var (
	ErrNoSessionIDInContext  = errors.New("no session id found in context")
	ErrNoLicenseKeyInContext = errors.New("no license key found in context")
	ErrNoTenantDBInContext   = errors.New("no tenant store handle found in context")
	ErrNoSnapshotInContext   = errors.New("no license snapshot found in context")
	ErrNoUserIDInContext     = errors.New("no user id found in context")
)

func GetSessionIDFromContext(c context.Context) (string, error) {
	id, ok := c.Value(SessionIDKey).(string)
	if !ok || id == "" {
		return "", ErrNoSessionIDInContext
	}
	return id, nil
}

func GetUserIDFromContext(c context.Context) (string, error) {
	id, ok := c.Value(UserIDKey).(string)
	if !ok || id == "" {
		return "", ErrNoUserIDInContext
	}
	return id, nil
}

func GetLicenseKeyFromContext(c context.Context) (string, error) {
	key, ok := c.Value(LicenseKeyKey).(string)
	if !ok || key == "" {
		return "", ErrNoLicenseKeyInContext
	}
	return key, nil
}

// GetTenantDBFromContext returns the tenant store handle the request was
// bound to by the tenant middleware. Business data access must go through
// this handle and never through the master store.
func GetTenantDBFromContext(c context.Context) (*gorm.DB, error) {
	db, ok := c.Value(TenantDBKey).(*gorm.DB)
	if !ok || db == nil {
		return nil, ErrNoTenantDBInContext
	}
	return db, nil
}

// GetLicenseSnapshotFromContext returns the detached license view published
// for the current request.
func GetLicenseSnapshotFromContext(c context.Context) (domain.LicenseSnapshot, error) {
	snap, ok := c.Value(LicenseSnapshotKey).(domain.LicenseSnapshot)
	if !ok {
		return domain.LicenseSnapshot{}, ErrNoSnapshotInContext
	}
	return snap, nil
}
