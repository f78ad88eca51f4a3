package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// License is the master-registry record for one tenant. It lives in the
// shared master store and is never written from inside a tenant store.
type License struct {
	ID                string     `gorm:"primaryKey;type:text" json:"id"`
	LicenseKey        string     `gorm:"type:text;not null;uniqueIndex" json:"license_key"`
	ClientName        string     `gorm:"type:text;not null" json:"client_name"`
	ClientCompany     string     `gorm:"type:text" json:"client_company"`
	ClientEmail       string     `gorm:"type:text" json:"client_email"`
	ClientPhone       string     `gorm:"type:text" json:"client_phone"`
	AdminUsername     string     `gorm:"type:text;not null" json:"admin_username"`
	AdminPasswordHash string     `gorm:"type:text;not null" json:"-"`
	IsActive          bool       `gorm:"not null;default:true" json:"is_active"`
	IsSuspended       bool       `gorm:"not null;default:false" json:"is_suspended"`
	SuspensionReason  *string    `gorm:"type:text" json:"suspension_reason,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	MaxUsers          int        `gorm:"not null;default:5" json:"max_users"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (License) TableName() string {
	return "licenses"
}

func (l *License) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Expired reports whether the license has an expiry in the past.
// A nil ExpiresAt means the license is perpetual.
func (l *License) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}

// Usable reports whether the license may open a tenant session right now.
func (l *License) Usable(now time.Time) bool {
	return l.IsActive && !l.IsSuspended && !l.Expired(now)
}

// LicenseSnapshot is the detached, read-only view of a license published to
// the rest of a request once the request has moved on to the tenant store.
type LicenseSnapshot struct {
	LicenseKey  string     `json:"license_key"`
	ClientName  string     `json:"client_name"`
	ClientEmail string     `json:"client_email"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	MaxUsers    int        `json:"max_users"`
	IsActive    bool       `json:"is_active"`
	IsSuspended bool       `json:"is_suspended"`
}

// Snapshot copies the public fields of the license.
func (l *License) Snapshot() LicenseSnapshot {
	return LicenseSnapshot{
		LicenseKey:  l.LicenseKey,
		ClientName:  l.ClientName,
		ClientEmail: l.ClientEmail,
		ExpiresAt:   l.ExpiresAt,
		MaxUsers:    l.MaxUsers,
		IsActive:    l.IsActive,
		IsSuspended: l.IsSuspended,
	}
}
