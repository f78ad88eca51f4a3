package dto

import (
	"time"

	"github.com/dedsoft/erp-api/internal/domain"
)

// LoginResponse carries the session token together with the authenticated
// user's public identity and the license snapshot for the bound tenant.
type LoginResponse struct {
	Token     string                 `json:"token"`
	ExpiresAt time.Time              `json:"expires_at" example:"2025-07-17T21:20:48Z"`
	User      domain.PublicIdentity  `json:"user"`
	License   domain.LicenseSnapshot `json:"license"`
}

// LicenseResponse is the administrative view of one license record.
type LicenseResponse struct {
	LicenseKey       string     `json:"license_key" example:"AB12-CD34-EF56-GH78"`
	ClientName       string     `json:"client_name" example:"Jane Smith"`
	ClientCompany    string     `json:"client_company" example:"Acme Trading"`
	ClientEmail      string     `json:"client_email" example:"jane@acme.example"`
	ClientPhone      string     `json:"client_phone" example:"+123456789"`
	AdminUsername    string     `json:"admin_username" example:"admin"`
	IsActive         bool       `json:"is_active" example:"true"`
	IsSuspended      bool       `json:"is_suspended" example:"false"`
	SuspensionReason *string    `json:"suspension_reason,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	MaxUsers         int        `json:"max_users" example:"10"`
	CreatedAt        time.Time  `json:"created_at" example:"2025-07-17T21:20:48Z"`
}

// UserResponse is a tenant-store user as returned by the API.
type UserResponse struct {
	ID        string     `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Username  string     `json:"username" example:"jsmith"`
	Email     string     `json:"email" example:"jsmith@acme.example"`
	FullName  string     `json:"full_name" example:"John Smith"`
	IsActive  bool       `json:"is_active" example:"true"`
	IsAdmin   bool       `json:"is_admin" example:"false"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
