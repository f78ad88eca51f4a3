package domain

import (
	"slices"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleName identifies one of the fixed roles seeded into every tenant store.
type RoleName string

const (
	// RoleAdmin has full access inside the tenant, including user management.
	RoleAdmin RoleName = "admin"

	// RoleManager can manage branch-level operations.
	RoleManager RoleName = "manager"

	// RoleUser has basic access to day-to-day operations.
	RoleUser RoleName = "user"
)

// SeedRoles is the role set every freshly provisioned tenant receives.
var SeedRoles = []RoleName{RoleAdmin, RoleManager, RoleUser}

// IsValidRole checks if a given role name is one of the seeded roles.
func IsValidRole(name string) bool {
	return slices.Contains(SeedRoles, RoleName(name))
}

// Role is a row in a tenant store's roles table. Name is the natural key.
type Role struct {
	ID          string `gorm:"primaryKey;type:text" json:"id"`
	Name        string `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Role) TableName() string {
	return "roles"
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
