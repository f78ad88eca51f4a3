package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account inside one tenant store. Users of different tenants
// live in different storage targets and never share a table.
type User struct {
	ID           string     `gorm:"primaryKey;type:text" json:"id"`
	Username     string     `gorm:"type:text;not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"type:text;not null;uniqueIndex" json:"email"`
	FullName     string     `gorm:"type:text" json:"full_name"`
	Phone        string     `gorm:"type:text" json:"phone"`
	PasswordHash string     `gorm:"type:text;not null" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	IsAdmin      bool       `gorm:"not null;default:false" json:"is_admin"`
	RoleID       string     `gorm:"type:text" json:"role_id"`
	BranchID     string     `gorm:"type:text" json:"branch_id"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Role         *Role      `gorm:"foreignKey:RoleID" json:"-"`
	Branch       *Branch    `gorm:"foreignKey:BranchID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// PublicIdentity is the caller-facing view of an authenticated user.
type PublicIdentity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	IsAdmin  bool   `json:"is_admin"`
}

func (u *User) Identity() PublicIdentity {
	return PublicIdentity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		IsAdmin:  u.IsAdmin,
	}
}
