package domain

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MainBranchCode is the code of the default branch seeded into new tenants.
const MainBranchCode = "MAIN"

// Branch is an organizational branch inside a tenant store. Code is the
// natural key.
type Branch struct {
	ID       string `gorm:"primaryKey;type:text" json:"id"`
	Code     string `gorm:"type:text;not null;uniqueIndex" json:"code"`
	Name     string `gorm:"type:text;not null" json:"name"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}

func (Branch) TableName() string {
	return "branches"
}

func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
