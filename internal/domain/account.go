package domain

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountType classifies an entry of the chart-of-accounts skeleton.
type AccountType string

const (
	AccountAsset     AccountType = "asset"
	AccountLiability AccountType = "liability"
	AccountEquity    AccountType = "equity"
	AccountRevenue   AccountType = "revenue"
	AccountExpense   AccountType = "expense"
)

// Account is a chart-of-accounts row inside a tenant store. Code is the
// natural key.
type Account struct {
	ID       string      `gorm:"primaryKey;type:text" json:"id"`
	Code     string      `gorm:"type:text;not null;uniqueIndex" json:"code"`
	Name     string      `gorm:"type:text;not null" json:"name"`
	Type     AccountType `gorm:"column:account_type;type:text;not null" json:"account_type"`
	IsSystem bool        `gorm:"not null;default:false" json:"is_system"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// SeedAccount is one entry of the account skeleton applied to new tenants.
type SeedAccount struct {
	Code string
	Name string
	Type AccountType
}

// SeedAccounts is the fixed five-entry chart-of-accounts skeleton.
var SeedAccounts = []SeedAccount{
	{Code: "1000", Name: "Assets", Type: AccountAsset},
	{Code: "2000", Name: "Liabilities", Type: AccountLiability},
	{Code: "3000", Name: "Equity", Type: AccountEquity},
	{Code: "4000", Name: "Revenue", Type: AccountRevenue},
	{Code: "5000", Name: "Expenses", Type: AccountExpense},
}
