package tenancy

import (
	"gorm.io/gorm"

	"github.com/dedsoft/erp-api/internal/domain"
)

// SchemaBundle instantiates every table a tenant store needs. The business
// domain supplies the full ERP bundle; the provisioner only requires that it
// works against either isolation strategy's handle.
type SchemaBundle interface {
	InstantiateAll(db *gorm.DB) error
}

type coreBundle struct{}

// CoreBundle returns the bundle of baseline tables every tenant store
// carries: users, roles, branches and the chart-of-accounts skeleton.
func CoreBundle() SchemaBundle {
	return coreBundle{}
}

func (coreBundle) InstantiateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Role{},
		&domain.Branch{},
		&domain.Account{},
		&domain.User{},
	)
}
