package tenancy

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dedsoft/erp-api/internal/domain"
	"github.com/dedsoft/erp-api/pkg/logger"
)

// Provisioner lazily creates and seeds tenant storage targets. All of its
// operations are idempotent: provisioning an existing tenant is a no-op
// success and re-seeding a partially seeded store converges instead of
// duplicating rows.
type Provisioner struct {
	locator  *Locator
	switcher Switcher
	logger   *logger.Logger

	mu       sync.Mutex
	inflight map[string]*sync.Mutex
}

func NewProvisioner(locator *Locator, switcher Switcher, logger *logger.Logger) *Provisioner {
	return &Provisioner{
		locator:  locator,
		switcher: switcher,
		logger:   logger,
		inflight: map[string]*sync.Mutex{},
	}
}

// Exists reports whether the tenant's storage target has been created.
func (p *Provisioner) Exists(ctx context.Context, licenseKey string) (bool, error) {
	target, err := p.locator.TargetFor(licenseKey)
	if err != nil {
		return false, err
	}
	return p.switcher.Exists(ctx, target)
}

// Provision creates the tenant's storage target and instantiates the schema
// bundle into it. Calling it for an already provisioned tenant succeeds
// without touching existing structures.
func (p *Provisioner) Provision(ctx context.Context, licenseKey string, bundle SchemaBundle) error {
	target, err := p.locator.TargetFor(licenseKey)
	if err != nil {
		return err
	}

	db, err := p.switcher.Create(ctx, target)
	if err != nil {
		return fmt.Errorf("create storage target %s: %w", target, err)
	}
	if err := bundle.InstantiateAll(db.WithContext(ctx)); err != nil {
		return fmt.Errorf("instantiate schema bundle into %s: %w", target, err)
	}
	return nil
}

// Seed applies the baseline records to the tenant store inside one
// transaction: the role set, the default branch, the account skeleton and
// the admin user derived from the license record. Every item is inserted
// only if its natural key is absent.
func (p *Provisioner) Seed(ctx context.Context, licenseKey string, lic *domain.License) error {
	target, err := p.locator.TargetFor(licenseKey)
	if err != nil {
		return err
	}
	db, err := p.switcher.Open(ctx, target)
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		adminRole, err := seedRoles(tx)
		if err != nil {
			return err
		}
		branch, err := seedBranch(tx)
		if err != nil {
			return err
		}
		if err := seedAccounts(tx); err != nil {
			return err
		}
		return seedAdminUser(tx, lic, adminRole, branch)
	})
}

// EnsureReady provisions and seeds the tenant store when it does not exist
// yet. First logins racing on the same new tenant serialize here, so exactly
// one seeding pass runs and the loser observes the winner's result.
func (p *Provisioner) EnsureReady(ctx context.Context, licenseKey string, bundle SchemaBundle, lic *domain.License) error {
	unlock := p.lockKey(licenseKey)
	defer unlock()

	exists, err := p.Exists(ctx, licenseKey)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := p.Provision(ctx, licenseKey, bundle); err != nil {
		return err
	}
	return p.Seed(ctx, licenseKey, lic)
}

// Deprovision destructively removes the tenant's storage target. Reachable
// only from the administrative surface, never from login or request routing.
func (p *Provisioner) Deprovision(ctx context.Context, licenseKey string) error {
	target, err := p.locator.TargetFor(licenseKey)
	if err != nil {
		return err
	}
	if err := p.switcher.Drop(ctx, target); err != nil {
		return err
	}
	p.logger.Info("tenant store dropped", zap.String("license_key", licenseKey))
	return nil
}

func (p *Provisioner) lockKey(licenseKey string) func() {
	p.mu.Lock()
	m, ok := p.inflight[licenseKey]
	if !ok {
		m = &sync.Mutex{}
		p.inflight[licenseKey] = m
	}
	p.mu.Unlock()
	m.Lock()
	return m.Unlock
}

func seedRoles(tx *gorm.DB) (*domain.Role, error) {
	descriptions := map[domain.RoleName]string{
		domain.RoleAdmin:   "Full system access",
		domain.RoleManager: "Manager access",
		domain.RoleUser:    "Basic user access",
	}

	var adminRole domain.Role
	for _, name := range domain.SeedRoles {
		var role domain.Role
		err := tx.Where(domain.Role{Name: string(name)}).
			Attrs(domain.Role{Description: descriptions[name]}).
			FirstOrCreate(&role).Error
		if err != nil {
			return nil, fmt.Errorf("seed role %s: %w", name, err)
		}
		if name == domain.RoleAdmin {
			adminRole = role
		}
	}
	return &adminRole, nil
}

func seedBranch(tx *gorm.DB) (*domain.Branch, error) {
	var branch domain.Branch
	err := tx.Where(domain.Branch{Code: domain.MainBranchCode}).
		Attrs(domain.Branch{Name: "Main Branch", IsActive: true}).
		FirstOrCreate(&branch).Error
	if err != nil {
		return nil, fmt.Errorf("seed default branch: %w", err)
	}
	return &branch, nil
}

func seedAccounts(tx *gorm.DB) error {
	for _, acc := range domain.SeedAccounts {
		var account domain.Account
		err := tx.Where(domain.Account{Code: acc.Code}).
			Attrs(domain.Account{Name: acc.Name, Type: acc.Type, IsSystem: true}).
			FirstOrCreate(&account).Error
		if err != nil {
			return fmt.Errorf("seed account %s: %w", acc.Code, err)
		}
	}
	return nil
}

func seedAdminUser(tx *gorm.DB, lic *domain.License, role *domain.Role, branch *domain.Branch) error {
	if lic.AdminUsername == "" || lic.AdminPasswordHash == "" {
		return nil
	}

	email := lic.ClientEmail
	if !strings.Contains(email, "@") {
		company := lic.ClientCompany
		if company == "" {
			company = "company"
		}
		email = fmt.Sprintf("%s@%s.com", lic.AdminUsername, strings.ToLower(strings.ReplaceAll(company, " ", "")))
	}

	// Another account may already own the synthesized email; in that case
	// the admin seed is skipped rather than failing the whole bundle.
	var taken int64
	if err := tx.Model(&domain.User{}).
		Where("email = ? AND username <> ?", email, lic.AdminUsername).
		Count(&taken).Error; err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	if taken > 0 {
		return nil
	}

	var user domain.User
	err := tx.Where(domain.User{Username: lic.AdminUsername}).
		Attrs(domain.User{
			Email:        email,
			FullName:     lic.ClientName,
			Phone:        lic.ClientPhone,
			PasswordHash: lic.AdminPasswordHash,
			IsActive:     true,
			IsAdmin:      true,
			RoleID:       role.ID,
			BranchID:     branch.ID,
		}).
		FirstOrCreate(&user).Error
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}
