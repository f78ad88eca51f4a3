package tenancy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dedsoft/erp-api/internal/domain"
	"github.com/dedsoft/erp-api/pkg/logger"
)

// sqliteOpener opens real SQLite files so provisioning runs against actual
// storage instead of mocks.
type sqliteOpener struct{}

func (sqliteOpener) OpenSchema(schema string) (*gorm.DB, error) {
	return nil, fmt.Errorf("schema strategy not available in this test")
}

func (sqliteOpener) OpenFile(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

type ProvisionerTestSuite struct {
	suite.Suite
	dir         string
	locator     *Locator
	switcher    Switcher
	provisioner *Provisioner
	license     *domain.License
}

func (s *ProvisionerTestSuite) SetupTest() {
	s.dir = s.T().TempDir()

	opener := sqliteOpener{}
	masterPath := filepath.Join(s.dir, "licenses_master.db")
	master, err := opener.OpenFile(masterPath)
	s.Require().NoError(err)

	s.locator = NewLocator(LocatorConfig{
		Strategy:   StrategyFile,
		TenantsDir: filepath.Join(s.dir, "tenant_databases"),
		MasterPath: masterPath,
	})
	s.switcher = NewSwitcher(s.locator, master, opener)
	s.provisioner = NewProvisioner(s.locator, s.switcher, logger.NewNop())

	s.license = &domain.License{
		LicenseKey:        "ABCD-1234-EFGH-5678",
		ClientName:        "Jane Roe",
		ClientCompany:     "Acme Corp",
		ClientEmail:       "owner@acme.com",
		AdminUsername:     "admin",
		AdminPasswordHash: "$2a$10$notarealhashbutgoodenough",
		IsActive:          true,
		MaxUsers:          5,
	}
}

func (s *ProvisionerTestSuite) TearDownTest() {
	s.NoError(s.switcher.Close())
}

func TestProvisioner(t *testing.T) {
	suite.Run(t, new(ProvisionerTestSuite))
}

func (s *ProvisionerTestSuite) tenantDB(key string) *gorm.DB {
	target, err := s.locator.TargetFor(key)
	s.Require().NoError(err)
	db, err := s.switcher.Open(context.Background(), target)
	s.Require().NoError(err)
	return db
}

func (s *ProvisionerTestSuite) countRows(db *gorm.DB, model any) int64 {
	var n int64
	s.Require().NoError(db.Model(model).Count(&n).Error)
	return n
}

func (s *ProvisionerTestSuite) TestExists_FalseBeforeProvision() {
	exists, err := s.provisioner.Exists(context.Background(), s.license.LicenseKey)

	s.NoError(err)
	s.False(exists)
}

func (s *ProvisionerTestSuite) TestEnsureReady_ProvisionsAndSeeds() {
	ctx := context.Background()

	err := s.provisioner.EnsureReady(ctx, s.license.LicenseKey, CoreBundle(), s.license)
	s.NoError(err)

	exists, err := s.provisioner.Exists(ctx, s.license.LicenseKey)
	s.NoError(err)
	s.True(exists)

	db := s.tenantDB(s.license.LicenseKey)
	s.Equal(int64(3), s.countRows(db, &domain.Role{}))
	s.Equal(int64(1), s.countRows(db, &domain.Branch{}))
	s.Equal(int64(5), s.countRows(db, &domain.Account{}))
	s.Equal(int64(1), s.countRows(db, &domain.User{}))

	var admin domain.User
	s.Require().NoError(db.Where("username = ?", "admin").First(&admin).Error)
	s.True(admin.IsAdmin)
	s.True(admin.IsActive)
	s.Equal("owner@acme.com", admin.Email)
	s.Equal(s.license.AdminPasswordHash, admin.PasswordHash)
}

func (s *ProvisionerTestSuite) TestEnsureReady_Idempotent() {
	ctx := context.Background()

	s.Require().NoError(s.provisioner.EnsureReady(ctx, s.license.LicenseKey, CoreBundle(), s.license))
	s.Require().NoError(s.provisioner.EnsureReady(ctx, s.license.LicenseKey, CoreBundle(), s.license))

	db := s.tenantDB(s.license.LicenseKey)
	s.Equal(int64(3), s.countRows(db, &domain.Role{}))
	s.Equal(int64(1), s.countRows(db, &domain.Branch{}))
	s.Equal(int64(5), s.countRows(db, &domain.Account{}))
	s.Equal(int64(1), s.countRows(db, &domain.User{}))
}

// Re-seeding a live store converges instead of duplicating rows, even after
// a tenant has accumulated its own data.
func (s *ProvisionerTestSuite) TestSeed_ConvergesOnRerun() {
	ctx := context.Background()
	s.Require().NoError(s.provisioner.EnsureReady(ctx, s.license.LicenseKey, CoreBundle(), s.license))

	db := s.tenantDB(s.license.LicenseKey)
	extra := domain.User{
		Username:     "clerk",
		Email:        "clerk@acme.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	s.Require().NoError(db.Create(&extra).Error)

	s.Require().NoError(s.provisioner.Seed(ctx, s.license.LicenseKey, s.license))

	s.Equal(int64(3), s.countRows(db, &domain.Role{}))
	s.Equal(int64(2), s.countRows(db, &domain.User{}))
}

func (s *ProvisionerTestSuite) TestEnsureReady_ConcurrentFirstLogins() {
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.provisioner.EnsureReady(ctx, s.license.LicenseKey, CoreBundle(), s.license)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		s.NoError(err)
	}

	db := s.tenantDB(s.license.LicenseKey)
	s.Equal(int64(3), s.countRows(db, &domain.Role{}))
	s.Equal(int64(1), s.countRows(db, &domain.Branch{}))
	s.Equal(int64(5), s.countRows(db, &domain.Account{}))
	s.Equal(int64(1), s.countRows(db, &domain.User{}))
}

// Writes in one tenant store must never surface in another.
func (s *ProvisionerTestSuite) TestTenantStoresAreIsolated() {
	ctx := context.Background()
	other := &domain.License{
		LicenseKey:        "WXYZ-9876-QRST-5432",
		ClientName:        "Other Client",
		ClientEmail:       "other@example.com",
		AdminUsername:     "admin",
		AdminPasswordHash: "$2a$10$otherhash",
		IsActive:          true,
	}

	s.Require().NoError(s.provisioner.EnsureReady(ctx, s.license.LicenseKey, CoreBundle(), s.license))
	s.Require().NoError(s.provisioner.EnsureReady(ctx, other.LicenseKey, CoreBundle(), other))

	first := s.tenantDB(s.license.LicenseKey)
	second := s.tenantDB(other.LicenseKey)

	extra := domain.User{
		Username:     "onlyinfirst",
		Email:        "onlyinfirst@acme.com",
		PasswordHash: "x",
		IsActive:     true,
	}
	s.Require().NoError(first.Create(&extra).Error)

	s.Equal(int64(2), s.countRows(first, &domain.User{}))
	s.Equal(int64(1), s.countRows(second, &domain.User{}))

	var missing domain.User
	err := second.Where("username = ?", "onlyinfirst").First(&missing).Error
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *ProvisionerTestSuite) TestSeed_SynthesizesAdminEmail() {
	ctx := context.Background()
	s.license.ClientEmail = "no-at-sign-here"

	s.Require().NoError(s.provisioner.EnsureReady(ctx, s.license.LicenseKey, CoreBundle(), s.license))

	db := s.tenantDB(s.license.LicenseKey)
	var admin domain.User
	s.Require().NoError(db.Where("username = ?", "admin").First(&admin).Error)
	s.Equal("admin@acmecorp.com", admin.Email)
}

func (s *ProvisionerTestSuite) TestDeprovision_RemovesStore() {
	ctx := context.Background()
	s.Require().NoError(s.provisioner.EnsureReady(ctx, s.license.LicenseKey, CoreBundle(), s.license))

	err := s.provisioner.Deprovision(ctx, s.license.LicenseKey)
	s.NoError(err)

	exists, err := s.provisioner.Exists(ctx, s.license.LicenseKey)
	s.NoError(err)
	s.False(exists)

	target, err := s.locator.TargetFor(s.license.LicenseKey)
	s.Require().NoError(err)
	_, statErr := os.Stat(target.Path)
	s.True(os.IsNotExist(statErr))
}
