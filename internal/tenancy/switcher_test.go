package tenancy

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type FileSwitcherTestSuite struct {
	suite.Suite
	locator  *Locator
	master   *gorm.DB
	switcher Switcher
}

func (s *FileSwitcherTestSuite) SetupTest() {
	dir := s.T().TempDir()
	opener := sqliteOpener{}

	masterPath := filepath.Join(dir, "licenses_master.db")
	master, err := opener.OpenFile(masterPath)
	s.Require().NoError(err)
	s.master = master

	s.locator = NewLocator(LocatorConfig{
		Strategy:   StrategyFile,
		TenantsDir: filepath.Join(dir, "tenant_databases"),
		MasterPath: masterPath,
	})
	s.switcher = NewSwitcher(s.locator, master, opener)
}

func (s *FileSwitcherTestSuite) TearDownTest() {
	s.NoError(s.switcher.Close())
}

func TestFileSwitcher(t *testing.T) {
	suite.Run(t, new(FileSwitcherTestSuite))
}

func (s *FileSwitcherTestSuite) target(key string) Target {
	target, err := s.locator.TargetFor(key)
	s.Require().NoError(err)
	return target
}

func (s *FileSwitcherTestSuite) TestOpen_UnprovisionedTargetUnavailable() {
	_, err := s.switcher.Open(context.Background(), s.target("ABCD-1234-EFGH-5678"))

	s.ErrorIs(err, ErrStorageUnavailable)
}

func (s *FileSwitcherTestSuite) TestCreate_ThenOpenReturnsSameHandle() {
	ctx := context.Background()
	target := s.target("ABCD-1234-EFGH-5678")

	created, err := s.switcher.Create(ctx, target)
	s.NoError(err)
	s.NotNil(created)

	opened, err := s.switcher.Open(ctx, target)
	s.NoError(err)
	s.Same(created, opened)
}

func (s *FileSwitcherTestSuite) TestCreate_Idempotent() {
	ctx := context.Background()
	target := s.target("ABCD-1234-EFGH-5678")

	first, err := s.switcher.Create(ctx, target)
	s.NoError(err)
	second, err := s.switcher.Create(ctx, target)
	s.NoError(err)
	s.Same(first, second)
}

func (s *FileSwitcherTestSuite) TestMasterTargetOpensMasterHandle() {
	db, err := s.switcher.Open(context.Background(), s.locator.MasterTarget())

	s.NoError(err)
	s.Same(s.master, db)
	s.Same(s.master, s.switcher.Master())
}

// Opening a second tenant must hand out a distinct handle and leave the
// first tenant's handle untouched.
func (s *FileSwitcherTestSuite) TestOpen_DistinctTenantsDistinctHandles() {
	ctx := context.Background()
	first, err := s.switcher.Create(ctx, s.target("ABCD-1234-EFGH-5678"))
	s.Require().NoError(err)
	second, err := s.switcher.Create(ctx, s.target("WXYZ-9876-QRST-5432"))
	s.Require().NoError(err)

	s.NotSame(first, second)

	reopened, err := s.switcher.Open(ctx, s.target("ABCD-1234-EFGH-5678"))
	s.NoError(err)
	s.Same(first, reopened)
}

func (s *FileSwitcherTestSuite) TestDrop_ThenExistsFalse() {
	ctx := context.Background()
	target := s.target("ABCD-1234-EFGH-5678")
	_, err := s.switcher.Create(ctx, target)
	s.Require().NoError(err)

	s.NoError(s.switcher.Drop(ctx, target))

	exists, err := s.switcher.Exists(ctx, target)
	s.NoError(err)
	s.False(exists)

	_, err = s.switcher.Open(ctx, target)
	s.ErrorIs(err, ErrStorageUnavailable)
}

func (s *FileSwitcherTestSuite) TestDrop_MissingTargetIsNoop() {
	err := s.switcher.Drop(context.Background(), s.target("AAAA-BBBB-CCCC-DDDD"))
	s.NoError(err)
}
