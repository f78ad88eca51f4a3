package tenancy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gorm.io/gorm"
)

// ErrStorageUnavailable is returned when a storage target does not exist or
// cannot be opened. Callers must provision before binding, except when a
// bind is itself used as an existence probe.
var ErrStorageUnavailable = errors.New("storage target unavailable")

// Switcher hands out database handles bound to one storage target. There is
// no process-wide "active" target: every caller receives an explicit handle
// and threads it through its own request, so concurrent requests on
// different tenants can never observe each other's binding.
type Switcher interface {
	// Master returns the handle of the shared master store.
	Master() *gorm.DB

	// Open returns a handle bound to the given target. The target must
	// already exist; otherwise ErrStorageUnavailable is returned.
	Open(ctx context.Context, target Target) (*gorm.DB, error)

	// Exists reports whether the target has been created.
	Exists(ctx context.Context, target Target) (bool, error)

	// Create makes the target exist (idempotently, with IF NOT EXISTS
	// semantics at the storage layer) and returns a handle bound to it.
	Create(ctx context.Context, target Target) (*gorm.DB, error)

	// Drop destructively removes the target and releases its handle.
	Drop(ctx context.Context, target Target) error

	// Close releases all tenant handles. The master handle stays with its
	// owner.
	Close() error
}

// Opener abstracts how a physical connection for a target is established.
// The config package provides the real implementations.
type Opener interface {
	OpenSchema(schema string) (*gorm.DB, error)
	OpenFile(path string) (*gorm.DB, error)
}

// NewSwitcher builds the switcher variant matching the locator's strategy.
func NewSwitcher(locator *Locator, master *gorm.DB, opener Opener) Switcher {
	if locator.Strategy() == StrategySchema {
		return &schemaSwitcher{locator: locator, master: master, opener: opener, handles: map[string]*gorm.DB{}}
	}
	return &fileSwitcher{locator: locator, master: master, opener: opener, handles: map[string]*gorm.DB{}}
}

// schemaSwitcher serves targets that are schemas of one shared PostgreSQL
// database. Each tenant gets its own pooled connection whose search_path is
// fixed in the DSN, so a handle can never drift to another tenant's schema.
type schemaSwitcher struct {
	locator *Locator
	master  *gorm.DB
	opener  Opener

	mu      sync.Mutex
	handles map[string]*gorm.DB
}

func (s *schemaSwitcher) Master() *gorm.DB {
	return s.master
}

func (s *schemaSwitcher) Open(ctx context.Context, target Target) (*gorm.DB, error) {
	if target.Schema == s.locator.MasterTarget().Schema {
		return s.master, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if db, ok := s.handles[target.Schema]; ok {
		return db, nil
	}

	exists, err := s.schemaExists(ctx, target.Schema)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: schema %s", ErrStorageUnavailable, target.Schema)
	}
	return s.openLocked(target.Schema)
}

func (s *schemaSwitcher) Exists(ctx context.Context, target Target) (bool, error) {
	return s.schemaExists(ctx, target.Schema)
}

func (s *schemaSwitcher) Create(ctx context.Context, target Target) (*gorm.DB, error) {
	// Schema names come from the locator, which only emits the fixed prefix
	// plus [a-z0-9_] from a validated key.
	if err := s.master.WithContext(ctx).
		Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", target.Schema)).Error; err != nil {
		return nil, fmt.Errorf("create schema %s: %w", target.Schema, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if db, ok := s.handles[target.Schema]; ok {
		return db, nil
	}
	return s.openLocked(target.Schema)
}

func (s *schemaSwitcher) Drop(ctx context.Context, target Target) error {
	s.mu.Lock()
	if db, ok := s.handles[target.Schema]; ok {
		delete(s.handles, target.Schema)
		closeHandle(db)
	}
	s.mu.Unlock()

	return s.master.WithContext(ctx).
		Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", target.Schema)).Error
}

func (s *schemaSwitcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for name, db := range s.handles {
		delete(s.handles, name)
		if err := closeHandle(db); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *schemaSwitcher) schemaExists(ctx context.Context, schema string) (bool, error) {
	var count int64
	err := s.master.WithContext(ctx).
		Raw("SELECT count(*) FROM information_schema.schemata WHERE schema_name = ?", schema).
		Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return count > 0, nil
}

// openLocked opens and caches a per-schema handle. Caller holds s.mu.
func (s *schemaSwitcher) openLocked(schema string) (*gorm.DB, error) {
	db, err := s.opener.OpenSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	s.handles[schema] = db
	return db, nil
}

// fileSwitcher serves targets that are SQLite database files, one per
// tenant. Opening a handle for a different tenant never mutates an existing
// handle; replaced or dropped handles are closed before the operation
// returns, so binds cannot leak file handles.
type fileSwitcher struct {
	locator *Locator
	master  *gorm.DB
	opener  Opener

	mu      sync.Mutex
	handles map[string]*gorm.DB
}

func (s *fileSwitcher) Master() *gorm.DB {
	return s.master
}

func (s *fileSwitcher) Open(ctx context.Context, target Target) (*gorm.DB, error) {
	if target.Path == s.locator.MasterTarget().Path {
		return s.master, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if db, ok := s.handles[target.Path]; ok {
		return db, nil
	}

	if _, err := os.Stat(target.Path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStorageUnavailable, target.Path)
	}
	return s.openLocked(target.Path)
}

func (s *fileSwitcher) Exists(ctx context.Context, target Target) (bool, error) {
	_, err := os.Stat(target.Path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

func (s *fileSwitcher) Create(ctx context.Context, target Target) (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if db, ok := s.handles[target.Path]; ok {
		return db, nil
	}

	if err := os.MkdirAll(filepath.Dir(target.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create tenant directory: %w", err)
	}
	// Opening a SQLite file creates it when absent and is a no-op when it
	// already exists, which gives create-if-not-exists semantics for free.
	return s.openLocked(target.Path)
}

func (s *fileSwitcher) Drop(ctx context.Context, target Target) error {
	s.mu.Lock()
	if db, ok := s.handles[target.Path]; ok {
		delete(s.handles, target.Path)
		closeHandle(db)
	}
	s.mu.Unlock()

	if err := os.Remove(target.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove tenant database: %w", err)
	}
	return nil
}

func (s *fileSwitcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for path, db := range s.handles {
		delete(s.handles, path)
		if err := closeHandle(db); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// openLocked opens and caches a per-file handle. Caller holds s.mu.
func (s *fileSwitcher) openLocked(path string) (*gorm.DB, error) {
	db, err := s.opener.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	s.handles[path] = db
	return db, nil
}

func closeHandle(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
