package tenancy

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Strategy selects how tenant stores are isolated from each other.
type Strategy string

const (
	// StrategySchema keeps every tenant in its own schema of one shared
	// PostgreSQL database.
	StrategySchema Strategy = "schema"

	// StrategyFile keeps every tenant in its own SQLite database file.
	StrategyFile Strategy = "file"
)

// ErrInvalidLicenseKey is returned for identifiers that do not match the
// XXXX-XXXX-XXXX-XXXX license key format.
var ErrInvalidLicenseKey = errors.New("invalid license key format")

// licenseKeyPattern accepts four dash-separated groups of uppercase
// alphanumerics. The alphabet excludes '_' and '-', so replacing dashes with
// underscores when deriving a target name can never merge two distinct keys.
var licenseKeyPattern = regexp.MustCompile(`^[A-Z0-9]{4}(?:-[A-Z0-9]{4}){3}$`)

// NormalizeKey maps equivalent spellings of a license key to one canonical
// form before validation or target derivation.
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// ValidateKey rejects identifiers that are not normalized license keys.
func ValidateKey(key string) error {
	if !licenseKeyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidLicenseKey, key)
	}
	return nil
}

// Target describes one concrete storage target. It is derived from a license
// key, never persisted. Exactly one of Schema or Path is set, matching the
// Strategy.
type Target struct {
	Strategy Strategy
	Schema   string
	Path     string
}

func (t Target) String() string {
	if t.Strategy == StrategySchema {
		return t.Schema
	}
	return t.Path
}

// Locator maps license keys to storage targets. It is pure: no I/O, no
// state beyond the startup configuration it was built with.
type Locator struct {
	strategy     Strategy
	schemaPrefix string
	tenantsDir   string
	masterSchema string
	masterPath   string
}

// LocatorConfig carries the fixed layout the locator derives targets from.
type LocatorConfig struct {
	Strategy     Strategy
	SchemaPrefix string // schema strategy, e.g. "tenant_"
	TenantsDir   string // file strategy, directory of per-tenant files
	MasterSchema string // schema strategy, usually "public"
	MasterPath   string // file strategy, path of the master database file
}

func NewLocator(cfg LocatorConfig) *Locator {
	return &Locator{
		strategy:     cfg.Strategy,
		schemaPrefix: cfg.SchemaPrefix,
		tenantsDir:   cfg.TenantsDir,
		masterSchema: cfg.MasterSchema,
		masterPath:   cfg.MasterPath,
	}
}

// TargetFor derives the storage target for a normalized license key.
// Distinct valid keys always yield distinct targets.
func (l *Locator) TargetFor(key string) (Target, error) {
	if err := ValidateKey(key); err != nil {
		return Target{}, err
	}
	safe := strings.ReplaceAll(key, "-", "_")
	if l.strategy == StrategySchema {
		return Target{
			Strategy: StrategySchema,
			Schema:   l.schemaPrefix + strings.ToLower(safe),
		}, nil
	}
	return Target{
		Strategy: StrategyFile,
		Path:     filepath.Join(l.tenantsDir, fmt.Sprintf("tenant_%s.db", safe)),
	}, nil
}

// MasterTarget is the fixed, always-available shared target.
func (l *Locator) MasterTarget() Target {
	if l.strategy == StrategySchema {
		return Target{Strategy: StrategySchema, Schema: l.masterSchema}
	}
	return Target{Strategy: StrategyFile, Path: l.masterPath}
}

// Strategy returns the isolation strategy the locator was built for.
func (l *Locator) Strategy() Strategy {
	return l.strategy
}
