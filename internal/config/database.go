package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ConnectionPoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func DefaultConnectionPoolConfig() *ConnectionPoolConfig {
	return &ConnectionPoolConfig{
		MaxOpenConns:    50,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDurationWithDefault returns environment variable as duration or default if not set
func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getMasterConfig loads the shared PostgreSQL settings from environment
// variables. Under the schema strategy this database holds the master
// registry in the public schema and one schema per tenant next to it.
func getMasterConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:     getEnvWithDefault("MASTER_DB_HOST", "localhost"),
		Port:     getEnvWithDefault("MASTER_DB_PORT", "5432"),
		User:     getEnvWithDefault("MASTER_DB_USER", "postgres"),
		Password: getEnvWithDefault("MASTER_DB_PASSWORD", ""),
		DBName:   getEnvWithDefault("MASTER_DB_NAME", "erp"),
		SSLMode:  getEnvWithDefault("MASTER_DB_SSL_MODE", "disable"),
	}
}

// getConnectionPoolConfig loads connection pool configuration from environment variables
func getConnectionPoolConfig() *ConnectionPoolConfig {
	return &ConnectionPoolConfig{
		MaxOpenConns:    getEnvIntWithDefault("DB_MAX_OPEN_CONNS", 50),
		MaxIdleConns:    getEnvIntWithDefault("DB_MAX_IDLE_CONNS", 10),
		ConnMaxLifetime: getEnvDurationWithDefault("DB_CONN_MAX_LIFETIME", 1*time.Hour),
	}
}

// buildDSN creates a PostgreSQL connection string. A non-empty searchPath
// pins every connection of the pool to that schema, so a handle opened for
// one tenant can never observe another tenant's tables.
func (c *DatabaseConfig) buildDSN(searchPath string) string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	if searchPath != "" {
		dsn += fmt.Sprintf(" search_path=%s", searchPath)
	}
	return dsn
}

// configureConnectionPool applies connection pool settings to the database connection
func configureConnectionPool(gormDB *gorm.DB, poolConfig *ConnectionPoolConfig) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(poolConfig.MaxOpenConns)
	sqlDB.SetMaxIdleConns(poolConfig.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(poolConfig.ConnMaxLifetime)

	return nil
}

// Opener establishes physical connections for storage targets. It satisfies
// the tenancy switcher's opener contract.
type Opener struct {
	master *DatabaseConfig
	pool   *ConnectionPoolConfig
}

func NewOpener() *Opener {
	return &Opener{
		master: getMasterConfig(),
		pool:   getConnectionPoolConfig(),
	}
}

// OpenSchema opens a pooled connection bound to one schema of the shared
// PostgreSQL database.
func (o *Opener) OpenSchema(schema string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(o.master.buildDSN(schema)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to schema %s: %w", schema, err)
	}
	if err := configureConnectionPool(db, o.pool); err != nil {
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}
	return db, nil
}

// OpenFile opens a SQLite database file, creating it when absent.
func (o *Opener) OpenFile(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database file %s: %w", path, err)
	}
	// SQLite serves one writer at a time; a single connection avoids
	// SQLITE_BUSY churn between concurrent requests of the same tenant.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// NewMasterDatabase opens the master store for the configured isolation
// strategy: the shared PostgreSQL database's master schema, or the master
// SQLite file.
func NewMasterDatabase(cfg *Config, opener *Opener) (*gorm.DB, error) {
	if cfg.TenancyStrategy == "file" {
		return opener.OpenFile(cfg.MasterDBPath)
	}
	return opener.OpenSchema(cfg.MasterSchema)
}

// CloseDatabase releases the underlying connection pool of a gorm handle.
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
