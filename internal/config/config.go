package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServerPort         int      `json:"server_port"`
	AppEnv             string   `json:"app_env"`
	JWTSecretKey       string   `json:"jwt_secret_key"`
	JWTExpirationHours int      `json:"jwt_expiration_hours"`
	DefaultRateLimit   int      `json:"default_rate_limit"`
	GlobalRateLimit    int      `json:"global_rate_limit"`
	TenancyStrategy    string   `json:"tenancy_strategy"`
	TenantSchemaPrefix string   `json:"tenant_schema_prefix"`
	MasterSchema       string   `json:"master_schema"`
	MasterDBPath       string   `json:"master_db_path"`
	TenantDBDir        string   `json:"tenant_db_dir"`
	TenantExemptPaths  []string `json:"tenant_exempt_paths"`
}

func Load() (*Config, error) {
	serverPort, _ := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if serverPort == 0 {
		serverPort = 10000
	}

	jwtExpirationHours, _ := strconv.Atoi(os.Getenv("JWT_EXPIRATION_HOURS"))
	if jwtExpirationHours == 0 {
		jwtExpirationHours = 24
	}

	defaultRateLimit, _ := strconv.Atoi(os.Getenv("DEFAULT_RATE_LIMIT"))
	if defaultRateLimit == 0 {
		defaultRateLimit = 1000 // 1000 requests per minute per tenant
	}

	globalRateLimit, _ := strconv.Atoi(os.Getenv("GLOBAL_RATE_LIMIT"))
	if globalRateLimit == 0 {
		globalRateLimit = 10000 // 10000 requests per minute globally per IP
	}

	// Exempt paths skip tenant resolution entirely: the login surface, the
	// license administration endpoints, static assets and infrastructure
	// endpoints. Enumerated once at startup.
	exempt := strings.Split(getEnvOrDefault(
		"TENANT_EXEMPT_PATHS",
		"/api/v1/auth,/api/v1/licenses,/health,/swagger,/static,/favicon.ico",
	), ",")
	for i := range exempt {
		exempt[i] = strings.TrimSpace(exempt[i])
	}

	return &Config{
		ServerPort:         serverPort,
		AppEnv:             os.Getenv("APP_ENV"),
		JWTSecretKey:       os.Getenv("JWT_SECRET_KEY"),
		JWTExpirationHours: jwtExpirationHours,
		DefaultRateLimit:   defaultRateLimit,
		GlobalRateLimit:    globalRateLimit,
		TenancyStrategy:    getEnvOrDefault("TENANCY_STRATEGY", "schema"),
		TenantSchemaPrefix: getEnvOrDefault("TENANT_SCHEMA_PREFIX", "tenant_"),
		MasterSchema:       getEnvOrDefault("MASTER_SCHEMA", "public"),
		MasterDBPath:       getEnvOrDefault("MASTER_DB_PATH", "licenses_master.db"),
		TenantDBDir:        getEnvOrDefault("TENANT_DB_DIR", "tenant_databases"),
		TenantExemptPaths:  exempt,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
