package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/dedsoft/erp-api/docs"
	"github.com/dedsoft/erp-api/internal/api"
	"github.com/dedsoft/erp-api/internal/config"
	"github.com/dedsoft/erp-api/internal/domain"
	"github.com/dedsoft/erp-api/internal/middleware"
	"github.com/dedsoft/erp-api/internal/repository"
	"github.com/dedsoft/erp-api/internal/repository/sqldb"
	"github.com/dedsoft/erp-api/internal/service"
	"github.com/dedsoft/erp-api/internal/session"
	"github.com/dedsoft/erp-api/internal/tenancy"
	"github.com/dedsoft/erp-api/pkg/logger"
)

// @title           ERP Tenant Swagger API
// @version         1.0
// @description     Multi-tenant ERP license and tenant management server.

// @host      localhost:10000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @externalDocs.description  OpenAPI
// @externalDocs.url          https://swagger.io/resources/open-api/
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	opener := config.NewOpener()
	masterDB, err := config.NewMasterDatabase(cfg, opener)
	if err != nil {
		appLogger.Fatal("Failed to connect to master database", err)
	}
	defer config.CloseDatabase(masterDB)

	// The master registry owns the licenses table; tenant stores never do.
	if err := masterDB.AutoMigrate(&domain.License{}); err != nil {
		appLogger.Fatal("Failed to migrate master database", err)
	}

	appLogger.Info("Master database connection established")

	// Initialize Redis
	redisConfig := config.DefaultRedisConfig()
	redisClient, err := redisConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	// Tenancy core: locator maps license keys to storage targets, switcher
	// hands out per-tenant handles, provisioner creates and seeds stores.
	locator := tenancy.NewLocator(tenancy.LocatorConfig{
		Strategy:     tenancy.Strategy(cfg.TenancyStrategy),
		SchemaPrefix: cfg.TenantSchemaPrefix,
		TenantsDir:   cfg.TenantDBDir,
		MasterSchema: cfg.MasterSchema,
		MasterPath:   cfg.MasterDBPath,
	})
	switcher := tenancy.NewSwitcher(locator, masterDB, opener)
	defer switcher.Close()

	bundle := tenancy.CoreBundle()
	provisioner := tenancy.NewProvisioner(locator, switcher, appLogger)

	// Repositories and session store
	licenseRepo := sqldb.NewLicenseRepository(masterDB)
	userRepoFactory := repository.UserRepositoryFactory(sqldb.NewUserRepository)
	sessionStore := session.NewStore(redisClient, time.Duration(cfg.JWTExpirationHours)*time.Hour)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg)
	tenantMiddleware := middleware.NewTenantMiddleware(
		cfg.TenantExemptPaths,
		sessionStore,
		licenseRepo,
		locator,
		switcher,
		appLogger,
	)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(redisClient, cfg, appLogger)
	validationMiddleware := middleware.NewValidationMiddleware(appLogger)

	// Initialize services
	authService := service.NewAuthService(
		licenseRepo,
		provisioner,
		locator,
		switcher,
		bundle,
		userRepoFactory,
		sessionStore,
		authMiddleware,
		appLogger,
	)
	licenseService := service.NewLicenseService(licenseRepo, provisioner, appLogger)
	userService := service.NewUserService(userRepoFactory, appLogger)

	// Initialize server
	server := api.NewServer(
		authService,
		licenseService,
		userService,
		authMiddleware,
		tenantMiddleware,
		rateLimitMiddleware,
		validationMiddleware,
	)

	// Initialize router
	router := gin.Default()

	// Swagger documentation endpoint
	docs.SwaggerInfo.Title = "ERP Tenant API"
	docs.SwaggerInfo.Description = "Multi-tenant ERP license and tenant management server"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.ServerPort)
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Swagger UI endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		if sqlDB, err := masterDB.DB(); err != nil || sqlDB.Ping() != nil {
			status["status"] = "degraded"
			status["master_db"] = "unreachable"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	})

	// Setup API routes
	apiGroup := router.Group("/api/v1")
	server.SetupRoutes(apiGroup, cfg.GlobalRateLimit)

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	// Shutdown the HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server exiting")
	appLogger.Sync()
}
