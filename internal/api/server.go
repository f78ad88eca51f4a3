package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dedsoft/erp-api/internal/middleware"
)

type Server struct {
	auth       *AuthHandler
	license    *LicenseHandler
	user       *UserHandler
	authMW     *middleware.AuthMiddleware
	tenantMW   *middleware.TenantMiddleware
	rateLimit  *middleware.RateLimitMiddleware
	validation *middleware.ValidationMiddleware
}

func NewServer(
	authService AuthService,
	licenseService LicenseService,
	userService UserService,
	authMW *middleware.AuthMiddleware,
	tenantMW *middleware.TenantMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	validation *middleware.ValidationMiddleware,
) *Server {
	return &Server{
		auth:       NewAuthHandler(authService),
		license:    NewLicenseHandler(licenseService),
		user:       NewUserHandler(userService),
		authMW:     authMW,
		tenantMW:   tenantMW,
		rateLimit:  rateLimit,
		validation: validation,
	}
}

func (s *Server) SetupRoutes(api *gin.RouterGroup, globalRateLimit int) {
	// Apply security middleware first
	api.Use(s.validation.BlockSuspiciousPatterns())
	api.Use(s.validation.SanitizeInput())
	api.Use(s.validation.ValidateRequestSize(1 * 1024 * 1024)) // 1MB max
	api.Use(s.validation.ValidateContentType("application/json", "text/plain"))

	api.Use(s.rateLimit.GlobalRateLimit(globalRateLimit))

	{
		// Login and logout are exempt from tenant resolution; login is the
		// one operation that touches master and tenant store together.
		auth := api.Group("/auth")
		{
			auth.POST("/login", s.auth.Login)
			auth.POST("/logout", s.authMW.JWTAuth(), s.auth.Logout)
		}

		// License administration runs against the master registry only and
		// is likewise exempt from tenant resolution.
		licenses := api.Group("/licenses", s.authMW.JWTAuth(), s.authMW.RequireRole("admin"))
		{
			licenses.POST("", s.license.CreateLicense)
			licenses.GET("", s.license.ListLicenses)
			licenses.GET("/:key", s.license.GetLicense)
			licenses.PUT("/:key", s.license.UpdateLicense)
			licenses.DELETE("/:key", s.license.DeleteLicense)
			licenses.POST("/:key/activate", s.license.ActivateLicense)
			licenses.POST("/:key/deactivate", s.license.DeactivateLicense)
			licenses.POST("/:key/suspend", s.license.SuspendLicense)
			licenses.POST("/:key/extend", s.license.ExtendLicense)
		}

		// Everything below executes against the tenant store the tenant
		// middleware bound the request to.
		tenant := api.Group("", s.authMW.JWTAuth(), s.tenantMW.Resolve(), s.rateLimit.TenantRateLimit())
		{
			tenant.GET("/me", s.user.Me)
			tenant.GET("/license", s.user.GetLicenseSnapshot)
			tenant.GET("/users", s.user.ListUsers)
			tenant.POST("/users", s.authMW.RequireRole("admin"), s.user.CreateUser)
		}
	}
}
