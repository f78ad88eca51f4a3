package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dedsoft/erp-api/internal/api/dto"
	"github.com/dedsoft/erp-api/internal/service"
	"github.com/dedsoft/erp-api/internal/tenancy"
	"github.com/dedsoft/erp-api/internal/utils"
)

//go:generate mockery --name AuthService --output ../mocks
type AuthService interface {
	Authenticate(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
}

type AuthHandler struct {
	*BaseHandler
	service AuthService
}

func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary Log in to a tenant
// @Description Verify the license, provision the tenant store on first contact, authenticate the user inside it and bind the session to the tenant
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials and license key"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 403 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	resp, err := h.service.Authenticate(h.RequestCtx(c), req)
	if err != nil {
		h.loginError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// loginError maps the login failure taxonomy to responses. Unknown-user and
// wrong-password stay indistinguishable to the caller; the service has
// already logged the internal reason for auditing.
func (h *AuthHandler) loginError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLicenseNotFound),
		errors.Is(err, service.ErrLicenseInactive),
		errors.Is(err, service.ErrLicenseSuspended),
		errors.Is(err, service.ErrLicenseExpired):
		c.JSON(http.StatusUnauthorized, dto.Error{Error: err.Error()})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "Invalid username or password"})
	case errors.Is(err, service.ErrAccountInactive):
		c.JSON(http.StatusForbidden, dto.Error{Error: "Account is not active"})
	case errors.Is(err, service.ErrProvisioningFailed):
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "Could not prepare the tenant workspace"})
	case errors.Is(err, tenancy.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, dto.Error{Error: "Tenant store unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "Login failed"})
	}
}

// Logout godoc
// @Summary Log out
// @Description Clear the session's tenant binding
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} dto.Error
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, err := utils.GetSessionIDFromContext(h.RequestCtx(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "No session to log out"})
		return
	}
	if err := h.service.Logout(h.RequestCtx(c), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
