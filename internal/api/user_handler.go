package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dedsoft/erp-api/internal/api/dto"
	"github.com/dedsoft/erp-api/internal/service"
	"github.com/dedsoft/erp-api/internal/utils"
)

//go:generate mockery --name UserService --output ../mocks
type UserService interface {
	Get(ctx context.Context, db *gorm.DB, id string) (dto.UserResponse, error)
	List(ctx context.Context, db *gorm.DB) ([]dto.UserResponse, error)
	Create(ctx context.Context, db *gorm.DB, maxUsers int, req dto.CreateUserRequest) (dto.UserResponse, error)
}

// UserHandler serves the tenant-scoped user surface. Every method reads the
// tenant store handle the tenant middleware bound to the request; there is
// no fallback to the master store.
type UserHandler struct {
	*BaseHandler
	service UserService
}

func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Me godoc
// @Summary Current user
// @Description Return the authenticated user's record from the bound tenant store
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /me [get]
func (h *UserHandler) Me(c *gin.Context) {
	ctx := h.RequestCtx(c)
	db, err := utils.GetTenantDBFromContext(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "No tenant binding"})
		return
	}
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "No authenticated user"})
		return
	}

	user, err := h.service.Get(ctx, db, userID)
	if err != nil {
		h.userError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers godoc
// @Summary List the tenant's users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Failure 401 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx := h.RequestCtx(c)
	db, err := utils.GetTenantDBFromContext(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "No tenant binding"})
		return
	}

	users, err := h.service.List(ctx, db)
	if err != nil {
		h.userError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser godoc
// @Summary Create a user in the tenant store
// @Description Add a user, refusing once the license's user limit is reached
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateUserRequest true "User object"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.Error
// @Failure 401 {object} dto.Error
// @Failure 422 {object} dto.Error
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx := h.RequestCtx(c)
	db, err := utils.GetTenantDBFromContext(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "No tenant binding"})
		return
	}
	snapshot, err := utils.GetLicenseSnapshotFromContext(ctx)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "No license snapshot"})
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	user, err := h.service.Create(ctx, db, snapshot.MaxUsers, req)
	if err != nil {
		h.userError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetLicenseSnapshot godoc
// @Summary License status for the bound tenant
// @Description Return the read-only license snapshot published for this request
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.LicenseSnapshot
// @Failure 401 {object} dto.Error
// @Router /license [get]
func (h *UserHandler) GetLicenseSnapshot(c *gin.Context) {
	snapshot, err := utils.GetLicenseSnapshotFromContext(h.RequestCtx(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "No license snapshot"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *UserHandler) userError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
	case errors.Is(err, service.ErrMaxUsersReached):
		c.JSON(http.StatusUnprocessableEntity, dto.Error{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
	}
}
