package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dedsoft/erp-api/internal/api/dto"
	"github.com/dedsoft/erp-api/internal/service"
	"github.com/dedsoft/erp-api/internal/tenancy"
)

//go:generate mockery --name LicenseService --output ../mocks
type LicenseService interface {
	Create(ctx context.Context, req dto.CreateLicenseRequest) (dto.LicenseResponse, error)
	Get(ctx context.Context, key string) (dto.LicenseResponse, error)
	List(ctx context.Context) ([]dto.LicenseResponse, error)
	Update(ctx context.Context, key string, req dto.UpdateLicenseRequest) (dto.LicenseResponse, error)
	Activate(ctx context.Context, key string) (dto.LicenseResponse, error)
	Deactivate(ctx context.Context, key string) (dto.LicenseResponse, error)
	Suspend(ctx context.Context, key, reason string) (dto.LicenseResponse, error)
	Extend(ctx context.Context, key string, days int) (dto.LicenseResponse, error)
	Delete(ctx context.Context, key string) error
}

// LicenseHandler exposes the license administration surface. These routes
// are exempt from tenant resolution and operate on the master registry only.
type LicenseHandler struct {
	*BaseHandler
	service LicenseService
}

func NewLicenseHandler(service LicenseService) *LicenseHandler {
	return &LicenseHandler{service: service}
}

// CreateLicense godoc
// @Summary Create a license
// @Description Register a new license with its admin seed credentials
// @Tags licenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateLicenseRequest true "License object"
// @Success 201 {object} dto.LicenseResponse
// @Failure 400 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router /licenses [post]
func (h *LicenseHandler) CreateLicense(c *gin.Context) {
	var req dto.CreateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	lic, err := h.service.Create(h.RequestCtx(c), req)
	if err != nil {
		h.licenseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lic)
}

// ListLicenses godoc
// @Summary List all licenses
// @Tags licenses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.LicenseResponse
// @Failure 500 {object} dto.Error
// @Router /licenses [get]
func (h *LicenseHandler) ListLicenses(c *gin.Context) {
	licenses, err := h.service.List(h.RequestCtx(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, licenses)
}

// GetLicense godoc
// @Summary Get one license
// @Tags licenses
// @Produce json
// @Security BearerAuth
// @Param key path string true "License key"
// @Success 200 {object} dto.LicenseResponse
// @Failure 404 {object} dto.Error
// @Router /licenses/{key} [get]
func (h *LicenseHandler) GetLicense(c *gin.Context) {
	lic, err := h.service.Get(h.RequestCtx(c), c.Param("key"))
	if err != nil {
		h.licenseError(c, err)
		return
	}
	c.JSON(http.StatusOK, lic)
}

// UpdateLicense godoc
// @Summary Update license metadata
// @Description Update contact details and the user limit; the license key itself is immutable
// @Tags licenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "License key"
// @Param body body dto.UpdateLicenseRequest true "Fields to update"
// @Success 200 {object} dto.LicenseResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /licenses/{key} [put]
func (h *LicenseHandler) UpdateLicense(c *gin.Context) {
	var req dto.UpdateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	lic, err := h.service.Update(h.RequestCtx(c), c.Param("key"), req)
	if err != nil {
		h.licenseError(c, err)
		return
	}
	c.JSON(http.StatusOK, lic)
}

// ActivateLicense godoc
// @Summary Activate a license
// @Description Enable the license and clear any suspension
// @Tags licenses
// @Produce json
// @Security BearerAuth
// @Param key path string true "License key"
// @Success 200 {object} dto.LicenseResponse
// @Failure 404 {object} dto.Error
// @Router /licenses/{key}/activate [post]
func (h *LicenseHandler) ActivateLicense(c *gin.Context) {
	lic, err := h.service.Activate(h.RequestCtx(c), c.Param("key"))
	if err != nil {
		h.licenseError(c, err)
		return
	}
	c.JSON(http.StatusOK, lic)
}

// DeactivateLicense godoc
// @Summary Deactivate a license
// @Tags licenses
// @Produce json
// @Security BearerAuth
// @Param key path string true "License key"
// @Success 200 {object} dto.LicenseResponse
// @Failure 404 {object} dto.Error
// @Router /licenses/{key}/deactivate [post]
func (h *LicenseHandler) DeactivateLicense(c *gin.Context) {
	lic, err := h.service.Deactivate(h.RequestCtx(c), c.Param("key"))
	if err != nil {
		h.licenseError(c, err)
		return
	}
	c.JSON(http.StatusOK, lic)
}

// SuspendLicense godoc
// @Summary Suspend a license
// @Tags licenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "License key"
// @Param body body dto.SuspendLicenseRequest true "Suspension reason"
// @Success 200 {object} dto.LicenseResponse
// @Failure 404 {object} dto.Error
// @Router /licenses/{key}/suspend [post]
func (h *LicenseHandler) SuspendLicense(c *gin.Context) {
	var req dto.SuspendLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	lic, err := h.service.Suspend(h.RequestCtx(c), c.Param("key"), req.Reason)
	if err != nil {
		h.licenseError(c, err)
		return
	}
	c.JSON(http.StatusOK, lic)
}

// ExtendLicense godoc
// @Summary Extend a license
// @Description Push the expiry out by a number of days
// @Tags licenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "License key"
// @Param body body dto.ExtendLicenseRequest true "Extension length"
// @Success 200 {object} dto.LicenseResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /licenses/{key}/extend [post]
func (h *LicenseHandler) ExtendLicense(c *gin.Context) {
	var req dto.ExtendLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	lic, err := h.service.Extend(h.RequestCtx(c), c.Param("key"), req.Days)
	if err != nil {
		h.licenseError(c, err)
		return
	}
	c.JSON(http.StatusOK, lic)
}

// DeleteLicense godoc
// @Summary Delete a license
// @Description Remove the license record and drop the tenant's storage target
// @Tags licenses
// @Produce json
// @Security BearerAuth
// @Param key path string true "License key"
// @Success 200 {object} map[string]string
// @Failure 404 {object} dto.Error
// @Failure 500 {object} dto.Error
// @Router /licenses/{key} [delete]
func (h *LicenseHandler) DeleteLicense(c *gin.Context) {
	if err := h.service.Delete(h.RequestCtx(c), c.Param("key")); err != nil {
		h.licenseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *LicenseHandler) licenseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLicenseNotFound):
		c.JSON(http.StatusNotFound, dto.Error{Error: err.Error()})
	case errors.Is(err, service.ErrLicenseExists):
		c.JSON(http.StatusConflict, dto.Error{Error: err.Error()})
	case errors.Is(err, service.ErrLicenseRekeyUnsupported),
		errors.Is(err, tenancy.ErrInvalidLicenseKey):
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.Error{Error: err.Error()})
	}
}
