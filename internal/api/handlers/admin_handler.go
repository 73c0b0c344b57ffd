package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/services"
)

// AdminHandler exposes the back-office surface: the moderation queue, report
// review, banner management, the global flags and the data reset.
type AdminHandler struct {
	moderation services.IModerationService
	banners    services.IBannerService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(moderation services.IModerationService, banners services.IBannerService) *AdminHandler {
	return &AdminHandler{moderation: moderation, banners: banners}
}

// GetModerationPool handles GET /v1/admin/listings
func (h *AdminHandler) GetModerationPool(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.moderation.Pool(c.Request.Context())})
}

type changeStatusRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

// ChangeListingStatus handles POST /v1/admin/listings/:id/status
func (h *AdminHandler) ChangeListingStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.moderation.ChangeListingStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown listing status"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

// GetReports handles GET /v1/admin/reports
func (h *AdminHandler) GetReports(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.moderation.Reports(c.Request.Context())})
}

type resolveReportRequest struct {
	Outcome models.ReportStatus `json:"outcome" binding:"required"`
}

// ResolveReport handles POST /v1/admin/reports/:id/resolve. Resolution never
// touches the reported listing or user; those are separate admin calls.
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	var req resolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.moderation.ResolveReport(c.Request.Context(), c.Param("id"), req.Outcome)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Report resolved"})
	case errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Outcome must be resolved or dismissed"})
	case errors.Is(err, services.ErrAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{"error": "Report is no longer pending"})
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
	}
}

// GetReportedListing handles GET /v1/admin/reports/:id/listing
func (h *AdminHandler) GetReportedListing(c *gin.Context) {
	listing, err := h.moderation.ReportedListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// GetBanners handles GET /v1/admin/banners/:channel (all banners, including
// inactive and expired).
func (h *AdminHandler) GetBanners(c *gin.Context) {
	banners, err := h.banners.All(c.Request.Context(), models.BannerChannel(c.Param("channel")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown banner channel"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": banners})
}

// UpsertBanner handles POST /v1/admin/banners
func (h *AdminHandler) UpsertBanner(c *gin.Context) {
	var banner models.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := h.banners.Upsert(c.Request.Context(), banner)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown banner channel"})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeactivateBanner handles DELETE /v1/admin/banners/:channel/:id
func (h *AdminHandler) DeactivateBanner(c *gin.Context) {
	err := h.banners.Deactivate(c.Request.Context(), models.BannerChannel(c.Param("channel")), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown banner channel"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetFlags handles GET /v1/admin/flags
func (h *AdminHandler) GetFlags(c *gin.Context) {
	fairMode, maintenance := h.moderation.Flags(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"fair_mode": fairMode, "maintenance": maintenance})
}

type setFlagsRequest struct {
	FairMode    *bool `json:"fair_mode"`
	Maintenance *bool `json:"maintenance"`
}

// SetFlags handles PUT /v1/admin/flags. Each flag is optional; absent flags
// are untouched.
func (h *AdminHandler) SetFlags(c *gin.Context) {
	var req setFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.FairMode != nil {
		h.moderation.SetFairMode(c.Request.Context(), *req.FairMode)
	}
	if req.Maintenance != nil {
		h.moderation.SetMaintenance(c.Request.Context(), *req.Maintenance)
	}
	fairMode, maintenance := h.moderation.Flags(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"fair_mode": fairMode, "maintenance": maintenance})
}

type suspendUserRequest struct {
	Suspended *bool `json:"suspended" binding:"required"`
}

// SuspendUser handles POST /v1/admin/users/:id/suspend
func (h *AdminHandler) SuspendUser(c *gin.Context) {
	var req suspendUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.moderation.SetUserSuspended(c.Request.Context(), c.Param("id"), *req.Suspended); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

// ResetAll handles POST /v1/admin/reset. The confirmation prompt is the
// caller's responsibility.
func (h *AdminHandler) ResetAll(c *gin.Context) {
	h.moderation.ResetAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "All data restored to defaults", "reset_at": time.Now().UTC()})
}
