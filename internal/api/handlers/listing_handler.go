package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weslymega/testefeirastudio-sub000/internal/api/middleware"
	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/services"
)

// ListingHandler exposes the listing views and the listing-side mutation
// endpoints (submit, delete, favorite, fair presence, reports).
type ListingHandler struct {
	listings   services.IListingService
	moderation services.IModerationService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listings services.IListingService, moderation services.IModerationService) *ListingHandler {
	return &ListingHandler{listings: listings, moderation: moderation}
}

// GetPool handles GET /v1/listings
func (h *ListingHandler) GetPool(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.listings.Pool(c.Request.Context())})
}

// GetFeatured handles GET /v1/listings/featured
func (h *ListingHandler) GetFeatured(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.listings.FeaturedListings(c.Request.Context())})
}

// GetFair handles GET /v1/listings/fair
func (h *ListingHandler) GetFair(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.listings.FairListings(c.Request.Context(), time.Now().UTC())})
}

// GetListingByID handles GET /v1/listings/:id
func (h *ListingHandler) GetListingByID(c *gin.Context) {
	listing, err := h.listings.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// GetOwned handles GET /v1/me/listings
func (h *ListingHandler) GetOwned(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.listings.Owned(c.Request.Context())})
}

// GetFavorites handles GET /v1/me/favorites
func (h *ListingHandler) GetFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.listings.Favorites(c.Request.Context())})
}

// SubmitListing handles POST /v1/listings. It accepts the composed record
// (new or edited) and always re-enters moderation as Pending.
func (h *ListingHandler) SubmitListing(c *gin.Context) {
	var draft models.Listing
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing payload"})
		return
	}
	if draft.Title == "" || draft.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required and price cannot be negative"})
		return
	}
	saved, err := h.listings.CreateOrUpdate(c.Request.Context(), draft)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save listing"})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// DeleteListing handles DELETE /v1/listings/:id
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	if err := h.listings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleFavorite handles POST /v1/listings/:id/favorite
func (h *ListingHandler) ToggleFavorite(c *gin.Context) {
	added, err := h.listings.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": added})
}

// ToggleFairPresence handles POST /v1/listings/:id/fair
func (h *ListingHandler) ToggleFairPresence(c *gin.Context) {
	err := h.listings.ToggleFairPresence(c.Request.Context(), c.Param("id"), time.Now().UTC())
	if err != nil {
		if errors.Is(err, services.ErrFairModeDisabled) {
			c.JSON(http.StatusConflict, gin.H{"error": "Fair mode is not active"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fair presence updated"})
}

type createReportRequest struct {
	Target   models.ReportTarget   `json:"target" binding:"required"`
	TargetID string                `json:"target_id" binding:"required"`
	Reason   string                `json:"reason" binding:"required"`
	Severity models.ReportSeverity `json:"severity"`
}

// CreateReport handles POST /v1/reports. Any authenticated viewer can file
// one; review happens in the back office.
func (h *ListingHandler) CreateReport(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Severity == "" {
		req.Severity = models.SeverityLow
	}

	report := models.Report{
		Target:     req.Target,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
		Severity:   req.Severity,
		ReporterID: c.GetString(middleware.ContextKeyUserID),
	}
	// Cache the target's name and image so the report survives the target
	// disappearing from the pool.
	if req.Target == models.ReportTargetListing {
		if listing, err := h.listings.FindByID(c.Request.Context(), req.TargetID); err == nil {
			report.TargetName = listing.Title
			report.TargetImage = listing.Image
		}
	}

	c.JSON(http.StatusCreated, h.moderation.AddReport(c.Request.Context(), report))
}
