package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weslymega/testefeirastudio-sub000/internal/config"
	"github.com/weslymega/testefeirastudio-sub000/internal/services"
	"github.com/weslymega/testefeirastudio-sub000/internal/tasks"
)

// EnquiryHandler accepts buyer messages and schedules the simulated seller
// reply.
type EnquiryHandler struct {
	cfg        *config.Config
	enquiries  services.IEnquiryService
	listings   services.IListingService
	taskClient tasks.Enqueuer
}

// NewEnquiryHandler creates a new EnquiryHandler.
func NewEnquiryHandler(cfg *config.Config, enquiries services.IEnquiryService, listings services.IListingService, taskClient tasks.Enqueuer) *EnquiryHandler {
	return &EnquiryHandler{cfg: cfg, enquiries: enquiries, listings: listings, taskClient: taskClient}
}

type sendEnquiryRequest struct {
	Message string `json:"message" binding:"required"`
}

// SendEnquiry handles POST /v1/listings/:id/enquiry
func (h *EnquiryHandler) SendEnquiry(c *gin.Context) {
	var req sendEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	listingID := c.Param("id")
	sent, err := h.enquiries.SendEnquiry(c.Request.Context(), listingID, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
		return
	}

	// Schedule the simulated seller response. Losing it is acceptable; the
	// enquiry itself already went through.
	if h.taskClient != nil {
		listing, lookupErr := h.listings.FindByID(c.Request.Context(), listingID)
		if lookupErr == nil {
			task, buildErr := tasks.NewEnquiryAutoReplyTask(listing.ID, listing.Title, listing.OwnerName, h.cfg.EnquiryAutoReplyDelay)
			if buildErr == nil {
				if _, enqErr := h.taskClient.EnqueueContext(c.Request.Context(), task); enqErr != nil {
					log.Printf("Failed to enqueue enquiry auto-reply for listing %s: %v", listing.ID, enqErr)
				}
			}
		}
	}

	c.JSON(http.StatusCreated, sent)
}
