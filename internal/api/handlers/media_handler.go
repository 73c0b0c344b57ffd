package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weslymega/testefeirastudio-sub000/internal/api/middleware"
	"github.com/weslymega/testefeirastudio-sub000/internal/storage"
	"github.com/weslymega/testefeirastudio-sub000/internal/tasks"
)

// MediaHandler issues pre-signed upload URLs for listing images and kicks
// off their normalization once the client reports the upload done.
type MediaHandler struct {
	storage    storage.IS3Storage
	taskClient tasks.Enqueuer
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(s3storage storage.IS3Storage, taskClient tasks.Enqueuer) *MediaHandler {
	return &MediaHandler{storage: s3storage, taskClient: taskClient}
}

type presignRequest struct {
	ListingID   string `json:"listing_id" binding:"required"`
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// Presign handles POST /v1/media/presign
func (h *MediaHandler) Presign(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(middleware.ContextKeyUserID)
	url, key, err := h.storage.GeneratePresignedPutURL(c.Request.Context(), userID, req.ListingID, req.Filename, req.ContentType)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"upload_url": url, "key": key})
}

type confirmUploadRequest struct {
	Key       string `json:"key" binding:"required"`
	ListingID string `json:"listing_id" binding:"required"`
}

// ConfirmUpload handles POST /v1/media/confirm and enqueues normalization of
// the uploaded object.
func (h *MediaHandler) ConfirmUpload(c *gin.Context) {
	var req confirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := tasks.NewImageProcessTask(req.Key, req.ListingID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build processing task"})
		return
	}
	if _, err := h.taskClient.EnqueueContext(c.Request.Context(), task); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue image processing"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "Image queued for processing"})
}
