package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weslymega/testefeirastudio-sub000/internal/services"
)

// NotificationHandler exposes the read/unread notification feed.
type NotificationHandler struct {
	notifications services.INotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications services.INotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data":         h.notifications.List(c.Request.Context()),
		"unread_count": h.notifications.UnreadCount(c.Request.Context()),
	})
}

// MarkRead handles POST /v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notifications.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}

// MarkAllRead handles POST /v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	h.notifications.MarkAllRead(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
