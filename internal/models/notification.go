package models

import "time"

// NotificationType distinguishes chat messages from system events.
type NotificationType string

const (
	NotificationChat   NotificationType = "chat"
	NotificationSystem NotificationType = "system"
)

// Notification is a simple read/unread record created by mutation handlers
// (moderation decisions, enquiries), never by listings themselves.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	ListingID string           `json:"listing_id,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
