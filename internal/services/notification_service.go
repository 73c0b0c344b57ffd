package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/store"
)

// INotificationService manages the read/unread notification feed.
type INotificationService interface {
	Add(ctx context.Context, n models.Notification) models.Notification
	List(ctx context.Context) []models.Notification
	UnreadCount(ctx context.Context) int
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context)
}

type notificationService struct {
	store *store.Store
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(st *store.Store) INotificationService {
	return &notificationService{store: st}
}

// Add prepends a notification so the feed stays newest-first.
func (s *notificationService) Add(ctx context.Context, n models.Notification) models.Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	n.Read = false
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		st.Notifications = append([]models.Notification{n}, st.Notifications...)
		return []store.CollectionKey{store.KeyNotifications}
	})
	return n
}

func (s *notificationService) List(ctx context.Context) []models.Notification {
	var out []models.Notification
	s.store.View(func(st *store.State) {
		out = append(out, st.Notifications...)
	})
	return out
}

func (s *notificationService) UnreadCount(ctx context.Context) int {
	count := 0
	s.store.View(func(st *store.State) {
		for _, n := range st.Notifications {
			if !n.Read {
				count++
			}
		}
	})
	return count
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	err := ErrNotFound
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		for i, n := range st.Notifications {
			if n.ID == id {
				if st.Notifications[i].Read {
					err = nil
					return nil // already read, nothing to persist
				}
				st.Notifications[i].Read = true
				err = nil
				return []store.CollectionKey{store.KeyNotifications}
			}
		}
		return nil
	})
	return err
}

func (s *notificationService) MarkAllRead(ctx context.Context) {
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		changed := false
		for i := range st.Notifications {
			if !st.Notifications[i].Read {
				st.Notifications[i].Read = true
				changed = true
			}
		}
		if !changed {
			return nil
		}
		return []store.CollectionKey{store.KeyNotifications}
	})
}
