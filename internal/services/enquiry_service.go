package services

import (
	"context"
	"fmt"

	"github.com/weslymega/testefeirastudio-sub000/internal/models"
)

// IEnquiryService handles buyer messages to sellers. Messaging here is
// simulated: an enquiry produces a chat notification immediately and the
// caller schedules the delayed auto-reply task.
type IEnquiryService interface {
	SendEnquiry(ctx context.Context, listingID, message string) (models.Notification, error)
}

type enquiryService struct {
	listings      IListingService
	notifications INotificationService
}

// NewEnquiryService creates a new EnquiryService.
func NewEnquiryService(listings IListingService, notifications INotificationService) IEnquiryService {
	return &enquiryService{listings: listings, notifications: notifications}
}

func (s *enquiryService) SendEnquiry(ctx context.Context, listingID, message string) (models.Notification, error) {
	if message == "" {
		return models.Notification{}, ErrInvalidArgument
	}
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return models.Notification{}, err
	}
	n := s.notifications.Add(ctx, models.Notification{
		Type:      models.NotificationChat,
		Title:     fmt.Sprintf("Mensagem enviada para %s", listing.OwnerName),
		Body:      message,
		ListingID: listing.ID,
	})
	return n, nil
}
