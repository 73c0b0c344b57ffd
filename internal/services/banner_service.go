package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/store"
)

// IBannerService manages the promotional banners per placement channel.
type IBannerService interface {
	// Eligible returns the banners displayable on a channel right now
	// (active and unexpired).
	Eligible(ctx context.Context, channel models.BannerChannel, now time.Time) ([]models.Banner, error)
	// All returns every banner on a channel, including inactive and expired
	// ones (back-office listing).
	All(ctx context.Context, channel models.BannerChannel) ([]models.Banner, error)
	Upsert(ctx context.Context, banner models.Banner) (models.Banner, error)
	Deactivate(ctx context.Context, channel models.BannerChannel, id string) error
}

type bannerService struct {
	store *store.Store
}

// NewBannerService creates a new BannerService.
func NewBannerService(st *store.Store) IBannerService {
	return &bannerService{store: st}
}

func (s *bannerService) Eligible(ctx context.Context, channel models.BannerChannel, now time.Time) ([]models.Banner, error) {
	if !models.ValidBannerChannel(channel) {
		return nil, ErrInvalidArgument
	}
	out := []models.Banner{}
	s.store.View(func(st *store.State) {
		for _, b := range st.Banners[channel] {
			if b.EligibleAt(now) {
				out = append(out, b)
			}
		}
	})
	return out, nil
}

func (s *bannerService) All(ctx context.Context, channel models.BannerChannel) ([]models.Banner, error) {
	if !models.ValidBannerChannel(channel) {
		return nil, ErrInvalidArgument
	}
	out := []models.Banner{}
	s.store.View(func(st *store.State) {
		out = append(out, st.Banners[channel]...)
	})
	return out, nil
}

// Upsert inserts a banner, or replaces the one with the same id on the same
// channel.
func (s *bannerService) Upsert(ctx context.Context, banner models.Banner) (models.Banner, error) {
	if !models.ValidBannerChannel(banner.Channel) {
		return models.Banner{}, ErrInvalidArgument
	}
	if banner.ID == "" {
		banner.ID = uuid.NewString()
		banner.CreatedAt = time.Now().UTC()
	}
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		list := st.Banners[banner.Channel]
		for i, b := range list {
			if b.ID == banner.ID {
				list[i] = banner
				st.Banners[banner.Channel] = list
				return []store.CollectionKey{store.BannerKey(banner.Channel)}
			}
		}
		st.Banners[banner.Channel] = append(list, banner)
		return []store.CollectionKey{store.BannerKey(banner.Channel)}
	})
	return banner, nil
}

func (s *bannerService) Deactivate(ctx context.Context, channel models.BannerChannel, id string) error {
	if !models.ValidBannerChannel(channel) {
		return ErrInvalidArgument
	}
	err := ErrNotFound
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		for i, b := range st.Banners[channel] {
			if b.ID == id {
				st.Banners[channel][i].Active = false
				err = nil
				return []store.CollectionKey{store.BannerKey(channel)}
			}
		}
		return nil
	})
	return err
}
