package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/store"
	"github.com/weslymega/testefeirastudio-sub000/internal/views"
)

// IListingService defines the listing-side mutation handlers and the derived
// views the front-end consumes.
type IListingService interface {
	CreateOrUpdate(ctx context.Context, draft models.Listing) (models.Listing, error)
	Delete(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (added bool, err error)
	ToggleFairPresence(ctx context.Context, id string, now time.Time) error

	Owned(ctx context.Context) []models.Listing
	Favorites(ctx context.Context) []models.Listing
	Pool(ctx context.Context) []models.Listing
	FeaturedListings(ctx context.Context) []models.Listing
	FairListings(ctx context.Context, now time.Time) []models.Listing
	FindByID(ctx context.Context, id string) (models.Listing, error)
}

// listingService implements IListingService on top of the state store. The
// curated collections are static seed data merged into views at read time.
type listingService struct {
	store *store.Store
}

// NewListingService creates a new ListingService.
func NewListingService(st *store.Store) IListingService {
	return &listingService{store: st}
}

// CreateOrUpdate inserts a composed wizard record, or merges it onto the
// existing owned listing with the same id. Either way the result re-enters
// moderation: status is always reset to Pending, even when the previous
// status was Active. The cover image is recomputed from the first image.
func (s *listingService) CreateOrUpdate(ctx context.Context, draft models.Listing) (models.Listing, error) {
	now := time.Now().UTC()
	if draft.ID == "" {
		draft.ID = uuid.NewString()
		draft.CreatedAt = now
	}
	draft.Status = models.StatusPending
	draft.UpdatedAt = now
	draft.RecomputeCover()

	var saved models.Listing
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		draft.OwnerID = st.User.ID
		if draft.OwnerName == "" {
			draft.OwnerName = st.User.Name
		}
		for i, existing := range st.Owned {
			if existing.ID == draft.ID {
				draft.CreatedAt = existing.CreatedAt
				st.Owned[i] = draft
				saved = draft
				return []store.CollectionKey{store.KeyOwnedListings}
			}
		}
		st.Owned = append([]models.Listing{draft}, st.Owned...)
		saved = draft
		return []store.CollectionKey{store.KeyOwnedListings}
	})
	return saved, nil
}

// Delete removes a listing from the owned set. Favorites are deliberately
// not cascaded: a favorite may keep referencing a deleted listing.
func (s *listingService) Delete(ctx context.Context, id string) error {
	err := ErrNotFound
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		for i, l := range st.Owned {
			if l.ID == id {
				st.Owned = append(st.Owned[:i], st.Owned[i+1:]...)
				err = nil
				return []store.CollectionKey{store.KeyOwnedListings}
			}
		}
		return nil
	})
	return err
}

// ToggleFavorite adds the listing to favorites if absent, removes it if
// present. Keyed by id; the stored value is a snapshot of the listing.
func (s *listingService) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	var added bool
	err := ErrNotFound
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		for i, fav := range st.Favorites {
			if fav.ID == id {
				st.Favorites = append(st.Favorites[:i], st.Favorites[i+1:]...)
				added, err = false, nil
				return []store.CollectionKey{store.KeyFavorites}
			}
		}
		pool := views.GlobalPool(st.Owned, models.SeedFeaturedListings(), models.SeedPopularListings())
		listing, ok := views.LookupListing(pool, id)
		if !ok {
			return nil
		}
		st.Favorites = append(st.Favorites, listing)
		added, err = true, nil
		return []store.CollectionKey{store.KeyFavorites}
	})
	return added, err
}

// ToggleFairPresence flips the fair flag on an owned listing. Activation is
// only allowed while the global fair mode is on and stamps a 6-hour expiry;
// deactivation stamps an already-expired sentinel.
func (s *listingService) ToggleFairPresence(ctx context.Context, id string, now time.Time) error {
	err := ErrNotFound
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		if !st.FairMode {
			err = ErrFairModeDisabled
			return nil
		}
		for i, l := range st.Owned {
			if l.ID != id {
				continue
			}
			if l.Fair != nil && l.Fair.Active {
				st.Owned[i].Fair = &models.FairPresence{Active: false, ExpiresAt: now}
			} else {
				st.Owned[i].Fair = &models.FairPresence{Active: true, ExpiresAt: now.Add(models.FairPresenceTTL)}
			}
			err = nil
			return []store.CollectionKey{store.KeyOwnedListings}
		}
		return nil
	})
	return err
}

func (s *listingService) Owned(ctx context.Context) []models.Listing {
	var out []models.Listing
	s.store.View(func(st *store.State) {
		out = append(out, st.Owned...)
	})
	return out
}

func (s *listingService) Favorites(ctx context.Context) []models.Listing {
	var out []models.Listing
	s.store.View(func(st *store.State) {
		out = append(out, st.Favorites...)
	})
	return out
}

// Pool is the global browse view: owned active listings merged with the
// curated collections, de-duplicated by id.
func (s *listingService) Pool(ctx context.Context) []models.Listing {
	var out []models.Listing
	s.store.View(func(st *store.State) {
		out = views.GlobalPool(st.Owned, models.SeedFeaturedListings(), models.SeedPopularListings())
	})
	return out
}

func (s *listingService) FeaturedListings(ctx context.Context) []models.Listing {
	var out []models.Listing
	s.store.View(func(st *store.State) {
		out = views.Featured(st.Owned, models.SeedFeaturedListings())
	})
	return out
}

// FairListings is empty while the global fair mode is off; per-listing fair
// flags are left as they are (turning the mode off does not cascade), they
// are just unreachable until the mode comes back.
func (s *listingService) FairListings(ctx context.Context, now time.Time) []models.Listing {
	out := []models.Listing{}
	s.store.View(func(st *store.State) {
		if !st.FairMode {
			return
		}
		pool := views.GlobalPool(st.Owned, models.SeedFeaturedListings(), models.SeedPopularListings())
		out = views.Fair(pool, now)
	})
	return out
}

func (s *listingService) FindByID(ctx context.Context, id string) (models.Listing, error) {
	var found models.Listing
	err := ErrNotFound
	s.store.View(func(st *store.State) {
		pool := views.GlobalPool(st.Owned, models.SeedFeaturedListings(), models.SeedPopularListings())
		if l, ok := views.LookupListing(pool, id); ok {
			found, err = l, nil
		}
	})
	return found, err
}
