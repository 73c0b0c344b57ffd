package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/storage"
	"github.com/weslymega/testefeirastudio-sub000/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	backend, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return store.Open(context.Background(), backend)
}

func TestCreateOrUpdateNewListingGoesToPending(t *testing.T) {
	st := newTestStore(t)
	svc := NewListingService(st)
	ctx := context.Background()

	saved, err := svc.CreateOrUpdate(ctx, models.Listing{
		Title:    "Palio Fire 2010",
		Price:    18000,
		Category: models.CategoryVehicle,
		Images:   []string{"a.jpg", "b.jpg"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, models.StatusPending, saved.Status)
	assert.Equal(t, "u-demo", saved.OwnerID)
	assert.Equal(t, "a.jpg", saved.Image, "cover comes from the first image")

	owned := svc.Owned(ctx)
	require.NotEmpty(t, owned)
	assert.Equal(t, saved.ID, owned[0].ID, "new listings are prepended")
}

func TestCreateOrUpdateResubmissionResetsToPending(t *testing.T) {
	st := newTestStore(t)
	svc := NewListingService(st)
	ctx := context.Background()

	// Seed own1 starts active; an edit must re-enter moderation.
	existing, err := svc.FindByID(ctx, "own1")
	require.NoError(t, err)
	require.Equal(t, models.StatusActive, existing.Status)

	existing.Title = "Fiat Argo Drive 1.0 2021 - baixou"
	saved, err := svc.CreateOrUpdate(ctx, existing)
	require.NoError(t, err)

	assert.Equal(t, "own1", saved.ID)
	assert.Equal(t, models.StatusPending, saved.Status)
	assert.Equal(t, existing.CreatedAt, saved.CreatedAt, "creation time survives edits")

	owned := svc.Owned(ctx)
	count := 0
	for _, l := range owned {
		if l.ID == "own1" {
			count++
		}
	}
	assert.Equal(t, 1, count, "edit must not duplicate the listing")
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	st := newTestStore(t)
	svc := NewListingService(st)
	ctx := context.Background()

	added, err := svc.ToggleFavorite(ctx, "pop1")
	require.NoError(t, err)
	assert.True(t, added)
	require.Len(t, svc.Favorites(ctx), 1)

	added, err = svc.ToggleFavorite(ctx, "pop1")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, svc.Favorites(ctx))
}

func TestToggleFavoriteUnknownListing(t *testing.T) {
	svc := NewListingService(newTestStore(t))

	_, err := svc.ToggleFavorite(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteDoesNotCascadeFavorites(t *testing.T) {
	st := newTestStore(t)
	svc := NewListingService(st)
	ctx := context.Background()

	_, err := svc.ToggleFavorite(ctx, "own1")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "own1"))

	_, err = svc.FindByID(ctx, "own1")
	assert.ErrorIs(t, err, ErrNotFound)
	// The favorite snapshot stays behind.
	favs := svc.Favorites(ctx)
	require.Len(t, favs, 1)
	assert.Equal(t, "own1", favs[0].ID)
}

func TestDeleteUnknownListing(t *testing.T) {
	svc := NewListingService(newTestStore(t))
	assert.ErrorIs(t, svc.Delete(context.Background(), "ghost"), ErrNotFound)
}

func TestToggleFairPresenceRequiresFairMode(t *testing.T) {
	st := newTestStore(t)
	svc := NewListingService(st)
	ctx := context.Background()
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	err := svc.ToggleFairPresence(ctx, "own1", now)
	assert.ErrorIs(t, err, ErrFairModeDisabled)

	st.Mutate(ctx, func(s *store.State) []store.CollectionKey {
		s.FairMode = true
		return []store.CollectionKey{store.KeyFairMode}
	})

	require.NoError(t, svc.ToggleFairPresence(ctx, "own1", now))

	fair := svc.FairListings(ctx, now)
	require.Len(t, fair, 1)
	assert.Equal(t, "own1", fair[0].ID)
	assert.Equal(t, now.Add(models.FairPresenceTTL), fair[0].Fair.ExpiresAt)

	// Second toggle deactivates.
	require.NoError(t, svc.ToggleFairPresence(ctx, "own1", now))
	assert.Empty(t, svc.FairListings(ctx, now))
}

func TestFairListingsEmptyWhileModeOff(t *testing.T) {
	st := newTestStore(t)
	svc := NewListingService(st)
	ctx := context.Background()
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	st.Mutate(ctx, func(s *store.State) []store.CollectionKey {
		s.FairMode = true
		return nil
	})
	require.NoError(t, svc.ToggleFairPresence(ctx, "own1", now))

	st.Mutate(ctx, func(s *store.State) []store.CollectionKey {
		s.FairMode = false
		return nil
	})

	assert.Empty(t, svc.FairListings(ctx, now), "fair view hides entries while mode is off")

	// Flag on the listing is untouched; flipping the mode back restores it.
	st.Mutate(ctx, func(s *store.State) []store.CollectionKey {
		s.FairMode = true
		return nil
	})
	assert.Len(t, svc.FairListings(ctx, now), 1)
}

func TestPoolMergesCuratedCollections(t *testing.T) {
	svc := NewListingService(newTestStore(t))

	pool := svc.Pool(context.Background())

	ids := map[string]bool{}
	for _, l := range pool {
		assert.Equal(t, models.StatusActive, l.Status)
		ids[l.ID] = true
	}
	assert.True(t, ids["own1"])
	assert.False(t, ids["own2"], "pending owned listing stays out of the pool")
	assert.True(t, ids["feat1"])
	assert.True(t, ids["pop1"])
}
