package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/storage"
)

func newFileBackend(t *testing.T) *storage.FileBackend {
	t.Helper()
	backend, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return backend
}

func TestOpenFallsBackToSeedOnEmptyBackend(t *testing.T) {
	st := Open(context.Background(), newFileBackend(t))

	st.View(func(s *State) {
		assert.Equal(t, models.SeedUser().ID, s.User.ID)
		assert.Len(t, s.Owned, len(models.SeedOwnedListings()))
		assert.Empty(t, s.Favorites)
		assert.False(t, s.FairMode)
		assert.False(t, s.Maintenance)
		assert.NotEmpty(t, s.AdminPool)
		for _, channel := range models.BannerChannels {
			assert.NotEmpty(t, s.Banners[channel], channel)
		}
	})
}

func TestMutatePersistsDirtyKeysAcrossReopen(t *testing.T) {
	backend := newFileBackend(t)
	ctx := context.Background()

	st := Open(ctx, backend)
	st.Mutate(ctx, func(s *State) []CollectionKey {
		s.FairMode = true
		s.User.Name = "Novo Nome"
		return []CollectionKey{KeyFairMode, KeyUser}
	})

	reopened := Open(ctx, backend)
	reopened.View(func(s *State) {
		assert.True(t, s.FairMode)
		assert.Equal(t, "Novo Nome", s.User.Name)
	})
}

func TestMutateWithoutDirtyKeysSkipsPersistence(t *testing.T) {
	backend := newFileBackend(t)
	ctx := context.Background()

	st := Open(ctx, backend)
	st.Mutate(ctx, func(s *State) []CollectionKey {
		s.FairMode = true
		return nil
	})

	reopened := Open(ctx, backend)
	reopened.View(func(s *State) {
		assert.False(t, s.FairMode, "undeclared change must not be flushed")
	})
}

func TestCorruptKeyFallsBackWithoutAffectingOthers(t *testing.T) {
	backend := newFileBackend(t)
	ctx := context.Background()

	// Persist a real value for one key, garbage for another.
	st := Open(ctx, backend)
	st.Mutate(ctx, func(s *State) []CollectionKey {
		s.Maintenance = true
		return []CollectionKey{KeyMaintenance}
	})
	require.NoError(t, backend.Write(ctx, string(KeyOwnedListings), []byte("{not json")))

	reopened := Open(ctx, backend)
	reopened.View(func(s *State) {
		assert.Len(t, s.Owned, len(models.SeedOwnedListings()), "corrupt key falls back to seed")
		assert.True(t, s.Maintenance, "healthy keys are unaffected")
	})
}

func TestListingDetailsSurviveStoreRoundTrip(t *testing.T) {
	backend := newFileBackend(t)
	ctx := context.Background()

	st := Open(ctx, backend)
	st.Mutate(ctx, func(s *State) []CollectionKey {
		s.Owned = append(s.Owned, models.Listing{
			ID:       "rt1",
			Title:    "Corsa Sedan",
			Status:   models.StatusActive,
			Category: models.CategoryVehicle,
			Details:  models.VehicleDetails{Brand: "Chevrolet", Model: "Corsa", Year: 2009},
		})
		return []CollectionKey{KeyOwnedListings}
	})

	reopened := Open(ctx, backend)
	reopened.View(func(s *State) {
		var found *models.Listing
		for i := range s.Owned {
			if s.Owned[i].ID == "rt1" {
				found = &s.Owned[i]
			}
		}
		require.NotNil(t, found)
		details, ok := found.Details.(models.VehicleDetails)
		require.True(t, ok)
		assert.Equal(t, "Chevrolet", details.Brand)
	})
}

func TestResetRestoresSeedsAndClearsBackend(t *testing.T) {
	backend := newFileBackend(t)
	ctx := context.Background()

	st := Open(ctx, backend)
	st.Mutate(ctx, func(s *State) []CollectionKey {
		s.FairMode = true
		s.Owned = nil
		return []CollectionKey{KeyFairMode, KeyOwnedListings}
	})

	st.Reset(ctx)

	st.View(func(s *State) {
		assert.False(t, s.FairMode)
		assert.Len(t, s.Owned, len(models.SeedOwnedListings()))
	})

	// The backend was wiped too: a fresh Open sees only seeds.
	reopened := Open(ctx, backend)
	reopened.View(func(s *State) {
		assert.False(t, s.FairMode)
		assert.Len(t, s.Owned, len(models.SeedOwnedListings()))
	})
}

func TestBannerKeyCoversEveryChannel(t *testing.T) {
	for _, channel := range models.BannerChannels {
		assert.NotEmpty(t, BannerKey(channel), channel)
	}
	assert.Empty(t, BannerKey(models.BannerChannel("nope")))
}
