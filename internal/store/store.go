package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/storage"
)

// State holds every collection the application works on. Services read and
// transform it only through a Store, never directly.
type State struct {
	User          models.User
	Owned         []models.Listing
	Favorites     []models.Listing
	Banners       map[models.BannerChannel][]models.Banner
	Notifications []models.Notification
	Reports       []models.Report
	FairMode      bool
	Maintenance   bool

	// AdminPool is the back-office moderation mock. It is seeded at load and
	// mutable, but the persisted layout has no key for it: changes are
	// ephemeral on purpose.
	AdminPool []models.Listing

	// PendingReset is the active forgot-password token, if any. Ephemeral.
	PendingReset *models.PasswordReset
}

// Store is an injectable state container with an update-and-persist
// contract: every mutation runs under one lock and flushes the collections
// it dirtied before the next mutation can start. Construct one per test;
// there is no package-level instance.
type Store struct {
	mu      sync.RWMutex
	backend storage.Backend
	state   State
}

// Open loads every collection from the backend, falling back to that
// collection's seed when its key is missing or unreadable. Open never fails:
// with an unusable backend the application runs on ephemeral seed state.
func Open(ctx context.Context, backend storage.Backend) *Store {
	s := &Store{backend: backend}
	s.state = loadState(ctx, backend)
	return s
}

func loadState(ctx context.Context, backend storage.Backend) State {
	st := seedState()
	loadKey(ctx, backend, KeyUser, &st.User)
	loadKey(ctx, backend, KeyOwnedListings, &st.Owned)
	loadKey(ctx, backend, KeyFavorites, &st.Favorites)
	for _, channel := range models.BannerChannels {
		banners := st.Banners[channel]
		loadKey(ctx, backend, BannerKey(channel), &banners)
		st.Banners[channel] = banners
	}
	loadKey(ctx, backend, KeyNotifications, &st.Notifications)
	loadKey(ctx, backend, KeyReports, &st.Reports)
	loadKey(ctx, backend, KeyFairMode, &st.FairMode)
	loadKey(ctx, backend, KeyMaintenance, &st.Maintenance)
	return st
}

// loadKey overwrites dst with the persisted value when one is readable;
// otherwise dst keeps its seed value.
func loadKey(ctx context.Context, backend storage.Backend, key CollectionKey, dst interface{}) {
	data, err := backend.Read(ctx, string(key))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("state: failed to read %s, using seed: %v", key, err)
		}
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("state: corrupt value for %s, using seed: %v", key, err)
	}
}

func seedState() State {
	banners := make(map[models.BannerChannel][]models.Banner, len(models.BannerChannels))
	for _, channel := range models.BannerChannels {
		banners[channel] = models.SeedBanners(channel)
	}
	return State{
		User:          models.SeedUser(),
		Owned:         models.SeedOwnedListings(),
		Favorites:     models.SeedFavorites(),
		Banners:       banners,
		Notifications: models.SeedNotifications(),
		Reports:       models.SeedReports(),
		FairMode:      models.SeedFairMode,
		Maintenance:   models.SeedMaintenance,
		AdminPool:     models.SeedAdminListings(),
	}
}

// View runs fn with read access to the state. fn must not retain or mutate
// anything it is handed.
func (s *Store) View(fn func(*State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.state)
}

// Mutate runs fn with write access to the state, then persists the
// collections fn reports dirty. Returning no keys skips persistence, which
// is how handlers implement invalid-args-as-no-op. Persistence failures are
// logged, not propagated: the application stays usable on ephemeral state.
func (s *Store) Mutate(ctx context.Context, fn func(*State) []CollectionKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dirty := fn(&s.state)
	for _, key := range dirty {
		s.persistLocked(ctx, key)
	}
}

// Reset restores every collection to its seed and clears the backend.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = seedState()
	if err := s.backend.Reset(ctx); err != nil {
		log.Printf("state: failed to clear persisted storage on reset: %v", err)
	}
}

func (s *Store) persistLocked(ctx context.Context, key CollectionKey) {
	var value interface{}
	switch key {
	case KeyUser:
		value = s.state.User
	case KeyOwnedListings:
		value = s.state.Owned
	case KeyFavorites:
		value = s.state.Favorites
	case KeyBannersDashboard:
		value = s.state.Banners[models.ChannelDashboard]
	case KeyBannersVehicles:
		value = s.state.Banners[models.ChannelVehicles]
	case KeyBannersRealEst:
		value = s.state.Banners[models.ChannelRealEstate]
	case KeyBannersParts:
		value = s.state.Banners[models.ChannelParts]
	case KeyNotifications:
		value = s.state.Notifications
	case KeyReports:
		value = s.state.Reports
	case KeyFairMode:
		value = s.state.FairMode
	case KeyMaintenance:
		value = s.state.Maintenance
	default:
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("state: failed to serialize %s: %v", key, err)
		return
	}
	if err := s.backend.Write(ctx, string(key), data); err != nil {
		log.Printf("state: failed to persist %s: %v", key, err)
	}
}
