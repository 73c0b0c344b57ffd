package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/store"
	"github.com/weslymega/testefeirastudio-sub000/internal/views"
)

// IModerationService defines the admin back-office operations: the
// moderation queue, listing status decisions, the reports lifecycle and the
// global flags.
type IModerationService interface {
	Pool(ctx context.Context) []models.Listing
	ChangeListingStatus(ctx context.Context, id string, status models.Status) error

	Reports(ctx context.Context) []models.Report
	AddReport(ctx context.Context, report models.Report) models.Report
	ResolveReport(ctx context.Context, id string, outcome models.ReportStatus) error
	ReportedListing(ctx context.Context, reportID string) (models.Listing, error)

	SetFairMode(ctx context.Context, on bool)
	SetMaintenance(ctx context.Context, on bool)
	Flags(ctx context.Context) (fairMode, maintenance bool)

	SetUserSuspended(ctx context.Context, userID string, suspended bool) error
	ResetAll(ctx context.Context)
}

// moderationService implements IModerationService.
type moderationService struct {
	store *store.Store
}

// NewModerationService creates a new ModerationService.
func NewModerationService(st *store.Store) IModerationService {
	return &moderationService{store: st}
}

// Pool is the union of every known listing source, used for lookups by id
// during report review.
func (s *moderationService) Pool(ctx context.Context) []models.Listing {
	var out []models.Listing
	s.store.View(func(st *store.State) {
		out = views.ModerationPool(st.Owned, models.SeedFeaturedListings(), models.SeedPopularListings(), st.AdminPool)
	})
	return out
}

// ChangeListingStatus updates a listing's status wherever it lives (owned
// set or admin pool) and applies the transition side effects:
//
//   - Active: featured iff the listing carries a paid plan; fair presence cleared.
//   - Rejected: featured flag and fair presence cleared.
//
// A notification addressed to the listing owner is emitted for both
// moderation outcomes.
func (s *moderationService) ChangeListingStatus(ctx context.Context, id string, status models.Status) error {
	if !status.Valid() {
		return ErrInvalidArgument
	}
	now := time.Now().UTC()
	err := ErrNotFound
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		if apply(st.Owned, id, status, now) {
			err = nil
			st.Notifications = prependNotification(st.Notifications, statusNotification(st.Owned, id, status, now))
			return []store.CollectionKey{store.KeyOwnedListings, store.KeyNotifications}
		}
		if apply(st.AdminPool, id, status, now) {
			err = nil
			// The admin pool is ephemeral; only the notification persists.
			st.Notifications = prependNotification(st.Notifications, statusNotification(st.AdminPool, id, status, now))
			return []store.CollectionKey{store.KeyNotifications}
		}
		return nil
	})
	return err
}

func apply(pool []models.Listing, id string, status models.Status, now time.Time) bool {
	for i, l := range pool {
		if l.ID != id {
			continue
		}
		l.Status = status
		switch status {
		case models.StatusActive:
			l.IsFeatured = l.BoostPlan.Paid()
			l.Fair = nil
		case models.StatusRejected:
			l.IsFeatured = false
			l.Fair = nil
		}
		l.UpdatedAt = now
		pool[i] = l
		return true
	}
	return false
}

func statusNotification(pool []models.Listing, id string, status models.Status, now time.Time) models.Notification {
	title := "Anuncio atualizado"
	body := fmt.Sprintf("Status do anuncio alterado para %s.", status)
	listing, _ := views.LookupListing(pool, id)
	switch status {
	case models.StatusActive:
		title = "Anuncio aprovado"
		body = fmt.Sprintf("Seu anuncio %q foi aprovado e ja esta no ar.", listing.Title)
	case models.StatusRejected:
		title = "Anuncio recusado"
		body = fmt.Sprintf("Seu anuncio %q foi recusado pela moderacao.", listing.Title)
	}
	return models.Notification{
		ID:        uuid.NewString(),
		Type:      models.NotificationSystem,
		Title:     title,
		Body:      body,
		ListingID: id,
		CreatedAt: now,
	}
}

func prependNotification(list []models.Notification, n models.Notification) []models.Notification {
	return append([]models.Notification{n}, list...)
}

func (s *moderationService) Reports(ctx context.Context) []models.Report {
	var out []models.Report
	s.store.View(func(st *store.State) {
		out = append(out, st.Reports...)
	})
	return out
}

// AddReport prepends a new pending report. Reports are never deleted.
func (s *moderationService) AddReport(ctx context.Context, report models.Report) models.Report {
	report.ID = uuid.NewString()
	report.Status = models.ReportPending
	report.CreatedAt = time.Now().UTC()
	report.ResolvedAt = nil
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		st.Reports = append([]models.Report{report}, st.Reports...)
		return []store.CollectionKey{store.KeyReports}
	})
	return report
}

// ResolveReport terminates a pending report with an admin decision. The
// underlying listing or user is untouched; banning and deletion are separate
// handlers invoked independently by the caller.
func (s *moderationService) ResolveReport(ctx context.Context, id string, outcome models.ReportStatus) error {
	if outcome != models.ReportResolved && outcome != models.ReportDismissed {
		return ErrInvalidArgument
	}
	err := ErrNotFound
	now := time.Now().UTC()
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		for i, r := range st.Reports {
			if r.ID != id {
				continue
			}
			if r.Status != models.ReportPending {
				err = ErrAlreadyResolved
				return nil
			}
			st.Reports[i].Status = outcome
			st.Reports[i].ResolvedAt = &now
			err = nil
			return []store.CollectionKey{store.KeyReports}
		}
		return nil
	})
	return err
}

// ReportedListing resolves a report's target, falling back to a placeholder
// built from the cached target name and image.
func (s *moderationService) ReportedListing(ctx context.Context, reportID string) (models.Listing, error) {
	var out models.Listing
	err := ErrNotFound
	s.store.View(func(st *store.State) {
		for _, r := range st.Reports {
			if r.ID != reportID {
				continue
			}
			pool := views.ModerationPool(st.Owned, models.SeedFeaturedListings(), models.SeedPopularListings(), st.AdminPool)
			out, err = views.ReportedListing(pool, r), nil
			return
		}
	})
	return out, err
}

// SetFairMode flips the global fair flag. Turning it off does not cascade
// into individual listings' fair presence; the fair view re-checks the
// global flag on every derivation, so stale per-listing flags stay hidden
// while the mode is off.
func (s *moderationService) SetFairMode(ctx context.Context, on bool) {
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		st.FairMode = on
		return []store.CollectionKey{store.KeyFairMode}
	})
}

func (s *moderationService) SetMaintenance(ctx context.Context, on bool) {
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		st.Maintenance = on
		return []store.CollectionKey{store.KeyMaintenance}
	})
}

func (s *moderationService) Flags(ctx context.Context) (bool, bool) {
	var fairMode, maintenance bool
	s.store.View(func(st *store.State) {
		fairMode, maintenance = st.FairMode, st.Maintenance
	})
	return fairMode, maintenance
}

// SetUserSuspended flips the suspended flag on the account profile when the
// id matches; any other id is a no-op.
func (s *moderationService) SetUserSuspended(ctx context.Context, userID string, suspended bool) error {
	err := ErrNotFound
	s.store.Mutate(ctx, func(st *store.State) []store.CollectionKey {
		if st.User.ID != userID {
			return nil
		}
		st.User.Suspended = suspended
		st.User.UpdatedAt = time.Now().UTC()
		err = nil
		return []store.CollectionKey{store.KeyUser}
	})
	return err
}

// ResetAll restores every collection to its default seed and clears the
// persisted storage. The confirmation gate lives in the caller's UI.
func (s *moderationService) ResetAll(ctx context.Context) {
	s.store.Reset(ctx)
}
