// Package views computes read-only projections of the listing state. Every
// function here is deterministic and side-effect free: views are recomputed
// on each call, never cached, so time-windowed records expire on the next
// derivation pass rather than via a background timer.
package views

import (
	"sort"
	"time"

	"github.com/weslymega/testefeirastudio-sub000/internal/models"
)

// ActiveOwned filters the owned collection down to active listings.
func ActiveOwned(owned []models.Listing) []models.Listing {
	out := make([]models.Listing, 0, len(owned))
	for _, l := range owned {
		if l.Status == models.StatusActive {
			out = append(out, l)
		}
	}
	return out
}

// MergeByID collapses several listing collections into one, de-duplicated by
// id. When sources disagree on content for the same id, the later source in
// argument order wins; the merged order keeps each id's first-seen position.
// This last-writer-wins tie-break is load-bearing and covered by tests.
func MergeByID(sources ...[]models.Listing) []models.Listing {
	index := make(map[string]int)
	var out []models.Listing
	for _, source := range sources {
		for _, l := range source {
			if pos, seen := index[l.ID]; seen {
				out[pos] = l
				continue
			}
			index[l.ID] = len(out)
			out = append(out, l)
		}
	}
	return out
}

// GlobalPool is the main browse view: owned active listings merged with the
// curated collections.
func GlobalPool(owned, featured, popular []models.Listing) []models.Listing {
	return MergeByID(ActiveOwned(owned), featured, popular)
}

// boostRank orders listings for the featured view:
// premium > advanced > basic > legacy-featured > none.
func boostRank(l models.Listing) int {
	switch l.BoostPlan {
	case models.BoostPremium:
		return 4
	case models.BoostAdvanced:
		return 3
	case models.BoostBasic:
		return 2
	}
	if l.IsFeatured {
		return 1 // featured without a plan: legacy curation
	}
	return 0
}

// Featured merges owner-featured listings with the curated featured
// collection and sorts by boost tier, descending. The sort is stable so
// ties keep their original collection order.
func Featured(owned, curated []models.Listing) []models.Listing {
	ownFeatured := make([]models.Listing, 0, len(owned))
	for _, l := range owned {
		if l.IsFeatured {
			ownFeatured = append(ownFeatured, l)
		}
	}
	merged := MergeByID(ownFeatured, curated)
	sort.SliceStable(merged, func(i, j int) bool {
		return boostRank(merged[i]) > boostRank(merged[j])
	})
	return merged
}

// Fair keeps the listings whose fair presence is active and unexpired at
// now. Expiry is evaluated here, at derivation time.
func Fair(pool []models.Listing, now time.Time) []models.Listing {
	out := make([]models.Listing, 0)
	for _, l := range pool {
		if l.Fair.CurrentAt(now) {
			out = append(out, l)
		}
	}
	return out
}

// ModerationPool is the union of every known listing source, used for
// lookups by id during report review.
func ModerationPool(owned, featured, popular, adminPool []models.Listing) []models.Listing {
	return MergeByID(owned, featured, popular, adminPool)
}

// LookupListing finds a listing by id in a pool.
func LookupListing(pool []models.Listing, id string) (models.Listing, bool) {
	for _, l := range pool {
		if l.ID == id {
			return l, true
		}
	}
	return models.Listing{}, false
}

// ReportedListing resolves a report's target against the pool, falling back
// to a synthetic placeholder built from the report's cached name and image:
// the target may be missing from this caller's in-memory pool.
func ReportedListing(pool []models.Listing, r models.Report) models.Listing {
	if l, ok := LookupListing(pool, r.TargetID); ok {
		return l
	}
	return models.Listing{
		ID:        r.TargetID,
		Title:     r.TargetName,
		Image:     r.TargetImage,
		Status:    models.StatusInactive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.CreatedAt,
	}
}
