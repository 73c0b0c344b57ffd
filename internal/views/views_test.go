package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslymega/testefeirastudio-sub000/internal/models"
)

func listing(id string, plan models.BoostPlan, featured bool) models.Listing {
	return models.Listing{
		ID:         id,
		Title:      "listing " + id,
		Status:     models.StatusActive,
		BoostPlan:  plan,
		IsFeatured: featured,
	}
}

func TestMergeByIDDeduplicates(t *testing.T) {
	a := []models.Listing{listing("1", models.BoostNone, false), listing("2", models.BoostNone, false)}
	b := []models.Listing{listing("2", models.BoostNone, false), listing("3", models.BoostNone, false)}

	merged := MergeByID(a, b)

	require.Len(t, merged, 3)
	seen := map[string]bool{}
	for _, l := range merged {
		assert.False(t, seen[l.ID], "duplicate id %s", l.ID)
		seen[l.ID] = true
	}
}

func TestMergeByIDLastWriterWinsKeepsFirstSeenOrder(t *testing.T) {
	first := listing("dup", models.BoostNone, false)
	first.Title = "old content"
	second := listing("dup", models.BoostPremium, true)
	second.Title = "new content"

	merged := MergeByID(
		[]models.Listing{listing("a", models.BoostNone, false), first},
		[]models.Listing{second, listing("b", models.BoostNone, false)},
	)

	require.Len(t, merged, 3)
	// Content from the later source, position from the first sighting.
	assert.Equal(t, []string{"a", "dup", "b"}, []string{merged[0].ID, merged[1].ID, merged[2].ID})
	assert.Equal(t, "new content", merged[1].Title)
	assert.Equal(t, models.BoostPremium, merged[1].BoostPlan)
}

func TestGlobalPoolExcludesInactiveOwned(t *testing.T) {
	owned := []models.Listing{
		listing("active", models.BoostNone, false),
		{ID: "pending", Status: models.StatusPending},
		{ID: "sold", Status: models.StatusSold},
	}

	pool := GlobalPool(owned, nil, nil)

	require.Len(t, pool, 1)
	assert.Equal(t, "active", pool[0].ID)
}

func TestFeaturedBoostTierOrdering(t *testing.T) {
	curated := []models.Listing{
		listing("none", models.BoostNone, true),
		listing("basic", models.BoostBasic, true),
		listing("premium", models.BoostPremium, true),
		listing("advanced", models.BoostAdvanced, true),
	}

	out := Featured(nil, curated)

	require.Len(t, out, 4)
	assert.Equal(t, []string{"premium", "advanced", "basic", "none"},
		[]string{out[0].ID, out[1].ID, out[2].ID, out[3].ID})
}

func TestFeaturedSampleScenario(t *testing.T) {
	v1 := listing("v1", models.BoostPremium, true)
	v1.Price = 100000
	v2 := listing("v2", models.BoostBasic, true)
	v2.Price = 90000

	out := Featured(nil, []models.Listing{v2, v1})

	require.Len(t, out, 2)
	assert.Equal(t, "v1", out[0].ID)
	assert.Equal(t, "v2", out[1].ID)
}

func TestFeaturedSkipsUnfeaturedOwned(t *testing.T) {
	owned := []models.Listing{
		listing("plain", models.BoostNone, false),
		listing("mine", models.BoostBasic, true),
	}

	out := Featured(owned, nil)

	require.Len(t, out, 1)
	assert.Equal(t, "mine", out[0].ID)
}

func TestFairWindowEvaluatedAtDerivationTime(t *testing.T) {
	activatedAt := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	expiresAt := activatedAt.Add(models.FairPresenceTTL)

	l := listing("f1", models.BoostNone, false)
	l.Fair = &models.FairPresence{Active: true, ExpiresAt: expiresAt}
	pool := []models.Listing{l, listing("plain", models.BoostNone, false)}

	inWindow := Fair(pool, expiresAt.Add(-time.Minute))
	require.Len(t, inWindow, 1)
	assert.Equal(t, "f1", inWindow[0].ID)

	afterWindow := Fair(pool, expiresAt.Add(time.Nanosecond))
	assert.Empty(t, afterWindow)
}

func TestReportedListingFallsBackToCachedSnapshot(t *testing.T) {
	report := models.Report{
		ID:          "r1",
		TargetID:    "gone",
		TargetName:  "Anuncio removido",
		TargetImage: "gone.jpg",
		CreatedAt:   time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC),
	}

	out := ReportedListing(nil, report)

	assert.Equal(t, "gone", out.ID)
	assert.Equal(t, "Anuncio removido", out.Title)
	assert.Equal(t, "gone.jpg", out.Image)
	assert.Equal(t, models.StatusInactive, out.Status)
}

func TestReportedListingPrefersLivePoolEntry(t *testing.T) {
	live := listing("pop1", models.BoostNone, false)
	report := models.Report{TargetID: "pop1", TargetName: "cached name"}

	out := ReportedListing([]models.Listing{live}, report)

	assert.Equal(t, live.Title, out.Title)
}
