package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingJSONCarriesCategoryDetails(t *testing.T) {
	original := Listing{
		ID:       "l1",
		Title:    "Fiat Uno 2015",
		Price:    25000,
		Status:   StatusActive,
		Category: CategoryVehicle,
		Details: VehicleDetails{
			VehicleType: "car",
			Brand:       "Fiat",
			Model:       "Uno",
			Year:        2015,
			Mileage:     90000,
		},
		Images:    []string{"a.jpg"},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Listing
	require.NoError(t, json.Unmarshal(data, &decoded))

	details, ok := decoded.Details.(VehicleDetails)
	require.True(t, ok, "vehicle listing must decode VehicleDetails")
	assert.Equal(t, "Fiat", details.Brand)
	assert.Equal(t, 2015, details.Year)
	assert.Equal(t, original.Title, decoded.Title)
}

func TestListingJSONDispatchesOnCategory(t *testing.T) {
	raw := `{
		"id": "p1",
		"title": "Apartamento",
		"category": "real_estate",
		"status": "active",
		"boost_plan": "none",
		"details": {"property_type": "apartment", "purpose": "sale", "area_m2": 60, "bedrooms": 2}
	}`

	var l Listing
	require.NoError(t, json.Unmarshal([]byte(raw), &l))

	details, ok := l.Details.(PropertyDetails)
	require.True(t, ok)
	assert.Equal(t, "apartment", details.PropertyType)
	assert.Equal(t, 60.0, details.AreaM2)
}

func TestListingJSONGoodsDetailsRoundTrip(t *testing.T) {
	original := Listing{
		ID:       "g2",
		Title:    "Bicicleta aro 29",
		Category: CategoryGoods,
		Details:  PartDetails{PartType: PartTypeAccessory, Condition: "used"},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Listing
	require.NoError(t, json.Unmarshal(data, &decoded))

	details, ok := decoded.Details.(PartDetails)
	require.True(t, ok, "goods listings carry part details")
	assert.Equal(t, "used", details.Condition)
}

func TestListingJSONUnknownCategoryStaysLoadable(t *testing.T) {
	raw := `{"id": "x1", "title": "algo", "category": "mystery", "details": {"foo": 1}}`

	var l Listing
	require.NoError(t, json.Unmarshal([]byte(raw), &l))
	assert.Nil(t, l.Details)
	assert.Equal(t, "x1", l.ID)
}

func TestListingJSONMissingDetails(t *testing.T) {
	raw := `{"id": "g1", "title": "bicicleta", "category": "goods"}`

	var l Listing
	require.NoError(t, json.Unmarshal([]byte(raw), &l))
	assert.Nil(t, l.Details)
}

func TestRecomputeCover(t *testing.T) {
	l := Listing{Image: "stale.jpg", Images: []string{"first.jpg", "second.jpg"}}
	l.RecomputeCover()
	assert.Equal(t, "first.jpg", l.Image)

	l.Images = nil
	l.RecomputeCover()
	assert.Empty(t, l.Image)
}

func TestFairPresenceCurrentAt(t *testing.T) {
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	var nilPresence *FairPresence
	assert.False(t, nilPresence.CurrentAt(now))

	active := &FairPresence{Active: true, ExpiresAt: now.Add(FairPresenceTTL)}
	assert.True(t, active.CurrentAt(now))
	assert.False(t, active.CurrentAt(now.Add(FairPresenceTTL)), "expiry instant is exclusive")
	assert.False(t, active.CurrentAt(now.Add(FairPresenceTTL+time.Nanosecond)))

	inactive := &FairPresence{Active: false, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, inactive.CurrentAt(now))
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusActive, StatusInactive, StatusSold, StatusBought, StatusPending, StatusRejected} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("banana").Valid())
	assert.False(t, Status("").Valid())
}

func TestBoostPlanPaid(t *testing.T) {
	assert.False(t, BoostNone.Paid())
	assert.True(t, BoostBasic.Paid())
	assert.True(t, BoostAdvanced.Paid())
	assert.True(t, BoostPremium.Paid())
}

func TestIsServicePartType(t *testing.T) {
	assert.True(t, IsServicePartType(PartTypeCleaning))
	assert.True(t, IsServicePartType(PartTypeAutoService))
	assert.False(t, IsServicePartType(PartTypeTire))
	assert.False(t, IsServicePartType(PartTypeAccessory))
}
