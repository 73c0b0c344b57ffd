package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Status is the moderation/lifecycle state of a listing.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusSold     Status = "sold"
	StatusBought   Status = "bought"
	StatusPending  Status = "pending"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known listing statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSold, StatusBought, StatusPending, StatusRejected:
		return true
	}
	return false
}

// Category determines which details block a listing carries.
type Category string

const (
	CategoryVehicle    Category = "vehicle"
	CategoryRealEstate Category = "real_estate"
	CategoryGoods      Category = "goods"
	CategoryParts      Category = "parts"
	CategoryServices   Category = "services"
)

// BoostPlan is the paid promotion tier of a listing.
type BoostPlan string

const (
	BoostNone     BoostPlan = "none"
	BoostBasic    BoostPlan = "basic"
	BoostAdvanced BoostPlan = "advanced"
	BoostPremium  BoostPlan = "premium"
)

// Paid reports whether the plan is a paying tier.
func (p BoostPlan) Paid() bool {
	return p == BoostBasic || p == BoostAdvanced || p == BoostPremium
}

// FairPresenceTTL is the validity window of a fair-presence activation.
const FairPresenceTTL = 6 * time.Hour

// BoostConfig records the validity window and bump schedule bought with a
// paid plan. Everything except BumpsRemaining is immutable input; the
// remaining-bump counter belongs to a promotion-cycling job that this
// codebase records data for but deliberately never runs.
type BoostConfig struct {
	StartsAt       time.Time `json:"starts_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	BumpsTotal     int       `json:"bumps_total"`
	BumpsRemaining int       `json:"bumps_remaining"`
	NextBumpAt     time.Time `json:"next_bump_at"`
}

// FairPresence flags that the seller is physically present with the listing
// at a live fair event, for a bounded window.
type FairPresence struct {
	Active    bool      `json:"active"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CurrentAt reports whether the presence is active and unexpired at now.
func (f *FairPresence) CurrentAt(now time.Time) bool {
	return f != nil && f.Active && f.ExpiresAt.After(now)
}

// Details is the category-specific payload of a listing. Exactly one
// concrete type applies per category; goods and services carry none.
type Details interface {
	detailsCategory() Category
}

// VehicleDetails is the payload for CategoryVehicle.
type VehicleDetails struct {
	VehicleType string `json:"vehicle_type"` // "car", "motorcycle", "truck"
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	Plate       string `json:"plate,omitempty"`
	Mileage     int    `json:"mileage"`
	FuelType    string `json:"fuel_type,omitempty"`
	Gearbox     string `json:"gearbox,omitempty"`
	Color       string `json:"color,omitempty"`
}

func (VehicleDetails) detailsCategory() Category { return CategoryVehicle }

// PropertyDetails is the payload for CategoryRealEstate.
type PropertyDetails struct {
	PropertyType string  `json:"property_type"` // "house", "apartment", "land", "commercial"
	Purpose      string  `json:"purpose"`       // "sale" or "rent"
	AreaM2       float64 `json:"area_m2"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	ParkingSpots int     `json:"parking_spots"`
}

func (PropertyDetails) detailsCategory() Category { return CategoryRealEstate }

// Part types. The service subtypes have no physical condition.
const (
	PartTypeAccessory   = "accessory"
	PartTypeComponent   = "component"
	PartTypeTire        = "tire"
	PartTypeCleaning    = "cleaning_cosmetic"
	PartTypeAutoService = "automotive_service"
)

// IsServicePartType reports whether the part type is a service subtype,
// which carries no condition.
func IsServicePartType(partType string) bool {
	return partType == PartTypeCleaning || partType == PartTypeAutoService
}

// PartDetails is the payload for CategoryParts (and service offerings).
type PartDetails struct {
	PartType  string `json:"part_type"`
	Condition string `json:"condition,omitempty"` // "new" or "used"; empty for services
}

func (PartDetails) detailsCategory() Category { return CategoryParts }

// Listing is a single classified advertisement.
type Listing struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Price          float64       `json:"price"`
	ReferencePrice float64       `json:"reference_price,omitempty"`
	Status         Status        `json:"status"`
	Category       Category      `json:"category"`
	Details        Details       `json:"-"`
	IsFeatured     bool          `json:"is_featured"`
	BoostPlan      BoostPlan     `json:"boost_plan"`
	Boost          *BoostConfig  `json:"boost,omitempty"`
	Fair           *FairPresence `json:"fair,omitempty"`
	OwnerID        string        `json:"owner_id"`
	OwnerName      string        `json:"owner_name"`
	IsOwner        bool          `json:"is_owner"`
	Location       string        `json:"location"`
	Image          string        `json:"image"` // cover, recomputed from Images[0]
	Images         []string      `json:"images"`
	Features       []string      `json:"features,omitempty"`
	AdditionalInfo []string      `json:"additional_info,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// listingJSON mirrors Listing for (de)serialization, carrying the details
// payload as raw JSON so it can be dispatched on the category tag.
type listingJSON struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Price          float64         `json:"price"`
	ReferencePrice float64         `json:"reference_price,omitempty"`
	Status         Status          `json:"status"`
	Category       Category        `json:"category"`
	Details        json.RawMessage `json:"details,omitempty"`
	IsFeatured     bool            `json:"is_featured"`
	BoostPlan      BoostPlan       `json:"boost_plan"`
	Boost          *BoostConfig    `json:"boost,omitempty"`
	Fair           *FairPresence   `json:"fair,omitempty"`
	OwnerID        string          `json:"owner_id"`
	OwnerName      string          `json:"owner_name"`
	IsOwner        bool            `json:"is_owner"`
	Location       string          `json:"location"`
	Image          string          `json:"image"`
	Images         []string        `json:"images"`
	Features       []string        `json:"features,omitempty"`
	AdditionalInfo []string        `json:"additional_info,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MarshalJSON serializes the listing with its category-specific details
// block under the "details" key.
func (l Listing) MarshalJSON() ([]byte, error) {
	out := listingJSON{
		ID:             l.ID,
		Title:          l.Title,
		Description:    l.Description,
		Price:          l.Price,
		ReferencePrice: l.ReferencePrice,
		Status:         l.Status,
		Category:       l.Category,
		IsFeatured:     l.IsFeatured,
		BoostPlan:      l.BoostPlan,
		Boost:          l.Boost,
		Fair:           l.Fair,
		OwnerID:        l.OwnerID,
		OwnerName:      l.OwnerName,
		IsOwner:        l.IsOwner,
		Location:       l.Location,
		Image:          l.Image,
		Images:         l.Images,
		Features:       l.Features,
		AdditionalInfo: l.AdditionalInfo,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
	if l.Details != nil {
		raw, err := json.Marshal(l.Details)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s details for listing %s: %w", l.Category, l.ID, err)
		}
		out.Details = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON deserializes the listing, decoding the details payload into
// the concrete type selected by the category tag. An unknown category or a
// missing details block yields a nil Details, never an error: persisted
// state must stay loadable.
func (l *Listing) UnmarshalJSON(data []byte) error {
	var in listingJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*l = Listing{
		ID:             in.ID,
		Title:          in.Title,
		Description:    in.Description,
		Price:          in.Price,
		ReferencePrice: in.ReferencePrice,
		Status:         in.Status,
		Category:       in.Category,
		IsFeatured:     in.IsFeatured,
		BoostPlan:      in.BoostPlan,
		Boost:          in.Boost,
		Fair:           in.Fair,
		OwnerID:        in.OwnerID,
		OwnerName:      in.OwnerName,
		IsOwner:        in.IsOwner,
		Location:       in.Location,
		Image:          in.Image,
		Images:         in.Images,
		Features:       in.Features,
		AdditionalInfo: in.AdditionalInfo,
		CreatedAt:      in.CreatedAt,
		UpdatedAt:      in.UpdatedAt,
	}
	if len(in.Details) == 0 {
		return nil
	}
	switch in.Category {
	case CategoryVehicle:
		var d VehicleDetails
		if err := json.Unmarshal(in.Details, &d); err != nil {
			return fmt.Errorf("failed to unmarshal vehicle details for listing %s: %w", in.ID, err)
		}
		l.Details = d
	case CategoryRealEstate:
		var d PropertyDetails
		if err := json.Unmarshal(in.Details, &d); err != nil {
			return fmt.Errorf("failed to unmarshal property details for listing %s: %w", in.ID, err)
		}
		l.Details = d
	case CategoryParts, CategoryServices, CategoryGoods:
		var d PartDetails
		if err := json.Unmarshal(in.Details, &d); err != nil {
			return fmt.Errorf("failed to unmarshal part details for listing %s: %w", in.ID, err)
		}
		l.Details = d
	}
	return nil
}

// RecomputeCover sets the cover image from the first entry of Images.
func (l *Listing) RecomputeCover() {
	if len(l.Images) > 0 {
		l.Image = l.Images[0]
	} else {
		l.Image = ""
	}
}
