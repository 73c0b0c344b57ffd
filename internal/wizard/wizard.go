package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/services"
)

// Step identifies one screen of the create-ad flow.
type Step int

const (
	StepCategory Step = iota

	// Vehicle branch.
	StepVehicleType
	StepVehiclePhotos
	StepVehiclePlate
	StepVehicleSpecs
	StepVehicleMileage
	StepVehicleFeatures
	StepVehicleAdditionalInfo

	// Real estate branch.
	StepPropertyType
	StepPropertyPhotos
	StepPropertySpecs
	StepPropertyFeatures

	// Parts / services branch.
	StepPartType
	StepPartCondition
	StepPartPhotos

	// Common tail.
	StepDescription
	StepPrice
	StepContact
	StepBoost
	StepPaymentMethod
	StepPaymentDetail
	StepProcessing
	StepApproved
	StepSuccess
)

var stepNames = map[Step]string{
	StepCategory:              "category",
	StepVehicleType:           "vehicle_type",
	StepVehiclePhotos:         "vehicle_photos",
	StepVehiclePlate:          "vehicle_plate",
	StepVehicleSpecs:          "vehicle_specs",
	StepVehicleMileage:        "vehicle_mileage",
	StepVehicleFeatures:       "vehicle_features",
	StepVehicleAdditionalInfo: "vehicle_additional_info",
	StepPropertyType:          "property_type",
	StepPropertyPhotos:        "property_photos",
	StepPropertySpecs:         "property_specs",
	StepPropertyFeatures:      "property_features",
	StepPartType:              "part_type",
	StepPartCondition:         "part_condition",
	StepPartPhotos:            "part_photos",
	StepDescription:           "description",
	StepPrice:                 "price",
	StepContact:               "contact",
	StepBoost:                 "boost",
	StepPaymentMethod:         "payment_method",
	StepPaymentDetail:         "payment_detail",
	StepProcessing:            "processing",
	StepApproved:              "approved",
	StepSuccess:               "success",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// ErrWrongStep is returned when an input is submitted for a step the flow is
// not currently on.
var ErrWrongStep = errors.New("input does not match the current wizard step")

// ErrNotFinished is returned by Finish before the flow reached its terminal
// step.
var ErrNotFinished = errors.New("wizard flow has not reached the success step")

// Draft accumulates the answers of every visited step until Finish composes
// them into a listing.
type Draft struct {
	Category models.Category

	VehicleType string
	Brand       string
	Model       string
	Year        int
	Plate       string
	Mileage     int
	FuelType    string
	Gearbox     string
	Color       string

	PropertyType string
	Purpose      string
	AreaM2       float64
	Bedrooms     int
	Bathrooms    int
	ParkingSpots int

	PartType  string
	Condition string

	Photos         []string
	Features       []string
	AdditionalInfo []string

	Title       string
	Description string

	Price          float64
	ReferencePrice float64

	Location string
	Phone    string

	BoostPlan     models.BoostPlan
	PaymentMethod string
	Receipt       *services.PaymentReceipt
}

// Flow is the create-ad wizard state machine. Navigation keeps an explicit
// history stack so Back from a step reached across a conditional skip lands
// on the step actually visited before it. A Flow is safe for concurrent use:
// a session may be read while another request advances it.
type Flow struct {
	mu       sync.Mutex
	step     Step
	history  []Step
	draft    Draft
	validate *validator.Validate

	// Editing an already-approved paid listing skips boost selection and
	// payment entirely; the purchased window is kept as-is.
	editing          *models.Listing
	editApprovedPaid bool
}

// NewFlow starts a wizard for a new listing.
func NewFlow() *Flow {
	return &Flow{
		step:     StepCategory,
		validate: validator.New(),
	}
}

// NewEditFlow starts a wizard prefilled from an existing listing.
func NewEditFlow(existing models.Listing) *Flow {
	f := NewFlow()
	f.editing = &existing
	f.editApprovedPaid = existing.Status == models.StatusActive && existing.BoostPlan.Paid()
	f.draft = draftFromListing(existing)
	return f
}

func draftFromListing(l models.Listing) Draft {
	d := Draft{
		Category:       l.Category,
		Photos:         append([]string(nil), l.Images...),
		Features:       append([]string(nil), l.Features...),
		AdditionalInfo: append([]string(nil), l.AdditionalInfo...),
		Title:          l.Title,
		Description:    l.Description,
		Price:          l.Price,
		ReferencePrice: l.ReferencePrice,
		Location:       l.Location,
		BoostPlan:      l.BoostPlan,
	}
	switch det := l.Details.(type) {
	case models.VehicleDetails:
		d.VehicleType = det.VehicleType
		d.Brand = det.Brand
		d.Model = det.Model
		d.Year = det.Year
		d.Plate = det.Plate
		d.Mileage = det.Mileage
		d.FuelType = det.FuelType
		d.Gearbox = det.Gearbox
		d.Color = det.Color
	case models.PropertyDetails:
		d.PropertyType = det.PropertyType
		d.Purpose = det.Purpose
		d.AreaM2 = det.AreaM2
		d.Bedrooms = det.Bedrooms
		d.Bathrooms = det.Bathrooms
		d.ParkingSpots = det.ParkingSpots
	case models.PartDetails:
		d.PartType = det.PartType
		d.Condition = det.Condition
	}
	return d
}

// Step returns the step the flow is currently on.
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Draft returns a copy of the answers collected so far.
func (f *Flow) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Back returns to the previously visited step. It reports false when there
// is nowhere to go back to.
func (f *Flow) Back() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.back()
}

func (f *Flow) back() bool {
	if len(f.history) == 0 {
		return false
	}
	f.step = f.history[len(f.history)-1]
	f.history = f.history[:len(f.history)-1]
	return true
}

func (f *Flow) advance(to Step) {
	f.history = append(f.history, f.step)
	f.step = to
}

// SelectCategory answers the category step and enters the matching branch.
func (f *Flow) SelectCategory(category models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepCategory {
		return ErrWrongStep
	}
	f.draft.Category = category
	switch category {
	case models.CategoryVehicle:
		f.advance(StepVehicleType)
	case models.CategoryRealEstate:
		f.advance(StepPropertyType)
	case models.CategoryParts, models.CategoryServices, models.CategoryGoods:
		f.advance(StepPartType)
	default:
		return fmt.Errorf("unknown category %q", category)
	}
	return nil
}

type vehicleTypeInput struct {
	VehicleType string `validate:"required,oneof=car motorcycle truck"`
}

func (f *Flow) SetVehicleType(vehicleType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepVehicleType {
		return ErrWrongStep
	}
	if err := f.validate.Struct(vehicleTypeInput{VehicleType: vehicleType}); err != nil {
		return err
	}
	f.draft.VehicleType = vehicleType
	f.advance(StepVehiclePhotos)
	return nil
}

// SetPhotos answers whichever photos step the current branch is on.
func (f *Flow) SetPhotos(photos []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var next Step
	switch f.step {
	case StepVehiclePhotos:
		next = StepVehiclePlate
	case StepPropertyPhotos:
		next = StepPropertySpecs
	case StepPartPhotos:
		next = StepDescription
	default:
		return ErrWrongStep
	}
	if len(photos) == 0 {
		return errors.New("at least one photo is required")
	}
	f.draft.Photos = append([]string(nil), photos...)
	f.advance(next)
	return nil
}

// SetPlate answers the plate step. The plate is optional.
func (f *Flow) SetPlate(plate string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepVehiclePlate {
		return ErrWrongStep
	}
	f.draft.Plate = plate
	f.advance(StepVehicleSpecs)
	return nil
}

// VehicleSpecs is the input of the vehicle specs step.
type VehicleSpecs struct {
	Brand    string `validate:"required"`
	Model    string `validate:"required"`
	Year     int    `validate:"required,gte=1900"`
	FuelType string
	Gearbox  string
	Color    string
}

func (f *Flow) SetVehicleSpecs(in VehicleSpecs) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepVehicleSpecs {
		return ErrWrongStep
	}
	if err := f.validate.Struct(in); err != nil {
		return err
	}
	f.draft.Brand = in.Brand
	f.draft.Model = in.Model
	f.draft.Year = in.Year
	f.draft.FuelType = in.FuelType
	f.draft.Gearbox = in.Gearbox
	f.draft.Color = in.Color
	f.advance(StepVehicleMileage)
	return nil
}

func (f *Flow) SetMileage(mileage int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepVehicleMileage {
		return ErrWrongStep
	}
	if mileage < 0 {
		return errors.New("mileage cannot be negative")
	}
	f.draft.Mileage = mileage
	f.advance(StepVehicleFeatures)
	return nil
}

// SetFeatures answers whichever features step the current branch is on.
// Features are optional.
func (f *Flow) SetFeatures(features []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var next Step
	switch f.step {
	case StepVehicleFeatures:
		next = StepVehicleAdditionalInfo
	case StepPropertyFeatures:
		next = StepDescription
	default:
		return ErrWrongStep
	}
	f.draft.Features = append([]string(nil), features...)
	f.advance(next)
	return nil
}

func (f *Flow) SetAdditionalInfo(info []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepVehicleAdditionalInfo {
		return ErrWrongStep
	}
	f.draft.AdditionalInfo = append([]string(nil), info...)
	f.advance(StepDescription)
	return nil
}

type propertyTypeInput struct {
	PropertyType string `validate:"required,oneof=house apartment land commercial"`
	Purpose      string `validate:"required,oneof=sale rent"`
}

func (f *Flow) SetPropertyType(propertyType, purpose string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepPropertyType {
		return ErrWrongStep
	}
	if err := f.validate.Struct(propertyTypeInput{PropertyType: propertyType, Purpose: purpose}); err != nil {
		return err
	}
	f.draft.PropertyType = propertyType
	f.draft.Purpose = purpose
	f.advance(StepPropertyPhotos)
	return nil
}

// PropertySpecs is the input of the real estate specs step.
type PropertySpecs struct {
	AreaM2       float64 `validate:"required,gt=0"`
	Bedrooms     int     `validate:"gte=0"`
	Bathrooms    int     `validate:"gte=0"`
	ParkingSpots int     `validate:"gte=0"`
}

func (f *Flow) SetPropertySpecs(in PropertySpecs) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepPropertySpecs {
		return ErrWrongStep
	}
	if err := f.validate.Struct(in); err != nil {
		return err
	}
	f.draft.AreaM2 = in.AreaM2
	f.draft.Bedrooms = in.Bedrooms
	f.draft.Bathrooms = in.Bathrooms
	f.draft.ParkingSpots = in.ParkingSpots
	f.advance(StepPropertyFeatures)
	return nil
}

// SetPartType answers the part-type step. Service subtypes carry no physical
// condition, so the condition step is skipped for them.
func (f *Flow) SetPartType(partType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepPartType {
		return ErrWrongStep
	}
	if partType == "" {
		return errors.New("part type is required")
	}
	f.draft.PartType = partType
	if models.IsServicePartType(partType) {
		f.draft.Condition = ""
		f.advance(StepPartPhotos)
	} else {
		f.advance(StepPartCondition)
	}
	return nil
}

type partConditionInput struct {
	Condition string `validate:"required,oneof=new used"`
}

func (f *Flow) SetPartCondition(condition string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepPartCondition {
		return ErrWrongStep
	}
	if err := f.validate.Struct(partConditionInput{Condition: condition}); err != nil {
		return err
	}
	f.draft.Condition = condition
	f.advance(StepPartPhotos)
	return nil
}

type descriptionInput struct {
	Title       string `validate:"required,min=3"`
	Description string `validate:"required,min=10"`
}

func (f *Flow) SetDescription(title, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepDescription {
		return ErrWrongStep
	}
	if err := f.validate.Struct(descriptionInput{Title: title, Description: description}); err != nil {
		return err
	}
	f.draft.Title = title
	f.draft.Description = description
	f.advance(StepPrice)
	return nil
}

// SetPrice answers the price step. Zero means "to negotiate"; the reference
// value only feeds the advisory band and never blocks submission.
func (f *Flow) SetPrice(price, referencePrice float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepPrice {
		return ErrWrongStep
	}
	if price < 0 {
		return errors.New("price cannot be negative")
	}
	f.draft.Price = price
	f.draft.ReferencePrice = referencePrice
	f.advance(StepContact)
	return nil
}

// PriceBand returns the advisory classification of the draft's price against
// its reference value.
func (f *Flow) PriceBand() PriceBand {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ClassifyPrice(f.draft.Price, f.draft.ReferencePrice)
}

// SetContact answers the contact step. Editing an approved paid listing
// jumps straight to success: the purchased boost window is kept and re-paying
// is not required.
func (f *Flow) SetContact(location, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepContact {
		return ErrWrongStep
	}
	if location == "" {
		return errors.New("location is required")
	}
	f.draft.Location = location
	f.draft.Phone = phone
	if f.editApprovedPaid {
		f.advance(StepSuccess)
	} else {
		f.advance(StepBoost)
	}
	return nil
}

// SelectBoost answers the boost step. The free tier goes straight to
// success; paid tiers enter the payment sub-flow.
func (f *Flow) SelectBoost(plan models.BoostPlan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepBoost {
		return ErrWrongStep
	}
	if plan == models.BoostNone {
		f.draft.BoostPlan = plan
		f.advance(StepSuccess)
		return nil
	}
	if _, ok := services.PlanSpecFor(plan); !ok {
		return fmt.Errorf("unknown boost plan %q", plan)
	}
	f.draft.BoostPlan = plan
	f.advance(StepPaymentMethod)
	return nil
}

type paymentMethodInput struct {
	Method string `validate:"required,oneof=pix credit_card boleto"`
}

func (f *Flow) SetPaymentMethod(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepPaymentMethod {
		return ErrWrongStep
	}
	if err := f.validate.Struct(paymentMethodInput{Method: method}); err != nil {
		return err
	}
	f.draft.PaymentMethod = method
	f.advance(StepPaymentDetail)
	return nil
}

// ConfirmPayment moves through processing and approval. The simulation is
// cancellable via ctx; a cancelled payment leaves the flow on the detail
// step so the user can retry.
func (f *Flow) ConfirmPayment(ctx context.Context, promos services.IPromotionService) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepPaymentDetail {
		return ErrWrongStep
	}
	f.advance(StepProcessing)
	receipt, err := promos.ProcessPayment(ctx, f.draft.BoostPlan, f.draft.PaymentMethod)
	if err != nil {
		f.back()
		return err
	}
	f.draft.Receipt = &receipt
	f.advance(StepApproved)
	f.advance(StepSuccess)
	return nil
}

// Finish composes the accumulated draft into a listing. The result is always
// Pending: resubmission re-enters moderation even for previously active ads.
func (f *Flow) Finish(ownerID, ownerName string, now time.Time) (models.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepSuccess {
		return models.Listing{}, ErrNotFinished
	}

	l := models.Listing{
		ID:             uuid.NewString(),
		Title:          f.draft.Title,
		Description:    f.draft.Description,
		Price:          f.draft.Price,
		ReferencePrice: f.draft.ReferencePrice,
		Status:         models.StatusPending,
		Category:       f.draft.Category,
		BoostPlan:      f.draft.BoostPlan,
		OwnerID:        ownerID,
		OwnerName:      ownerName,
		IsOwner:        true,
		Location:       f.draft.Location,
		Images:         append([]string(nil), f.draft.Photos...),
		Features:       append([]string(nil), f.draft.Features...),
		AdditionalInfo: append([]string(nil), f.draft.AdditionalInfo...),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if f.editing != nil {
		l.ID = f.editing.ID
		l.CreatedAt = f.editing.CreatedAt
	}

	switch f.draft.Category {
	case models.CategoryVehicle:
		l.Details = models.VehicleDetails{
			VehicleType: f.draft.VehicleType,
			Brand:       f.draft.Brand,
			Model:       f.draft.Model,
			Year:        f.draft.Year,
			Plate:       f.draft.Plate,
			Mileage:     f.draft.Mileage,
			FuelType:    f.draft.FuelType,
			Gearbox:     f.draft.Gearbox,
			Color:       f.draft.Color,
		}
	case models.CategoryRealEstate:
		l.Details = models.PropertyDetails{
			PropertyType: f.draft.PropertyType,
			Purpose:      f.draft.Purpose,
			AreaM2:       f.draft.AreaM2,
			Bedrooms:     f.draft.Bedrooms,
			Bathrooms:    f.draft.Bathrooms,
			ParkingSpots: f.draft.ParkingSpots,
		}
	case models.CategoryParts, models.CategoryServices, models.CategoryGoods:
		l.Details = models.PartDetails{
			PartType:  f.draft.PartType,
			Condition: f.draft.Condition,
		}
	}

	switch {
	case f.editApprovedPaid:
		// The boost was already bought; carry its window through the edit.
		l.Boost = f.editing.Boost
	case f.draft.BoostPlan.Paid() && f.draft.Receipt != nil:
		l.Boost = services.NewBoostConfig(f.draft.BoostPlan, f.draft.Receipt.ApprovedAt)
	}

	l.RecomputeCover()
	return l, nil
}
