package handlers

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/services"
	"github.com/weslymega/testefeirastudio-sub000/internal/wizard"
)

// WizardHandler drives create-ad wizard sessions over HTTP. Sessions live in
// memory only; abandoning one loses nothing but the draft.
type WizardHandler struct {
	listings   services.IListingService
	users      services.IUserService
	promotions services.IPromotionService

	mu       sync.Mutex
	sessions map[string]*wizard.Flow
}

// NewWizardHandler creates a new WizardHandler.
func NewWizardHandler(listings services.IListingService, users services.IUserService, promotions services.IPromotionService) *WizardHandler {
	return &WizardHandler{
		listings:   listings,
		users:      users,
		promotions: promotions,
		sessions:   make(map[string]*wizard.Flow),
	}
}

func (h *WizardHandler) get(id string) (*wizard.Flow, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	flow, ok := h.sessions[id]
	return flow, ok
}

type startWizardRequest struct {
	// ListingID, when set, starts an edit session prefilled from the owned
	// listing with that id.
	ListingID string `json:"listing_id"`
}

// Start handles POST /v1/wizard
func (h *WizardHandler) Start(c *gin.Context) {
	var req startWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var flow *wizard.Flow
	if req.ListingID != "" {
		var existing *models.Listing
		for _, l := range h.listings.Owned(c.Request.Context()) {
			if l.ID == req.ListingID {
				l := l
				existing = &l
				break
			}
		}
		if existing == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		flow = wizard.NewEditFlow(*existing)
	} else {
		flow = wizard.NewFlow()
	}

	id := uuid.NewString()
	h.mu.Lock()
	h.sessions[id] = flow
	h.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"session_id": id, "step": flow.Step().String()})
}

// GetState handles GET /v1/wizard/:id
func (h *WizardHandler) GetState(c *gin.Context) {
	flow, ok := h.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wizard session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"step":       flow.Step().String(),
		"draft":      flow.Draft(),
		"price_band": flow.PriceBand(),
	})
}

// Back handles POST /v1/wizard/:id/back
func (h *WizardHandler) Back(c *gin.Context) {
	flow, ok := h.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wizard session not found"})
		return
	}
	if !flow.Back() {
		c.JSON(http.StatusConflict, gin.H{"error": "Already at the first step"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": flow.Step().String()})
}

// stepInput carries the union of every step's fields; Submit dispatches on
// the session's current step and reads only what that step needs.
type stepInput struct {
	Category models.Category `json:"category"`

	VehicleType string `json:"vehicle_type"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	Plate       string `json:"plate"`
	Mileage     int    `json:"mileage"`
	FuelType    string `json:"fuel_type"`
	Gearbox     string `json:"gearbox"`
	Color       string `json:"color"`

	PropertyType string  `json:"property_type"`
	Purpose      string  `json:"purpose"`
	AreaM2       float64 `json:"area_m2"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	ParkingSpots int     `json:"parking_spots"`

	PartType  string `json:"part_type"`
	Condition string `json:"condition"`

	Photos         []string `json:"photos"`
	Features       []string `json:"features"`
	AdditionalInfo []string `json:"additional_info"`

	Title       string `json:"title"`
	Description string `json:"description"`

	Price          float64 `json:"price"`
	ReferencePrice float64 `json:"reference_price"`

	Location string `json:"location"`
	Phone    string `json:"phone"`

	BoostPlan     models.BoostPlan `json:"boost_plan"`
	PaymentMethod string           `json:"payment_method"`
}

// Submit handles POST /v1/wizard/:id/step
func (h *WizardHandler) Submit(c *gin.Context) {
	flow, ok := h.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wizard session not found"})
		return
	}

	var in stepInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	switch flow.Step() {
	case wizard.StepCategory:
		err = flow.SelectCategory(in.Category)
	case wizard.StepVehicleType:
		err = flow.SetVehicleType(in.VehicleType)
	case wizard.StepVehiclePhotos, wizard.StepPropertyPhotos, wizard.StepPartPhotos:
		err = flow.SetPhotos(in.Photos)
	case wizard.StepVehiclePlate:
		err = flow.SetPlate(in.Plate)
	case wizard.StepVehicleSpecs:
		err = flow.SetVehicleSpecs(wizard.VehicleSpecs{
			Brand:    in.Brand,
			Model:    in.Model,
			Year:     in.Year,
			FuelType: in.FuelType,
			Gearbox:  in.Gearbox,
			Color:    in.Color,
		})
	case wizard.StepVehicleMileage:
		err = flow.SetMileage(in.Mileage)
	case wizard.StepVehicleFeatures, wizard.StepPropertyFeatures:
		err = flow.SetFeatures(in.Features)
	case wizard.StepVehicleAdditionalInfo:
		err = flow.SetAdditionalInfo(in.AdditionalInfo)
	case wizard.StepPropertyType:
		err = flow.SetPropertyType(in.PropertyType, in.Purpose)
	case wizard.StepPropertySpecs:
		err = flow.SetPropertySpecs(wizard.PropertySpecs{
			AreaM2:       in.AreaM2,
			Bedrooms:     in.Bedrooms,
			Bathrooms:    in.Bathrooms,
			ParkingSpots: in.ParkingSpots,
		})
	case wizard.StepPartType:
		err = flow.SetPartType(in.PartType)
	case wizard.StepPartCondition:
		err = flow.SetPartCondition(in.Condition)
	case wizard.StepDescription:
		err = flow.SetDescription(in.Title, in.Description)
	case wizard.StepPrice:
		err = flow.SetPrice(in.Price, in.ReferencePrice)
	case wizard.StepContact:
		err = flow.SetContact(in.Location, in.Phone)
	case wizard.StepBoost:
		err = flow.SelectBoost(in.BoostPlan)
	case wizard.StepPaymentMethod:
		err = flow.SetPaymentMethod(in.PaymentMethod)
	case wizard.StepPaymentDetail:
		// Runs the simulated gateway round trip; cancellable through the
		// request context.
		err = flow.ConfirmPayment(c.Request.Context(), h.promotions)
	default:
		c.JSON(http.StatusConflict, gin.H{"error": "Current step accepts no input"})
		return
	}

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"step":       flow.Step().String(),
		"price_band": flow.PriceBand(),
	})
}

// Finish handles POST /v1/wizard/:id/finish: composes the draft, submits it
// for moderation and discards the session.
func (h *WizardHandler) Finish(c *gin.Context) {
	id := c.Param("id")
	flow, ok := h.get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Wizard session not found"})
		return
	}

	user := h.users.Current(c.Request.Context())
	composed, err := flow.Finish(user.ID, user.Name, time.Now().UTC())
	if err != nil {
		if errors.Is(err, wizard.ErrNotFinished) {
			c.JSON(http.StatusConflict, gin.H{"error": "Wizard is not on the success step"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.listings.CreateOrUpdate(c.Request.Context(), composed)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save listing"})
		return
	}

	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()

	c.JSON(http.StatusCreated, saved)
}
