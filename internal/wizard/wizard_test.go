package wizard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslymega/testefeirastudio-sub000/internal/config"
	"github.com/weslymega/testefeirastudio-sub000/internal/models"
	"github.com/weslymega/testefeirastudio-sub000/internal/services"
)

func fastPromotions() services.IPromotionService {
	return services.NewPromotionService(&config.Config{PaymentProcessingDelay: time.Millisecond})
}

// walkVehicleToContact drives a fresh flow through the whole vehicle branch.
func walkVehicleToContact(t *testing.T, f *Flow) {
	t.Helper()
	require.NoError(t, f.SelectCategory(models.CategoryVehicle))
	require.NoError(t, f.SetVehicleType("car"))
	require.NoError(t, f.SetPhotos([]string{"cover.jpg", "side.jpg"}))
	require.NoError(t, f.SetPlate("ABC1D23"))
	require.NoError(t, f.SetVehicleSpecs(VehicleSpecs{Brand: "Fiat", Model: "Uno", Year: 2015, FuelType: "flex"}))
	require.NoError(t, f.SetMileage(90000))
	require.NoError(t, f.SetFeatures([]string{"ar-condicionado"}))
	require.NoError(t, f.SetAdditionalInfo([]string{"IPVA pago"}))
	require.NoError(t, f.SetDescription("Fiat Uno 2015", "Carro bem conservado, revisoes em dia."))
	require.NoError(t, f.SetPrice(25000, 26000))
	require.NoError(t, f.SetContact("Curitiba, PR", "+55 41 99999-0000"))
}

func TestVehicleBranchWalkAndFinish(t *testing.T) {
	f := NewFlow()
	walkVehicleToContact(t, f)

	require.Equal(t, StepBoost, f.Step())
	require.NoError(t, f.SelectBoost(models.BoostNone))
	require.Equal(t, StepSuccess, f.Step())

	now := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	listing, err := f.Finish("u-demo", "Ricardo Almeida", now)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, listing.Status)
	assert.Equal(t, models.CategoryVehicle, listing.Category)
	assert.Equal(t, "cover.jpg", listing.Image)
	assert.Nil(t, listing.Boost)

	details, ok := listing.Details.(models.VehicleDetails)
	require.True(t, ok)
	assert.Equal(t, "Fiat", details.Brand)
	assert.Equal(t, 90000, details.Mileage)
	assert.Equal(t, "ABC1D23", details.Plate)
}

func TestPropertyBranchWalk(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectCategory(models.CategoryRealEstate))
	require.NoError(t, f.SetPropertyType("apartment", "rent"))
	require.NoError(t, f.SetPhotos([]string{"front.jpg"}))
	require.NoError(t, f.SetPropertySpecs(PropertySpecs{AreaM2: 60, Bedrooms: 2, Bathrooms: 1, ParkingSpots: 1}))
	require.NoError(t, f.SetFeatures([]string{"sacada"}))
	require.NoError(t, f.SetDescription("Apartamento 2 quartos", "Otima localizacao, proximo ao metro."))
	require.NoError(t, f.SetPrice(1800, 0))
	require.NoError(t, f.SetContact("Curitiba, PR", ""))
	require.NoError(t, f.SelectBoost(models.BoostNone))

	listing, err := f.Finish("u-demo", "Ricardo", time.Now().UTC())
	require.NoError(t, err)

	details, ok := listing.Details.(models.PropertyDetails)
	require.True(t, ok)
	assert.Equal(t, "rent", details.Purpose)
	assert.Equal(t, 60.0, details.AreaM2)
}

func TestServicePartTypeSkipsCondition(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectCategory(models.CategoryParts))
	require.Equal(t, StepPartType, f.Step())

	require.NoError(t, f.SetPartType(models.PartTypeCleaning))
	assert.Equal(t, StepPartPhotos, f.Step(), "service subtypes have no condition step")
	assert.Empty(t, f.Draft().Condition)

	// Back across the skip lands on the step actually visited.
	require.True(t, f.Back())
	assert.Equal(t, StepPartType, f.Step())
}

func TestPhysicalPartTypeVisitsCondition(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectCategory(models.CategoryParts))
	require.NoError(t, f.SetPartType(models.PartTypeTire))
	require.Equal(t, StepPartCondition, f.Step())

	assert.Error(t, f.SetPartCondition("refurbished"))
	require.NoError(t, f.SetPartCondition("used"))
	assert.Equal(t, StepPartPhotos, f.Step())
}

func TestWrongStepInputRejected(t *testing.T) {
	f := NewFlow()

	assert.ErrorIs(t, f.SetPrice(100, 0), ErrWrongStep)
	assert.ErrorIs(t, f.SetVehicleType("car"), ErrWrongStep)
	assert.ErrorIs(t, f.SelectBoost(models.BoostBasic), ErrWrongStep)

	// Unaffected: still on the first step, with nowhere to go back to.
	assert.Equal(t, StepCategory, f.Step())
	assert.False(t, f.Back())
}

func TestStepValidation(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectCategory(models.CategoryVehicle))

	assert.Error(t, f.SetVehicleType("boat"))
	require.NoError(t, f.SetVehicleType("truck"))

	assert.Error(t, f.SetPhotos(nil), "at least one photo")
	require.NoError(t, f.SetPhotos([]string{"a.jpg"}))
	require.NoError(t, f.SetPlate(""))

	assert.Error(t, f.SetVehicleSpecs(VehicleSpecs{Brand: "Volvo", Model: "FH", Year: 1850}))
	require.NoError(t, f.SetVehicleSpecs(VehicleSpecs{Brand: "Volvo", Model: "FH", Year: 2018}))

	assert.Error(t, f.SetMileage(-1))
	require.NoError(t, f.SetMileage(240000))
	require.NoError(t, f.SetFeatures(nil))
	require.NoError(t, f.SetAdditionalInfo(nil))

	assert.Error(t, f.SetDescription("ab", "curta"))
	require.NoError(t, f.SetDescription("Volvo FH 2018", "Caminhao revisado, pronto para rodar."))

	assert.Error(t, f.SetPrice(-1, 0))
}

func TestZeroPriceMeansToNegotiate(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectCategory(models.CategoryParts))
	require.NoError(t, f.SetPartType(models.PartTypeAccessory))
	require.NoError(t, f.SetPartCondition("used"))
	require.NoError(t, f.SetPhotos([]string{"a.jpg"}))
	require.NoError(t, f.SetDescription("Jogo de rodas", "Aceito propostas, valor a combinar."))

	require.NoError(t, f.SetPrice(0, 2500))
	assert.Equal(t, StepContact, f.Step())
	assert.Equal(t, BandUnknown, f.PriceBand(), "no price, no band")
}

func TestPaidBoostPaymentFlow(t *testing.T) {
	f := NewFlow()
	walkVehicleToContact(t, f)

	require.NoError(t, f.SelectBoost(models.BoostPremium))
	require.Equal(t, StepPaymentMethod, f.Step())

	assert.Error(t, f.SetPaymentMethod("dinheiro"))
	require.NoError(t, f.SetPaymentMethod("pix"))
	require.Equal(t, StepPaymentDetail, f.Step())

	require.NoError(t, f.ConfirmPayment(context.Background(), fastPromotions()))
	require.Equal(t, StepSuccess, f.Step())

	receipt := f.Draft().Receipt
	require.NotNil(t, receipt)
	assert.Equal(t, models.BoostPremium, receipt.Plan)
	assert.Equal(t, 69.90, receipt.Amount)

	listing, err := f.Finish("u-demo", "Ricardo", time.Now().UTC())
	require.NoError(t, err)
	require.NotNil(t, listing.Boost)
	assert.Equal(t, receipt.ApprovedAt.AddDate(0, 0, 30), listing.Boost.ExpiresAt)
	assert.Equal(t, models.StatusPending, listing.Status, "paid listings still enter moderation")
}

func TestCancelledPaymentReturnsToDetailStep(t *testing.T) {
	f := NewFlow()
	walkVehicleToContact(t, f)
	require.NoError(t, f.SelectBoost(models.BoostBasic))
	require.NoError(t, f.SetPaymentMethod("boleto"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	promos := services.NewPromotionService(&config.Config{PaymentProcessingDelay: time.Minute})

	err := f.ConfirmPayment(ctx, promos)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StepPaymentDetail, f.Step(), "cancelled payment is retryable")
	assert.Nil(t, f.Draft().Receipt)
}

func TestUnknownBoostPlanRejected(t *testing.T) {
	f := NewFlow()
	walkVehicleToContact(t, f)

	assert.Error(t, f.SelectBoost(models.BoostPlan("platinum")))
	assert.Equal(t, StepBoost, f.Step())
}

func TestFinishBeforeSuccess(t *testing.T) {
	f := NewFlow()
	walkVehicleToContact(t, f)

	_, err := f.Finish("u-demo", "Ricardo", time.Now().UTC())
	assert.ErrorIs(t, err, ErrNotFinished)
}

func TestEditApprovedPaidListingSkipsPayment(t *testing.T) {
	approvedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	existing := models.Listing{
		ID:        "own-paid",
		Title:     "Honda Civic 2020",
		Price:     120000,
		Status:    models.StatusActive,
		Category:  models.CategoryVehicle,
		BoostPlan: models.BoostAdvanced,
		Boost:     services.NewBoostConfig(models.BoostAdvanced, approvedAt),
		Details:   models.VehicleDetails{VehicleType: "car", Brand: "Honda", Model: "Civic", Year: 2020},
		Images:    []string{"civic.jpg"},
		CreatedAt: approvedAt,
	}

	f := NewEditFlow(existing)
	assert.Equal(t, "Honda Civic 2020", f.Draft().Title, "draft is prefilled")

	require.NoError(t, f.SelectCategory(models.CategoryVehicle))
	require.NoError(t, f.SetVehicleType("car"))
	require.NoError(t, f.SetPhotos([]string{"civic.jpg", "novo-angulo.jpg"}))
	require.NoError(t, f.SetPlate(""))
	require.NoError(t, f.SetVehicleSpecs(VehicleSpecs{Brand: "Honda", Model: "Civic", Year: 2020}))
	require.NoError(t, f.SetMileage(35000))
	require.NoError(t, f.SetFeatures(nil))
	require.NoError(t, f.SetAdditionalInfo(nil))
	require.NoError(t, f.SetDescription("Honda Civic 2020", "Revisado, preco atualizado."))
	require.NoError(t, f.SetPrice(115000, 118000))
	require.NoError(t, f.SetContact("Curitiba, PR", ""))

	assert.Equal(t, StepSuccess, f.Step(), "approved paid listings skip boost and payment")

	now := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	listing, err := f.Finish("u-demo", "Ricardo", now)
	require.NoError(t, err)

	assert.Equal(t, "own-paid", listing.ID)
	assert.Equal(t, approvedAt, listing.CreatedAt)
	assert.Equal(t, models.StatusPending, listing.Status, "edits re-enter moderation")
	require.NotNil(t, listing.Boost)
	assert.Equal(t, existing.Boost.ExpiresAt, listing.Boost.ExpiresAt, "purchased window is kept")
}

func TestEditUnpaidListingGoesThroughBoost(t *testing.T) {
	existing := models.Listing{
		ID:       "own-free",
		Title:    "Jogo de rodas",
		Price:    2400,
		Status:   models.StatusActive,
		Category: models.CategoryParts,
		Details:  models.PartDetails{PartType: models.PartTypeAccessory, Condition: "used"},
		Images:   []string{"rodas.jpg"},
	}

	f := NewEditFlow(existing)
	require.NoError(t, f.SelectCategory(models.CategoryParts))
	require.NoError(t, f.SetPartType(models.PartTypeAccessory))
	require.NoError(t, f.SetPartCondition("used"))
	require.NoError(t, f.SetPhotos([]string{"rodas.jpg"}))
	require.NoError(t, f.SetDescription("Jogo de rodas aro 17", "Sem trincas, pneus meia-vida."))
	require.NoError(t, f.SetPrice(2200, 0))
	require.NoError(t, f.SetContact("Curitiba, PR", ""))

	assert.Equal(t, StepBoost, f.Step(), "free listings always pass the boost step")
}

func TestBackTracksVisitedSteps(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectCategory(models.CategoryVehicle))
	require.NoError(t, f.SetVehicleType("motorcycle"))
	require.Equal(t, StepVehiclePhotos, f.Step())

	require.True(t, f.Back())
	assert.Equal(t, StepVehicleType, f.Step())
	require.True(t, f.Back())
	assert.Equal(t, StepCategory, f.Step())
	assert.False(t, f.Back())
}

func TestConcurrentReadsWhileAdvancing(t *testing.T) {
	f := NewFlow()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				_ = f.Step()
				_ = f.Draft()
				_ = f.PriceBand()
			}
		}
	}()

	walkVehicleToContact(t, f)
	require.NoError(t, f.SelectBoost(models.BoostNone))

	close(done)
	wg.Wait()

	assert.Equal(t, StepSuccess, f.Step())
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "category", StepCategory.String())
	assert.Equal(t, "payment_detail", StepPaymentDetail.String())
	assert.Equal(t, "step(99)", Step(99).String())
}
