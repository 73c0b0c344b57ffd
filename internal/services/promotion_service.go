package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/weslymega/testefeirastudio-sub000/internal/config"
	"github.com/weslymega/testefeirastudio-sub000/internal/models"
)

// PlanSpec describes one boost tier: price, validity window and the bump
// schedule bought with it. The bump schedule is recorded on the listing but
// never executed here; there is no promotion-cycling job in this codebase.
type PlanSpec struct {
	Plan          models.BoostPlan `json:"plan"`
	Price         float64          `json:"price"`
	DurationDays  int              `json:"duration_days"`
	Bumps         int              `json:"bumps"`
	BumpEveryDays int              `json:"bump_every_days"`
}

var planTable = []PlanSpec{
	{Plan: models.BoostBasic, Price: 19.90, DurationDays: 7, Bumps: 3, BumpEveryDays: 2},
	{Plan: models.BoostAdvanced, Price: 39.90, DurationDays: 15, Bumps: 5, BumpEveryDays: 3},
	{Plan: models.BoostPremium, Price: 69.90, DurationDays: 30, Bumps: 10, BumpEveryDays: 3},
}

// PlanSpecFor returns the spec of a paid tier.
func PlanSpecFor(plan models.BoostPlan) (PlanSpec, bool) {
	for _, spec := range planTable {
		if spec.Plan == plan {
			return spec, true
		}
	}
	return PlanSpec{}, false
}

// NewBoostConfig builds the boost window and bump schedule for a paid plan
// starting at now. Returns nil for the free tier.
func NewBoostConfig(plan models.BoostPlan, now time.Time) *models.BoostConfig {
	spec, ok := PlanSpecFor(plan)
	if !ok {
		return nil
	}
	return &models.BoostConfig{
		StartsAt:       now,
		ExpiresAt:      now.AddDate(0, 0, spec.DurationDays),
		BumpsTotal:     spec.Bumps,
		BumpsRemaining: spec.Bumps,
		NextBumpAt:     now.AddDate(0, 0, spec.BumpEveryDays),
	}
}

// PaymentReceipt is the outcome of a (simulated) boost purchase.
type PaymentReceipt struct {
	ID         string           `json:"id"`
	Plan       models.BoostPlan `json:"plan"`
	Method     string           `json:"method"`
	Amount     float64          `json:"amount"`
	ApprovedAt time.Time        `json:"approved_at"`
}

// IPromotionService exposes the boost plan table and the simulated payment.
type IPromotionService interface {
	Plans() []PlanSpec
	// ProcessPayment simulates the gateway round trip: it approves
	// unconditionally after a fixed delay. Cancelling ctx (the buyer backed
	// out, the request died) aborts the simulation before it takes effect.
	ProcessPayment(ctx context.Context, plan models.BoostPlan, method string) (PaymentReceipt, error)
}

type promotionService struct {
	cfg *config.Config
}

// NewPromotionService creates a new PromotionService.
func NewPromotionService(cfg *config.Config) IPromotionService {
	return &promotionService{cfg: cfg}
}

func (s *promotionService) Plans() []PlanSpec {
	out := make([]PlanSpec, len(planTable))
	copy(out, planTable)
	return out
}

func (s *promotionService) ProcessPayment(ctx context.Context, plan models.BoostPlan, method string) (PaymentReceipt, error) {
	spec, ok := PlanSpecFor(plan)
	if !ok {
		return PaymentReceipt{}, ErrInvalidArgument
	}

	timer := time.NewTimer(s.cfg.PaymentProcessingDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return PaymentReceipt{}, ctx.Err()
	case <-timer.C:
	}

	return PaymentReceipt{
		ID:         uuid.NewString(),
		Plan:       plan,
		Method:     method,
		Amount:     spec.Price,
		ApprovedAt: time.Now().UTC(),
	}, nil
}
