package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/obrandt/wayplan/internal/domain"
	"github.com/obrandt/wayplan/internal/placement"
	"github.com/obrandt/wayplan/internal/repo"
)

// PlacementRequest is a request to move a day plan into a trip slot under
// one of the four conflict policies.
type PlacementRequest struct {
	SourceDayID    int64
	TargetTripID   int64
	TargetDayIndex int
	Mode           placement.Mode
}

// DayPlanService implements business logic for DayPlan operations, including
// placement moves between trips and the unattached holding area.
type DayPlanService struct {
	trips repo.TripRepo
	plans repo.DayPlanRepo
}

// NewDayPlanService constructs a DayPlanService backed by the provided repos.
func NewDayPlanService(trips repo.TripRepo, plans repo.DayPlanRepo) *DayPlanService {
	return &DayPlanService{trips: trips, plans: plans}
}

// Create validates and persists a new day plan, attached or unattached.
// Attached creation requires an existing trip and an in-range day index;
// an occupied slot is reported as domain.ErrConflict by the repo.
func (s *DayPlanService) Create(ctx context.Context, plan domain.DayPlan) (domain.DayPlan, error) {
	if err := validateDayPlan(plan); err != nil {
		return domain.DayPlan{}, err
	}

	if plan.Attached() {
		trip, err := s.trips.GetByID(ctx, *plan.TripID)
		if err != nil {
			return domain.DayPlan{}, fmt.Errorf("service.DayPlanService.Create: %w", err)
		}
		if *plan.DayIndex < 1 || *plan.DayIndex > trip.DayCount {
			return domain.DayPlan{}, fmt.Errorf("%w: day_index %d outside 1..%d",
				domain.ErrValidation, *plan.DayIndex, trip.DayCount)
		}
	}

	result, err := s.plans.Create(ctx, plan)
	if err != nil {
		return domain.DayPlan{}, fmt.Errorf("service.DayPlanService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single day plan by ID.
func (s *DayPlanService) GetByID(ctx context.Context, id int64) (domain.DayPlan, error) {
	result, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return domain.DayPlan{}, fmt.Errorf("service.DayPlanService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip returns a trip's attached plans ordered by day index.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DayPlanService) ListByTrip(ctx context.Context, tripID int64) ([]domain.DayPlan, error) {
	plans, err := s.plans.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DayPlanService.ListByTrip: %w", err)
	}
	if plans == nil {
		return []domain.DayPlan{}, nil
	}
	return plans, nil
}

// ListHolding returns the unattached holding area, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DayPlanService) ListHolding(ctx context.Context) ([]domain.DayPlan, error) {
	plans, err := s.plans.ListUnattached(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DayPlanService.ListHolding: %w", err)
	}
	if plans == nil {
		return []domain.DayPlan{}, nil
	}
	return plans, nil
}

// UpdateMeta overwrites a plan's name and memo.
func (s *DayPlanService) UpdateMeta(ctx context.Context, plan domain.DayPlan) (domain.DayPlan, error) {
	if err := validateDayPlan(plan); err != nil {
		return domain.DayPlan{}, err
	}
	result, err := s.plans.UpdateMeta(ctx, plan)
	if err != nil {
		return domain.DayPlan{}, fmt.Errorf("service.DayPlanService.UpdateMeta: %w", err)
	}
	return result, nil
}

// Move places a day plan into a target trip slot under the requested mode.
// The resolver computes the complete outcome first; the repo then applies it
// in a single transaction, so a failed move changes nothing.
func (s *DayPlanService) Move(ctx context.Context, req PlacementRequest) error {
	source, err := s.plans.GetByID(ctx, req.SourceDayID)
	if err != nil {
		return fmt.Errorf("service.DayPlanService.Move: source: %w", err)
	}

	trip, err := s.trips.GetByID(ctx, req.TargetTripID)
	if err != nil {
		return fmt.Errorf("service.DayPlanService.Move: target trip: %w", err)
	}

	occupancy, err := s.plans.Occupancy(ctx, req.TargetTripID)
	if err != nil {
		return fmt.Errorf("service.DayPlanService.Move: %w", err)
	}

	outcome, err := placement.Resolve(
		placement.Source{PlanID: source.ID, TripID: source.TripID, DayIndex: source.DayIndex},
		placement.Target{TripID: trip.ID, DayCount: trip.DayCount, Occupancy: occupancy},
		req.TargetDayIndex,
		req.Mode,
	)
	if err != nil {
		return fmt.Errorf("service.DayPlanService.Move: %w", err)
	}

	if err := s.plans.ApplyPlacement(ctx, outcome); err != nil {
		return fmt.Errorf("service.DayPlanService.Move: %w", err)
	}
	return nil
}

// Detach moves a plan out of its trip slot into the holding area. It is the
// degenerate placement move with no plan attached afterward and always
// succeeds for an existing plan, attached or not.
func (s *DayPlanService) Detach(ctx context.Context, id int64) error {
	if err := s.plans.Detach(ctx, id); err != nil {
		return fmt.Errorf("service.DayPlanService.Detach: %w", err)
	}
	return nil
}

// Delete removes a day plan and its stops.
func (s *DayPlanService) Delete(ctx context.Context, id int64) error {
	if err := s.plans.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DayPlanService.Delete: %w", err)
	}
	return nil
}

// validateDayPlan enforces business rules common to Create and UpdateMeta.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - TripID and DayIndex must be set together or not at all.
func validateDayPlan(plan domain.DayPlan) error {
	if strings.TrimSpace(plan.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if (plan.TripID == nil) != (plan.DayIndex == nil) {
		return fmt.Errorf("%w: trip_id and day_index must be set together", domain.ErrValidation)
	}
	return nil
}
