package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/obrandt/wayplan/internal/domain"
	"github.com/obrandt/wayplan/internal/repo"
	"github.com/obrandt/wayplan/internal/timeline"
)

// SyncResult is the outcome of saving a day's stop list: the authoritative
// persisted list (local placeholders replaced by real ids) and the 1-based
// positions of stops whose pinned start time was clamped forward because it
// was not physically reachable.
type SyncResult struct {
	Stops    []domain.Stop
	Adjusted []int
}

// StopService owns the day-editing session logic: every mutation runs the
// timeline engine's reset-then-recompute sequence and persists the whole day
// as one batch, so the stored list is always fully consistent.
type StopService struct {
	plans  repo.DayPlanRepo
	stops  repo.StopRepo
	places repo.PlaceRepo
}

// NewStopService constructs a StopService backed by the provided repos.
func NewStopService(plans repo.DayPlanRepo, stops repo.StopRepo, places repo.PlaceRepo) *StopService {
	return &StopService{plans: plans, stops: stops, places: places}
}

// ListByDayPlan returns a day's stops ordered by position.
// Always returns a non-nil slice so callers can safely range over it.
func (s *StopService) ListByDayPlan(ctx context.Context, dayPlanID int64) ([]domain.Stop, error) {
	if _, err := s.plans.GetByID(ctx, dayPlanID); err != nil {
		return nil, fmt.Errorf("service.StopService.ListByDayPlan: %w", err)
	}
	stops, err := s.stops.ListByDayPlan(ctx, dayPlanID)
	if err != nil {
		return nil, fmt.Errorf("service.StopService.ListByDayPlan: %w", err)
	}
	if stops == nil {
		return []domain.Stop{}, nil
	}
	return stops, nil
}

// SyncDay validates, recomputes, and persists a full day in one batch. The
// returned list is the authoritative persisted state, recomputed once more so
// callers can treat it as consistent without a follow-up read.
func (s *StopService) SyncDay(ctx context.Context, dayPlanID int64, stops []domain.Stop) (SyncResult, error) {
	if _, err := s.plans.GetByID(ctx, dayPlanID); err != nil {
		return SyncResult{}, fmt.Errorf("service.StopService.SyncDay: %w", err)
	}
	if err := s.validateStops(ctx, stops); err != nil {
		return SyncResult{}, err
	}

	computed, adjusted := timeline.Recompute(stops)

	saved, err := s.stops.ReplaceForDay(ctx, dayPlanID, computed)
	if err != nil {
		return SyncResult{}, fmt.Errorf("service.StopService.SyncDay: %w", err)
	}

	// Recompute the returned batch: idempotent on what we just wrote, and
	// it guarantees the caller never sees a half-derived list even if the
	// store normalized something.
	final, _ := timeline.Recompute(saved)
	return SyncResult{Stops: final, Adjusted: adjusted}, nil
}

// InsertStop inserts a new stop before index (0-based) and saves the day.
func (s *StopService) InsertStop(ctx context.Context, dayPlanID int64, index int, stop domain.Stop) (SyncResult, error) {
	return s.edit(ctx, dayPlanID, "InsertStop", func(stops []domain.Stop) ([]domain.Stop, []int) {
		return timeline.InsertAt(stops, index, stop)
	})
}

// RemoveStop deletes the stop at index (0-based) and saves the day.
func (s *StopService) RemoveStop(ctx context.Context, dayPlanID int64, index int) (SyncResult, error) {
	return s.edit(ctx, dayPlanID, "RemoveStop", func(stops []domain.Stop) ([]domain.Stop, []int) {
		return timeline.RemoveAt(stops, index)
	})
}

// MoveStop relocates the stop at from to index to (both 0-based) and saves.
func (s *StopService) MoveStop(ctx context.Context, dayPlanID int64, from, to int) (SyncResult, error) {
	return s.edit(ctx, dayPlanID, "MoveStop", func(stops []domain.Stop) ([]domain.Stop, []int) {
		return timeline.Move(stops, from, to)
	})
}

// UpdateStop replaces the stop at index (0-based) and saves the day.
func (s *StopService) UpdateStop(ctx context.Context, dayPlanID int64, index int, stop domain.Stop) (SyncResult, error) {
	return s.edit(ctx, dayPlanID, "UpdateStop", func(stops []domain.Stop) ([]domain.Stop, []int) {
		return timeline.UpdateAt(stops, index, stop)
	})
}

// PromotePlace turns the provisional place of the stop at index into a
// durable place record, pointing the stop at it and saving the day.
// Returns domain.ErrValidation when the stop has no provisional place.
func (s *StopService) PromotePlace(ctx context.Context, dayPlanID int64, index int) (SyncResult, error) {
	stops, err := s.stops.ListByDayPlan(ctx, dayPlanID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("service.StopService.PromotePlace: %w", err)
	}
	if index < 0 || index >= len(stops) {
		return SyncResult{}, fmt.Errorf("%w: no stop at index %d", domain.ErrValidation, index)
	}

	stop := stops[index]
	if stop.Note.Place == nil {
		return SyncResult{}, fmt.Errorf("%w: stop has no provisional place", domain.ErrValidation)
	}

	desc := *stop.Note.Place
	place, err := s.places.Create(ctx, domain.Place{
		Name: desc.Name, Kind: desc.Kind, Lat: desc.Lat, Lng: desc.Lng,
	})
	if err != nil {
		return SyncResult{}, fmt.Errorf("service.StopService.PromotePlace: %w", err)
	}

	stop.PlaceID = &place.ID
	stop.Note.Place = nil
	if stop.Name == "" {
		stop.Name = place.Name
	}

	return s.edit(ctx, dayPlanID, "PromotePlace", func(stops []domain.Stop) ([]domain.Stop, []int) {
		return timeline.UpdateAt(stops, index, stop)
	})
}

// edit loads the current day, applies one timeline mutation, validates, and
// persists the result as a batch.
func (s *StopService) edit(ctx context.Context, dayPlanID int64, op string, mutate func([]domain.Stop) ([]domain.Stop, []int)) (SyncResult, error) {
	if _, err := s.plans.GetByID(ctx, dayPlanID); err != nil {
		return SyncResult{}, fmt.Errorf("service.StopService.%s: %w", op, err)
	}

	current, err := s.stops.ListByDayPlan(ctx, dayPlanID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("service.StopService.%s: %w", op, err)
	}

	computed, adjusted := mutate(current)
	if err := s.validateStops(ctx, computed); err != nil {
		return SyncResult{}, err
	}

	saved, err := s.stops.ReplaceForDay(ctx, dayPlanID, computed)
	if err != nil {
		return SyncResult{}, fmt.Errorf("service.StopService.%s: %w", op, err)
	}

	final, _ := timeline.Recompute(saved)
	return SyncResult{Stops: final, Adjusted: adjusted}, nil
}

// validateStops enforces the save-time preconditions for a day's batch.
//   - Durations and travel minutes must be nonnegative.
//   - Manual start times must be well-formed "HH:MM" values.
//   - Every stop must be identifiable: a durable place reference, a
//     provisional place, or at least a display name. The engine tolerates
//     less, but a save must not fabricate a place.
func (s *StopService) validateStops(ctx context.Context, stops []domain.Stop) error {
	for i, stop := range stops {
		if stop.Duration < 0 {
			return fmt.Errorf("%w: stop %d: duration must be nonnegative", domain.ErrValidation, i+1)
		}
		if stop.Travel < 0 {
			return fmt.Errorf("%w: stop %d: travel must be nonnegative", domain.ErrValidation, i+1)
		}
		if _, err := timeline.ToMinutes(stop.Start); err != nil {
			return fmt.Errorf("%w: stop %d: %v", domain.ErrValidation, i+1, err)
		}
		if stop.PlaceID == nil && stop.Note.Place == nil && strings.TrimSpace(stop.Name) == "" {
			return fmt.Errorf("%w: stop %d: needs a place, a provisional place, or a name", domain.ErrValidation, i+1)
		}
		if stop.PlaceID != nil {
			if _, err := s.places.GetByID(ctx, *stop.PlaceID); err != nil {
				return fmt.Errorf("%w: stop %d: place %d does not exist", domain.ErrValidation, i+1, *stop.PlaceID)
			}
		}
	}
	return nil
}
