package service

import (
	"context"
	"fmt"

	"github.com/obrandt/wayplan/internal/domain"
	"github.com/obrandt/wayplan/internal/repo"
)

// ExportService assembles a full flat export of all trips, day plans, and stops.
type ExportService struct {
	trips repo.TripRepo
	plans repo.DayPlanRepo
	stops repo.StopRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, plans repo.DayPlanRepo, stops repo.StopRepo) *ExportService {
	return &ExportService{trips: trips, plans: plans, stops: stops}
}

// Export returns one ExportRow per stop across all trips. Trips with no
// attached plans contribute one row with empty plan and stop fields; plans
// with no stops contribute one row with empty stop fields.
// Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, trip := range trips {
		base := domain.ExportRow{
			TripID:        trip.ID,
			TripName:      trip.Name,
			TripStartDate: trip.StartDate.Format("2006-01-02"),
		}

		plans, err := s.plans.ListByTrip(ctx, trip.ID)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: %w", err)
		}
		if len(plans) == 0 {
			rows = append(rows, base)
			continue
		}

		for _, plan := range plans {
			planRow := base
			if plan.DayIndex != nil {
				planRow.DayIndex = *plan.DayIndex
			}
			planRow.DayName = plan.Name

			stops, err := s.stops.ListByDayPlan(ctx, plan.ID)
			if err != nil {
				return nil, fmt.Errorf("service.ExportService.Export: %w", err)
			}
			if len(stops) == 0 {
				rows = append(rows, planRow)
				continue
			}

			for _, stop := range stops {
				row := planRow
				row.StopName = stop.Name
				row.StartTime = stop.Start
				row.EndTime = stop.End
				row.Duration = stop.Duration
				row.Travel = stop.Travel
				row.Mode = stop.Mode
				row.Notes = stop.Note.Text
				rows = append(rows, row)
			}
		}
	}

	return rows, nil
}
