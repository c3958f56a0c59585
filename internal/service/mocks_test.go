package service_test

import (
	"context"

	"github.com/obrandt/wayplan/internal/domain"
	"github.com/obrandt/wayplan/internal/placement"
	"github.com/obrandt/wayplan/internal/repo"
)

// Hand-written test doubles for the repo interfaces. Each method delegates to
// an optional function field; unset fields return zero values so tests only
// wire what they exercise.

type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id int64) (domain.Trip, error)
	list    func(ctx context.Context) ([]domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id int64) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}

func (m *mockTripRepo) GetByID(ctx context.Context, id int64) (domain.Trip, error) {
	return m.getByID(ctx, id)
}

func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}

func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}

func (m *mockTripRepo) Delete(ctx context.Context, id int64) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockDayPlanRepo struct {
	create         func(ctx context.Context, plan domain.DayPlan) (domain.DayPlan, error)
	getByID        func(ctx context.Context, id int64) (domain.DayPlan, error)
	listByTrip     func(ctx context.Context, tripID int64) ([]domain.DayPlan, error)
	listUnattached func(ctx context.Context) ([]domain.DayPlan, error)
	occupancy      func(ctx context.Context, tripID int64) (map[int]int64, error)
	updateMeta     func(ctx context.Context, plan domain.DayPlan) (domain.DayPlan, error)
	detach         func(ctx context.Context, id int64) error
	detachBeyond   func(ctx context.Context, tripID int64, dayCount int) error
	applyPlacement func(ctx context.Context, out placement.Outcome) error
	deleteFn       func(ctx context.Context, id int64) error
}

func (m *mockDayPlanRepo) Create(ctx context.Context, plan domain.DayPlan) (domain.DayPlan, error) {
	return m.create(ctx, plan)
}

func (m *mockDayPlanRepo) GetByID(ctx context.Context, id int64) (domain.DayPlan, error) {
	return m.getByID(ctx, id)
}

func (m *mockDayPlanRepo) ListByTrip(ctx context.Context, tripID int64) ([]domain.DayPlan, error) {
	return m.listByTrip(ctx, tripID)
}

func (m *mockDayPlanRepo) ListUnattached(ctx context.Context) ([]domain.DayPlan, error) {
	return m.listUnattached(ctx)
}

func (m *mockDayPlanRepo) Occupancy(ctx context.Context, tripID int64) (map[int]int64, error) {
	return m.occupancy(ctx, tripID)
}

func (m *mockDayPlanRepo) UpdateMeta(ctx context.Context, plan domain.DayPlan) (domain.DayPlan, error) {
	return m.updateMeta(ctx, plan)
}

func (m *mockDayPlanRepo) Detach(ctx context.Context, id int64) error {
	return m.detach(ctx, id)
}

func (m *mockDayPlanRepo) DetachBeyond(ctx context.Context, tripID int64, dayCount int) error {
	if m.detachBeyond != nil {
		return m.detachBeyond(ctx, tripID, dayCount)
	}
	return nil
}

func (m *mockDayPlanRepo) ApplyPlacement(ctx context.Context, out placement.Outcome) error {
	return m.applyPlacement(ctx, out)
}

func (m *mockDayPlanRepo) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

var _ repo.DayPlanRepo = (*mockDayPlanRepo)(nil)

type mockStopRepo struct {
	listByDayPlan func(ctx context.Context, dayPlanID int64) ([]domain.Stop, error)
	replaceForDay func(ctx context.Context, dayPlanID int64, stops []domain.Stop) ([]domain.Stop, error)
}

func (m *mockStopRepo) ListByDayPlan(ctx context.Context, dayPlanID int64) ([]domain.Stop, error) {
	return m.listByDayPlan(ctx, dayPlanID)
}

func (m *mockStopRepo) ReplaceForDay(ctx context.Context, dayPlanID int64, stops []domain.Stop) ([]domain.Stop, error) {
	return m.replaceForDay(ctx, dayPlanID, stops)
}

var _ repo.StopRepo = (*mockStopRepo)(nil)

type mockPlaceRepo struct {
	create  func(ctx context.Context, place domain.Place) (domain.Place, error)
	getByID func(ctx context.Context, id int64) (domain.Place, error)
	list    func(ctx context.Context) ([]domain.Place, error)
}

func (m *mockPlaceRepo) Create(ctx context.Context, place domain.Place) (domain.Place, error) {
	return m.create(ctx, place)
}

func (m *mockPlaceRepo) GetByID(ctx context.Context, id int64) (domain.Place, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return domain.Place{ID: id}, nil
}

func (m *mockPlaceRepo) List(ctx context.Context) ([]domain.Place, error) {
	return m.list(ctx)
}

var _ repo.PlaceRepo = (*mockPlaceRepo)(nil)

// passthroughStopRepo is a StopRepo whose ReplaceForDay assigns sequential
// ids to unsaved stops and returns the batch as the store would.
type passthroughStopRepo struct {
	stored []domain.Stop
	nextID int64
}

func (m *passthroughStopRepo) ListByDayPlan(_ context.Context, _ int64) ([]domain.Stop, error) {
	return m.stored, nil
}

func (m *passthroughStopRepo) ReplaceForDay(_ context.Context, dayPlanID int64, stops []domain.Stop) ([]domain.Stop, error) {
	saved := make([]domain.Stop, len(stops))
	copy(saved, stops)
	for i := range saved {
		if !saved[i].Ref.Persisted() {
			m.nextID++
			saved[i].Ref = domain.PersistedRef(m.nextID)
		}
		saved[i].DayPlanID = dayPlanID
		saved[i].Position = i + 1
	}
	m.stored = saved
	return saved, nil
}

var _ repo.StopRepo = (*passthroughStopRepo)(nil)

// planExists returns a DayPlan repo that answers GetByID for any id.
func planExists() *mockDayPlanRepo {
	return &mockDayPlanRepo{
		getByID: func(_ context.Context, id int64) (domain.DayPlan, error) {
			return domain.DayPlan{ID: id, Name: "Day"}, nil
		},
	}
}
