// Package handler implements the HTTP handlers for the Wayplan API.
// All handlers are methods on Server; routing is hand-wired on chi in Routes.
// Methods are split into domain-specific files (health.go, trip.go, etc.) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/obrandt/wayplan/internal/domain"
	"github.com/obrandt/wayplan/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id int64) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id int64) error
}

// DayPlanServicer defines the business operations the day-plan handlers
// depend on, including placement moves and the holding area.
type DayPlanServicer interface {
	Create(ctx context.Context, plan domain.DayPlan) (domain.DayPlan, error)
	GetByID(ctx context.Context, id int64) (domain.DayPlan, error)
	ListByTrip(ctx context.Context, tripID int64) ([]domain.DayPlan, error)
	ListHolding(ctx context.Context) ([]domain.DayPlan, error)
	UpdateMeta(ctx context.Context, plan domain.DayPlan) (domain.DayPlan, error)
	Move(ctx context.Context, req service.PlacementRequest) error
	Detach(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// StopServicer defines the day-editing operations the stop handlers depend on.
type StopServicer interface {
	ListByDayPlan(ctx context.Context, dayPlanID int64) ([]domain.Stop, error)
	SyncDay(ctx context.Context, dayPlanID int64, stops []domain.Stop) (service.SyncResult, error)
	InsertStop(ctx context.Context, dayPlanID int64, index int, stop domain.Stop) (service.SyncResult, error)
	RemoveStop(ctx context.Context, dayPlanID int64, index int) (service.SyncResult, error)
	MoveStop(ctx context.Context, dayPlanID int64, from, to int) (service.SyncResult, error)
	UpdateStop(ctx context.Context, dayPlanID int64, index int, stop domain.Stop) (service.SyncResult, error)
	PromotePlace(ctx context.Context, dayPlanID int64, index int) (service.SyncResult, error)
}

// PlaceServicer defines the business operations the place handlers depend on.
type PlaceServicer interface {
	Create(ctx context.Context, place domain.Place) (domain.Place, error)
	GetByID(ctx context.Context, id int64) (domain.Place, error)
	List(ctx context.Context) ([]domain.Place, error)
}

// ExportServicer defines the export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds the service dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trips  TripServicer
	plans  DayPlanServicer
	stops  StopServicer
	places PlaceServicer
	export ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, plans DayPlanServicer, stops StopServicer, places PlaceServicer, export ExportServicer) *Server {
	return &Server{trips: trips, plans: plans, stops: stops, places: places, export: export}
}

// Routes mounts every API endpoint on a fresh chi router.
// Wire it in main.go under the global middleware stack.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Get("/{tripID}", s.GetTrip)
		r.Put("/{tripID}", s.UpdateTrip)
		r.Put("/{tripID}/day-count", s.UpdateTripDayCount)
		r.Delete("/{tripID}", s.DeleteTrip)
		r.Get("/{tripID}/day-plans", s.ListTripDayPlans)
	})

	r.Route("/day-plans", func(r chi.Router) {
		r.Post("/", s.CreateDayPlan)
		// /holding before /{dayPlanID} so chi does not treat it as an id.
		r.Get("/holding", s.ListHolding)
		r.Get("/{dayPlanID}", s.GetDayPlan)
		r.Put("/{dayPlanID}", s.UpdateDayPlan)
		r.Delete("/{dayPlanID}", s.DeleteDayPlan)
		r.Post("/{dayPlanID}/move", s.MoveDayPlan)
		r.Post("/{dayPlanID}/detach", s.DetachDayPlan)

		r.Get("/{dayPlanID}/stops", s.ListStops)
		r.Put("/{dayPlanID}/stops", s.SyncStops)
		r.Post("/{dayPlanID}/stops", s.InsertStop)
		r.Put("/{dayPlanID}/stops/{index}", s.UpdateStop)
		r.Delete("/{dayPlanID}/stops/{index}", s.RemoveStop)
		r.Post("/{dayPlanID}/stops/{index}/move", s.MoveStop)
		r.Post("/{dayPlanID}/stops/{index}/promote-place", s.PromotePlace)
	})

	r.Route("/places", func(r chi.Router) {
		r.Post("/", s.CreatePlace)
		r.Get("/", s.ListPlaces)
		r.Get("/{placeID}", s.GetPlace)
	})

	r.Get("/export", s.GetExport)

	return r
}

// pathID parses the named chi URL parameter as an int64 database key.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// pathIndex parses the named chi URL parameter as a 0-based list index.
func pathIndex(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
