package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/obrandt/wayplan/internal/domain"
)

// tripRequest is the body for POST /trips and PUT /trips/{tripID}.
type tripRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"` // "2006-01-02"
	DayCount  int    `json:"day_count"`
	Notes     string `json:"notes"`
}

// toDomain converts the request body into a domain.Trip with the given id
// (zero for creation).
func (b tripRequest) toDomain(id int64) (domain.Trip, error) {
	start, err := time.Parse("2006-01-02", b.StartDate)
	if err != nil {
		return domain.Trip{}, err
	}
	return domain.Trip{
		ID:        id,
		Name:      b.Name,
		StartDate: start,
		DayCount:  b.DayCount,
		Notes:     b.Notes,
	}, nil
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body tripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	trip, err := body.toDomain(0)
	if err != nil {
		respondBadRequest(w, "start_date must be a YYYY-MM-DD date")
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "tripID")
	if !ok {
		respondBadRequest(w, "trip id must be a positive integer")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{tripID}. Shrinking day_count detaches the
// plans that no longer fit; they land in the holding area, not the trash.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "tripID")
	if !ok {
		respondBadRequest(w, "trip id must be a positive integer")
		return
	}

	var body tripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	trip, err := body.toDomain(id)
	if err != nil {
		respondBadRequest(w, "start_date must be a YYYY-MM-DD date")
		return
	}

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// dayCountRequest is the body for PUT /trips/{tripID}/day-count.
type dayCountRequest struct {
	DayCount int `json:"day_count"`
}

// UpdateTripDayCount handles PUT /trips/{tripID}/day-count. It resizes the
// trip without touching any other field, so clients dragging a day-count
// slider do not have to echo back the whole trip. Shrinking detaches the
// plans that no longer fit.
func (s *Server) UpdateTripDayCount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "tripID")
	if !ok {
		respondBadRequest(w, "trip id must be a positive integer")
		return
	}

	var body dayCountRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	trip.DayCount = body.DayCount

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "tripID")
	if !ok {
		respondBadRequest(w, "trip id must be a positive integer")
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTripDayPlans handles GET /trips/{tripID}/day-plans.
func (s *Server) ListTripDayPlans(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "tripID")
	if !ok {
		respondBadRequest(w, "trip id must be a positive integer")
		return
	}

	if _, err := s.trips.GetByID(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	plans, err := s.plans.ListByTrip(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plans)
}
