package handler

import (
	"encoding/json"
	"net/http"

	"github.com/obrandt/wayplan/internal/domain"
	"github.com/obrandt/wayplan/internal/placement"
	"github.com/obrandt/wayplan/internal/service"
)

// dayPlanRequest is the body for POST /day-plans and PUT /day-plans/{dayPlanID}.
// trip_id and day_index are optional together: both present creates an
// attached plan, both absent a holding-area plan.
type dayPlanRequest struct {
	TripID   *int64 `json:"trip_id"`
	DayIndex *int   `json:"day_index"`
	Name     string `json:"name"`
	Memo     string `json:"memo"`
}

// moveRequest is the body for POST /day-plans/{dayPlanID}/move.
type moveRequest struct {
	TargetTripID   int64  `json:"target_trip_id"`
	TargetDayIndex int    `json:"target_day_index"`
	Mode           string `json:"mode"`
}

// CreateDayPlan handles POST /day-plans.
func (s *Server) CreateDayPlan(w http.ResponseWriter, r *http.Request) {
	var body dayPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	created, err := s.plans.Create(r.Context(), domain.DayPlan{
		TripID:   body.TripID,
		DayIndex: body.DayIndex,
		Name:     body.Name,
		Memo:     body.Memo,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetDayPlan handles GET /day-plans/{dayPlanID}.
func (s *Server) GetDayPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "dayPlanID")
	if !ok {
		respondBadRequest(w, "day plan id must be a positive integer")
		return
	}

	plan, err := s.plans.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}

// ListHolding handles GET /day-plans/holding: the unattached holding area.
func (s *Server) ListHolding(w http.ResponseWriter, r *http.Request) {
	plans, err := s.plans.ListHolding(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, plans)
}

// UpdateDayPlan handles PUT /day-plans/{dayPlanID}. Only name and memo are
// writable here; attachment changes go through move and detach.
func (s *Server) UpdateDayPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "dayPlanID")
	if !ok {
		respondBadRequest(w, "day plan id must be a positive integer")
		return
	}

	var body dayPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	updated, err := s.plans.UpdateMeta(r.Context(), domain.DayPlan{
		ID:   id,
		Name: body.Name,
		Memo: body.Memo,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// MoveDayPlan handles POST /day-plans/{dayPlanID}/move: place the plan into a
// trip slot under one of the four conflict policies. A rejected move changes
// nothing; a successful one returns the freshly loaded plan.
func (s *Server) MoveDayPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "dayPlanID")
	if !ok {
		respondBadRequest(w, "day plan id must be a positive integer")
		return
	}

	var body moveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	mode, err := placement.ParseMode(body.Mode)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	err = s.plans.Move(r.Context(), service.PlacementRequest{
		SourceDayID:    id,
		TargetTripID:   body.TargetTripID,
		TargetDayIndex: body.TargetDayIndex,
		Mode:           mode,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	moved, err := s.plans.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, moved)
}

// DetachDayPlan handles POST /day-plans/{dayPlanID}/detach: move the plan out
// of its trip slot into the holding area.
func (s *Server) DetachDayPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "dayPlanID")
	if !ok {
		respondBadRequest(w, "day plan id must be a positive integer")
		return
	}

	if err := s.plans.Detach(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	detached, err := s.plans.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detached)
}

// DeleteDayPlan handles DELETE /day-plans/{dayPlanID}.
func (s *Server) DeleteDayPlan(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "dayPlanID")
	if !ok {
		respondBadRequest(w, "day plan id must be a positive integer")
		return
	}

	if err := s.plans.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
