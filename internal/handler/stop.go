package handler

import (
	"encoding/json"
	"net/http"
)

// insertStopRequest is the body for POST /day-plans/{dayPlanID}/stops.
// Index is the 0-based position the new stop is inserted before; an index at
// or past the end appends.
type insertStopRequest struct {
	Index int         `json:"index"`
	Stop  stopPayload `json:"stop"`
}

// moveStopRequest is the body for POST /day-plans/{dayPlanID}/stops/{index}/move.
type moveStopRequest struct {
	To int `json:"to"`
}

// ListStops handles GET /day-plans/{dayPlanID}/stops.
func (s *Server) ListStops(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "dayPlanID")
	if !ok {
		respondBadRequest(w, "day plan id must be a positive integer")
		return
	}

	stops, err := s.stops.ListByDayPlan(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, syncResultToResponse(stops, nil))
}

// SyncStops handles PUT /day-plans/{dayPlanID}/stops: replace the whole day
// with the submitted batch. The reply is the authoritative recomputed list,
// with database ids filled in for stops that arrived with a null id, plus the
// 1-based positions whose pinned start time was clamped forward.
func (s *Server) SyncStops(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "dayPlanID")
	if !ok {
		respondBadRequest(w, "day plan id must be a positive integer")
		return
	}

	var payloads []stopPayload
	if err := json.NewDecoder(r.Body).Decode(&payloads); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	stops, err := payloadToStops(payloads)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	result, err := s.stops.SyncDay(r.Context(), id, stops)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, syncResultToResponse(result.Stops, result.Adjusted))
}

// InsertStop handles POST /day-plans/{dayPlanID}/stops.
func (s *Server) InsertStop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "dayPlanID")
	if !ok {
		respondBadRequest(w, "day plan id must be a positive integer")
		return
	}

	var body insertStopRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	stop, err := payloadToStop(body.Stop)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	result, err := s.stops.InsertStop(r.Context(), id, body.Index, stop)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, syncResultToResponse(result.Stops, result.Adjusted))
}

// UpdateStop handles PUT /day-plans/{dayPlanID}/stops/{index}.
func (s *Server) UpdateStop(w http.ResponseWriter, r *http.Request) {
	id, index, ok := stopPath(w, r)
	if !ok {
		return
	}

	var payload stopPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	stop, err := payloadToStop(payload)
	if err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	result, err := s.stops.UpdateStop(r.Context(), id, index, stop)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, syncResultToResponse(result.Stops, result.Adjusted))
}

// RemoveStop handles DELETE /day-plans/{dayPlanID}/stops/{index}.
func (s *Server) RemoveStop(w http.ResponseWriter, r *http.Request) {
	id, index, ok := stopPath(w, r)
	if !ok {
		return
	}

	result, err := s.stops.RemoveStop(r.Context(), id, index)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, syncResultToResponse(result.Stops, result.Adjusted))
}

// MoveStop handles POST /day-plans/{dayPlanID}/stops/{index}/move.
func (s *Server) MoveStop(w http.ResponseWriter, r *http.Request) {
	id, index, ok := stopPath(w, r)
	if !ok {
		return
	}

	var body moveStopRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}
	if body.To < 0 {
		respondBadRequest(w, "to must be a nonnegative index")
		return
	}

	result, err := s.stops.MoveStop(r.Context(), id, index, body.To)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, syncResultToResponse(result.Stops, result.Adjusted))
}

// PromotePlace handles POST /day-plans/{dayPlanID}/stops/{index}/promote-place:
// turn the stop's provisional place into a durable place record.
func (s *Server) PromotePlace(w http.ResponseWriter, r *http.Request) {
	id, index, ok := stopPath(w, r)
	if !ok {
		return
	}

	result, err := s.stops.PromotePlace(r.Context(), id, index)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, syncResultToResponse(result.Stops, result.Adjusted))
}

// stopPath extracts the day plan id and 0-based stop index shared by the
// per-stop routes, writing the 400 itself when either is malformed.
func stopPath(w http.ResponseWriter, r *http.Request) (int64, int, bool) {
	id, ok := pathID(r, "dayPlanID")
	if !ok {
		respondBadRequest(w, "day plan id must be a positive integer")
		return 0, 0, false
	}
	index, ok := pathIndex(r, "index")
	if !ok {
		respondBadRequest(w, "stop index must be a nonnegative integer")
		return 0, 0, false
	}
	return id, index, true
}
