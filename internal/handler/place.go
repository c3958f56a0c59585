package handler

import (
	"encoding/json"
	"net/http"

	"github.com/obrandt/wayplan/internal/domain"
)

// placeRequest is the body for POST /places.
type placeRequest struct {
	Name string  `json:"name"`
	Kind string  `json:"kind"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// CreatePlace handles POST /places.
func (s *Server) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var body placeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondBadRequest(w, "malformed request body")
		return
	}

	created, err := s.places.Create(r.Context(), domain.Place{
		Name: body.Name, Kind: body.Kind, Lat: body.Lat, Lng: body.Lng,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListPlaces handles GET /places.
func (s *Server) ListPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := s.places.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, places)
}

// GetPlace handles GET /places/{placeID}.
func (s *Server) GetPlace(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "placeID")
	if !ok {
		respondBadRequest(w, "place id must be a positive integer")
		return
	}

	place, err := s.places.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, place)
}
