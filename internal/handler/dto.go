package handler

import (
	"fmt"

	"github.com/obrandt/wayplan/internal/codec"
	"github.com/obrandt/wayplan/internal/domain"
)

// stopPayload is the wire form of a single stop in the day-editing API.
// A null id marks a stop created in the client and not yet saved; the sync
// response carries the database-assigned id back. The annotation strings are
// the encoded text form (user text plus inline tags), so a client can hold a
// whole day in one flat structure and round-trip it unchanged.
type stopPayload struct {
	ID               *int64  `json:"id"`
	PlaceID          *int64  `json:"placeId"`
	Order            int     `json:"order"`
	StartTime        *string `json:"startTime"`
	Duration         int     `json:"duration"`
	EndTime          *string `json:"endTime"`
	TravelDuration   int     `json:"travelDuration"`
	TransportMode    string  `json:"transportMode"`
	Name             string  `json:"name,omitempty"`
	Annotation       *string `json:"annotation"`
	TravelAnnotation string  `json:"travelAnnotation"`
}

// syncResponse is the reply to any day-editing call: the authoritative stop
// list after recomputation, plus the 1-based positions of stops whose pinned
// start time had to be clamped forward.
type syncResponse struct {
	Stops    []stopPayload `json:"stops"`
	Adjusted []int         `json:"adjusted"`
}

// payloadToStop converts one wire stop into its domain form.
func payloadToStop(p stopPayload) (domain.Stop, error) {
	mode, err := parseMode(p.TransportMode)
	if err != nil {
		return domain.Stop{}, err
	}

	stop := domain.Stop{
		Position: p.Order,
		PlaceID:  p.PlaceID,
		Name:     p.Name,
		Duration: p.Duration,
		Travel:   p.TravelDuration,
		Mode:     mode,
	}

	if p.ID != nil && *p.ID > 0 {
		stop.Ref = domain.PersistedRef(*p.ID)
	} else {
		stop.Ref = domain.NewLocalRef()
	}
	if p.StartTime != nil {
		stop.Start = *p.StartTime
	}
	if p.Annotation != nil {
		stop.Note = codec.DecodeStay(*p.Annotation)
	}
	stop.TravelNote = codec.DecodeTravel(p.TravelAnnotation)

	return stop, nil
}

// payloadToStops converts a whole wire batch, reporting the first bad entry.
func payloadToStops(payloads []stopPayload) ([]domain.Stop, error) {
	stops := make([]domain.Stop, len(payloads))
	for i, p := range payloads {
		stop, err := payloadToStop(p)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i+1, err)
		}
		stops[i] = stop
	}
	return stops, nil
}

// stopToPayload converts a domain stop into its wire form.
func stopToPayload(stop domain.Stop) stopPayload {
	p := stopPayload{
		PlaceID:          stop.PlaceID,
		Order:            stop.Position,
		Duration:         stop.Duration,
		TravelDuration:   stop.Travel,
		TransportMode:    string(stop.Mode),
		Name:             stop.Name,
		TravelAnnotation: codec.EncodeTravel(stop.TravelNote),
	}
	if stop.Ref.Persisted() {
		id := stop.Ref.ID
		p.ID = &id
	}
	if stop.Start != "" {
		start := stop.Start
		p.StartTime = &start
	}
	if stop.End != "" {
		end := stop.End
		p.EndTime = &end
	}
	if note := codec.EncodeStay(stop.Note); note != "" {
		p.Annotation = &note
	}
	return p
}

// syncResultToResponse converts a service.SyncResult-shaped pair into the
// wire reply. Both slices are always non-nil in the JSON output.
func syncResultToResponse(stops []domain.Stop, adjusted []int) syncResponse {
	out := syncResponse{
		Stops:    make([]stopPayload, len(stops)),
		Adjusted: adjusted,
	}
	for i, stop := range stops {
		out.Stops[i] = stopToPayload(stop)
	}
	if out.Adjusted == nil {
		out.Adjusted = []int{}
	}
	return out
}

// parseMode validates a wire transport mode. An empty string defaults to
// walking, matching what a freshly created client-side stop carries.
func parseMode(raw string) (domain.TransportMode, error) {
	switch domain.TransportMode(raw) {
	case domain.ModeWalk, domain.ModeCar, domain.ModeTransit, domain.ModeBike:
		return domain.TransportMode(raw), nil
	case "":
		return domain.ModeWalk, nil
	default:
		return "", fmt.Errorf("unknown transport mode %q", raw)
	}
}
