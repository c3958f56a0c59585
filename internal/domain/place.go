package domain

import "time"

// Place is a durable place record. Stops reference it by ID once a
// provisional place has been promoted (or the user picked an existing one).
type Place struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind,omitempty"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	CreatedAt time.Time `json:"created_at"`
}

// Descriptor returns the inline descriptor form of the place.
func (p Place) Descriptor() PlaceDescriptor {
	return PlaceDescriptor{Name: p.Name, Kind: p.Kind, Lat: p.Lat, Lng: p.Lng}
}
