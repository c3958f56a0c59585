package domain

// PlaceDescriptor describes a place inline when no durable place record
// exists yet. It carries just enough for display and map placement.
type PlaceDescriptor struct {
	Name string  `json:"name"`
	Kind string  `json:"kind,omitempty"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Annotation is the structured form of a stop's stay memo. Business logic
// works on this struct; the encoded text form (free text with the buffer and
// provisional-place facts as inline tags) exists only at the system's edges
// and is an internal/codec concern.
type Annotation struct {
	// Text is the user-visible free text, with all machine tags stripped.
	Text string
	// StayBuffer is an extra display-only minute allowance on the stay.
	// It does not stretch End past Start+Duration.
	StayBuffer int
	// Place is the provisional place descriptor, nil when the stop
	// references a durable place record instead.
	Place *PlaceDescriptor
}

// TravelAnnotation is the structured form of a stop's travel memo.
type TravelAnnotation struct {
	Text string
	// TravelBuffer is an extra display-only minute allowance on the
	// travel leg. It does not delay the next stop's earliest arrival.
	TravelBuffer int
}
