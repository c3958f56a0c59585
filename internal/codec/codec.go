// Package codec translates between the structured annotation types in
// internal/domain and the single free-text columns they are stored in.
//
// The backing store gives a stop exactly one note column and one travel-note
// column, both of which the user edits as ordinary text. Three machine facts
// ride along inside them as inline tags: a stay-buffer minute count
// ("#si:15"), a travel-buffer minute count ("#mi:10"), and a provisional
// place descriptor ("#place:" followed by a compact JSON payload, always the
// last thing in the note). Only the edges call this package: the repo layer
// for the text columns and the handler DTO layer for the wire payload, which
// carries the same encoded form. Business logic never sees the encoded
// strings.
package codec

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/obrandt/wayplan/internal/domain"
)

// Tag prefixes. TagStay and TagTravel are followed by a nonnegative integer;
// PlaceDelim is followed by a JSON-encoded domain.PlaceDescriptor and must be
// the last thing in the note, because decoding splits at its first occurrence
// and treats everything before it as user text.
const (
	TagStay    = "#si:"
	TagTravel  = "#mi:"
	PlaceDelim = "#place:"
)

var (
	stayRe   = regexp.MustCompile(`#si:(\d+)`)
	travelRe = regexp.MustCompile(`#mi:(\d+)`)
)

// Clean strips all three tag forms from raw and trims whitespace. Use it
// whenever a stored note is shown to or edited by a person.
func Clean(raw string) string {
	if i := strings.Index(raw, PlaceDelim); i >= 0 {
		raw = raw[:i]
	}
	raw = stayRe.ReplaceAllString(raw, "")
	raw = travelRe.ReplaceAllString(raw, "")
	return strings.TrimSpace(raw)
}

// ExtractBuffer returns the integer following the first occurrence of the
// given tag prefix in raw, or 0 when the tag is absent or malformed.
func ExtractBuffer(raw, tag string) int {
	var re *regexp.Regexp
	switch tag {
	case TagStay:
		re = stayRe
	case TagTravel:
		re = travelRe
	default:
		return 0
	}
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// EncodeProvisionalPlace appends the place payload to the cleaned note text.
func EncodeProvisionalPlace(raw string, place domain.PlaceDescriptor) string {
	payload, _ := json.Marshal(place) // PlaceDescriptor always marshals
	text := Clean(raw)
	if text == "" {
		return PlaceDelim + string(payload)
	}
	return text + " " + PlaceDelim + string(payload)
}

// DecodeProvisionalPlace returns the place payload embedded in raw, or nil
// when no delimiter is present or the trailing payload does not parse.
// A malformed payload means "no provisional place", never a hard failure.
func DecodeProvisionalPlace(raw string) *domain.PlaceDescriptor {
	i := strings.Index(raw, PlaceDelim)
	if i < 0 {
		return nil
	}
	var place domain.PlaceDescriptor
	if err := json.Unmarshal([]byte(raw[i+len(PlaceDelim):]), &place); err != nil {
		return nil
	}
	return &place
}

// EncodeStay serializes a structured stay annotation into its text-column form.
func EncodeStay(a domain.Annotation) string {
	var b strings.Builder
	b.WriteString(Clean(a.Text))
	if a.StayBuffer > 0 {
		appendToken(&b, TagStay+strconv.Itoa(a.StayBuffer))
	}
	if a.Place != nil {
		payload, _ := json.Marshal(a.Place)
		appendToken(&b, PlaceDelim+string(payload))
	}
	return b.String()
}

// DecodeStay parses a stay-note column back into its structured form.
func DecodeStay(raw string) domain.Annotation {
	return domain.Annotation{
		Text:       Clean(raw),
		StayBuffer: ExtractBuffer(raw, TagStay),
		Place:      DecodeProvisionalPlace(raw),
	}
}

// EncodeTravel serializes a structured travel annotation into its text-column form.
func EncodeTravel(a domain.TravelAnnotation) string {
	var b strings.Builder
	b.WriteString(Clean(a.Text))
	if a.TravelBuffer > 0 {
		appendToken(&b, fmt.Sprintf("%s%d", TagTravel, a.TravelBuffer))
	}
	return b.String()
}

// DecodeTravel parses a travel-note column back into its structured form.
func DecodeTravel(raw string) domain.TravelAnnotation {
	return domain.TravelAnnotation{
		Text:         Clean(raw),
		TravelBuffer: ExtractBuffer(raw, TagTravel),
	}
}

// appendToken writes token to b, separated by a space when b is non-empty.
func appendToken(b *strings.Builder, token string) {
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	b.WriteString(token)
}
