package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, negative duration).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when an operation cannot proceed because of the
// current occupancy of a trip slot (e.g. a SHIFT move that would push a day
// plan past the trip's last day, or attaching to a slot that is taken).
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")
