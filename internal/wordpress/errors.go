package wordpress

import "errors"

// Error types for the wordpress package.
var (
	// ErrNotFound is returned when a slug query matches no record.
	// Callers render a 404, not a degraded error state.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable is returned when the content source is unreachable or
	// responds non-2xx. Callers degrade to an error-state render.
	ErrUnavailable = errors.New("content source unavailable")
)
