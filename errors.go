package surfacegrid

import "errors"

var (
	// ErrGridShape is returned when the X, Y and Z arrays of a Grid disagree
	// on their dimensions or when a row is ragged.
	ErrGridShape = errors.New("surfacegrid: malformed grid")

	// ErrCapacityExceeded is the panic value raised when a write would land
	// past the capacity reserved for the current fill. It signals a broken
	// worst-case computation, never a recoverable condition.
	ErrCapacityExceeded = errors.New("surfacegrid: segment capacity exceeded")

	// ErrInvalidLabel is returned when a string is not a row or column label.
	ErrInvalidLabel = errors.New("surfacegrid: invalid label")

	// ErrInvalidState is returned when persisted gradient or cutoff state
	// does not match the expected schema.
	ErrInvalidState = errors.New("surfacegrid: invalid persisted state")
)
