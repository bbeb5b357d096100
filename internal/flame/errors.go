package flame

import "errors"

// Domain errors for flame operations.
var (
	// ErrInvalidValue indicates an argument outside its valid range.
	ErrInvalidValue = errors.New("flame: invalid value")

	// ErrIndexOutOfRange indicates a transformation position or grid cell
	// that does not exist.
	ErrIndexOutOfRange = errors.New("flame: index out of range")

	// ErrEmptyFlame indicates a computation on a flame without transformations.
	ErrEmptyFlame = errors.New("flame: no transformations")

	// ErrSizeMismatch indicates accumulators of different dimensions.
	ErrSizeMismatch = errors.New("flame: accumulator size mismatch")
)
