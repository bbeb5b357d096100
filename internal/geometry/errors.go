package geometry

import "errors"

// ErrInvalidValue indicates a rectangle dimension or aspect ratio that is not strictly positive.
var ErrInvalidValue = errors.New("geometry: invalid value")
