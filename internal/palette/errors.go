package palette

import "errors"

// ErrInvalidValue indicates a channel, proportion, index or palette size
// outside its valid range.
var ErrInvalidValue = errors.New("palette: invalid value")
