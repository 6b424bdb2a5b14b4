package navigator

import "errors"

var (
	// ErrInvalidDirection indicates a direction other than next or prev.
	ErrInvalidDirection = errors.New("invalid direction")
)
