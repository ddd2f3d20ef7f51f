package availability

import "errors"

// Sentinel errors for slot conversion.
var (
	ErrInvalidSlot = errors.New("invalid availability slot")
)
