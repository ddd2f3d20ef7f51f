package service

import "errors"

// Sentinel error kinds returned by the Service. The HTTP layer maps them to
// status codes with errors.Is.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrBackpressure   = errors.New("too many pending optimizations")
	ErrTimeout        = errors.New("optimization timed out")
	ErrNotStarted     = errors.New("service not started")
)
