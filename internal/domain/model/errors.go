package model

import "errors"

// Sentinel errors for decoding and validating domain records.
var (
	ErrUnknownCommunication = errors.New("unknown communication mode")
	ErrUnknownPace          = errors.New("unknown pace")
	ErrInvalidAvailability  = errors.New("invalid availability matrix")
	ErrInvalidWeights       = errors.New("invalid weights")
)
