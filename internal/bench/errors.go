package bench

import "errors"

var (
	// ErrUnhealthy means the target service did not answer /healthz with 200.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrVerification means at least one response broke a formation invariant.
	ErrVerification = errors.New("formation verification failed")
	// ErrScenario means the scenario file could not be used.
	ErrScenario = errors.New("invalid scenario")
)
