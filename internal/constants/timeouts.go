package constants

import "time"

// Shared duration vocabulary used by timeouts.
// Keep these centralized to simplify timing tuning.
const (
	Duration1Second   = 1 * time.Second
	Duration10Seconds = 10 * time.Second
)

// Domain-level timeout constants.
const (
	// DefaultAuthTimeout bounds the whole resolve+connect+exchange sequence.
	DefaultAuthTimeout = Duration10Seconds

	// MinAuthTimeout is the smallest timeout a configuration may request.
	MinAuthTimeout = Duration1Second
)
