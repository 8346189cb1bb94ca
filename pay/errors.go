package pay

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidTimeFormat is returned when a start or end time is not a
	// two-field "HH:MM" value inside [00:00, 24:00].
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrInvalidPolicy is returned when rates, bands or break tiers are malformed.
	ErrInvalidPolicy = errors.New("invalid pay policy")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// TimeFormatError says which input failed to parse and why.
type TimeFormatError struct {
	Field  string // "start", "end", or a band name
	Value  string
	Reason string
}

func (e *TimeFormatError) Error() string {
	return fmt.Sprintf("invalid time format for %s: %q (%s)", e.Field, e.Value, e.Reason)
}

func (e *TimeFormatError) Unwrap() error {
	return ErrInvalidTimeFormat
}

// PolicyError points at the policy field that failed validation.
type PolicyError struct {
	Field   string
	Message string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("invalid pay policy: %s - %s", e.Field, e.Message)
}

func (e *PolicyError) Unwrap() error {
	return ErrInvalidPolicy
}
