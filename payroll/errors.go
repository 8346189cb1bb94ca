/*
errors.go - Error kinds surfaced by the payroll service

PURPOSE:
  Sentinels for errors.Is() plus the helpers the HTTP layer uses to pick
  a status code. Parse errors from pay and calendar pass through wrapped
  and are classified here as client errors.

SEE ALSO:
  - pay/errors.go: ErrInvalidTimeFormat, ErrInvalidPolicy
  - calendar/calendar.go: ErrInvalidDate
  - api/handlers.go: maps these to 400/404/500
*/
package payroll

import (
	"errors"
	"fmt"

	"github.com/warp/shift-pay/calendar"
	"github.com/warp/shift-pay/pay"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrShiftNotFound is returned when a shift ID does not exist.
	ErrShiftNotFound = errors.New("shift not found")

	// ErrHolidayNotFound is returned when a holiday ID does not exist.
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrDuplicateHoliday is returned when a holiday with the same date and
	// name is already registered.
	ErrDuplicateHoliday = errors.New("holiday already registered")

	// ErrNonPositiveShift is returned when a new shift ends at or before its start.
	ErrNonPositiveShift = errors.New("shift must end after it starts")

	// ErrScenarioNotFound is returned for an unknown demo scenario ID.
	ErrScenarioNotFound = errors.New("scenario not found")

	// ErrResetUnsupported is returned when the store cannot be wiped.
	ErrResetUnsupported = errors.New("store does not support reset")

	// ErrInvalidInput covers missing or out-of-range request fields.
	ErrInvalidInput = errors.New("invalid input")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNonPositiveShift) ||
		errors.Is(err, ErrDuplicateHoliday) ||
		errors.Is(err, pay.ErrInvalidTimeFormat) ||
		errors.Is(err, calendar.ErrInvalidDate)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrShiftNotFound) ||
		errors.Is(err, ErrHolidayNotFound) ||
		errors.Is(err, ErrScenarioNotFound)
}
