package payroll

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/warp/shift-pay/calendar"
	"github.com/warp/shift-pay/pay"
)

// =============================================================================
// SHIFT RECORD
// =============================================================================

// Shift is a stored shift. Start and End are kept as entered ("HH:MM") so a
// record that was written by hand and no longer parses is still listable.
type Shift struct {
	ID        string
	Date      calendar.Date
	Start     string
	End       string
	Notes     string
	CreatedAt time.Time
}

// NewShift validates a shift entry and assigns it an ID.
//
// Entry is stricter than calculation: a shift that ends at or before its
// start is rejected here, even though the calculator would price it at zero.
func NewShift(date, start, end, notes string) (Shift, error) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return Shift{}, err
	}
	s, e, err := pay.Normalize(start, end)
	if err != nil {
		return Shift{}, err
	}
	if e <= s {
		return Shift{}, ErrNonPositiveShift
	}

	return Shift{
		ID:        uuid.NewString(),
		Date:      d,
		Start:     s.String(),
		End:       e.String(),
		Notes:     strings.TrimSpace(notes),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// PayShift builds the calculator input, deriving the flags from the date.
func (s Shift) PayShift(holidays calendar.HolidaySet) pay.Shift {
	isHoliday, isSunday := holidays.Flags(s.Date)
	return pay.Shift{
		Date:      s.Date.String(),
		Start:     s.Start,
		End:       s.End,
		IsHoliday: isHoliday,
		IsSunday:  isSunday,
	}
}

// =============================================================================
// STORE CONTRACTS
// =============================================================================

// ShiftStore persists shift records.
type ShiftStore interface {
	SaveShift(ctx context.Context, s Shift) error

	// GetShift returns ErrShiftNotFound for an unknown ID.
	GetShift(ctx context.Context, id string) (*Shift, error)

	// DeleteShift returns ErrShiftNotFound for an unknown ID.
	DeleteShift(ctx context.Context, id string) error

	// ListShifts returns shifts dated within [from, to], newest first.
	// A zero bound is open.
	ListShifts(ctx context.Context, from, to calendar.Date) ([]Shift, error)
}

// HolidayStore persists registered holidays.
type HolidayStore interface {
	SaveHoliday(ctx context.Context, h calendar.Holiday) error

	// DeleteHoliday returns ErrHolidayNotFound for an unknown ID.
	DeleteHoliday(ctx context.Context, id string) error

	// ListHolidays returns every holiday ordered by date.
	ListHolidays(ctx context.Context) ([]calendar.Holiday, error)
}

// Store is everything the service reads and writes.
type Store interface {
	ShiftStore
	HolidayStore
}

// Resetter is implemented by stores that can be wiped, for demo data.
type Resetter interface {
	Reset(ctx context.Context) error
}
