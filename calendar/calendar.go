/*
Package calendar answers the two date questions the pay engine needs
answered up front: is this date a public holiday, and is it a Sunday.

PURPOSE:
  The engine takes IsHoliday and IsSunday as plain flags. This package
  derives them from a shift date and a set of registered holidays so
  that lookup never happens inside the calculation.

HOLIDAYS:
  A Holiday is either a one-off date (Easter Monday 2025) or recurring on
  the same month/day every year (Christmas Day). A HolidaySet is built
  once from a slice and never changes; callers rebuild it when the
  registered holidays change.

SEE ALSO:
  - payroll/service.go: builds a HolidaySet per request
*/
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned for dates that are not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

// =============================================================================
// DATE - Day-granularity calendar date
// =============================================================================

// Date is a calendar day with no zone and no time of day.
type Date struct {
	t time.Time
}

// NewDate builds a date; out-of-range days normalize like time.Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}
	return Date{t: t}, nil
}

// MustParseDate is ParseDate for constants.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }
func (d Date) Time() time.Time       { return d.t }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) String() string { return d.t.Format(DateLayout) }

// MonthRange returns the first and last day of a month.
func MonthRange(year int, month time.Month) (Date, Date) {
	first := NewDate(year, month, 1)
	last := Date{t: first.t.AddDate(0, 1, -1)}
	return first, last
}

// IsSunday reports whether the date falls on a Sunday.
func IsSunday(d Date) bool {
	return d.Weekday() == time.Sunday
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// Holiday is a registered public holiday.
type Holiday struct {
	ID        string
	Date      Date
	Name      string
	Recurring bool // same month/day every year
}

type monthDay struct {
	month time.Month
	day   int
}

// HolidaySet is an immutable lookup over a list of holidays.
type HolidaySet struct {
	dates     map[string]string
	recurring map[monthDay]string
}

// NewHolidaySet indexes the given holidays. The slice is not retained.
func NewHolidaySet(holidays []Holiday) HolidaySet {
	s := HolidaySet{
		dates:     make(map[string]string, len(holidays)),
		recurring: make(map[monthDay]string),
	}
	for _, h := range holidays {
		if h.Recurring {
			s.recurring[monthDay{h.Date.Month(), h.Date.Day()}] = h.Name
			continue
		}
		s.dates[h.Date.String()] = h.Name
	}
	return s
}

// IsHoliday reports whether the date is a registered holiday.
func (s HolidaySet) IsHoliday(d Date) bool {
	_, ok := s.Name(d)
	return ok
}

// Name returns the holiday's name for a date, if it is one.
func (s HolidaySet) Name(d Date) (string, bool) {
	if name, ok := s.dates[d.String()]; ok {
		return name, true
	}
	name, ok := s.recurring[monthDay{d.Month(), d.Day()}]
	return name, ok
}

// Len is the number of indexed holidays.
func (s HolidaySet) Len() int { return len(s.dates) + len(s.recurring) }

// Flags returns the two pay flags for a date.
func (s HolidaySet) Flags(d Date) (holiday, sunday bool) {
	return s.IsHoliday(d), IsSunday(d)
}
