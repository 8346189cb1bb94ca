package pay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// WALL CLOCK - Zone-less time of day
// =============================================================================

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

var sixty = decimal.NewFromInt(minutesPerHour)

// WallClock is a time of day in whole minutes since midnight, 0..1440.
// 1440 is "24:00", the end of the day.
type WallClock int

// Midnight and EndOfDay bound every valid WallClock.
const (
	Midnight WallClock = 0
	EndOfDay WallClock = minutesPerDay
)

// ParseClock parses "H[H]:M[M]" on the 24-hour clock. The split is lenient
// about zero padding ("9:5" is 09:05) but strict about everything else.
func ParseClock(s string) (WallClock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, &TimeFormatError{Field: "time", Value: s, Reason: "expected HH:MM"}
	}

	h, err := parseClockField(parts[0])
	if err != nil {
		return 0, &TimeFormatError{Field: "time", Value: s, Reason: "hours are not numeric"}
	}
	m, err := parseClockField(parts[1])
	if err != nil {
		return 0, &TimeFormatError{Field: "time", Value: s, Reason: "minutes are not numeric"}
	}

	if m >= minutesPerHour {
		return 0, &TimeFormatError{Field: "time", Value: s, Reason: "minutes out of range [0,60)"}
	}
	if h > 24 {
		return 0, &TimeFormatError{Field: "time", Value: s, Reason: "hours out of range [0,24]"}
	}
	if h == 24 && m > 0 {
		return 0, &TimeFormatError{Field: "time", Value: s, Reason: "time is past 24:00"}
	}

	return WallClock(h*minutesPerHour + m), nil
}

// parseClockField accepts one or two ASCII digits.
func parseClockField(s string) (int, error) {
	if len(s) == 0 || len(s) > 2 {
		return 0, strconv.ErrSyntax
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// MustParseClock is ParseClock for constants; it panics on bad input.
func MustParseClock(s string) WallClock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Minutes returns minutes since midnight.
func (c WallClock) Minutes() int { return int(c) }

// Hours returns the fractional-hour value (hours + minutes/60).
func (c WallClock) Hours() decimal.Decimal { return minutesToHours(int(c)) }

func (c WallClock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/minutesPerHour, int(c)%minutesPerHour)
}

// Normalize parses a shift's start and end. A failure names the field.
func Normalize(start, end string) (WallClock, WallClock, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, 0, withField(err, "start")
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, 0, withField(err, "end")
	}
	return s, e, nil
}

func withField(err error, field string) error {
	if tfe, ok := err.(*TimeFormatError); ok {
		tfe.Field = field
	}
	return err
}

func minutesToHours(m int) decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Div(sixty)
}
