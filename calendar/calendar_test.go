package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-pay/calendar"
)

func TestParseDate(t *testing.T) {
	d, err := calendar.ParseDate("2025-04-20")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.April, d.Month())
	assert.Equal(t, 20, d.Day())
	assert.Equal(t, "2025-04-20", d.String())

	for _, bad := range []string{"", "20-04-2025", "2025/04/20", "2025-13-01", "2025-02-30", "tomorrow"} {
		_, err := calendar.ParseDate(bad)
		assert.ErrorIs(t, err, calendar.ErrInvalidDate, bad)
	}
}

func TestIsSunday(t *testing.T) {
	assert.True(t, calendar.IsSunday(calendar.MustParseDate("2025-04-20")))
	assert.False(t, calendar.IsSunday(calendar.MustParseDate("2025-04-21")))
	assert.False(t, calendar.IsSunday(calendar.MustParseDate("2025-04-19")))
}

func TestHolidaySet_OneOffAndRecurring(t *testing.T) {
	// GIVEN: Easter Monday 2025 (one-off) and Christmas (recurring)
	set := calendar.NewHolidaySet([]calendar.Holiday{
		{ID: "h1", Date: calendar.MustParseDate("2025-04-21"), Name: "Easter Monday"},
		{ID: "h2", Date: calendar.MustParseDate("2020-12-25"), Name: "Christmas Day", Recurring: true},
	})

	// THEN: one-off matches only its own year
	assert.True(t, set.IsHoliday(calendar.MustParseDate("2025-04-21")))
	assert.False(t, set.IsHoliday(calendar.MustParseDate("2026-04-21")))

	// THEN: recurring matches any year
	name, ok := set.Name(calendar.MustParseDate("2031-12-25"))
	assert.True(t, ok)
	assert.Equal(t, "Christmas Day", name)

	assert.False(t, set.IsHoliday(calendar.MustParseDate("2025-12-24")))
	assert.Equal(t, 2, set.Len())
}

func TestHolidaySet_Flags(t *testing.T) {
	// 2025-12-28 is a Sunday
	set := calendar.NewHolidaySet([]calendar.Holiday{
		{Date: calendar.MustParseDate("2025-12-28"), Name: "Company Day"},
	})

	holiday, sunday := set.Flags(calendar.MustParseDate("2025-12-28"))
	assert.True(t, holiday)
	assert.True(t, sunday)

	holiday, sunday = set.Flags(calendar.MustParseDate("2025-12-29"))
	assert.False(t, holiday)
	assert.False(t, sunday)
}

func TestHolidaySet_ZeroValue(t *testing.T) {
	var set calendar.HolidaySet
	assert.False(t, set.IsHoliday(calendar.MustParseDate("2025-01-01")))
	assert.Equal(t, 0, set.Len())
}

func TestMonthRange(t *testing.T) {
	first, last := calendar.MonthRange(2024, time.February)
	assert.Equal(t, "2024-02-01", first.String())
	assert.Equal(t, "2024-02-29", last.String())

	first, last = calendar.MonthRange(2025, time.December)
	assert.Equal(t, "2025-12-01", first.String())
	assert.Equal(t, "2025-12-31", last.String())
}
