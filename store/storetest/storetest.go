// Package storetest holds the behaviour every payroll.Store must share.
// Each implementation's tests call Run with a constructor.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-pay/calendar"
	"github.com/warp/shift-pay/payroll"
)

// Run exercises a fresh store from newStore in every subtest.
func Run(t *testing.T, newStore func(t *testing.T) payroll.Store) {
	t.Run("ShiftRoundTrip", func(t *testing.T) { testShiftRoundTrip(t, newStore(t)) })
	t.Run("ShiftNotFound", func(t *testing.T) { testShiftNotFound(t, newStore(t)) })
	t.Run("ListShiftsRangeAndOrder", func(t *testing.T) { testListShifts(t, newStore(t)) })
	t.Run("SaveShiftReplaces", func(t *testing.T) { testSaveShiftReplaces(t, newStore(t)) })
	t.Run("Holidays", func(t *testing.T) { testHolidays(t, newStore(t)) })
	t.Run("DuplicateHoliday", func(t *testing.T) { testDuplicateHoliday(t, newStore(t)) })
}

func shift(id, date, start, end string) payroll.Shift {
	return payroll.Shift{
		ID:        id,
		Date:      calendar.MustParseDate(date),
		Start:     start,
		End:       end,
		CreatedAt: time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC),
	}
}

func ids(shifts []payroll.Shift) []string {
	out := make([]string, len(shifts))
	for i, s := range shifts {
		out[i] = s.ID
	}
	return out
}

func testShiftRoundTrip(t *testing.T, store payroll.Store) {
	ctx := context.Background()
	in := shift("s1", "2025-04-16", "09:00", "17:00")
	in.Notes = "covering for Sam"

	require.NoError(t, store.SaveShift(ctx, in))

	got, err := store.GetShift(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "2025-04-16", got.Date.String())
	assert.Equal(t, "09:00", got.Start)
	assert.Equal(t, "17:00", got.End)
	assert.Equal(t, "covering for Sam", got.Notes)
	assert.True(t, in.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, store.DeleteShift(ctx, "s1"))
	_, err = store.GetShift(ctx, "s1")
	assert.ErrorIs(t, err, payroll.ErrShiftNotFound)
}

func testShiftNotFound(t *testing.T, store payroll.Store) {
	ctx := context.Background()

	_, err := store.GetShift(ctx, "missing")
	assert.ErrorIs(t, err, payroll.ErrShiftNotFound)
	assert.ErrorIs(t, store.DeleteShift(ctx, "missing"), payroll.ErrShiftNotFound)
}

func testListShifts(t *testing.T, store payroll.Store) {
	ctx := context.Background()
	for _, s := range []payroll.Shift{
		shift("mar", "2025-03-31", "09:00", "17:00"),
		shift("apr1-early", "2025-04-01", "06:00", "10:00"),
		shift("apr1-late", "2025-04-01", "18:00", "22:00"),
		shift("apr30", "2025-04-30", "09:00", "17:00"),
		shift("may", "2025-05-01", "09:00", "17:00"),
	} {
		require.NoError(t, store.SaveShift(ctx, s))
	}

	// Inclusive bounds, newest first
	got, err := store.ListShifts(ctx, calendar.MustParseDate("2025-04-01"), calendar.MustParseDate("2025-04-30"))
	require.NoError(t, err)
	assert.Equal(t, []string{"apr30", "apr1-late", "apr1-early"}, ids(got))

	// Open bounds
	all, err := store.ListShifts(ctx, calendar.Date{}, calendar.Date{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, "may", all[0].ID)
	assert.Equal(t, "mar", all[4].ID)

	since, err := store.ListShifts(ctx, calendar.MustParseDate("2025-04-30"), calendar.Date{})
	require.NoError(t, err)
	assert.Equal(t, []string{"may", "apr30"}, ids(since))
}

func testSaveShiftReplaces(t *testing.T, store payroll.Store) {
	ctx := context.Background()
	require.NoError(t, store.SaveShift(ctx, shift("s1", "2025-04-16", "09:00", "17:00")))
	require.NoError(t, store.SaveShift(ctx, shift("s1", "2025-04-16", "10:00", "18:00")))

	got, err := store.GetShift(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "10:00", got.Start)

	all, err := store.ListShifts(ctx, calendar.Date{}, calendar.Date{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func testHolidays(t *testing.T, store payroll.Store) {
	ctx := context.Background()
	xmas := calendar.Holiday{ID: "h2", Date: calendar.MustParseDate("2025-12-25"), Name: "Christmas Day", Recurring: true}
	easter := calendar.Holiday{ID: "h1", Date: calendar.MustParseDate("2025-04-21"), Name: "Easter Monday"}

	require.NoError(t, store.SaveHoliday(ctx, xmas))
	require.NoError(t, store.SaveHoliday(ctx, easter))

	got, err := store.ListHolidays(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Easter Monday", got[0].Name)
	assert.Equal(t, "Christmas Day", got[1].Name)
	assert.True(t, got[1].Recurring)
	assert.False(t, got[0].Recurring)

	require.NoError(t, store.DeleteHoliday(ctx, "h1"))
	assert.ErrorIs(t, store.DeleteHoliday(ctx, "h1"), payroll.ErrHolidayNotFound)

	got, err = store.ListHolidays(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func testDuplicateHoliday(t *testing.T, store payroll.Store) {
	ctx := context.Background()
	d := calendar.MustParseDate("2025-01-01")

	require.NoError(t, store.SaveHoliday(ctx, calendar.Holiday{ID: "a", Date: d, Name: "New Year"}))
	err := store.SaveHoliday(ctx, calendar.Holiday{ID: "b", Date: d, Name: "New Year"})
	assert.ErrorIs(t, err, payroll.ErrDuplicateHoliday)

	// Same ID is an update, not a duplicate
	require.NoError(t, store.SaveHoliday(ctx, calendar.Holiday{ID: "a", Date: d, Name: "New Year", Recurring: true}))
}
