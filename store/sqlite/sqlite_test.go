package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/shift-pay/calendar"
	"github.com/warp/shift-pay/payroll"
	"github.com/warp/shift-pay/store/sqlite"
	"github.com/warp/shift-pay/store/storetest"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) payroll.Store {
		return newTestStore(t)
	})
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	// GIVEN: a file-backed database with one shift and one holiday
	path := filepath.Join(t.TempDir(), "shifts.db")
	ctx := context.Background()

	store, err := sqlite.New(path)
	require.NoError(t, err)
	sh, err := payroll.NewShift("2025-04-16", "9:00", "17:00", "")
	require.NoError(t, err)
	require.NoError(t, store.SaveShift(ctx, sh))
	require.NoError(t, store.SaveHoliday(ctx, calendar.Holiday{
		ID: "h1", Date: calendar.MustParseDate("2025-12-25"), Name: "Christmas Day", Recurring: true,
	}))
	require.NoError(t, store.Close())

	// WHEN: reopened
	store, err = sqlite.New(path)
	require.NoError(t, err)
	defer store.Close()

	// THEN: both records are still there, migration is idempotent
	got, err := store.GetShift(ctx, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.Start)

	holidays, err := store.ListHolidays(ctx)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.True(t, holidays[0].Recurring)
}

func TestSQLiteStore_Reset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sh, err := payroll.NewShift("2025-04-16", "09:00", "17:00", "")
	require.NoError(t, err)
	require.NoError(t, store.SaveShift(ctx, sh))
	require.NoError(t, store.Reset(ctx))

	all, err := store.ListShifts(ctx, calendar.Date{}, calendar.Date{})
	require.NoError(t, err)
	assert.Empty(t, all)
}
