package payroll_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/warp/shift-pay/calendar"
	"github.com/warp/shift-pay/pay"
	"github.com/warp/shift-pay/payroll"
	"github.com/warp/shift-pay/store/memory"
	"github.com/warp/shift-pay/workerpool"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fixture struct {
	svc   *payroll.Service
	store *memory.Store
	logs  *observer.ObservedLogs
}

func newFixture(t *testing.T, workers int) fixture {
	t.Helper()
	calc, err := pay.NewCalculator(pay.DefaultPolicy())
	require.NoError(t, err)

	var pool *workerpool.WorkerPool
	if workers > 0 {
		pool = workerpool.New(workers, 16)
		t.Cleanup(pool.Close)
	}

	core, logs := observer.New(zap.DebugLevel)
	store := memory.New()
	return fixture{
		svc:   payroll.NewService(store, calc, pool, zap.New(core)),
		store: store,
		logs:  logs,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got.Round(9)), "want %s, got %s", want, got)
}

// =============================================================================
// SHIFT ENTRY
// =============================================================================

func TestNewShift_Validation(t *testing.T) {
	tests := []struct {
		name             string
		date, start, end string
		wantErr          error
	}{
		{"ok", "2025-04-16", "9:00", "17:30", nil},
		{"bad date", "16/04/2025", "09:00", "17:00", calendar.ErrInvalidDate},
		{"bad start", "2025-04-16", "nine", "17:00", pay.ErrInvalidTimeFormat},
		{"bad end", "2025-04-16", "09:00", "25:00", pay.ErrInvalidTimeFormat},
		{"end equals start", "2025-04-16", "09:00", "09:00", payroll.ErrNonPositiveShift},
		{"end before start", "2025-04-16", "17:00", "09:00", payroll.ErrNonPositiveShift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh, err := payroll.NewShift(tt.date, tt.start, tt.end, "  ")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, payroll.IsClientError(err))
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, sh.ID)
			assert.Equal(t, "09:00", sh.Start, "times are stored normalized")
			assert.Equal(t, "17:30", sh.End)
			assert.Empty(t, sh.Notes)
		})
	}
}

func TestShift_PayShift_DerivesFlags(t *testing.T) {
	set := calendar.NewHolidaySet([]calendar.Holiday{
		{Date: calendar.MustParseDate("2025-04-21"), Name: "Easter Monday"},
	})

	sunday, err := payroll.NewShift("2025-04-20", "09:00", "17:00", "")
	require.NoError(t, err)
	in := sunday.PayShift(set)
	assert.True(t, in.IsSunday)
	assert.False(t, in.IsHoliday)

	monday, err := payroll.NewShift("2025-04-21", "09:00", "17:00", "")
	require.NoError(t, err)
	in = monday.PayShift(set)
	assert.True(t, in.IsHoliday)
	assert.False(t, in.IsSunday)
}

// =============================================================================
// STORED SHIFT BREAKDOWN
// =============================================================================

func TestService_ShiftBreakdown_UsesStoredHolidays(t *testing.T) {
	// GIVEN: Easter Monday registered and a shift on it
	f := newFixture(t, 0)
	ctx := context.Background()

	_, err := f.svc.AddHoliday(ctx, "2025-04-21", "Easter Monday", false)
	require.NoError(t, err)
	sh, err := f.svc.AddShift(ctx, "2025-04-21", "10:00", "18:00", "")
	require.NoError(t, err)

	// WHEN
	got, err := f.svc.ShiftBreakdown(ctx, sh.ID)
	require.NoError(t, err)

	// THEN: billed entirely at the holiday rate
	assert.True(t, got.IsHoliday)
	assertDecimal(t, "211.4", got.Breakdown.Total)
	assertDecimal(t, "7", got.Breakdown.Holiday.Hours)
}

func TestService_ShiftBreakdown_NotFound(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.svc.ShiftBreakdown(context.Background(), "nope")
	assert.ErrorIs(t, err, payroll.ErrShiftNotFound)
	assert.True(t, payroll.IsNotFound(err))
}

func TestService_Flags(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	_, err := f.svc.AddHoliday(ctx, "2020-12-25", "Christmas Day", true)
	require.NoError(t, err)

	holiday, sunday, err := f.svc.Flags(ctx, "2022-12-25")
	require.NoError(t, err)
	assert.True(t, holiday)
	assert.True(t, sunday)

	_, _, err = f.svc.Flags(ctx, "christmas")
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}

// =============================================================================
// BATCH
// =============================================================================

func TestService_Breakdowns_PreservesOrder(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			f := newFixture(t, workers)

			var inputs []pay.Shift
			var want []string
			for h := 0; h < 16; h++ {
				start := pay.WallClock(h * 60).String()
				inputs = append(inputs, pay.Shift{Start: start, End: "17:00"})
			}
			// a malformed entry only fails its own slot
			inputs[5].Start = "oops"
			for _, in := range inputs {
				if in.Start == "oops" {
					want = append(want, "")
					continue
				}
				b, err := f.svc.Calculator().Calculate(in)
				require.NoError(t, err)
				want = append(want, b.Total.String())
			}

			results, err := f.svc.Breakdowns(context.Background(), inputs)
			require.NoError(t, err)
			require.Len(t, results, len(inputs))

			for i, r := range results {
				if i == 5 {
					assert.ErrorIs(t, r.Err, pay.ErrInvalidTimeFormat)
					continue
				}
				require.NoError(t, r.Err)
				assert.Equal(t, want[i], r.Breakdown.Total.String(), "slot %d", i)
			}
		})
	}
}

func TestService_Breakdowns_Empty(t *testing.T) {
	f := newFixture(t, 2)
	results, err := f.svc.Breakdowns(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestService_Breakdowns_CancelledContext(t *testing.T) {
	f := newFixture(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Breakdowns(ctx, []pay.Shift{{Start: "09:00", End: "17:00"}})
	assert.ErrorIs(t, err, context.Canceled)
}

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

func TestService_MonthlySummary(t *testing.T) {
	// GIVEN: April 2025 with a weekday, an early shift, a Sunday and a holiday,
	// plus one shift in May that must not count.
	f := newFixture(t, 2)
	ctx := context.Background()

	_, err := f.svc.AddHoliday(ctx, "2025-04-21", "Easter Monday", false)
	require.NoError(t, err)

	for _, s := range []struct{ date, start, end string }{
		{"2025-04-16", "09:00", "17:00"}, // 105.70 base
		{"2025-04-17", "05:00", "09:00"}, // 67.965 mixed
		{"2025-04-20", "10:00", "18:00"}, // Sunday 7h * 22.65 = 158.55
		{"2025-04-21", "10:00", "18:00"}, // Holiday 211.40
		{"2025-05-01", "09:00", "17:00"},
	} {
		_, err := f.svc.AddShift(ctx, s.date, s.start, s.end, "")
		require.NoError(t, err)
	}

	// WHEN
	sum, err := f.svc.MonthlySummary(ctx, 2025, time.April)
	require.NoError(t, err)

	// THEN
	assert.Equal(t, 4, sum.Shifts)
	assert.Equal(t, 0, sum.Skipped)
	assertDecimal(t, "543.615", sum.Total)
	assertDecimal(t, "24.75", sum.TotalHours)
	assertDecimal(t, "117.025", sum.Base.Pay)
	assertDecimal(t, "56.64", sum.Unsocial.Pay)
	assertDecimal(t, "158.55", sum.Sunday.Pay)
	assertDecimal(t, "211.4", sum.Holiday.Pay)
	assertDecimal(t, "3.25", sum.BreakHours)

	// categories reconcile with the total
	var byCat decimal.Decimal
	for _, c := range pay.Categories {
		byCat = byCat.Add(sum.For(c).Pay)
	}
	assertDecimal(t, sum.Total.String(), byCat)
}

func TestService_MonthlySummary_SkipsMalformedRecords(t *testing.T) {
	// GIVEN: a stored record whose end time was corrupted after entry
	f := newFixture(t, 0)
	ctx := context.Background()

	good, err := f.svc.AddShift(ctx, "2025-04-16", "09:00", "17:00", "")
	require.NoError(t, err)
	require.NoError(t, f.store.SaveShift(ctx, payroll.Shift{
		ID:    "bad",
		Date:  calendar.MustParseDate("2025-04-17"),
		Start: "09:00",
		End:   "5pm",
	}))

	// WHEN
	sum, err := f.svc.MonthlySummary(ctx, 2025, time.April)
	require.NoError(t, err)

	// THEN: the good shift counts, the bad one is skipped and logged
	assert.Equal(t, 1, sum.Shifts)
	assert.Equal(t, 1, sum.Skipped)
	assertDecimal(t, "105.7", sum.Total)

	warnings := f.logs.FilterMessage("skipping shift with malformed times").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "bad", warnings[0].ContextMap()["shift_id"])
	assert.NotEqual(t, good.ID, "bad")
}

func TestService_MonthlySummary_BadMonth(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.svc.MonthlySummary(context.Background(), 2025, 13)
	assert.ErrorIs(t, err, payroll.ErrInvalidInput)
	var ve *payroll.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "month", ve.Field)
}

func TestService_MonthlySummary_EmptyMonth(t *testing.T) {
	f := newFixture(t, 0)

	sum, err := f.svc.MonthlySummary(context.Background(), 2025, time.February)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Shifts)
	assert.True(t, sum.Total.IsZero())
}

// =============================================================================
// LISTING AND HOLIDAYS
// =============================================================================

func TestService_ListShifts_Bounds(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	for _, d := range []string{"2025-04-01", "2025-04-15", "2025-05-01"} {
		_, err := f.svc.AddShift(ctx, d, "09:00", "17:00", "")
		require.NoError(t, err)
	}

	got, err := f.svc.ListShifts(ctx, "2025-04-01", "2025-04-30")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = f.svc.ListShifts(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = f.svc.ListShifts(ctx, "2025-05-01", "2025-04-01")
	assert.ErrorIs(t, err, payroll.ErrInvalidInput)

	_, err = f.svc.ListShifts(ctx, "April", "")
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestService_Holidays(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	_, err := f.svc.AddHoliday(ctx, "2025-01-01", "   ", false)
	assert.ErrorIs(t, err, payroll.ErrInvalidInput)

	h, err := f.svc.AddHoliday(ctx, "2025-01-01", "New Year's Day", false)
	require.NoError(t, err)

	_, err = f.svc.AddHoliday(ctx, "2025-01-01", "New Year's Day", false)
	assert.ErrorIs(t, err, payroll.ErrDuplicateHoliday)

	set, err := f.svc.Holidays(ctx)
	require.NoError(t, err)
	assert.True(t, set.IsHoliday(calendar.MustParseDate("2025-01-01")))

	require.NoError(t, f.svc.DeleteHoliday(ctx, h.ID))
	assert.ErrorIs(t, f.svc.DeleteHoliday(ctx, h.ID), payroll.ErrHolidayNotFound)

	set, err = f.svc.Holidays(ctx)
	require.NoError(t, err)
	assert.False(t, set.IsHoliday(calendar.MustParseDate("2025-01-01")))
}

func TestSummarize(t *testing.T) {
	calc, err := pay.NewCalculator(pay.DefaultPolicy())
	require.NoError(t, err)

	a, err := calc.Calculate(pay.Shift{Start: "09:00", End: "17:00"})
	require.NoError(t, err)
	b, err := calc.Calculate(pay.Shift{Start: "09:00", End: "17:00", IsHoliday: true})
	require.NoError(t, err)

	totals := payroll.Summarize([]pay.PayBreakdown{a, b})
	assertDecimal(t, "317.1", totals.Total)
	assertDecimal(t, "14", totals.TotalHours)
	assertDecimal(t, "7", totals.For(pay.CategoryHoliday).Hours)
	assertDecimal(t, "0", totals.For(pay.CategorySunday).Hours)
}
