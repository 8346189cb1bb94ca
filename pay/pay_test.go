package pay_test

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-pay/pay"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var tolerance = decimal.RequireFromString("0.000000001")

func newDefaultCalculator(t *testing.T) *pay.Calculator {
	t.Helper()
	calc, err := pay.NewCalculator(pay.DefaultPolicy())
	require.NoError(t, err)
	return calc
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertDecimal compares within 1e-9; decimals with different exponents
// (105.7 vs 105.70) are equal.
func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	diff := dec(want).Sub(got).Abs()
	assert.True(t, diff.LessThanOrEqual(tolerance),
		append([]any{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func assertReconciles(t *testing.T, b pay.PayBreakdown) {
	t.Helper()
	sumPay := b.Base.Pay.Add(b.Unsocial.Pay).Add(b.Sunday.Pay).Add(b.Holiday.Pay)
	sumHours := b.Base.Hours.Add(b.Unsocial.Hours).Add(b.Sunday.Hours).Add(b.Holiday.Hours)
	assert.True(t, b.Total.Sub(sumPay).Abs().LessThanOrEqual(tolerance), "total %s != sum of pay %s", b.Total, sumPay)
	assert.True(t, b.TotalHours.Sub(sumHours).Abs().LessThanOrEqual(tolerance), "totalHours %s != sum of hours %s", b.TotalHours, sumHours)
}

// =============================================================================
// WORKED EXAMPLES
// =============================================================================

func TestCalculate_PlainWeekday_AllBase(t *testing.T) {
	// GIVEN: 09:00-17:00 on a weekday (8h raw, outside every unsocial band)
	// THEN: 1h break, 7h at base, 105.70 total
	calc := newDefaultCalculator(t)

	b, err := calc.Calculate(pay.Shift{Date: "2025-04-16", Start: "09:00", End: "17:00"})
	require.NoError(t, err)

	assertDecimal(t, "1", b.BreakHours)
	assertDecimal(t, "7", b.TotalHours)
	assertDecimal(t, "7", b.Base.Hours)
	assertDecimal(t, "15.10", b.Base.Rate)
	assertDecimal(t, "105.70", b.Base.Pay)
	assertDecimal(t, "0", b.Unsocial.Hours)
	assertDecimal(t, "105.70", b.Total)
	assertReconciles(t, b)
}

func TestCalculate_EarlyUnsocialOverlap_BreakFromBase(t *testing.T) {
	// GIVEN: 05:00-09:00 on a weekday, early band 00:00-08:00
	// THEN: 3h unsocial paid in full, 1h base less the 15m break
	calc := newDefaultCalculator(t)

	b, err := calc.Calculate(pay.Shift{Start: "05:00", End: "09:00"})
	require.NoError(t, err)

	assertDecimal(t, "0.25", b.BreakHours)
	assertDecimal(t, "3", b.Unsocial.Hours)
	assertDecimal(t, "56.64", b.Unsocial.Pay)
	assertDecimal(t, "0.75", b.Base.Hours)
	assertDecimal(t, "11.325", b.Base.Pay)
	assertDecimal(t, "67.965", b.Total)
	assertDecimal(t, "3.75", b.TotalHours)
	assertReconciles(t, b)
}

func TestCalculate_LateUnsocialOverlap(t *testing.T) {
	// GIVEN: 18:00-22:00, late band starts at 20:00
	calc := newDefaultCalculator(t)

	b, err := calc.Calculate(pay.Shift{Start: "18:00", End: "22:00"})
	require.NoError(t, err)

	assertDecimal(t, "2", b.Unsocial.Hours)
	assertDecimal(t, "37.76", b.Unsocial.Pay)
	assertDecimal(t, "1.75", b.Base.Hours)
	assertDecimal(t, "26.425", b.Base.Pay)
	assertDecimal(t, "64.185", b.Total)
	assertReconciles(t, b)
}

func TestCalculate_HolidayOverride(t *testing.T) {
	// GIVEN: 10:00-18:00 on a public holiday
	// THEN: 7 net hours at the holiday rate, nothing else
	calc := newDefaultCalculator(t)

	b, err := calc.Calculate(pay.Shift{Start: "10:00", End: "18:00", IsHoliday: true})
	require.NoError(t, err)

	assertDecimal(t, "1", b.BreakHours)
	assertDecimal(t, "7", b.Holiday.Hours)
	assertDecimal(t, "211.40", b.Holiday.Pay)
	assertDecimal(t, "0", b.Base.Pay)
	assertDecimal(t, "0", b.Unsocial.Pay)
	assertDecimal(t, "0", b.Sunday.Pay)
	assertDecimal(t, "211.40", b.Total)
	assertReconciles(t, b)
}

func TestCalculate_SundayOverride_DiscardsUnsocialSplit(t *testing.T) {
	// GIVEN: 06:00-14:00 on a Sunday (2h of it inside the early band)
	// THEN: every net hour is billed at the Sunday rate
	calc := newDefaultCalculator(t)

	b, err := calc.Calculate(pay.Shift{Start: "06:00", End: "14:00", IsSunday: true})
	require.NoError(t, err)

	assertDecimal(t, "7", b.Sunday.Hours)
	assertDecimal(t, "158.55", b.Sunday.Pay)
	assertDecimal(t, "0", b.Unsocial.Hours)
	assertDecimal(t, "0", b.Base.Hours)
	assertDecimal(t, "158.55", b.Total)
	assertReconciles(t, b)
}

func TestCalculate_HolidayBeatsSunday(t *testing.T) {
	calc := newDefaultCalculator(t)

	b, err := calc.Calculate(pay.Shift{Start: "09:00", End: "17:00", IsHoliday: true, IsSunday: true})
	require.NoError(t, err)

	assertDecimal(t, "0", b.Sunday.Pay)
	assertDecimal(t, "0", b.Sunday.Hours)
	assertDecimal(t, "211.40", b.Holiday.Pay)
}

func TestCalculate_FullyUnsocial_BreakSpillsIntoUnsocial(t *testing.T) {
	// GIVEN: 20:00-24:00, no base time at all to absorb the 15m break
	// THEN: the break comes out of the unsocial segment and hours still reconcile
	calc := newDefaultCalculator(t)

	b, err := calc.Calculate(pay.Shift{Start: "20:00", End: "24:00"})
	require.NoError(t, err)

	assertDecimal(t, "0", b.Base.Hours)
	assertDecimal(t, "3.75", b.Unsocial.Hours)
	assertDecimal(t, "70.80", b.Unsocial.Pay)
	assertDecimal(t, "3.75", b.TotalHours)
	assertReconciles(t, b)
}

func TestCalculate_BandBoundaries_NotDoubleCounted(t *testing.T) {
	calc := newDefaultCalculator(t)

	tests := []struct {
		name         string
		start, end   string
		wantUnsocial string
	}{
		{"ends exactly at early band end", "06:00", "08:00", "2"},
		{"starts exactly at early band end", "08:00", "10:00", "0"},
		{"ends exactly at late band start", "18:00", "20:00", "0"},
		{"starts exactly at late band start", "20:00", "22:00", "1.75"},
		{"spans both bands", "07:00", "21:00", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := calc.Calculate(pay.Shift{Start: tt.start, End: tt.end})
			require.NoError(t, err)
			assertDecimal(t, tt.wantUnsocial, b.Unsocial.Hours)
			assertReconciles(t, b)
		})
	}
}

// =============================================================================
// BREAK THRESHOLDS
// =============================================================================

func TestCalculate_BreakThresholds(t *testing.T) {
	calc := newDefaultCalculator(t)

	tests := []struct {
		start, end string
		wantBreak  string
	}{
		{"09:00", "09:30", "0.25"},
		{"09:00", "14:59", "0.25"},
		{"09:00", "15:00", "0.5"}, // exactly 6h
		{"09:00", "16:59", "0.5"},
		{"09:00", "17:00", "1"}, // exactly 8h
		{"09:20", "17:20", "1"},
		{"08:00", "20:00", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.start+"-"+tt.end, func(t *testing.T) {
			b, err := calc.Calculate(pay.Shift{Start: tt.start, End: tt.end})
			require.NoError(t, err)
			assertDecimal(t, tt.wantBreak, b.BreakHours)
		})
	}
}

func TestCalculate_ShiftShorterThanBreak(t *testing.T) {
	// A 10 minute shift cannot lose 15 minutes; it nets to zero.
	calc := newDefaultCalculator(t)

	b, err := calc.Calculate(pay.Shift{Start: "09:00", End: "09:10"})
	require.NoError(t, err)

	assertDecimal(t, "0", b.TotalHours)
	assertDecimal(t, "0", b.Total)
	assertDecimal(t, "0.1666666666666667", b.BreakHours)
}

func TestBreakPolicy_Monotonic(t *testing.T) {
	bp, err := pay.NewBreakPolicy(pay.DefaultBreakTiers())
	require.NoError(t, err)

	prev := 0
	for raw := 0; raw <= 24*60; raw++ {
		got := bp.Deduction(raw)
		assert.GreaterOrEqual(t, got, prev, "deduction shrank at %d minutes", raw)
		prev = got
	}
	assert.Equal(t, 15, bp.Deduction(359))
	assert.Equal(t, 30, bp.Deduction(360))
	assert.Equal(t, 30, bp.Deduction(479))
	assert.Equal(t, 60, bp.Deduction(480))
	assert.Equal(t, 0, bp.Deduction(0))
	assert.Equal(t, 0, bp.Deduction(-30))
}

// =============================================================================
// NON-POSITIVE DURATION
// =============================================================================

func TestCalculate_NonPositiveDuration_ZeroBreakdown(t *testing.T) {
	calc := newDefaultCalculator(t)

	for _, s := range []pay.Shift{
		{Start: "09:00", End: "09:00"},
		{Start: "17:00", End: "09:00"},
		{Start: "17:00", End: "09:00", IsHoliday: true},
	} {
		b, err := calc.Calculate(s)
		require.NoError(t, err)
		assert.True(t, b.IsZero())
		assertDecimal(t, "0", b.BreakHours)
		assertDecimal(t, "15.10", b.Base.Rate, "rates are still reported")
	}
}

// =============================================================================
// TIME NORMALIZER
// =============================================================================

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"9:5", 545, false},
		{"17:30", 1050, false},
		{" 08:15 ", 495, false},
		{"24:00", 1440, false},
		{"24:01", 0, true},
		{"25:00", 0, true},
		{"12:60", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"12", 0, true},
		{"12:30:00", 0, true},
		{"-1:00", 0, true},
		{"123:00", 0, true},
		{"1a:00", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := pay.ParseClock(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, pay.ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Minutes())
		})
	}
}

func TestWallClock_HoursAndString(t *testing.T) {
	c := pay.MustParseClock("9:5")
	assert.Equal(t, "09:05", c.String())
	assertDecimal(t, "9.0833333333333333", c.Hours())
	assertDecimal(t, "17.5", pay.MustParseClock("17:30").Hours())
}

func TestCalculate_MalformedInput_NamesField(t *testing.T) {
	calc := newDefaultCalculator(t)

	_, err := calc.Calculate(pay.Shift{Start: "abc", End: "17:00"})
	require.ErrorIs(t, err, pay.ErrInvalidTimeFormat)
	var tfe *pay.TimeFormatError
	require.ErrorAs(t, err, &tfe)
	assert.Equal(t, "start", tfe.Field)

	_, err = calc.Calculate(pay.Shift{Start: "09:00", End: "5pm"})
	require.ErrorAs(t, err, &tfe)
	assert.Equal(t, "end", tfe.Field)

	// Lenient split still parses unpadded fields.
	b, err := calc.Calculate(pay.Shift{Start: "9:5", End: "17:05"})
	require.NoError(t, err)
	assertDecimal(t, "7", b.TotalHours)
}

// =============================================================================
// PROPERTIES OVER THE WHOLE DAY
// =============================================================================

func TestCalculate_Properties(t *testing.T) {
	calc := newDefaultCalculator(t)
	flags := []struct{ holiday, sunday bool }{{false, false}, {false, true}, {true, false}, {true, true}}

	for start := 0; start <= 24*60; start += 15 {
		for end := start; end <= 24*60; end += 15 {
			for _, f := range flags {
				s := pay.Shift{
					Start:     pay.WallClock(start).String(),
					End:       pay.WallClock(end).String(),
					IsHoliday: f.holiday,
					IsSunday:  f.sunday,
				}
				b, err := calc.Calculate(s)
				require.NoError(t, err)

				assertReconciles(t, b)

				for _, c := range pay.Categories {
					l := b.Line(c)
					assert.False(t, l.Hours.IsNegative(), "%v %s hours negative", s, c)
					assert.False(t, l.Pay.IsNegative(), "%v %s pay negative", s, c)
				}

				// Net hours are raw minus break.
				raw := decimal.NewFromInt(int64(end - start)).Div(decimal.NewFromInt(60))
				assert.True(t, raw.Sub(b.BreakHours).Sub(b.TotalHours).Abs().LessThanOrEqual(tolerance),
					"%v: net %s != raw %s - break %s", s, b.TotalHours, raw, b.BreakHours)

				switch {
				case f.holiday:
					assert.True(t, b.Sunday.Pay.IsZero())
					assert.True(t, b.Base.Pay.IsZero())
					assert.True(t, b.Unsocial.Pay.IsZero())
				case f.sunday:
					assert.True(t, b.Holiday.Pay.IsZero())
					assert.True(t, b.Base.Pay.IsZero())
					assert.True(t, b.Unsocial.Pay.IsZero())
				default:
					assert.True(t, b.Sunday.Pay.IsZero())
					assert.True(t, b.Holiday.Pay.IsZero())
				}
			}
		}
	}
}

func TestCalculator_ConcurrentUse(t *testing.T) {
	calc := newDefaultCalculator(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b, err := calc.Calculate(pay.Shift{Start: "05:00", End: "09:00"})
				assert.NoError(t, err)
				assertDecimal(t, "67.965", b.Total)
			}
		}()
	}
	wg.Wait()
}

// =============================================================================
// POLICY VALIDATION
// =============================================================================

func TestNewCalculator_RejectsBadPolicy(t *testing.T) {
	overlapping := pay.DefaultPolicy()
	overlapping.Bands = []pay.TimeBand{
		{From: pay.MustParseClock("00:00"), To: pay.MustParseClock("08:00"), Label: "early"},
		{From: pay.MustParseClock("07:00"), To: pay.MustParseClock("09:00"), Label: "dawn"},
	}

	inverted := pay.DefaultPolicy()
	inverted.Bands = []pay.TimeBand{{From: pay.MustParseClock("08:00"), To: pay.MustParseClock("06:00"), Label: "bad"}}

	negative := pay.DefaultPolicy()
	negative.Rates.Holiday = dec("-1")

	shrinking := pay.DefaultPolicy()
	shrinking.Breaks = []pay.BreakTier{{Min: 0, Break: 30 * time.Minute}, {Min: 6 * time.Hour, Break: 15 * time.Minute}}

	fractional := pay.DefaultPolicy()
	fractional.Breaks = []pay.BreakTier{{Min: 0, Break: 90 * time.Second}}

	for name, p := range map[string]pay.Policy{
		"overlapping bands":  overlapping,
		"inverted band":      inverted,
		"negative rate":      negative,
		"shrinking break":    shrinking,
		"fractional minutes": fractional,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := pay.NewCalculator(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, pay.ErrInvalidPolicy)
		})
	}
}

func TestNewCalculator_AdjacentBandsAllowed(t *testing.T) {
	p := pay.DefaultPolicy()
	p.Bands = []pay.TimeBand{
		{From: pay.MustParseClock("06:00"), To: pay.MustParseClock("08:00"), Label: "dawn"},
		{From: pay.MustParseClock("00:00"), To: pay.MustParseClock("06:00"), Label: "night"},
	}
	calc, err := pay.NewCalculator(p)
	require.NoError(t, err)

	b, err := calc.Calculate(pay.Shift{Start: "05:00", End: "07:00"})
	require.NoError(t, err)
	assertDecimal(t, "1.75", b.Unsocial.Hours, "05:00-07:00 spans both bands once")

	// Bands come back sorted.
	got := calc.Policy().Bands
	assert.Equal(t, "night", got[0].Label)
	assert.Equal(t, "dawn", got[1].Label)
}

func TestCalculate_EarlyOnlyPolicy(t *testing.T) {
	// A site with only a 00:00-07:00 band pays 20:00-22:00 at base.
	p := pay.DefaultPolicy()
	band, err := pay.NewTimeBand("00:00", "07:00", "early")
	require.NoError(t, err)
	p.Bands = []pay.TimeBand{band}

	calc, err := pay.NewCalculator(p)
	require.NoError(t, err)

	b, err := calc.Calculate(pay.Shift{Start: "20:00", End: "22:00"})
	require.NoError(t, err)
	assertDecimal(t, "0", b.Unsocial.Hours)
	assertDecimal(t, "1.75", b.Base.Hours)
}

func TestCalculator_PolicyIsACopy(t *testing.T) {
	p := pay.DefaultPolicy()
	calc, err := pay.NewCalculator(p)
	require.NoError(t, err)

	p.Bands[0].To = pay.MustParseClock("12:00")
	got := calc.Policy()
	got.Bands[0].To = pay.MustParseClock("13:00")

	b, err := calc.Calculate(pay.Shift{Start: "07:00", End: "09:00"})
	require.NoError(t, err)
	assertDecimal(t, "1", b.Unsocial.Hours, "caller mutations must not leak into the calculator")
}

func TestNewTimeBand_BadBounds(t *testing.T) {
	_, err := pay.NewTimeBand("xx", "08:00", "early")
	assert.ErrorIs(t, err, pay.ErrInvalidTimeFormat)

	_, err = pay.NewTimeBand("08:00", "08:00", "empty")
	assert.ErrorIs(t, err, pay.ErrInvalidPolicy)
}
