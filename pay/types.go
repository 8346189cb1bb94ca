/*
Package pay provides the shift pay-breakdown engine.

PURPOSE:
  Turns one shift (start, end, holiday flag, Sunday flag) into an itemized,
  reconciling breakdown of the pay owed for it. The calculation is pure:
  no I/O, no shared mutable state, no logging. Callers look up the holiday
  and Sunday flags before calling in.

PIPELINE (one pass per shift, strictly in this order):
  1. Normalizer:  "HH:MM" strings -> minutes since midnight (clock.go)
  2. Break:       raw duration -> unpaid break (breaks.go)
  3. Segmenter:   [start, end) intersected with unsocial bands (segment.go)
  4. Resolver:    holiday > Sunday > weekday precedence (resolve.go)
  5. Aggregator:  hours x rate per category, totals (aggregate.go)

DESIGN PRINCIPLES:
  1. Exact interval arithmetic: clock values are whole minutes, so overlaps,
     thresholds and boundaries (exactly 6h, exactly 8h) never drift.
  2. Precision: hours, rates and pay are decimal.Decimal.
  3. Immutability: a Calculator copies its Policy at construction and every
     PayBreakdown is a fresh value.

USAGE:
  calc, err := pay.NewCalculator(pay.DefaultPolicy())
  b, err := calc.Calculate(pay.Shift{Start: "09:00", End: "17:00"})
  // b.Total == 105.70

SEE ALSO:
  - calculator.go: Policy and Calculator
  - errors.go: error kinds
*/
package pay

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CATEGORIES
// =============================================================================

// Category names a rate-bearing bucket of hours.
type Category string

const (
	CategoryBase     Category = "base"
	CategoryUnsocial Category = "unsocial"
	CategorySunday   Category = "sunday"
	CategoryHoliday  Category = "holiday"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryBase, CategoryUnsocial, CategorySunday, CategoryHoliday}

// =============================================================================
// RATE TABLE
// =============================================================================

// RateTable holds the hourly rate for each category.
type RateTable struct {
	Base     decimal.Decimal
	Unsocial decimal.Decimal
	Sunday   decimal.Decimal
	Holiday  decimal.Decimal
}

// DefaultRates returns the stock rate card.
func DefaultRates() RateTable {
	return RateTable{
		Base:     decimal.RequireFromString("15.10"),
		Unsocial: decimal.RequireFromString("18.88"),
		Sunday:   decimal.RequireFromString("22.65"),
		Holiday:  decimal.RequireFromString("30.20"),
	}
}

// For returns the rate configured for a category.
func (r RateTable) For(c Category) decimal.Decimal {
	switch c {
	case CategoryBase:
		return r.Base
	case CategoryUnsocial:
		return r.Unsocial
	case CategorySunday:
		return r.Sunday
	case CategoryHoliday:
		return r.Holiday
	default:
		return decimal.Zero
	}
}

// Validate rejects negative rates.
func (r RateTable) Validate() error {
	for _, c := range Categories {
		if r.For(c).IsNegative() {
			return &PolicyError{Field: "rates." + string(c), Message: "rate must not be negative"}
		}
	}
	return nil
}

// =============================================================================
// INPUT
// =============================================================================

// Shift is the per-call input: wall-clock start and end plus the flags the
// caller derived from the calendar. Date is carried for reporting only.
type Shift struct {
	Date      string
	Start     string
	End       string
	IsHoliday bool
	IsSunday  bool
}

// =============================================================================
// OUTPUT
// =============================================================================

// Line is one category of a breakdown.
type Line struct {
	Hours decimal.Decimal
	Rate  decimal.Decimal
	Pay   decimal.Decimal
}

// PayBreakdown is the itemized result for one shift.
// Total is the sum of every line's Pay; TotalHours is the sum of every
// line's Hours and equals the net hours worked after the break.
type PayBreakdown struct {
	Base     Line
	Unsocial Line
	Sunday   Line
	Holiday  Line

	BreakHours decimal.Decimal
	Total      decimal.Decimal
	TotalHours decimal.Decimal
}

// Line returns the line for a category.
func (b PayBreakdown) Line(c Category) Line {
	switch c {
	case CategoryBase:
		return b.Base
	case CategoryUnsocial:
		return b.Unsocial
	case CategorySunday:
		return b.Sunday
	case CategoryHoliday:
		return b.Holiday
	default:
		return Line{}
	}
}

// IsZero reports whether nothing is owed for the shift.
func (b PayBreakdown) IsZero() bool {
	return b.Total.IsZero() && b.TotalHours.IsZero()
}
