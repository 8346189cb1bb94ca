package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-pay/pay"
)

// =============================================================================
// TOTALS - Sum of many breakdowns
// =============================================================================

// CategoryTotal is the hours and pay for one category summed over shifts.
type CategoryTotal struct {
	Hours decimal.Decimal
	Pay   decimal.Decimal
}

// Totals accumulates breakdowns. The zero value is ready to use.
type Totals struct {
	Base       CategoryTotal
	Unsocial   CategoryTotal
	Sunday     CategoryTotal
	Holiday    CategoryTotal
	BreakHours decimal.Decimal
	TotalHours decimal.Decimal
	Total      decimal.Decimal
}

// Add folds one breakdown into the totals.
func (t *Totals) Add(b pay.PayBreakdown) {
	t.Base = t.Base.add(b.Base)
	t.Unsocial = t.Unsocial.add(b.Unsocial)
	t.Sunday = t.Sunday.add(b.Sunday)
	t.Holiday = t.Holiday.add(b.Holiday)
	t.BreakHours = t.BreakHours.Add(b.BreakHours)
	t.TotalHours = t.TotalHours.Add(b.TotalHours)
	t.Total = t.Total.Add(b.Total)
}

// For returns the total for a category.
func (t Totals) For(c pay.Category) CategoryTotal {
	switch c {
	case pay.CategoryBase:
		return t.Base
	case pay.CategoryUnsocial:
		return t.Unsocial
	case pay.CategorySunday:
		return t.Sunday
	case pay.CategoryHoliday:
		return t.Holiday
	}
	return CategoryTotal{}
}

func (c CategoryTotal) add(l pay.Line) CategoryTotal {
	return CategoryTotal{Hours: c.Hours.Add(l.Hours), Pay: c.Pay.Add(l.Pay)}
}

// Summarize totals a list of breakdowns.
func Summarize(breakdowns []pay.PayBreakdown) Totals {
	var t Totals
	for _, b := range breakdowns {
		t.Add(b)
	}
	return t
}

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

// Summary is the pay owed for one calendar month.
type Summary struct {
	Year    int
	Month   time.Month
	Shifts  int // shifts included in the totals
	Skipped int // stored shifts whose times no longer parse
	Totals
}
