package pay

import "github.com/shopspring/decimal"

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregate prices an allocation. Pay is computed from minutes
// (rate * minutes / 60) so it does not inherit rounding from the hour value.
func Aggregate(a Allocation, rates RateTable) PayBreakdown {
	b := PayBreakdown{
		Base:       line(a.Base, rates.Base),
		Unsocial:   line(a.Unsocial, rates.Unsocial),
		Sunday:     line(a.Sunday, rates.Sunday),
		Holiday:    line(a.Holiday, rates.Holiday),
		BreakHours: minutesToHours(a.Break),
	}

	b.Total = decimal.Sum(b.Base.Pay, b.Unsocial.Pay, b.Sunday.Pay, b.Holiday.Pay)
	b.TotalHours = decimal.Sum(b.Base.Hours, b.Unsocial.Hours, b.Sunday.Hours, b.Holiday.Hours)
	return b
}

func line(minutes int, rate decimal.Decimal) Line {
	return Line{
		Hours: minutesToHours(minutes),
		Rate:  rate,
		Pay:   rate.Mul(decimal.NewFromInt(int64(minutes))).Div(sixty),
	}
}

// zeroBreakdown is returned for shifts whose end is not after their start.
// Rates are still reported so the result renders like any other.
func zeroBreakdown(rates RateTable) PayBreakdown {
	return Aggregate(Allocation{}, rates)
}
