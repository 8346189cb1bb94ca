package pay

// =============================================================================
// POLICY - Everything the calculation is configured with
// =============================================================================

// Policy is the compensation policy: rates, unsocial bands and break tiers.
// SundayLabel is how the Sunday category is presented (some sites call it
// "overtime"); it does not affect the arithmetic.
type Policy struct {
	Rates       RateTable
	Bands       []TimeBand
	Breaks      []BreakTier
	SundayLabel string
}

// DefaultPolicy: stock rates, early + late unsocial bands, default breaks.
func DefaultPolicy() Policy {
	return Policy{
		Rates:       DefaultRates(),
		Bands:       DefaultBands(),
		Breaks:      DefaultBreakTiers(),
		SundayLabel: string(CategorySunday),
	}
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator runs the pay pipeline under one fixed policy. It holds no
// mutable state and is safe for concurrent use.
type Calculator struct {
	rates       RateTable
	bands       []TimeBand
	breaks      BreakPolicy
	sundayLabel string
}

// NewCalculator validates the policy and takes a private copy of it.
func NewCalculator(p Policy) (*Calculator, error) {
	if err := p.Rates.Validate(); err != nil {
		return nil, err
	}
	bands, err := normalizeBands(p.Bands)
	if err != nil {
		return nil, err
	}
	breaks, err := NewBreakPolicy(p.Breaks)
	if err != nil {
		return nil, err
	}

	label := p.SundayLabel
	if label == "" {
		label = string(CategorySunday)
	}

	return &Calculator{
		rates:       p.Rates,
		bands:       bands,
		breaks:      breaks,
		sundayLabel: label,
	}, nil
}

// Policy returns a copy of the active policy.
func (c *Calculator) Policy() Policy {
	bands := make([]TimeBand, len(c.bands))
	copy(bands, c.bands)
	return Policy{
		Rates:       c.rates,
		Bands:       bands,
		Breaks:      c.breaks.Tiers(),
		SundayLabel: c.sundayLabel,
	}
}

// Rates returns the active rate table.
func (c *Calculator) Rates() RateTable { return c.rates }

// SundayLabel returns the display name of the Sunday category.
func (c *Calculator) SundayLabel() string { return c.sundayLabel }

// Calculate computes the breakdown for one shift.
//
// A malformed start or end fails with ErrInvalidTimeFormat and no
// breakdown. An end at or before the start is not an error: it yields a
// zero breakdown so half-entered records upstream do not break totals.
func (c *Calculator) Calculate(s Shift) (PayBreakdown, error) {
	start, end, err := Normalize(s.Start, s.End)
	if err != nil {
		return PayBreakdown{}, err
	}

	raw := int(end - start)
	if raw <= 0 {
		return zeroBreakdown(c.rates), nil
	}

	brk := c.breaks.Deduction(raw)
	seg := Segment(start, end, c.bands)
	alloc := Resolve(seg, brk, s.IsHoliday, s.IsSunday)
	return Aggregate(alloc, c.rates), nil
}
