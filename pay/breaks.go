package pay

import (
	"fmt"
	"sort"
	"time"
)

// =============================================================================
// BREAK POLICY - Unpaid break sized by shift length
// =============================================================================

// BreakTier deducts Break from any shift whose raw duration is at least Min.
// A tier with Min == 0 covers every positive duration.
type BreakTier struct {
	Min   time.Duration
	Break time.Duration
}

// BreakPolicy picks the tier with the largest Min not exceeding the raw
// duration. Tiers are kept sorted by Min, ascending.
type BreakPolicy struct {
	tiers []BreakTier
}

// DefaultBreakTiers: 8h or more -> 1h, 6h to 8h -> 30m, under 6h -> 15m.
func DefaultBreakTiers() []BreakTier {
	return []BreakTier{
		{Min: 0, Break: 15 * time.Minute},
		{Min: 6 * time.Hour, Break: 30 * time.Minute},
		{Min: 8 * time.Hour, Break: time.Hour},
	}
}

// NewBreakPolicy validates and sorts the tiers. The deduction must not
// shrink as shifts get longer.
func NewBreakPolicy(tiers []BreakTier) (BreakPolicy, error) {
	sorted := make([]BreakTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })

	for i, t := range sorted {
		field := fmt.Sprintf("breaks[%d]", i)
		if t.Min < 0 || t.Break < 0 {
			return BreakPolicy{}, &PolicyError{Field: field, Message: "durations must not be negative"}
		}
		if t.Min%time.Minute != 0 || t.Break%time.Minute != 0 {
			return BreakPolicy{}, &PolicyError{Field: field, Message: "durations must be whole minutes"}
		}
		if i > 0 {
			prev := sorted[i-1]
			if prev.Min == t.Min {
				return BreakPolicy{}, &PolicyError{Field: field, Message: "duplicate threshold " + t.Min.String()}
			}
			if t.Break < prev.Break {
				return BreakPolicy{}, &PolicyError{Field: field, Message: "break must not decrease as shifts get longer"}
			}
		}
	}
	return BreakPolicy{tiers: sorted}, nil
}

// Tiers returns a copy of the tiers, ascending by Min.
func (p BreakPolicy) Tiers() []BreakTier {
	out := make([]BreakTier, len(p.tiers))
	copy(out, p.tiers)
	return out
}

// Deduction returns the unpaid break in minutes for a raw duration in
// minutes. Non-positive durations get no break. The break never exceeds
// the shift itself.
func (p BreakPolicy) Deduction(rawMinutes int) int {
	if rawMinutes <= 0 {
		return 0
	}
	raw := time.Duration(rawMinutes) * time.Minute

	var brk time.Duration
	for _, t := range p.tiers {
		if raw < t.Min {
			break
		}
		brk = t.Break
	}

	m := int(brk / time.Minute)
	if m > rawMinutes {
		return rawMinutes
	}
	return m
}
