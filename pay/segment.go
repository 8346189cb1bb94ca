package pay

import (
	"fmt"
	"sort"
)

// =============================================================================
// TIME BANDS - Where the unsocial premium applies
// =============================================================================

// TimeBand is the half-open interval [From, To) on the 24-hour clock.
type TimeBand struct {
	From  WallClock
	To    WallClock
	Label string
}

// NewTimeBand parses "HH:MM" bounds. "24:00" is a valid To.
func NewTimeBand(from, to, label string) (TimeBand, error) {
	f, err := ParseClock(from)
	if err != nil {
		return TimeBand{}, withField(err, label+".from")
	}
	t, err := ParseClock(to)
	if err != nil {
		return TimeBand{}, withField(err, label+".to")
	}
	b := TimeBand{From: f, To: t, Label: label}
	return b, b.validate()
}

func (b TimeBand) validate() error {
	if b.From < Midnight || b.To > EndOfDay || b.From >= b.To {
		return &PolicyError{
			Field:   "bands." + b.Label,
			Message: fmt.Sprintf("band %s-%s must satisfy 00:00 <= from < to <= 24:00", b.From, b.To),
		}
	}
	return nil
}

// overlap is the length in minutes of [start, end) ∩ [From, To).
func (b TimeBand) overlap(start, end WallClock) int {
	lo := start
	if b.From > lo {
		lo = b.From
	}
	hi := end
	if b.To < hi {
		hi = b.To
	}
	if hi <= lo {
		return 0
	}
	return int(hi - lo)
}

func (b TimeBand) String() string {
	return fmt.Sprintf("%s %s-%s", b.Label, b.From, b.To)
}

// DefaultBands: early 00:00-08:00 and late 20:00-24:00.
func DefaultBands() []TimeBand {
	return []TimeBand{
		{From: MustParseClock("00:00"), To: MustParseClock("08:00"), Label: "early"},
		{From: MustParseClock("20:00"), To: MustParseClock("24:00"), Label: "late"},
	}
}

// normalizeBands validates each band, sorts by From and rejects overlaps.
// Adjacent bands (one ends where the next starts) are fine.
func normalizeBands(bands []TimeBand) ([]TimeBand, error) {
	sorted := make([]TimeBand, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].From < sorted[j].From })

	for i, b := range sorted {
		if err := b.validate(); err != nil {
			return nil, err
		}
		if i > 0 && sorted[i-1].To > b.From {
			return nil, &PolicyError{
				Field:   "bands." + b.Label,
				Message: fmt.Sprintf("overlaps band %s", sorted[i-1]),
			}
		}
	}
	return sorted, nil
}

// =============================================================================
// SEGMENTER
// =============================================================================

// Segments is the raw partition of a shift, in minutes, before any break
// or premium precedence is applied.
type Segments struct {
	Raw      int
	Unsocial int
	Base     int
}

// Segment intersects [start, end) with each band. Bands must not overlap,
// so summing the per-band overlaps never counts a minute twice.
func Segment(start, end WallClock, bands []TimeBand) Segments {
	raw := int(end - start)
	if raw <= 0 {
		return Segments{}
	}

	unsocial := 0
	for _, b := range bands {
		unsocial += b.overlap(start, end)
	}

	base := raw - unsocial
	if base < 0 {
		base = 0
	}
	return Segments{Raw: raw, Unsocial: unsocial, Base: base}
}
