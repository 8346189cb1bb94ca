package pay

// =============================================================================
// OVERRIDE RESOLVER - holiday > Sunday > weekday segmentation
// =============================================================================

// Allocation is the number of paid minutes per category after the break
// and premium precedence are applied. Exactly one of the three shapes holds:
// only Holiday set, only Sunday set, or Base/Unsocial set.
type Allocation struct {
	Base     int
	Unsocial int
	Sunday   int
	Holiday  int
	Break    int
}

// Net is the paid minutes across every category.
func (a Allocation) Net() int {
	return a.Base + a.Unsocial + a.Sunday + a.Holiday
}

// Resolve applies precedence to a segmented shift. It is total: any
// Segments and break produce a valid Allocation.
//
// Holiday and Sunday shifts are billed entirely at their own rate; the
// unsocial split is discarded. Weekday shifts take the break out of base
// time first. When a shift has less base time than the break, the rest of
// the break comes out of the unsocial time.
func Resolve(seg Segments, breakMinutes int, isHoliday, isSunday bool) Allocation {
	if breakMinutes > seg.Raw {
		breakMinutes = seg.Raw
	}
	net := seg.Raw - breakMinutes

	switch {
	case isHoliday:
		return Allocation{Holiday: net, Break: breakMinutes}
	case isSunday:
		return Allocation{Sunday: net, Break: breakMinutes}
	}

	base := seg.Base - breakMinutes
	unsocial := seg.Unsocial
	if base < 0 {
		unsocial += base
		base = 0
	}
	return Allocation{Base: base, Unsocial: unsocial, Break: breakMinutes}
}
