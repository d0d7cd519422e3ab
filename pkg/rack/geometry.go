package rack

import "math"

// URange is an inclusive run of slots. It is derived from a device's position
// and height on demand and never stored.
type URange struct {
	Bottom int
	Top    int
}

// Size returns the number of slots in the range.
func (u URange) Size() int { return u.Top - u.Bottom + 1 }

// Contains reports whether slot lies inside the range.
func (u URange) Contains(slot int) bool { return slot >= u.Bottom && slot <= u.Top }

// SlotSpan returns the number of whole slots a device of the given height
// occupies. Fractional heights round up; any positive height takes at least
// one slot.
func SlotSpan(height float64) int {
	if height <= 0 {
		return 0
	}
	return max(1, int(math.Ceil(height)))
}

// RangeOf returns the slots occupied by a device whose bottom sits at position.
// Top saturates at math.MaxInt instead of wrapping.
func RangeOf(position int, height float64) URange {
	span := SlotSpan(height)
	if span > 0 && position > math.MaxInt-span+1 {
		return URange{Bottom: position, Top: math.MaxInt}
	}
	return URange{Bottom: position, Top: position + span - 1}
}

// Overlaps reports whether two ranges share at least one slot.
func Overlaps(a, b URange) bool {
	return a.Bottom <= b.Top && a.Top >= b.Bottom
}
