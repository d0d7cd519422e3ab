// Package drop maps continuous pointer coordinates onto legal rack slots.
//
// The renderer draws a rack top to bottom with y=0 at the top edge and each
// slot SlotHeight pixels tall, while slot 1 is the physical bottom of the
// rack. [SlotAt] converts between the two, and [Resolver] snaps the estimate
// to the nearest slot returned by [rack.FindValidSlots].
//
// Resolvers hold no state beyond their configuration and recompute validity
// on every call, so they are always consistent with the rack they are given.
package drop

import (
	"math"

	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

// DefaultSlotHeight is the rendered height of one slot in pixels.
const DefaultSlotHeight = 22

// SlotAt converts a y coordinate, measured down from the top of the rendered
// rack, to the slot under it. Points above the rack map to rackHeight+1 and
// points below it to 0. A NaN y maps to 0.
func SlotAt(y, slotHeight float64, rackHeight int) int {
	if slotHeight <= 0 {
		slotHeight = DefaultSlotHeight
	}
	rows := math.Floor(y / slotHeight)
	switch {
	case math.IsNaN(rows), rows > float64(rackHeight):
		return 0
	case rows < -1:
		return rackHeight + 1
	}
	return rackHeight - int(rows)
}

// Nearest returns the member of valid closest to target. valid must be in
// ascending order; on a tie the smaller slot wins. ok is false when valid
// is empty.
func Nearest(valid []int, target int) (slot int, ok bool) {
	if len(valid) == 0 {
		return 0, false
	}
	best, bestDist := valid[0], abs(valid[0]-target)
	for _, s := range valid[1:] {
		if d := abs(s - target); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, true
}

// Resolver snaps drop coordinates to valid slots.
//
// The zero value uses [DefaultSlotHeight].
type Resolver struct {
	SlotHeight float64
}

// Resolve returns the valid bottom slot for c closest to the pointer at y.
// ok is false when c fits nowhere in r or y is not a finite number.
func (res Resolver) Resolve(r *rack.Rack, types rack.TypeLookup, c rack.Candidate, y float64) (slot int, ok bool) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, false
	}
	target := SlotAt(y, res.slotHeight(), r.Height)
	return Nearest(rack.FindValidSlots(r, types, c), target)
}

// Target returns the raw slot estimate for y without checking validity.
func (res Resolver) Target(r *rack.Rack, y float64) int {
	return SlotAt(y, res.slotHeight(), r.Height)
}

func (res Resolver) slotHeight() float64 {
	if res.SlotHeight <= 0 {
		return DefaultSlotHeight
	}
	return res.SlotHeight
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
