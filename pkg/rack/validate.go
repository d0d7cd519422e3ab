package rack

import (
	"cmp"
	"slices"
)

// Candidate describes a device that is about to be placed or moved.
type Candidate struct {
	Height    float64 // Height in slot units, may be fractional
	Face      Face    // Requested mounting face
	FullDepth bool    // Whether the device spans the whole rack depth
	Exclude   string  // Instance ID to ignore, used when moving a device
}

// NewCandidate returns a candidate of the given height with the default
// front face and full depth.
func NewCandidate(height float64) Candidate {
	return Candidate{Height: height, Face: FaceFront, FullDepth: true}
}

// CandidateFor derives a candidate from a catalog entry mounted on face.
func CandidateFor(t DeviceType, face Face) Candidate {
	return Candidate{Height: t.Height, Face: face, FullDepth: t.FullDepth()}
}

// Excluding returns a copy of c that ignores the given instance.
func (c Candidate) Excluding(id string) Candidate {
	c.Exclude = id
	return c
}

// CanPlace reports whether c fits at bottom slot in r without colliding with
// any existing device. Devices whose type cannot be resolved are skipped.
func CanPlace(r *Rack, types TypeLookup, c Candidate, slot int) bool {
	if !fits(r, c, slot) {
		return false
	}
	want := RangeOf(slot, c.Height)
	for _, d := range r.Devices {
		if blocks(d, types, c, want) {
			return false
		}
	}
	return true
}

// FindCollisions returns the devices that block c at slot, in rack order.
// Out-of-bounds requests have no blockers; check [CanPlace] for those.
func FindCollisions(r *Rack, types TypeLookup, c Candidate, slot int) []PlacedDevice {
	want := RangeOf(slot, c.Height)
	var out []PlacedDevice
	for _, d := range r.Devices {
		if blocks(d, types, c, want) {
			out = append(out, d)
		}
	}
	return out
}

// FindValidSlots returns every bottom slot where c can be placed, ascending.
func FindValidSlots(r *Rack, types TypeLookup, c Candidate) []int {
	last := r.Height - SlotSpan(c.Height) + 1
	var out []int
	for slot := 1; slot <= last; slot++ {
		if CanPlace(r, types, c, slot) {
			out = append(out, slot)
		}
	}
	return out
}

// FindBlockedSlots returns the ranges on face that are unusable because a
// full-depth device is mounted on the opposite face. Renderers hatch these
// ranges. Devices on face itself, and both-face devices, are drawn directly
// and are not reported. Results are ordered by bottom slot.
func FindBlockedSlots(r *Rack, types TypeLookup, face Face) []URange {
	if face == FaceBoth {
		return nil
	}
	var out []URange
	for _, d := range r.Devices {
		if d.Face == face || d.Face == FaceBoth {
			continue
		}
		t, ok := types.DeviceType(d.DeviceType)
		if !ok || !t.FullDepth() {
			continue
		}
		out = append(out, RangeOf(d.Position, t.Height))
	}
	slices.SortStableFunc(out, func(a, b URange) int { return cmp.Compare(a.Bottom, b.Bottom) })
	return out
}

// ConflictKind classifies a problem found by [Conflicts].
type ConflictKind string

const (
	ConflictOutOfBounds ConflictKind = "out_of_bounds"
	ConflictCollision   ConflictKind = "collision"
	ConflictInvalidFace ConflictKind = "invalid_face"
)

// Conflict is one placement problem in an existing rack.
type Conflict struct {
	Kind  ConflictKind
	A     PlacedDevice
	B     PlacedDevice // Set for collisions only
	Range URange
}

// Conflicts checks every device in r against the rack bounds and against
// each other. A rack built only through [CanPlace] has none; imported racks
// may. Devices whose type cannot be resolved are skipped.
func Conflicts(r *Rack, types TypeLookup) []Conflict {
	var out []Conflict
	for i, a := range r.Devices {
		ta, ok := types.DeviceType(a.DeviceType)
		if !ok {
			continue
		}
		ra := RangeOf(a.Position, ta.Height)
		if !a.Face.Valid() {
			out = append(out, Conflict{Kind: ConflictInvalidFace, A: a, Range: ra})
			continue
		}
		if ra.Bottom < 1 || ra.Top > r.Height {
			out = append(out, Conflict{Kind: ConflictOutOfBounds, A: a, Range: ra})
		}
		for _, b := range r.Devices[i+1:] {
			tb, ok := types.DeviceType(b.DeviceType)
			if !ok {
				continue
			}
			rb := RangeOf(b.Position, tb.Height)
			if Overlaps(ra, rb) && FacesCollide(a.Face, b.Face, ta.FullDepth(), tb.FullDepth()) {
				out = append(out, Conflict{
					Kind:  ConflictCollision,
					A:     a,
					B:     b,
					Range: URange{Bottom: max(ra.Bottom, rb.Bottom), Top: min(ra.Top, rb.Top)},
				})
			}
		}
	}
	return out
}

// fits reports whether the candidate lies entirely inside the rack.
func fits(r *Rack, c Candidate, slot int) bool {
	if slot < 1 || c.Height <= 0 {
		return false
	}
	span := SlotSpan(c.Height)
	return span <= r.Height && slot <= r.Height-span+1
}

// blocks reports whether existing device d prevents c from occupying want.
func blocks(d PlacedDevice, types TypeLookup, c Candidate, want URange) bool {
	if c.Exclude != "" && d.ID == c.Exclude {
		return false
	}
	t, ok := types.DeviceType(d.DeviceType)
	if !ok {
		return false
	}
	return Overlaps(want, RangeOf(d.Position, t.Height)) &&
		FacesCollide(c.Face, d.Face, c.FullDepth, t.FullDepth())
}
