// Package rack provides the rack model and the placement and collision engine
// that decides where rack-mount devices may go.
//
// # Overview
//
// A [Rack] is a column of numbered unit slots. Devices are mounted at a
// bottom slot and occupy a contiguous run of slots upwards, on the front,
// the rear, or both faces of the rack. Slot 1 is always the physical bottom;
// [Rack.UnitLabel] converts a physical slot to the label shown to users when
// the rack numbers its units differently.
//
// # Geometry
//
// [RangeOf] turns a (position, height) pair into an inclusive [URange] and
// [Overlaps] tests two ranges. Ranges that share a single slot overlap; only
// ranges separated by at least one empty slot do not. Fractional heights
// (half-unit devices) occupy [SlotSpan] whole slots.
//
// # Face collision
//
// Two devices whose ranges overlap only conflict when their faces collide, see
// [FacesCollide]: a both-face device always collides, devices on the same face
// always collide, and devices on opposite faces collide unless both are
// half-depth. This lets shallow patch panels share a slot range with shallow
// devices mounted from the other side.
//
// # Validation
//
// [CanPlace] is the single gatekeeper for adding or moving a device. It never
// fails loudly: a boolean is the complete contract. [FindCollisions] returns
// the blocking devices for user-facing diagnostics, [FindValidSlots] lists
// every legal bottom slot in ascending order, and [FindBlockedSlots] reports
// the ranges hidden behind full-depth devices on the opposite face.
//
// Device types are resolved through a [TypeLookup], normally a [Catalog].
// A placed device whose type is missing from the catalog is skipped during
// scans, since layouts and catalogs may legitimately fall out of sync.
//
// # Concurrency
//
// All functions are pure and perform no I/O. [Rack] and [Catalog] values are
// not safe for concurrent mutation; the engine assumes a single writer.
package rack
