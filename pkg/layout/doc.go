// Package layout is the mutation surface of a rack diagram.
//
// A [Layout] owns one [rack.Rack] and the [rack.Catalog] of device types it
// references. Every change goes through a Plan method that validates the
// request against the current state and returns a command describing it,
// without touching anything:
//
//	cmd, err := l.PlanPlace("dell-r650", 10, rack.FaceFront, "db01")
//	if err != nil {
//	    // rejected: errors.GetCode(err) tells why
//	}
//	h.Execute(cmd) // applies it and records it for undo
//
// The unprefixed methods (Place, Move, ...) plan and apply in one step for
// callers that do not keep a history.
//
// # Placement Rules
//
// Placing, moving and nudging a device always ends in [rack.CanPlace], so a
// layout built through this package never holds colliding or out-of-bounds
// devices. Resizing is allowed down to the highest occupied slot and
// rejected below it. Replacing the rack wholesale checks the new rack with
// [rack.Conflicts].
//
// # Commands
//
// Commands are small structs carrying only the data needed to apply and
// reverse one change. Their Undo is the exact inverse of Execute: a removed
// device is reinserted at its original index, a deleted device type brings
// back the instances that were removed with it. [EncodeCommand] and
// [DecodeCommand] convert commands to a [Record] so a history can be saved
// and resumed.
//
// # Documents
//
// [Layout.Document] returns a plain [Document] snapshot suitable for any
// serializer; [FromDocument] rebuilds a layout from one.
package layout
