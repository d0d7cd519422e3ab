package layout

import (
	"fmt"
	"strings"

	"github.com/tangramor/Rackula-sub001/pkg/errors"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

// PlanAddDeviceType validates a new catalog entry. The type is appended to
// the catalog order.
func (l *Layout) PlanAddDeviceType(t rack.DeviceType) (*AddTypeCommand, error) {
	if err := errors.ValidateSlug(t.Slug); err != nil {
		return nil, err
	}
	if t.Height <= 0 || t.Height > rack.MaxHeight {
		return nil, errors.New(errors.ErrCodeInvalidHeight, "device type %s: height must be between 0 and %d, got %g", t.Slug, rack.MaxHeight, t.Height)
	}
	if l.types.Has(t.Slug) {
		return nil, errors.New(errors.ErrCodeDuplicate, "device type %q already exists", t.Slug)
	}
	return &AddTypeCommand{Type: t, Index: l.types.Len(), l: l}, nil
}

// PlanRemoveDeviceType validates removing a catalog entry together with all
// of its placed instances.
func (l *Layout) PlanRemoveDeviceType(slug string) (*RemoveTypeCommand, error) {
	t, ok := l.types.DeviceType(slug)
	if !ok {
		return nil, errors.New(errors.ErrCodeDeviceTypeNotFound, "unknown device type %q", slug)
	}
	cmd := &RemoveTypeCommand{Type: t, Index: l.types.Index(slug), l: l}
	for i, d := range l.rack.Devices {
		if d.DeviceType == slug {
			cmd.Devices = append(cmd.Devices, IndexedDevice{Index: i, Device: d})
		}
	}
	return cmd, nil
}

// PlanPlace validates mounting a new device of type slug with its bottom at
// position on face. The device gets a fresh ID.
func (l *Layout) PlanPlace(slug string, position int, face rack.Face, name string) (*PlaceCommand, error) {
	c, err := l.Candidate(slug, face)
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	if err := l.check(c, position); err != nil {
		return nil, err
	}
	d := rack.PlacedDevice{
		ID:         l.newID(),
		DeviceType: slug,
		Name:       name,
		Position:   position,
		Face:       face,
	}
	return &PlaceCommand{Device: d, l: l}, nil
}

// PlanMove validates moving device id to position. An empty face keeps the
// current face.
func (l *Layout) PlanMove(id string, position int, face rack.Face) (*MoveCommand, error) {
	d, c, err := l.candidateForDevice(id, face)
	if err != nil {
		return nil, err
	}
	if err := l.check(c, position); err != nil {
		return nil, err
	}
	return l.move(d, position, c.Face), nil
}

// PlanNudge validates moving device id by delta slots, skipping over
// occupied slots in the direction of travel until a free one is found.
func (l *Layout) PlanNudge(id string, delta int) (*MoveCommand, error) {
	if delta == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nudge distance must not be zero")
	}
	d, c, err := l.candidateForDevice(id, "")
	if err != nil {
		return nil, err
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	last := l.rack.Height - rack.SlotSpan(c.Height) + 1
	if d.Position < 1 || d.Position > last {
		return nil, errors.New(errors.ErrCodeOutOfBounds, "%s is outside the rack; use move to bring it back", d.Label())
	}
	if delta > last-d.Position || delta < 1-d.Position {
		return nil, errors.New(errors.ErrCodeOutOfBounds, "%s cannot move past the %s of the rack", d.Label(), edge(step))
	}
	for slot := d.Position + delta; slot >= 1 && slot <= last; slot += step {
		if rack.CanPlace(&l.rack, l.types, c, slot) {
			return l.move(d, slot, d.Face), nil
		}
	}
	return nil, errors.New(errors.ErrCodeNoValidSlot, "no free slot for %s toward the %s of the rack", d.Label(), edge(step))
}

func edge(step int) string {
	if step > 0 {
		return "top"
	}
	return "bottom"
}

func (l *Layout) move(d rack.PlacedDevice, position int, face rack.Face) *MoveCommand {
	return &MoveCommand{
		ID:       d.ID,
		Label:    d.Label(),
		From:     d.Position,
		FromFace: d.Face,
		To:       position,
		ToFace:   face,
		l:        l,
	}
}

// PlanRemove validates unmounting device id.
func (l *Layout) PlanRemove(id string) (*RemoveCommand, error) {
	i := l.rack.IndexOf(id)
	if i < 0 {
		return nil, deviceNotFound(id)
	}
	return &RemoveCommand{IndexedDevice: IndexedDevice{Index: i, Device: l.rack.Devices[i]}, l: l}, nil
}

// PlanRename validates changing the display name of device id. An empty
// name falls back to the type slug for display.
func (l *Layout) PlanRename(id, name string) (*RenameCommand, error) {
	d, ok := l.rack.Device(id)
	if !ok {
		return nil, deviceNotFound(id)
	}
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	return &RenameCommand{ID: id, From: d.Name, To: name, l: l}, nil
}

// PlanResizeRack validates changing the rack height. Shrinking is allowed
// down to the highest occupied slot.
func (l *Layout) PlanResizeRack(height int) (*ResizeCommand, error) {
	if height < 1 || height > rack.MaxHeight {
		return nil, errors.New(errors.ErrCodeInvalidHeight, "rack height must be between 1 and %d, got %d", rack.MaxHeight, height)
	}
	var outside []string
	for _, d := range l.rack.Devices {
		if l.top(d) > height {
			outside = append(outside, d.Label())
		}
	}
	if len(outside) > 0 {
		return nil, errors.New(errors.ErrCodeOutOfBounds,
			"cannot resize to %dU: %s would not fit (highest occupied slot is %d)",
			height, strings.Join(outside, ", "), l.HighestOccupied())
	}
	return &ResizeCommand{From: l.rack.Height, To: height, l: l}, nil
}

// HighestOccupied returns the top slot of the highest device, or 0 for an
// empty rack. Devices with unknown types count as one slot tall.
func (l *Layout) HighestOccupied() int {
	top := 0
	for _, d := range l.rack.Devices {
		top = max(top, l.top(d))
	}
	return top
}

func (l *Layout) top(d rack.PlacedDevice) int {
	h := 1.0
	if t, ok := l.types.DeviceType(d.DeviceType); ok {
		h = t.Height
	}
	return rack.RangeOf(d.Position, h).Top
}

// PlanConfigureRack validates new rack settings.
func (l *Layout) PlanConfigureRack(s Settings) (*ConfigureCommand, error) {
	if err := errors.ValidateName(s.Name); err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = rack.DefaultName
	}
	if !s.Width.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidWidth, "unsupported rack width %d (want one of %v)", s.Width, rack.Widths)
	}
	if s.StartingUnit < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "starting unit must be at least 1, got %d", s.StartingUnit)
	}
	return &ConfigureCommand{From: l.Settings(), To: s, l: l}, nil
}

// PlanReplaceRack validates swapping in a whole new rack, e.g. one read from
// a file. An empty ID keeps the current rack's identity.
func (l *Layout) PlanReplaceRack(r rack.Rack) (*SnapshotCommand, error) {
	r = r.Clone()
	if r.ID == "" {
		r.ID = l.rack.ID
	}
	if r.StartingUnit == 0 {
		r.StartingUnit = rack.DefaultStartingUnit
	}
	if err := validateRack(&r, l.types); err != nil {
		return nil, err
	}
	return l.snapshot(KindReplace, r), nil
}

// PlanClearRack removes every device but keeps the rack and its settings.
func (l *Layout) PlanClearRack() *SnapshotCommand {
	r := l.rack.Clone()
	r.Devices = []rack.PlacedDevice{}
	return l.snapshot(KindClear, r)
}

// PlanResetRack replaces the rack with an empty default one of the same
// identity. A layout always has exactly one rack.
func (l *Layout) PlanResetRack() *SnapshotCommand {
	return l.snapshot(KindReset, l.emptyRack(l.rack.ID))
}

func (l *Layout) snapshot(op Kind, after rack.Rack) *SnapshotCommand {
	return &SnapshotCommand{Op: op, Before: l.rack.Clone(), After: after, l: l}
}

// check is the single gate for adding or moving a device.
func (l *Layout) check(c rack.Candidate, position int) error {
	if position < 1 {
		return errors.New(errors.ErrCodeInvalidSlot, "slot %d is below the bottom of the rack", position)
	}
	if last := l.rack.Height - rack.SlotSpan(c.Height) + 1; position > last {
		return errors.New(errors.ErrCodeOutOfBounds, "a %gU device at slot %d would extend past the top of a %dU rack", c.Height, position, l.rack.Height)
	}
	if rack.CanPlace(&l.rack, l.types, c, position) {
		return nil
	}
	blockers := rack.FindCollisions(&l.rack, l.types, c, position)
	names := make([]string, len(blockers))
	for i, b := range blockers {
		names[i] = b.Label()
	}
	return &errors.CollisionError{Slot: position, Face: string(c.Face), Blockers: names}
}

func (l *Layout) candidateForDevice(id string, face rack.Face) (rack.PlacedDevice, rack.Candidate, error) {
	d, ok := l.rack.Device(id)
	if !ok {
		return d, rack.Candidate{}, deviceNotFound(id)
	}
	if face == "" {
		face = d.Face
	}
	c, err := l.Candidate(d.DeviceType, face)
	if err != nil {
		return d, c, err
	}
	return d, c.Excluding(id), nil
}

func deviceNotFound(id string) error {
	return errors.New(errors.ErrCodeDeviceNotFound, "no device with id %q", id)
}

// validateRack checks settings and placement of a rack that did not come
// through the Plan methods.
func validateRack(r *rack.Rack, types rack.TypeLookup) error {
	if r.Height < 1 || r.Height > rack.MaxHeight {
		return errors.New(errors.ErrCodeInvalidHeight, "rack height must be between 1 and %d, got %d", rack.MaxHeight, r.Height)
	}
	if !r.Width.Valid() {
		return errors.New(errors.ErrCodeInvalidWidth, "unsupported rack width %d (want one of %v)", r.Width, rack.Widths)
	}
	if err := r.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid rack")
	}
	seen := make(map[string]bool, len(r.Devices))
	for _, d := range r.Devices {
		if d.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "device %s has no id", d.Label())
		}
		if seen[d.ID] {
			return errors.New(errors.ErrCodeDuplicate, "device id %q is used twice", d.ID)
		}
		seen[d.ID] = true
	}
	conflicts := rack.Conflicts(r, types)
	if len(conflicts) == 0 {
		return nil
	}
	first := conflicts[0]
	switch first.Kind {
	case rack.ConflictInvalidFace:
		return errors.New(errors.ErrCodeInvalidFace, "device %s has invalid face %q", first.A.Label(), first.A.Face)
	case rack.ConflictOutOfBounds:
		return errors.New(errors.ErrCodeOutOfBounds, "device %s at slots %d-%d is outside the %dU rack", first.A.Label(), first.Range.Bottom, first.Range.Top, r.Height)
	default:
		return &errors.CollisionError{Slot: first.Range.Bottom, Face: string(first.B.Face), Blockers: []string{first.A.Label()}}
	}
}

// =============================================================================
// Plan and apply in one step
// =============================================================================

// AddDeviceType adds t to the catalog.
func (l *Layout) AddDeviceType(t rack.DeviceType) error {
	cmd, err := l.PlanAddDeviceType(t)
	return run(cmd, err)
}

// RemoveDeviceType deletes a catalog entry and all of its placed instances.
func (l *Layout) RemoveDeviceType(slug string) error {
	cmd, err := l.PlanRemoveDeviceType(slug)
	return run(cmd, err)
}

// Place mounts a new device and returns it.
func (l *Layout) Place(slug string, position int, face rack.Face, name string) (rack.PlacedDevice, error) {
	cmd, err := l.PlanPlace(slug, position, face, name)
	if err != nil {
		return rack.PlacedDevice{}, err
	}
	cmd.Execute()
	return cmd.Device, nil
}

// Move moves a device and returns its new state.
func (l *Layout) Move(id string, position int, face rack.Face) (rack.PlacedDevice, error) {
	cmd, err := l.PlanMove(id, position, face)
	if err := run(cmd, err); err != nil {
		return rack.PlacedDevice{}, err
	}
	d, _ := l.rack.Device(id)
	return d, nil
}

// Nudge moves a device by delta slots and returns its new state.
func (l *Layout) Nudge(id string, delta int) (rack.PlacedDevice, error) {
	cmd, err := l.PlanNudge(id, delta)
	if err := run(cmd, err); err != nil {
		return rack.PlacedDevice{}, err
	}
	d, _ := l.rack.Device(id)
	return d, nil
}

// Remove unmounts a device and returns it.
func (l *Layout) Remove(id string) (rack.PlacedDevice, error) {
	cmd, err := l.PlanRemove(id)
	if err != nil {
		return rack.PlacedDevice{}, err
	}
	cmd.Execute()
	return cmd.Device, nil
}

// Rename sets a device's display name.
func (l *Layout) Rename(id, name string) error {
	cmd, err := l.PlanRename(id, name)
	return run(cmd, err)
}

// ResizeRack changes the rack height.
func (l *Layout) ResizeRack(height int) error {
	cmd, err := l.PlanResizeRack(height)
	return run(cmd, err)
}

// ConfigureRack changes the rack settings.
func (l *Layout) ConfigureRack(s Settings) error {
	cmd, err := l.PlanConfigureRack(s)
	return run(cmd, err)
}

// ReplaceRack swaps in a whole new rack.
func (l *Layout) ReplaceRack(r rack.Rack) error {
	cmd, err := l.PlanReplaceRack(r)
	return run(cmd, err)
}

// ClearRack removes every device.
func (l *Layout) ClearRack() { l.PlanClearRack().Execute() }

// ResetRack replaces the rack with an empty default one.
func (l *Layout) ResetRack() { l.PlanResetRack().Execute() }

func run[C Command](cmd C, err error) error {
	if err != nil {
		return err
	}
	cmd.Execute()
	return nil
}

// String summarizes the layout for logs.
func (l *Layout) String() string {
	return fmt.Sprintf("%s: %s %dU, %d devices, %d types", l.name, l.rack.Name, l.rack.Height, len(l.rack.Devices), l.types.Len())
}
