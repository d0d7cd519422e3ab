package layout

import (
	"slices"

	"github.com/google/uuid"

	"github.com/tangramor/Rackula-sub001/pkg/errors"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

// Defaults are the settings used for new and reset racks.
type Defaults struct {
	Name   string
	Height int
	Width  rack.Width
}

// DefaultDefaults returns the built-in rack settings.
func DefaultDefaults() Defaults {
	return Defaults{Name: rack.DefaultName, Height: rack.DefaultHeight, Width: rack.DefaultWidth}
}

// Layout is one rack and its device-type catalog.
//
// A Layout is not safe for concurrent use.
type Layout struct {
	name     string
	rack     rack.Rack
	types    *rack.Catalog
	defaults Defaults
	newID    func() string
}

// Option configures a Layout.
type Option func(*Layout)

// WithIDGenerator replaces the UUID generator used for new racks and devices.
func WithIDGenerator(fn func() string) Option {
	return func(l *Layout) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// WithDefaults sets the settings used by New and ResetRack. Zero fields keep
// the built-in defaults.
func WithDefaults(d Defaults) Option {
	return func(l *Layout) {
		if d.Name != "" {
			l.defaults.Name = d.Name
		}
		if d.Height > 0 {
			l.defaults.Height = d.Height
		}
		if d.Width.Valid() {
			l.defaults.Width = d.Width
		}
	}
}

// New creates a layout with an empty default rack and an empty catalog.
func New(name string, opts ...Option) *Layout {
	l := newLayout(name, opts)
	l.rack = l.emptyRack(l.newID())
	return l
}

func newLayout(name string, opts []Option) *Layout {
	l := &Layout{
		name:     name,
		types:    rack.NewCatalog(),
		defaults: DefaultDefaults(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Layout) emptyRack(id string) rack.Rack {
	r := rack.New(id, l.defaults.Name, l.defaults.Height)
	r.Width = l.defaults.Width
	return r
}

// Name returns the layout name.
func (l *Layout) Name() string { return l.name }

// Rack returns the current rack. Callers must treat it as read-only; use
// the Plan methods to change it.
func (l *Layout) Rack() *rack.Rack { return &l.rack }

// Catalog returns the device-type catalog. Callers must treat it as
// read-only; use AddDeviceType and RemoveDeviceType to change it.
func (l *Layout) Catalog() *rack.Catalog { return l.types }

// Device returns the placed device with the given ID.
func (l *Layout) Device(id string) (rack.PlacedDevice, bool) { return l.rack.Device(id) }

// Candidate builds a validator candidate for a catalog type mounted on face.
func (l *Layout) Candidate(slug string, face rack.Face) (rack.Candidate, error) {
	t, ok := l.types.DeviceType(slug)
	if !ok {
		return rack.Candidate{}, errors.New(errors.ErrCodeDeviceTypeNotFound, "unknown device type %q", slug)
	}
	if !face.Valid() {
		return rack.Candidate{}, errors.New(errors.ErrCodeInvalidFace, "invalid face %q (want front, rear or both)", face)
	}
	return rack.CandidateFor(t, face), nil
}

// ValidSlots lists every bottom slot where a device of type slug could be
// placed on face.
func (l *Layout) ValidSlots(slug string, face rack.Face) ([]int, error) {
	c, err := l.Candidate(slug, face)
	if err != nil {
		return nil, err
	}
	return rack.FindValidSlots(&l.rack, l.types, c), nil
}

// Collisions lists the devices that would block a device of type slug at
// position on face.
func (l *Layout) Collisions(slug string, position int, face rack.Face) ([]rack.PlacedDevice, error) {
	c, err := l.Candidate(slug, face)
	if err != nil {
		return nil, err
	}
	return rack.FindCollisions(&l.rack, l.types, c, position), nil
}

// BlockedSlots returns the ranges on face hidden behind full-depth devices
// on the opposite face.
func (l *Layout) BlockedSlots(face rack.Face) []rack.URange {
	return rack.FindBlockedSlots(&l.rack, l.types, face)
}

// Conflicts reports placement problems in the current rack. It is empty for
// any layout built through Plan methods.
func (l *Layout) Conflicts() []rack.Conflict {
	return rack.Conflicts(&l.rack, l.types)
}

// Orphans returns devices whose type is missing from the catalog. They are
// kept but ignored by collision checks.
func (l *Layout) Orphans() []rack.PlacedDevice {
	var out []rack.PlacedDevice
	for _, d := range l.rack.Devices {
		if !l.types.Has(d.DeviceType) {
			out = append(out, d)
		}
	}
	return out
}

// Settings returns the rack's descriptive settings.
func (l *Layout) Settings() Settings {
	return Settings{
		Name:         l.rack.Name,
		Width:        l.rack.Width,
		StartingUnit: l.rack.StartingUnit,
		DescUnits:    l.rack.DescUnits,
	}
}

// =============================================================================
// Raw state changes used by commands. No validation happens here.
// =============================================================================

func (l *Layout) insertDevice(i int, d rack.PlacedDevice) {
	i = max(0, min(i, len(l.rack.Devices)))
	l.rack.Devices = slices.Insert(l.rack.Devices, i, d)
}

func (l *Layout) deleteDevice(id string) {
	if i := l.rack.IndexOf(id); i >= 0 {
		l.rack.Devices = slices.Delete(l.rack.Devices, i, i+1)
	}
}

func (l *Layout) updateDevice(id string, fn func(*rack.PlacedDevice)) {
	if i := l.rack.IndexOf(id); i >= 0 {
		fn(&l.rack.Devices[i])
	}
}
