package rack

import (
	"fmt"
	"slices"
	"strings"
)

// Face identifies the side of the rack a device is mounted on.
type Face string

const (
	// FaceFront mounts the device on the front rails.
	FaceFront Face = "front"
	// FaceRear mounts the device on the rear rails.
	FaceRear Face = "rear"
	// FaceBoth marks a device that occupies the whole depth and shows on both faces.
	FaceBoth Face = "both"
)

// Valid reports whether f is one of the known faces.
func (f Face) Valid() bool {
	return f == FaceFront || f == FaceRear || f == FaceBoth
}

// Opposite returns the other mounting face. FaceBoth is its own opposite.
func (f Face) Opposite() Face {
	switch f {
	case FaceFront:
		return FaceRear
	case FaceRear:
		return FaceFront
	default:
		return f
	}
}

// ParseFace converts user input to a Face. Matching is case-insensitive.
func ParseFace(s string) (Face, error) {
	f := Face(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("unknown face %q (want front, rear or both)", s)
	}
	return f, nil
}

// Width is the physical rail width of a rack in inches.
type Width int

// Supported rack widths.
const (
	Width10 Width = 10
	Width19 Width = 19
	Width21 Width = 21
	Width23 Width = 23
)

// Widths lists the supported widths in ascending order.
var Widths = []Width{Width10, Width19, Width21, Width23}

// Valid reports whether w is a supported width.
func (w Width) Valid() bool { return slices.Contains(Widths, w) }

// Default rack settings.
const (
	DefaultHeight       = 42
	DefaultWidth        = Width19
	DefaultStartingUnit = 1
	DefaultName         = "Rack"
	MaxHeight           = 100
)

// PlacedDevice is an instance of a device type mounted in a rack.
// Position is the physical bottom slot, 1-indexed from the bottom of the rack
// regardless of how the rack numbers its units.
type PlacedDevice struct {
	ID         string `json:"id" yaml:"id"`
	DeviceType string `json:"device_type" yaml:"device_type"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Position   int    `json:"position" yaml:"position"`
	Face       Face   `json:"face" yaml:"face"`
}

// Label returns the display name of the device, falling back to its type slug.
func (d PlacedDevice) Label() string {
	if d.Name != "" {
		return d.Name
	}
	return d.DeviceType
}

// Rack is the authoritative model of one rack enclosure.
//
// The zero value is not usable; use [New] or set Height and Width explicitly.
type Rack struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Height       int            `json:"height" yaml:"height"`
	Width        Width          `json:"width" yaml:"width"`
	StartingUnit int            `json:"starting_unit,omitempty" yaml:"starting_unit,omitempty"`
	DescUnits    bool           `json:"desc_units,omitempty" yaml:"desc_units,omitempty"`
	Devices      []PlacedDevice `json:"devices" yaml:"devices"`
}

// New creates an empty rack with the given identity and default settings.
func New(id, name string, height int) Rack {
	if name == "" {
		name = DefaultName
	}
	return Rack{
		ID:           id,
		Name:         name,
		Height:       height,
		Width:        DefaultWidth,
		StartingUnit: DefaultStartingUnit,
		Devices:      []PlacedDevice{},
	}
}

// Clone returns a deep copy of the rack.
func (r Rack) Clone() Rack {
	c := r
	c.Devices = slices.Clone(r.Devices)
	if c.Devices == nil {
		c.Devices = []PlacedDevice{}
	}
	return c
}

// Device returns the placed device with the given instance ID.
func (r *Rack) Device(id string) (PlacedDevice, bool) {
	if i := r.IndexOf(id); i >= 0 {
		return r.Devices[i], true
	}
	return PlacedDevice{}, false
}

// IndexOf returns the index of the device with the given ID, or -1.
func (r *Rack) IndexOf(id string) int {
	return slices.IndexFunc(r.Devices, func(d PlacedDevice) bool { return d.ID == id })
}

// UnitLabel converts a physical slot (1 = bottom) to the unit number displayed
// for it. Ascending racks count up from StartingUnit at the bottom; racks with
// DescUnits count up from StartingUnit at the top.
func (r *Rack) UnitLabel(slot int) int {
	start := r.StartingUnit
	if start == 0 {
		start = DefaultStartingUnit
	}
	if r.DescUnits {
		return start + (r.Height - slot)
	}
	return start + slot - 1
}

// SlotForLabel is the inverse of [Rack.UnitLabel].
func (r *Rack) SlotForLabel(label int) int {
	start := r.StartingUnit
	if start == 0 {
		start = DefaultStartingUnit
	}
	if r.DescUnits {
		return r.Height - (label - start)
	}
	return label - start + 1
}

// Validate checks the rack's own settings. It does not check device
// placement; see [Conflicts].
func (r *Rack) Validate() error {
	if r.Height < 1 || r.Height > MaxHeight {
		return fmt.Errorf("rack height must be between 1 and %d, got %d", MaxHeight, r.Height)
	}
	if !r.Width.Valid() {
		return fmt.Errorf("unsupported rack width %d", r.Width)
	}
	if r.StartingUnit < 0 {
		return fmt.Errorf("starting unit must not be negative, got %d", r.StartingUnit)
	}
	return nil
}
