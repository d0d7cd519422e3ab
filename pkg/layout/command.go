package layout

import (
	"fmt"

	"github.com/tangramor/Rackula-sub001/pkg/history"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

// Kind tags a command variant in a [Record].
type Kind string

// Command kinds.
const (
	KindAddType    Kind = "add_type"
	KindRemoveType Kind = "remove_type"
	KindPlace      Kind = "place"
	KindMove       Kind = "move"
	KindRemove     Kind = "remove"
	KindRename     Kind = "rename"
	KindResize     Kind = "resize"
	KindConfigure  Kind = "configure"
	KindReplace    Kind = "replace"
	KindClear      Kind = "clear"
	KindReset      Kind = "reset"
)

// Command is a history.Command that belongs to a Layout.
type Command interface {
	history.Command
	Kind() Kind
	bind(l *Layout)
}

// IndexedDevice is a device together with its index in the rack's device list.
type IndexedDevice struct {
	Index  int               `json:"index"`
	Device rack.PlacedDevice `json:"device"`
}

// AddTypeCommand adds a device type to the catalog.
type AddTypeCommand struct {
	Type  rack.DeviceType `json:"type"`
	Index int             `json:"index"`
	l     *Layout
}

func (c *AddTypeCommand) Execute()            { c.l.types.Insert(c.Index, c.Type) }
func (c *AddTypeCommand) Undo()               { c.l.types.Delete(c.Type.Slug) }
func (c *AddTypeCommand) Description() string { return "Add device type " + c.Type.Slug }
func (c *AddTypeCommand) Kind() Kind          { return KindAddType }
func (c *AddTypeCommand) bind(l *Layout)      { c.l = l }

// RemoveTypeCommand deletes a device type and every placed instance of it.
type RemoveTypeCommand struct {
	Type    rack.DeviceType `json:"type"`
	Index   int             `json:"index"`
	Devices []IndexedDevice `json:"devices,omitempty"` // Ascending by index
	l       *Layout
}

func (c *RemoveTypeCommand) Execute() {
	for i := len(c.Devices) - 1; i >= 0; i-- {
		c.l.deleteDevice(c.Devices[i].Device.ID)
	}
	c.l.types.Delete(c.Type.Slug)
}

func (c *RemoveTypeCommand) Undo() {
	c.l.types.Insert(c.Index, c.Type)
	for _, d := range c.Devices {
		c.l.insertDevice(d.Index, d.Device)
	}
}

func (c *RemoveTypeCommand) Description() string {
	if n := len(c.Devices); n > 0 {
		return fmt.Sprintf("Remove device type %s (%d placed)", c.Type.Slug, n)
	}
	return "Remove device type " + c.Type.Slug
}

func (c *RemoveTypeCommand) Kind() Kind     { return KindRemoveType }
func (c *RemoveTypeCommand) bind(l *Layout) { c.l = l }

// PlaceCommand mounts a new device.
type PlaceCommand struct {
	Device rack.PlacedDevice `json:"device"`
	l      *Layout
}

func (c *PlaceCommand) Execute()            { c.l.insertDevice(len(c.l.rack.Devices), c.Device) }
func (c *PlaceCommand) Undo()               { c.l.deleteDevice(c.Device.ID) }
func (c *PlaceCommand) Description() string { return "Place " + c.Device.Label() }
func (c *PlaceCommand) Kind() Kind          { return KindPlace }
func (c *PlaceCommand) bind(l *Layout)      { c.l = l }

// MoveCommand changes a device's position and face.
type MoveCommand struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	From     int       `json:"from"`
	FromFace rack.Face `json:"from_face"`
	To       int       `json:"to"`
	ToFace   rack.Face `json:"to_face"`
	l        *Layout
}

func (c *MoveCommand) Execute() { c.set(c.To, c.ToFace) }
func (c *MoveCommand) Undo()    { c.set(c.From, c.FromFace) }

func (c *MoveCommand) set(pos int, face rack.Face) {
	c.l.updateDevice(c.ID, func(d *rack.PlacedDevice) {
		d.Position = pos
		d.Face = face
	})
}

func (c *MoveCommand) Description() string {
	if c.FromFace != c.ToFace {
		return fmt.Sprintf("Move %s to slot %d (%s)", c.Label, c.To, c.ToFace)
	}
	return fmt.Sprintf("Move %s to slot %d", c.Label, c.To)
}

func (c *MoveCommand) Kind() Kind     { return KindMove }
func (c *MoveCommand) bind(l *Layout) { c.l = l }

// RemoveCommand unmounts a device.
type RemoveCommand struct {
	IndexedDevice
	l *Layout
}

func (c *RemoveCommand) Execute()            { c.l.deleteDevice(c.Device.ID) }
func (c *RemoveCommand) Undo()               { c.l.insertDevice(c.Index, c.Device) }
func (c *RemoveCommand) Description() string { return "Remove " + c.Device.Label() }
func (c *RemoveCommand) Kind() Kind          { return KindRemove }
func (c *RemoveCommand) bind(l *Layout)      { c.l = l }

// RenameCommand changes a device's display name.
type RenameCommand struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`
	l    *Layout
}

func (c *RenameCommand) Execute() { c.set(c.To) }
func (c *RenameCommand) Undo()    { c.set(c.From) }

func (c *RenameCommand) set(name string) {
	c.l.updateDevice(c.ID, func(d *rack.PlacedDevice) { d.Name = name })
}

func (c *RenameCommand) Description() string {
	if c.To == "" {
		return fmt.Sprintf("Clear name of %s", c.From)
	}
	return fmt.Sprintf("Rename to %s", c.To)
}

func (c *RenameCommand) Kind() Kind     { return KindRename }
func (c *RenameCommand) bind(l *Layout) { c.l = l }

// ResizeCommand changes the rack height.
type ResizeCommand struct {
	From int `json:"from"`
	To   int `json:"to"`
	l    *Layout
}

func (c *ResizeCommand) Execute()            { c.l.rack.Height = c.To }
func (c *ResizeCommand) Undo()               { c.l.rack.Height = c.From }
func (c *ResizeCommand) Description() string { return fmt.Sprintf("Resize rack to %dU", c.To) }
func (c *ResizeCommand) Kind() Kind          { return KindResize }
func (c *ResizeCommand) bind(l *Layout)      { c.l = l }

// Settings are the rack properties that never affect placement.
type Settings struct {
	Name         string     `json:"name"`
	Width        rack.Width `json:"width"`
	StartingUnit int        `json:"starting_unit"`
	DescUnits    bool       `json:"desc_units"`
}

// ConfigureCommand changes the rack settings.
type ConfigureCommand struct {
	From Settings `json:"from"`
	To   Settings `json:"to"`
	l    *Layout
}

func (c *ConfigureCommand) Execute() { c.apply(c.To) }
func (c *ConfigureCommand) Undo()    { c.apply(c.From) }

func (c *ConfigureCommand) apply(s Settings) {
	c.l.rack.Name = s.Name
	c.l.rack.Width = s.Width
	c.l.rack.StartingUnit = s.StartingUnit
	c.l.rack.DescUnits = s.DescUnits
}

func (c *ConfigureCommand) Description() string { return "Configure rack " + c.To.Name }
func (c *ConfigureCommand) Kind() Kind          { return KindConfigure }
func (c *ConfigureCommand) bind(l *Layout)      { c.l = l }

// SnapshotCommand swaps the whole rack. It backs replace, clear and reset.
type SnapshotCommand struct {
	Op     Kind      `json:"op"`
	Before rack.Rack `json:"before"`
	After  rack.Rack `json:"after"`
	l      *Layout
}

func (c *SnapshotCommand) Execute() { c.l.rack = c.After.Clone() }
func (c *SnapshotCommand) Undo()    { c.l.rack = c.Before.Clone() }

func (c *SnapshotCommand) Description() string {
	switch c.Op {
	case KindClear:
		return fmt.Sprintf("Clear rack %s (%d devices)", c.Before.Name, len(c.Before.Devices))
	case KindReset:
		return "Delete rack " + c.Before.Name
	default:
		return "Replace rack with " + c.After.Name
	}
}

func (c *SnapshotCommand) Kind() Kind     { return c.Op }
func (c *SnapshotCommand) bind(l *Layout) { c.l = l }

var (
	_ Command = (*AddTypeCommand)(nil)
	_ Command = (*RemoveTypeCommand)(nil)
	_ Command = (*PlaceCommand)(nil)
	_ Command = (*MoveCommand)(nil)
	_ Command = (*RemoveCommand)(nil)
	_ Command = (*RenameCommand)(nil)
	_ Command = (*ResizeCommand)(nil)
	_ Command = (*ConfigureCommand)(nil)
	_ Command = (*SnapshotCommand)(nil)
)
