// Package editor is the application context that ties a layout to its
// undo history.
//
// An [Editor] owns exactly one [layout.Layout] and one [history.History].
// Every mutation is planned by the layout, which validates it, and the
// resulting command is executed through the history so it can be undone.
// Interaction layers (the CLI and the terminal UI) talk only to the editor.
//
//	ed := editor.New(layout.New("lab"), editor.WithLogger(logger))
//	if _, err := ed.Place("dell-r650", 10, rack.FaceFront, "db01"); err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	}
//	ed.Undo()
//
// An Editor is not safe for concurrent use.
package editor

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/tangramor/Rackula-sub001/pkg/errors"
	"github.com/tangramor/Rackula-sub001/pkg/history"
	"github.com/tangramor/Rackula-sub001/pkg/layout"
	"github.com/tangramor/Rackula-sub001/pkg/observability"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
	"github.com/tangramor/Rackula-sub001/pkg/rack/drop"
)

// Editor applies validated changes to a layout and records them for undo.
type Editor struct {
	layout   *layout.Layout
	history  *history.History
	logger   *log.Logger
	hooks    observability.EditorHooks
	resolver drop.Resolver
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHistoryDepth sets how many commands can be undone.
func WithHistoryDepth(n int) Option {
	return func(e *Editor) { e.history = history.New(n) }
}

// WithHooks sets the hooks notified of every change.
func WithHooks(h observability.EditorHooks) Option {
	return func(e *Editor) {
		if h != nil {
			e.hooks = h
		}
	}
}

// WithSlotHeight sets the rendered slot height used by DropTarget.
func WithSlotHeight(px float64) Option {
	return func(e *Editor) { e.resolver.SlotHeight = px }
}

// New creates an editor for l with an empty history.
func New(l *layout.Layout, opts ...Option) *Editor {
	e := &Editor{
		layout:  l,
		history: history.New(history.DefaultMaxDepth),
		logger:  log.New(io.Discard),
		hooks:   observability.NoopEditorHooks{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Layout returns the layout being edited. Use the editor's methods to change
// it so that changes can be undone.
func (e *Editor) Layout() *layout.Layout { return e.layout }

// History returns the undo history.
func (e *Editor) History() *history.History { return e.history }

// Load replaces the layout and clears the history, which is meaningless
// against a different layout.
func (e *Editor) Load(l *layout.Layout) {
	e.layout = l
	e.history.Clear()
	e.logger.Debug("layout loaded", "layout", l)
	e.hooks.OnLoad(l.Name(), len(l.Rack().Devices))
}

// =============================================================================
// Mutations
// =============================================================================

// AddDeviceType adds a type to the catalog.
func (e *Editor) AddDeviceType(t rack.DeviceType) error {
	cmd, err := e.layout.PlanAddDeviceType(t)
	_, err = apply(e, "add-type", cmd, err)
	return err
}

// RemoveDeviceType removes a type and all of its placed instances.
func (e *Editor) RemoveDeviceType(slug string) (removed int, err error) {
	cmd, err := e.layout.PlanRemoveDeviceType(slug)
	if cmd, err = apply(e, "remove-type", cmd, err); err != nil {
		return 0, err
	}
	return len(cmd.Devices), nil
}

// Place mounts a new device of type slug at position.
func (e *Editor) Place(slug string, position int, face rack.Face, name string) (rack.PlacedDevice, error) {
	cmd, err := e.layout.PlanPlace(slug, position, face, name)
	if cmd, err = apply(e, "place", cmd, err, "slot", position, "face", face); err != nil {
		return rack.PlacedDevice{}, err
	}
	return cmd.Device, nil
}

// Drop mounts a new device at the valid slot nearest to the pointer
// position y, in rendered pixels from the top of the rack.
func (e *Editor) Drop(slug string, face rack.Face, y float64, name string) (rack.PlacedDevice, error) {
	slot, ok, err := e.DropTarget(slug, face, y)
	if err != nil {
		e.reject("drop", err)
		return rack.PlacedDevice{}, err
	}
	if !ok {
		err := errors.New(errors.ErrCodeNoValidSlot, "no free slot for %s on the %s face", slug, face)
		e.reject("drop", err)
		return rack.PlacedDevice{}, err
	}
	return e.Place(slug, slot, face, name)
}

// Move moves a device. An empty face keeps the current one.
func (e *Editor) Move(id string, position int, face rack.Face) (rack.PlacedDevice, error) {
	cmd, err := e.layout.PlanMove(id, position, face)
	if _, err = apply(e, "move", cmd, err, "id", id, "slot", position); err != nil {
		return rack.PlacedDevice{}, err
	}
	d, _ := e.layout.Device(id)
	return d, nil
}

// Nudge moves a device by delta slots, skipping occupied slots.
func (e *Editor) Nudge(id string, delta int) (rack.PlacedDevice, error) {
	cmd, err := e.layout.PlanNudge(id, delta)
	if _, err = apply(e, "nudge", cmd, err, "id", id, "delta", delta); err != nil {
		return rack.PlacedDevice{}, err
	}
	d, _ := e.layout.Device(id)
	return d, nil
}

// Remove unmounts a device.
func (e *Editor) Remove(id string) (rack.PlacedDevice, error) {
	cmd, err := e.layout.PlanRemove(id)
	if cmd, err = apply(e, "remove", cmd, err, "id", id); err != nil {
		return rack.PlacedDevice{}, err
	}
	return cmd.Device, nil
}

// Rename sets a device's display name.
func (e *Editor) Rename(id, name string) error {
	cmd, err := e.layout.PlanRename(id, name)
	_, err = apply(e, "rename", cmd, err, "id", id)
	return err
}

// ResizeRack changes the rack height.
func (e *Editor) ResizeRack(height int) error {
	cmd, err := e.layout.PlanResizeRack(height)
	_, err = apply(e, "resize", cmd, err, "height", height)
	return err
}

// ConfigureRack changes the rack settings.
func (e *Editor) ConfigureRack(s layout.Settings) error {
	cmd, err := e.layout.PlanConfigureRack(s)
	_, err = apply(e, "configure", cmd, err)
	return err
}

// ReplaceRack swaps in a whole new rack.
func (e *Editor) ReplaceRack(r rack.Rack) error {
	cmd, err := e.layout.PlanReplaceRack(r)
	_, err = apply(e, "replace", cmd, err)
	return err
}

// ClearRack removes every device.
func (e *Editor) ClearRack() {
	_, _ = apply(e, "clear", e.layout.PlanClearRack(), nil)
}

// ResetRack replaces the rack with an empty default one.
func (e *Editor) ResetRack() {
	_, _ = apply(e, "reset", e.layout.PlanResetRack(), nil)
}

// Undo reverts the last change. It returns false if there was nothing to undo.
func (e *Editor) Undo() bool {
	desc := e.history.UndoDescription()
	if !e.history.Undo() {
		return false
	}
	e.logger.Debug("undo", "desc", desc)
	e.hooks.OnUndo(desc)
	return true
}

// Redo re-applies the last undone change. It returns false if there was
// nothing to redo.
func (e *Editor) Redo() bool {
	desc := e.history.RedoDescription()
	if !e.history.Redo() {
		return false
	}
	e.logger.Debug("redo", "desc", desc)
	e.hooks.OnRedo(desc)
	return true
}

// =============================================================================
// Queries
// =============================================================================

// ValidSlots lists the slots where a device of type slug fits on face.
func (e *Editor) ValidSlots(slug string, face rack.Face) ([]int, error) {
	return e.layout.ValidSlots(slug, face)
}

// Collisions lists the devices blocking type slug at position on face.
func (e *Editor) Collisions(slug string, position int, face rack.Face) ([]rack.PlacedDevice, error) {
	return e.layout.Collisions(slug, position, face)
}

// DropTarget resolves a pointer position to the nearest valid slot for a
// device of type slug. ok is false when the device fits nowhere.
func (e *Editor) DropTarget(slug string, face rack.Face, y float64) (slot int, ok bool, err error) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, false, errors.New(errors.ErrCodeInvalidInput, "drop position %v is not a number", y)
	}
	c, err := e.layout.Candidate(slug, face)
	if err != nil {
		return 0, false, err
	}
	slot, ok = e.resolver.Resolve(e.layout.Rack(), e.layout.Catalog(), c, y)
	return slot, ok, nil
}

// =============================================================================
// Journal
// =============================================================================

// Journal encodes the undo and redo stacks, oldest first.
func (e *Editor) Journal() (undo, redo []layout.Record, err error) {
	if undo, err = layout.EncodeCommands(e.history.Undos()); err != nil {
		return nil, nil, err
	}
	if redo, err = layout.EncodeCommands(e.history.Redos()); err != nil {
		return nil, nil, err
	}
	return undo, redo, nil
}

// Resume restores stacks produced by Journal against a layout whose current
// state is the one the journal was taken from.
func (e *Editor) Resume(undo, redo []layout.Record) error {
	u, err := layout.DecodeCommands(e.layout, undo)
	if err != nil {
		return err
	}
	r, err := layout.DecodeCommands(e.layout, redo)
	if err != nil {
		return err
	}
	e.history.Restore(u, r)
	e.logger.Debug("history resumed", "undo", len(u), "redo", len(r))
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// apply executes an accepted command through the history, or reports a
// rejection. kv are extra log fields.
func apply[C layout.Command](e *Editor, op string, cmd C, err error, kv ...any) (C, error) {
	if err != nil {
		e.reject(op, err, kv...)
		return cmd, err
	}
	e.history.Execute(cmd)
	e.logger.Debug("applied", append([]any{"op", op, "desc", cmd.Description()}, kv...)...)
	e.hooks.OnCommand(string(cmd.Kind()), cmd.Description())
	return cmd, nil
}

func (e *Editor) reject(op string, err error, kv ...any) {
	e.logger.Info("rejected", append([]any{"op", op, "code", errors.GetCode(err), "reason", errors.UserMessage(err)}, kv...)...)
	e.hooks.OnRejected(op, err)
}
