package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tangramor/Rackula-sub001/pkg/editor"
	"github.com/tangramor/Rackula-sub001/pkg/errors"
	rackio "github.com/tangramor/Rackula-sub001/pkg/io"
	"github.com/tangramor/Rackula-sub001/pkg/layout"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

// minIDPrefix is the shortest ID prefix accepted as a device reference.
const minIDPrefix = 4

// parseUnit converts a displayed unit ("U12" or "12") to a physical slot.
func parseUnit(r *rack.Rack, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "U"))
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidSlot, "invalid unit %q (want e.g. U12 or 12)", s)
	}
	lo, hi := r.UnitLabel(1), r.UnitLabel(r.Height)
	if lo > hi {
		lo, hi = hi, lo
	}
	if n < lo || n > hi {
		return 0, errors.New(errors.ErrCodeOutOfBounds, "unit %q is outside the rack (U%d-U%d)", s, lo, hi)
	}
	return r.SlotForLabel(n), nil
}

// findDevice resolves a device reference: an instance ID, a unique ID
// prefix, or a unique display name.
func findDevice(l *layout.Layout, ref string) (rack.PlacedDevice, error) {
	if d, ok := l.Device(ref); ok {
		return d, nil
	}
	var matches []rack.PlacedDevice
	for _, d := range l.Rack().Devices {
		if d.Label() == ref || (len(ref) >= minIDPrefix && strings.HasPrefix(d.ID, ref)) {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 0:
		return rack.PlacedDevice{}, errors.New(errors.ErrCodeDeviceNotFound, "no device matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, d := range matches {
			ids[i] = d.ID
		}
		return rack.PlacedDevice{}, errors.New(errors.ErrCodeInvalidInput, "%q matches %d devices; use an ID: %s",
			ref, len(matches), strings.Join(ids, ", "))
	}
}

func parseOptionalFace(s string) (rack.Face, error) {
	if s == "" {
		return "", nil
	}
	return rack.ParseFace(s)
}

func unitOf(r *rack.Rack, d rack.PlacedDevice) string {
	return "U" + strconv.Itoa(r.UnitLabel(d.Position))
}

// =============================================================================
// Device Commands
// =============================================================================

// placeCommand creates the place command.
func (c *CLI) placeCommand() *cobra.Command {
	var face, name string

	cmd := &cobra.Command{
		Use:   "place <device-type> <unit>",
		Short: "Mount a new device with its lowest unit at <unit>",
		Example: `  rackula place server-2u U10
  rackula place patch-panel 42 --face rear --name pp-a`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := rack.ParseFace(face)
			if err != nil {
				return err
			}
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				r := ed.Layout().Rack()
				slot, err := parseUnit(r, args[1])
				if err != nil {
					return err
				}
				d, err := ed.Place(args[0], slot, f, name)
				if err != nil {
					return err
				}
				printSuccess("Placed %s at %s (%s)", d.Label(), unitOf(r, d), d.Face)
				printDetail("id %s", d.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&face, "face", string(rack.FaceFront), "mounting face: front, rear or both")
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name (default: the type)")
	return cmd
}

// dropCommand creates the drop command, which snaps a pointer position to
// the nearest free slot.
func (c *CLI) dropCommand() *cobra.Command {
	var face, name string

	cmd := &cobra.Command{
		Use:   "drop <device-type> <y>",
		Short: "Mount a device at the free slot nearest to a rendered y coordinate",
		Long: `Mount a device at the free slot nearest to a y coordinate, in pixels from
the top of the rendered rack. The slot height comes from [drop] slot_height
in the config file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := rack.ParseFace(face)
			if err != nil {
				return err
			}
			y, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid y coordinate %q", args[1])
			}
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				d, err := ed.Drop(args[0], f, y, name)
				if err != nil {
					return err
				}
				printSuccess("Dropped %s at %s (%s)", d.Label(), unitOf(ed.Layout().Rack(), d), d.Face)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&face, "face", string(rack.FaceFront), "mounting face: front, rear or both")
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name (default: the type)")
	return cmd
}

// moveCommand creates the move command.
func (c *CLI) moveCommand() *cobra.Command {
	var face string

	cmd := &cobra.Command{
		Use:   "move <device> <unit>",
		Short: "Move a device so its lowest unit is at <unit>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseOptionalFace(face)
			if err != nil {
				return err
			}
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				r := ed.Layout().Rack()
				d, err := findDevice(ed.Layout(), args[0])
				if err != nil {
					return err
				}
				slot, err := parseUnit(r, args[1])
				if err != nil {
					return err
				}
				moved, err := ed.Move(d.ID, slot, f)
				if err != nil {
					return err
				}
				printSuccess("Moved %s to %s (%s)", moved.Label(), unitOf(r, moved), moved.Face)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&face, "face", "", "new mounting face (default: unchanged)")
	return cmd
}

// nudgeCommand creates the nudge command.
func (c *CLI) nudgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nudge <device> <delta>",
		Short: "Move a device up (positive) or down (negative), skipping occupied slots",
		Example: `  rackula nudge db01 1
  rackula nudge db01 -- -2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil || delta == 0 {
				return fmt.Errorf("invalid delta %q (want a non-zero integer)", args[1])
			}
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				d, err := findDevice(ed.Layout(), args[0])
				if err != nil {
					return err
				}
				moved, err := ed.Nudge(d.ID, delta)
				if err != nil {
					return err
				}
				printSuccess("Moved %s to %s", moved.Label(), unitOf(ed.Layout().Rack(), moved))
				return nil
			})
		},
	}
	return cmd
}

// removeCommand creates the remove command.
func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <device>",
		Aliases: []string{"rm"},
		Short:   "Unmount a device",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				d, err := findDevice(ed.Layout(), args[0])
				if err != nil {
					return err
				}
				if _, err := ed.Remove(d.ID); err != nil {
					return err
				}
				printSuccess("Removed %s", d.Label())
				return nil
			})
		},
	}
}

// renameCommand creates the rename command.
func (c *CLI) renameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <device> <name>",
		Short: "Set a device's display name (empty resets it to the type)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				d, err := findDevice(ed.Layout(), args[0])
				if err != nil {
					return err
				}
				if err := ed.Rename(d.ID, args[1]); err != nil {
					return err
				}
				renamed, _ := ed.Layout().Device(d.ID)
				printSuccess("Renamed %s to %s", d.Label(), renamed.Label())
				return nil
			})
		},
	}
}

// =============================================================================
// Rack Commands
// =============================================================================

// resizeCommand creates the resize command.
func (c *CLI) resizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resize <height>",
		Short: "Change the rack height in units",
		Long: `Change the rack height in units. Shrinking is refused while a device
would end up outside the rack; move or remove it first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			height, err := strconv.Atoi(strings.TrimSuffix(strings.ToUpper(args[0]), "U"))
			if err != nil {
				return fmt.Errorf("invalid height %q", args[0])
			}
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				if err := ed.ResizeRack(height); err != nil {
					return err
				}
				printSuccess("Rack is now %dU", height)
				return nil
			})
		},
	}
}

// configureCommand creates the configure command for rack settings.
func (c *CLI) configureCommand() *cobra.Command {
	var (
		name         string
		width        int
		startingUnit int
		desc         bool
	)

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Change the rack name, width or unit numbering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				s := ed.Layout().Settings()
				flags := cmd.Flags()
				if flags.Changed("name") {
					s.Name = name
				}
				if flags.Changed("width") {
					s.Width = rack.Width(width)
				}
				if flags.Changed("starting-unit") {
					s.StartingUnit = startingUnit
				}
				if flags.Changed("descending") {
					s.DescUnits = desc
				}
				if err := ed.ConfigureRack(s); err != nil {
					return err
				}
				printSuccess("Configured %s", rackSummary(ed.Layout().Rack()))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "rack name")
	cmd.Flags().IntVar(&width, "width", int(rack.DefaultWidth), "rail width in inches: 10, 19, 21 or 23")
	cmd.Flags().IntVar(&startingUnit, "starting-unit", rack.DefaultStartingUnit, "number of the first unit")
	cmd.Flags().BoolVar(&desc, "descending", false, "number units from the top down")
	return cmd
}

// clearCommand creates the clear command.
func (c *CLI) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every device but keep the rack settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				n := len(ed.Layout().Rack().Devices)
				ed.ClearRack()
				printSuccess("Removed %d devices", n)
				return nil
			})
		},
	}
}

// resetCommand creates the reset command.
func (c *CLI) resetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the rack with an empty one using the configured defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				ed.ResetRack()
				printSuccess("Reset to %s", rackSummary(ed.Layout().Rack()))
				return nil
			})
		},
	}
}

// loadCommand creates the load command, which swaps in the rack from another
// layout file as one undoable change.
func (c *CLI) loadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <layout-file>",
		Short: "Replace the rack with the one from another layout file",
		Long: `Replace the rack with the one from another layout file. Device types the
other file defines are added first. The change is refused if the incoming
rack has overlapping or out-of-bounds devices.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := rackio.Import(args[0])
			if err != nil {
				return err
			}
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				for _, t := range doc.DeviceTypes {
					if ed.Layout().Catalog().Has(t.Slug) {
						continue
					}
					if err := ed.AddDeviceType(t); err != nil {
						return err
					}
				}
				if err := ed.ReplaceRack(doc.Rack); err != nil {
					return err
				}
				printSuccess("Loaded %s", rackSummary(ed.Layout().Rack()))
				return nil
			})
		},
	}
}
