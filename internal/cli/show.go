package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tangramor/Rackula-sub001/pkg/errors"
	"github.com/tangramor/Rackula-sub001/pkg/layout"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

// =============================================================================
// Rack View
// =============================================================================

type cellKind int

const (
	cellEmpty cellKind = iota
	cellDevice
	cellHalfDepth
	cellBlocked
	cellConflict
)

var viewFaces = [2]rack.Face{rack.FaceFront, rack.FaceRear}

// rackView is a text grid of a rack, one row per slot, top slot first.
type rackView struct {
	rack  *rack.Rack
	slots []int
	text  [][2]string
	kind  [][2]cellKind
}

func newRackView(l *layout.Layout) rackView {
	r := l.Rack()
	n := r.Height
	v := rackView{
		rack:  r,
		slots: make([]int, n),
		text:  make([][2]string, n),
		kind:  make([][2]cellKind, n),
	}
	for i := range v.slots {
		v.slots[i] = n - i
	}
	row := func(slot int) int { return n - slot }

	for fi, f := range viewFaces {
		for _, br := range l.BlockedSlots(f) {
			for s := max(br.Bottom, 1); s <= min(br.Top, n); s++ {
				v.text[row(s)][fi] = strings.Repeat(iconBlocked, 8)
				v.kind[row(s)][fi] = cellBlocked
			}
		}
	}

	for _, d := range r.Devices {
		t, ok := l.Catalog().DeviceType(d.DeviceType)
		if !ok {
			continue
		}
		span := rack.RangeOf(d.Position, t.Height)
		top := min(span.Top, n)
		kind := cellDevice
		if !t.FullDepth() {
			kind = cellHalfDepth
		}
		for fi, f := range viewFaces {
			if d.Face != f && d.Face != rack.FaceBoth {
				continue
			}
			for s := max(span.Bottom, 1); s <= top; s++ {
				label := "┆"
				if s == top {
					label = d.Label()
				}
				i := row(s)
				switch v.kind[i][fi] {
				case cellDevice, cellHalfDepth, cellConflict:
					v.text[i][fi] += " " + iconError + " " + label
					v.kind[i][fi] = cellConflict
				default:
					v.text[i][fi] = label
					v.kind[i][fi] = kind
				}
			}
		}
	}
	return v
}

// render draws the grid. cursor is a physical slot to highlight, or 0.
func (v rackView) render(cursor int) string {
	rows := make([][]string, len(v.slots))
	for i, s := range v.slots {
		rows[i] = []string{"U" + strconv.Itoa(v.rack.UnitLabel(s)), v.text[i][0], v.text[i][1]}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Front", "Rear").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 0 {
				if v.slots[row] == cursor {
					return styleCursor.Padding(0, 1).Align(lipgloss.Right)
				}
				return styleUnit.Padding(0, 1)
			}
			base = base.Width(26)
			switch v.kind[row][col-1] {
			case cellDevice:
				base = base.Inherit(styleDevice)
			case cellHalfDepth:
				base = base.Inherit(styleHalfDepth)
			case cellBlocked:
				base = base.Inherit(styleBlocked)
			case cellConflict:
				base = base.Inherit(styleConflict)
			}
			if v.slots[row] == cursor {
				base = base.Underline(true)
			}
			return base
		})
	return t.Render()
}

func rackSummary(r *rack.Rack) string {
	order := "ascending"
	if r.DescUnits {
		order = "descending"
	}
	return fmt.Sprintf("%s · %dU · %d\" · %d devices · %s from U%d",
		r.Name, r.Height, r.Width, len(r.Devices), order, r.StartingUnit)
}

// =============================================================================
// Commands
// =============================================================================

// showCommand creates the show command, which draws the rack.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Draw the rack with its devices",
		Long: `Draw the rack, top unit first, with the front and rear faces side by side.

Half-depth devices are highlighted, slots unusable because a full-depth
device is mounted on the other face are hatched, and overlapping devices
are marked in red.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer w.close()

			l := w.editor.Layout()
			fmt.Println(StyleTitle.Render(rackSummary(l.Rack())))
			fmt.Println(newRackView(l).render(0))
			if n := len(l.Conflicts()); n > 0 {
				printWarning("%d placement conflicts; run '%s check' for details", n, appName)
			}
			return nil
		},
	}
}

// checkCommand creates the check command, which reports placement problems.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report overlapping, out-of-bounds and orphaned devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer w.close()

			l := w.editor.Layout()
			r := l.Rack()
			conflicts := l.Conflicts()
			orphans := l.Orphans()
			for _, cf := range conflicts {
				units := fmt.Sprintf("U%d-U%d", r.UnitLabel(cf.Range.Bottom), r.UnitLabel(cf.Range.Top))
				switch cf.Kind {
				case rack.ConflictCollision:
					printError("%s overlaps %s at %s", cf.A.Label(), cf.B.Label(), units)
				case rack.ConflictOutOfBounds:
					printError("%s extends outside the rack (slots %d-%d of %d)", cf.A.Label(), cf.Range.Bottom, cf.Range.Top, r.Height)
				case rack.ConflictInvalidFace:
					printError("%s has invalid face %q", cf.A.Label(), cf.A.Face)
				}
			}
			for _, d := range orphans {
				printWarning("%s uses unknown device type %q", d.Label(), d.DeviceType)
			}
			if len(conflicts) > 0 {
				return errors.New(errors.ErrCodeCollision, "%d placement conflicts", len(conflicts))
			}
			printSuccess("No placement conflicts in %s", r.Name)
			return nil
		},
	}
}

// slotsCommand creates the slots command, which lists where a type fits.
func (c *CLI) slotsCommand() *cobra.Command {
	var face string

	cmd := &cobra.Command{
		Use:   "slots <device-type>",
		Short: "List the units where a device type can be placed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := rack.ParseFace(face)
			if err != nil {
				return err
			}
			w, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer w.close()

			slots, err := w.editor.ValidSlots(args[0], f)
			if err != nil {
				return userError(err)
			}
			if len(slots) == 0 {
				printWarning("%s fits nowhere on the %s face", args[0], f)
				return nil
			}
			r := w.editor.Layout().Rack()
			units := make([]string, len(slots))
			for i, s := range slots {
				units[i] = "U" + strconv.Itoa(r.UnitLabel(s))
			}
			printSuccess("%s fits at %d positions on the %s face", args[0], len(slots), f)
			printDetail("%s", strings.Join(units, " "))
			return nil
		},
	}
	cmd.Flags().StringVar(&face, "face", string(rack.FaceFront), "mounting face: front, rear or both")
	return cmd
}
