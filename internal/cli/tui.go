package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tangramor/Rackula-sub001/pkg/editor"
	"github.com/tangramor/Rackula-sub001/pkg/errors"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

var (
	tuiHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	tuiErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
	tuiTypeStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

const tuiHelp = "↑/↓ unit  tab type  f face  ⏎ place  x remove  K/J nudge  u undo  r redo  q quit"

// =============================================================================
// RackEditModel - Interactive rack editing
// =============================================================================

// RackEditModel is the bubbletea model behind "rackula edit". Every change
// goes through the editor, so it is validated and recorded in history exactly
// like the single-shot commands.
type RackEditModel struct {
	ed      *editor.Editor
	cursor  int // physical slot
	typeIdx int
	face    rack.Face
	status  string
	failed  bool
	changes int
}

// NewRackEditModel creates a model with the cursor on the top slot.
func NewRackEditModel(ed *editor.Editor) RackEditModel {
	return RackEditModel{
		ed:     ed,
		cursor: ed.Layout().Rack().Height,
		face:   rack.FaceFront,
	}
}

// Changes returns how many history steps the session applied, including
// undo and redo.
func (m RackEditModel) Changes() int { return m.changes }

func (m RackEditModel) Init() tea.Cmd {
	return nil
}

func (m RackEditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	height := m.ed.Layout().Rack().Height
	types := m.ed.Layout().Catalog().Types()

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor < height {
			m.cursor++
		}
	case "down", "j":
		if m.cursor > 1 {
			m.cursor--
		}
	case "tab":
		if len(types) > 0 {
			m.typeIdx = (m.typeIdx + 1) % len(types)
		}
	case "shift+tab":
		if len(types) > 0 {
			m.typeIdx = (m.typeIdx + len(types) - 1) % len(types)
		}
	case "f":
		m.face = nextFace(m.face)
	case "enter", "p":
		if len(types) == 0 {
			m.report(errors.New(errors.ErrCodeDeviceTypeNotFound, "no device types; add one with 'rackula type add'"), "")
			break
		}
		t := types[m.typeIdx%len(types)]
		d, err := m.ed.Place(t.Slug, m.cursor, m.face, "")
		m.report(err, "Placed "+d.Label())
	case "x", "delete":
		if d, ok := m.deviceAtCursor(); ok {
			_, err := m.ed.Remove(d.ID)
			m.report(err, "Removed "+d.Label())
		}
	case "K", "J":
		if d, ok := m.deviceAtCursor(); ok {
			delta := 1
			if key.String() == "J" {
				delta = -1
			}
			moved, err := m.ed.Nudge(d.ID, delta)
			if err == nil {
				m.cursor += moved.Position - d.Position
			}
			m.report(err, "Moved "+d.Label())
		}
	case "u":
		desc := m.ed.History().UndoDescription()
		if m.ed.Undo() {
			m.changes++
			m.status, m.failed = "Undid "+desc, false
		} else {
			m.status, m.failed = "Nothing to undo", false
		}
	case "r", "ctrl+r":
		desc := m.ed.History().RedoDescription()
		if m.ed.Redo() {
			m.changes++
			m.status, m.failed = "Redid "+desc, false
		} else {
			m.status, m.failed = "Nothing to redo", false
		}
	}
	m.cursor = max(1, min(m.cursor, m.ed.Layout().Rack().Height))
	return m, nil
}

func (m *RackEditModel) report(err error, success string) {
	if err != nil {
		m.status, m.failed = errors.UserMessage(err), true
		return
	}
	m.changes++
	m.status, m.failed = success, false
}

// deviceAtCursor returns the device occupying the cursor slot on the
// current face.
func (m RackEditModel) deviceAtCursor() (rack.PlacedDevice, bool) {
	l := m.ed.Layout()
	for _, d := range l.Rack().Devices {
		if d.Face != m.face && d.Face != rack.FaceBoth && m.face != rack.FaceBoth {
			continue
		}
		t, ok := l.Catalog().DeviceType(d.DeviceType)
		if !ok {
			continue
		}
		if rack.RangeOf(d.Position, t.Height).Contains(m.cursor) {
			return d, true
		}
	}
	return rack.PlacedDevice{}, false
}

func (m RackEditModel) View() string {
	l := m.ed.Layout()
	r := l.Rack()

	var b strings.Builder
	b.WriteString(StyleTitle.Render(rackSummary(r)))
	b.WriteString("\n")
	b.WriteString(newRackView(l).render(m.cursor))
	b.WriteString("\n")

	selected := "(no device types)"
	if types := l.Catalog().Types(); len(types) > 0 {
		t := types[m.typeIdx%len(types)]
		selected = fmt.Sprintf("%s %gU", t.Slug, t.Height)
	}
	fmt.Fprintf(&b, "U%d  %s  %s\n", r.UnitLabel(m.cursor), tuiTypeStyle.Render(selected), StyleDim.Render(string(m.face)))

	if m.status != "" {
		style := StyleSuccess
		if m.failed {
			style = tuiErrorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(tuiHelpStyle.Render(tuiHelp))
	return b.String()
}

func nextFace(f rack.Face) rack.Face {
	switch f {
	case rack.FaceFront:
		return rack.FaceRear
	case rack.FaceRear:
		return rack.FaceBoth
	default:
		return rack.FaceFront
	}
}

// =============================================================================
// Command
// =============================================================================

// editCommand creates the edit command, which opens the interactive editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the rack interactively in the terminal",
		Long: `Edit the rack interactively. Changes are saved when you quit and can be
undone later with 'rackula undo'.

Keys:
  ` + tuiHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer w.close()

			final, err := tea.NewProgram(NewRackEditModel(w.editor), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("run editor: %w", err)
			}
			m := final.(RackEditModel)
			if m.Changes() == 0 {
				printInfo("No changes")
				return nil
			}
			if err := w.commit(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Saved %d changes", m.Changes())
			printFile(w.path)
			return nil
		},
	}
}
