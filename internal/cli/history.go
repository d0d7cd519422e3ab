package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tangramor/Rackula-sub001/pkg/editor"
)

// undoCommand creates the undo command.
func (c *CLI) undoCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Revert the last change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				return step(steps, "undo", "Undid", ed.History().UndoDescription, ed.Undo)
			})
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "s", 1, "number of changes to revert")
	return cmd
}

// redoCommand creates the redo command.
func (c *CLI) redoCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "redo",
		Short: "Re-apply the last reverted change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				return step(steps, "redo", "Redid", ed.History().RedoDescription, ed.Redo)
			})
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "s", 1, "number of changes to re-apply")
	return cmd
}

// step runs fn up to n times, printing each description. Running out of
// history is reported, not treated as an error.
func step(n int, verb, past string, describe func() string, fn func() bool) error {
	if n < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}
	for i := 0; i < n; i++ {
		desc := describe()
		if !fn() {
			if i == 0 {
				printInfo("Nothing to %s", verb)
			}
			return nil
		}
		printSuccess("%s: %s", past, desc)
	}
	return nil
}

// historyCommand creates the history command.
func (c *CLI) historyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List the changes that can be undone and redone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer w.close()

			h := w.editor.History()
			undos, redos := h.Undos(), h.Redos()
			if len(undos) == 0 && len(redos) == 0 {
				printInfo("No history for %s", w.path)
				return nil
			}

			fmt.Println(StyleTitle.Render(fmt.Sprintf("History (%d of max %d)", len(undos)+len(redos), h.MaxDepth())))
			for i := range redos {
				fmt.Println("  " + StyleDim.Render("  "+redos[i].Description()+" (undone)"))
			}
			for i := len(undos) - 1; i >= 0; i-- {
				marker := "  "
				if i == len(undos)-1 {
					marker = StyleSuccess.Render(iconArrow) + " "
				}
				fmt.Println("  " + marker + StyleValue.Render(undos[i].Description()))
			}
			return nil
		},
	}
}
