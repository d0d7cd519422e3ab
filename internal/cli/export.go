package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tangramor/Rackula-sub001/pkg/inventory"
	rackio "github.com/tangramor/Rackula-sub001/pkg/io"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export the layout or a device inventory",
		Long: `Export the layout or a device inventory. The format follows the extension:

  .json, .yaml, .yml   the layout document
  .csv, .xlsx          one row per device, top of the rack first`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := args[0]
			w, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer w.close()

			l := w.editor.Layout()
			prog := newProgress(c.Logger)
			switch strings.ToLower(filepath.Ext(out)) {
			case ".csv", ".xlsx":
				if err := inventory.Export(l, out); err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Wrote %d inventory rows", len(l.Rack().Devices)))
				printSuccess("Exported inventory of %d devices", len(l.Rack().Devices))
			default:
				if err := rackio.Export(l.Document(), out); err != nil {
					return err
				}
				prog.done("Wrote layout document")
				printSuccess("Exported layout")
			}
			printFile(out)
			return nil
		},
	}
}
