package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tangramor/Rackula-sub001/pkg/catalog"
	"github.com/tangramor/Rackula-sub001/pkg/editor"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

// typeCommand creates the type command group for the device-type catalog.
func (c *CLI) typeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "type",
		Aliases: []string{"types"},
		Short:   "Manage the layout's device types",
	}

	cmd.AddCommand(c.typeAddCommand())
	cmd.AddCommand(c.typeListCommand())
	cmd.AddCommand(c.typeRemoveCommand())
	cmd.AddCommand(c.typeImportCommand())
	cmd.AddCommand(c.typeExportCommand())

	return cmd
}

// typeAddCommand creates the "type add" subcommand.
func (c *CLI) typeAddCommand() *cobra.Command {
	var (
		t         rack.DeviceType
		halfDepth bool
	)

	cmd := &cobra.Command{
		Use:     "add <slug>",
		Short:   "Add a device type",
		Example: `  rackula type add dell-r650 --height 1 --manufacturer Dell --model "PowerEdge R650"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t.Slug = args[0]
			if cmd.Flags().Changed("half-depth") {
				t.IsFullDepth = rack.Bool(!halfDepth)
			}
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				if err := ed.AddDeviceType(t); err != nil {
					return err
				}
				depth := "full depth"
				if !t.FullDepth() {
					depth = "half depth"
				}
				printSuccess("Added %s (%gU, %s)", t.Slug, t.Height, depth)
				return nil
			})
		},
	}
	cmd.Flags().Float64VarP(&t.Height, "height", "H", 1, "height in units; fractions such as 0.5 are allowed")
	cmd.Flags().BoolVar(&halfDepth, "half-depth", false, "device only occupies one face")
	cmd.Flags().StringVar(&t.Manufacturer, "manufacturer", "", "manufacturer")
	cmd.Flags().StringVar(&t.Model, "model", "", "model")
	cmd.Flags().StringVar(&t.Category, "category", "", "category, e.g. server or network")
	cmd.Flags().StringVar(&t.Colour, "colour", "", "display colour as #rrggbb")
	return cmd
}

// typeListCommand creates the "type list" subcommand.
func (c *CLI) typeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List device types and how many of each are placed",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer w.close()

			l := w.editor.Layout()
			types := l.Catalog().Types()
			if len(types) == 0 {
				printInfo("No device types; add one with '%s type add'", appName)
				return nil
			}
			counts := map[string]int{}
			for _, d := range l.Rack().Devices {
				counts[d.DeviceType]++
			}

			rows := make([][]string, len(types))
			for i, t := range types {
				depth := "full"
				if !t.FullDepth() {
					depth = "half"
				}
				rows[i] = []string{t.Slug, t.DisplayName(), strconv.FormatFloat(t.Height, 'f', -1, 64) + "U", depth, t.Category, strconv.Itoa(counts[t.Slug])}
			}
			tbl := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Slug", "Name", "Height", "Depth", "Category", "Placed").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					s := lipgloss.NewStyle().Padding(0, 1)
					switch {
					case row == table.HeaderRow:
						return styleHeader.Padding(0, 1)
					case col == 0:
						return s.Foreground(colorCyan)
					case col >= 2:
						return s.Foreground(colorGray)
					}
					return s
				})
			fmt.Println(tbl.Render())
			return nil
		},
	}
}

// typeRemoveCommand creates the "type remove" subcommand.
func (c *CLI) typeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <slug>",
		Aliases: []string{"rm"},
		Short:   "Remove a device type and every device of that type",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				n, err := ed.RemoveDeviceType(args[0])
				if err != nil {
					return err
				}
				printSuccess("Removed %s", args[0])
				if n > 0 {
					printDetail("%d placed devices removed with it", n)
				}
				return nil
			})
		},
	}
}

// typeImportCommand creates the "type import" subcommand.
func (c *CLI) typeImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file-or-dir>...",
		Short: "Add device types from TOML, YAML or JSON library files",
		Long: `Add device types from library files. Directories are scanned for .toml,
.yaml, .yml and .json files in name order. Types whose slug is already in
the layout are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			types, err := catalog.LoadPaths(args...)
			if err != nil {
				return err
			}
			return c.edit(cmd.Context(), func(ed *editor.Editor) error {
				added, skipped := 0, 0
				for _, t := range types {
					if ed.Layout().Catalog().Has(t.Slug) {
						skipped++
						continue
					}
					if err := ed.AddDeviceType(t); err != nil {
						return err
					}
					added++
				}
				printSuccess("Imported %d device types", added)
				if skipped > 0 {
					printDetail("%d already present", skipped)
				}
				return nil
			})
		},
	}
}

// typeExportCommand creates the "type export" subcommand.
func (c *CLI) typeExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the layout's device types as a library file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := catalog.FormatFromPath(args[0])
			if err != nil {
				return err
			}
			w, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer w.close()

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create %s: %w", args[0], err)
			}
			types := w.editor.Layout().Catalog().Types()
			if err := catalog.Write(f, types, format); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			printSuccess("Wrote %d device types", len(types))
			printFile(args[0])
			return nil
		},
	}
}
