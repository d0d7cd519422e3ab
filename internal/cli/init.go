package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tangramor/Rackula-sub001/pkg/errors"
	rackio "github.com/tangramor/Rackula-sub001/pkg/io"
	"github.com/tangramor/Rackula-sub001/pkg/layout"
	"github.com/tangramor/Rackula-sub001/pkg/rack"
)

// initCommand creates the init command, which writes a new empty layout.
func (c *CLI) initCommand() *cobra.Command {
	var (
		name   string
		height int
		width  int
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [layout-name]",
		Short: "Create a layout file with one empty rack",
		Long: `Create a layout file with one empty rack. Rack settings default to the
[rack] section of the config file. Device types from the configured
[catalog] paths are copied into the new layout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.layoutPath
			if err := errors.ValidateLayoutPath(path); err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			defaults := c.cfg.LayoutDefaults()
			flags := cmd.Flags()
			if flags.Changed("name") {
				defaults.Name = name
			}
			if flags.Changed("height") {
				if height < 1 || height > rack.MaxHeight {
					return errors.New(errors.ErrCodeInvalidHeight, "rack height must be between 1 and %d, got %d", rack.MaxHeight, height)
				}
				defaults.Height = height
			}
			if flags.Changed("width") {
				if !rack.Width(width).Valid() {
					return errors.New(errors.ErrCodeInvalidWidth, "unsupported rack width %d (want one of %v)", width, rack.Widths)
				}
				defaults.Width = rack.Width(width)
			}

			layoutName := trimExt(filepath.Base(path))
			if len(args) == 1 {
				layoutName = args[0]
			}
			w, err := c.attach(cmd.Context(), layout.New(layoutName, layout.WithDefaults(defaults)))
			if err != nil {
				return err
			}
			defer w.close()

			if err := w.store.Delete(cmd.Context(), path); err != nil {
				c.Logger.Warn("could not clear old history", "err", err)
			}
			w.editor.History().Clear()
			if err := rackio.Save(w.editor.Layout(), path); err != nil {
				return err
			}

			l := w.editor.Layout()
			printSuccess("Created %s", rackSummary(l.Rack()))
			printFile(path)
			if n := l.Catalog().Len(); n > 0 {
				printDetail("%d device types from the configured library", n)
			}
			printNewline()
			printNextStep("Add a device type", appName+" type add server-1u --height 1")
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "rack name")
	cmd.Flags().IntVar(&height, "height", rack.DefaultHeight, "rack height in units")
	cmd.Flags().IntVar(&width, "width", int(rack.DefaultWidth), "rail width in inches: 10, 19, 21 or 23")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
