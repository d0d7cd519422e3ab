package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tangramor/Rackula-sub001/internal/config"
	"github.com/tangramor/Rackula-sub001/pkg/observability"
)

// journalCommand creates the journal management command.
func (c *CLI) journalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Manage the saved undo history",
	}

	cmd.AddCommand(c.journalClearCommand())
	cmd.AddCommand(c.journalPathCommand())

	return cmd
}

// journalClearCommand creates the "journal clear" subcommand.
func (c *CLI) journalClearCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget the undo history of the layout file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				return clearJournalDir()
			}
			store, err := c.newStore(cmd.Context(), observability.NoopCacheHooks{})
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), c.layoutPath); err != nil {
				return err
			}
			printSuccess("Cleared history of %s", c.layoutPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "remove every journal in the local journal directory")
	return cmd
}

// clearJournalDir removes every file-backend journal.
func clearJournalDir() error {
	dir, err := journalDir()
	if err != nil {
		return fmt.Errorf("get journal dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("No journals")
		return nil
	}

	count := 0
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if os.Remove(path) == nil {
			count++
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return err
	}

	printSuccess("Cleared %d journals", count)
	printDetail("Directory: %s", dir)
	return nil
}

// journalPathCommand creates the "journal path" subcommand.
func (c *CLI) journalPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the undo history of the layout file is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.newStore(cmd.Context(), observability.NoopCacheHooks{})
			if err != nil {
				return err
			}
			defer store.Close()

			key := store.Key(c.layoutPath)
			switch c.cfg.History.Backend {
			case config.BackendNone:
				printInfo("History persistence is off")
			case config.BackendRedis:
				printKeyValue("Backend", "redis "+c.cfg.Redis.Addr)
				printKeyValue("Key", key)
			default:
				dir, err := journalDir()
				if err != nil {
					return fmt.Errorf("get journal dir: %w", err)
				}
				printKeyValue("Backend", "file")
				printKeyValue("Directory", dir)
				printKeyValue("Key", key)
			}
			return nil
		},
	}
}
