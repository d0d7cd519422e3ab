// Package cli implements the rackula command-line interface.
//
// Every editing command follows the same cycle: load the layout file, restore
// its history journal, apply one change through the editor, save the file and
// persist the journal. Because the journal survives between invocations,
// "rackula undo" reverses the previous command even though each command runs
// in its own process.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tangramor/Rackula-sub001/internal/config"
	"github.com/tangramor/Rackula-sub001/pkg/buildinfo"
	"github.com/tangramor/Rackula-sub001/pkg/cache"
	"github.com/tangramor/Rackula-sub001/pkg/catalog"
	"github.com/tangramor/Rackula-sub001/pkg/editor"
	"github.com/tangramor/Rackula-sub001/pkg/errors"
	rackio "github.com/tangramor/Rackula-sub001/pkg/io"
	"github.com/tangramor/Rackula-sub001/pkg/layout"
	"github.com/tangramor/Rackula-sub001/pkg/observability"
	"github.com/tangramor/Rackula-sub001/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "rackula"

	// defaultLayoutPath is used when --file is not given.
	defaultLayoutPath = "rackula.yaml"

	// redisConnectTimeout bounds the initial PING to a redis journal backend.
	redisConnectTimeout = 5 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg        config.Config
	configPath string
	layoutPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Rackula plans equipment placement in server racks",
		Long: `Rackula edits rack layouts from the command line: place, move and remove
devices, check for collisions, and undo or redo changes across invocations.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.layoutPath, "file", "f", defaultLayoutPath, "layout file (.yaml, .yml or .json)")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $"+config.EnvPath+" or ~/.config/rackula/config.toml)")

	root.AddCommand(c.initCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.slotsCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.dropCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.nudgeCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.renameCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.configureCommand())
	root.AddCommand(c.clearCommand())
	root.AddCommand(c.resetCommand())
	root.AddCommand(c.loadCommand())
	root.AddCommand(c.undoCommand())
	root.AddCommand(c.redoCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.typeCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.journalCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFile(c.configPath)
	} else {
		c.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	c.Logger.Debug("config loaded", "backend", c.cfg.History.Backend, "depth", c.cfg.History.Depth)
	return nil
}

// =============================================================================
// Workspace - one load, edit, save cycle
// =============================================================================

// workspace is a layout file opened for editing together with its journal.
type workspace struct {
	path   string
	editor *editor.Editor
	store  *session.Store
}

// open loads the layout at c.layoutPath and restores its history.
func (c *CLI) open(ctx context.Context) (*workspace, error) {
	l, err := rackio.Load(c.layoutPath, layout.WithDefaults(c.cfg.LayoutDefaults()))
	if err != nil {
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			return nil, fmt.Errorf("%w (create one with '%s init')", err, appName)
		}
		return nil, err
	}
	return c.attach(ctx, l)
}

// attach wraps l in an editor and restores the journal for c.layoutPath.
func (c *CLI) attach(ctx context.Context, l *layout.Layout) (*workspace, error) {
	if err := c.mergeCatalog(l); err != nil {
		return nil, err
	}
	hooks := observability.NewLogHooks(c.Logger)
	ed := editor.New(l,
		editor.WithLogger(c.Logger),
		editor.WithHooks(hooks),
		editor.WithHistoryDepth(c.cfg.History.Depth),
		editor.WithSlotHeight(c.cfg.Drop.SlotHeight),
	)

	store, err := c.newStore(ctx, hooks)
	if err != nil {
		return nil, err
	}
	restored, err := store.Attach(ctx, ed, c.layoutPath)
	if err != nil {
		c.Logger.Warn("history journal unavailable", "err", err)
	} else if restored {
		c.Logger.Debug("history restored", "undo", len(ed.History().Undos()), "redo", len(ed.History().Redos()))
	}
	return &workspace{path: c.layoutPath, editor: ed, store: store}, nil
}

// mergeCatalog adds configured library types the layout does not know yet.
// Types already in the layout win. Merged types are not recorded in history.
func (c *CLI) mergeCatalog(l *layout.Layout) error {
	if len(c.cfg.Catalog.Paths) == 0 {
		return nil
	}
	types, err := catalog.LoadPaths(c.cfg.Catalog.Paths...)
	if err != nil {
		return fmt.Errorf("load device library: %w", err)
	}
	for _, t := range types {
		if !l.Catalog().Has(t.Slug) {
			l.Catalog().Put(t)
		}
	}
	return nil
}

// commit saves the layout and its journal.
func (w *workspace) commit(ctx context.Context) error {
	if err := rackio.Save(w.editor.Layout(), w.path); err != nil {
		return fmt.Errorf("save %s: %w", w.path, err)
	}
	if err := w.store.Persist(ctx, w.editor, w.path); err != nil {
		printWarning("History not saved: %v", err)
	}
	return nil
}

func (w *workspace) close() {
	w.store.Close()
}

// edit opens the workspace, runs fn and commits when fn succeeds.
func (c *CLI) edit(ctx context.Context, fn func(*editor.Editor) error) error {
	w, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer w.close()

	if err := fn(w.editor); err != nil {
		return userError(err)
	}
	return w.commit(ctx)
}

// =============================================================================
// Journal Store Factory
// =============================================================================

// newStore builds the journal store for the configured backend.
func (c *CLI) newStore(ctx context.Context, hooks observability.CacheHooks) (*session.Store, error) {
	backend, keyer, err := c.newJournalCache(ctx)
	if err != nil {
		return nil, err
	}
	return session.NewStore(backend,
		session.WithKeyer(keyer),
		session.WithTTL(c.cfg.History.TTL.Duration),
		session.WithCacheHooks(hooks),
	), nil
}

func (c *CLI) newJournalCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	switch c.cfg.History.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), cache.NewDefaultKeyer(), nil
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
		defer cancel()

		spinner := newSpinnerWithContext(ctx, "Connecting to "+c.cfg.Redis.Addr+"...")
		spinner.Start()
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.cfg.Redis.Addr,
			Password: c.cfg.Redis.Password,
			DB:       c.cfg.Redis.DB,
		})
		spinner.Stop()
		if err != nil {
			c.Logger.Warn("redis unavailable, history will not persist", "err", err)
			return cache.NewNullCache(), cache.NewDefaultKeyer(), nil
		}
		return rc, cache.NewScopedKeyer(nil, c.cfg.Redis.Namespace), nil
	default:
		dir, err := journalDir()
		if err != nil {
			c.Logger.Warn("no cache directory, history will not persist", "err", err)
			return cache.NewNullCache(), cache.NewDefaultKeyer(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("open journal dir: %w", err)
		}
		return fc, cache.NewDefaultKeyer(), nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/rackula/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// journalDir is where the file backend keeps history journals.
func journalDir() (string, error) {
	dir, err := cacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "journal"), nil
}

// =============================================================================
// Errors
// =============================================================================

// userError strips the code prefix from rejected changes so the CLI prints
// the plain reason.
func userError(err error) error {
	if errors.GetCode(err) == "" {
		return err
	}
	return fmt.Errorf("%s", errors.UserMessage(err))
}
