// Package observability provides hooks for logging and metrics.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. The editor and the
// journal store accept hooks as options and call them on every event.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Provide [LogHooks], which forwards events to a charmbracelet logger
//
// Hooks are passed explicitly to the component that emits them; there is
// no global registry. Tests can inject recording hooks per instance.
//
// # Usage
//
//	hooks := observability.NewLogHooks(logger)
//	ed := editor.New(l, editor.WithHooks(hooks))
//	store := session.NewStore(c, session.WithCacheHooks(hooks))
package observability

import (
	"context"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Editor Hooks
// =============================================================================

// EditorHooks receives events from the layout editor.
type EditorHooks interface {
	// OnCommand records an accepted change. kind is the command kind and
	// desc its description.
	OnCommand(kind, desc string)

	// OnRejected records a change the layout refused. op names the
	// operation, e.g. "place".
	OnRejected(op string, err error)

	// OnUndo and OnRedo record history navigation.
	OnUndo(desc string)
	OnRedo(desc string)

	// OnLoad records a layout replacing the current one.
	OnLoad(name string, devices int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEditorHooks is a no-op implementation of EditorHooks.
type NoopEditorHooks struct{}

func (NoopEditorHooks) OnCommand(string, string) {}
func (NoopEditorHooks) OnRejected(string, error) {}
func (NoopEditorHooks) OnUndo(string)            {}
func (NoopEditorHooks) OnRedo(string)            {}
func (NoopEditorHooks) OnLoad(string, int)       {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Logging Implementation
// =============================================================================

// LogHooks writes every event to a logger at debug level, except rejections,
// which are logged at info.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger. A nil logger uses the
// charmbracelet default logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnCommand(kind, desc string) {
	h.Logger.Debug("command", "kind", kind, "desc", desc)
}

func (h *LogHooks) OnRejected(op string, err error) {
	h.Logger.Info("rejected", "op", op, "err", err)
}

func (h *LogHooks) OnUndo(desc string) { h.Logger.Debug("undo", "desc", desc) }
func (h *LogHooks) OnRedo(desc string) { h.Logger.Debug("redo", "desc", desc) }

func (h *LogHooks) OnLoad(name string, devices int) {
	h.Logger.Debug("layout loaded", "name", name, "devices", devices)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ EditorHooks = NoopEditorHooks{}
	_ CacheHooks  = NoopCacheHooks{}
	_ EditorHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
)
