// Package session persists editor history between CLI invocations.
//
// Each CLI command loads a layout file, applies one change and exits. To let
// a later "rackula undo" reverse that change, the editor's undo and redo
// stacks are saved as a [Journal] after every command and restored before
// the next one.
//
// A journal is keyed by the layout file path and carries a fingerprint of
// the document it was taken from. When the file has been edited outside the
// tool, the fingerprint no longer matches and the journal is discarded, since
// its commands would no longer be exact inverses of the file's history.
//
// # Usage
//
//	c, _ := cache.NewFileCache(dir)
//	store := session.NewStore(c, session.WithTTL(7*24*time.Hour))
//
//	ed := editor.New(l)
//	if _, err := store.Attach(ctx, ed, path); err != nil {
//	    return err
//	}
//	// ... mutate ed, save the layout ...
//	if err := store.Persist(ctx, ed, path); err != nil {
//	    return err
//	}
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tangramor/Rackula-sub001/pkg/cache"
	"github.com/tangramor/Rackula-sub001/pkg/editor"
	"github.com/tangramor/Rackula-sub001/pkg/layout"
	"github.com/tangramor/Rackula-sub001/pkg/observability"
)

// DefaultTTL is how long an untouched journal is kept.
const DefaultTTL = 30 * 24 * time.Hour

const keyType = "journal"

// Journal is the saved history of one layout file.
type Journal struct {
	Path        string          `json:"path"`
	Fingerprint string          `json:"fingerprint"`
	Undo        []layout.Record `json:"undo"`
	Redo        []layout.Record `json:"redo"`
	SavedAt     time.Time       `json:"saved_at"`
}

// Store reads and writes journals through a cache backend.
type Store struct {
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
	hooks observability.CacheHooks
}

// Option configures a Store.
type Option func(*Store)

// WithKeyer replaces the default key scheme, e.g. with a scoped keyer for a
// shared Redis database.
func WithKeyer(k cache.Keyer) Option {
	return func(s *Store) {
		if k != nil {
			s.keyer = k
		}
	}
}

// WithTTL sets how long journals are kept. Zero keeps them until cleared.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithCacheHooks reports hits, misses and writes.
func WithCacheHooks(h observability.CacheHooks) Option {
	return func(s *Store) {
		if h != nil {
			s.hooks = h
		}
	}
}

// NewStore creates a journal store over c.
func NewStore(c cache.Cache, opts ...Option) *Store {
	s := &Store{
		cache: c,
		keyer: cache.NewDefaultKeyer(),
		ttl:   DefaultTTL,
		hooks: observability.NoopCacheHooks{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fingerprint identifies the content of a layout document.
func Fingerprint(doc layout.Document) string {
	data, _ := json.Marshal(doc)
	return cache.Hash(data)
}

// Key returns the cache key used for the layout at path.
func (s *Store) Key(path string) string { return s.keyer.JournalKey(path) }

// Get returns the journal for path. It returns nil, nil when there is none,
// or when the saved fingerprint differs from fingerprint; a stale journal is
// deleted.
func (s *Store) Get(ctx context.Context, path, fingerprint string) (*Journal, error) {
	key := s.Key(path)
	data, err := cache.Lookup(ctx, s.cache, key)
	if errors.Is(err, cache.ErrCacheMiss) {
		s.hooks.OnCacheMiss(ctx, keyType)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}

	var j Journal
	if err := json.Unmarshal(data, &j); err != nil || j.Fingerprint != fingerprint {
		s.hooks.OnCacheMiss(ctx, keyType)
		return nil, s.cache.Delete(ctx, key)
	}
	s.hooks.OnCacheHit(ctx, keyType)
	return &j, nil
}

// Set saves j under its path.
func (s *Store) Set(ctx context.Context, j *Journal) error {
	if j.SavedAt.IsZero() {
		j.SavedAt = time.Now()
	}
	data, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("encode journal: %w", err)
	}
	key := s.Key(j.Path)
	if err := cache.RetryWithBackoff(ctx, func() error {
		return s.cache.Set(ctx, key, data, s.ttl)
	}); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	s.hooks.OnCacheSet(ctx, keyType, len(data))
	return nil
}

// Delete discards the journal for path.
func (s *Store) Delete(ctx context.Context, path string) error {
	if err := s.cache.Delete(ctx, s.Key(path)); err != nil {
		return fmt.Errorf("delete journal: %w", err)
	}
	return nil
}

// Close closes the cache backend.
func (s *Store) Close() error { return s.cache.Close() }

// Attach restores the saved history of path into ed, whose layout must be
// the one just loaded from path. It reports whether a journal was restored.
// A journal that no longer decodes against the layout is discarded.
func (s *Store) Attach(ctx context.Context, ed *editor.Editor, path string) (bool, error) {
	j, err := s.Get(ctx, path, Fingerprint(ed.Layout().Document()))
	if err != nil || j == nil {
		return false, err
	}
	if err := ed.Resume(j.Undo, j.Redo); err != nil {
		return false, s.Delete(ctx, path)
	}
	return true, nil
}

// Persist saves the history of ed for path. Call it after the layout has
// been written, so the fingerprint matches the file.
func (s *Store) Persist(ctx context.Context, ed *editor.Editor, path string) error {
	undo, redo, err := ed.Journal()
	if err != nil {
		return err
	}
	return s.Set(ctx, &Journal{
		Path:        path,
		Fingerprint: Fingerprint(ed.Layout().Document()),
		Undo:        undo,
		Redo:        redo,
	})
}
