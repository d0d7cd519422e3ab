package cache

import "path/filepath"

// Keyer builds cache keys.
type Keyer interface {
	// JournalKey returns the key holding the history journal of the layout
	// file at path.
	JournalKey(path string) string
}

// DefaultKeyer hashes the absolute layout path, so the same file reached
// through different relative paths shares one journal.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// JournalKey implements [Keyer].
func (DefaultKeyer) JournalKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return hashKey("journal", filepath.Clean(path))
}
