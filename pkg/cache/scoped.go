package cache

// ScopedKeyer prefixes every key of an inner Keyer. Use it to keep separate
// installations apart in a shared Redis database:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "rackula:lab:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// JournalKey implements [Keyer].
func (k *ScopedKeyer) JournalKey(path string) string {
	return k.prefix + k.inner.JournalKey(path)
}
