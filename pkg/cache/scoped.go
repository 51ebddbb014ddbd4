package cache

// ScopedKeyer wraps a Keyer with a prefix so several users or projects can
// share one Redis instance without seeing each other's entries.
//
// Example usage:
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "team-a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// MatchKey generates a prefixed match key.
func (k *ScopedKeyer) MatchKey(src, dst []byte) string {
	return k.prefix + k.inner.MatchKey(src, dst)
}

// ProfileKey generates a prefixed profile key.
func (k *ScopedKeyer) ProfileKey(g []byte) string {
	return k.prefix + k.inner.ProfileKey(g)
}
