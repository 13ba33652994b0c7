package cache

// ScopedKeyer wraps a Keyer with a prefix so that several tenants can share
// one backend without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer falls back to [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// TimetableKey generates a prefixed timetable key.
func (k *ScopedKeyer) TimetableKey(sourceHash, format string) string {
	return k.prefix + k.inner.TimetableKey(sourceHash, format)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(timetableHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(timetableHash, opts)
}
