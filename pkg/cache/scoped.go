package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one backend.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
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

// DataKey generates a prefixed key for parsed datasets.
func (k *ScopedKeyer) DataKey(contentHash, format string) string {
	return k.prefix + k.inner.DataKey(contentHash, format)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(dataHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(dataHash, opts)
}

// ChartKey generates a prefixed key for live chart responses.
func (k *ScopedKeyer) ChartKey(dataset, revision, format string) string {
	return k.prefix + k.inner.ChartKey(dataset, revision, format)
}
