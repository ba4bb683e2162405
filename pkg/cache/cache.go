// Package cache stores rendered catalog artifacts between runs.
//
// Rendering a graph to SVG or HTML is deterministic in the graph and the
// render options, so artifacts are keyed by a hash of both. Three backends
// share the [Cache] interface:
//
//   - [FileCache]: entries under the XDG cache directory, for CLI use
//   - [RedisCache]: a shared Redis instance, for servers and CI
//   - [NullCache]: disables caching
//
// Records themselves are never cached; every run reads the dataset source.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey identifies a rendered artifact of the graph with the given
	// content hash.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Select   string `json:"select,omitempty"`
	Engine   string `json:"engine,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
	Title    string `json:"title,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>" over the graph hash and options.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

var _ Keyer = DefaultKeyer{}
