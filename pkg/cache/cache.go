// Package cache provides caching for computed layouts and rendered artifacts.
//
// Layouts are pure functions of the item count and the build version, so a
// cached entry never goes stale; TTLs only bound storage. Three backends
// implement [Cache]:
//   - [FileCache]: zstd-compressed files on disk, for the command line
//   - [RedisCache]: shared storage for multi-instance serve deployments
//   - [NullCache]: caching disabled
//
// Keys are built by a [Keyer] so that callers never format keys by hand:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(1000, cache.LayoutKeyOpts{Version: buildinfo.Version})
//	data, hit, err := c.Get(ctx, key)
//
// Every backend treats a corrupt or expired entry as a miss.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache stores opaque byte values by string key.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default time-to-live values.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// LayoutKeyOpts holds the inputs besides the item count that determine a
// layout.
type LayoutKeyOpts struct {
	Version string `json:"version"`
}

// ArtifactKeyOpts holds the inputs besides the layout that determine a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	FontSize float64 `json:"font_size,omitempty"`
	Version  string  `json:"version"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout of items items.
	LayoutKey(items int, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of an artifact rendered from the layout
	// whose serialized form hashes to layoutHash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds keys of the form "kind:sha256(parts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(items int, opts LayoutKeyOpts) string {
	return hashKey("layout", items, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:%s", opts.Format), layoutHash, opts)
}
