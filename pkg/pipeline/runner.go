package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hexmap/pkg/cache"
	"github.com/matzehuels/hexmap/pkg/hexgrid"
	hexio "github.com/matzehuels/hexmap/pkg/io"
	"github.com/matzehuels/hexmap/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely use the same Runner with different options. Cache
// errors are logged and otherwise ignored: a broken cache slows the
// pipeline down but never fails it.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default entry lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	layoutStart := time.Now()
	doc, layoutHit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = doc
	result.Stats.Items = len(doc.Coordinates)
	result.Stats.Groups = len(doc.Groups)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"items", result.Stats.Items,
		"groups", result.Stats.Groups,
		"canvas", fmt.Sprintf("%dx%d", doc.CanvasDimensions[0], doc.CanvasDimensions[1]),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, hash, renderHit, err := r.render(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.LayoutHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes the layout of opts.Items with caching and
// reports whether it came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (hexio.Document, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return hexio.Document{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(opts.Items, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit := r.cacheGet(ctx, cacheKey, keyTypeLayout); hit {
			if doc, err := hexio.UnmarshalJSON(data); err == nil {
				return doc, true, nil
			}
			r.Logger.Debug("discarding unreadable cached layout", "key", cacheKey)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Items)
	start := time.Now()
	l, err := hexgrid.Build(opts.Items)
	hooks.OnLayoutComplete(ctx, opts.Items, l.Groups(), time.Since(start), err)
	if err != nil {
		return hexio.Document{}, false, err
	}
	r.Logger.Debug("layout summary\n" + l.String())

	doc := hexio.FromLayout(l)
	if data, err := hexio.MarshalJSON(doc); err == nil {
		r.cacheSet(ctx, cacheKey, keyTypeLayout, data, r.ttl(cache.TTLLayout))
	}
	return doc, false, nil
}

// Layout is a convenience wrapper that discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, opts Options) (hexio.Document, error) {
	doc, _, err := r.LayoutWithCacheInfo(ctx, opts)
	return doc, err
}

// RenderWithCacheInfo renders d in every requested format with caching and
// reports whether all artifacts came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d hexio.Document, opts Options) (map[string][]byte, bool, error) {
	artifacts, _, hit, err := r.render(ctx, d, opts)
	return artifacts, hit, err
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d hexio.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, d, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, d hexio.Document, opts Options) (map[string][]byte, string, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	layoutData, err := hexio.MarshalJSON(d)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit := r.cacheGet(ctx, key, keyTypeArtifact); hit {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, layoutHash, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(ctx, d, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.cacheSet(ctx, key, keyTypeArtifact, data, r.ttl(cache.TTLArtifact))
		artifacts[format] = data
	}
	return artifacts, layoutHash, false, nil
}

func (r *Runner) cacheGet(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
	} else {
		observability.Cache().OnCacheMiss(ctx, keyType)
	}
	return data, hit
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func (r *Runner) cacheSet(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
