package pipeline

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hexmap/pkg/cache"
	"github.com/matzehuels/hexmap/pkg/errors"
	"github.com/matzehuels/hexmap/pkg/hexgrid"
	hexio "github.com/matzehuels/hexmap/pkg/io"
)

// memCache is an in-memory cache.Cache.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
	sets int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.ttls[key] = ttl
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

// brokenCache fails every operation.
type brokenCache struct{}

var errBroken = stderrors.New("cache down")

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errBroken }
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errBroken
}
func (brokenCache) Delete(context.Context, string) error { return errBroken }
func (brokenCache) Close() error                         { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"yaml", false},
		{"png", false},
		{"svg", false},
		{"groups", false},
		{"pdf", true},
		{"PNG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateForRenderDefaults(t *testing.T) {
	var opts Options
	require.NoError(t, opts.ValidateForRender())
	assert.Equal(t, DefaultFormats, opts.Formats)
	assert.Equal(t, DefaultFontSize, opts.FontSize)
	assert.NotNil(t, opts.Logger)

	opts = Options{Formats: []string{"png", "json", "png"}}
	require.NoError(t, opts.ValidateForRender())
	assert.Equal(t, []string{"png", "json"}, opts.Formats)
}

func TestValidateForLayout(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"zero", Options{Items: 0}, false},
		{"positive", Options{Items: 500}, false},
		{"negative", Options{Items: -1}, true},
		{"over limit", Options{Items: 11, MaxItems: 10}, true},
		{"at limit", Options{Items: 10, MaxItems: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("code = %v, want INVALID_ARGUMENT", errors.GetCode(err))
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{FontSize: 24}
	assert.Equal(t, 24.0, opts.ArtifactKeyOpts(FormatPNG).FontSize)
	assert.Zero(t, opts.ArtifactKeyOpts(FormatJSON).FontSize)
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	res, err := r.Execute(ctx, Options{Items: 13, Formats: []string{FormatJSON, FormatPNG, FormatSVG}})
	require.NoError(t, err)

	assert.Equal(t, hexgrid.Bounds{Width: 2800, Height: 875}, res.Layout.Bounds())
	assert.Equal(t, 13, res.Stats.Items)
	assert.Equal(t, 2, res.Stats.Groups)
	assert.Len(t, res.Artifacts, 3)
	assert.NotEmpty(t, res.LayoutHash)
	assert.False(t, res.CacheInfo.LayoutHit)

	doc, err := hexio.UnmarshalJSON(res.Artifacts[FormatJSON])
	require.NoError(t, err)
	assert.Equal(t, res.Layout, doc)
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Items: 40, Formats: []string{FormatJSON, FormatYAML}}

	first, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.LayoutHit)
	assert.False(t, first.CacheInfo.RenderHit)
	assert.Equal(t, 3, c.sets, "one layout and two artifacts")

	second, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.LayoutHit)
	assert.True(t, second.CacheInfo.RenderHit)
	assert.Equal(t, first.Artifacts, second.Artifacts)
	assert.Equal(t, first.Layout, second.Layout)

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.False(t, third.CacheInfo.LayoutHit)
	assert.False(t, third.CacheInfo.RenderHit)
}

func TestRenderPartialCacheHit(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)

	doc, err := r.Layout(ctx, Options{Items: 5})
	require.NoError(t, err)

	_, hit, err := r.RenderWithCacheInfo(ctx, doc, Options{Formats: []string{FormatJSON}})
	require.NoError(t, err)
	assert.False(t, hit)

	artifacts, hit, err := r.RenderWithCacheInfo(ctx, doc, Options{Formats: []string{FormatJSON, FormatYAML}})
	require.NoError(t, err)
	assert.False(t, hit, "yaml was never rendered")
	assert.Len(t, artifacts, 2)
}

func TestRunnerTTL(t *testing.T) {
	ctx := context.Background()

	c := newMemCache()
	r := NewRunner(c, nil, nil)
	_, err := r.Execute(ctx, Options{Items: 2, Formats: []string{FormatJSON}})
	require.NoError(t, err)
	for key, ttl := range c.ttls {
		if strings.HasPrefix(key, "layout:") {
			assert.Equal(t, cache.TTLLayout, ttl, key)
		} else {
			assert.Equal(t, cache.TTLArtifact, ttl, key)
		}
	}

	c = newMemCache()
	r = NewRunner(c, nil, nil)
	r.TTL = time.Hour
	_, err = r.Execute(ctx, Options{Items: 2, Formats: []string{FormatJSON}})
	require.NoError(t, err)
	require.Len(t, c.ttls, 2)
	for key, ttl := range c.ttls {
		assert.Equal(t, time.Hour, ttl, key)
	}
}

func TestExecuteBrokenCache(t *testing.T) {
	r := NewRunner(brokenCache{}, nil, nil)
	res, err := r.Execute(context.Background(), Options{Items: 3, Formats: []string{FormatJSON}})
	require.NoError(t, err)
	assert.Len(t, res.Layout.Coordinates, 3)
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	_, err := r.Execute(ctx, Options{Items: -1})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument), "got %v", err)

	_, err = r.Execute(ctx, Options{Items: 1, Formats: []string{"pdf"}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
}

func TestGroupLayout(t *testing.T) {
	l := hexgrid.MustBuild(30)
	got, err := GroupLayout(hexio.FromLayout(l))
	require.NoError(t, err)
	assert.Equal(t, l.Coords, got.Coords)

	doc := hexio.Document{
		CanvasDimensions: [2]int{700, 350},
		Coordinates:      map[int][2]float64{2: {350, 175}},
	}
	_, err = GroupLayout(doc)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidLayout), "got %v", err)
}

func TestContentTypeAndExtension(t *testing.T) {
	assert.Equal(t, "image/png", ContentType(FormatPNG))
	assert.Equal(t, "image/svg+xml", ContentType(FormatGroups))
	assert.Equal(t, ".groups.svg", Extension(FormatGroups))
	assert.Equal(t, ".json", Extension(FormatJSON))
}
