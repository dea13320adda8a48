// Package pipeline runs the layout → render pipeline with caching.
//
// The command line and the HTTP server both go through a [Runner], so they
// share one cache layout and one set of defaults.
//
// # Stages
//
//  1. Layout: compute the hex-spiral layout of N items (pkg/hexgrid) and
//     convert it to an exportable document (pkg/io)
//  2. Render: produce artifacts from the document in the requested formats
//
// Both stages are cached independently. Layouts are keyed by item count
// and build version, artifacts by the hash of the layout document, the
// format and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Items:   1000,
//	    Formats: []string{pipeline.FormatJSON, pipeline.FormatPNG},
//	})
//	if err != nil {
//	    return err
//	}
//	png := result.Artifacts[pipeline.FormatPNG]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hexmap/pkg/buildinfo"
	"github.com/matzehuels/hexmap/pkg/cache"
	"github.com/matzehuels/hexmap/pkg/errors"
	hexio "github.com/matzehuels/hexmap/pkg/io"
)

// Format constants for output formats.
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatPNG    = "png"
	FormatSVG    = "svg"
	FormatGroups = "groups"
)

// ValidFormats lists the supported output formats in their canonical order.
var ValidFormats = []string{FormatJSON, FormatYAML, FormatPNG, FormatSVG, FormatGroups}

// DefaultFormats are rendered when no format is requested: the layout
// document and its picture.
var DefaultFormats = []string{FormatJSON, FormatPNG}

// DefaultFontSize is the label size in points.
const DefaultFontSize = 48.0

// ContentType returns the MIME type of an artifact format.
func ContentType(format string) string {
	switch format {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatPNG:
		return "image/png"
	case FormatSVG, FormatGroups:
		return "image/svg+xml"
	}
	return "application/octet-stream"
}

// Extension returns the file extension, with dot, for an artifact format.
func Extension(format string) string {
	switch format {
	case FormatGroups:
		return ".groups.svg"
	case FormatYAML:
		return ".yaml"
	}
	return "." + format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// Items is the number of items to lay out.
	Items int `json:"items"`

	// MaxItems bounds Items; zero means unbounded.
	MaxItems int `json:"-"`

	// Formats lists the artifacts to render.
	Formats []string `json:"formats,omitempty"`

	// FontSize is the label size for png and svg.
	FontSize float64 `json:"font_size,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the exported layout.
	Layout hexio.Document

	// LayoutHash is the content hash of the JSON layout document.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items      int
	Groups     int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateForLayout checks the item count.
func (o *Options) ValidateForLayout() error {
	o.setLoggerDefault()
	return errors.ValidateItemCount(o.Items, o.MaxItems)
}

// ValidateForRender applies render defaults and checks the formats.
// Duplicate formats are dropped.
func (o *Options) ValidateForRender() error {
	o.setLoggerDefault()
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	o.Formats = dedupe(o.Formats)
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults checks and defaults the options for a full run.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Version: buildinfo.Version}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// The font size only affects labelled raster and vector formats.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Version: buildinfo.Version}
	if format == FormatPNG || format == FormatSVG {
		opts.FontSize = o.FontSize
	}
	return opts
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
