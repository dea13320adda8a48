package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/hexmap/pkg/errors"
	"github.com/matzehuels/hexmap/pkg/hexgrid"
	hexio "github.com/matzehuels/hexmap/pkg/io"
	"github.com/matzehuels/hexmap/pkg/sink"
)

// Render generates artifacts for d in every format of opts.Formats.
// It does not consult the cache.
func Render(ctx context.Context, d hexio.Document, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := renderFormat(ctx, d, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, d hexio.Document, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return hexio.MarshalJSON(d)
	case FormatYAML:
		return hexio.MarshalYAML(d)
	case FormatPNG:
		return sink.RenderPNG(d.Bounds(), d.Coords(), sink.WithFontSize(opts.FontSize))
	case FormatSVG:
		return sink.RenderSVG(d.Bounds(), d.Coords(), sink.WithSVGFontSize(opts.FontSize)), nil
	case FormatGroups:
		l, err := GroupLayout(d)
		if err != nil {
			return nil, err
		}
		return sink.RenderGroupMap(ctx, l)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

// GroupLayout rebuilds the full layout behind d so its group structure can
// be drawn. d must hold the consecutive identifiers 1..N that [hexgrid.Build]
// produces.
func GroupLayout(d hexio.Document) (hexgrid.Layout, error) {
	ids := d.IDs()
	if n := len(ids); n > 0 && (ids[0] != 1 || ids[n-1] != n) {
		return hexgrid.Layout{}, errors.New(errors.ErrCodeInvalidLayout,
			"group map needs items 1..%d, layout has %d..%d", n, ids[0], ids[n-1])
	}
	return hexgrid.Build(len(ids))
}
