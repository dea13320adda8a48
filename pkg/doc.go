// Package pkg provides the libraries behind hexmap.
//
// # Overview
//
// Hexmap places N numbered items on an isometric map: items are split into
// groups of twelve, groups are arranged along a hexagonal spiral, and items
// snake through their group in rows of four. The pkg directory is organized
// as follows:
//
//  1. [hexgrid] - The layout core (partition, spiral, grid, placement, normalization)
//  2. [io] - The coordinate document and its JSON/YAML encodings
//  3. [sink] - Renderers (PNG, SVG, graphviz group map)
//  4. [pipeline] - Orchestration (layout → render) with caching
//  5. [cache] - File, Redis and null cache backends
//  6. [observability] - Hooks and Prometheus metrics
//
// # Architecture
//
// The typical data flow through hexmap:
//
//	item count N
//	     ↓
//	[hexgrid] Build (groups, spiral offsets, coordinates, canvas bounds)
//	     ↓
//	[io] Document (canvas_dimensions, application_coordinates, groups)
//	     ↓
//	[sink] PNG / SVG / group map
//
// # Quick Start
//
//	l, err := hexgrid.Build(100)
//	if err != nil {
//	    return err
//	}
//	doc := io.FromLayout(l)
//	if err := io.ExportJSON(doc, "layout.json"); err != nil {
//	    return err
//	}
//	img, err := sink.RenderPNG(l.Bounds, l.Coords)
//
// The command line and HTTP server go through [pipeline.Runner], which adds
// caching and instrumentation on top of these steps.
package pkg
