package sink

import (
	"image/color"
	"maps"
	"slices"

	"github.com/matzehuels/hexmap/pkg/hexgrid"
)

// Tile colours. The fill is half transparent so overlapping tiles blend.
var (
	Background = color.NRGBA{R: 127, A: 0}
	TileFill   = color.NRGBA{B: 127, A: 127}
	TileStroke = color.NRGBA{B: 127, A: 255}
	LabelColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// diamond lists the tile outline relative to the tile's top-left corner:
// north, east, south and west.
var diamond = [4]hexgrid.Point{
	{X: hexgrid.TileHalfWidth, Y: 0},
	{X: hexgrid.TileWidth, Y: hexgrid.TileHalfHeight},
	{X: hexgrid.TileHalfWidth, Y: hexgrid.TileHeight},
	{X: 0, Y: hexgrid.TileHalfHeight},
}

// topLeft returns the top-left corner of the tile centred on p.
func topLeft(p hexgrid.Point) hexgrid.Point {
	return p.Sub(hexgrid.Point{X: hexgrid.TileHalfWidth, Y: hexgrid.TileHalfHeight})
}

// sortedIDs returns the identifiers in coords in drawing order.
func sortedIDs(coords hexgrid.Coords) []int {
	return slices.Sorted(maps.Keys(coords))
}
