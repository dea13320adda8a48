package hexgrid

import "math"

// Margin is the padding kept around the layout on each axis.
var Margin = Point{X: TileWidth, Y: TileHeight}

// Normalize shifts coords so the smallest coordinate on each axis sits at
// Margin, and returns the shifted copy with the canvas bounds. The bounds
// are taken after shifting: the largest coordinate plus Margin, truncated
// to whole pixels.
//
// Empty coords yield a canvas of two margins on each axis.
func Normalize(coords Coords) (Coords, Bounds) {
	out := make(Coords, len(coords))
	if len(coords) == 0 {
		return out, Bounds{Width: int(2 * Margin.X), Height: int(2 * Margin.Y)}
	}

	lo := Point{X: math.Inf(1), Y: math.Inf(1)}
	for _, p := range coords {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
	}
	shift := Margin.Sub(lo)

	hi := Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for id, p := range coords {
		q := p.Add(shift)
		out[id] = q
		hi.X = math.Max(hi.X, q.X)
		hi.Y = math.Max(hi.Y, q.Y)
	}
	hi = hi.Add(Margin)

	return out, Bounds{Width: int(hi.X), Height: int(hi.Y)}
}
