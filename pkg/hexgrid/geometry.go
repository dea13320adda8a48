package hexgrid

// Tile ("house") footprint in pixels. The margin around the layout is one
// tile on each axis.
const (
	TileWidth      = 350.0
	TileHeight     = 175.0
	TileHalfWidth  = TileWidth / 2
	TileHalfHeight = TileHeight / 2
)

// Gap unit between neighbouring tiles.
const (
	gapWidth  = 175.0
	gapHeight = 87.5
)

// Group ("chunk") footprint in pixels.
const (
	groupWidth      = 1750.0
	groupHeight     = 875.0
	groupHalfWidth  = groupWidth / 2
	groupHalfHeight = groupHeight / 2
)

// groupCenter is the anchor of the first group.
var groupCenter = Point{X: groupHalfWidth, Y: groupHalfHeight}

// Point is a 2D pixel coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Bounds is the canvas size in whole pixels.
type Bounds struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Coords maps item identifiers to tile centres.
type Coords map[int]Point
