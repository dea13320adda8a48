package io

import (
	"maps"
	"slices"

	"github.com/matzehuels/hexmap/pkg/errors"
	"github.com/matzehuels/hexmap/pkg/hexgrid"
)

// Document is the exported form of a layout.
type Document struct {
	CanvasDimensions [2]int             `json:"canvas_dimensions" yaml:"canvas_dimensions"`
	Coordinates      map[int][2]float64 `json:"application_coordinates" yaml:"application_coordinates"`
	Groups           []hexgrid.Pattern  `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// NewDocument builds a document from canvas bounds and item coordinates.
func NewDocument(b hexgrid.Bounds, coords hexgrid.Coords) Document {
	d := Document{
		CanvasDimensions: [2]int{b.Width, b.Height},
		Coordinates:      make(map[int][2]float64, len(coords)),
	}
	for id, p := range coords {
		d.Coordinates[id] = [2]float64{p.X, p.Y}
	}
	return d
}

// FromLayout builds a document from l, including its group patterns.
func FromLayout(l hexgrid.Layout) Document {
	d := NewDocument(l.Bounds, l.Coords)
	d.Groups = slices.Clone(l.Patterns)
	return d
}

// Bounds returns the canvas bounds recorded in d.
func (d Document) Bounds() hexgrid.Bounds {
	return hexgrid.Bounds{Width: d.CanvasDimensions[0], Height: d.CanvasDimensions[1]}
}

// Coords returns the item coordinates recorded in d.
func (d Document) Coords() hexgrid.Coords {
	out := make(hexgrid.Coords, len(d.Coordinates))
	for id, c := range d.Coordinates {
		out[id] = hexgrid.Point{X: c[0], Y: c[1]}
	}
	return out
}

// IDs returns the item identifiers in ascending order.
func (d Document) IDs() []int {
	return slices.Sorted(maps.Keys(d.Coordinates))
}

// Validate checks the invariants every exported layout satisfies: a
// non-negative canvas, positive item identifiers and coordinates that lie
// on the canvas.
func (d Document) Validate() error {
	if d.Coordinates == nil {
		return errors.New(errors.ErrCodeInvalidFormat, "missing application_coordinates")
	}
	w, h := d.CanvasDimensions[0], d.CanvasDimensions[1]
	if w < 0 || h < 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "negative canvas dimensions %dx%d", w, h)
	}
	for _, id := range d.IDs() {
		if id <= hexgrid.Padding {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid item identifier %d", id)
		}
		c := d.Coordinates[id]
		if c[0] < 0 || c[1] < 0 || c[0] > float64(w) || c[1] > float64(h) {
			return errors.New(errors.ErrCodeInvalidFormat, "item %d at (%g, %g) lies outside the %dx%d canvas", id, c[0], c[1], w, h)
		}
	}
	return nil
}
