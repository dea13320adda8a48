package hexgrid

import (
	"fmt"
	"strings"

	"github.com/matzehuels/hexmap/pkg/errors"
)

// Layout is the complete result of laying out N items.
type Layout struct {
	Items    int       // item count N
	Side     int       // group grid side length
	Center   Cell      // group grid centre
	Grid     *Grid     // group indices by cell
	Offsets  []Offset  // spiral step per group
	Anchors  []Point   // raw anchor per group, before normalization
	Patterns []Pattern // item arrangement per group
	Coords   Coords    // normalized tile centre per item
	Bounds   Bounds    // canvas size
}

// Groups returns the number of groups in the layout.
func (l Layout) Groups() int { return len(l.Patterns) }

// Build lays out items 1..n. It fails with INVALID_ARGUMENT for negative n.
//
// n = 0 is accepted and yields an empty layout on a canvas of two margins.
func Build(n int) (Layout, error) {
	if n < 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidArgument, "item count must be non-negative, got %d", n)
	}

	groups := Partition(Items(n))
	side := GridSide(len(groups))
	center := GridCenter(side)
	offsets := SpiralOffsets(len(groups))
	grid := BuildGrid(side, center, offsets)

	raw, patterns := Place(groups, offsets, grid)
	coords, bounds := Normalize(raw)

	return Layout{
		Items:    n,
		Side:     side,
		Center:   center,
		Grid:     grid,
		Offsets:  offsets,
		Anchors:  Anchors(offsets),
		Patterns: patterns,
		Coords:   coords,
		Bounds:   bounds,
	}, nil
}

// MustBuild is like Build but panics on a negative n.
func MustBuild(n int) Layout {
	l, err := Build(n)
	if err != nil {
		panic(err)
	}
	return l
}

// String summarizes the layout: group count, grid geometry and the group
// grid itself.
func (l Layout) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Items: %d\n", l.Items)
	fmt.Fprintf(&b, "Groups: %d\n", l.Groups())
	fmt.Fprintf(&b, "Grid size: %d x %d\n", l.Side, l.Side)
	fmt.Fprintf(&b, "Grid center: [%d, %d]\n", l.Center.X, l.Center.Y)
	fmt.Fprintf(&b, "Canvas: %d x %d\n", l.Bounds.Width, l.Bounds.Height)
	if l.Grid != nil {
		for _, row := range l.Grid.Rows() {
			fmt.Fprintf(&b, "%v\n", row)
		}
	}
	return b.String()
}
