package hexgrid

// Group pattern dimensions. Rows*Cols equals GroupSize.
const (
	Rows = 3
	Cols = 4
)

// Pattern is a group's items as laid out, row by row. Rows of odd groups
// are stored in reversed order so each row reads left to right on the
// canvas. Padding slots hold 0.
type Pattern [Rows][Cols]int

// groupShifts maps a spiral step to the pixel offset between the anchors
// of two neighbouring groups. Neighbours overlap by one gap so their edge
// tiles interlock.
var groupShifts = map[Offset]Point{
	{DX: 1, DY: -1}: {X: groupWidth - gapWidth, Y: 0},                                     // right
	{DX: 0, DY: 1}:  {X: -groupHalfWidth + gapWidth/2, Y: groupHalfHeight - gapHeight/2},  // down-left
	{DX: -1, DY: 1}: {X: -groupWidth + gapWidth, Y: 0},                                    // left
	{DX: -1, DY: 0}: {X: -groupHalfWidth + gapWidth/2, Y: -groupHalfHeight + gapHeight/2}, // up-left
	{DX: 0, DY: -1}: {X: groupHalfWidth - gapWidth/2, Y: -groupHalfHeight + gapHeight/2},  // up-right
	{DX: 1, DY: 0}:  {X: groupHalfWidth - gapWidth/2, Y: groupHalfHeight - gapHeight/2},   // down-right
}

// GroupShift returns the anchor offset for a spiral step. The zero step of
// the first group, and anything that is not a hex neighbour, maps to the
// zero shift.
func GroupShift(o Offset) Point {
	return groupShifts[o]
}

// serpentine holds the offsets that walk one group's 3×4 pattern.
type serpentine struct {
	start Point // anchor to first item
	item  Point // item to next item in a row
	row   Point // last item of a row to first item of the next
}

// Both parities descend diagonally; odd groups run right-to-left.
var (
	oddSerpentine = serpentine{
		start: Point{X: 0, Y: -3 * gapHeight},
		item:  Point{X: -gapWidth, Y: gapHeight},
		row:   Point{X: 4.5 * gapWidth, Y: -1.5 * gapHeight},
	}
	evenSerpentine = serpentine{
		start: Point{X: 0, Y: -3 * gapHeight},
		item:  Point{X: gapWidth, Y: gapHeight},
		row:   Point{X: -4.5 * gapWidth, Y: -1.5 * gapHeight},
	}
)

func serpentineFor(odd bool) serpentine {
	if odd {
		return oddSerpentine
	}
	return evenSerpentine
}

// Place assigns a tile centre to every item of every group.
//
// groups, offsets and grid must describe the same number of groups, with
// offsets[i] the spiral step that reached group i+1. Groups are placed in
// spiral order: each one's anchor is the previous anchor moved by
// [GroupShift] of its step, starting from the centre of a group footprint.
//
// Padding slots advance the walk exactly like real items but receive no
// coordinate, so a partial group keeps the geometry of a full one.
//
// The returned coordinates are raw and may be negative; see [Normalize].
func Place(groups []Group, offsets []Offset, grid *Grid) (Coords, []Pattern) {
	coords := make(Coords, len(groups)*GroupSize)
	patterns := make([]Pattern, len(groups))

	anchors := Anchors(offsets[:len(groups)])
	for i, g := range groups {
		patterns[i] = placeGroup(anchors[i], g, grid.IsOdd(i+1), coords)
	}
	return coords, patterns
}

// Anchors returns the raw anchor point of every group: the centre of a
// group footprint moved by the running sum of the [GroupShift] of each
// spiral step.
func Anchors(offsets []Offset) []Point {
	anchors := make([]Point, len(offsets))
	anchor := groupCenter
	for i, o := range offsets {
		anchor = anchor.Add(GroupShift(o))
		anchors[i] = anchor
	}
	return anchors
}

// placeGroup lays out one group around anchor and records the coordinates
// of its real items in coords.
func placeGroup(anchor Point, g Group, odd bool, coords Coords) Pattern {
	s := serpentineFor(odd)

	var p Pattern
	pt := anchor.Add(s.start)
	for r := range Rows {
		row := g[r*Cols : (r+1)*Cols]
		pt = placeRow(pt, row, s, coords)
		copy(p[r][:], row)
		if odd {
			reverse(p[r][:])
		}
	}
	return p
}

// placeRow places one row starting at pt and returns the start of the
// next row.
func placeRow(pt Point, row []int, s serpentine, coords Coords) Point {
	for c, id := range row {
		if id != Padding {
			coords[id] = pt
		}
		if c != len(row)-1 {
			pt = pt.Add(s.item)
		}
	}
	return pt.Add(s.row)
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
