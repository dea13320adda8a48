package hexgrid

import "fmt"

// Grid is the square map of group indices produced by walking the spiral.
// Cells hold 1-based group indices; 0 marks an unoccupied cell.
type Grid struct {
	side  int
	cells []int  // row-major
	odd   []bool // odd[g-1] is the parity of group g
	where []Cell // where[g-1] is the cell of group g
}

// BuildGrid stamps group indices into a side×side grid by applying offsets
// cumulatively from center. Group i+1 lands on the cell reached after
// offsets[i].
//
// Parity is recorded while stamping: a group is odd when its row-major
// index in the grid is even.
//
// BuildGrid panics if the walk leaves the grid, which only happens when
// side is too small for the offsets (use [GridSide]).
func BuildGrid(side int, center Cell, offsets []Offset) *Grid {
	g := &Grid{
		side:  side,
		cells: make([]int, side*side),
		odd:   make([]bool, len(offsets)),
		where: make([]Cell, len(offsets)),
	}

	c := center
	for i, off := range offsets {
		c = c.Step(off)
		if c.X < 0 || c.Y < 0 || c.X >= side || c.Y >= side {
			panic(fmt.Sprintf("hexgrid: spiral walked off a grid of side %d at group %d", side, i+1))
		}
		idx := c.Y*side + c.X
		g.cells[idx] = i + 1
		g.odd[i] = idx%2 == 0
		g.where[i] = c
	}
	return g
}

// Side returns the grid's side length.
func (g *Grid) Side() int { return g.side }

// Groups returns the number of groups stamped into the grid.
func (g *Grid) Groups() int { return len(g.odd) }

// At returns the group index at column x, row y, or 0 if the cell is empty
// or outside the grid.
func (g *Grid) At(x, y int) int {
	if x < 0 || y < 0 || x >= g.side || y >= g.side {
		return 0
	}
	return g.cells[y*g.side+x]
}

// CellOf returns the cell of a 1-based group index.
func (g *Grid) CellOf(group int) (Cell, bool) {
	if group < 1 || group > len(g.where) {
		return Cell{}, false
	}
	return g.where[group-1], true
}

// IsOdd reports whether the 1-based group index sits at an even row-major
// position. Unknown groups report false.
func (g *Grid) IsOdd(group int) bool {
	if group < 1 || group > len(g.odd) {
		return false
	}
	return g.odd[group-1]
}

// Rows returns a copy of the grid as rows of group indices.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.side)
	for y := range rows {
		rows[y] = append([]int(nil), g.cells[y*g.side:(y+1)*g.side]...)
	}
	return rows
}
