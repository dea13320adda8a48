package hexgrid

// Offset is a unit step between neighbouring cells of the group grid.
// DX and DY are each -1, 0 or 1.
type Offset struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Cell addresses the group grid by column X and row Y, both 0-based.
type Cell struct {
	X, Y int
}

// Step returns c moved by o.
func (c Cell) Step(o Offset) Cell { return Cell{X: c.X + o.DX, Y: c.Y + o.DY} }

// RingCount returns the number of spiral rings needed around the centre
// cell to hold the given number of groups. Ring k holds 6k groups.
func RingCount(groups int) int {
	rest := groups - 1
	k := 0
	for rest > 0 {
		k++
		rest -= 6 * k
	}
	return k
}

// GridSide returns the side length of the smallest square grid holding
// the spiral of the given number of groups. It is always odd, so the grid
// has a single centre cell and no empty outer ring.
func GridSide(groups int) int {
	return 2*RingCount(groups) + 1
}

// GridCenter returns the centre cell of a grid with the given side.
func GridCenter(side int) Cell {
	return Cell{X: side / 2, Y: side / 2}
}

// SpiralOffsets returns one offset per group. The first is the zero step
// that keeps group 1 at the centre; the rest walk the hexagonal spiral
// ring by ring, each offset relative to the previous group's cell.
//
// Each axis is generated independently as runs of +1, 0, -1, 0 steps that
// grow every ring. The y axis leads the x axis by one step, which is what
// turns the two square-ish walks into a hexagonal one.
func SpiralOffsets(groups int) []Offset {
	if groups <= 0 {
		return nil
	}
	xs := axisSteps([]int{0}, 1, groups)
	ys := axisSteps([]int{0, -1}, 2, groups)

	offsets := make([]Offset, groups)
	for i := range offsets {
		offsets[i] = Offset{DX: xs[i], DY: ys[i]}
	}
	return offsets
}

// axisSteps extends prefix ring by ring until it holds n steps. A ring
// appends ascents×(+1), holds×0, (ascents+1)×(-1), holds×0; ascents grows
// by 2 and holds by 1 per ring.
func axisSteps(prefix []int, ascents, n int) []int {
	steps := make([]int, len(prefix), max(n, len(prefix)))
	copy(steps, prefix)

	holds := 1
	for len(steps) < n {
		steps = appendRun(steps, 1, ascents)
		steps = appendRun(steps, 0, holds)
		steps = appendRun(steps, -1, ascents+1)
		steps = appendRun(steps, 0, holds)
		ascents += 2
		holds++
	}
	return steps[:n]
}

func appendRun(steps []int, v, count int) []int {
	for range count {
		steps = append(steps, v)
	}
	return steps
}
