package hexgrid

import (
	"reflect"
	"testing"
)

func buildGrid(groups int) *Grid {
	side := GridSide(groups)
	return BuildGrid(side, GridCenter(side), SpiralOffsets(groups))
}

func TestBuildGridNineteen(t *testing.T) {
	g := buildGrid(19)

	want := [][]int{
		{0, 0, 19, 8, 9},
		{0, 18, 7, 2, 10},
		{17, 6, 1, 3, 11},
		{16, 5, 4, 12, 0},
		{15, 14, 13, 0, 0},
	}
	if got := g.Rows(); !reflect.DeepEqual(got, want) {
		t.Errorf("Rows() =\n%v\nwant\n%v", got, want)
	}
	if g.Side() != 5 || g.Groups() != 19 {
		t.Errorf("Side() = %d, Groups() = %d", g.Side(), g.Groups())
	}
}

func TestBuildGridSingle(t *testing.T) {
	g := buildGrid(1)
	if got := g.Rows(); !reflect.DeepEqual(got, [][]int{{1}}) {
		t.Errorf("Rows() = %v, want [[1]]", got)
	}
	if !g.IsOdd(1) {
		t.Error("IsOdd(1) = false, want true for the only cell")
	}
}

func TestBuildGridEmpty(t *testing.T) {
	g := buildGrid(0)
	if got := g.Rows(); !reflect.DeepEqual(got, [][]int{{0}}) {
		t.Errorf("Rows() = %v, want [[0]]", got)
	}
	if g.Groups() != 0 {
		t.Errorf("Groups() = %d, want 0", g.Groups())
	}
}

func TestGridParity(t *testing.T) {
	g := buildGrid(19)
	want := []bool{
		true, true, false, false, true, false, false, false, true, false,
		true, true, true, false, true, false, true, true, true,
	}
	for i, w := range want {
		if got := g.IsOdd(i + 1); got != w {
			t.Errorf("IsOdd(%d) = %v, want %v", i+1, got, w)
		}
	}
	if g.IsOdd(0) || g.IsOdd(20) {
		t.Error("IsOdd of unknown groups should be false")
	}
}

// Parity recorded during construction must match a row-major scan of the
// finished grid.
func TestGridParityMatchesScan(t *testing.T) {
	g := buildGrid(300)
	rows := g.Rows()
	scanned := make(map[int]bool)
	idx := 0
	for _, row := range rows {
		for _, v := range row {
			if v != 0 {
				scanned[v] = idx%2 == 0
			}
			idx++
		}
	}
	for group := 1; group <= 300; group++ {
		if g.IsOdd(group) != scanned[group] {
			t.Fatalf("IsOdd(%d) = %v, scan says %v", group, g.IsOdd(group), scanned[group])
		}
	}
}

func TestGridOneCellPerGroup(t *testing.T) {
	for _, groups := range []int{1, 2, 7, 8, 19, 20, 100, 1000} {
		g := buildGrid(groups)
		seen := make(map[int]int)
		for _, row := range g.Rows() {
			for _, v := range row {
				if v != 0 {
					seen[v]++
				}
			}
		}
		if len(seen) != groups {
			t.Fatalf("groups=%d: %d distinct groups in grid", groups, len(seen))
		}
		for v, n := range seen {
			if n != 1 {
				t.Fatalf("groups=%d: group %d appears %d times", groups, v, n)
			}
		}
		c := GridCenter(g.Side())
		if got := g.At(c.X, c.Y); got != 1 {
			t.Fatalf("groups=%d: centre holds %d, want 1", groups, got)
		}
	}
}

func TestGridCellOf(t *testing.T) {
	g := buildGrid(19)
	c, ok := g.CellOf(8)
	if !ok || c != (Cell{X: 3, Y: 0}) {
		t.Errorf("CellOf(8) = %v, %v", c, ok)
	}
	if _, ok := g.CellOf(0); ok {
		t.Error("CellOf(0) should not be found")
	}
	if got := g.At(-1, 0); got != 0 {
		t.Errorf("At(-1, 0) = %d, want 0", got)
	}
}

func TestBuildGridPanicsWhenTooSmall(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("BuildGrid should panic when the spiral leaves the grid")
		}
	}()
	BuildGrid(1, Cell{}, SpiralOffsets(2))
}
