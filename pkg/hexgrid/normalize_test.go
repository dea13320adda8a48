package hexgrid

import "testing"

func TestNormalize(t *testing.T) {
	coords, bounds := Normalize(Coords{
		1: {-100, 50},
		2: {200, -25.5},
	})

	if got, want := coords[1], (Point{350, 250.5}); got != want {
		t.Errorf("coords[1] = %v, want %v", got, want)
	}
	if got, want := coords[2], (Point{650, 175}); got != want {
		t.Errorf("coords[2] = %v, want %v", got, want)
	}
	// 650+350 wide, 250.5+175 high truncated.
	if want := (Bounds{1000, 425}); bounds != want {
		t.Errorf("bounds = %v, want %v", bounds, want)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := Coords{1: {10, 10}}
	Normalize(in)
	if in[1] != (Point{10, 10}) {
		t.Errorf("input mutated: %v", in[1])
	}
}

// Empty input comes from a zero item count; two margins per axis is the
// chosen extrapolation.
func TestNormalizeEmpty(t *testing.T) {
	coords, bounds := Normalize(nil)
	if len(coords) != 0 {
		t.Errorf("coords = %v, want empty", coords)
	}
	if want := (Bounds{700, 350}); bounds != want {
		t.Errorf("bounds = %v, want %v", bounds, want)
	}
}
