package hexgrid

import (
	"reflect"
	"testing"
)

func TestItems(t *testing.T) {
	if got := Items(0); got != nil {
		t.Errorf("Items(0) = %v, want nil", got)
	}
	if got := Items(-3); got != nil {
		t.Errorf("Items(-3) = %v, want nil", got)
	}
	if got, want := Items(4), []int{1, 2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Items(4) = %v, want %v", got, want)
	}
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []Group
	}{
		{"none", 0, []Group{}},
		{"single item", 1, []Group{{1}}},
		{"exact group", 12, []Group{{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}}},
		{
			"spill over",
			13,
			[]Group{
				{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
				{13, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Partition(Items(tt.n))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Partition(Items(%d)) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestPartitionKeepsEveryItemOnce(t *testing.T) {
	for _, n := range []int{1, 11, 12, 13, 24, 25, 100, 1001} {
		groups := Partition(Items(n))
		if want := (n + GroupSize - 1) / GroupSize; len(groups) != want {
			t.Fatalf("n=%d: %d groups, want %d", n, len(groups), want)
		}
		next := 1
		for _, g := range groups {
			for _, id := range g {
				if id == Padding {
					continue
				}
				if id != next {
					t.Fatalf("n=%d: got item %d, want %d", n, id, next)
				}
				next++
			}
		}
		if next != n+1 {
			t.Errorf("n=%d: saw %d items", n, next-1)
		}
	}
}

func TestGroupLen(t *testing.T) {
	groups := Partition(Items(13))
	if got := groups[0].Len(); got != 12 {
		t.Errorf("full group Len() = %d, want 12", got)
	}
	if got := groups[1].Len(); got != 1 {
		t.Errorf("padded group Len() = %d, want 1", got)
	}
}
