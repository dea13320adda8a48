package hexgrid

// GroupSize is the number of item slots in a group.
const GroupSize = 12

// Padding fills the unused slots of the last group. It is never placed.
const Padding = 0

// Group is a fixed-size batch of item identifiers in original order.
type Group [GroupSize]int

// Len returns the number of real (non-padding) items in the group.
func (g Group) Len() int {
	n := 0
	for _, id := range g {
		if id != Padding {
			n++
		}
	}
	return n
}

// Items returns the identifiers 1..n. It returns nil for n <= 0.
func Items(n int) []int {
	if n <= 0 {
		return nil
	}
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

// Partition splits items into groups of GroupSize, keeping their order.
// The last group is right-padded with Padding. No items yields no groups.
func Partition(items []int) []Group {
	groups := make([]Group, 0, (len(items)+GroupSize-1)/GroupSize)
	for start := 0; start < len(items); start += GroupSize {
		var g Group
		copy(g[:], items[start:min(start+GroupSize, len(items))])
		groups = append(groups, g)
	}
	return groups
}
