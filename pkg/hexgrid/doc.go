// Package hexgrid computes the hexagonal-spiral layout of numbered items.
//
// # Overview
//
// Items 1..N are packed into groups of [GroupSize]. The groups are arranged
// in a hexagonal spiral around a centre cell, and the items of each group
// are laid out in a 3×4 serpentine pattern whose horizontal direction
// depends on the group's parity. The result is a [Layout]: a pixel
// coordinate per item plus the canvas size needed to draw all of them.
//
// The computation runs in five stages, each consuming only the output of
// the previous one:
//
//	Items → Partition → SpiralOffsets → BuildGrid → Place → Normalize
//
// [Build] runs all of them for a given item count.
//
// # Spiral Indexing
//
// The group grid is square with an odd side 2k+1, where k is the smallest
// ring count whose cumulative capacity (6 + 12 + ... + 6k) holds every
// group except the centre one. [SpiralOffsets] returns one unit step per
// group; applying them cumulatively from the centre visits ring 1 (groups
// 2..7), then ring 2 (groups 8..19), and so on. For 19 groups:
//
//	 0  0 19  8  9
//	 0 18  7  2 10
//	17  6  1  3 11
//	16  5  4 12  0
//	15 14 13  0  0
//
// # Parity
//
// A group is "odd" when its cell sits at an even index of the row-major
// flattened grid. Odd groups lay their rows out right-to-left, even groups
// left-to-right, which lets neighbouring groups interlock. [BuildGrid]
// records the parity of every group as it stamps the grid, so lookups are
// constant time.
//
// # Coordinates
//
// Coordinates are tile centres in pixels with Y growing downward. Every
// tile is [TileWidth]×[TileHeight]. After placement the coordinates are
// shifted so the smallest one sits one tile away from the origin, and the
// canvas extends one tile beyond the largest.
//
// All functions are pure and deterministic: the same item count always
// produces the same layout.
package hexgrid
