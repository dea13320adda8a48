// Package sink renders layouts to images.
//
// [RenderPNG] is the raster renderer: every item becomes a semi-transparent
// diamond tile of the layout's tile footprint, centred on its coordinate
// and labelled with its identifier. Tiles are composited over a transparent
// background in identifier order, so where tiles overlap the later one is
// blended over the earlier one.
//
// [RenderSVG] draws the same picture as vector graphics. [RenderGroupMap]
// draws the group spiral instead of the items: one node per group, pinned
// at its anchor, with edges in visitation order.
//
// All renderers consume bounds and coordinates only, so a layout read back
// from an exported document renders the same as a freshly built one.
// Failures are reported as RENDER_FAILURE.
package sink
