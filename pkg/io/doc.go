// Package io reads and writes exported layouts.
//
// # Format
//
// A layout document has two required fields and one optional one:
//
//	{
//	  "canvas_dimensions": [2800, 875],
//	  "application_coordinates": {
//	    "1": [875, 175],
//	    "13": [2450, 175]
//	  },
//	  "groups": [
//	    [[4, 3, 2, 1], [8, 7, 6, 5], [12, 11, 10, 9]],
//	    [[0, 0, 0, 13], [0, 0, 0, 0], [0, 0, 0, 0]]
//	  ]
//	}
//
// canvas_dimensions is the canvas width and height in whole pixels.
// application_coordinates maps each item identifier to the centre of its
// tile. groups holds the 3×4 item pattern of every group in spiral order,
// with 0 marking padding; readers ignore it when absent.
//
// The same document can be written as YAML with [WriteYAML] and
// [ExportYAML]. Coordinates are written in shortest round-trip form, so a
// document read back with [ReadJSON] or [ReadYAML] reproduces the original
// values exactly.
//
// # Errors
//
// Write failures are reported as EXPORT_FAILURE. Documents that do not
// decode or fail validation are reported as INVALID_FORMAT, and a missing
// input file as FILE_NOT_FOUND.
//
// # Files
//
// [ExportJSON] and [ExportYAML] write to a temporary file next to the target
// and rename it into place, so readers never observe a partial document.
package io
