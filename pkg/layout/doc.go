// Package layout partitions a rectangle into blocks whose areas are
// proportional to a sequence of weights.
//
// # Overview
//
// [Pack] is the core of clockblocks. Given weights w_1..w_n and a frame,
// it returns one [Block] per weight, in input order, such that the blocks
// tile the frame exactly and never overlap:
//
//	blocks, err := layout.Pack([]float64{1, 3}, layout.Canvas(400, 100))
//	// blocks[0]: pos (0,0)   100x100
//	// blocks[1]: pos (100,0) 300x100
//
// # Conventions
//
// Coordinates grow right and down. A block's Pos is its top-left corner and
// its Size is its area (Width * Height); Width and Height are carried
// alongside so renderers never have to divide.
//
// # Axes
//
// The slicing direction is declared with [WithAxis]:
//
//   - [AxisHorizontal] (default): slices left to right at full height.
//   - [AxisVertical]: slices top to bottom at full width.
//   - [AxisAlternate]: slice-and-dice. Block i is cut from the remaining
//     rectangle horizontally for even i and vertically for odd i.
//
// Edges are derived from running prefix sums rather than accumulated
// lengths, so positions do not drift over long sequences and the last
// block always ends exactly on the frame's far edge.
package layout
