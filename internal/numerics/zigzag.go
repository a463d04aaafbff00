/*
NAME
  zigzag.go

DESCRIPTION
  zigzag.go provides the fixed zigzag scan orders used to map a linear
  run of MDCT bins onto an 8x8 or 4x4 DCT coefficient array.

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

package numerics

// Zigzag8x8 maps scan position (0..63) to a flat row-major index (0..63)
// in an 8x8 array, in the standard zigzag order used by block transform
// codecs.
var Zigzag8x8 = computeZigzag(8)

// Zigzag4x4 maps scan position (0..15) to a flat row-major index
// (0..15) in a 4x4 array.
var Zigzag4x4 = computeZigzag(4)

// computeZigzag generates the standard upper-left-to-lower-right zigzag
// traversal order of an n x n grid, returning scanIndex -> flatIndex.
func computeZigzag(n int) []int {
	order := make([]int, 0, n*n)
	row, col := 0, 0
	goingUp := true
	for len(order) < n*n {
		order = append(order, row*n+col)
		if goingUp {
			if col == n-1 {
				row++
				goingUp = false
			} else if row == 0 {
				col++
				goingUp = false
			} else {
				row--
				col++
			}
		} else {
			if row == n-1 {
				col++
				goingUp = true
			} else if col == 0 {
				row++
				goingUp = true
			} else {
				row++
				col--
			}
		}
	}
	return order
}

// ScanToGrid places n*n values from scan order into a flat row-major
// grid using the given scan-order table (Zigzag8x8 or Zigzag4x4).
func ScanToGrid(scan []int, values []float64) []float64 {
	grid := make([]float64, len(scan))
	for i, flat := range scan {
		if i < len(values) {
			grid[flat] = values[i]
		}
	}
	return grid
}

// GridToScan reads n*n values out of a flat row-major grid in scan
// order using the given scan-order table.
func GridToScan(scan []int, grid []float64) []float64 {
	values := make([]float64, len(scan))
	for i, flat := range scan {
		values[i] = grid[flat]
	}
	return values
}
