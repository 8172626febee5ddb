// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ArgMax returns the (row, column) of the maximum value in a matrix.
// Elements are enumerated in row-major order, and if multiple equal max
// values exist, the first one found is returned.
func ArgMax(X mat.Matrix) (row, col int) {
	r, c := X.Dims()
	max := X.At(0, 0)

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := X.At(i, j); v > max {
				max = v
				row, col = i, j
			}
		}
	}
	return
}

// ArgMaxRow returns the column of the maximum value in row i of a
// matrix, breaking ties by the first column found
func ArgMaxRow(X mat.Matrix, i int) int {
	_, c := X.Dims()
	max, idx := X.At(i, 0), 0

	for j := 1; j < c; j++ {
		if v := X.At(i, j); v > max {
			max = v
			idx = j
		}
	}
	return idx
}

// MaxAbsDiff returns the largest absolute element-wise difference
// between two matrices of equal shape
func MaxAbsDiff(a, b mat.Matrix) float64 {
	r, c := a.Dims()
	if br, bc := b.Dims(); br != r || bc != c {
		panic(fmt.Sprintf("maxAbsDiff: shape mismatch (%d, %d) != (%d, %d)",
			r, c, br, bc))
	}

	var diff float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			diff = math.Max(diff, math.Abs(a.At(i, j)-b.At(i, j)))
		}
	}
	return diff
}
