// Package gonumExtensions collects small helpers on top of gonum/mat that the
// rest of the library needs repeatedly: common matrix constructors, NaN/Inf
// scanning and solving complex-shifted linear systems with real coefficient
// matrices.
package gonumExtensions

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Ones returns a (m by n) matrix filled with ones
func Ones(m, n int) mat.Matrix {
	return Full(m, n, 1.)
}

// Full returns a (m by n) matrix filled with value
func Full(m, n int, value float64) mat.Matrix {
	data := make([]float64, m*n)
	for index := range data {
		data[index] = value
	}
	return mat.NewDense(m, n, data)
}

// Eye returns a (m by n) matrix with ones on the k-th diagonal and zeros
// elsewhere. k = 0 is the main diagonal, k > 0 lies above it, k < 0 below.
func Eye(m, n, k int) mat.Matrix {
	res := mat.NewDense(m, n, nil)
	for row := 0; row < m; row++ {
		column := row + k
		if column >= 0 && column < n {
			res.Set(row, column, 1)
		}
	}
	return res
}

// NANORINF checks if there are any NAN or INF in matrix
func NANORINF(matrix mat.Matrix) bool {
	m, n := matrix.Dims()
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			if math.IsNaN(matrix.At(row, col)) || math.IsInf(matrix.At(row, col), 0) {
				return true
			}
		}
	}
	return false
}
