package gonumExtensions

import (
	"gonum.org/v1/gonum/mat"
)

// SolveShifted solves the complex-shifted linear system
//
// (i sigma I - A) x = bre + i bim
//
// for a real square matrix A. gonum carries no complex factorizations, so the
// system is rewritten over the reals using the standard embedding
//
// [-A  -sigma I] [Re x]   [bre]
// [sigma I  -A ] [Im x] = [bim]
//
// and solved as a single 2n by 2n real system. Returns the real and imaginary
// parts of x, or the factorization error when i sigma I - A is singular.
func SolveShifted(A mat.Matrix, sigma float64, bre, bim mat.Vector) (*mat.VecDense, *mat.VecDense, error) {
	n, _ := A.Dims()
	emb := mat.NewDense(2*n, 2*n, nil)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			a := A.At(row, col)
			emb.Set(row, col, -a)
			emb.Set(n+row, n+col, -a)
		}
		emb.Set(row, n+row, -sigma)
		emb.Set(n+row, row, sigma)
	}

	rhs := mat.NewVecDense(2*n, nil)
	for row := 0; row < n; row++ {
		rhs.SetVec(row, bre.AtVec(row))
		rhs.SetVec(n+row, bim.AtVec(row))
	}

	var sol mat.VecDense
	if err := sol.SolveVec(emb, rhs); err != nil {
		return nil, nil, err
	}

	xre := mat.NewVecDense(n, nil)
	xim := mat.NewVecDense(n, nil)
	for row := 0; row < n; row++ {
		xre.SetVec(row, sol.AtVec(row))
		xim.SetVec(row, sol.AtVec(n+row))
	}
	return xre, xim, nil
}
