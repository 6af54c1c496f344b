package gonumExtensions

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestEye(t *testing.T) {
	eye := Eye(3, 3, 0)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			want := 0.
			if row == col {
				want = 1.
			}
			if eye.At(row, col) != want {
				t.Errorf("Eye(3,3,0) at (%d,%d) = %v, want %v", row, col, eye.At(row, col), want)
			}
		}
	}
	upper := Eye(3, 3, 1)
	if upper.At(0, 1) != 1 || upper.At(1, 2) != 1 || upper.At(0, 0) != 0 {
		t.Errorf("Eye(3,3,1) misplaced diagonal:\n%v", mat.Formatted(upper))
	}
}

func TestFullAndOnes(t *testing.T) {
	ones := Ones(2, 3)
	m, n := ones.Dims()
	if m != 2 || n != 3 {
		t.Fatalf("Ones(2,3) dims = %dx%d", m, n)
	}
	if ones.At(1, 2) != 1 {
		t.Errorf("Ones entry = %v, want 1", ones.At(1, 2))
	}
	if Full(2, 2, 3.5).At(0, 1) != 3.5 {
		t.Errorf("Full entry mismatch")
	}
}

func TestNANORINF(t *testing.T) {
	clean := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if NANORINF(clean) {
		t.Error("clean matrix flagged")
	}
	dirty := mat.NewDense(2, 2, []float64{1, math.NaN(), 3, 4})
	if !NANORINF(dirty) {
		t.Error("NaN entry not flagged")
	}
	inf := mat.NewDense(2, 2, []float64{1, 2, math.Inf(1), 4})
	if !NANORINF(inf) {
		t.Error("Inf entry not flagged")
	}
}

// Scalar case: (i sigma - a) x = b has the closed form x = b / (i sigma - a).
func TestSolveShiftedScalar(t *testing.T) {
	a := -2.
	sigma := 3.
	b := 1.5
	A := mat.NewDense(1, 1, []float64{a})
	bre := mat.NewVecDense(1, []float64{b})
	bim := mat.NewVecDense(1, nil)

	xre, xim, err := SolveShifted(A, sigma, bre, bim)
	if err != nil {
		t.Fatalf("SolveShifted: %v", err)
	}

	want := complex(b, 0) / complex(-a, sigma)
	got := complex(xre.AtVec(0), xim.AtVec(0))
	if math.Abs(real(got)-real(want)) > 1e-12 || math.Abs(imag(got)-imag(want)) > 1e-12 {
		t.Errorf("x = %v, want %v", got, want)
	}
}

// Residual check on a 2 by 2 system with a fully complex right-hand side.
func TestSolveShiftedResidual(t *testing.T) {
	A := mat.NewDense(2, 2, []float64{0, 1, -4, -0.5})
	sigma := 1.7
	bre := mat.NewVecDense(2, []float64{1, -2})
	bim := mat.NewVecDense(2, []float64{0.5, 3})

	xre, xim, err := SolveShifted(A, sigma, bre, bim)
	if err != nil {
		t.Fatalf("SolveShifted: %v", err)
	}

	// (i sigma I - A)(xre + i xim) must reproduce bre + i bim.
	for row := 0; row < 2; row++ {
		var re, im float64
		for col := 0; col < 2; col++ {
			re -= A.At(row, col) * xre.AtVec(col)
			im -= A.At(row, col) * xim.AtVec(col)
		}
		re -= sigma * xim.AtVec(row)
		im += sigma * xre.AtVec(row)
		if math.Abs(re-bre.AtVec(row)) > 1e-12 || math.Abs(im-bim.AtVec(row)) > 1e-12 {
			t.Errorf("residual at row %d: got (%v, %v), want (%v, %v)", row, re, im, bre.AtVec(row), bim.AtVec(row))
		}
	}
}
