// Package ssm describes the state space realization of a reset element
//
// x'(t) = A x(t) + B w(t)
//
// y(t) = C x(t) + D w(t)
//
// x(t+) = Arho x(t) at reset instants
//
// where Arho is the reset matrix applied to the state whenever the element
// resets. With Arho equal to the identity the resets act as no-ops and the
// element degenerates to the base-linear system (A, B, C, D).
package ssm

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/lukevaneijk/pseudoSensReset/gonumExtensions"
	"gonum.org/v1/gonum/mat"
)

// ErrShape indicates inconsistent state space dimensions.
var ErrShape = errors.New("ssm: inconsistent state space dimensions")

// ResetElement holds the realization of a SISO reset element.
type ResetElement struct {
	// State Dynamics
	A *mat.Dense
	// Input matrix (n by 1)
	B *mat.Dense
	// Observation matrix (1 by n)
	C *mat.Dense
	// Feedthrough (1 by 1)
	D *mat.Dense
	// Reset matrix applied at reset instants
	Arho *mat.Dense
}

// NewResetElement validates the dimensions and returns the realization.
// A and Arho must be n by n, B n by 1, C 1 by n and D 1 by 1.
func NewResetElement(A, B, C, D, Arho *mat.Dense) (*ResetElement, error) {
	if A == nil || B == nil || C == nil || D == nil || Arho == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrShape)
	}
	m, n := A.Dims()
	if m != n {
		return nil, fmt.Errorf("%w: A is %dx%d, want square", ErrShape, m, n)
	}
	if mB, nB := B.Dims(); mB != n || nB != 1 {
		return nil, fmt.Errorf("%w: B is %dx%d, want %dx1", ErrShape, mB, nB, n)
	}
	if mC, nC := C.Dims(); mC != 1 || nC != n {
		return nil, fmt.Errorf("%w: C is %dx%d, want 1x%d", ErrShape, mC, nC, n)
	}
	if mD, nD := D.Dims(); mD != 1 || nD != 1 {
		return nil, fmt.Errorf("%w: D is %dx%d, want 1x1", ErrShape, mD, nD)
	}
	if mR, nR := Arho.Dims(); mR != n || nR != n {
		return nil, fmt.Errorf("%w: Arho is %dx%d, want %dx%d", ErrShape, mR, nR, n, n)
	}
	return &ResetElement{A: A, B: B, C: C, D: D, Arho: Arho}, nil
}

// Order returns the state space order.
func (el *ResetElement) Order() int {
	m, _ := el.A.Dims()
	return m
}

// BaseLinear returns the realization with the reset action disabled, that is
// with Arho replaced by the identity. The linear matrices are shared, not
// copied; they are never mutated by this library.
func (el *ResetElement) BaseLinear() *ResetElement {
	n := el.Order()
	eye := gonumExtensions.Eye(n, n, 0).(*mat.Dense)
	return &ResetElement{A: el.A, B: el.B, C: el.C, D: el.D, Arho: eye}
}

// FrequencyResponse evaluates the base-linear transfer function
//
// H(i omega) = C (i omega I - A)^-1 B + D
//
// at each frequency (Hz). Each frequency bin is independent and evaluated in
// its own goroutine.
func (el *ResetElement) FrequencyResponse(freqs []float64) ([]complex128, error) {
	res := make([]complex128, len(freqs))
	errs := make([]error, len(freqs))

	var wg sync.WaitGroup
	wg.Add(len(freqs))
	for index, f := range freqs {
		go func(k int, f float64) {
			defer wg.Done()
			res[k], errs[k] = el.respondAt(2 * math.Pi * f)
		}(index, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// respondAt evaluates the base-linear response at a single angular frequency.
func (el *ResetElement) respondAt(omega float64) (complex128, error) {
	n := el.Order()
	zero := mat.NewVecDense(n, nil)
	xre, xim, err := gonumExtensions.SolveShifted(el.A, omega, el.B.ColView(0), zero)
	if err != nil {
		return 0, err
	}
	var yre, yim mat.VecDense
	yre.MulVec(el.C, xre)
	yim.MulVec(el.C, xim)
	return complex(yre.AtVec(0)+el.D.At(0, 0), yim.AtVec(0)), nil
}
