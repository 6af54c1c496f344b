// Package hosidf computes higher-order sinusoidal-input describing functions
// (HOSIDFs) of a reset element. The n-th order describing function H_n(omega)
// is the complex gain from a sinusoidal input at omega to the n-th harmonic of
// the element's steady-state output. For reset elements of this class only odd
// harmonics appear; even orders are identically zero.
package hosidf

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/lukevaneijk/pseudoSensReset/gonumExtensions"
	"github.com/lukevaneijk/pseudoSensReset/ssm"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidInput indicates malformed arguments, rejected before any
	// numerical work starts.
	ErrInvalidInput = errors.New("hosidf: invalid input")
	// ErrSingular indicates a required matrix inverse does not exist at one
	// of the evaluated frequencies (non-resonance precondition violated).
	ErrSingular = errors.New("hosidf: singular matrix")
)

// Compute evaluates the n-th order describing function of the reset element at
// each frequency (Hz). All frequencies must be strictly positive and n must be
// a positive integer. Even orders return an all-zero slice without touching
// the matrices. Each frequency bin is independent and evaluated in its own
// goroutine; a singularity at any bin fails the whole call.
func Compute(el *ssm.ResetElement, freqs []float64, n int) ([]complex128, error) {
	if el == nil {
		return nil, fmt.Errorf("%w: nil reset element", ErrInvalidInput)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: harmonic order %d, want a positive integer", ErrInvalidInput, n)
	}
	if len(freqs) == 0 {
		return nil, fmt.Errorf("%w: empty frequency grid", ErrInvalidInput)
	}
	for k, f := range freqs {
		if !(f > 0) {
			return nil, fmt.Errorf("%w: frequency %v at index %d, want > 0", ErrInvalidInput, f, k)
		}
	}

	res := make([]complex128, len(freqs))
	if n%2 == 0 {
		// Even harmonics of a reset element vanish identically.
		return res, nil
	}

	errs := make([]error, len(freqs))
	var wg sync.WaitGroup
	wg.Add(len(freqs))
	for index, f := range freqs {
		go func(k int, f float64) {
			defer wg.Done()
			res[k], errs[k] = describeAt(el, 2*math.Pi*f, n)
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

// describeAt evaluates the order n describing function at a single angular
// frequency omega following the HOSIDF theorem for reset elements:
//
// Lambda = omega^2 I + A^2
//
// Delta = I + e^(pi A / omega)
//
// Delta_r = I + Arho e^(pi A / omega)
//
// Gamma_r = Delta_r^-1 Arho Delta Lambda^-1
//
// Theta_D = -(2 omega^2 / pi) Delta (Gamma_r - Lambda^-1)
//
// H_1 = C (i omega I - A)^-1 (I + i Theta_D) B + D
//
// H_n = C (i n omega I - A)^-1 (i Theta_D) B, n odd, n > 1
func describeAt(el *ssm.ResetElement, omega float64, n int) (complex128, error) {
	order := el.Order()
	eye := gonumExtensions.Eye(order, order, 0)

	// E = e^(pi A / omega)
	var expA mat.Dense
	expA.Scale(math.Pi/omega, el.A)
	expA.Exp(&expA)

	// Lambda = omega^2 I + A^2 and its inverse
	var lambda, lambdaInv mat.Dense
	lambda.Mul(el.A, el.A)
	lambda.Apply(func(i, j int, v float64) float64 {
		if i == j {
			return v + omega*omega
		}
		return v
	}, &lambda)
	if err := lambdaInv.Inverse(&lambda); err != nil {
		return 0, fmt.Errorf("%w: Lambda at omega=%v: %v", ErrSingular, omega, err)
	}

	// Delta = I + E, Delta_r = I + Arho E
	var delta, deltaR, deltaRInv mat.Dense
	delta.Add(eye, &expA)
	deltaR.Mul(el.Arho, &expA)
	deltaR.Add(eye, &deltaR)
	if err := deltaRInv.Inverse(&deltaR); err != nil {
		return 0, fmt.Errorf("%w: Delta_r at omega=%v: %v", ErrSingular, omega, err)
	}

	// Gamma_r = Delta_r^-1 Arho Delta Lambda^-1
	var tmp0, tmp1, gammaR mat.Dense
	tmp0.Mul(&deltaRInv, el.Arho)
	tmp1.Mul(&tmp0, &delta)
	gammaR.Mul(&tmp1, &lambdaInv)

	// Theta_D = -(2 omega^2 / pi) Delta (Gamma_r - Lambda^-1)
	var diff, thetaD mat.Dense
	diff.Sub(&gammaR, &lambdaInv)
	thetaD.Mul(&delta, &diff)
	thetaD.Scale(-2*omega*omega/math.Pi, &thetaD)

	// Theta_D B enters as the imaginary part of the input vector.
	var thetaB mat.VecDense
	thetaB.MulVec(&thetaD, el.B.ColView(0))

	var bre mat.Vector = mat.NewVecDense(order, nil)
	sigma := float64(n) * omega
	if n == 1 {
		bre = el.B.ColView(0)
	}
	xre, xim, err := gonumExtensions.SolveShifted(el.A, sigma, bre, &thetaB)
	if err != nil {
		return 0, fmt.Errorf("%w: i n omega I - A at omega=%v, n=%d: %v", ErrSingular, omega, n, err)
	}

	var yre, yim mat.VecDense
	yre.MulVec(el.C, xre)
	yim.MulVec(el.C, xim)
	h := complex(yre.AtVec(0), yim.AtVec(0))
	if n == 1 {
		h += complex(el.D.At(0, 0), 0)
	}
	return h, nil
}
