package hosidf

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/lukevaneijk/pseudoSensReset/ssm"
	"gonum.org/v1/gonum/mat"
)

// firstOrderLag returns 1/(s+1) with reset matrix rho.
func firstOrderLag(t *testing.T, rho float64) *ssm.ResetElement {
	t.Helper()
	el, err := ssm.NewResetElement(
		mat.NewDense(1, 1, []float64{-1}),
		mat.NewDense(1, 1, []float64{1}),
		mat.NewDense(1, 1, []float64{1}),
		mat.NewDense(1, 1, []float64{0}),
		mat.NewDense(1, 1, []float64{rho}),
	)
	if err != nil {
		t.Fatalf("NewResetElement: %v", err)
	}
	return el
}

// thetaLag is the scalar Theta_D of the lag element, written out by hand:
// with Lambda = omega^2+1, E = e^(-pi/omega), Delta = 1+E, Delta_r = 1+rho E,
// Theta_D = -(2 omega^2/pi) Delta (rho Delta - Delta_r) / (Delta_r Lambda).
func thetaLag(rho, omega float64) float64 {
	lambda := omega*omega + 1
	e := math.Exp(-math.Pi / omega)
	delta := 1 + e
	deltaR := 1 + rho*e
	return -(2 * omega * omega / math.Pi) * delta * (rho*delta - deltaR) / (deltaR * lambda)
}

func TestEvenOrdersVanish(t *testing.T) {
	el := firstOrderLag(t, 0.5)
	freqs := []float64{1, 2, 3, 4, 5}
	for _, n := range []int{2, 4, 6, 10} {
		res, err := Compute(el, freqs, n)
		if err != nil {
			t.Fatalf("Compute n=%d: %v", n, err)
		}
		for k, v := range res {
			if v != 0 {
				t.Errorf("H_%d at bin %d = %v, want exactly 0", n, k, v)
			}
		}
	}
}

// With Arho = I the reset degenerates to the identity map, so the order 1
// describing function must equal the direct LTI frequency response.
func TestBaseLinearMatchesFrequencyResponse(t *testing.T) {
	el := firstOrderLag(t, 0.5).BaseLinear()
	freqs := []float64{0.5, 1, 1.5, 2, 2.5}

	h1, err := Compute(el, freqs, 1)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	ref, err := el.FrequencyResponse(freqs)
	if err != nil {
		t.Fatalf("FrequencyResponse: %v", err)
	}
	for k := range freqs {
		if cmplx.Abs(h1[k]-ref[k]) > 1e-10 {
			t.Errorf("bin %d: H_1 = %v, LTI response = %v", k, h1[k], ref[k])
		}
	}
}

// Scalar closed forms for the lag element:
// H_1 = (1 + i Theta_D)/(1 + i omega), H_3 = i Theta_D/(1 + 3 i omega).
func TestFirstOrderLagClosedForm(t *testing.T) {
	rho := 0.5
	el := firstOrderLag(t, rho)
	freqs := []float64{1, 2, 3}

	h1, err := Compute(el, freqs, 1)
	if err != nil {
		t.Fatalf("Compute n=1: %v", err)
	}
	h3, err := Compute(el, freqs, 3)
	if err != nil {
		t.Fatalf("Compute n=3: %v", err)
	}
	for k, f := range freqs {
		omega := 2 * math.Pi * f
		theta := thetaLag(rho, omega)

		want1 := complex(1, theta) / complex(1, omega)
		if cmplx.Abs(h1[k]-want1) > 1e-10 {
			t.Errorf("H_1 at %v Hz = %v, want %v", f, h1[k], want1)
		}
		want3 := complex(0, theta) / complex(1, 3*omega)
		if cmplx.Abs(h3[k]-want3) > 1e-10 {
			t.Errorf("H_3 at %v Hz = %v, want %v", f, h3[k], want3)
		}
		if h3[k] == 0 {
			t.Errorf("H_3 at %v Hz is zero; resetting element must generate odd harmonics", f)
		}
	}
}

func TestInvalidInput(t *testing.T) {
	el := firstOrderLag(t, 0.5)

	if _, err := Compute(el, []float64{1, -2, 3}, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative frequency: err = %v, want ErrInvalidInput", err)
	}
	if _, err := Compute(el, []float64{1, 0, 3}, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero frequency: err = %v, want ErrInvalidInput", err)
	}
	if _, err := Compute(el, []float64{1, 2}, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("order 0: err = %v, want ErrInvalidInput", err)
	}
	if _, err := Compute(el, []float64{1, 2}, -3); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative order: err = %v, want ErrInvalidInput", err)
	}
	if _, err := Compute(el, nil, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty grid: err = %v, want ErrInvalidInput", err)
	}
	if _, err := Compute(nil, []float64{1}, 1); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil element: err = %v, want ErrInvalidInput", err)
	}
}
