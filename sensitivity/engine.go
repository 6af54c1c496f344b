// Package sensitivity synthesizes higher-order sinusoidal-input sensitivity
// functions (HOSISFs) of a closed-loop reset control system and extracts the
// pseudo-sensitivity: the worst-case magnitude of the performance output over
// one period of a unit sinusoidal input, per input frequency.
//
// The pipeline runs in three stages. Stage A evaluates the reset element's
// describing functions per harmonic order. Stage B propagates them through the
// four canonical Lure paths; the fundamental is computed first since every
// higher order feeds on it. Stage C superposes the harmonic contributions in
// the time domain and takes the peak over one fundamental period.
package sensitivity

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/lukevaneijk/pseudoSensReset/hosidf"
	"github.com/lukevaneijk/pseudoSensReset/lure"
	"github.com/lukevaneijk/pseudoSensReset/signal"
	"github.com/lukevaneijk/pseudoSensReset/ssm"
)

// ErrInvalidInput indicates malformed arguments or configuration, rejected
// before any numerical work starts.
var ErrInvalidInput = errors.New("sensitivity: invalid input")

// DefaultSamplesPerHighestHarmonic is the default time-domain sampling density
// used for peak extraction.
const DefaultSamplesPerHighestHarmonic = 100

// gridTolerance is the relative tolerance for the harmonic-grid invariant
// freqs[k] = (k+1) freqs[0].
const gridTolerance = 1e-9

// Options configures a pipeline invocation. The zero value selects the
// defaults.
type Options struct {
	// MaxHarmonicOrder caps the number of harmonic orders considered.
	// Zero means as many as the grid supports (M). Must not exceed M.
	MaxHarmonicOrder int
	// SamplesPerHighestHarmonic is the number of time samples per period of
	// the highest harmonic used in peak reconstruction. Zero means the
	// default of 100; higher is more accurate and proportionally slower.
	SamplesPerHighestHarmonic int
}

// Result carries the outputs of one pipeline invocation.
type Result struct {
	// AbsSinf is the pseudo-sensitivity magnitude per input frequency.
	AbsSinf []float64
	// Swz maps (order, fundamental index) to the w -> z sensitivity.
	Swz *Spectrum
	// Swy maps (order, fundamental index) to the w -> y sensitivity.
	Swy *Spectrum
}

// Compute runs the full pipeline for a reset element in the canonical Lure
// loop g over the harmonic frequency grid freqs (Hz, strictly positive,
// freqs[k] = (k+1) freqs[0]).
func Compute(freqs []float64, el *ssm.ResetElement, g *lure.TwoPort, opt Options) (*Result, error) {
	m := len(freqs)
	if err := validate(freqs, el, g, opt); err != nil {
		return nil, err
	}
	maxOrder := opt.MaxHarmonicOrder
	if maxOrder == 0 {
		maxOrder = m
	}
	samples := opt.SamplesPerHighestHarmonic
	if samples == 0 {
		samples = DefaultSamplesPerHighestHarmonic
	}

	// Stage A: describing functions per order, plus the base-linear response
	// used by the closed-loop recursion at higher orders.
	hn := make([][]complex128, maxOrder)
	for n := 1; n <= maxOrder; n++ {
		row, err := hosidf.Compute(el, freqs, n)
		if err != nil {
			return nil, err
		}
		hn[n-1] = row
	}
	rbl, err := hosidf.Compute(el.BaseLinear(), freqs, 1)
	if err != nil {
		return nil, err
	}

	// Stage B: HOSISF synthesis. The fundamental must complete for all bins
	// before any higher order starts, since every n > 1 reads Swy[1,:].
	swz := newSpectrum(m, maxOrder)
	swy := newSpectrum(m, maxOrder)
	for k := 1; k <= m; k++ {
		h1 := hn[0][k-1]
		sy := g.Gwy[k-1] / (1 - g.Guy[k-1]*h1)
		swy.set(1, k, sy)
		swz.set(1, k, g.Gwz[k-1]+g.Guz[k-1]*h1*sy)
	}
	for n := 2; n <= maxOrder; n++ {
		for k := 1; k <= m/n; k++ {
			// kn indexes the harmonic frequency n f_k on the grid.
			kn := n * k
			s1, _ := swy.At(1, k)
			shift := cmplx.Exp(complex(0, float64(n-1)*cmplx.Phase(s1)))
			dummy := hn[n-1][k-1] * s1 * shift / (1 - g.Guy[kn-1]*rbl[kn-1])
			swy.set(n, k, g.Guy[kn-1]*dummy)
			swz.set(n, k, g.Guz[kn-1]*dummy)
		}
	}

	// Stage C: per-bin peak extraction over one fundamental period. Bins are
	// independent; fan out.
	absSinf := make([]float64, m)
	var wg sync.WaitGroup
	wg.Add(m)
	for k := 1; k <= m; k++ {
		go func(k int) {
			defer wg.Done()
			nMax := maxOrder
			if m/k < nMax {
				nMax = m / k
			}
			components := make([]signal.Harmonic, 0, nMax)
			for n := 1; n <= nMax; n++ {
				v, ok := swz.At(n, k)
				if !ok {
					continue
				}
				components = append(components, signal.Harmonic{
					Order:     n,
					Amplitude: cmplx.Abs(v),
					Phase:     cmplx.Phase(v),
				})
			}
			omega := 2 * math.Pi * freqs[k-1]
			perf := signal.Superposition(components, omega)
			absSinf[k-1] = signal.Peak(perf, 1/freqs[k-1], samples*nMax)
		}(k)
	}
	wg.Wait()

	return &Result{AbsSinf: absSinf, Swz: swz, Swy: swy}, nil
}

func validate(freqs []float64, el *ssm.ResetElement, g *lure.TwoPort, opt Options) error {
	m := len(freqs)
	if m == 0 {
		return fmt.Errorf("%w: empty frequency grid", ErrInvalidInput)
	}
	if el == nil {
		return fmt.Errorf("%w: nil reset element", ErrInvalidInput)
	}
	if g == nil {
		return fmt.Errorf("%w: nil Lure two-port", ErrInvalidInput)
	}
	for k, f := range freqs {
		if !(f > 0) {
			return fmt.Errorf("%w: frequency %v at index %d, want > 0", ErrInvalidInput, f, k)
		}
		want := float64(k+1) * freqs[0]
		if math.Abs(f-want) > gridTolerance*want {
			return fmt.Errorf("%w: freqs[%d] = %v breaks the harmonic grid, want %v", ErrInvalidInput, k, f, want)
		}
	}
	for name, frf := range map[string][]complex128{
		"Gwz": g.Gwz, "Guz": g.Guz, "Gwy": g.Gwy, "Guy": g.Guy,
	} {
		if len(frf) != m {
			return fmt.Errorf("%w: %s has %d bins, want %d", ErrInvalidInput, name, len(frf), m)
		}
	}
	if opt.MaxHarmonicOrder < 0 || opt.MaxHarmonicOrder > m {
		return fmt.Errorf("%w: MaxHarmonicOrder %d, want 1..%d (or 0 for the grid limit)", ErrInvalidInput, opt.MaxHarmonicOrder, m)
	}
	if opt.SamplesPerHighestHarmonic < 0 {
		return fmt.Errorf("%w: SamplesPerHighestHarmonic %d, want positive (or 0 for the default)", ErrInvalidInput, opt.SamplesPerHighestHarmonic)
	}
	return nil
}
