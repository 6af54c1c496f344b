// Package pseudosens computes frequency-domain performance bounds for reset
// control systems. It ties the subpackages together: lure reduces the block
// diagram to its canonical two-port form, hosidf provides the reset element's
// harmonic describing functions, and sensitivity synthesizes the closed-loop
// HOSISFs and the pseudo-sensitivity magnitude per input frequency.
package pseudosens

import (
	"github.com/lukevaneijk/pseudoSensReset/lure"
	"github.com/lukevaneijk/pseudoSensReset/sensitivity"
	"github.com/lukevaneijk/pseudoSensReset/ssm"
)

// PseudoSensitivity runs the full pipeline: five controller FRFs and a plant
// FRF are reduced to the canonical Lure form, then the pseudo-sensitivity of
// the closed loop around the reset element is computed over the harmonic
// frequency grid freqs. The returned two-port is the intermediate Lure form,
// useful when several engine invocations share one conversion.
func PseudoSensitivity(freqs []float64, el *ssm.ResetElement, c1, c2, c3, c4, c5, plant []complex128, opt sensitivity.Options) (*sensitivity.Result, *lure.TwoPort, error) {
	g, err := lure.Convert(c1, c2, c3, c4, c5, plant)
	if err != nil {
		return nil, nil, err
	}
	res, err := sensitivity.Compute(freqs, el, g, opt)
	if err != nil {
		return nil, nil, err
	}
	return res, g, nil
}
