// Package lure reduces the block diagram of a reset control system, five SISO
// linear controllers around a plant with the reset element in feedback, to its
// canonical Lure form: a linear two-port G connecting the external input w and
// the reset element output u to the performance output z and the reset element
// input y. All algebra is elementwise per frequency bin; there is no coupling
// between bins.
package lure

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates empty or length-mismatched FRF sequences.
var ErrInvalidInput = errors.New("lure: invalid input")

// TwoPort holds the four canonical transfer paths of the Lure form, one
// complex value per frequency bin.
type TwoPort struct {
	// w -> z
	Gwz []complex128
	// u -> z
	Guz []complex128
	// w -> y
	Gwy []complex128
	// u -> y
	Guy []complex128
}

// Len returns the number of frequency bins.
func (g *TwoPort) Len() int {
	return len(g.Gwz)
}

// Convert reduces the controller and plant frequency responses to the four
// canonical paths. Per frequency bin
//
// Cpre = C1 C2, Cpar = C4 / (C2 C3), Cpos = C3 C5
//
// Gwz = 1 / (1 + P Cpos Cpar Cpre)
//
// Guz = -P Cpos Gwz
//
// Gwy = Cpre Gwz
//
// Guy = Cpre Guz
//
// Division by a zero response propagates as Inf/NaN entries per IEEE rules;
// that is a modeling error for the caller to detect, not an error here.
func Convert(c1, c2, c3, c4, c5, plant []complex128) (*TwoPort, error) {
	m := len(c1)
	if m == 0 {
		return nil, fmt.Errorf("%w: empty frequency response", ErrInvalidInput)
	}
	for name, frf := range map[string][]complex128{
		"C2": c2, "C3": c3, "C4": c4, "C5": c5, "plant": plant,
	} {
		if len(frf) != m {
			return nil, fmt.Errorf("%w: %s has %d bins, want %d", ErrInvalidInput, name, len(frf), m)
		}
	}

	g := &TwoPort{
		Gwz: make([]complex128, m),
		Guz: make([]complex128, m),
		Gwy: make([]complex128, m),
		Guy: make([]complex128, m),
	}
	for k := 0; k < m; k++ {
		cpre := c1[k] * c2[k]
		cpar := c4[k] / (c2[k] * c3[k])
		cpos := c3[k] * c5[k]

		g.Gwz[k] = 1 / (1 + plant[k]*cpos*cpar*cpre)
		g.Guz[k] = -plant[k] * cpos * g.Gwz[k]
		g.Gwy[k] = cpre * g.Gwz[k]
		g.Guy[k] = cpre * g.Guz[k]
	}
	return g, nil
}
