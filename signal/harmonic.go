// Package signal represents scalar periodic signals as sums of harmonic
// components. Instead of storing sample arrays the superposition is kept as a
// function of time, so callers choose their own sampling grid.
package signal

import "math"

// Harmonic is a single sinusoidal component
//
// a sin(n omega t + phi)
//
// at harmonic order n of some fundamental angular frequency omega.
type Harmonic struct {
	// Harmonic order (1 = fundamental)
	Order int
	// Amplitude a
	Amplitude float64
	// Phase phi in radians
	Phase float64
}

// Superposition returns the time evaluation of the summed components at a
// fundamental angular frequency omega (rad/s).
func Superposition(components []Harmonic, omega float64) func(t float64) float64 {
	return func(t float64) float64 {
		var sum float64
		for _, h := range components {
			sum += h.Amplitude * math.Sin(float64(h.Order)*omega*t+h.Phase)
		}
		return sum
	}
}

// Peak samples one period of f at samples equally spaced instants
// t_s = period (s-1)/S and returns the largest absolute value seen.
func Peak(f func(t float64) float64, period float64, samples int) float64 {
	var peak float64
	for s := 0; s < samples; s++ {
		t := period * float64(s) / float64(samples)
		if v := math.Abs(f(t)); v > peak {
			peak = v
		}
	}
	return peak
}
