// Package ode implements the classical fourth order Runge-Kutta method
// https://en.wikipedia.org/wiki/Runge–Kutta_methods for systems described by
// a state derivative function.
package ode

import (
	"gonum.org/v1/gonum/mat"
)

// DifferentiableSystem provides the state derivative
//
// x'(t) = f(t, x(t))
type DifferentiableSystem interface {
	Derivative(t float64, state mat.Vector) mat.Vector
}

// RK4 is the classical fixed-step fourth order Runge-Kutta integrator.
type RK4 struct{}

// NewRK4 returns an RK4 integrator.
func NewRK4() *RK4 {
	return &RK4{}
}

// Step advances state in place from t to t + h.
func (rk *RK4) Step(t, h float64, state *mat.VecDense, system DifferentiableSystem) {
	m, _ := state.Dims()
	var tmp mat.VecDense

	k1 := system.Derivative(t, state)

	tmp.CloneFromVec(state)
	tmp.AddScaledVec(&tmp, h/2, k1)
	k2 := system.Derivative(t+h/2, &tmp)

	tmp.CloneFromVec(state)
	tmp.AddScaledVec(&tmp, h/2, k2)
	k3 := system.Derivative(t+h/2, &tmp)

	tmp.CloneFromVec(state)
	tmp.AddScaledVec(&tmp, h, k3)
	k4 := system.Derivative(t+h, &tmp)

	update := mat.NewVecDense(m, nil)
	update.AddScaledVec(update, 1, k1)
	update.AddScaledVec(update, 2, k2)
	update.AddScaledVec(update, 2, k3)
	update.AddScaledVec(update, 1, k4)
	state.AddScaledVec(state, h/6, update)
}

// Integrate advances state in place from t = from to t = to using the given
// number of equal steps.
func (rk *RK4) Integrate(from, to float64, steps int, state *mat.VecDense, system DifferentiableSystem) {
	if steps < 1 {
		steps = 1
	}
	h := (to - from) / float64(steps)
	for step := 0; step < steps; step++ {
		rk.Step(from+float64(step)*h, h, state, system)
	}
}
