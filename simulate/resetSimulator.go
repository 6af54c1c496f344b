// Package simulate runs a reset element through time under sinusoidal
// excitation. It is the time-domain companion to the frequency-domain
// pipeline: between reset instants the element evolves as the linear system
// (A, B, C, D); whenever the input crosses zero the state jumps as
// x(t+) = Arho x(t). For a sinusoidal input the reset instants are the half
// period marks, so the simulator integrates reset-free segments and applies
// the jump exactly at each crossing.
package simulate

import (
	"errors"
	"fmt"
	"math"

	"github.com/lukevaneijk/pseudoSensReset/ode"
	"github.com/lukevaneijk/pseudoSensReset/ssm"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidInput indicates malformed simulation parameters.
var ErrInvalidInput = errors.New("simulate: invalid input")

// Trajectory holds sampled time, reset element input, and output sequences of
// one simulation run. Input is the reconstructed signal driving the element,
// the diagnostic the frequency-domain pipeline does not expose.
type Trajectory struct {
	Time   []float64
	Input  []float64
	Output []float64
}

// sinusoidDriven adapts a reset element under w(t) = a sin(omega t) to the
// integrator interface. The reset action is handled outside the integration.
type sinusoidDriven struct {
	el        *ssm.ResetElement
	amplitude float64
	omega     float64
}

func (s *sinusoidDriven) Derivative(t float64, state mat.Vector) mat.Vector {
	m, _ := state.Dims()
	res := mat.NewVecDense(m, nil)
	res.MulVec(s.el.A, state)
	res.AddScaledVec(res, s.amplitude*math.Sin(s.omega*t), s.el.B.ColView(0))
	return res
}

// ResetSimulator integrates a reset element through time.
type ResetSimulator struct {
	el *ssm.ResetElement
	rk *ode.RK4
}

// NewResetSimulator returns a simulator for the given reset element.
func NewResetSimulator(el *ssm.ResetElement) *ResetSimulator {
	return &ResetSimulator{el: el, rk: ode.NewRK4()}
}

// Sinusoid simulates the response to w(t) = amplitude sin(2 pi freq t) from a
// zero initial state over the given number of periods, sampling
// samplesPerPeriod instants per period. samplesPerPeriod must be even so that
// the half period reset instants fall on sample boundaries.
func (s *ResetSimulator) Sinusoid(amplitude, freq float64, periods, samplesPerPeriod int) (*Trajectory, error) {
	if !(freq > 0) {
		return nil, fmt.Errorf("%w: frequency %v, want > 0", ErrInvalidInput, freq)
	}
	if periods < 1 || samplesPerPeriod < 2 {
		return nil, fmt.Errorf("%w: %d periods at %d samples per period", ErrInvalidInput, periods, samplesPerPeriod)
	}
	if samplesPerPeriod%2 != 0 {
		return nil, fmt.Errorf("%w: samplesPerPeriod %d, want even", ErrInvalidInput, samplesPerPeriod)
	}

	omega := 2 * math.Pi * freq
	dt := 1 / (freq * float64(samplesPerPeriod))
	total := periods * samplesPerPeriod
	sys := &sinusoidDriven{el: s.el, amplitude: amplitude, omega: omega}

	order := s.el.Order()
	state := mat.NewVecDense(order, nil)
	var next mat.VecDense

	traj := &Trajectory{
		Time:   make([]float64, total+1),
		Input:  make([]float64, total+1),
		Output: make([]float64, total+1),
	}
	traj.Output[0] = s.observe(state, 0)

	halfPeriod := samplesPerPeriod / 2
	for step := 1; step <= total; step++ {
		t := float64(step-1) * dt
		s.rk.Step(t, dt, state, sys)
		if step%halfPeriod == 0 {
			// Input zero crossing: apply the reset map.
			next.MulVec(s.el.Arho, state)
			state.CopyVec(&next)
		}
		w := amplitude * math.Sin(omega*float64(step)*dt)
		traj.Time[step] = float64(step) * dt
		traj.Input[step] = w
		traj.Output[step] = s.observe(state, w)
	}
	return traj, nil
}

// observe evaluates y = C x + D w.
func (s *ResetSimulator) observe(state mat.Vector, w float64) float64 {
	var y mat.VecDense
	y.MulVec(s.el.C, state)
	return y.AtVec(0) + s.el.D.At(0, 0)*w
}
