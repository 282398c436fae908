package blend

import (
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// SteadyFull is the state progress at which the steady-hold curve reaches
// full weight.
const SteadyFull = 0.6

// Phase names which curve produced a weight.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseRampIn
	PhaseRampOut
	PhaseSteady
)

// Progress is the slice of layer state the estimator needs.
type Progress struct {
	State              string
	StateProgress      float32
	InTransition       bool
	Transition         string
	TransitionProgress float32
}

// Curves holds the per-behavior identifier sets that select each curve.
// RampIn and RampOut hold transition identifiers, Steady holds states.
type Curves struct {
	RampIn  Set
	RampOut Set
	Steady  Set
}

// Estimator tracks one behavior's blend weight across ticks.
type Estimator struct {
	Curves Curves

	weight float32
	phase  Phase
}

// NewEstimator creates an estimator over the given curves.
func NewEstimator(c Curves) *Estimator {
	return &Estimator{Curves: c}
}

// Weight returns the last computed weight.
func (e *Estimator) Weight() float32 {
	return e.weight
}

// Phase returns the curve used for the last weight.
func (e *Estimator) Phase() Phase {
	return e.phase
}

// Reset zeroes the weight.
func (e *Estimator) Reset() {
	e.weight = 0
	e.phase = PhaseNone
}

// Update recomputes the weight from the current layer progress. Anything
// outside the configured sets falls back to zero weight.
func (e *Estimator) Update(p Progress) float32 {
	switch {
	case p.InTransition && e.Curves.RampIn.Has(p.Transition):
		e.phase = PhaseRampIn
		e.weight = math.Clamp(p.TransitionProgress, 0, 1)
	case p.InTransition && e.Curves.RampOut.Has(p.Transition):
		e.phase = PhaseRampOut
		e.weight = 1 - math.Clamp(p.TransitionProgress, 0, 1)
	case e.Curves.Steady.Has(p.State):
		// Monotonic while holding; a ramp-in weight carries over.
		e.phase = PhaseSteady
		e.weight = math.Max(e.weight, math.Clamp(p.StateProgress, 0, SteadyFull)/SteadyFull)
	default:
		e.phase = PhaseNone
		e.weight = 0
	}
	return e.weight
}
