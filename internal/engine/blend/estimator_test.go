package blend

import (
	"testing"
)

func testCurves() Curves {
	return Curves{
		RampIn:  NewSet("Idle->Cast.Enter"),
		RampOut: NewSet("Cast.Exit->Idle"),
		Steady:  NewSet("Cast.Charge", "Cast.Release"),
	}
}

func TestSetMembership(t *testing.T) {
	s := NewSet("a", "", "b")
	if !s.Has("a") || !s.Has("b") {
		t.Error("expected a and b to be members")
	}
	if s.Has("") {
		t.Error("empty id must never be a member")
	}
	if s.Has("c") {
		t.Error("unexpected member c")
	}
	var empty Set
	if empty.Has("a") {
		t.Error("nil set must have no members")
	}
}

func TestRampIn(t *testing.T) {
	e := NewEstimator(testCurves())
	for _, p := range []float32{0, 0.25, 0.5, 1} {
		got := e.Update(Progress{State: "Idle", InTransition: true, Transition: "Idle->Cast.Enter", TransitionProgress: p})
		if got != p {
			t.Errorf("ramp-in at %v = %v, want %v", p, got, p)
		}
	}
	if e.Phase() != PhaseRampIn {
		t.Errorf("phase = %v, want ramp-in", e.Phase())
	}
}

func TestRampOut(t *testing.T) {
	e := NewEstimator(testCurves())
	got := e.Update(Progress{State: "Cast.Exit", InTransition: true, Transition: "Cast.Exit->Idle", TransitionProgress: 0.25})
	if got != 0.75 {
		t.Errorf("ramp-out at 0.25 = %v, want 0.75", got)
	}
}

func TestSteadyHold(t *testing.T) {
	tests := []struct {
		progress float32
		want     float32
	}{
		{0, 0},
		{0.3, 0.5},
		{0.6, 1},
		{0.9, 1},
	}

	for _, tt := range tests {
		e := NewEstimator(testCurves())
		got := e.Update(Progress{State: "Cast.Charge", StateProgress: tt.progress})
		if diff := got - tt.want; diff > 1e-5 || diff < -1e-5 {
			t.Errorf("steady at %v = %v, want %v", tt.progress, got, tt.want)
		}
	}
}

func TestSteadyNeverDecreases(t *testing.T) {
	e := NewEstimator(testCurves())
	e.Update(Progress{State: "Cast.Charge", StateProgress: 0.45})
	high := e.Weight()

	// Moving into another steady state restarts progress, weight holds.
	got := e.Update(Progress{State: "Cast.Release", StateProgress: 0.05})
	if got < high {
		t.Errorf("steady weight dropped from %v to %v", high, got)
	}
}

func TestRampInCarriesIntoSteady(t *testing.T) {
	e := NewEstimator(testCurves())
	e.Update(Progress{State: "Idle", InTransition: true, Transition: "Idle->Cast.Enter", TransitionProgress: 0.9})
	got := e.Update(Progress{State: "Cast.Charge", StateProgress: 0})
	if got != 0.9 {
		t.Errorf("steady after ramp-in = %v, want 0.9", got)
	}
}

func TestUnknownStateIsZero(t *testing.T) {
	e := NewEstimator(testCurves())
	e.Update(Progress{State: "Cast.Charge", StateProgress: 1})
	got := e.Update(Progress{State: "Somewhere", InTransition: true, Transition: "Unknown", TransitionProgress: 0.5})
	if got != 0 {
		t.Errorf("unknown state weight = %v, want 0", got)
	}
	if e.Phase() != PhaseNone {
		t.Errorf("phase = %v, want none", e.Phase())
	}
}
