package smoothing

import (
	gomath "math"
	"testing"
)

func TestMovingAverageRampsFromZero(t *testing.T) {
	m := NewMovingAverage(4)
	got := m.Add(1)
	if got != 0.25 {
		t.Errorf("first Add() = %v, want 0.25", got)
	}
	for i := 0; i < 3; i++ {
		got = m.Add(1)
	}
	if got != 1 {
		t.Errorf("full window = %v, want 1", got)
	}
	got = m.Add(0)
	if got != 0.75 {
		t.Errorf("after eviction = %v, want 0.75", got)
	}
}

func TestMovingAverageMinimumSize(t *testing.T) {
	m := NewMovingAverage(0)
	if m.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", m.Size())
	}
	if got := m.Add(3); got != 3 {
		t.Errorf("Add(3) = %v, want 3", got)
	}
}

func TestPartialAccumulation(t *testing.T) {
	s := NewInputSmoother(DefaultSettings())
	res := s.Step(Sample{X: 0, Y: 1, Magnitude: 0.5}, 1.0/60, false)
	if res.Magnitude <= 0 || res.Magnitude >= 0.5 {
		t.Errorf("smoothed magnitude = %v, want strictly between 0 and 0.5", res.Magnitude)
	}
	if res.Y <= 0 || res.Y >= 1 {
		t.Errorf("smoothed Y = %v, want strictly between 0 and 1", res.Y)
	}
}

func TestSmootherBoundedness(t *testing.T) {
	s := NewInputSmoother(DefaultSettings())
	inputs := []Sample{
		{X: 1, Y: 0.2, Magnitude: 0.9},
		{X: -1, Y: 0.8, Magnitude: 0.6},
		{X: 0.5, Y: -0.4, Magnitude: 1},
		{X: 0.1, Y: 0.1, Magnitude: 0.1},
		{X: -0.7, Y: 1, Magnitude: 0.5},
		{X: 0.3, Y: -1, Magnitude: 0.45},
		{X: 1, Y: 1, Magnitude: 0.2},
		{X: 0, Y: 0, Magnitude: 0},
	}

	// The buffers start zero-filled, so zero is part of the history.
	var lo, hi Sample
	for i := 0; i < 40; i++ {
		in := inputs[i%len(inputs)]
		lo.X, hi.X = min32(lo.X, in.X), max32(hi.X, in.X)
		lo.Y, hi.Y = min32(lo.Y, in.Y), max32(hi.Y, in.Y)
		lo.Magnitude, hi.Magnitude = min32(lo.Magnitude, in.Magnitude), max32(hi.Magnitude, in.Magnitude)

		res := s.Step(in, 0.016, false)
		const eps = 1e-5
		if res.X < lo.X-eps || res.X > hi.X+eps {
			t.Fatalf("tick %d: X = %v outside [%v, %v]", i, res.X, lo.X, hi.X)
		}
		if res.Y < lo.Y-eps || res.Y > hi.Y+eps {
			t.Fatalf("tick %d: Y = %v outside [%v, %v]", i, res.Y, lo.Y, hi.Y)
		}
		if res.Magnitude < lo.Magnitude-eps || res.Magnitude > hi.Magnitude+eps {
			t.Fatalf("tick %d: magnitude = %v outside [%v, %v]", i, res.Magnitude, lo.Magnitude, hi.Magnitude)
		}
	}
}

func TestStopDelayExactness(t *testing.T) {
	for _, dt := range []float32{0.05, 0.02, 1.0 / 60} {
		s := NewInputSmoother(DefaultSettings())
		const dropTick = 10
		want := dropTick + int(gomath.Ceil(float64(DefaultStopDelay/dt)-1e-4))

		fired := 0
		firedAt := -1
		for tick := 0; tick < 60; tick++ {
			mag := float32(1)
			if tick >= dropTick {
				mag = 0.2
			}
			res := s.Step(Sample{Y: mag, Magnitude: mag}, dt, false)
			if res.Stop {
				fired++
				firedAt = tick
			}
		}

		if fired != 1 {
			t.Errorf("dt=%v: stop fired %d times, want 1", dt, fired)
		}
		if firedAt != want {
			t.Errorf("dt=%v: stop fired at tick %d, want %d", dt, firedAt, want)
		}
	}
}

func TestStopDelayCancelledByRecovery(t *testing.T) {
	s := NewInputSmoother(DefaultSettings())
	dt := float32(0.05)

	mags := []float32{1, 1, 1, 0.2, 0.2, 0.9, 0.9, 0.9, 0.9, 0.9}
	for i, m := range mags {
		res := s.Step(Sample{Y: m, Magnitude: m}, dt, false)
		if res.Stop {
			t.Fatalf("tick %d: unexpected stop signal", i)
		}
	}
	if s.Stopping() {
		t.Error("latch should be released once magnitude recovers")
	}
}

func TestStopLatchFeedsLatchedValues(t *testing.T) {
	s := NewInputSmoother(DefaultSettings())
	for i := 0; i < 10; i++ {
		s.Step(Sample{X: 1, Y: 1, Magnitude: 1}, 0.05, false)
	}
	before := s.Current()

	// Noisy input under the threshold must not move the averages.
	res := s.Step(Sample{X: -1, Y: 0, Magnitude: 0.1}, 0.05, false)
	if res.Sample != before {
		t.Errorf("latched step = %+v, want %+v", res.Sample, before)
	}
}

func TestClearedAfterStoppedState(t *testing.T) {
	s := NewInputSmoother(DefaultSettings())
	dt := float32(0.05)
	for i := 0; i < 10; i++ {
		s.Step(Sample{Y: 1, Magnitude: 1}, dt, false)
	}

	stopped := false
	for i := 0; i < 10 && !stopped; i++ {
		stopped = s.Step(Sample{}, dt, false).Stop
	}
	if !stopped {
		t.Fatal("stop never fired")
	}

	res := s.Step(Sample{}, dt, false)
	if res.Cleared {
		t.Fatal("cleared before the stopped state was reached")
	}

	res = s.Step(Sample{}, dt, true)
	if !res.Cleared {
		t.Fatal("expected Cleared once the stopped state is reported")
	}
	if res.Magnitude != 0 || s.Current().Magnitude != 0 {
		t.Errorf("magnitude after clear = %v, want 0", s.Current().Magnitude)
	}
}

func TestResumedAfterStop(t *testing.T) {
	s := NewInputSmoother(DefaultSettings())
	dt := float32(0.05)
	for i := 0; i < 10; i++ {
		s.Step(Sample{Y: 1, Magnitude: 1}, dt, false)
	}

	stopped := false
	for i := 0; i < 10 && !stopped; i++ {
		stopped = s.Step(Sample{}, dt, false).Stop
	}
	if !stopped {
		t.Fatal("stop never fired")
	}

	res := s.Step(Sample{Y: 1, Magnitude: 0.8}, dt, false)
	if !res.Resumed {
		t.Fatal("expected Resumed when input returns after the stop")
	}
	if s.StopSent() || s.Stopping() {
		t.Error("stop latch still engaged after resuming")
	}

	res = s.Step(Sample{Y: 1, Magnitude: 0.8}, dt, false)
	if res.Resumed {
		t.Error("Resumed reported on more than one tick")
	}

	// A second drop fires a fresh stop.
	fired := 0
	for i := 0; i < 10; i++ {
		if s.Step(Sample{}, dt, false).Stop {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("second stop fired %d times, want 1", fired)
	}
}

func TestRecoveryBeforeStopIsNotResumed(t *testing.T) {
	s := NewInputSmoother(DefaultSettings())
	for _, m := range []float32{1, 1, 0.2, 0.9} {
		if res := s.Step(Sample{Y: m, Magnitude: m}, 0.05, false); res.Resumed {
			t.Fatalf("magnitude %v: Resumed without a prior stop", m)
		}
	}
}

func TestPrime(t *testing.T) {
	s := NewInputSmoother(DefaultSettings())
	s.Prime(Sample{X: 0.5, Y: -0.5, Magnitude: 0.75})
	got := s.Current()
	if got.X != 0.5 || got.Y != -0.5 || got.Magnitude != 0.75 {
		t.Errorf("Current() after Prime = %+v", got)
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
