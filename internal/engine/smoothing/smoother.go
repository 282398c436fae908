package smoothing

import (
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// Default tuning shared by every locomotion behavior.
const (
	DefaultAxisWindow      = 4
	DefaultMagnitudeWindow = 8
	DefaultStopThreshold   = 0.4
	DefaultStopDelay       = 0.15 // seconds
)

// timeEpsilon absorbs float32 accumulation error when comparing elapsed time.
const timeEpsilon = 1e-5

// Sample is one frame of two-axis input plus its magnitude trend.
type Sample struct {
	X, Y      float32
	Magnitude float32
}

// Settings configures an InputSmoother.
type Settings struct {
	AxisWindow      int     `yaml:"axis_window"`
	MagnitudeWindow int     `yaml:"magnitude_window"`
	StopThreshold   float32 `yaml:"stop_threshold"`
	StopDelay       float32 `yaml:"stop_delay"` // seconds
}

// DefaultSettings returns the tuning used by all shipped behaviors.
func DefaultSettings() Settings {
	return Settings{
		AxisWindow:      DefaultAxisWindow,
		MagnitudeWindow: DefaultMagnitudeWindow,
		StopThreshold:   DefaultStopThreshold,
		StopDelay:       DefaultStopDelay,
	}
}

// Result is the outcome of one Step.
type Result struct {
	Sample
	// Stop is true on the single tick the stop-delay elapsed.
	Stop bool
	// Cleared is true once the stopped visual state was reached and the
	// averages were wiped.
	Cleared bool
	// Resumed is true on the tick input came back after the stop fired.
	// The caller has to restart its movement.
	Resumed bool
}

// InputSmoother runs three moving averages (two axes and the magnitude
// trend) and applies the stop-delay latch.
type InputSmoother struct {
	settings Settings

	x, y, mag *MovingAverage

	stopping bool
	stopSent bool
	elapsed  float32
	latched  Sample
}

// NewInputSmoother creates a smoother with the given settings.
func NewInputSmoother(s Settings) *InputSmoother {
	if s.StopDelay < 0 {
		s.StopDelay = 0
	}
	return &InputSmoother{
		settings: s,
		x:        NewMovingAverage(s.AxisWindow),
		y:        NewMovingAverage(s.AxisWindow),
		mag:      NewMovingAverage(s.MagnitudeWindow),
	}
}

// Settings returns the active tuning.
func (s *InputSmoother) Settings() Settings {
	return s.settings
}

// Reset clears all averages and the stop latch.
func (s *InputSmoother) Reset() {
	s.x.Reset()
	s.y.Reset()
	s.mag.Reset()
	s.stopping = false
	s.stopSent = false
	s.elapsed = 0
	s.latched = Sample{}
}

// Prime fills every window with v so the smoothed output starts at v.
func (s *InputSmoother) Prime(v Sample) {
	s.Reset()
	s.x.Fill(v.X)
	s.y.Fill(v.Y)
	s.mag.Fill(v.Magnitude)
}

// Current returns the smoothed values without feeding a sample.
func (s *InputSmoother) Current() Sample {
	return Sample{X: s.x.Value(), Y: s.y.Value(), Magnitude: s.mag.Value()}
}

// Stopping reports whether the stop-delay latch is engaged.
func (s *InputSmoother) Stopping() bool {
	return s.stopping
}

// StopSent reports whether the stop signal already fired.
func (s *InputSmoother) StopSent() bool {
	return s.stopSent
}

// Step feeds one frame of raw input. dt is the elapsed time in seconds;
// stopped tells whether the animation layer has reached its idle/stopped
// state, which is only consulted after the stop signal fired.
func (s *InputSmoother) Step(raw Sample, dt float32, stopped bool) Result {
	below := raw.Magnitude < s.settings.StopThreshold

	if s.stopSent {
		if !below {
			// Input came back after the stop fired; resume accumulation.
			s.stopping = false
			s.stopSent = false
			s.elapsed = 0
			return Result{Sample: s.feed(raw), Resumed: true}
		}
		if stopped {
			s.Reset()
			return Result{Cleared: true}
		}
		return Result{Sample: s.feed(s.latched)}
	}

	if !below {
		s.stopping = false
		s.elapsed = 0
		return Result{Sample: s.feed(raw)}
	}

	if !s.stopping {
		s.stopping = true
		s.elapsed = 0
		s.latched = s.Current()
		out := Result{Sample: s.feed(s.latched)}
		if s.settings.StopDelay <= timeEpsilon {
			s.stopSent = true
			out.Stop = true
		}
		return out
	}

	s.elapsed += math.Max(dt, 0)
	out := Result{Sample: s.feed(s.latched)}
	if s.elapsed >= s.settings.StopDelay-timeEpsilon {
		s.stopSent = true
		out.Stop = true
	}
	return out
}

func (s *InputSmoother) feed(v Sample) Sample {
	return Sample{
		X:         s.x.Add(v.X),
		Y:         s.y.Add(v.Y),
		Magnitude: s.mag.Add(v.Magnitude),
	}
}
