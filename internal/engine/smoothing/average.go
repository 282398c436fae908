// Package smoothing filters noisy directional input for blend-tree driven
// locomotion.
package smoothing

// MovingAverage is a fixed-window moving average. The window is zero-filled
// on creation and on Reset, and the average always divides by the full
// window size, so a fresh filter ramps up gradually instead of jumping to
// the first sample.
type MovingAverage struct {
	samples []float32
	next    int
}

// NewMovingAverage creates an average over size samples (minimum 1).
func NewMovingAverage(size int) *MovingAverage {
	if size < 1 {
		size = 1
	}
	return &MovingAverage{samples: make([]float32, size)}
}

// Size returns the window size.
func (m *MovingAverage) Size() int {
	return len(m.samples)
}

// Add pushes a sample, evicting the oldest, and returns the new average.
func (m *MovingAverage) Add(v float32) float32 {
	m.samples[m.next] = v
	m.next = (m.next + 1) % len(m.samples)
	return m.Value()
}

// Value returns the current average.
func (m *MovingAverage) Value() float32 {
	var sum float32
	for _, s := range m.samples {
		sum += s
	}
	return sum / float32(len(m.samples))
}

// Fill sets every sample to v.
func (m *MovingAverage) Fill(v float32) {
	for i := range m.samples {
		m.samples[i] = v
	}
	m.next = 0
}

// Reset zero-fills the window.
func (m *MovingAverage) Reset() {
	m.Fill(0)
}
