package text

import (
	"math"
	"sync"
)

// SliderToDesign converts a raw axis-control value into a user design-space
// coordinate. The convention is 1:1: one slider unit is one design unit, so
// a slider at 100 on a 'wght' axis requests weight 100.
func SliderToDesign(raw float64) float64 {
	return raw
}

// CoordinateSet holds the current value of every variation axis of a font,
// in axis order. It is empty for fonts without axes.
//
// Every change produces a complete new vector; readers get copies through
// Snapshot and never observe a partially updated set.
//
// CoordinateSet is safe for concurrent use.
type CoordinateSet struct {
	mu     sync.RWMutex
	axes   []AxisDescriptor
	values []float64
}

// NewCoordinateSet creates a set positioned at each axis default.
func NewCoordinateSet(axes []AxisDescriptor) *CoordinateSet {
	s := &CoordinateSet{
		axes: append([]AxisDescriptor(nil), axes...),
	}
	s.values = s.defaults()
	return s
}

// Len returns the number of axes.
func (s *CoordinateSet) Len() int {
	return len(s.axes)
}

// Axes returns a copy of the axes the set was built for.
func (s *CoordinateSet) Axes() []AxisDescriptor {
	return append([]AxisDescriptor(nil), s.axes...)
}

// SetAxisValue sets axis index to v, clamped to the axis range.
// Out-of-range values are clamped silently; NaN selects the axis default.
func (s *CoordinateSet) SetAxisValue(index int, v float64) error {
	if index < 0 || index >= len(s.axes) {
		return &AxisIndexError{Index: index, Count: len(s.axes)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]float64, len(s.values))
	copy(next, s.values)
	next[index] = s.clampAt(index, v)
	s.values = next
	return nil
}

// Replace swaps the whole vector. Its length must equal the axis count;
// a mismatch returns *CoordinateArityError and leaves the set unchanged.
// An empty vector resets every axis to its default.
func (s *CoordinateSet) Replace(values []float64) error {
	if len(values) == 0 {
		s.Reset()
		return nil
	}
	if len(values) != len(s.axes) {
		return &CoordinateArityError{Got: len(values), Want: len(s.axes)}
	}

	next := make([]float64, len(values))
	for i, v := range values {
		next[i] = s.clampAt(i, v)
	}

	s.mu.Lock()
	s.values = next
	s.mu.Unlock()
	return nil
}

// Reset moves every axis back to its default.
func (s *CoordinateSet) Reset() {
	next := s.defaults()
	s.mu.Lock()
	s.values = next
	s.mu.Unlock()
}

// Snapshot returns a copy of the current vector in axis order.
// It returns nil for a set without axes.
func (s *CoordinateSet) Snapshot() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.values) == 0 {
		return nil
	}
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

func (s *CoordinateSet) clampAt(index int, v float64) float64 {
	axis := s.axes[index]
	if math.IsNaN(v) {
		return axis.Default
	}
	return axis.Clamp(v)
}

func (s *CoordinateSet) defaults() []float64 {
	if len(s.axes) == 0 {
		return nil
	}
	values := make([]float64, len(s.axes))
	for i, a := range s.axes {
		values[i] = a.Default
	}
	return values
}

// coordsEqual reports whether two coordinate vectors are identical.
func coordsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
