// Package analysis provides closed-form solutions for ballistic motion,
// used to check simulated trajectories against theory.
package analysis

import (
	"errors"
	"math"
)

// FreeFallHeight is the drag-free drop from rest: h(t) = h0 - 0.5*|g|*t^2.
func FreeFallHeight(h0, gravity, t float64) float64 {
	return h0 - 0.5*math.Abs(gravity)*t*t
}

// FreeFallVelocity is the drag-free velocity from rest, negative downward.
func FreeFallVelocity(gravity, t float64) float64 {
	return -math.Abs(gravity) * t
}

// TerminalSpeed is sqrt(m*|g|/k), the speed at which quadratic drag
// balances gravity. Infinite for k <= 0.
func TerminalSpeed(mass, gravity, k float64) float64 {
	if k <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(mass * math.Abs(gravity) / k)
}

// DragFallSpeed is the speed of a drop from rest with quadratic drag:
// |v|(t) = vt * tanh(|g|*t / vt), where vt is the terminal speed.
func DragFallSpeed(mass, gravity, k, t float64) float64 {
	if k <= 0 {
		return math.Abs(gravity) * t
	}
	vt := TerminalSpeed(mass, gravity, k)
	return vt * math.Tanh(math.Abs(gravity)*t/vt)
}

// ImpactTime estimates when the trajectory crosses the ground by linear
// extrapolation of the last recorded segment. The simulation driver itself
// stops strictly above ground and never interpolates; this is an offline
// estimate for reporting.
func ImpactTime(times, heights []float64) (float64, error) {
	if len(times) != len(heights) {
		return 0, errors.New("analysis: times and heights differ in length")
	}
	if len(times) < 2 {
		return 0, errors.New("analysis: need at least two samples")
	}

	n := len(times) - 1
	slope := (heights[n] - heights[n-1]) / (times[n] - times[n-1])
	if slope >= 0 {
		return 0, errors.New("analysis: trajectory not descending at end")
	}

	return times[n] - heights[n]/slope, nil
}
