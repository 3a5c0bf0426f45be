// Package forcing supplies external forces acting on a body in flight.
// Bodies are unactuated; the only external input modeled is wind.
package forcing

import (
	"math"

	"github.com/san-kum/freefall/internal/dynamo"
)

// None applies no force.
type None struct {
	dim int
}

func NewNone(dim int) *None {
	if dim == 0 {
		dim = 1
	}
	return &None{dim: dim}
}

func (n *None) Force(x dynamo.State, t float64) dynamo.Vector {
	return make(dynamo.Vector, n.dim)
}

// ConstantWind applies a steady horizontal force. On a 1-dimensional
// falling mass the force acts along the single (vertical) axis, so it
// models a steady updraft or downdraft instead.
type ConstantWind struct {
	Force0 float64
	dim    int
}

func NewConstantWind(force float64, dim int) *ConstantWind {
	if dim == 0 {
		dim = 1
	}
	return &ConstantWind{Force0: force, dim: dim}
}

func (w *ConstantWind) Force(x dynamo.State, t float64) dynamo.Vector {
	u := make(dynamo.Vector, w.dim)
	u[0] = w.Force0
	return u
}

// Gust applies a sinusoidal force along the first force axis.
type Gust struct {
	Amplitude float64
	Period    float64
	dim       int
}

func NewGust(amplitude, period float64, dim int) *Gust {
	if dim == 0 {
		dim = 1
	}
	if period <= 0 {
		period = 1
	}
	return &Gust{Amplitude: amplitude, Period: period, dim: dim}
}

func (g *Gust) Force(x dynamo.State, t float64) dynamo.Vector {
	u := make(dynamo.Vector, g.dim)
	u[0] = g.Amplitude * math.Sin(2*math.Pi*t/g.Period)
	return u
}
