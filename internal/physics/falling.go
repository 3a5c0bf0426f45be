package physics

import (
	"math"

	"github.com/san-kum/freefall/internal/dynamo"
)

const (
	DefaultMass    = 1.0
	DefaultGravity = -9.81
	DefaultDrag    = 0.0
)

// FallingMass is a point mass dropping straight down through still air.
// State is [h, v]: height above ground (m) and vertical velocity (m/s,
// negative while falling).
type FallingMass struct {
	Drag    float64 // quadratic drag coefficient k (kg/m)
	Mass    float64
	Gravity float64 // signed, negative pulls down
}

func NewFallingMass() *FallingMass {
	return &FallingMass{
		Drag:    DefaultDrag,
		Mass:    DefaultMass,
		Gravity: DefaultGravity,
	}
}

func (f *FallingMass) StateDim() int { return 2 }
func (f *FallingMass) ForceDim() int { return 1 }

// Acceleration returns the instantaneous acceleration for a body moving at
// velocity v: a = (m*g - sign(v)*k*v^2) / m. Drag always opposes the
// current direction of motion.
func (f *FallingMass) Acceleration(v float64) float64 {
	return (f.Mass*f.Gravity - sign(v)*f.Drag*v*v) / f.Mass
}

func (f *FallingMass) Derive(x dynamo.State, u dynamo.Vector, t float64) dynamo.State {
	v := x[1]
	a := f.Acceleration(v)
	if len(u) > 0 {
		a += u[0] / f.Mass
	}
	return dynamo.State{v, a}
}

// TerminalSpeed is the speed at which drag balances gravity,
// sqrt(m*|g|/k). Infinite when drag is zero.
func (f *FallingMass) TerminalSpeed() float64 {
	if f.Drag <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(f.Mass * math.Abs(f.Gravity) / f.Drag)
}

func (f *FallingMass) Energy(x dynamo.State) float64 {
	h, v := x[0], x[1]
	ke := 0.5 * f.Mass * v * v
	pe := -f.Mass * f.Gravity * h
	return ke + pe
}

func (f *FallingMass) Validate() error {
	if f.Mass <= 0 {
		return dynamo.ErrNonPositiveMass
	}
	if f.Drag < 0 {
		return dynamo.ErrNegativeDrag
	}
	return nil
}

func (f *FallingMass) GetParams() map[string]float64 {
	return map[string]float64{
		"drag":    f.Drag,
		"mass":    f.Mass,
		"gravity": f.Gravity,
	}
}

func (f *FallingMass) SetParam(name string, value float64) error {
	switch name {
	case "drag":
		if value < 0 {
			return dynamo.ErrNegativeDrag
		}
		f.Drag = value
	case "mass":
		if value <= 0 {
			return dynamo.ErrNonPositiveMass
		}
		f.Mass = value
	case "gravity":
		f.Gravity = value
	default:
		return dynamo.ErrParameterBounds
	}
	return nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
