package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// Vector is an external force applied to a system, in newtons per component.
type Vector []float64

// System describes equations of motion dX/dt = f(X, u, t). State vectors are
// laid out positions first, velocities second.
type System interface {
	Derive(x State, u Vector, t float64) State
	StateDim() int
	ForceDim() int
}

// Hamiltonian is implemented by systems with a well-defined total energy.
type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(sys System, x State, u Vector, t float64, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, u Vector, t, dt, tol float64) (State, float64, error)
}

// Forcing supplies an external force at each step. A nil Forcing means the
// system evolves unforced.
type Forcing interface {
	Force(x State, t float64) Vector
}

// StopCondition ends a run before its duration elapses. Done is evaluated on
// the current sample before it is recorded, so the terminating state itself
// is never part of the output.
type StopCondition interface {
	Done(x State, t float64) bool
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Metric interface {
	Name() string
	Observe(x State, u Vector, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, u Vector, t float64)
}

type Config struct {
	Dt            float64
	Duration      float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.1,
		Duration:      60.0,
		Tolerance:     1e-6,
		MaxDt:         0.1,
		MinDt:         1e-8,
		Adaptive:      false,
		ValidateState: true,
	}
}

type Result struct {
	States      []State
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Stopped     bool
	Errors      []error
}

// Column extracts one state component as a flat series, parallel to Times.
func (r *Result) Column(i int) []float64 {
	out := make([]float64, len(r.States))
	for j, s := range r.States {
		if i < len(s) {
			out[j] = s[i]
		}
	}
	return out
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
