package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrNonPositiveMass indicates a body configured with mass <= 0.
	ErrNonPositiveMass = errors.New("dynamo: mass must be positive")

	// ErrNegativeDrag indicates a drag coefficient below zero.
	ErrNegativeDrag = errors.New("dynamo: drag coefficient must be non-negative")

	// ErrParameterBounds indicates a parameter value outside its valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrStepTooSmall indicates the adaptive timestep fell below minimum.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")
)

// SimulationError wraps an error with the step it occurred on.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
