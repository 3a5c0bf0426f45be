package integrators

import "github.com/san-kum/freefall/internal/dynamo"

// SemiImplicit is the kinematic stepping scheme: positions advance by
// v*dt + 0.5*a*dt^2 using the pre-update velocity, then velocities advance
// by a*dt. Exact for constant acceleration, first order otherwise.
type SemiImplicit struct{}

func NewSemiImplicit() *SemiImplicit {
	return &SemiImplicit{}
}

func (s *SemiImplicit) Step(sys dynamo.System, x dynamo.State, u dynamo.Vector, t, dt float64) dynamo.State {
	n := len(x)
	half := n / 2

	dx := sys.Derive(x, u, t)
	result := make(dynamo.State, n)
	dt2 := dt * dt

	for i := 0; i < half; i++ {
		a := dx[half+i]
		result[i] = x[i] + x[half+i]*dt + 0.5*a*dt2
		result[half+i] = x[half+i] + a*dt
	}

	return result
}
