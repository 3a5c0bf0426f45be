// Package halt provides stop conditions for simulation runs.
package halt

import "github.com/san-kum/freefall/internal/dynamo"

// Ground fires once the indexed state component reaches the ground plane.
// Index 0 is the height of a falling mass, index 1 the altitude of a
// projectile.
type Ground struct {
	Index int
}

func (g Ground) Done(x dynamo.State, t float64) bool {
	if g.Index >= len(x) {
		return true
	}
	return x[g.Index] <= 0
}

// Landed fires once a body that is moving downward reaches the ground.
// Unlike Ground it does not fire for a body resting at zero altitude, so a
// projectile launched from ground level gets its full arc recorded.
type Landed struct {
	PosIndex int
	VelIndex int
}

func (l Landed) Done(x dynamo.State, t float64) bool {
	if l.PosIndex >= len(x) || l.VelIndex >= len(x) {
		return true
	}
	return x[l.PosIndex] <= 0 && x[l.VelIndex] < 0
}

// Timeout fires once simulated time reaches Seconds.
type Timeout struct {
	Seconds float64
}

func (to Timeout) Done(x dynamo.State, t float64) bool {
	return t >= to.Seconds
}

// Any fires when any of its conditions fires.
type Any []dynamo.StopCondition

func (a Any) Done(x dynamo.State, t float64) bool {
	for _, c := range a {
		if c.Done(x, t) {
			return true
		}
	}
	return false
}
