package integrators

import (
	"testing"

	"github.com/san-kum/freefall/internal/dynamo"
)

// benchBody is a falling mass with quadratic drag, state [h, v].
type benchBody struct{}

func (b *benchBody) StateDim() int { return 2 }
func (b *benchBody) ForceDim() int { return 0 }
func (b *benchBody) Derive(x dynamo.State, u dynamo.Vector, t float64) dynamo.State {
	v := x[1]
	drag := 0.035 * v * v
	if v < 0 {
		drag = -drag
	}
	return dynamo.State{v, -9.81 - drag}
}

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	body := &benchBody{}
	x := dynamo.State{2000.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(body, x, nil, 0, 0.01)
	}
}

func BenchmarkSemiImplicit(b *testing.B) {
	integrator := NewSemiImplicit()
	body := &benchBody{}
	x := dynamo.State{2000.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(body, x, nil, 0, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	body := &benchBody{}
	x := dynamo.State{2000.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(body, x, nil, 0, 0.01)
	}
}

func BenchmarkLeapfrog(b *testing.B) {
	integrator := NewLeapfrog()
	body := &benchBody{}
	x := dynamo.State{2000.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(body, x, nil, 0, 0.01)
	}
}

func BenchmarkRK45(b *testing.B) {
	integrator := NewRK45()
	body := &benchBody{}
	x := dynamo.State{2000.0, 0.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(body, x, nil, 0, 0.01)
	}
}
