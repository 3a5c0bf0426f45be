// Package dynamo provides the simulation primitives for ballistic motion.
//
// The package defines the fundamental interfaces and types for stepping a
// rigid mass through gravity and air resistance:
//
//   - [State]: vector of positions and velocities
//   - [System]: equations of motion (dX/dt = f(X, u, t))
//   - [Integrator]: numerical stepping scheme
//   - [StopCondition]: terminates a run (ground contact, timeout)
//   - [Simulator]: drives a run and collects the time series
//
// # Example
//
//	body := physics.NewFallingMass()
//	integ := integrators.NewSemiImplicit()
//	sim := dynamo.New(body, integ, nil)
//	sim.SetStop(halt.Ground{Index: 0})
//	result, _ := sim.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe; build one per goroutine.
package dynamo
