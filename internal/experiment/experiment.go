// Package experiment wires bodies, integrators, forcings and metrics into
// runnable simulations, and provides the drop/launch drivers.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/freefall/internal/dynamo"
)

type Config struct {
	System     string
	Integrator string
	Forcing    string
	InitState  []float64
	Dt         float64
	MaxTime    float64
	Params     map[string]float64
}

type Experiment struct {
	cfg       Config
	simulator *dynamo.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(sys dynamo.System, integ dynamo.Integrator, f dynamo.Forcing, stop dynamo.StopCondition, metrics []dynamo.Metric) error {
	e.simulator = dynamo.New(sys, integ, f)
	if stop != nil {
		e.simulator.SetStop(stop)
	}
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	x0 := make(dynamo.State, len(e.cfg.InitState))
	copy(x0, e.cfg.InitState)

	simCfg := dynamo.DefaultConfig()
	simCfg.Dt = e.cfg.Dt
	simCfg.Duration = e.cfg.MaxTime

	return e.simulator.Run(ctx, x0, simCfg)
}

// Simulator exposes the underlying simulator for adding observers.
func (e *Experiment) Simulator() *dynamo.Simulator {
	return e.simulator
}
