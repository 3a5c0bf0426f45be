package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/halt"
	"github.com/san-kum/freefall/internal/physics"
)

const (
	DefaultDt      = 0.1
	DefaultMaxTime = 600.0
)

// DropConfig parameterizes a straight drop. Zero values take the physical
// defaults: mass 1, gravity -9.81, drag 0, dt 0.1.
type DropConfig struct {
	Height     float64
	Velocity   float64
	Drag       float64
	Mass       float64
	Gravity    float64
	Dt         float64
	MaxTime    float64
	Integrator string
}

func (c DropConfig) withDefaults() DropConfig {
	if c.Mass == 0 {
		c.Mass = physics.DefaultMass
	}
	if c.Gravity == 0 {
		c.Gravity = physics.DefaultGravity
	}
	if c.Dt == 0 {
		c.Dt = DefaultDt
	}
	if c.MaxTime == 0 {
		c.MaxTime = DefaultMaxTime
	}
	if c.Integrator == "" {
		c.Integrator = "semi"
	}
	return c
}

// Drop simulates a mass released from cfg.Height until it reaches the
// ground. The result's Times, Column(0) and Column(1) are the time, height
// and velocity series; the last sample is the final state strictly above
// ground. The run is additionally capped at MaxTime.
func Drop(ctx context.Context, cfg DropConfig) (*dynamo.Result, error) {
	cfg = cfg.withDefaults()
	if cfg.Height <= 0 {
		return nil, fmt.Errorf("initial height must be positive, got %g", cfg.Height)
	}

	body := &physics.FallingMass{Drag: cfg.Drag, Mass: cfg.Mass, Gravity: cfg.Gravity}
	if err := body.Validate(); err != nil {
		return nil, err
	}

	registry := NewRegistry()
	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	sim := dynamo.New(body, integ, nil)
	sim.SetStop(halt.Ground{Index: 0})
	for _, m := range registry.DefaultMetrics("falling", cfg.Drag) {
		sim.AddMetric(m)
	}

	simCfg := dynamo.DefaultConfig()
	simCfg.Dt = cfg.Dt
	simCfg.Duration = cfg.MaxTime

	return sim.Run(ctx, dynamo.State{cfg.Height, cfg.Velocity}, simCfg)
}

// LaunchConfig parameterizes a projectile launch from ground level.
type LaunchConfig struct {
	Speed      float64
	Angle      float64 // degrees above horizontal
	Drag       float64
	Mass       float64
	Gravity    float64
	Dt         float64
	MaxTime    float64
	Integrator string
	Forcing    dynamo.Forcing
}

func (c LaunchConfig) withDefaults() LaunchConfig {
	if c.Mass == 0 {
		c.Mass = physics.DefaultMass
	}
	if c.Gravity == 0 {
		c.Gravity = physics.DefaultGravity
	}
	if c.Dt == 0 {
		c.Dt = DefaultDt
	}
	if c.MaxTime == 0 {
		c.MaxTime = DefaultMaxTime
	}
	if c.Integrator == "" {
		c.Integrator = "semi"
	}
	return c
}

// Launch simulates a projected mass until it lands. State columns are
// x, y, vx, vy.
func Launch(ctx context.Context, cfg LaunchConfig) (*dynamo.Result, error) {
	cfg = cfg.withDefaults()
	if cfg.Speed <= 0 {
		return nil, fmt.Errorf("launch speed must be positive, got %g", cfg.Speed)
	}

	body := &physics.Projectile{Drag: cfg.Drag, Mass: cfg.Mass, Gravity: cfg.Gravity}
	if err := body.Validate(); err != nil {
		return nil, err
	}

	registry := NewRegistry()
	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	sim := dynamo.New(body, integ, cfg.Forcing)
	sim.SetStop(halt.Landed{PosIndex: 1, VelIndex: 3})
	for _, m := range registry.DefaultMetrics("projectile", cfg.Drag) {
		sim.AddMetric(m)
	}

	simCfg := dynamo.DefaultConfig()
	simCfg.Dt = cfg.Dt
	simCfg.Duration = cfg.MaxTime

	return sim.Run(ctx, physics.LaunchState(cfg.Speed, cfg.Angle), simCfg)
}
