package experiment

import (
	"fmt"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/forcing"
	"github.com/san-kum/freefall/internal/integrators"
	"github.com/san-kum/freefall/internal/metrics"
	"github.com/san-kum/freefall/internal/physics"
)

type Registry struct {
	systems     map[string]func(params map[string]float64) (dynamo.System, error)
	integrators map[string]func() dynamo.Integrator
	forcings    map[string]func(params map[string]float64, dim int) dynamo.Forcing
}

func NewRegistry() *Registry {
	r := &Registry{
		systems:     make(map[string]func(map[string]float64) (dynamo.System, error)),
		integrators: make(map[string]func() dynamo.Integrator),
		forcings:    make(map[string]func(map[string]float64, int) dynamo.Forcing),
	}

	r.systems["falling"] = func(params map[string]float64) (dynamo.System, error) {
		return applyBodyParams(physics.NewFallingMass(), params)
	}
	r.systems["projectile"] = func(params map[string]float64) (dynamo.System, error) {
		return applyBodyParams(physics.NewProjectile(), params)
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["semi"] = func() dynamo.Integrator { return integrators.NewSemiImplicit() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["leapfrog"] = func() dynamo.Integrator { return integrators.NewLeapfrog() }
	r.integrators["rk45"] = func() dynamo.Integrator { return integrators.NewRK45() }

	r.forcings["none"] = func(params map[string]float64, dim int) dynamo.Forcing {
		return forcing.NewNone(dim)
	}
	r.forcings["wind"] = func(params map[string]float64, dim int) dynamo.Forcing {
		return forcing.NewConstantWind(params["wind"], dim)
	}
	r.forcings["gust"] = func(params map[string]float64, dim int) dynamo.Forcing {
		return forcing.NewGust(params["wind"], params["gust_period"], dim)
	}

	return r
}

type body interface {
	dynamo.System
	dynamo.Configurable
	Validate() error
}

func applyBodyParams(b body, params map[string]float64) (dynamo.System, error) {
	for _, name := range []string{"drag", "mass", "gravity"} {
		if v, ok := params[name]; ok {
			if err := b.SetParam(name, v); err != nil {
				return nil, fmt.Errorf("%s=%g: %w", name, v, err)
			}
		}
	}
	return b, b.Validate()
}

func (r *Registry) GetSystem(name string, params map[string]float64) (dynamo.System, error) {
	fn, ok := r.systems[name]
	if !ok {
		return nil, fmt.Errorf("unknown system: %s", name)
	}
	return fn(params)
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetForcing(name string, params map[string]float64, dim int) (dynamo.Forcing, error) {
	fn, ok := r.forcings[name]
	if !ok {
		return nil, fmt.Errorf("unknown forcing: %s", name)
	}
	return fn(params, dim), nil
}

func (r *Registry) ListSystems() []string {
	names := make([]string, 0, len(r.systems))
	for name := range r.systems {
		names = append(names, name)
	}
	return names
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics builds the standard observer set for a run.
func (r *Registry) DefaultMetrics(system string, drag float64) []dynamo.Metric {
	altIndex := 0
	if system == "projectile" {
		altIndex = 1
	}
	return []dynamo.Metric{
		metrics.NewMaxSpeed(),
		metrics.NewPeakAltitude(altIndex),
		metrics.NewDragLoss(drag),
	}
}
