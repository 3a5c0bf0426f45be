package experiment

import (
	"context"
	"testing"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/physics"
)

func TestRegistrySystems(t *testing.T) {
	r := NewRegistry()

	sys, err := r.GetSystem("falling", map[string]float64{"drag": 0.05, "mass": 2})
	if err != nil {
		t.Fatalf("get system failed: %v", err)
	}

	fm, ok := sys.(*physics.FallingMass)
	if !ok {
		t.Fatalf("expected *physics.FallingMass, got %T", sys)
	}
	if fm.Drag != 0.05 || fm.Mass != 2 {
		t.Errorf("params not applied: drag=%f mass=%f", fm.Drag, fm.Mass)
	}

	if _, err := r.GetSystem("pendulum", nil); err == nil {
		t.Error("expected error for unknown system")
	}
}

func TestRegistryRejectsInvalidParams(t *testing.T) {
	r := NewRegistry()

	if _, err := r.GetSystem("falling", map[string]float64{"mass": -1}); err == nil {
		t.Error("expected error for negative mass")
	}
	if _, err := r.GetSystem("falling", map[string]float64{"drag": -0.1}); err == nil {
		t.Error("expected error for negative drag")
	}
	if _, err := r.GetSystem("projectile", map[string]float64{"mass": 0}); err == nil {
		t.Error("expected error for zero mass")
	}
}

func TestRegistryIntegrators(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"euler", "semi", "rk4", "leapfrog", "rk45"} {
		if _, err := r.GetIntegrator(name); err != nil {
			t.Errorf("get integrator %s failed: %v", name, err)
		}
	}

	if _, err := r.GetIntegrator("verlet"); err == nil {
		t.Error("expected error for unknown integrator")
	}

	if got := len(r.ListIntegrators()); got != 5 {
		t.Errorf("expected 5 integrators, got %d", got)
	}
	if got := len(r.ListSystems()); got != 2 {
		t.Errorf("expected 2 systems, got %d", got)
	}
}

func TestRegistryForcings(t *testing.T) {
	r := NewRegistry()

	f, err := r.GetForcing("wind", map[string]float64{"wind": 3}, 2)
	if err != nil {
		t.Fatalf("get forcing failed: %v", err)
	}
	u := f.Force(dynamo.State{0, 0, 0, 0}, 0)
	if u[0] != 3 {
		t.Errorf("expected wind force 3, got %v", u)
	}

	if _, err := r.GetForcing("tornado", nil, 2); err == nil {
		t.Error("expected error for unknown forcing")
	}
}

func TestExperimentRun(t *testing.T) {
	r := NewRegistry()

	sys, err := r.GetSystem("falling", map[string]float64{"drag": 0.035})
	if err != nil {
		t.Fatal(err)
	}
	integ, err := r.GetIntegrator("semi")
	if err != nil {
		t.Fatal(err)
	}

	exp := New(Config{
		System:     "falling",
		Integrator: "semi",
		InitState:  []float64{20, 0},
		Dt:         0.1,
		MaxTime:    2.0,
	})
	if err := exp.Setup(sys, integ, nil, nil, r.DefaultMetrics("falling", 0.035)); err != nil {
		t.Fatal(err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.States) != 21 {
		t.Errorf("expected 21 samples for 2s at dt=0.1, got %d", len(result.States))
	}
}

func TestExperimentRunWithoutSetup(t *testing.T) {
	exp := New(Config{InitState: []float64{1, 0}, Dt: 0.1, MaxTime: 1})
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error before setup")
	}
}
