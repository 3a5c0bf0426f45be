package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/freefall/internal/analysis"
)

func TestDropRecordsStrictlyAboveGround(t *testing.T) {
	result, err := Drop(context.Background(), DropConfig{Height: 20, Drag: 0.035})
	if err != nil {
		t.Fatalf("drop failed: %v", err)
	}

	if len(result.States) == 0 {
		t.Fatal("expected a non-empty trajectory")
	}
	if !result.Stopped {
		t.Error("expected the drop to reach the ground")
	}

	heights := result.Column(0)
	if result.Times[0] != 0 || heights[0] != 20 {
		t.Errorf("first sample should be the release state, got t=%f h=%f",
			result.Times[0], heights[0])
	}

	for i, h := range heights {
		if h <= 0 {
			t.Errorf("sample %d at or below ground: h=%f", i, h)
		}
		if i > 0 && h >= heights[i-1] {
			t.Errorf("height not decreasing at sample %d: %f >= %f", i, h, heights[i-1])
		}
	}

	// The next step from the last sample would have crossed.
	last := heights[len(heights)-1]
	if last >= heights[0] {
		t.Errorf("last sample %f should be well below release height", last)
	}
}

func TestDropApproachesTerminalSpeed(t *testing.T) {
	cfg := DropConfig{Height: 2000, Drag: 0.27, Mass: 80, Dt: 0.01}

	result, err := Drop(context.Background(), cfg)
	if err != nil {
		t.Fatalf("drop failed: %v", err)
	}
	if !result.Stopped {
		t.Fatal("expected the skydiver to land")
	}

	vt := analysis.TerminalSpeed(cfg.Mass, -9.81, cfg.Drag)
	velocities := result.Column(1)
	final := math.Abs(velocities[len(velocities)-1])

	if math.Abs(final-vt)/vt > 0.01 {
		t.Errorf("final speed %f should be within 1%% of terminal %f", final, vt)
	}

	// Speed never exceeds terminal on a drop from rest.
	for i, v := range velocities {
		if math.Abs(v) > vt*(1+1e-6) {
			t.Errorf("sample %d faster than terminal: %f", i, math.Abs(v))
		}
	}
}

func TestDropWithoutDragMatchesFreeFall(t *testing.T) {
	result, err := Drop(context.Background(), DropConfig{Height: 100, Dt: 0.001})
	if err != nil {
		t.Fatalf("drop failed: %v", err)
	}

	// Spot check mid trajectory against h(t) = h0 - 0.5*|g|*t^2.
	n := len(result.Times) / 2
	want := analysis.FreeFallHeight(100, -9.81, result.Times[n])
	got := result.States[n][0]

	if math.Abs(got-want) > 0.05 {
		t.Errorf("at t=%f expected h=%f, got %f", result.Times[n], want, got)
	}

	// Free-fall velocity only ever grows more negative.
	velocities := result.Column(1)
	for i := 1; i < len(velocities); i++ {
		if velocities[i] >= velocities[i-1] {
			t.Fatalf("velocity not decreasing at sample %d: %f >= %f",
				i, velocities[i], velocities[i-1])
		}
	}
}

func TestDropMetrics(t *testing.T) {
	result, err := Drop(context.Background(), DropConfig{Height: 20, Drag: 0.035})
	if err != nil {
		t.Fatalf("drop failed: %v", err)
	}

	if result.Metrics["max_speed"] <= 0 {
		t.Errorf("expected positive max_speed, got %f", result.Metrics["max_speed"])
	}
	if result.Metrics["peak_altitude"] != 20 {
		t.Errorf("expected peak_altitude 20, got %f", result.Metrics["peak_altitude"])
	}
	if result.Metrics["drag_loss"] <= 0 {
		t.Errorf("expected positive drag_loss, got %f", result.Metrics["drag_loss"])
	}
}

func TestDropRejectsInvalidConfig(t *testing.T) {
	ctx := context.Background()

	if _, err := Drop(ctx, DropConfig{Height: 0}); err == nil {
		t.Error("expected error for zero height")
	}
	if _, err := Drop(ctx, DropConfig{Height: 20, Drag: -1}); err == nil {
		t.Error("expected error for negative drag")
	}
	if _, err := Drop(ctx, DropConfig{Height: 20, Mass: -1}); err == nil {
		t.Error("expected error for negative mass")
	}
	if _, err := Drop(ctx, DropConfig{Height: 20, Integrator: "nope"}); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestLaunchDragFreeRange(t *testing.T) {
	cfg := LaunchConfig{Speed: 20, Angle: 45, Dt: 0.001}

	result, err := Launch(context.Background(), cfg)
	if err != nil {
		t.Fatalf("launch failed: %v", err)
	}
	if !result.Stopped {
		t.Fatal("expected the projectile to land")
	}

	// Drag-free range is v^2*sin(2a)/|g|.
	want := cfg.Speed * cfg.Speed * math.Sin(math.Pi/2) / 9.81
	xs := result.Column(0)
	got := xs[len(xs)-1]

	if math.Abs(got-want) > 0.1 {
		t.Errorf("expected range %f, got %f", want, got)
	}
}

func TestLaunchDragShortensRange(t *testing.T) {
	ctx := context.Background()

	clean, err := Launch(ctx, LaunchConfig{Speed: 20, Angle: 45, Dt: 0.001})
	if err != nil {
		t.Fatal(err)
	}
	draggy, err := Launch(ctx, LaunchConfig{Speed: 20, Angle: 45, Drag: 0.05, Dt: 0.001})
	if err != nil {
		t.Fatal(err)
	}

	cleanX := clean.Column(0)
	draggyX := draggy.Column(0)

	if draggyX[len(draggyX)-1] >= cleanX[len(cleanX)-1] {
		t.Errorf("drag should shorten range: %f >= %f",
			draggyX[len(draggyX)-1], cleanX[len(cleanX)-1])
	}
}

func TestLaunchRejectsInvalidConfig(t *testing.T) {
	if _, err := Launch(context.Background(), LaunchConfig{Speed: 0}); err == nil {
		t.Error("expected error for zero speed")
	}
}
