package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/freefall/internal/dynamo"
)

func sampleResult() *dynamo.Result {
	return &dynamo.Result{
		States:  []dynamo.State{{20, 0}, {19.95095, -0.981}, {19.8048, -1.962}},
		Times:   []float64{0, 0.1, 0.2},
		Metrics: map[string]float64{"max_speed": 1.962},
		Stopped: true,
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		System:     "falling",
		Dt:         0.1,
		MaxTime:    600,
		Integrator: "semi",
		Forcing:    "none",
		Drag:       0.035,
		Mass:       1.0,
		Gravity:    -9.81,
	}

	runID, err := store.Save(meta, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected a run id")
	}

	loaded, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.ID != runID {
		t.Errorf("expected id %s, got %s", runID, loaded.ID)
	}
	if loaded.System != "falling" {
		t.Errorf("expected falling, got %s", loaded.System)
	}
	if loaded.Drag != 0.035 {
		t.Errorf("expected drag 0.035, got %f", loaded.Drag)
	}
	if !loaded.Stopped {
		t.Error("expected stopped flag from the result")
	}
	if loaded.Metrics["max_speed"] != 1.962 {
		t.Errorf("expected max_speed metric, got %v", loaded.Metrics)
	}
}

func TestSaveCreatesRunFiles(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.Save(RunMetadata{System: "falling"}, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "states.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestLoadStates(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	result := sampleResult()
	runID, err := store.Save(RunMetadata{System: "falling"}, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	states, times, err := store.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}

	if len(states) != len(result.States) {
		t.Fatalf("expected %d states, got %d", len(result.States), len(states))
	}
	if len(times) != len(result.Times) {
		t.Fatalf("expected %d times, got %d", len(result.Times), len(times))
	}

	if times[1] != 0.1 {
		t.Errorf("expected t=0.1, got %f", times[1])
	}
	if states[0][0] != 20 {
		t.Errorf("expected initial height 20, got %f", states[0][0])
	}
	if states[2][1] != -1.962 {
		t.Errorf("expected velocity -1.962, got %f", states[2][1])
	}
}

func TestList(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := store.Save(RunMetadata{System: "falling"}, sampleResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingBaseDir(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "never-created"))

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Load("nope"); err == nil {
		t.Error("expected error for unknown run")
	}
}
