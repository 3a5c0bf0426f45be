package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.System != "falling" {
		t.Errorf("expected falling, got %s", cfg.System)
	}
	if cfg.Integrator != "semi" {
		t.Errorf("expected semi, got %s", cfg.Integrator)
	}
	if cfg.Dt != DefaultDt {
		t.Errorf("expected dt %f, got %f", DefaultDt, cfg.Dt)
	}
	if cfg.Body.Gravity != DefaultGravity {
		t.Errorf("expected gravity %f, got %f", DefaultGravity, cfg.Body.Gravity)
	}
	if cfg.Init.Height != DefaultHeight {
		t.Errorf("expected height %f, got %f", DefaultHeight, cfg.Init.Height)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.System = "projectile"
	cfg.Body.Drag = 0.035
	cfg.Init.Speed = 30

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.System != "projectile" {
		t.Errorf("expected projectile, got %s", loaded.System)
	}
	if loaded.Body.Drag != 0.035 {
		t.Errorf("expected drag 0.035, got %f", loaded.Body.Drag)
	}
	if loaded.Init.Speed != 30 {
		t.Errorf("expected speed 30, got %f", loaded.Init.Speed)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte("body:\n  drag: 0.27\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Body.Drag != 0.27 {
		t.Errorf("expected drag 0.27, got %f", cfg.Body.Drag)
	}
	if cfg.Dt != DefaultDt {
		t.Errorf("unset dt should keep default %f, got %f", DefaultDt, cfg.Dt)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Body.Drag = 0.05
	cfg.Wind.Force = 2.5

	params := cfg.GetParams()
	if params["drag"] != 0.05 {
		t.Errorf("expected drag 0.05, got %f", params["drag"])
	}
	if params["wind"] != 2.5 {
		t.Errorf("expected wind 2.5, got %f", params["wind"])
	}
	if params["gravity"] != DefaultGravity {
		t.Errorf("expected gravity %f, got %f", DefaultGravity, params["gravity"])
	}
}

func TestPresets(t *testing.T) {
	cfg := GetPreset("falling", "skydiver")
	if cfg == nil {
		t.Fatal("expected skydiver preset")
	}
	if cfg.Body.Mass != 80.0 {
		t.Errorf("expected mass 80, got %f", cfg.Body.Mass)
	}

	if GetPreset("falling", "nope") != nil {
		t.Error("unknown preset should be nil")
	}
	if GetPreset("nope", "brick") != nil {
		t.Error("unknown system should be nil")
	}

	names := ListPresets("projectile")
	if len(names) != 3 {
		t.Errorf("expected 3 projectile presets, got %d", len(names))
	}
	if ListPresets("nope") != nil {
		t.Error("unknown system should list nil")
	}
}
