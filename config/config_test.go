package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.DefaultLabel != "object" || cfg.ZoomStep != 0.25 {
		t.Fatalf("defaults wrong: %+v", cfg)
	}
}

func TestValidate_ClampsBadValues(t *testing.T) {
	cfg := &Config{DefaultLabel: "", ExportDir: "", ZoomStep: -1, HandleRadiusPx: 100}
	_ = cfg.Validate()
	if cfg.DefaultLabel != "object" || cfg.ExportDir != "exports" {
		t.Fatalf("string defaults not applied: %+v", cfg)
	}
	if cfg.ZoomStep != 0.25 || cfg.HandleRadiusPx != 8 {
		t.Fatalf("numeric clamps not applied: %+v", cfg)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.DefaultLabel = "defect"
	cfg.ZoomStep = 0.5
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.DefaultLabel != "defect" || loaded.ZoomStep != 0.5 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file missing: %v", err)
	}
}
