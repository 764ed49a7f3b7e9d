package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for the annotation tool. Fields may be
// loaded from a JSON file; out-of-range values are clamped by Validate
// rather than rejected.
type Config struct {
	Debug bool `json:"debug"`

	// Annotation defaults
	DefaultLabel   string `json:"default_label"`
	VocabularyPath string `json:"vocabulary_path"`

	// Export
	ExportDir string `json:"export_dir"`

	// Canvas interaction
	ZoomStep       float64 `json:"zoom_step"`
	HandleRadiusPx float64 `json:"handle_radius_px"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		DefaultLabel:   "object",
		VocabularyPath: "",
		ExportDir:      "exports",
		ZoomStep:       0.25,
		HandleRadiusPx: 8,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.DefaultLabel == "" {
		c.DefaultLabel = "object"
	}
	if c.ExportDir == "" {
		c.ExportDir = "exports"
	}
	if c.ZoomStep <= 0 || c.ZoomStep > 1 {
		c.ZoomStep = 0.25
	}
	if c.HandleRadiusPx < 2 || c.HandleRadiusPx > 32 {
		c.HandleRadiusPx = 8
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the
// file does not exist it returns DefaultConfig(). On JSON error it returns
// defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
