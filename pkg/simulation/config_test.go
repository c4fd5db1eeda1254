package simulation

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeConfig(t, "swarm.json", `{
		"texts": ["HI"],
		"numBoids": 250,
		"flock": {"maxSpeed": 3.5, "scatterDuration": 60}
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.NumBoids != 250 || len(cfg.Texts) != 1 || cfg.Texts[0] != "HI" {
		t.Errorf("top level not applied: %+v", cfg)
	}
	if cfg.Flock.MaxSpeed != 3.5 || cfg.Flock.ScatterDuration != 60 {
		t.Errorf("flock not applied: %+v", cfg.Flock)
	}
	// untouched keys keep their defaults
	def := DefaultConfig()
	if cfg.Flock.MaxForce != def.Flock.MaxForce || cfg.WindowWidth != def.WindowWidth {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeConfig(t, "swarm.toml", `
texts = ["TOML", "GO"]
numBoids = 300
seed = 7

[flock]
maxSpeed = 2.5
useSpatialGrid = false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.NumBoids != 300 || cfg.Seed != 7 || cfg.Texts[0] != "TOML" {
		t.Errorf("top level not applied: %+v", cfg)
	}
	if cfg.Flock.MaxSpeed != 2.5 || cfg.Flock.UseSpatialGrid {
		t.Errorf("flock not applied: %+v", cfg.Flock)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"Unknown key", "a.json", `{"numBirds": 3}`, "validation"},
		{"Negative count", "b.json", `{"numBoids": -1}`, "validation"},
		{"Bad flock value", "c.json", `{"flock": {"formLerp": 2}}`, "validation"},
		{"Wrong type", "d.toml", `numBoids = "many"`, "validation"},
		{"Broken json", "e.json", `{`, "decode"},
		{"Broken toml", "f.toml", `numBoids = `, "toml"},
		{"Unsupported format", "g.yaml", `numBoids: 3`, "unsupported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	// the defaults themselves must pass the schema
	raw, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := ParseConfig(raw)
	if err != nil {
		t.Fatalf("ParseConfig(defaults): %v", err)
	}
	if cfg.NumBoids != DefaultConfig().NumBoids {
		t.Errorf("NumBoids = %d", cfg.NumBoids)
	}
}

func TestLoadConfig_Shipped(t *testing.T) {
	for _, name := range []string{"textswarm.json", "textswarm.toml"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadConfig(filepath.Join("..", "..", "configs", name))
			if err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			if len(cfg.Texts) == 0 || cfg.NumBoids <= 0 {
				t.Errorf("incomplete config: %+v", cfg)
			}
		})
	}
}

func TestConfig_ShapeOptionsFitBoundary(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Flock.BoundarySize = 250

	opts := cfg.ShapeOptions()
	if opts.MaxExtent <= 0 || opts.MaxExtent >= cfg.Flock.BoundarySize {
		t.Errorf("MaxExtent = %v; want inside (0, %v)", opts.MaxExtent, cfg.Flock.BoundarySize)
	}
	if opts.Scale != cfg.GlyphScale || opts.Seed != cfg.Seed {
		t.Errorf("glyph settings not carried: %+v", opts)
	}
}
