package simulation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/shape"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchema string

type Config struct {
	// Window
	WindowWidth  int `json:"windowWidth"`
	WindowHeight int `json:"windowHeight"`

	// Texts the flock spells, cycled at runtime; the first one is shown at start
	Texts    []string `json:"texts"`
	NumBoids int      `json:"numBoids"`
	Seed     uint64   `json:"seed"`

	// Camera
	CameraDistance float64 `json:"cameraDistance"`
	FieldOfView    float64 `json:"fieldOfView"` // vertical, degrees

	// Glyph sampling
	GlyphScale  float64 `json:"glyphScale"`
	GlyphStride int     `json:"glyphStride"`
	GlyphDepth  float64 `json:"glyphDepth"`

	Flock behavior.Settings `json:"flock"`
}

func DefaultConfig() *Config {
	return &Config{
		WindowWidth:    1000,
		WindowHeight:   700,
		Texts:          []string{"SWARM", "HELLO", "GO"},
		NumBoids:       600,
		Seed:           42,
		CameraDistance: 600,
		FieldOfView:    75,
		GlyphScale:     10,
		GlyphStride:    1,
		GlyphDepth:     5,
		Flock:          behavior.DefaultSettings(),
	}
}

// homeMargin is the share of the boundary the text may span.
const homeMargin = 0.9

// ShapeOptions returns the glyph sampling options for this config.
func (c *Config) ShapeOptions() shape.Options {
	opts := shape.DefaultOptions()
	opts.Scale = c.GlyphScale
	opts.Stride = c.GlyphStride
	opts.Depth = c.GlyphDepth
	opts.Seed = c.Seed
	// keep homes clear of the wrap edge so a formed boid can always settle
	opts.MaxExtent = c.Flock.BoundarySize * homeMargin
	return opts
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = jsonschema.CompileString("config.schema.json", configSchema)
	})
	return compiledSchema, compileErr
}

// LoadConfig loads a JSON or TOML configuration file (chosen by extension),
// validates it against the embedded schema and applies it over DefaultConfig.
// Keys are the same camelCase names in both formats.
func LoadConfig(configFile string) (*Config, error) {
	raw, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".toml":
		var doc map[string]interface{}
		if _, err := toml.Decode(string(raw), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode config toml: %w", err)
		}
		// the schema validator works on JSON values, normalise through JSON
		if raw, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("failed to convert config toml: %w", err)
		}
	case ".json", "":
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(configFile))
	}

	return ParseConfig(raw)
}

// ParseConfig validates a JSON document and applies it over DefaultConfig.
func ParseConfig(raw []byte) (*Config, error) {
	sch, err := schema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
