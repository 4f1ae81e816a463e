// Package config loads the game configuration: defaults first, then an
// optional YAML file merged over them. Every tunable of the generation
// pipeline lives here rather than as magic numbers in the core packages.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all game settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Road      RoadConfig      `yaml:"road"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
}

// TerrainConfig holds height-field and chunk streaming settings.
type TerrainConfig struct {
	Seed           int64   `yaml:"seed"`
	NoiseFrequency float32 `yaml:"noise_frequency"` // noise cycles per world unit
	HeightScale    float32 `yaml:"height_scale"`    // vertical relief in world units
	GridSize       int     `yaml:"grid_size"`       // vertices per chunk edge
	TileSize       float32 `yaml:"tile_size"`       // world size of one grid tile
	ChunkRadius    int     `yaml:"chunk_radius"`    // resident window radius in chunks
}

// RoadConfig holds road generation and coloring settings.
type RoadConfig struct {
	StepSize          float32 `yaml:"step_size"`           // distance between control points
	Width             float32 `yaml:"width"`               // full road width
	FadeWidth         float32 `yaml:"fade_width"`          // color blend band beyond the road edge
	Lookahead         int     `yaml:"lookahead"`           // control points kept ahead of the car
	KeepBehind        int     `yaml:"keep_behind"`         // control points kept behind the car
	SamplesPerSegment int     `yaml:"samples_per_segment"` // spline samples per control-point interval
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// TelemetryConfig holds the optional websocket debug stats server settings.
type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the configuration the game ships with.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "silly roads",
			TargetFPS: 60,
		},
		Terrain: TerrainConfig{
			Seed:           42,
			NoiseFrequency: 0.05,
			HeightScale:    7,
			GridSize:       32,
			TileSize:       1,
			ChunkRadius:    2,
		},
		Road: RoadConfig{
			StepSize:          20,
			Width:             8,
			FadeWidth:         4,
			Lookahead:         64,
			KeepBehind:        32,
			SamplesPerSegment: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
			Addr:    "127.0.0.1:8090",
		},
	}
}

// Load reads configuration from path, merging it over the defaults. An empty
// path tries ./config.yaml. A missing file is not an error — the defaults
// are returned — but a file that exists and fails to parse is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
