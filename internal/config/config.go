// Package config holds the runtime settings for the walkability pipeline.
// Settings come from defaults, then an optional JSON file, then environment
// variables prefixed with WALKGRID_.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"

	"chosenoffset.com/walkgrid/internal/core/geometry"
	"chosenoffset.com/walkgrid/internal/core/walkability"
)

// EnvPrefix prefixes every environment override, e.g. WALKGRID_PLANE.
const EnvPrefix = "WALKGRID"

// Config holds all pipeline settings
type Config struct {
	// Geometry
	Plane   string  `json:"plane" envconfig:"PLANE"`     // Ground plane axes, e.g. "xz"
	Epsilon float64 `json:"epsilon" envconfig:"EPSILON"` // Collinearity tolerance
	Extreme float64 `json:"extreme" envconfig:"EXTREME"` // Containment ray length

	// Rasterization
	Occupancy      string  `json:"occupancy" envconfig:"OCCUPANCY"`             // "points" or "containment"
	MatchTolerance float64 `json:"match_tolerance" envconfig:"MATCH_TOLERANCE"` // Point mode per-axis tolerance

	// Pathfinding
	AllowDiagonal bool `json:"allow_diagonal" envconfig:"ALLOW_DIAGONAL"`

	// Viewer
	ScreenWidth   int     `json:"screen_width" envconfig:"SCREEN_WIDTH"`
	ScreenHeight  int     `json:"screen_height" envconfig:"SCREEN_HEIGHT"`
	PixelsPerUnit float64 `json:"pixels_per_unit" envconfig:"PIXELS_PER_UNIT"` // 0 fits the grid to the window
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Plane:          geometry.PlaneXZ.String(),
		Epsilon:        geometry.DefaultEpsilon,
		Extreme:        geometry.DefaultExtreme,
		Occupancy:      walkability.OccupancyPoints.String(),
		MatchTolerance: 0,
		AllowDiagonal:  true,
		ScreenWidth:    1280,
		ScreenHeight:   800,
		PixelsPerUnit:  0,
	}
}

// Load builds a Config from defaults, the JSON file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if _, err := geometry.ParsePlane(c.Plane); err != nil {
		return err
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("epsilon must be non-negative, got %v", c.Epsilon)
	}
	if c.Extreme <= 0 {
		return fmt.Errorf("extreme must be positive, got %v", c.Extreme)
	}
	if _, err := walkability.ParseOccupancy(c.Occupancy); err != nil {
		return err
	}
	if c.MatchTolerance < 0 {
		return fmt.Errorf("match_tolerance must be non-negative, got %v", c.MatchTolerance)
	}
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen size: %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	if c.PixelsPerUnit < 0 {
		return fmt.Errorf("pixels_per_unit must be non-negative, got %v", c.PixelsPerUnit)
	}
	return nil
}

// GroundPlane returns the parsed plane. Call Validate first.
func (c *Config) GroundPlane() geometry.Plane {
	plane, err := geometry.ParsePlane(c.Plane)
	if err != nil {
		return geometry.PlaneXZ
	}
	return plane
}

// Predicates returns the geometry settings.
func (c *Config) Predicates() geometry.Predicates {
	return geometry.Predicates{
		Plane:   c.GroundPlane(),
		Epsilon: c.Epsilon,
		Extreme: c.Extreme,
	}
}

// RasterOptions returns the rasterizer settings.
func (c *Config) RasterOptions() walkability.Options {
	occ, err := walkability.ParseOccupancy(c.Occupancy)
	if err != nil {
		occ = walkability.OccupancyPoints
	}
	return walkability.Options{
		Occupancy:      occ,
		MatchTolerance: c.MatchTolerance,
	}
}
