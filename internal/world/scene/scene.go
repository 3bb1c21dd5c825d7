// Package scene loads obstacle authoring files: the grid placement, the
// seeker and target endpoints, and the obstacle regions to rasterize.
package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"chosenoffset.com/walkgrid/internal/core/geometry"
	"chosenoffset.com/walkgrid/internal/world/grid"
)

// Snap modes for obstacle regions
const (
	SnapNone     = ""         // Use the authored points as they are
	SnapVertices = "vertices" // Move every authored point to its cell centre
	SnapFill     = "fill"     // Replace the outline with every cell centre it contains
)

// GridSpec places the navigation grid in the world
type GridSpec struct {
	Origin     geometry.Point `json:"origin"`      // Bottom-left corner
	NodeRadius float64        `json:"node_radius"` // Half the cell edge
	SizeX      int            `json:"size_x"`
	SizeY      int            `json:"size_y"`
}

// Obstacle is one occupied region. Points may be a polygon outline, in
// authoring order, or an explicit set of occupied positions.
type Obstacle struct {
	ID     uuid.UUID        `json:"id"`
	Name   string           `json:"name"`
	Points []geometry.Point `json:"points"`
	Snap   string           `json:"snap,omitempty"`
}

// Polygon returns the obstacle points as a closed polygon.
func (o Obstacle) Polygon() geometry.Polygon {
	return geometry.Polygon(o.Points)
}

// Label returns a human readable name for logs.
func (o Obstacle) Label() string {
	if o.Name != "" {
		return o.Name
	}
	return o.ID.String()
}

// Scene is a loaded authoring file
type Scene struct {
	Name      string         `json:"name"`
	Grid      GridSpec       `json:"grid"`
	Seeker    geometry.Point `json:"seeker"`
	Target    geometry.Point `json:"target"`
	Obstacles []Obstacle     `json:"obstacles"`
}

// Load reads and validates a scene file. Obstacles without an id get a
// fresh random one.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid scene file %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates scene JSON.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	if err := validateScene(&s); err != nil {
		return nil, err
	}

	for i := range s.Obstacles {
		if s.Obstacles[i].ID == uuid.Nil {
			s.Obstacles[i].ID = uuid.New()
		}
	}

	return &s, nil
}

func validateScene(s *Scene) error {
	if s.Grid.SizeX <= 0 || s.Grid.SizeY <= 0 {
		return fmt.Errorf("invalid grid dimensions: %dx%d", s.Grid.SizeX, s.Grid.SizeY)
	}
	if s.Grid.NodeRadius <= 0 {
		return fmt.Errorf("invalid node radius: %v", s.Grid.NodeRadius)
	}

	seen := make(map[uuid.UUID]bool)
	for i, o := range s.Obstacles {
		switch o.Snap {
		case SnapNone, SnapVertices, SnapFill:
		default:
			return fmt.Errorf("obstacle %d: unknown snap mode %q", i, o.Snap)
		}
		if len(o.Points) == 0 {
			return fmt.Errorf("obstacle %d (%s): no points", i, o.Name)
		}
		if o.ID != uuid.Nil {
			if seen[o.ID] {
				return fmt.Errorf("obstacle %d: duplicate id %s", i, o.ID)
			}
			seen[o.ID] = true
		}
	}

	return nil
}

// Layout builds the grid layout on the given ground plane.
func (s *Scene) Layout(plane geometry.Plane) grid.Layout {
	return grid.Layout{
		Origin:     s.Grid.Origin,
		NodeRadius: s.Grid.NodeRadius,
		SizeX:      s.Grid.SizeX,
		SizeY:      s.Grid.SizeY,
		Plane:      plane,
	}
}

// Region converts the obstacle into the form the rasterizer consumes.
func (o Obstacle) Region() geometry.Region {
	return geometry.Region{Name: o.Label(), Points: o.Points}
}

// Regions returns the snapped obstacles as rasterizer regions.
func (s *Scene) Regions(layout grid.Layout, pr geometry.Predicates) []geometry.Region {
	snapped := s.Snapped(layout, pr)
	regions := make([]geometry.Region, len(snapped))
	for i, o := range snapped {
		regions[i] = o.Region()
	}
	return regions
}

// Snapped returns the obstacles with each one's snap mode applied against
// the layout.
func (s *Scene) Snapped(layout grid.Layout, pr geometry.Predicates) []Obstacle {
	regions := make([]Obstacle, 0, len(s.Obstacles))
	for _, o := range s.Obstacles {
		switch o.Snap {
		case SnapVertices:
			regions = append(regions, SnapToLayout(o, layout))
		case SnapFill:
			regions = append(regions, FillLayout(o, layout, pr))
		default:
			regions = append(regions, o)
		}
	}
	return regions
}
