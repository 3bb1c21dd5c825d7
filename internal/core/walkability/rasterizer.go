// Package walkability rebuilds the walkable flag of every grid cell from a
// set of obstacle regions, then asks the pathfinder for a fresh route.
//
// A pass is a full rewrite: every cell in [0, sizeX) x [0, sizeY) is
// replaced exactly once. Cost is O(cells x obstacle points) in point mode.
// Containment mode prunes each region by its bounding box first.
package walkability

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"gonum.org/v1/gonum/floats/scalar"

	"chosenoffset.com/walkgrid/internal/core/geometry"
	"chosenoffset.com/walkgrid/internal/world/grid"
)

// ErrDimensions is returned when the requested pass does not fit the grid.
var ErrDimensions = errors.New("rasterization dimensions do not fit grid")

// BlockedColor is the marker colour for unwalkable cells.
var BlockedColor = color.RGBA{255, 0, 0, 255}

// Occupancy selects how a cell is tested against obstacle regions
type Occupancy int

const (
	// OccupancyPoints blocks a cell whose world position equals any obstacle
	// point on all three axes, within MatchTolerance. Obstacle points must
	// already be snapped to cell centres for this to match.
	OccupancyPoints Occupancy = iota
	// OccupancyContainment blocks a cell whose world position lies inside or
	// on the boundary of any obstacle region taken as a polygon. A cell
	// centre level with a polygon vertex along the plane's V axis can be
	// misclassified, since the ray through that vertex is counted twice.
	// Keep vertices off cell-centre rows, e.g. on cell edges.
	OccupancyContainment
)

func (o Occupancy) String() string {
	switch o {
	case OccupancyPoints:
		return "points"
	case OccupancyContainment:
		return "containment"
	default:
		return fmt.Sprintf("occupancy(%d)", int(o))
	}
}

// ParseOccupancy converts a config string into an Occupancy.
func ParseOccupancy(s string) (Occupancy, error) {
	switch s {
	case "points":
		return OccupancyPoints, nil
	case "containment":
		return OccupancyContainment, nil
	default:
		return 0, fmt.Errorf("unknown occupancy mode %q", s)
	}
}

// Options tunes a Rasterizer
type Options struct {
	Occupancy      Occupancy
	MatchTolerance float64 // Per-axis tolerance for OccupancyPoints; 0 is exact
}

// Pathfinder recomputes a route over the grid's current walkability.
type Pathfinder interface {
	FindPath(start, end geometry.Point)
}

// Presenter shows a marker per blocked cell. It only observes the pass.
type Presenter interface {
	ClearMarkers()
	PlaceMarker(pos geometry.Point, clr color.Color)
}

// Endpoints are the seeker and target positions routed after every pass
type Endpoints struct {
	Seeker geometry.Point
	Target geometry.Point
}

// Report summarises one pass.
type Report struct {
	Cells    int
	Blocked  int
	Duration time.Duration
}

// Rasterizer writes cell walkability into a grid it does not own.
type Rasterizer struct {
	grid       *grid.Grid
	predicates geometry.Predicates
	options    Options
	pathfinder Pathfinder
	presenter  Presenter
	endpoints  Endpoints
}

// NewRasterizer creates a rasterizer for g. pathfinder and presenter may be
// nil.
func NewRasterizer(g *grid.Grid, pr geometry.Predicates, opts Options, pathfinder Pathfinder, presenter Presenter) *Rasterizer {
	return &Rasterizer{
		grid:       g,
		predicates: pr,
		options:    opts,
		pathfinder: pathfinder,
		presenter:  presenter,
	}
}

// SetEndpoints sets the positions routed after each pass.
func (r *Rasterizer) SetEndpoints(e Endpoints) {
	r.endpoints = e
}

// Endpoints returns the positions routed after each pass.
func (r *Rasterizer) Endpoints() Endpoints {
	return r.endpoints
}

// SetWalkability rewrites every cell in [0, sizeX) x [0, sizeY) from the
// obstacle regions, marks blocked cells, and recomputes the route.
func (r *Rasterizer) SetWalkability(regions []geometry.Region, sizeX, sizeY int) (Report, error) {
	gx, gy := r.grid.Size()
	if sizeX <= 0 || sizeY <= 0 || sizeX > gx || sizeY > gy {
		return Report{}, fmt.Errorf("%w: requested %dx%d, grid is %dx%d", ErrDimensions, sizeX, sizeY, gx, gy)
	}

	if err := r.grid.BeginWrite(); err != nil {
		return Report{}, err
	}

	start := time.Now()
	occupied := r.occupancyTest(regions)
	layout := r.grid.Layout()

	if r.presenter != nil {
		r.presenter.ClearMarkers()
	}

	report := Report{}
	for x := 0; x < sizeX; x++ {
		for y := 0; y < sizeY; y++ {
			worldPoint := layout.WorldPoint(x, y)
			walkable := !occupied(worldPoint)

			if err := r.grid.Set(grid.NewNode(walkable, worldPoint, x, y)); err != nil {
				r.grid.EndWrite()
				return report, err
			}
			report.Cells++

			if !walkable {
				report.Blocked++
				if r.presenter != nil {
					r.presenter.PlaceMarker(worldPoint, BlockedColor)
				}
			}
		}
	}
	r.grid.EndWrite()
	report.Duration = time.Since(start)

	log.Printf("Walkability pass (%s): %d cells, %d blocked, %d regions in %v",
		r.options.Occupancy, report.Cells, report.Blocked, len(regions), report.Duration)

	if r.pathfinder != nil {
		r.pathfinder.FindPath(r.endpoints.Seeker, r.endpoints.Target)
	}

	return report, nil
}

// occupancyTest returns the per-cell test for the configured mode.
func (r *Rasterizer) occupancyTest(regions []geometry.Region) func(geometry.Point) bool {
	if r.options.Occupancy == OccupancyContainment {
		return r.containmentTest(regions)
	}

	tol := r.options.MatchTolerance
	return func(p geometry.Point) bool {
		for _, region := range regions {
			for _, q := range region.Points {
				if scalar.EqualWithinAbs(p.X, q.X, tol) &&
					scalar.EqualWithinAbs(p.Y, q.Y, tol) &&
					scalar.EqualWithinAbs(p.Z, q.Z, tol) {
					return true
				}
			}
		}
		return false
	}
}

type boundedPolygon struct {
	polygon geometry.Polygon
	bounds  geometry.Bounds
}

func (r *Rasterizer) containmentTest(regions []geometry.Region) func(geometry.Point) bool {
	plane := r.predicates.Plane
	polygons := make([]boundedPolygon, 0, len(regions))
	for _, region := range regions {
		poly := region.Polygon()
		if len(poly) < 3 {
			log.Printf("Skipping obstacle %s: %d points cannot enclose a cell", region.Name, len(poly))
			continue
		}
		b, _ := poly.Bounds(plane)
		polygons = append(polygons, boundedPolygon{polygon: poly, bounds: b})
	}

	return func(p geometry.Point) bool {
		v := plane.Project(p)
		for _, bp := range polygons {
			if !bp.bounds.Contains(v, r.predicates.Epsilon) {
				continue
			}
			if r.predicates.IsInside(bp.polygon, p) {
				return true
			}
		}
		return false
	}
}
