package grid

import (
	"fmt"
	"math"

	"chosenoffset.com/walkgrid/internal/core/geometry"
)

// Layout describes where the grid sits in the world. Cell world positions
// are always derived from it and never stored independently.
type Layout struct {
	Origin     geometry.Point // Bottom-left corner of the grid in world space
	NodeRadius float64        // Half the cell edge length
	SizeX      int            // Cells along the plane's U axis
	SizeY      int            // Cells along the plane's V axis
	Plane      geometry.Plane // Ground plane the grid is laid on
}

// NodeDiameter returns the cell edge length.
func (l Layout) NodeDiameter() float64 {
	return l.NodeRadius * 2
}

// Validate checks the layout parameters.
func (l Layout) Validate() error {
	if l.SizeX <= 0 || l.SizeY <= 0 {
		return fmt.Errorf("invalid grid dimensions: %dx%d", l.SizeX, l.SizeY)
	}
	if l.NodeRadius <= 0 || math.IsNaN(l.NodeRadius) || math.IsInf(l.NodeRadius, 0) {
		return fmt.Errorf("invalid node radius: %v", l.NodeRadius)
	}
	if !l.Plane.Valid() {
		return fmt.Errorf("invalid grid plane: %v", l.Plane)
	}
	return nil
}

// WorldPoint returns the world position of the centre of cell (x, y).
func (l Layout) WorldPoint(x, y int) geometry.Point {
	d := l.NodeDiameter()
	return l.Plane.Offset(l.Origin, float64(x)*d+l.NodeRadius, float64(y)*d+l.NodeRadius)
}

// NodeFromWorldPoint returns the coordinates of the cell containing p.
// Points outside the grid are clamped to the nearest edge cell.
func (l Layout) NodeFromWorldPoint(p geometry.Point) (x, y int) {
	x, y, _ = l.CellOf(p)
	return clamp(x, 0, l.SizeX-1), clamp(y, 0, l.SizeY-1)
}

// CellOf returns the unclamped coordinates of the cell containing p. ok is
// false when p falls outside the grid.
func (l Layout) CellOf(p geometry.Point) (x, y int, ok bool) {
	d := l.NodeDiameter()
	local := l.Plane.Project(p)
	origin := l.Plane.Project(l.Origin)

	x = int(math.Floor((local.X - origin.X) / d))
	y = int(math.Floor((local.Y - origin.Y) / d))
	return x, y, l.InBounds(x, y)
}

// InBounds reports whether (x, y) addresses a cell of this layout.
func (l Layout) InBounds(x, y int) bool {
	return x >= 0 && x < l.SizeX && y >= 0 && y < l.SizeY
}

// WorldSize returns the grid extent along U and V.
func (l Layout) WorldSize() (u, v float64) {
	d := l.NodeDiameter()
	return float64(l.SizeX) * d, float64(l.SizeY) * d
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
