package scene

import (
	"chosenoffset.com/walkgrid/internal/core/geometry"
	"chosenoffset.com/walkgrid/internal/world/grid"
)

// SnapToLayout moves every point of o to the centre of the cell containing
// it. Points landing in the same cell collapse into one; order is kept.
// Points outside the grid are dropped.
func SnapToLayout(o Obstacle, layout grid.Layout) Obstacle {
	type coord struct{ x, y int }
	seen := make(map[coord]bool)

	snapped := o
	snapped.Points = make([]geometry.Point, 0, len(o.Points))
	for _, p := range o.Points {
		x, y, ok := layout.CellOf(p)
		if !ok {
			continue
		}
		c := coord{x, y}
		if seen[c] {
			continue
		}
		seen[c] = true
		snapped.Points = append(snapped.Points, layout.WorldPoint(x, y))
	}
	snapped.Snap = SnapNone
	return snapped
}

// FillLayout replaces the outline of o with the centres of every cell that
// lies inside it. Outlines with fewer than 3 points fall back to
// SnapToLayout.
func FillLayout(o Obstacle, layout grid.Layout, pr geometry.Predicates) Obstacle {
	poly := o.Polygon()
	bounds, ok := poly.Bounds(layout.Plane)
	if !ok || len(poly) < 3 {
		return SnapToLayout(o, layout)
	}

	filled := o
	filled.Points = nil
	for x := 0; x < layout.SizeX; x++ {
		for y := 0; y < layout.SizeY; y++ {
			centre := layout.WorldPoint(x, y)
			if !bounds.Contains(layout.Plane.Project(centre), pr.Epsilon) {
				continue
			}
			if pr.IsInside(poly, centre) {
				filled.Points = append(filled.Points, centre)
			}
		}
	}
	filled.Snap = SnapNone
	return filled
}
