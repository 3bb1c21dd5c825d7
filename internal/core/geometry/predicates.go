// Package geometry provides the segment and polygon predicates used to
// classify obstacle geometry against the navigation grid.
//
// Every test works on two of the three world axes, chosen by a Plane. The
// orientation test, the bounding check and the containment ray all project
// through the same Plane so they always agree on which axis is height.
package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultExtreme is the ray length used by IsInside. Scenes whose
// coordinates reach this magnitude along the plane's U axis are classified
// incorrectly, and nothing detects it.
const DefaultExtreme = 10000

// DefaultEpsilon is the collinearity tolerance applied by Default.
const DefaultEpsilon = 1e-9

// Orientation is the rotational sense of an ordered point triple
type Orientation int

const (
	Collinear Orientation = iota
	Clockwise
	CounterClockwise
)

func (o Orientation) String() string {
	switch o {
	case Collinear:
		return "collinear"
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	default:
		return fmt.Sprintf("orientation(%d)", int(o))
	}
}

// Predicates bundles the plane and tolerances shared by all tests.
type Predicates struct {
	// Plane selects the ground plane axes.
	Plane Plane
	// Epsilon is the absolute tolerance on the cross product when deciding
	// collinearity, and the slack applied to the OnSegment bounding box.
	// Zero gives exact floating point comparisons.
	Epsilon float64
	// Extreme is the U coordinate of the far end of the containment ray.
	Extreme float64
}

// Default returns predicates on the XZ ground plane with DefaultEpsilon and
// DefaultExtreme.
func Default() Predicates {
	return Predicates{
		Plane:   PlaneXZ,
		Epsilon: DefaultEpsilon,
		Extreme: DefaultExtreme,
	}
}

// Orientation classifies the ordered triple (p, q, r) from the sign of the
// cross product of (q-p) and (r-q) in the ground plane.
func (pr Predicates) Orientation(p, q, r Point) Orientation {
	pv, qv, rv := pr.Plane.Project(p), pr.Plane.Project(q), pr.Plane.Project(r)
	val := r2.Cross(r2.Sub(rv, qv), r2.Sub(qv, pv))

	if scalar.EqualWithinAbs(val, 0, pr.Epsilon) {
		return Collinear
	}
	if val > 0 {
		return Clockwise
	}
	return CounterClockwise
}

// OnSegment reports whether q lies inside the bounding box of p and r.
// It does not check collinearity; callers establish that with Orientation.
func (pr Predicates) OnSegment(p, q, r Point) bool {
	pv, qv, rv := pr.Plane.Project(p), pr.Plane.Project(q), pr.Plane.Project(r)
	box := Bounds{
		Min: r2.Vec{X: min(pv.X, rv.X), Y: min(pv.Y, rv.Y)},
		Max: r2.Vec{X: max(pv.X, rv.X), Y: max(pv.Y, rv.Y)},
	}
	return box.Contains(qv, pr.Epsilon)
}

// DoIntersect reports whether segment p1q1 touches segment p2q2, including
// collinear overlaps and shared endpoints.
func (pr Predicates) DoIntersect(p1, q1, p2, q2 Point) bool {
	o1 := pr.Orientation(p1, q1, p2)
	o2 := pr.Orientation(p1, q1, q2)
	o3 := pr.Orientation(p2, q2, p1)
	o4 := pr.Orientation(p2, q2, q1)

	// The segments straddle each other
	if o1 != o2 && o3 != o4 {
		return true
	}

	// One endpoint lies on the other segment
	if o1 == Collinear && pr.OnSegment(p1, p2, q1) {
		return true
	}
	if o2 == Collinear && pr.OnSegment(p1, q2, q1) {
		return true
	}
	if o3 == Collinear && pr.OnSegment(p2, p1, q2) {
		return true
	}
	if o4 == Collinear && pr.OnSegment(p2, q1, q2) {
		return true
	}

	return false
}

// Intersects is DoIntersect on two Segment values.
func (pr Predicates) Intersects(a, b Segment) bool {
	return pr.DoIntersect(a.P, a.Q, b.P, b.Q)
}

// IsInside reports whether p lies inside or on the boundary of polygon,
// using the crossing number rule. Polygons with fewer than 3 vertices
// contain nothing.
//
// The ray runs parallel to the plane's U axis. When it passes exactly
// through a vertex, both edges meeting there count as crossings, so points
// level with a vertex can be misclassified.
func (pr Predicates) IsInside(polygon Polygon, p Point) bool {
	edges := polygon.Edges()
	if edges == nil {
		return false
	}

	ray := Segment{P: p, Q: p.With(pr.Plane.U, pr.Extreme)}

	count := 0
	for _, e := range edges {
		if !pr.Intersects(e, ray) {
			continue
		}
		// A point collinear with an edge is decided by that edge alone
		if pr.Orientation(e.P, p, e.Q) == Collinear {
			return pr.OnSegment(e.P, p, e.Q)
		}
		count++
	}

	return count%2 == 1
}

// Orient classifies (p, q, r) with the Default predicates.
func Orient(p, q, r Point) Orientation {
	return Default().Orientation(p, q, r)
}

// OnSegment checks q against the bounding box of p and r with the Default
// predicates.
func OnSegment(p, q, r Point) bool {
	return Default().OnSegment(p, q, r)
}

// DoIntersect tests segments p1q1 and p2q2 with the Default predicates.
func DoIntersect(p1, q1, p2, q2 Point) bool {
	return Default().DoIntersect(p1, q1, p2, q2)
}

// IsInside tests containment with the Default predicates.
func IsInside(polygon Polygon, p Point) bool {
	return Default().IsInside(polygon, p)
}
