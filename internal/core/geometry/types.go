package geometry

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point represents a position in 3D world space
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Segment represents an undirected edge between two points
type Segment struct {
	P, Q Point
}

// Polygon is an implicitly closed ring of points. The last point connects
// back to the first, and vertex order defines the orientation sign.
type Polygon []Point

// Region is a named obstacle: a polygon outline in authoring order, or an
// explicit set of occupied positions.
type Region struct {
	Name   string
	Points []Point
}

// Polygon returns the region points as a closed polygon.
func (r Region) Polygon() Polygon {
	return Polygon(r.Points)
}

// Axis names one of the three world axes
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Plane is the pair of axes forming the ground plane. U is the grid's x
// direction and the direction the containment ray travels; V is the grid's y
// direction. The remaining axis is height and never takes part in a test.
type Plane struct {
	U, V Axis
}

// Named ground planes
var (
	PlaneXY = Plane{U: AxisX, V: AxisY}
	PlaneXZ = Plane{U: AxisX, V: AxisZ}
	PlaneYZ = Plane{U: AxisY, V: AxisZ}
)

// ParsePlane converts a two letter axis pair such as "xz" into a Plane.
func ParsePlane(s string) (Plane, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return Plane{}, fmt.Errorf("invalid plane %q: expected two axis letters", s)
	}
	u, err := parseAxis(s[0])
	if err != nil {
		return Plane{}, fmt.Errorf("invalid plane %q: %w", s, err)
	}
	v, err := parseAxis(s[1])
	if err != nil {
		return Plane{}, fmt.Errorf("invalid plane %q: %w", s, err)
	}
	if u == v {
		return Plane{}, fmt.Errorf("invalid plane %q: axes must differ", s)
	}
	return Plane{U: u, V: v}, nil
}

func parseAxis(c byte) (Axis, error) {
	switch c {
	case 'x':
		return AxisX, nil
	case 'y':
		return AxisY, nil
	case 'z':
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("unknown axis %q", c)
	}
}

func (p Plane) String() string {
	return p.U.String() + p.V.String()
}

// Valid reports whether both axes exist and differ.
func (p Plane) Valid() bool {
	return p.U >= AxisX && p.U <= AxisZ && p.V >= AxisX && p.V <= AxisZ && p.U != p.V
}

// Project drops the height axis and returns the point's plane coordinates.
func (p Plane) Project(pt Point) r2.Vec {
	return r2.Vec{X: pt.Get(p.U), Y: pt.Get(p.V)}
}

// Offset returns pt moved by du along U and dv along V. Height is preserved.
func (p Plane) Offset(pt Point, du, dv float64) Point {
	pt = pt.With(p.U, pt.Get(p.U)+du)
	return pt.With(p.V, pt.Get(p.V)+dv)
}

// Get returns the coordinate on the given axis.
func (pt Point) Get(a Axis) float64 {
	switch a {
	case AxisX:
		return pt.X
	case AxisY:
		return pt.Y
	case AxisZ:
		return pt.Z
	default:
		panic(fmt.Errorf("invalid axis:%d", int(a)))
	}
}

// With returns a copy of pt with the coordinate on axis a replaced.
func (pt Point) With(a Axis, v float64) Point {
	switch a {
	case AxisX:
		pt.X = v
	case AxisY:
		pt.Y = v
	case AxisZ:
		pt.Z = v
	default:
		panic(fmt.Errorf("invalid axis:%d", int(a)))
	}
	return pt
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", pt.X, pt.Y, pt.Z)
}

// Bounds is an axis aligned rectangle in plane coordinates
type Bounds struct {
	Min, Max r2.Vec
}

// Contains reports whether v lies inside the rectangle grown by tol.
func (b Bounds) Contains(v r2.Vec, tol float64) bool {
	return v.X >= b.Min.X-tol && v.X <= b.Max.X+tol &&
		v.Y >= b.Min.Y-tol && v.Y <= b.Max.Y+tol
}

// Edges returns the closed ring of segments, wrapping from the last vertex to
// the first. Polygons with fewer than 3 vertices have no edges.
func (poly Polygon) Edges() []Segment {
	n := len(poly)
	if n < 3 {
		return nil
	}
	edges := make([]Segment, 0, n)
	for i := range poly {
		edges = append(edges, Segment{P: poly[i], Q: poly[(i+1)%n]})
	}
	return edges
}

// Bounds returns the plane bounding box of the polygon. ok is false for an
// empty polygon.
func (poly Polygon) Bounds(plane Plane) (b Bounds, ok bool) {
	if len(poly) == 0 {
		return Bounds{}, false
	}
	first := plane.Project(poly[0])
	b.Min, b.Max = first, first
	for _, pt := range poly[1:] {
		v := plane.Project(pt)
		b.Min.X = min(b.Min.X, v.X)
		b.Min.Y = min(b.Min.Y, v.Y)
		b.Max.X = max(b.Max.X, v.X)
		b.Max.Y = max(b.Max.Y, v.Y)
	}
	return b, true
}
