package viewer

import (
	"chosenoffset.com/walkgrid/internal/core/geometry"
)

// View maps ground plane coordinates to screen pixels.
type View struct {
	OriginU, OriginV float64 // Plane coordinates drawn at the margin corner
	Scale            float64 // Pixels per world unit
	Margin           float64 // Pixels left blank around the grid
}

// ToScreen converts a world point to screen pixels.
func (v View) ToScreen(plane geometry.Plane, pt geometry.Point) (x, y float32) {
	p := plane.Project(pt)
	return float32(v.Margin + (p.X-v.OriginU)*v.Scale), float32(v.Margin + (p.Y-v.OriginV)*v.Scale)
}

// ToWorld converts screen pixels back to a point on the plane at the
// height of ref.
func (v View) ToWorld(plane geometry.Plane, ref geometry.Point, sx, sy int) geometry.Point {
	u := (float64(sx)-v.Margin)/v.Scale + v.OriginU
	w := (float64(sy)-v.Margin)/v.Scale + v.OriginV
	return ref.With(plane.U, u).With(plane.V, w)
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}
