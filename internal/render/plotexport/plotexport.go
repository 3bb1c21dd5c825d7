// Package plotexport writes a headless image of a walkability pass: the
// blocked-cell markers, the route and its endpoints.
package plotexport

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"chosenoffset.com/walkgrid/internal/core/geometry"
	"chosenoffset.com/walkgrid/internal/render/markers"
	"chosenoffset.com/walkgrid/internal/world/grid"
)

// DefaultSize is the edge length of exported images.
const DefaultSize = 8 * vg.Inch

var (
	routeColor  = color.RGBA{40, 110, 255, 255}
	seekerColor = color.RGBA{30, 170, 60, 255}
	targetColor = color.RGBA{230, 150, 20, 255}
)

// Snapshot is everything drawn in one export
type Snapshot struct {
	Title     string
	Layout    grid.Layout
	Markers   []markers.Marker
	Waypoints []geometry.Point
	Seeker    geometry.Point
	Target    geometry.Point
}

// Build lays out the snapshot as a plot in ground plane coordinates.
func Build(snap Snapshot) (*plot.Plot, error) {
	plane := snap.Layout.Plane
	p := plot.New()
	p.Title.Text = snap.Title
	p.X.Label.Text = plane.U.String()
	p.Y.Label.Text = plane.V.String()

	origin := plane.Project(snap.Layout.Origin)
	u, v := snap.Layout.WorldSize()
	p.X.Min, p.X.Max = origin.X, origin.X+u
	p.Y.Min, p.Y.Max = origin.Y, origin.Y+v
	p.Add(plotter.NewGrid())

	if len(snap.Markers) > 0 {
		xys := make(plotter.XYs, len(snap.Markers))
		for i, m := range snap.Markers {
			xys[i] = project(plane, m.Position)
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("failed to plot markers: %w", err)
		}
		radius := markerRadius(snap.Layout)
		s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  snap.Markers[i].Color,
				Radius: radius,
				Shape:  draw.BoxGlyph{},
			}
		}
		p.Add(s)
		p.Legend.Add("blocked", s)
	}

	if len(snap.Waypoints) > 1 {
		xys := make(plotter.XYs, len(snap.Waypoints))
		for i, w := range snap.Waypoints {
			xys[i] = project(plane, w)
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("failed to plot route: %w", err)
		}
		l.LineStyle.Color = routeColor
		l.LineStyle.Width = vg.Points(2)
		p.Add(l)
		p.Legend.Add("route", l)
	}

	for _, ep := range []struct {
		name string
		pos  geometry.Point
		clr  color.Color
	}{
		{"seeker", snap.Seeker, seekerColor},
		{"target", snap.Target, targetColor},
	} {
		s, err := plotter.NewScatter(plotter.XYs{project(plane, ep.pos)})
		if err != nil {
			return nil, fmt.Errorf("failed to plot %s: %w", ep.name, err)
		}
		s.GlyphStyle.Color = ep.clr
		s.GlyphStyle.Radius = vg.Points(5)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(ep.name, s)
	}

	return p, nil
}

// Save renders the snapshot to path. The format follows the file
// extension (png, svg, pdf...).
func Save(path string, snap Snapshot, size vg.Length) error {
	p, err := Build(snap)
	if err != nil {
		return err
	}
	if size <= 0 {
		size = DefaultSize
	}
	if err := p.Save(size, size, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}

func project(plane geometry.Plane, pt geometry.Point) plotter.XY {
	v := plane.Project(pt)
	return plotter.XY{X: v.X, Y: v.Y}
}

// markerRadius shrinks glyphs on large grids so neighbours stay distinct.
func markerRadius(l grid.Layout) vg.Length {
	cells := max(l.SizeX, l.SizeY)
	r := DefaultSize / vg.Length(cells) / 2.5
	return min(max(r, vg.Points(1)), vg.Points(6))
}
