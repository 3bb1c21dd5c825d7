package viewer

import (
	"fmt"
	"image/color"

	"chosenoffset.com/walkgrid/internal/render"
)

var (
	backgroundColor = color.RGBA{18, 20, 26, 255}
	walkableColor   = color.RGBA{52, 58, 70, 255}
	blockedColor    = color.RGBA{110, 34, 34, 255}
	gridLineColor   = color.RGBA{30, 33, 40, 255}
	pathColor       = color.RGBA{40, 110, 255, 255}
	seekerColor     = color.RGBA{30, 170, 60, 255}
	targetColor     = color.RGBA{230, 150, 20, 255}
	textColor       = color.RGBA{220, 220, 220, 255}
)

// Draw renders the grid, markers, route and overlay text.
func (v *Viewer) Draw(screen render.Image) {
	screen.Fill(backgroundColor)
	if v.Renderer == nil || v.Grid == nil {
		return
	}

	view := v.View()
	v.drawCells(screen, view)
	v.drawMarkers(screen, view)
	v.drawPath(screen, view)
	v.drawEndpoints(screen, view)
	v.drawUI(screen)
}

func (v *Viewer) drawCells(screen render.Image, view View) {
	layout := v.Grid.Layout()
	radius := float32(layout.NodeRadius * view.Scale)
	gap := float32(0)
	if v.ShowGrid && radius > 2 {
		gap = 1
	}

	for x := 0; x < layout.SizeX; x++ {
		for y := 0; y < layout.SizeY; y++ {
			cx, cy := view.ToScreen(layout.Plane, layout.WorldPoint(x, y))
			clr := walkableColor
			if !v.Grid.Walkable(x, y) {
				clr = blockedColor
			}
			v.Renderer.FillRect(screen, cx-radius+gap, cy-radius+gap, 2*radius-2*gap, 2*radius-2*gap, clr)
		}
	}

	if !v.ShowGrid {
		return
	}
	// Outline so the grid extent is visible when cells touch
	x0, y0 := view.ToScreen(layout.Plane, layout.Origin)
	u, w := layout.WorldSize()
	x1, y1 := x0+float32(u*view.Scale), y0+float32(w*view.Scale)
	v.Renderer.StrokeLine(screen, x0, y0, x1, y0, 1, gridLineColor)
	v.Renderer.StrokeLine(screen, x1, y0, x1, y1, 1, gridLineColor)
	v.Renderer.StrokeLine(screen, x1, y1, x0, y1, 1, gridLineColor)
	v.Renderer.StrokeLine(screen, x0, y1, x0, y0, 1, gridLineColor)
}

func (v *Viewer) drawMarkers(screen render.Image, view View) {
	if v.Markers == nil || !v.Markers.IsVisible() {
		return
	}
	layout := v.Grid.Layout()
	r := max(float32(layout.NodeRadius*view.Scale)/2, 1)
	for _, m := range v.Markers.Markers() {
		x, y := view.ToScreen(layout.Plane, m.Position)
		v.Renderer.FillCircle(screen, x, y, r, m.Color)
	}
}

func (v *Viewer) drawPath(screen render.Image, view View) {
	if v.Pathfinder == nil {
		return
	}
	layout := v.Grid.Layout()
	waypoints := v.Pathfinder.Waypoints()
	for i := 1; i < len(waypoints); i++ {
		x0, y0 := view.ToScreen(layout.Plane, waypoints[i-1])
		x1, y1 := view.ToScreen(layout.Plane, waypoints[i])
		v.Renderer.StrokeLine(screen, x0, y0, x1, y1, 3, pathColor)
	}
}

func (v *Viewer) drawEndpoints(screen render.Image, view View) {
	if v.Rasterizer == nil {
		return
	}
	layout := v.Grid.Layout()
	r := max(float32(layout.NodeRadius*view.Scale)*0.8, 3)
	ep := v.Rasterizer.Endpoints()

	x, y := view.ToScreen(layout.Plane, ep.Seeker)
	v.Renderer.StrokeCircle(screen, x, y, r, 2, seekerColor)
	x, y = view.ToScreen(layout.Plane, ep.Target)
	v.Renderer.StrokeCircle(screen, x, y, r, 2, targetColor)
}

// Status summarises the last pass and the current route.
func (v *Viewer) Status() string {
	status := fmt.Sprintf("%d cells, %d blocked, pass %s", v.LastReport.Cells, v.LastReport.Blocked, v.LastReport.Duration)
	if v.Markers != nil {
		status += fmt.Sprintf(", %d markers", v.Markers.Len())
	}
	if v.Pathfinder != nil && v.Pathfinder.Found() {
		status += fmt.Sprintf(" | path %d nodes, cost %.2f, %d expanded",
			len(v.Pathfinder.Path()), v.Pathfinder.Cost(), v.Pathfinder.Expanded())
	}
	return status
}

func (v *Viewer) drawUI(screen render.Image) {
	v.Renderer.DrawText(screen, v.Status(), 4, 4, textColor)

	help := "C: path  D: clear  R: rasterize  G: grid  M: markers  Esc: quit"
	_, th := v.Renderer.MeasureText(help)
	_, sh := screen.Size()
	v.Renderer.DrawText(screen, help, 4, sh-th-4, textColor)

	// On-screen messages
	y := 24
	for _, msg := range v.Messages {
		alpha := uint8(255 * (msg.TimeLeft / msg.MaxTime))
		v.Renderer.DrawText(screen, msg.Text, 20, y, color.RGBA{255, 255, 255, alpha})
		y += 16
	}
}
