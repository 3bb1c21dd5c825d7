// Package viewer is the interactive front end: it draws the grid, the
// blocked-cell markers and the current route, and maps keys to the
// pathfinder and rasterizer triggers.
package viewer

import (
	"fmt"
	"log"
	"math"

	"chosenoffset.com/walkgrid/internal/core/geometry"
	"chosenoffset.com/walkgrid/internal/core/walkability"
	"chosenoffset.com/walkgrid/internal/nav/pathfind"
	"chosenoffset.com/walkgrid/internal/render"
	"chosenoffset.com/walkgrid/internal/render/markers"
	"chosenoffset.com/walkgrid/internal/world/grid"
)

const (
	messageDuration = 3.0
	defaultMargin   = 24.0
)

// Viewer holds the view state and the collaborators it drives.
type Viewer struct {
	ScreenWidth  int
	ScreenHeight int
	// PixelsPerUnit fixes the zoom; zero fits the grid to the screen.
	PixelsPerUnit float64

	Renderer   render.Renderer
	InputMgr   render.InputManager
	Grid       *grid.Grid
	Pathfinder *pathfind.Pathfinder
	Rasterizer *walkability.Rasterizer
	Markers    *markers.Layer
	Regions    []geometry.Region

	ShowGrid   bool
	LastReport walkability.Report
	Messages   []Message
}

// Update handles one tick of input.
func (v *Viewer) Update() error {
	dt := 1.0 / 60.0
	v.updateMessages(dt)

	if v.InputMgr == nil {
		return nil
	}

	if v.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}

	// Clear path buffers
	if v.InputMgr.IsKeyJustPressed(render.KeyD) {
		v.Pathfinder.ClearPath()
		v.ShowMessage("Path cleared")
	}

	// Recompute path between the current endpoints
	if v.InputMgr.IsKeyJustPressed(render.KeyC) {
		v.FindPath()
	}

	if v.InputMgr.IsKeyJustPressed(render.KeyR) {
		v.Rasterize()
	}

	if v.InputMgr.IsKeyJustPressed(render.KeyG) {
		v.ShowGrid = !v.ShowGrid
	}

	if v.InputMgr.IsKeyJustPressed(render.KeyM) && v.Markers != nil {
		v.Markers.SetVisible(!v.Markers.IsVisible())
	}

	// Left click moves the seeker, right click moves the target
	if v.InputMgr.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		v.moveEndpoint(true)
	}
	if v.InputMgr.IsMouseButtonJustPressed(render.MouseButtonRight) {
		v.moveEndpoint(false)
	}

	return nil
}

// Layout returns the viewer's logical screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.ScreenWidth, v.ScreenHeight
}

// Rasterize re-runs the walkability pass over the whole grid.
func (v *Viewer) Rasterize() {
	sizeX, sizeY := v.Grid.Size()
	report, err := v.Rasterizer.SetWalkability(v.Regions, sizeX, sizeY)
	if err != nil {
		log.Printf("Walkability pass failed: %v", err)
		v.ShowMessage("Walkability pass failed")
		return
	}
	v.LastReport = report
	v.ShowMessage(fmt.Sprintf("Rasterized %d cells, %d blocked", report.Cells, report.Blocked))
}

// FindPath asks the pathfinder for a route between the rasterizer's
// endpoints.
func (v *Viewer) FindPath() {
	ep := v.Rasterizer.Endpoints()
	v.Pathfinder.FindPath(ep.Seeker, ep.Target)
	if v.Pathfinder.Found() {
		v.ShowMessage(fmt.Sprintf("Path found: %d nodes, cost %.2f", len(v.Pathfinder.Path()), v.Pathfinder.Cost()))
	} else {
		v.ShowMessage("No path")
	}
}

func (v *Viewer) moveEndpoint(seeker bool) {
	sx, sy := v.InputMgr.GetCursorPosition()
	view := v.View()
	layout := v.Grid.Layout()
	ep := v.Rasterizer.Endpoints()

	pos := v.Grid.NodeFromWorldPoint(view.ToWorld(layout.Plane, layout.Origin, sx, sy)).WorldPosition()
	if seeker {
		ep.Seeker = pos
	} else {
		ep.Target = pos
	}
	v.Rasterizer.SetEndpoints(ep)
	v.FindPath()
}

// View returns the current world to screen mapping.
func (v *Viewer) View() View {
	layout := v.Grid.Layout()
	origin := layout.Plane.Project(layout.Origin)
	view := View{
		OriginU: origin.X,
		OriginV: origin.Y,
		Scale:   v.PixelsPerUnit,
		Margin:  defaultMargin,
	}
	if view.Scale <= 0 {
		u, w := layout.WorldSize()
		avail := math.Max(1, float64(v.ScreenWidth)-2*view.Margin)
		availV := math.Max(1, float64(v.ScreenHeight)-2*view.Margin)
		view.Scale = math.Min(avail/u, availV/w)
	}
	return view
}

func (v *Viewer) updateMessages(dt float64) {
	var active []Message
	for _, msg := range v.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	v.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (v *Viewer) ShowMessage(text string) {
	v.Messages = append(v.Messages, Message{
		Text:     text,
		TimeLeft: messageDuration,
		MaxTime:  messageDuration,
	})
	log.Printf("Message: %s", text)
}
