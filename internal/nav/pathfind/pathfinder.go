// Package pathfind computes routes over the walkable cells of a grid.
package pathfind

import (
	"log"
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"chosenoffset.com/walkgrid/internal/core/geometry"
	"chosenoffset.com/walkgrid/internal/world/grid"
)

// Pathfinder runs A* over the current walkability of a grid and keeps the
// last route in buffers the presentation layer can draw or clear.
type Pathfinder struct {
	grid     *grid.Grid
	diagonal bool

	// Route buffers
	path      []grid.Node
	waypoints []geometry.Point
	cost      float64
	expanded  int
	found     bool
}

// Option configures a Pathfinder.
type Option func(*Pathfinder)

// WithDiagonal allows moves between diagonally adjacent cells.
func WithDiagonal(enabled bool) Option {
	return func(p *Pathfinder) {
		p.diagonal = enabled
	}
}

// New creates a pathfinder over g.
func New(g *grid.Grid, opts ...Option) *Pathfinder {
	p := &Pathfinder{grid: g, diagonal: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FindPath recomputes the route between the cells containing start and end.
// When no route exists the buffers are left empty and Found reports false.
func (p *Pathfinder) FindPath(start, end geometry.Point) {
	p.ClearPath()

	layout := p.grid.Layout()
	startNode := p.grid.NodeFromWorldPoint(start)
	endNode := p.grid.NodeFromWorldPoint(end)
	sx, sy := startNode.GridX(), startNode.GridY()
	ex, ey := endNode.GridX(), endNode.GridY()

	if !startNode.Walkable() || !endNode.Walkable() {
		log.Printf("No path: endpoint blocked (start %d,%d end %d,%d)", sx, sy, ex, ey)
		return
	}

	g := p.buildGraph()
	from := g.Node(nodeID(layout, sx, sy))
	to := g.Node(nodeID(layout, ex, ey))

	shortest, expanded := path.AStar(from, to, g, p.heuristic)
	p.expanded = expanded

	route, cost := shortest.To(to.ID())
	if len(route) == 0 || math.IsInf(cost, 1) {
		log.Printf("No path from %d,%d to %d,%d (expanded %d)", sx, sy, ex, ey, expanded)
		return
	}

	p.found = true
	p.cost = cost
	p.path = make([]grid.Node, 0, len(route))
	p.waypoints = make([]geometry.Point, 0, len(route))
	for _, n := range route {
		x, y := coords(layout, n.ID())
		cell, err := p.grid.Node(x, y)
		if err != nil {
			continue
		}
		p.path = append(p.path, cell)
		p.waypoints = append(p.waypoints, cell.WorldPosition())
	}
}

// buildGraph links every walkable cell to its walkable neighbours.
func (p *Pathfinder) buildGraph() *simple.WeightedUndirectedGraph {
	layout := p.grid.Layout()
	d := layout.NodeDiameter()
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))

	for x := 0; x < layout.SizeX; x++ {
		for y := 0; y < layout.SizeY; y++ {
			if p.grid.Walkable(x, y) {
				g.AddNode(simple.Node(nodeID(layout, x, y)))
			}
		}
	}

	for x := 0; x < layout.SizeX; x++ {
		for y := 0; y < layout.SizeY; y++ {
			if !p.grid.Walkable(x, y) {
				continue
			}
			cell, _ := p.grid.Node(x, y)
			for _, nb := range p.grid.Neighbours(cell, p.diagonal) {
				if !nb.Walkable() {
					continue
				}
				w := d
				if nb.GridX() != x && nb.GridY() != y {
					w = d * math.Sqrt2
				}
				g.SetWeightedEdge(simple.WeightedEdge{
					F: simple.Node(nodeID(layout, x, y)),
					T: simple.Node(nodeID(layout, nb.GridX(), nb.GridY())),
					W: w,
				})
			}
		}
	}

	return g
}

// heuristic is the straight line distance between cell centres.
func (p *Pathfinder) heuristic(a, b graph.Node) float64 {
	layout := p.grid.Layout()
	ax, ay := coords(layout, a.ID())
	bx, by := coords(layout, b.ID())
	return math.Hypot(float64(ax-bx), float64(ay-by)) * layout.NodeDiameter()
}

func nodeID(l grid.Layout, x, y int) int64 {
	return int64(y*l.SizeX + x)
}

func coords(l grid.Layout, id int64) (x, y int) {
	return int(id) % l.SizeX, int(id) / l.SizeX
}

// ClearPath empties the route buffers without recomputing.
func (p *Pathfinder) ClearPath() {
	p.path = nil
	p.waypoints = nil
	p.cost = 0
	p.expanded = 0
	p.found = false
}

// Path returns the cells of the last route, start first.
func (p *Pathfinder) Path() []grid.Node { return p.path }

// Waypoints returns the world positions of the last route.
func (p *Pathfinder) Waypoints() []geometry.Point { return p.waypoints }

// Cost returns the length of the last route in world units.
func (p *Pathfinder) Cost() float64 { return p.cost }

// Expanded returns how many cells the last search expanded.
func (p *Pathfinder) Expanded() int { return p.expanded }

// Found reports whether the last search produced a route.
func (p *Pathfinder) Found() bool { return p.found }
