// Package grid holds the navigation grid: its world layout and the cell
// records the walkability pass writes and the pathfinder reads.
package grid

import (
	"errors"
	"fmt"
	"sync/atomic"

	"chosenoffset.com/walkgrid/internal/core/geometry"
)

// ErrWriteInProgress is returned when a write window is already open.
var ErrWriteInProgress = errors.New("grid write already in progress")

// Node is a single grid cell. It is immutable: a new Node replaces the old
// one whenever walkability changes.
type Node struct {
	walkable bool
	worldPos geometry.Point
	gridX    int
	gridY    int
}

// NewNode creates a cell record.
func NewNode(walkable bool, worldPos geometry.Point, x, y int) Node {
	return Node{walkable: walkable, worldPos: worldPos, gridX: x, gridY: y}
}

func (n Node) Walkable() bool                { return n.walkable }
func (n Node) WorldPosition() geometry.Point { return n.worldPos }
func (n Node) GridX() int                    { return n.gridX }
func (n Node) GridY() int                    { return n.gridY }

func (n Node) String() string {
	return fmt.Sprintf("node(%d,%d walkable=%t)", n.gridX, n.gridY, n.walkable)
}

// Grid owns every cell of the navigation grid.
type Grid struct {
	layout  Layout
	cells   [][]Node // cells[x][y]
	writing atomic.Bool
}

// New creates a grid where every cell is walkable.
func New(layout Layout) (*Grid, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		layout: layout,
		cells:  make([][]Node, layout.SizeX),
	}
	for x := range g.cells {
		g.cells[x] = make([]Node, layout.SizeY)
		for y := range g.cells[x] {
			g.cells[x][y] = NewNode(true, layout.WorldPoint(x, y), x, y)
		}
	}
	return g, nil
}

// Layout returns the grid's layout parameters.
func (g *Grid) Layout() Layout {
	return g.layout
}

// Size returns the grid dimensions.
func (g *Grid) Size() (sizeX, sizeY int) {
	return g.layout.SizeX, g.layout.SizeY
}

// Node returns the cell at (x, y).
func (g *Grid) Node(x, y int) (Node, error) {
	if !g.layout.InBounds(x, y) {
		return Node{}, fmt.Errorf("coordinates out of bounds: (%d, %d)", x, y)
	}
	return g.cells[x][y], nil
}

// Set stores n at its own grid coordinates, replacing the previous cell.
func (g *Grid) Set(n Node) error {
	if !g.layout.InBounds(n.gridX, n.gridY) {
		return fmt.Errorf("coordinates out of bounds: (%d, %d)", n.gridX, n.gridY)
	}
	g.cells[n.gridX][n.gridY] = n
	return nil
}

// Walkable returns whether the cell at (x, y) can be traversed. Out of
// bounds cells are not walkable.
func (g *Grid) Walkable(x, y int) bool {
	if !g.layout.InBounds(x, y) {
		return false
	}
	return g.cells[x][y].walkable
}

// NodeFromWorldPoint returns the cell containing p, clamped to the grid.
func (g *Grid) NodeFromWorldPoint(p geometry.Point) Node {
	x, y := g.layout.NodeFromWorldPoint(p)
	return g.cells[x][y]
}

// Neighbours returns the in-bounds cells around n. With diagonal set the
// 8-neighbourhood is used, otherwise the 4-neighbourhood.
func (g *Grid) Neighbours(n Node, diagonal bool) []Node {
	var neighbours []Node
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if !diagonal && dx != 0 && dy != 0 {
				continue
			}
			x, y := n.gridX+dx, n.gridY+dy
			if g.layout.InBounds(x, y) {
				neighbours = append(neighbours, g.cells[x][y])
			}
		}
	}
	return neighbours
}

// Snapshot returns a copy of all cells indexed [x][y].
func (g *Grid) Snapshot() [][]Node {
	out := make([][]Node, len(g.cells))
	for x := range g.cells {
		out[x] = append([]Node(nil), g.cells[x]...)
	}
	return out
}

// BeginWrite opens the exclusive write window for one rasterization pass.
func (g *Grid) BeginWrite() error {
	if !g.writing.CompareAndSwap(false, true) {
		return ErrWriteInProgress
	}
	return nil
}

// EndWrite closes the write window.
func (g *Grid) EndWrite() {
	g.writing.Store(false)
}
