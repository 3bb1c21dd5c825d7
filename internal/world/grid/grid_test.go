package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/walkgrid/internal/core/geometry"
)

func testLayout() Layout {
	return Layout{
		Origin:     geometry.Point{X: -5, Y: 1, Z: -3},
		NodeRadius: 0.5,
		SizeX:      10,
		SizeY:      6,
		Plane:      geometry.PlaneXZ,
	}
}

func TestLayoutWorldPoint(t *testing.T) {
	l := testLayout()

	assert.Equal(t, geometry.Point{X: -4.5, Y: 1, Z: -2.5}, l.WorldPoint(0, 0))
	assert.Equal(t, geometry.Point{X: -1.5, Y: 1, Z: 1.5}, l.WorldPoint(3, 4))

	u, v := l.WorldSize()
	assert.Equal(t, 10.0, u)
	assert.Equal(t, 6.0, v)
}

func TestLayoutNodeFromWorldPoint(t *testing.T) {
	l := testLayout()

	for x := 0; x < l.SizeX; x++ {
		for y := 0; y < l.SizeY; y++ {
			gx, gy := l.NodeFromWorldPoint(l.WorldPoint(x, y))
			require.Equal(t, x, gx)
			require.Equal(t, y, gy)
		}
	}

	// Clamped to the grid edges
	gx, gy := l.NodeFromWorldPoint(geometry.Point{X: -100, Z: 100})
	assert.Equal(t, 0, gx)
	assert.Equal(t, l.SizeY-1, gy)
}

func TestLayoutCellOf(t *testing.T) {
	l := testLayout()

	x, y, ok := l.CellOf(geometry.Point{X: -1.5, Z: 1.5})
	assert.True(t, ok)
	assert.Equal(t, 3, x)
	assert.Equal(t, 4, y)

	// Not clamped
	x, y, ok = l.CellOf(geometry.Point{X: -100, Z: 100})
	assert.False(t, ok)
	assert.Equal(t, -95, x)
	assert.Equal(t, 103, y)

	_, _, ok = l.CellOf(geometry.Point{X: 5, Z: 0})
	assert.False(t, ok, "far edge belongs to no cell")
}

func TestLayoutValidate(t *testing.T) {
	assert.NoError(t, testLayout().Validate())

	bad := testLayout()
	bad.SizeX = 0
	assert.Error(t, bad.Validate())

	bad = testLayout()
	bad.NodeRadius = -1
	assert.Error(t, bad.Validate())

	bad = testLayout()
	bad.Plane = geometry.Plane{U: geometry.AxisX, V: geometry.AxisX}
	assert.Error(t, bad.Validate())
}

func TestNewGridAllWalkable(t *testing.T) {
	g, err := New(testLayout())
	require.NoError(t, err)

	sx, sy := g.Size()
	for x := 0; x < sx; x++ {
		for y := 0; y < sy; y++ {
			n, err := g.Node(x, y)
			require.NoError(t, err)
			assert.True(t, n.Walkable())
			assert.Equal(t, x, n.GridX())
			assert.Equal(t, y, n.GridY())
			assert.Equal(t, g.Layout().WorldPoint(x, y), n.WorldPosition())
		}
	}
}

func TestGridSetReplacesNode(t *testing.T) {
	g, err := New(testLayout())
	require.NoError(t, err)

	pos := g.Layout().WorldPoint(2, 3)
	require.NoError(t, g.Set(NewNode(false, pos, 2, 3)))
	assert.False(t, g.Walkable(2, 3))
	assert.False(t, g.Walkable(-1, 0), "out of bounds is not walkable")

	assert.Error(t, g.Set(NewNode(true, pos, 10, 0)))
	_, err = g.Node(0, 6)
	assert.Error(t, err)

	n := g.NodeFromWorldPoint(pos)
	assert.Equal(t, 2, n.GridX())
	assert.Equal(t, 3, n.GridY())
}

func TestGridNeighbours(t *testing.T) {
	g, err := New(testLayout())
	require.NoError(t, err)

	corner, _ := g.Node(0, 0)
	assert.Len(t, g.Neighbours(corner, false), 2)
	assert.Len(t, g.Neighbours(corner, true), 3)

	middle, _ := g.Node(4, 3)
	assert.Len(t, g.Neighbours(middle, false), 4)
	assert.Len(t, g.Neighbours(middle, true), 8)
}

func TestGridSnapshotIsCopy(t *testing.T) {
	g, err := New(testLayout())
	require.NoError(t, err)

	snap := g.Snapshot()
	require.NoError(t, g.Set(NewNode(false, g.Layout().WorldPoint(1, 1), 1, 1)))
	assert.True(t, snap[1][1].Walkable())
	assert.False(t, g.Walkable(1, 1))
}

func TestGridWriteWindow(t *testing.T) {
	g, err := New(testLayout())
	require.NoError(t, err)

	require.NoError(t, g.BeginWrite())
	assert.ErrorIs(t, g.BeginWrite(), ErrWriteInProgress)
	g.EndWrite()
	assert.NoError(t, g.BeginWrite())
	g.EndWrite()
}
