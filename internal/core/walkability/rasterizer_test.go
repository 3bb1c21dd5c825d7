package walkability

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/walkgrid/internal/core/geometry"
	"chosenoffset.com/walkgrid/internal/world/grid"
)

type recordingPathfinder struct {
	calls      int
	start, end geometry.Point
	blockedAt  int // blocked cells seen in the grid when called
	grid       *grid.Grid
}

func (p *recordingPathfinder) FindPath(start, end geometry.Point) {
	p.calls++
	p.start, p.end = start, end
	p.blockedAt = countBlocked(p.grid)
}

type marker struct {
	pos geometry.Point
	clr color.Color
}

type recordingPresenter struct {
	clears  int
	markers []marker
}

func (p *recordingPresenter) ClearMarkers() {
	p.clears++
	p.markers = nil
}

func (p *recordingPresenter) PlaceMarker(pos geometry.Point, clr color.Color) {
	p.markers = append(p.markers, marker{pos, clr})
}

func countBlocked(g *grid.Grid) int {
	n := 0
	sx, sy := g.Size()
	for x := 0; x < sx; x++ {
		for y := 0; y < sy; y++ {
			if !g.Walkable(x, y) {
				n++
			}
		}
	}
	return n
}

func testGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(grid.Layout{
		Origin:     geometry.Point{X: -4, Y: 0, Z: -3},
		NodeRadius: 0.5,
		SizeX:      8,
		SizeY:      6,
		Plane:      geometry.PlaneXZ,
	})
	require.NoError(t, err)
	return g
}

func TestSetWalkabilityPointsMode(t *testing.T) {
	g := testGrid(t)
	pf := &recordingPathfinder{grid: g}
	pres := &recordingPresenter{}
	r := NewRasterizer(g, geometry.Default(), Options{Occupancy: OccupancyPoints}, pf, pres)

	l := g.Layout()
	regions := []geometry.Region{
		{Name: "a", Points: []geometry.Point{l.WorldPoint(1, 1), l.WorldPoint(2, 1)}},
		{Name: "b", Points: []geometry.Point{l.WorldPoint(5, 4), {X: 100, Z: 100}}},
	}

	report, err := r.SetWalkability(regions, 8, 6)
	require.NoError(t, err)
	assert.Equal(t, 48, report.Cells)
	assert.Equal(t, 3, report.Blocked)

	assert.False(t, g.Walkable(1, 1))
	assert.False(t, g.Walkable(2, 1))
	assert.False(t, g.Walkable(5, 4))
	assert.True(t, g.Walkable(0, 0))

	require.Len(t, pres.markers, 3)
	assert.Equal(t, BlockedColor, pres.markers[0].clr)
	assert.Equal(t, l.WorldPoint(1, 1), pres.markers[0].pos)
}

func TestSetWalkabilityAnyPointBlocks(t *testing.T) {
	g := testGrid(t)
	r := NewRasterizer(g, geometry.Default(), Options{}, nil, nil)
	l := g.Layout()

	// The matching point comes first; later non-matching points must not
	// reopen the cell.
	regions := []geometry.Region{{Points: []geometry.Point{l.WorldPoint(3, 3), {X: 50}, {X: 60}}}}
	_, err := r.SetWalkability(regions, 8, 6)
	require.NoError(t, err)
	assert.False(t, g.Walkable(3, 3))
}

func TestSetWalkabilityMatchTolerance(t *testing.T) {
	g := testGrid(t)
	l := g.Layout()
	off := l.WorldPoint(2, 2)
	off.X += 1e-7
	regions := []geometry.Region{{Points: []geometry.Point{off}}}

	exact := NewRasterizer(g, geometry.Default(), Options{Occupancy: OccupancyPoints}, nil, nil)
	report, err := exact.SetWalkability(regions, 8, 6)
	require.NoError(t, err)
	assert.Zero(t, report.Blocked)

	tolerant := NewRasterizer(g, geometry.Default(), Options{Occupancy: OccupancyPoints, MatchTolerance: 1e-6}, nil, nil)
	report, err = tolerant.SetWalkability(regions, 8, 6)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Blocked)
	assert.False(t, g.Walkable(2, 2))
}

func TestSetWalkabilityContainmentMode(t *testing.T) {
	g := testGrid(t)
	r := NewRasterizer(g, geometry.Default(), Options{Occupancy: OccupancyContainment}, nil, nil)

	// Square covering world x in [-2, 0], z in [-1, 1]: cells x 2..3, y 2..3
	regions := []geometry.Region{
		{Name: "block", Points: []geometry.Point{
			{X: -2, Z: -1}, {X: 0, Z: -1}, {X: 0, Z: 1}, {X: -2, Z: 1},
		}},
		{Name: "line", Points: []geometry.Point{{X: -4, Z: -3}, {X: 4, Z: 3}}},
	}

	report, err := r.SetWalkability(regions, 8, 6)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Blocked)
	for _, c := range [][2]int{{2, 2}, {2, 3}, {3, 2}, {3, 3}} {
		assert.False(t, g.Walkable(c[0], c[1]), "cell %v", c)
	}
	assert.True(t, g.Walkable(4, 2))
	assert.True(t, g.Walkable(0, 0), "two point region encloses nothing")
}

func TestSetWalkabilityFullCoverage(t *testing.T) {
	g := testGrid(t)
	l := g.Layout()

	// Dirty every cell first so stale records would show up
	for x := 0; x < 8; x++ {
		for y := 0; y < 6; y++ {
			require.NoError(t, g.Set(grid.NewNode(false, geometry.Point{X: 999}, x, y)))
		}
	}

	r := NewRasterizer(g, geometry.Default(), Options{}, nil, nil)
	report, err := r.SetWalkability(nil, 8, 6)
	require.NoError(t, err)
	assert.Equal(t, 48, report.Cells)

	for x := 0; x < 8; x++ {
		for y := 0; y < 6; y++ {
			n, err := g.Node(x, y)
			require.NoError(t, err)
			assert.True(t, n.Walkable())
			assert.Equal(t, x, n.GridX())
			assert.Equal(t, y, n.GridY())
			assert.Equal(t, l.WorldPoint(x, y), n.WorldPosition())
		}
	}
}

func TestSetWalkabilityIdempotent(t *testing.T) {
	g := testGrid(t)
	pres := &recordingPresenter{}
	r := NewRasterizer(g, geometry.Default(), Options{Occupancy: OccupancyContainment}, nil, pres)

	regions := []geometry.Region{{Points: []geometry.Point{
		{X: -3.2, Z: -2.7}, {X: 1.1, Z: -1.9}, {X: 2.7, Z: 2.4}, {X: -1.3, Z: 1.6},
	}}}

	_, err := r.SetWalkability(regions, 8, 6)
	require.NoError(t, err)
	first := g.Snapshot()
	firstMarkers := len(pres.markers)

	_, err = r.SetWalkability(regions, 8, 6)
	require.NoError(t, err)
	second := g.Snapshot()

	if diff := cmp.Diff(first, second, cmp.AllowUnexported(grid.Node{})); diff != "" {
		t.Errorf("second pass differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, 2, pres.clears)
	assert.Equal(t, firstMarkers, len(pres.markers), "markers do not accumulate")
}

func TestSetWalkabilityTriggersPathfinder(t *testing.T) {
	g := testGrid(t)
	pf := &recordingPathfinder{grid: g}
	r := NewRasterizer(g, geometry.Default(), Options{}, pf, nil)

	ends := Endpoints{Seeker: geometry.Point{X: -3.5, Z: -2.5}, Target: geometry.Point{X: 3.5, Z: 2.5}}
	r.SetEndpoints(ends)
	assert.Equal(t, ends, r.Endpoints())

	regions := []geometry.Region{{Points: []geometry.Point{g.Layout().WorldPoint(4, 4)}}}
	_, err := r.SetWalkability(regions, 8, 6)
	require.NoError(t, err)

	assert.Equal(t, 1, pf.calls)
	assert.Equal(t, ends.Seeker, pf.start)
	assert.Equal(t, ends.Target, pf.end)
	assert.Equal(t, 1, pf.blockedAt, "pathfinder runs after the grid is written")
}

func TestSetWalkabilityDimensions(t *testing.T) {
	g := testGrid(t)
	pf := &recordingPathfinder{grid: g}
	r := NewRasterizer(g, geometry.Default(), Options{}, pf, nil)

	for _, dims := range [][2]int{{0, 6}, {8, -1}, {9, 6}, {8, 7}} {
		_, err := r.SetWalkability(nil, dims[0], dims[1])
		assert.ErrorIs(t, err, ErrDimensions, "dims %v", dims)
	}
	assert.Zero(t, pf.calls)

	// A smaller pass only touches its own range
	require.NoError(t, g.Set(grid.NewNode(false, g.Layout().WorldPoint(7, 5), 7, 5)))
	report, err := r.SetWalkability(nil, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, 12, report.Cells)
	assert.False(t, g.Walkable(7, 5))
}

func TestSetWalkabilityRejectsOverlappingPass(t *testing.T) {
	g := testGrid(t)
	r := NewRasterizer(g, geometry.Default(), Options{}, nil, nil)

	require.NoError(t, g.BeginWrite())
	_, err := r.SetWalkability(nil, 8, 6)
	assert.ErrorIs(t, err, grid.ErrWriteInProgress)
	g.EndWrite()

	_, err = r.SetWalkability(nil, 8, 6)
	assert.NoError(t, err)
}

func TestParseOccupancy(t *testing.T) {
	o, err := ParseOccupancy("containment")
	require.NoError(t, err)
	assert.Equal(t, OccupancyContainment, o)
	assert.Equal(t, "points", OccupancyPoints.String())

	_, err = ParseOccupancy("voxels")
	assert.Error(t, err)
}
