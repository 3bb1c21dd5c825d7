package plotexport

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"chosenoffset.com/walkgrid/internal/core/geometry"
	"chosenoffset.com/walkgrid/internal/render/markers"
	"chosenoffset.com/walkgrid/internal/world/grid"
)

func testSnapshot() Snapshot {
	layout := grid.Layout{
		Origin:     geometry.Point{X: -2, Z: -2},
		NodeRadius: 0.5,
		SizeX:      4,
		SizeY:      4,
		Plane:      geometry.PlaneXZ,
	}
	return Snapshot{
		Title:  "test",
		Layout: layout,
		Markers: []markers.Marker{
			{Position: layout.WorldPoint(1, 1), Color: color.RGBA{255, 0, 0, 255}},
		},
		Waypoints: []geometry.Point{layout.WorldPoint(0, 0), layout.WorldPoint(0, 3), layout.WorldPoint(3, 3)},
		Seeker:    layout.WorldPoint(0, 0),
		Target:    layout.WorldPoint(3, 3),
	}
}

func TestBuildSetsAxesFromLayout(t *testing.T) {
	p, err := Build(testSnapshot())
	require.NoError(t, err)

	assert.Equal(t, "x", p.X.Label.Text)
	assert.Equal(t, "z", p.Y.Label.Text)
	assert.Equal(t, -2.0, p.X.Min)
	assert.Equal(t, 2.0, p.X.Max)
	assert.Equal(t, 2.0, p.Y.Max)
}

func TestSaveWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pass.png")
	require.NoError(t, Save(path, testSnapshot(), 3*vg.Inch))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSaveEmptySnapshot(t *testing.T) {
	snap := testSnapshot()
	snap.Markers = nil
	snap.Waypoints = nil

	path := filepath.Join(t.TempDir(), "empty.svg")
	assert.NoError(t, Save(path, snap, 0))
}
