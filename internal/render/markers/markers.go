package markers

import (
	"image/color"

	"chosenoffset.com/walkgrid/internal/core/geometry"
)

// Marker is a coloured dot shown at a world position
type Marker struct {
	Position geometry.Point
	Color    color.Color
}

// Layer collects the markers placed during a walkability pass. It only
// observes; nothing reads it back into the grid.
type Layer struct {
	markers []Marker
	visible bool
}

// NewLayer creates an empty, visible marker layer
func NewLayer() *Layer {
	return &Layer{
		markers: make([]Marker, 0),
		visible: true,
	}
}

// PlaceMarker adds a marker at pos.
func (l *Layer) PlaceMarker(pos geometry.Point, clr color.Color) {
	l.markers = append(l.markers, Marker{Position: pos, Color: clr})
}

// ClearMarkers removes every marker. Slices returned by Markers before the
// call keep their contents.
func (l *Layer) ClearMarkers() {
	l.markers = make([]Marker, 0, len(l.markers))
}

// Markers returns the current markers in placement order
func (l *Layer) Markers() []Marker {
	return l.markers
}

// Len returns the number of markers
func (l *Layer) Len() int {
	return len(l.markers)
}

// SetVisible shows or hides the layer
func (l *Layer) SetVisible(visible bool) {
	l.visible = visible
}

// IsVisible returns whether the layer should be drawn
func (l *Layer) IsVisible() bool {
	return l.visible
}
