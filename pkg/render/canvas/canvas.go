// Package canvas defines the drawing surface elements paint onto.
//
// Elements draw in layout coordinates (pixels, Y down). A canvas may render
// at a higher resolution; [Canvas.Scale] reports that factor so stroke widths
// that take part in layout can be converted up front.
package canvas

import (
	"github.com/matzehuels/trackgraph/pkg/fonts"
	"github.com/matzehuels/trackgraph/pkg/geometry"
)

// Color is a CSS hex color such as "#1f77b4".
type Color string

// Stroke describes a line.
type Stroke struct {
	Color Color
	Width float64
	Dash  []float64
}

// Font describes text.
type Font struct {
	Size  float64
	Color Color
	Bold  bool
}

// Canvas is the surface elements draw on.
type Canvas interface {
	// Scale is the ratio of device pixels to layout pixels.
	Scale() float64
	Line(from, to geometry.Vector, s Stroke)
	Polyline(points []geometry.Vector, s Stroke)
	Polygon(points []geometry.Vector, fill Color)
	Rect(r geometry.Rect, fill Color)
	// Text draws s with its top-left corner at at.
	Text(at geometry.Vector, s string, f Font)
}

// MeasureText returns the extent of s set in f.
func MeasureText(s string, f Font) geometry.Size {
	w, h := fonts.Measure(s, f.Size)
	return geometry.Size{W: w, H: h}
}
