// Package strategy routes annotation elements into measurable segments and
// positions them once the segments have their final bounds.
//
// A [Manager] owns a segment registry and a converter from placement types
// to segment keys. Adding an element registers its height as a demand on the
// segment it is routed to, so the next Measure pass reserves room for it.
//
// After the Arrange pass, a docker walks each train path and gives every
// element its final rectangle: [TrackDocker] for elements hugging a track
// line, [StationDocker] for elements centred in the span between stations.
// Both shift elements sideways by the distance the sloped path travels over
// the element's height, so annotations never overlap the path they label.
package strategy

import (
	"github.com/matzehuels/trackgraph/pkg/geometry"
	"github.com/matzehuels/trackgraph/pkg/render/canvas"
	"github.com/matzehuels/trackgraph/pkg/segment"
)

// Element is anything a manager can route and a docker can position.
type Element interface {
	// Measure computes and caches the size the element wants.
	Measure() geometry.Size
	// DesiredSize returns the size computed by the last Measure call.
	DesiredSize() geometry.Size
	// Arrange fixes the element's final rectangle.
	Arrange(r geometry.Rect)
	// Bounds returns the rectangle set by the last Arrange call.
	Bounds() geometry.Rect
	Draw(c canvas.Canvas)
}

// Host is a segment that accepts height demands.
type Host interface {
	comparable
	segment.Segment
	AddHeightDemand(fn segment.DemandFunc) segment.DemandID
	RemoveHeightDemand(id segment.DemandID)
}
