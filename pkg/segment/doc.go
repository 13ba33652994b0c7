// Package segment implements the unit of vertical space allocation in a
// timetable graph.
//
// A [Segment] is a horizontal strip with an upper and a lower bound. The
// Y axis grows downward, so LowerBound >= UpperBound always holds.
//
// A [Measurable] segment collects height demands from everything that wants
// to occupy it. Demands are alternatives competing for the same strip, not
// items stacked inside it, so the desired height is their maximum.
//
// A [Registry] maps a comparable key (for example "above the line of track
// T") to exactly one segment. Registration is two-step so that the key can be
// computed after the segment exists:
//
//	reg := segment.NewRegistry[placement.TrackKey, *segment.Measurable]()
//	if err := reg.Register(seg).As(key); err != nil {
//	    return err
//	}
//
// A [Stack] is the height-constrained container that runs the two layout
// passes over an ordered list of segments:
//
//	stack.Measure()               // bottom-up: aggregate demands
//	scale := stack.Arrange(0, h)  // top-down: fix final bounds
//
// None of these types are safe for concurrent use. A layout cycle runs to
// completion on one goroutine before the next one starts.
package segment

// Segment is a read-only view of a horizontal strip.
type Segment interface {
	// UpperBound is the Y coordinate of the top edge.
	UpperBound() float64
	// LowerBound is the Y coordinate of the bottom edge.
	LowerBound() float64
	// Height is LowerBound - UpperBound.
	Height() float64
}
