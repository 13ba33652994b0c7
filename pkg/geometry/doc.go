// Package geometry provides the 2D vector math used by the placement engine.
//
// The engine works in canvas coordinates: X grows to the right (time) and Y
// grows downward (stations further down the line). Everything here is pure
// and allocation free.
//
// # Angles
//
// [AcuteAngle] collapses the two angles formed by two intersecting lines
// into the smaller one, so it always lies in [0, π/2]. Direction is
// discarded on purpose; callers recover it from which side of the reference
// line a point lies on.
//
// # Right triangles
//
// [LegLength] and [HypotenuseLength] solve a right triangle given one leg and
// the angle opposite to it. They convert a vertical offset from a horizontal
// line into the horizontal distance (or the distance along the slope) that a
// sloped path travels over the same vertical extent.
package geometry
