// Package placement decides on which side of a train path an annotation
// belongs.
//
// A train path crosses every station track it stops at. Around each such
// event the path and the horizontal track line form two angles: the acute one
// the path leans into and the obtuse one opposite it. The classifier looks at
// where the path continues from the event (forward for departures and
// passages, backward for arrivals) and reports the [Side] of the track line
// that continuation lies on.
//
// A [Type] pairs an event with an [Angle] preference. [Acute] places an
// element on the classified side, [Obtuse] on the opposite one, so a time
// label and a passage marker for the same event never collide.
//
// Converters turn a [Type] into a segment key ([TrackKey] or [StationKey]) so
// a strategy manager can route the element to the strip that will hold it.
package placement
