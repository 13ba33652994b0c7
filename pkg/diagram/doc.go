// Package diagram lays out a railway timetable graph.
//
// Time runs left to right, stations top to bottom in timetable order. Every
// station contributes a column of horizontal strips to one vertical stack:
//
//	StationKey{S, Upper}    half the span to the previous station
//	TrackKey{T, Upper}      annotations above track T
//	LineKey{T}              the stroke of track T
//	TrackKey{T, Lower}      annotations below track T
//	...                     further tracks of S
//	StationKey{S, Lower}    half the span to the next station
//
// Annotations (minute labels, passage markers, train names) are routed into
// these strips by two strategy managers. Their sizes become height demands,
// so a strip grows to fit whatever has to go into it. When the stack does
// not fit into the available height every strip shrinks by the same factor.
//
// A layout cycle runs Measure, Arrange and Dock in order:
//
//	d, err := diagram.Build(ctx, tt, diagram.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	if err := d.Layout(ctx, 1200, 800); err != nil {
//	    return err
//	}
//	d.Draw(c)
//
// A Diagram is not safe for concurrent use.
package diagram
