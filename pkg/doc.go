// Package pkg provides the core libraries for trackgraph, a layout engine for
// railway timetable graphs (time-distance diagrams).
//
// # Overview
//
// A timetable graph draws stations as horizontal bands and trains as
// polylines running down through time. Every annotation (time labels, pass
// markers, train names) is docked into a vertical segment next to the line it
// belongs to, so the layout is a stack of measurable segments whose heights
// are negotiated before anything is drawn.
//
// The typical data flow:
//
//	TOML / YAML / JSON timetable
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [diagram] package (segments, placement, docking)
//	         ↓
//	    [render/sink] package (SVG, PNG, JSON; PDF via [render])
//
// # Quick Start
//
//	tt, _ := io.ReadFile("valley.toml")
//	d, _ := diagram.Build(ctx, tt, diagram.DefaultConfig())
//	_ = d.Layout(ctx, 1200, 800)
//	svg := sink.RenderSVG(d)
//
// # Main Packages
//
// [geometry] - Vectors, rects and the triangle solvers used for docking.
//
// [segment] - Measurable segments, the keyed segment [segment.Registry] and
// the vertical [segment.Stack] that scales segments into the available height.
//
// [timetable] - Stations, tracks, trains and their events.
//
// [placement] - Train paths and the side classifier that decides above/below
// and left/right for each annotation.
//
// [strategy] - Docking strategies and the generic element manager.
//
// [diagram] - Builds the segment stack for a timetable and lays it out.
//
// [pipeline] - Load, layout, render and cache; shared by the CLI and the
// HTTP server.
//
// [cache] - File, Redis and null caches with a scoped key scheme.
//
// [observability] - Hooks for layout phases, the pipeline, caches and HTTP.
//
// [geometry]: https://pkg.go.dev/github.com/matzehuels/trackgraph/pkg/geometry
// [segment]: https://pkg.go.dev/github.com/matzehuels/trackgraph/pkg/segment
// [segment.Registry]: https://pkg.go.dev/github.com/matzehuels/trackgraph/pkg/segment#Registry
// [segment.Stack]: https://pkg.go.dev/github.com/matzehuels/trackgraph/pkg/segment#Stack
// [timetable]: https://pkg.go.dev/github.com/matzehuels/trackgraph/pkg/timetable
// [placement]: https://pkg.go.dev/github.com/matzehuels/trackgraph/pkg/placement
// [strategy]: https://pkg.go.dev/github.com/matzehuels/trackgraph/pkg/strategy
// [diagram]: https://pkg.go.dev/github.com/matzehuels/trackgraph/pkg/diagram
// [io]: https://pkg.go.dev/github.com/matzehuels/trackgraph/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/trackgraph/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/trackgraph/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/trackgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/trackgraph/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/trackgraph/pkg/observability
package pkg
