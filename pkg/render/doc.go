// Package render converts rendered diagrams between output formats.
//
// The drawing surface lives in [canvas]; the concrete renderers (SVG, PNG,
// JSON) live in [sink]. This package only holds format conversion that needs
// an external tool: [ToPDF] turns SVG output into PDF using rsvg-convert from
// librsvg.
//
//	svg := sink.RenderSVG(d)
//	pdf, err := render.ToPDF(svg)
//
// [canvas]: github.com/matzehuels/trackgraph/pkg/render/canvas
// [sink]: github.com/matzehuels/trackgraph/pkg/render/sink
package render
