// Package sink renders a laid-out diagram into output formats.
//
//   - SVG: [RenderSVG] paints through an [SVGCanvas]
//   - PNG: [RenderPNG] paints through a [RasterCanvas] backed by gg
//   - JSON: [RenderJSON] exports the visual list and the segment stack for
//     hit-testing and diagnostics
//
// PDF output is produced from SVG by render.ToPDF.
//
// Every sink expects Diagram.Layout to have run.
package sink
