package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/trackgraph/pkg/diagram"
	"github.com/matzehuels/trackgraph/pkg/observability"
	"github.com/matzehuels/trackgraph/pkg/render"
	"github.com/matzehuels/trackgraph/pkg/render/canvas"
	"github.com/matzehuels/trackgraph/pkg/render/sink"
)

// Render draws a laid-out diagram into each of the given formats.
func Render(ctx context.Context, d *diagram.Diagram, formats []string, opts Options) (artifacts map[string][]byte, err error) {
	opts.SetDefaults()
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, formats, time.Since(start), err) }()

	artifacts = make(map[string][]byte, len(formats))
	var svg []byte
	renderSVG := func() []byte {
		if svg == nil {
			svgOpts := []sink.SVGOption{sink.WithBackground(canvas.Color(opts.Background))}
			if opts.HitTargets {
				svgOpts = append(svgOpts, sink.WithHitTargets())
			}
			svg = sink.RenderSVG(d, svgOpts...)
		}
		return svg
	}

	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		switch format {
		case FormatSVG:
			data = renderSVG()
		case FormatPNG:
			data, err = sink.RenderPNG(d,
				sink.WithScale(opts.Scale),
				sink.WithPNGBackground(canvas.Color(opts.Background)))
		case FormatPDF:
			data, err = render.ToPDF(ctx, renderSVG())
		case FormatJSON:
			data, err = sink.RenderJSON(d)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
