package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/trackgraph/pkg/diagram"
	"github.com/matzehuels/trackgraph/pkg/fonts"
	"github.com/matzehuels/trackgraph/pkg/geometry"
	"github.com/matzehuels/trackgraph/pkg/render/canvas"
)

// SVGCanvas writes drawing calls as SVG elements into a buffer.
type SVGCanvas struct {
	buf        *bytes.Buffer
	fontFamily string
}

// NewSVGCanvas returns a canvas appending to buf.
func NewSVGCanvas(buf *bytes.Buffer, fontFamily string) *SVGCanvas {
	return &SVGCanvas{buf: buf, fontFamily: fontFamily}
}

func (c *SVGCanvas) Scale() float64 { return 1 }

func (c *SVGCanvas) Line(from, to geometry.Vector, s canvas.Stroke) {
	fmt.Fprintf(c.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"%s/>`+"\n",
		from.X, from.Y, to.X, to.Y, strokeAttrs(s))
}

func (c *SVGCanvas) Polyline(points []geometry.Vector, s canvas.Stroke) {
	fmt.Fprintf(c.buf, `  <polyline points="%s" fill="none" stroke-linejoin="round"%s/>`+"\n",
		pointList(points), strokeAttrs(s))
}

func (c *SVGCanvas) Polygon(points []geometry.Vector, fill canvas.Color) {
	fmt.Fprintf(c.buf, `  <polygon points="%s" fill="%s"/>`+"\n", pointList(points), fill)
}

func (c *SVGCanvas) Rect(r geometry.Rect, fill canvas.Color) {
	fmt.Fprintf(c.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		r.X, r.Y, r.W, r.H, fill)
}

func (c *SVGCanvas) Text(at geometry.Vector, s string, f canvas.Font) {
	weight := ""
	if f.Bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(c.buf, `  <text x="%.2f" y="%.2f" font-family="%s" font-size="%.1f" fill="%s" dominant-baseline="hanging"%s>%s</text>`+"\n",
		at.X, at.Y, escapeXML(c.fontFamily), f.Size, f.Color, weight, escapeXML(s))
}

func strokeAttrs(s canvas.Stroke) string {
	out := fmt.Sprintf(` stroke="%s" stroke-width="%.2f"`, s.Color, s.Width)
	if len(s.Dash) > 0 {
		dash := make([]string, len(s.Dash))
		for i, d := range s.Dash {
			dash[i] = fmt.Sprintf("%.1f", d)
		}
		out += fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(dash, " "))
	}
	return out
}

func pointList(points []geometry.Vector) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background canvas.Color
	fontFamily string
	hitTargets bool
}

// WithBackground fills the frame with c. An empty color leaves it transparent.
func WithBackground(c canvas.Color) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithFontFamily overrides the CSS font-family of all text.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// WithHitTargets adds a transparent rectangle with a data-id per visual.
func WithHitTargets() SVGOption { return func(r *svgRenderer) { r.hitTargets = true } }

// RenderSVG renders d as a standalone SVG document.
func RenderSVG(d *diagram.Diagram, opts ...SVGOption) []byte {
	r := svgRenderer{background: "#ffffff", fontFamily: fonts.FontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	size := d.Size()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		size.W, size.H, size.W, size.H)
	if name := d.Timetable().Name; name != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(name))
	}

	c := NewSVGCanvas(&buf, r.fontFamily)
	if r.background != "" {
		c.Rect(geometry.Rect{W: size.W, H: size.H}, r.background)
	}
	d.Draw(c)

	if r.hitTargets {
		buf.WriteString(`  <g fill="transparent">` + "\n")
		for v := range d.Visuals() {
			b := v.Bounds
			fmt.Fprintf(&buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" data-id="%s" data-kind="%s"><title>%s</title></rect>`+"\n",
				b.X, b.Y, b.W, b.H, v.ID, v.Kind, escapeXML(v.Name))
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
