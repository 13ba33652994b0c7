package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/trackgraph/pkg/diagram"
	"github.com/matzehuels/trackgraph/pkg/errors"
	"github.com/matzehuels/trackgraph/pkg/fonts"
	"github.com/matzehuels/trackgraph/pkg/geometry"
	"github.com/matzehuels/trackgraph/pkg/render/canvas"
)

// RasterCanvas paints onto a gg context. Coordinates are layout pixels; the
// context is scaled to device pixels once at construction.
type RasterCanvas struct {
	dc    *gg.Context
	scale float64
}

// NewRasterCanvas creates a canvas for a frame of the given layout size.
func NewRasterCanvas(size geometry.Size, scale float64) *RasterCanvas {
	w := int(math.Ceil(size.W * scale))
	h := int(math.Ceil(size.H * scale))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.Scale(scale, scale)
	dc.SetFontFace(fonts.Face())
	return &RasterCanvas{dc: dc, scale: scale}
}

// Context exposes the underlying gg context.
func (c *RasterCanvas) Context() *gg.Context { return c.dc }

func (c *RasterCanvas) Scale() float64 { return c.scale }

func (c *RasterCanvas) stroke(s canvas.Stroke) {
	c.dc.SetHexColor(string(s.Color))
	c.dc.SetLineWidth(s.Width)
	c.dc.SetDash(s.Dash...)
	c.dc.Stroke()
}

func (c *RasterCanvas) Line(from, to geometry.Vector, s canvas.Stroke) {
	c.dc.DrawLine(from.X, from.Y, to.X, to.Y)
	c.stroke(s)
}

func (c *RasterCanvas) Polyline(points []geometry.Vector, s canvas.Stroke) {
	if len(points) == 0 {
		return
	}
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.SetLineJoin(gg.LineJoinRound)
	c.stroke(s)
}

func (c *RasterCanvas) Polygon(points []geometry.Vector, fill canvas.Color) {
	if len(points) == 0 {
		return
	}
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.dc.SetHexColor(string(fill))
	c.dc.Fill()
}

func (c *RasterCanvas) Rect(r geometry.Rect, fill canvas.Color) {
	c.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	c.dc.SetHexColor(string(fill))
	c.dc.Fill()
}

// Text scales the fixed-size bitmap face to the requested size.
func (c *RasterCanvas) Text(at geometry.Vector, s string, f canvas.Font) {
	k := f.Size / fonts.NativeSize

	c.dc.Push()
	c.dc.Translate(at.X, at.Y)
	c.dc.Scale(k, k)
	c.dc.SetHexColor(string(f.Color))
	c.dc.DrawStringAnchored(s, 0, 0, 0, 1)
	if f.Bold {
		c.dc.DrawStringAnchored(s, 0.6, 0, 0, 1)
	}
	c.dc.Pop()
}

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background canvas.Color
}

// WithScale sets the device pixel ratio (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithPNGBackground fills the image with c before drawing.
func WithPNGBackground(c canvas.Color) PNGOption { return func(r *pngRenderer) { r.background = c } }

// RenderPNG renders d as a PNG image.
func RenderPNG(d *diagram.Diagram, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "png scale must be positive (got %v)", r.scale)
	}

	size := d.Size()
	c := NewRasterCanvas(size, r.scale)
	if r.background != "" {
		c.Rect(geometry.Rect{W: size.W, H: size.H}, r.background)
	}
	d.Draw(c)

	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
