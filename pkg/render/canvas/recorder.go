package canvas

import "github.com/matzehuels/trackgraph/pkg/geometry"

// Op is one recorded drawing call.
type Op struct {
	Kind   string
	Points []geometry.Vector
	Text   string
	Stroke Stroke
	Font   Font
	Fill   Color
}

// Recorder is a Canvas that keeps every call instead of painting.
type Recorder struct {
	ScaleFactor float64
	Ops         []Op
}

// NewRecorder returns a recorder with scale 1.
func NewRecorder() *Recorder { return &Recorder{ScaleFactor: 1} }

func (r *Recorder) Scale() float64 { return r.ScaleFactor }

func (r *Recorder) Line(from, to geometry.Vector, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: "line", Points: []geometry.Vector{from, to}, Stroke: s})
}

func (r *Recorder) Polyline(points []geometry.Vector, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: "polyline", Points: append([]geometry.Vector(nil), points...), Stroke: s})
}

func (r *Recorder) Polygon(points []geometry.Vector, fill Color) {
	r.Ops = append(r.Ops, Op{Kind: "polygon", Points: append([]geometry.Vector(nil), points...), Fill: fill})
}

func (r *Recorder) Rect(rect geometry.Rect, fill Color) {
	r.Ops = append(r.Ops, Op{Kind: "rect", Points: []geometry.Vector{{X: rect.X, Y: rect.Y}, {X: rect.Right(), Y: rect.Bottom()}}, Fill: fill})
}

func (r *Recorder) Text(at geometry.Vector, s string, f Font) {
	r.Ops = append(r.Ops, Op{Kind: "text", Points: []geometry.Vector{at}, Text: s, Font: f})
}

// Count returns the number of recorded ops of the given kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
