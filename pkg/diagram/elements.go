package diagram

import (
	"github.com/matzehuels/trackgraph/pkg/geometry"
	"github.com/matzehuels/trackgraph/pkg/render/canvas"
	"github.com/matzehuels/trackgraph/pkg/timetable"
)

const (
	colorText  canvas.Color = "#222222"
	colorTrack canvas.Color = "#9a9a9a"
	colorGrid  canvas.Color = "#e6e6e6"
	colorAxis  canvas.Color = "#666666"
)

var trainPalette = []canvas.Color{
	"#1f77b4", "#d62728", "#2ca02c", "#ff7f0e",
	"#9467bd", "#8c564b", "#e377c2", "#17becf",
}

func trainColor(i int) canvas.Color { return trainPalette[i%len(trainPalette)] }

// box holds the measured size and arranged bounds shared by all docked
// elements.
type box struct {
	desired geometry.Size
	bounds  geometry.Rect
}

func (b *box) DesiredSize() geometry.Size { return b.desired }
func (b *box) Arrange(r geometry.Rect)    { b.bounds = r }
func (b *box) Bounds() geometry.Rect      { return b.bounds }

// TimeLabel shows the minute of an event next to the track it happens on.
type TimeLabel struct {
	box
	Event *timetable.Event
	Text  string
	Font  canvas.Font
}

func newTimeLabel(e *timetable.Event, f canvas.Font) *TimeLabel {
	return &TimeLabel{Event: e, Text: timetable.Minutes(e.Time), Font: f}
}

func (l *TimeLabel) Measure() geometry.Size {
	l.desired = canvas.MeasureText(l.Text, l.Font)
	return l.desired
}

func (l *TimeLabel) Draw(c canvas.Canvas) {
	c.Text(geometry.Vec(l.bounds.X, l.bounds.Y), l.Text, l.Font)
}

// PassMarker flags a passage without a stop. It sits opposite the time label
// of the same event.
type PassMarker struct {
	box
	Event *timetable.Event
	Size  float64
	Color canvas.Color
}

func (m *PassMarker) Measure() geometry.Size {
	m.desired = geometry.Size{W: m.Size, H: m.Size}
	return m.desired
}

func (m *PassMarker) Draw(c canvas.Canvas) {
	r := m.bounds
	c.Polygon([]geometry.Vector{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.X + r.W/2, Y: r.Bottom()},
	}, m.Color)
}

// TrainLabel names a train in the span it departs into.
type TrainLabel struct {
	box
	Train *timetable.Train
	Event *timetable.Event
	Text  string
	Font  canvas.Font
}

func (l *TrainLabel) Measure() geometry.Size {
	l.desired = canvas.MeasureText(l.Text, l.Font)
	return l.desired
}

func (l *TrainLabel) Draw(c canvas.Canvas) {
	c.Text(geometry.Vec(l.bounds.X, l.bounds.Y), l.Text, l.Font)
}

// StationLabel names a station in the column left of the plot area.
type StationLabel struct {
	box
	Station *timetable.Station
	Font    canvas.Font
}

func (l *StationLabel) Measure() geometry.Size {
	l.desired = canvas.MeasureText(l.Station.DisplayName(), l.Font)
	return l.desired
}

func (l *StationLabel) Draw(c canvas.Canvas) {
	c.Text(geometry.Vec(l.bounds.X, l.bounds.Y), l.Station.DisplayName(), l.Font)
}

// TrackLine is the horizontal line of one station track.
type TrackLine struct {
	Track    *timetable.Track
	From, To geometry.Vector
	Stroke   canvas.Stroke
}

func (l *TrackLine) Draw(c canvas.Canvas) { c.Line(l.From, l.To, l.Stroke) }

func (l *TrackLine) Bounds() geometry.Rect {
	w := l.Stroke.Width
	return geometry.Rect{X: l.From.X, Y: l.From.Y - w/2, W: l.To.X - l.From.X, H: w}
}

// TrainLine is the polyline of a train through its events.
type TrainLine struct {
	Train  *timetable.Train
	Points []geometry.Vector
	Stroke canvas.Stroke
}

func (l *TrainLine) Draw(c canvas.Canvas) { c.Polyline(l.Points, l.Stroke) }

func (l *TrainLine) Bounds() geometry.Rect {
	if len(l.Points) == 0 {
		return geometry.Rect{}
	}
	minX, minY := l.Points[0].X, l.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range l.Points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return geometry.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// tick is one labelled gridline of the time axis.
type tick struct {
	X     float64
	Label string
}

// Axis draws the time gridlines over the plot area with labels on top.
type Axis struct {
	Frame geometry.Rect
	Ticks []tick
	Font  canvas.Font
	Gap   float64
}

func (a *Axis) Draw(c canvas.Canvas) {
	grid := canvas.Stroke{Color: colorGrid, Width: 1}
	for _, t := range a.Ticks {
		c.Line(geometry.Vec(t.X, a.Frame.Y), geometry.Vec(t.X, a.Frame.Bottom()), grid)
		sz := canvas.MeasureText(t.Label, a.Font)
		c.Text(geometry.Vec(t.X-sz.W/2, a.Frame.Y-a.Gap-sz.H), t.Label, a.Font)
	}
}
