package diagram

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trackgraph/pkg/errors"
	"github.com/matzehuels/trackgraph/pkg/geometry"
	"github.com/matzehuels/trackgraph/pkg/observability"
	"github.com/matzehuels/trackgraph/pkg/placement"
	"github.com/matzehuels/trackgraph/pkg/render/canvas"
	"github.com/matzehuels/trackgraph/pkg/segment"
	"github.com/matzehuels/trackgraph/pkg/strategy"
	"github.com/matzehuels/trackgraph/pkg/timetable"
)

type (
	trackManager   = strategy.Manager[placement.Type, strategy.Element, placement.TrackKey, *segment.Measurable]
	stationManager = strategy.Manager[placement.Type, strategy.Element, placement.StationKey, *segment.Measurable]
)

// Diagram is a laid-out timetable graph.
type Diagram struct {
	tt     *timetable.Timetable
	cfg    Config
	logger *log.Logger

	stack    *segment.Stack
	tracks   *segment.Registry[placement.TrackKey, *segment.Measurable]
	stations *segment.Registry[placement.StationKey, *segment.Measurable]
	lines    *segment.Registry[placement.LineKey, *segment.Measurable]

	trackMgr   *trackManager
	stationMgr *stationManager

	ordinal map[*timetable.Track]int
	logical placement.Paths
	pixel   placement.Paths
	skipped []placement.Type

	stationLabels []*StationLabel
	trackLines    []*TrackLine
	trainLines    []*TrainLine
	axis          Axis

	width, height float64
	frame         geometry.Rect
	start, end    time.Duration
	scale         float64
}

// Build creates the segment stack and annotation elements for tt.
// The timetable is validated first; it must not change structurally while
// the diagram is in use. Call Refresh after trains changed.
func Build(ctx context.Context, tt *timetable.Timetable, cfg Config) (*Diagram, error) {
	if err := tt.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	d := &Diagram{
		tt:       tt,
		cfg:      cfg,
		logger:   cfg.Logger,
		stack:    segment.NewStack(),
		tracks:   segment.NewRegistry[placement.TrackKey, *segment.Measurable](),
		stations: segment.NewRegistry[placement.StationKey, *segment.Measurable](),
		lines:    segment.NewRegistry[placement.LineKey, *segment.Measurable](),
		ordinal:  make(map[*timetable.Track]int),
		logical:  placement.Paths{},
		pixel:    placement.Paths{},
		scale:    1,
	}
	d.trackMgr = strategy.NewManager[placement.Type, strategy.Element](d.tracks, placement.TrackConverter(d.logical))
	d.stationMgr = strategy.NewManager[placement.Type, strategy.Element](d.stations, placement.StationConverter(d.logical))

	if err := d.buildSegments(); err != nil {
		return nil, err
	}
	if err := d.Refresh(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// register creates a segment for key, binds it in reg and appends it to the
// stack.
func register[K interface {
	comparable
	fmt.Stringer
}](d *Diagram, reg *segment.Registry[K, *segment.Measurable], key K) (*segment.Measurable, error) {
	seg := segment.NewMeasurable(key.String())
	if err := reg.Register(seg).As(key); err != nil {
		return nil, err
	}
	d.stack.Append(seg)
	return seg, nil
}

func constant(v float64) segment.DemandFunc { return func() float64 { return v } }

func (d *Diagram) buildSegments() error {
	cfg := d.cfg
	stations := d.tt.Stations
	for i, s := range stations {
		upper, err := register(d, d.stations, placement.StationKey{Station: s, Side: placement.Upper})
		if err != nil {
			return err
		}
		if i == 0 {
			upper.AddHeightDemand(constant(cfg.Padding))
		} else {
			upper.AddHeightDemand(constant(d.span(stations[i-1], s) / 2))
		}

		for _, t := range s.Tracks {
			d.ordinal[t] = len(d.ordinal)

			above, err := register(d, d.tracks, placement.TrackKey{Track: t, Side: placement.Upper})
			if err != nil {
				return err
			}
			above.AddHeightDemand(constant(cfg.TrackSpacing / 2))

			line, err := register(d, d.lines, placement.LineKey{Track: t})
			if err != nil {
				return err
			}
			line.AddHeightDemand(func() float64 { return d.cfg.TrackStroke * d.cfg.Scale })

			below, err := register(d, d.tracks, placement.TrackKey{Track: t, Side: placement.Lower})
			if err != nil {
				return err
			}
			below.AddHeightDemand(constant(cfg.TrackSpacing / 2))
		}

		lower, err := register(d, d.stations, placement.StationKey{Station: s, Side: placement.Lower})
		if err != nil {
			return err
		}
		if i == len(stations)-1 {
			lower.AddHeightDemand(constant(cfg.Padding))
		} else {
			lower.AddHeightDemand(constant(d.span(s, stations[i+1]) / 2))
		}

		d.stationLabels = append(d.stationLabels, &StationLabel{
			Station: s,
			Font:    canvas.Font{Size: cfg.FontSize, Color: colorText, Bold: true},
		})
	}
	return nil
}

// span is the height between the last track of a and the first track of b.
func (d *Diagram) span(a, b *timetable.Station) float64 {
	return max(d.cfg.MinSpan, math.Abs(b.Position-a.Position)*d.cfg.PixelsPerKm)
}

// logicalPoint places events by minute and track order. It preserves the
// vertical order of the arranged diagram, which is all classification needs.
func (d *Diagram) logicalPoint(e *timetable.Event) geometry.Vector {
	return geometry.Vec(e.Time.Minutes(), float64(d.ordinal[e.Track]))
}

// Refresh rebuilds every annotation from the current trains. Segments stay
// in place; only their demands change.
func (d *Diagram) Refresh(ctx context.Context) error {
	d.trackMgr.Clear()
	d.stationMgr.Clear()
	d.skipped = nil
	clear(d.logical)

	for _, tr := range d.tt.Trains {
		p, err := placement.NewPath(tr.Events, d.logicalPoint)
		if err != nil {
			return err
		}
		d.logical[tr] = p
	}

	font := canvas.Font{Size: d.cfg.FontSize, Color: colorText}
	for i, tr := range d.tt.Trains {
		labelled := false
		for _, e := range tr.Events {
			if err := d.add(ctx, d.trackMgr.Add, placement.Type{Event: e, Angle: placement.Acute}, newTimeLabel(e, font)); err != nil {
				return err
			}
			if e.Kind == timetable.Passage {
				marker := &PassMarker{Event: e, Size: d.cfg.FontSize * 0.6, Color: trainColor(i)}
				if err := d.add(ctx, d.trackMgr.Add, placement.Type{Event: e, Angle: placement.Obtuse}, marker); err != nil {
					return err
				}
			}
			if e.Kind != timetable.Departure || !d.wantsTrainLabel(labelled) {
				continue
			}
			label := &TrainLabel{
				Train: tr,
				Event: e,
				Text:  tr.DisplayName(),
				Font:  canvas.Font{Size: d.cfg.FontSize, Color: trainColor(i), Bold: true},
			}
			if err := d.add(ctx, d.stationMgr.Add, placement.Type{Event: e, Angle: placement.Acute}, label); err != nil {
				return err
			}
			labelled = true
		}
	}

	d.logger.Debug("annotations built",
		"track", d.trackMgr.Len(),
		"station", d.stationMgr.Len(),
		"skipped", len(d.skipped))
	return nil
}

func (d *Diagram) wantsTrainLabel(labelled bool) bool {
	switch d.cfg.TrainLabels {
	case LabelAll:
		return true
	case LabelFirst:
		return !labelled
	}
	return false
}

// add routes e through addFn and skips it when the path is horizontal at the
// event, unless the configuration is strict.
func (d *Diagram) add(ctx context.Context, addFn func(placement.Type, strategy.Element) error, pt placement.Type, e strategy.Element) error {
	err := addFn(pt, e)
	if err == nil || d.cfg.Strict || !errors.Is(err, errors.ErrCodeUndeterminedPlacement) {
		return err
	}
	d.skipped = append(d.skipped, pt)
	d.logger.Warn("skipping annotation", "event", pt.Event, "reason", errors.UserMessage(err))
	observability.Layout().OnSkipped(ctx, pt.Event.Train.ID, pt.Event.String())
	return nil
}

// Layout runs one Measure, Arrange and Dock cycle for a frame of the given
// size. The context is checked between passes.
func (d *Diagram) Layout(ctx context.Context, width, height float64) error {
	if err := errors.ValidateDimensions(width, height); err != nil {
		return err
	}
	if err := observability.Track(ctx, observability.PhaseMeasure, func() error {
		d.measure()
		return nil
	}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := observability.Track(ctx, observability.PhaseArrange, func() error {
		return d.arrange(width, height)
	}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return observability.Track(ctx, observability.PhaseDock, d.dock)
}

func (d *Diagram) measure() {
	d.trackMgr.Measure()
	d.stationMgr.Measure()
	for _, l := range d.stationLabels {
		l.Measure()
	}
	d.stack.Measure()
}

func (d *Diagram) labelColumn() float64 {
	w := 0.0
	for _, l := range d.stationLabels {
		w = max(w, l.DesiredSize().W)
	}
	return w
}

func (d *Diagram) arrange(width, height float64) error {
	cfg := d.cfg
	axisFont := canvas.Font{Size: cfg.FontSize, Color: colorAxis}

	top := cfg.Padding + axisFont.Size + cfg.Gap
	left := cfg.Padding + d.labelColumn() + cfg.Padding
	right := width - cfg.Padding
	available := height - top - cfg.Padding
	if right <= left || available <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "frame %vx%v is too small for the diagram", width, height)
	}

	d.width, d.height = width, height
	d.scale = d.stack.Arrange(top, available)
	d.frame = geometry.Rect{X: left, Y: top, W: right - left, H: min(d.stack.DesiredHeight(), available)}

	d.start, d.end, _ = d.tt.TimeRange()
	if d.end <= d.start {
		d.end = d.start + time.Minute
	}

	lineY := make(map[*timetable.Track]float64, len(d.ordinal))
	d.trackLines = d.trackLines[:0]
	for _, s := range d.tt.Stations {
		for _, t := range s.Tracks {
			seg := d.lines.MustResolve(placement.LineKey{Track: t})
			y := (seg.UpperBound() + seg.LowerBound()) / 2
			lineY[t] = y
			d.trackLines = append(d.trackLines, &TrackLine{
				Track:  t,
				From:   geometry.Vec(left, y),
				To:     geometry.Vec(right, y),
				Stroke: canvas.Stroke{Color: colorTrack, Width: cfg.TrackStroke},
			})
		}
	}

	for i, s := range d.tt.Stations {
		l := d.stationLabels[i]
		first, last := lineY[s.Tracks[0]], lineY[s.Tracks[len(s.Tracks)-1]]
		sz := l.DesiredSize()
		l.Arrange(geometry.Rect{X: cfg.Padding, Y: (first+last)/2 - sz.H/2, W: sz.W, H: sz.H})
	}

	clear(d.pixel)
	d.trainLines = d.trainLines[:0]
	for i, tr := range d.tt.Trains {
		p, err := placement.NewPath(tr.Events, func(e *timetable.Event) geometry.Vector {
			return geometry.Vec(d.timeX(e.Time), lineY[e.Track])
		})
		if err != nil {
			return err
		}
		d.pixel[tr] = p
		d.trainLines = append(d.trainLines, &TrainLine{
			Train:  tr,
			Points: p.Points(),
			Stroke: canvas.Stroke{Color: trainColor(i), Width: cfg.TrainStroke},
		})
	}

	d.axis = Axis{Frame: d.frame, Ticks: d.ticks(axisFont), Font: axisFont, Gap: cfg.Gap}

	d.logger.Debug("arranged",
		"desired", d.stack.DesiredHeight(),
		"available", available,
		"scale", d.scale)
	return nil
}

// timeX maps a time of day onto the horizontal extent of the plot area.
func (d *Diagram) timeX(t time.Duration) float64 {
	f := float64(t-d.start) / float64(d.end-d.start)
	return d.frame.X + f*d.frame.W
}

var tickSteps = []time.Duration{
	5 * time.Minute, 10 * time.Minute, 15 * time.Minute, 30 * time.Minute,
	time.Hour, 2 * time.Hour, 3 * time.Hour, 6 * time.Hour,
}

// ticks picks the finest step whose labels do not overlap.
func (d *Diagram) ticks(f canvas.Font) []tick {
	minDist := canvas.MeasureText("00:00", f).W * 2
	step := tickSteps[len(tickSteps)-1]
	for _, s := range tickSteps {
		if d.timeX(d.start+s)-d.timeX(d.start) >= minDist {
			step = s
			break
		}
	}

	var out []tick
	for t := d.start.Truncate(step); t <= d.end; t += step {
		if t < d.start {
			continue
		}
		out = append(out, tick{X: d.timeX(t), Label: timetable.FormatClock(t)})
	}
	return out
}

func (d *Diagram) dock() error {
	td := strategy.TrackDocker[strategy.Element, *segment.Measurable]{Gap: d.cfg.Gap}
	sd := strategy.StationDocker[strategy.Element, *segment.Measurable]{Gap: d.cfg.Gap}
	for _, tr := range d.tt.Trains {
		p := d.pixel[tr]
		if err := td.Dock(p, d.trackMgr); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "docking train %s", tr.ID)
		}
		if err := sd.Dock(p, d.stationMgr); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "docking train %s", tr.ID)
		}
	}
	return nil
}

// Draw paints the diagram. Layout must have run.
func (d *Diagram) Draw(c canvas.Canvas) {
	d.axis.Draw(c)
	for _, l := range d.trackLines {
		l.Draw(c)
	}
	for _, l := range d.trainLines {
		l.Draw(c)
	}
	for _, l := range d.stationLabels {
		l.Draw(c)
	}
	d.trackMgr.Draw(c)
	d.stationMgr.Draw(c)
}

// Timetable returns the timetable the diagram was built from.
func (d *Diagram) Timetable() *timetable.Timetable { return d.tt }

// Size returns the frame size passed to the last Layout call.
func (d *Diagram) Size() geometry.Size { return geometry.Size{W: d.width, H: d.height} }

// Frame returns the plot area.
func (d *Diagram) Frame() geometry.Rect { return d.frame }

// Scale returns the factor the stack applied in the last Arrange pass.
func (d *Diagram) Scale() float64 { return d.scale }

// Skipped returns the annotations that could not be placed.
func (d *Diagram) Skipped() []placement.Type { return d.skipped }
