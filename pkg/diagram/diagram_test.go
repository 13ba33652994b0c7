package diagram

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/trackgraph/pkg/errors"
	"github.com/matzehuels/trackgraph/pkg/geometry"
	"github.com/matzehuels/trackgraph/pkg/placement"
	"github.com/matzehuels/trackgraph/pkg/render/canvas"
	"github.com/matzehuels/trackgraph/pkg/segment"
	"github.com/matzehuels/trackgraph/pkg/timetable"
)

func at(h, m int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
}

// line builds A (2 tracks) - B - C with one train each way.
func line() *timetable.Timetable {
	tt := &timetable.Timetable{Name: "test"}
	a := tt.AddStation("A", 0)
	a1, a2 := a.AddTrack("1"), a.AddTrack("2")
	b1 := tt.AddStation("B", 5).AddTrack("1")
	c1 := tt.AddStation("C", 12).AddTrack("1")

	rb1 := tt.AddTrain("RB1")
	rb1.AddEvent(timetable.Departure, at(8, 0), a1)
	rb1.AddEvent(timetable.Passage, at(8, 5), b1)
	rb1.AddEvent(timetable.Arrival, at(8, 12), c1)

	rb2 := tt.AddTrain("RB2")
	rb2.AddEvent(timetable.Departure, at(8, 20), c1)
	rb2.AddEvent(timetable.Arrival, at(8, 25), b1)
	rb2.AddEvent(timetable.Departure, at(8, 27), b1)
	rb2.AddEvent(timetable.Arrival, at(8, 35), a2)
	return tt
}

func build(t *testing.T, tt *timetable.Timetable, cfg Config) *Diagram {
	t.Helper()
	d, err := Build(context.Background(), tt, cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return d
}

func TestBuildSegmentOrder(t *testing.T) {
	d := build(t, line(), DefaultConfig())

	var names []string
	for _, s := range d.Segments() {
		names = append(names, s.Name)
	}
	want := []string{
		"station A upper",
		"track A/1 upper", "line A/1", "track A/1 lower",
		"track A/2 upper", "line A/2", "track A/2 lower",
		"station A lower",
		"station B upper",
		"track B/1 upper", "line B/1", "track B/1 lower",
		"station B lower",
		"station C upper",
		"track C/1 upper", "line C/1", "track C/1 lower",
		"station C lower",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("segment order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAnnotations(t *testing.T) {
	tests := []struct {
		name string
		mode LabelMode
		want int
	}{
		{"first departure", LabelFirst, 10},
		{"all departures", LabelAll, 11},
		{"no train labels", LabelNone, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.TrainLabels = tt.mode
			d := build(t, line(), cfg)
			st := d.Stats()
			if st.Annotations != tt.want {
				t.Errorf("Annotations = %d, want %d", st.Annotations, tt.want)
			}
			if st.Stations != 3 || st.Tracks != 4 || st.Trains != 2 || st.Skipped != 0 {
				t.Errorf("Stats() = %+v", st)
			}
		})
	}
}

func TestLayoutUnconstrained(t *testing.T) {
	d := build(t, line(), DefaultConfig())
	if err := d.Layout(context.Background(), 1200, 2000); err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if d.Scale() != 1 {
		t.Errorf("Scale() = %v, want 1", d.Scale())
	}

	byName := make(map[string]SegmentInfo)
	for _, s := range d.Segments() {
		byName[s.Name] = s
	}
	// A-B is 5 km at 8 px/km, clamped to the 40 px minimum; B-C is 7 km.
	opt := cmpopts.EquateApprox(0, 1e-9)
	checks := map[string]float64{
		"station A lower": 20,
		"station B upper": 20,
		"station B lower": 28,
		"station C upper": 28,
		"line A/1":        1,
	}
	for name, want := range checks {
		s := byName[name]
		if diff := cmp.Diff(want, s.Lower-s.Upper, opt); diff != "" {
			t.Errorf("%s height mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestLayoutConstrained(t *testing.T) {
	d := build(t, line(), DefaultConfig())
	if err := d.Layout(context.Background(), 1200, 150); err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if d.Scale() >= 1 {
		t.Fatalf("Scale() = %v, want < 1", d.Scale())
	}

	segs := d.Segments()
	total := 0.0
	for i, s := range segs {
		if s.Lower < s.Upper {
			t.Errorf("segment %s inverted: %v > %v", s.Name, s.Upper, s.Lower)
		}
		if i > 0 && s.Upper != segs[i-1].Lower {
			t.Errorf("segment %s does not start where %s ends", s.Name, segs[i-1].Name)
		}
		total += s.Lower - s.Upper
		if diff := cmp.Diff(s.Desired*d.Scale(), s.Lower-s.Upper, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("segment %s not scaled uniformly (-want +got):\n%s", s.Name, diff)
		}
	}
	if diff := cmp.Diff(d.Frame().H, total, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("stack height mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutTightFrame(t *testing.T) {
	d := build(t, line(), DefaultConfig())
	if err := d.Layout(context.Background(), 1200, 46.002); err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	within := func(name string, b geometry.Rect, seg *segment.Measurable) {
		t.Helper()
		if b.Y < seg.UpperBound()-1e-9 || b.Bottom() > seg.LowerBound()+1e-9 {
			t.Errorf("%s docked at %v, outside %s [%v, %v]", name, b, seg.Name(), seg.UpperBound(), seg.LowerBound())
		}
	}
	for en := range d.trackMgr.Entries() {
		within(en.Placement.String(), en.Element.Bounds(), en.Segment)
	}
	for en := range d.stationMgr.Entries() {
		within(en.Placement.String(), en.Element.Bounds(), en.Segment)
	}
	if d.trackMgr.Len() == 0 || d.stationMgr.Len() == 0 {
		t.Error("no annotations were docked")
	}
}

func TestDockedSides(t *testing.T) {
	tt := line()
	d := build(t, tt, DefaultConfig())
	if err := d.Layout(context.Background(), 1200, 800); err != nil {
		t.Fatal(err)
	}

	rb1, rb2 := tt.Trains[0], tt.Trains[1]
	for el := range d.trackMgr.Elements() {
		label, ok := el.(*TimeLabel)
		if !ok {
			continue
		}
		// RB1 runs down the diagram, RB2 up.
		side := placement.Lower
		if label.Event.Train == rb2 {
			side = placement.Upper
		}
		seg := d.tracks.MustResolve(placement.TrackKey{Track: label.Event.Track, Side: side})
		b := label.Bounds()
		if b.Y < seg.UpperBound()-1e-9 || b.Bottom() > seg.LowerBound()+1e-9 {
			t.Errorf("%s docked at %v, outside %s [%v, %v]", label.Event, b, seg.Name(), seg.UpperBound(), seg.LowerBound())
		}
	}

	for el := range d.stationMgr.Elements() {
		label := el.(*TrainLabel)
		side := placement.Lower
		if label.Train == rb2 {
			side = placement.Upper
		}
		seg := d.stations.MustResolve(placement.StationKey{Station: label.Event.Station(), Side: side})
		centre := (seg.UpperBound() + seg.LowerBound()) / 2
		if diff := cmp.Diff(centre, label.Bounds().Center().Y, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("%s label not centred in span (-want +got):\n%s", label.Train.ID, diff)
		}
	}
	if rb1.Events[0].Station().ID != "A" {
		t.Fatal("fixture changed")
	}
}

func TestHorizontalTrainIsSkipped(t *testing.T) {
	tt := line()
	shunt := tt.AddTrain("SH")
	a1 := tt.Stations[0].Tracks[0]
	shunt.AddEvent(timetable.Arrival, at(9, 0), a1)
	shunt.AddEvent(timetable.Departure, at(9, 5), a1)

	d := build(t, tt, DefaultConfig())
	if got := len(d.Skipped()); got != 3 {
		t.Errorf("Skipped() = %d, want 3 (two time labels and a train label)", got)
	}
	if err := d.Layout(context.Background(), 1200, 800); err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	cfg := DefaultConfig()
	cfg.Strict = true
	_, err := Build(context.Background(), tt, cfg)
	if !errors.Is(err, errors.ErrCodeUndeterminedPlacement) {
		t.Errorf("Build(strict) error = %v, want %s", err, errors.ErrCodeUndeterminedPlacement)
	}
}

func TestRefresh(t *testing.T) {
	tt := line()
	d := build(t, tt, DefaultConfig())
	before := d.Stats().Annotations

	extra := tt.AddTrain("RB3")
	extra.AddEvent(timetable.Departure, at(9, 0), tt.Stations[0].Tracks[0])
	extra.AddEvent(timetable.Arrival, at(9, 10), tt.Stations[1].Tracks[0])
	if err := d.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if got := d.Stats().Annotations; got != before+3 {
		t.Errorf("Annotations = %d, want %d", got, before+3)
	}
	if err := d.Layout(context.Background(), 1200, 800); err != nil {
		t.Fatalf("Layout() error = %v", err)
	}

	// Line strips only ever carry the stroke demand.
	for _, s := range d.Segments() {
		if strings.HasPrefix(s.Name, "line") && s.Demands != 1 {
			t.Errorf("%s has %d demands, want 1", s.Name, s.Demands)
		}
	}
}

func TestLayoutErrors(t *testing.T) {
	d := build(t, line(), DefaultConfig())
	ctx := context.Background()

	tests := []struct {
		name string
		w, h float64
	}{
		{"zero width", 0, 800},
		{"negative height", 1200, -1},
		{"narrower than labels", 20, 800},
		{"no room below axis", 1200, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.Layout(ctx, tt.w, tt.h)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Layout() error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
		})
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := d.Layout(cancelled, 1200, 800); err != context.Canceled {
		t.Errorf("Layout(cancelled) error = %v, want %v", err, context.Canceled)
	}
}

func TestBuildErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := Build(ctx, &timetable.Timetable{}, DefaultConfig()); !errors.Is(err, errors.ErrCodeInvalidTimetable) {
		t.Errorf("Build(empty) error = %v, want %s", err, errors.ErrCodeInvalidTimetable)
	}

	cfg := DefaultConfig()
	cfg.Gap = -1
	if _, err := Build(ctx, line(), cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Build(bad config) error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}

	cfg = DefaultConfig()
	cfg.TrainLabels = "some"
	if _, err := Build(ctx, line(), cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Build(bad label mode) error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestDraw(t *testing.T) {
	d := build(t, line(), DefaultConfig())
	if err := d.Layout(context.Background(), 1200, 800); err != nil {
		t.Fatal(err)
	}

	rec := canvas.NewRecorder()
	d.Draw(rec)

	if got := rec.Count("polyline"); got != 2 {
		t.Errorf("polylines = %d, want 2", got)
	}
	if got := rec.Count("polygon"); got != 1 {
		t.Errorf("polygons = %d, want 1", got)
	}
	// Station names, time labels and train labels, plus axis labels.
	if got := rec.Count("text"); got < 3+7+2 {
		t.Errorf("texts = %d, want at least 12", got)
	}
}

func TestVisuals(t *testing.T) {
	d := build(t, line(), DefaultConfig())
	if err := d.Layout(context.Background(), 1200, 800); err != nil {
		t.Fatal(err)
	}

	collect := func() []Visual {
		var out []Visual
		for v := range d.Visuals() {
			out = append(out, v)
		}
		return out
	}

	first := collect()
	if len(first) != 4+2+3+10 {
		t.Fatalf("Visuals() yielded %d items, want 19", len(first))
	}
	ids := make(map[string]bool)
	for _, v := range first {
		if ids[v.ID] {
			t.Errorf("duplicate visual id %s (%s %s)", v.ID, v.Kind, v.Name)
		}
		ids[v.ID] = true
	}
	if diff := cmp.Diff(first, collect()); diff != "" {
		t.Errorf("Visuals() not restartable (-first +second):\n%s", diff)
	}

	// Stop early.
	n := 0
	for range d.Visuals() {
		n++
		if n == 3 {
			break
		}
	}
}
