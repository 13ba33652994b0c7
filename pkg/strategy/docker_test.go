package strategy

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/trackgraph/pkg/errors"
	"github.com/matzehuels/trackgraph/pkg/geometry"
	"github.com/matzehuels/trackgraph/pkg/placement"
	"github.com/matzehuels/trackgraph/pkg/segment"
	"github.com/matzehuels/trackgraph/pkg/timetable"
)

type dockFixture struct {
	train    *timetable.Train
	track    *timetable.Track
	paths    placement.Paths
	tracks   *segment.Registry[placement.TrackKey, *segment.Measurable]
	stations *segment.Registry[placement.StationKey, *segment.Measurable]
}

// newDockFixture lays out station A at y=21 with strips [0,20] above and
// [22,42] below its track, and a station span [42,102] below A.
func newDockFixture(t *testing.T, from, to geometry.Vector) *dockFixture {
	t.Helper()
	tt := &timetable.Timetable{}
	a := tt.AddStation("A", 0)
	ta := a.AddTrack("1")
	b := tt.AddStation("B", 5)
	tb := b.AddTrack("1")

	tr := tt.AddTrain("T")
	dep := tr.AddEvent(timetable.Departure, 0, ta)
	arr := tr.AddEvent(timetable.Arrival, 10*time.Minute, tb)

	pts := map[*timetable.Event]geometry.Vector{dep: from, arr: to}
	p, err := placement.NewPath(tr.Events, func(e *timetable.Event) geometry.Vector { return pts[e] })
	if err != nil {
		t.Fatal(err)
	}

	f := &dockFixture{
		train:    tr,
		track:    ta,
		paths:    placement.Paths{tr: p},
		tracks:   segment.NewRegistry[placement.TrackKey, *segment.Measurable](),
		stations: segment.NewRegistry[placement.StationKey, *segment.Measurable](),
	}

	bind := func(upper, lower float64) *segment.Measurable {
		s := segment.NewMeasurable("")
		s.SetBounds(f, upper, lower)
		return s
	}
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(f.tracks.Register(bind(0, 20)).As(placement.TrackKey{Track: ta, Side: placement.Upper}))
	must(f.tracks.Register(bind(22, 42)).As(placement.TrackKey{Track: ta, Side: placement.Lower}))
	must(f.stations.Register(bind(-60, 0)).As(placement.StationKey{Station: a, Side: placement.Upper}))
	must(f.stations.Register(bind(42, 102)).As(placement.StationKey{Station: a, Side: placement.Lower}))
	return f
}

func (f *dockFixture) departure() *timetable.Event { return f.train.Events[0] }

func TestTrackDocker(t *testing.T) {
	tests := []struct {
		name  string
		to    geometry.Vector
		angle placement.Angle
		want  geometry.Rect
	}{
		{"acute right", geometry.Vec(120, 41), placement.Acute, geometry.Rect{X: 112, Y: 22, W: 16, H: 10}},
		{"obtuse right", geometry.Vec(120, 41), placement.Obtuse, geometry.Rect{X: 102, Y: 10, W: 16, H: 10}},
		{"acute left", geometry.Vec(80, 41), placement.Acute, geometry.Rect{X: 72, Y: 22, W: 16, H: 10}},
		{"obtuse left", geometry.Vec(80, 41), placement.Obtuse, geometry.Rect{X: 82, Y: 10, W: 16, H: 10}},
		{"acute vertical", geometry.Vec(100, 41), placement.Acute, geometry.Rect{X: 102, Y: 22, W: 16, H: 10}},
		{"acute upward", geometry.Vec(120, 1), placement.Acute, geometry.Rect{X: 112, Y: 10, W: 16, H: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDockFixture(t, geometry.Vec(100, 21), tt.to)
			m := NewManager[placement.Type, *box](f.tracks, placement.TrackConverter(f.paths))
			b := newBox(16, 10)
			if err := m.Add(placement.Type{Event: f.departure(), Angle: tt.angle}, b); err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			m.Measure()

			d := TrackDocker[*box, *segment.Measurable]{Gap: 2}
			if err := d.Dock(f.paths[f.train], m); err != nil {
				t.Fatalf("Dock() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, b.Bounds(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("Bounds() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTrackDockerClampsToStrip(t *testing.T) {
	f := newDockFixture(t, geometry.Vec(100, 21), geometry.Vec(100, 41))
	m := NewManager[placement.Type, *box](f.tracks, placement.TrackConverter(f.paths))
	b := newBox(16, 50)
	_ = m.Add(placement.Type{Event: f.departure(), Angle: placement.Acute}, b)
	m.Measure()

	if err := (TrackDocker[*box, *segment.Measurable]{}).Dock(f.paths[f.train], m); err != nil {
		t.Fatal(err)
	}
	if got := b.Bounds().H; got != 20 {
		t.Errorf("height = %v, want strip height 20", got)
	}
}

func TestStationDocker(t *testing.T) {
	tests := []struct {
		name  string
		angle placement.Angle
		want  geometry.Rect
	}{
		{"acute", placement.Acute, geometry.Rect{X: 159, Y: 66, W: 30, H: 12}},
		{"obtuse", placement.Obtuse, geometry.Rect{X: 113, Y: 66, W: 30, H: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDockFixture(t, geometry.Vec(100, 21), geometry.Vec(120, 41))
			// Give the upper span the same band so both cases share the centre line.
			upper := f.stations.MustResolve(placement.StationKey{Station: f.departure().Station(), Side: placement.Upper})
			upper.SetBounds(f, 42, 102)

			m := NewManager[placement.Type, *box](f.stations, placement.StationConverter(f.paths))
			b := newBox(30, 12)
			if err := m.Add(placement.Type{Event: f.departure(), Angle: tt.angle}, b); err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			m.Measure()

			if err := (StationDocker[*box, *segment.Measurable]{Gap: 2}).Dock(f.paths[f.train], m); err != nil {
				t.Fatalf("Dock() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, b.Bounds(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("Bounds() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDockerKeepsRoutedSegment(t *testing.T) {
	tests := []struct {
		name string
		to   geometry.Vector
		want geometry.Rect
	}{
		// The path falls, but the element was routed above the track.
		{"against slope", geometry.Vec(120, 41), geometry.Rect{X: 110, Y: 10, W: 16, H: 10}},
		// Flat at this scale: no clearance, still in the routed strip.
		{"flat path", geometry.Vec(200, 21), geometry.Rect{X: 100, Y: 10, W: 16, H: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDockFixture(t, geometry.Vec(100, 21), tt.to)
			conv := func(pt placement.Type) (placement.TrackKey, error) {
				return placement.TrackKey{Track: pt.Event.Track, Side: placement.Upper}, nil
			}
			m := NewManager[placement.Type, *box](f.tracks, conv)
			b := newBox(16, 10)
			if err := m.Add(placement.Type{Event: f.departure(), Angle: placement.Acute}, b); err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			m.Measure()

			if err := (TrackDocker[*box, *segment.Measurable]{}).Dock(f.paths[f.train], m); err != nil {
				t.Fatalf("Dock() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, b.Bounds(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("Bounds() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDockerUnregisteredSegment(t *testing.T) {
	f := newDockFixture(t, geometry.Vec(100, 21), geometry.Vec(120, 41))
	m := NewManager[placement.Type, *box](f.tracks, placement.TrackConverter(f.paths))
	_ = m.Add(placement.Type{Event: f.departure()}, newBox(1, 1))
	m.Measure()

	// A second registry does not know the segment the entry was routed to.
	other := NewManager[placement.Type, *box](segment.NewRegistry[placement.TrackKey, *segment.Measurable](), placement.TrackConverter(f.paths))
	other.entries = m.entries

	err := (TrackDocker[*box, *segment.Measurable]{}).Dock(f.paths[f.train], other)
	if !errors.Is(err, errors.ErrCodeKeyNotFound) {
		t.Errorf("Dock() error = %v, want %s", err, errors.ErrCodeKeyNotFound)
	}
}
