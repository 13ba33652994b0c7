package diagram

import (
	"iter"

	"github.com/google/uuid"

	"github.com/matzehuels/trackgraph/pkg/geometry"
	"github.com/matzehuels/trackgraph/pkg/strategy"
)

// Visual kinds.
const (
	KindStationLabel = "station-label"
	KindTrackLine    = "track-line"
	KindTrainLine    = "train-line"
	KindTimeLabel    = "time-label"
	KindPassMarker   = "pass-marker"
	KindTrainLabel   = "train-label"
)

// namespace scopes visual IDs so they stay stable across runs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/trackgraph/visual"))

// Visual is one drawn item, for hit-testing and diagnostics.
type Visual struct {
	ID     string        `json:"id"`
	Kind   string        `json:"kind"`
	Name   string        `json:"name"`
	Bounds geometry.Rect `json:"bounds"`
}

func newVisual(kind, name string, bounds geometry.Rect) Visual {
	id := uuid.NewSHA1(namespace, []byte(kind+"\x00"+name))
	return Visual{ID: id.String(), Kind: kind, Name: name, Bounds: bounds}
}

// Visuals enumerates everything Draw paints, in drawing order. The sequence
// can be iterated any number of times.
func (d *Diagram) Visuals() iter.Seq[Visual] {
	return func(yield func(Visual) bool) {
		for _, l := range d.trackLines {
			if !yield(newVisual(KindTrackLine, l.Track.String(), l.Bounds())) {
				return
			}
		}
		for _, l := range d.trainLines {
			if !yield(newVisual(KindTrainLine, l.Train.ID, l.Bounds())) {
				return
			}
		}
		for _, l := range d.stationLabels {
			if !yield(newVisual(KindStationLabel, l.Station.ID, l.Bounds())) {
				return
			}
		}
		for e := range d.trackMgr.Elements() {
			if !yield(elementVisual(e)) {
				return
			}
		}
		for e := range d.stationMgr.Elements() {
			if !yield(elementVisual(e)) {
				return
			}
		}
	}
}

func elementVisual(e strategy.Element) Visual {
	switch el := e.(type) {
	case *TimeLabel:
		return newVisual(KindTimeLabel, el.Event.String(), el.Bounds())
	case *PassMarker:
		return newVisual(KindPassMarker, el.Event.String(), el.Bounds())
	case *TrainLabel:
		return newVisual(KindTrainLabel, el.Event.String(), el.Bounds())
	}
	return newVisual("element", "", e.Bounds())
}

// SegmentInfo describes one strip of the stack after Arrange.
type SegmentInfo struct {
	Name    string  `json:"name"`
	Desired float64 `json:"desired"`
	Upper   float64 `json:"upper"`
	Lower   float64 `json:"lower"`
	Demands int     `json:"demands"`
}

// Segments lists the stack top to bottom.
func (d *Diagram) Segments() []SegmentInfo {
	segs := d.stack.Segments()
	out := make([]SegmentInfo, 0, len(segs))
	for _, s := range segs {
		out = append(out, SegmentInfo{
			Name:    s.Name(),
			Desired: s.DesiredHeight(),
			Upper:   s.UpperBound(),
			Lower:   s.LowerBound(),
			Demands: s.DemandCount(),
		})
	}
	return out
}

// Stats summarises a diagram for logging.
type Stats struct {
	Stations    int     `json:"stations"`
	Tracks      int     `json:"tracks"`
	Trains      int     `json:"trains"`
	Annotations int     `json:"annotations"`
	Skipped     int     `json:"skipped"`
	Desired     float64 `json:"desired_height"`
	Scale       float64 `json:"scale"`
}

// Stats returns counts and the outcome of the last layout cycle.
func (d *Diagram) Stats() Stats {
	return Stats{
		Stations:    len(d.tt.Stations),
		Tracks:      len(d.ordinal),
		Trains:      len(d.tt.Trains),
		Annotations: d.trackMgr.Len() + d.stationMgr.Len(),
		Skipped:     len(d.skipped),
		Desired:     d.stack.DesiredHeight(),
		Scale:       d.scale,
	}
}
