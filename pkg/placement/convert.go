package placement

import (
	"github.com/matzehuels/trackgraph/pkg/errors"
	"github.com/matzehuels/trackgraph/pkg/geometry"
	"github.com/matzehuels/trackgraph/pkg/timetable"
)

// Converter turns a placement type into a segment key.
type Converter[K comparable] func(Type) (K, error)

// Paths holds one path per train.
type Paths map[*timetable.Train]*Path

// Of returns the path containing e.
func (ps Paths) Of(e *timetable.Event) (*Path, error) {
	if e == nil {
		return nil, errors.New(errors.ErrCodeEventNotFound, "nil event")
	}
	p, ok := ps[e.Train]
	if !ok || !p.Contains(e) {
		return nil, errors.New(errors.ErrCodeEventNotFound, "no path contains %s", e)
	}
	return p, nil
}

// Resolve finds the path of t.Event and resolves the side for t.
func (ps Paths) Resolve(t Type) (Side, geometry.Vector, error) {
	p, err := ps.Of(t.Event)
	if err != nil {
		return 0, geometry.Vector{}, err
	}
	return Resolve(p, t)
}

// TrackConverter keys elements by the event's track.
func TrackConverter(ps Paths) Converter[TrackKey] {
	return func(t Type) (TrackKey, error) {
		side, _, err := ps.Resolve(t)
		if err != nil {
			return TrackKey{}, err
		}
		return TrackKey{Track: t.Event.Track, Side: side}, nil
	}
}

// StationConverter keys elements by the event's station.
func StationConverter(ps Paths) Converter[StationKey] {
	return func(t Type) (StationKey, error) {
		side, _, err := ps.Resolve(t)
		if err != nil {
			return StationKey{}, err
		}
		return StationKey{Station: t.Event.Station(), Side: side}, nil
	}
}
