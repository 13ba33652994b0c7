package placement

import (
	"iter"

	"github.com/matzehuels/trackgraph/pkg/errors"
	"github.com/matzehuels/trackgraph/pkg/geometry"
	"github.com/matzehuels/trackgraph/pkg/timetable"
)

// PointFunc maps an event to its position in some coordinate space.
type PointFunc func(*timetable.Event) geometry.Vector

// Path is the polyline of a train, one point per event in chronological order.
type Path struct {
	events []*timetable.Event
	points []geometry.Vector
	index  map[*timetable.Event]int
}

// NewPath builds a path over events. Every event must appear at most once.
func NewPath(events []*timetable.Event, point PointFunc) (*Path, error) {
	p := &Path{
		events: make([]*timetable.Event, 0, len(events)),
		points: make([]geometry.Vector, 0, len(events)),
		index:  make(map[*timetable.Event]int, len(events)),
	}
	for _, e := range events {
		if _, dup := p.index[e]; dup {
			return nil, errors.New(errors.ErrCodeContractViolation, "event %s appears twice in path", e)
		}
		p.index[e] = len(p.points)
		p.events = append(p.events, e)
		p.points = append(p.points, point(e))
	}
	return p, nil
}

// Len returns the number of points.
func (p *Path) Len() int { return len(p.points) }

// Point returns the i-th point.
func (p *Path) Point(i int) geometry.Vector { return p.points[i] }

// Event returns the i-th event.
func (p *Path) Event(i int) *timetable.Event { return p.events[i] }

// Locate returns the index and point of e.
func (p *Path) Locate(e *timetable.Event) (int, geometry.Vector, bool) {
	i, ok := p.index[e]
	if !ok {
		return -1, geometry.Vector{}, false
	}
	return i, p.points[i], true
}

// Contains reports whether e is part of the path.
func (p *Path) Contains(e *timetable.Event) bool {
	_, ok := p.index[e]
	return ok
}

// Points returns a copy of the polyline.
func (p *Path) Points() []geometry.Vector {
	return append([]geometry.Vector(nil), p.points...)
}

// All iterates over events and their points in path order.
func (p *Path) All() iter.Seq2[*timetable.Event, geometry.Vector] {
	return func(yield func(*timetable.Event, geometry.Vector) bool) {
		for i, e := range p.events {
			if !yield(e, p.points[i]) {
				return
			}
		}
	}
}
