package strategy

import (
	"math"

	"github.com/matzehuels/trackgraph/pkg/errors"
	"github.com/matzehuels/trackgraph/pkg/geometry"
	"github.com/matzehuels/trackgraph/pkg/placement"
	"github.com/matzehuels/trackgraph/pkg/timetable"
)

// byEvent groups a manager's entries by the event they annotate, keeping
// insertion order within each event.
func byEvent[E Element, K comparable, S Host](m *Manager[placement.Type, E, K, S]) map[*timetable.Event][]*Entry[placement.Type, E, S] {
	out := make(map[*timetable.Event][]*Entry[placement.Type, E, S])
	for en := range m.Entries() {
		ev := en.Placement.Event
		out[ev] = append(out[ev], en)
	}
	return out
}

// direction returns -1 when v points left, +1 otherwise.
func direction(v geometry.Vector) float64 {
	if v.X < 0 {
		return -1
	}
	return 1
}

// clearance returns the horizontal distance a path with direction v covers
// while rising or falling by h. A path with no vertical extent at the
// current scale gets none.
func clearance(h float64, v geometry.Vector) float64 {
	if h <= 0 || math.Abs(v.Y) < placement.Tolerance {
		return 0
	}
	return geometry.LegLength(h, geometry.AcuteAngle(v, geometry.Horizontal))
}

// routedKey returns the key of the segment en was added to.
func routedKey[E Element, K comparable, S Host](m *Manager[placement.Type, E, K, S], en *Entry[placement.Type, E, S]) (K, error) {
	key, ok := m.Registry().KeyOf(en.Segment)
	if !ok {
		return key, errors.New(errors.ErrCodeKeyNotFound, "segment of %s is not registered", en.Placement)
	}
	return key, nil
}

// TrackDocker positions elements in the strips directly above and below a
// track line, next to where the path crosses it.
type TrackDocker[E Element, S Host] struct {
	// Gap is the horizontal distance kept between path and element.
	Gap float64
}

// Dock positions every element of m that annotates an event of p. Elements
// stay in the strip they were added to; p supplies the crossing point and
// the slope only.
func (d TrackDocker[E, S]) Dock(p *placement.Path, m *Manager[placement.Type, E, placement.TrackKey, S]) error {
	groups := byEvent(m)
	for ev, at := range p.All() {
		if len(groups[ev]) == 0 {
			continue
		}
		v, err := placement.Direction(p, ev)
		if err != nil {
			return err
		}
		for _, en := range groups[ev] {
			key, err := routedKey(m, en)
			if err != nil {
				return err
			}
			en.Element.Arrange(d.place(at, v, key.Side, en.Placement.Angle, en.Segment, en.Element.DesiredSize()))
		}
	}
	return nil
}

func (d TrackDocker[E, S]) place(at, v geometry.Vector, side placement.Side, angle placement.Angle, seg S, size geometry.Size) geometry.Rect {
	h := min(size.H, seg.Height())
	y := seg.UpperBound()
	if side == placement.Upper {
		y = seg.LowerBound() - h
	}

	dir := direction(v)
	offset := d.Gap
	if angle == placement.Acute {
		offset += clearance(h, v)
	}
	x := at.X + dir*offset
	if dir < 0 {
		x -= size.W
	}
	return geometry.Rect{X: x, Y: y, W: size.W, H: h}
}

// StationDocker positions elements vertically centred in a station span,
// beside the point where the path crosses the span's centre line.
type StationDocker[E Element, S Host] struct {
	// Gap is the horizontal distance kept between path and element.
	Gap float64
}

// Dock positions every element of m that annotates an event of p. Elements
// stay in the span they were added to; p supplies the crossing point and
// the slope only.
func (d StationDocker[E, S]) Dock(p *placement.Path, m *Manager[placement.Type, E, placement.StationKey, S]) error {
	groups := byEvent(m)
	for ev, at := range p.All() {
		if len(groups[ev]) == 0 {
			continue
		}
		v, err := placement.Direction(p, ev)
		if err != nil {
			return err
		}
		for _, en := range groups[ev] {
			en.Element.Arrange(d.place(at, v, en.Placement.Angle, en.Segment, en.Element.DesiredSize()))
		}
	}
	return nil
}

func (d StationDocker[E, S]) place(at, v geometry.Vector, angle placement.Angle, seg S, size geometry.Size) geometry.Rect {
	cy := (seg.UpperBound() + seg.LowerBound()) / 2
	h := min(size.H, seg.Height())

	cross, ok := geometry.Intersect(at, at.Add(v), geometry.Vec(0, cy), geometry.Vec(1, cy))
	if !ok || math.Abs(v.Y) < placement.Tolerance {
		cross = geometry.Vec(at.X, cy)
	}
	run := clearance(h/2, v)

	dir := direction(v)
	if angle == placement.Obtuse {
		dir = -dir
	}
	x := cross.X + dir*(run+d.Gap)
	if dir < 0 {
		x -= size.W
	}
	return geometry.Rect{X: x, Y: cy - h/2, W: size.W, H: h}
}
