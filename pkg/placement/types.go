package placement

import (
	"fmt"

	"github.com/matzehuels/trackgraph/pkg/timetable"
)

// Side is one of the two strips adjacent to a horizontal line.
type Side int

const (
	// Upper is the strip above the line (smaller Y).
	Upper Side = iota
	// Lower is the strip below the line (larger Y).
	Lower
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Upper {
		return Lower
	}
	return Upper
}

func (s Side) String() string {
	switch s {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Angle selects which of the two angles at a crossing an element goes into.
type Angle int

const (
	Acute Angle = iota
	Obtuse
)

func (a Angle) String() string {
	switch a {
	case Acute:
		return "acute"
	case Obtuse:
		return "obtuse"
	}
	return fmt.Sprintf("Angle(%d)", int(a))
}

// Apply maps a classified side to the side an element with this preference
// occupies.
func (a Angle) Apply(s Side) Side {
	if a == Obtuse {
		return s.Opposite()
	}
	return s
}

// Type describes where an element wants to be placed.
type Type struct {
	Event *timetable.Event
	Angle Angle
}

func (t Type) String() string {
	return fmt.Sprintf("%s (%s)", t.Event, t.Angle)
}

// TrackKey addresses the strip directly above or below a station track.
type TrackKey struct {
	Track *timetable.Track
	Side  Side
}

func (k TrackKey) String() string { return fmt.Sprintf("track %s %s", k.Track, k.Side) }

// StationKey addresses the strip above the first or below the last track of a
// station, i.e. half of the span to the neighbouring station.
type StationKey struct {
	Station *timetable.Station
	Side    Side
}

func (k StationKey) String() string {
	return fmt.Sprintf("station %s %s", k.Station.ID, k.Side)
}

// LineKey addresses the strip holding the stroke of a track line itself.
type LineKey struct {
	Track *timetable.Track
}

func (k LineKey) String() string { return fmt.Sprintf("line %s", k.Track) }
