package placement

import (
	"math"

	"github.com/matzehuels/trackgraph/pkg/errors"
	"github.com/matzehuels/trackgraph/pkg/geometry"
	"github.com/matzehuels/trackgraph/pkg/timetable"
)

// Tolerance is the vertical distance below which two path points count as
// lying on the same horizontal line.
const Tolerance = 0.001

// Direction returns the local direction of the path at e, pointing from the
// event's crossing toward where the rest of the path continues.
//
// Arrivals look one point back, departures and passages one point ahead. When
// that neighbour does not exist, the walk turns around and takes the first
// point in the other direction that leaves the event's horizontal line. If no
// such point exists the result is the zero vector.
func Direction(p *Path, e *timetable.Event) (geometry.Vector, error) {
	idx, at, ok := p.Locate(e)
	if !ok {
		return geometry.Vector{}, errors.New(errors.ErrCodeEventNotFound, "event %s is not part of the path", e)
	}

	backward := e.Kind == timetable.Arrival
	step := 1
	if backward {
		step = -1
	}

	adj := at
	if n := idx + step; n >= 0 && n < p.Len() {
		adj = p.points[n]
	} else {
		for i := idx - step; i >= 0 && i < p.Len(); i -= step {
			if math.Abs(p.points[i].Y-at.Y) > Tolerance {
				adj = p.points[i]
				break
			}
		}
	}

	if backward {
		return at.Sub(adj), nil
	}
	return adj.Sub(at), nil
}

// Classify returns the side of the horizontal line through e that the path
// leans into, together with the direction vector used to decide it.
//
// A vector pointing down the canvas (Y >= 0) yields [Lower]. A locally
// horizontal path cannot be classified and fails with
// UNDETERMINED_PLACEMENT.
func Classify(p *Path, e *timetable.Event) (Side, geometry.Vector, error) {
	v, err := Direction(p, e)
	if err != nil {
		return 0, v, err
	}
	if math.Abs(v.Y) < Tolerance {
		return 0, v, errors.New(errors.ErrCodeUndeterminedPlacement, "path is horizontal at %s", e)
	}
	if v.Y >= 0 {
		return Lower, v, nil
	}
	return Upper, v, nil
}

// Resolve classifies t.Event and applies the angle preference.
func Resolve(p *Path, t Type) (Side, geometry.Vector, error) {
	side, v, err := Classify(p, t.Event)
	if err != nil {
		return 0, v, err
	}
	return t.Angle.Apply(side), v, nil
}
