// Package timetable defines the railway timetable consumed by the layout
// engine: stations with their tracks, and trains as chronological lists of
// arrival, departure and passage events.
package timetable

import (
	"fmt"
	"time"
)

// Station is a stop or timing point on the line.
type Station struct {
	ID   string
	Name string
	// Position along the line in kilometres.
	Position float64
	Tracks   []*Track
}

// DisplayName returns the name if set, otherwise the ID.
func (s *Station) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// AddTrack appends a new track to the station and returns it.
func (s *Station) AddTrack(id string) *Track {
	t := &Track{ID: id, Station: s}
	s.Tracks = append(s.Tracks, t)
	return t
}

// Track is one horizontal line of a station.
type Track struct {
	ID      string
	Name    string
	Station *Station
}

func (t *Track) String() string {
	if t.Station == nil {
		return t.ID
	}
	return t.Station.ID + "/" + t.ID
}

// EventKind distinguishes arrivals, departures and passages.
type EventKind int

const (
	Arrival EventKind = iota
	Departure
	Passage
)

func (k EventKind) String() string {
	switch k {
	case Arrival:
		return "arrival"
	case Departure:
		return "departure"
	case Passage:
		return "passage"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one timetable entry of a train at a track.
type Event struct {
	Kind EventKind
	// Time since the start of the service day.
	Time  time.Duration
	Track *Track
	Train *Train
}

// Station returns the station of the event's track.
func (e *Event) Station() *Station {
	if e.Track == nil {
		return nil
	}
	return e.Track.Station
}

func (e *Event) String() string {
	train := "?"
	if e.Train != nil {
		train = e.Train.ID
	}
	return fmt.Sprintf("%s %s at %s %s", train, e.Kind, e.Track, FormatClock(e.Time))
}

// Train is a service running through the timetable.
type Train struct {
	ID     string
	Name   string
	Events []*Event
}

// DisplayName returns the name if set, otherwise the ID.
func (t *Train) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// AddEvent appends an event to the train and returns it.
func (t *Train) AddEvent(kind EventKind, at time.Duration, track *Track) *Event {
	e := &Event{Kind: kind, Time: at, Track: track, Train: t}
	t.Events = append(t.Events, e)
	return e
}

// Timetable is a line with its stations, in display order, and its trains.
type Timetable struct {
	Name     string
	Stations []*Station
	Trains   []*Train
}

// AddStation appends a new station and returns it.
func (tt *Timetable) AddStation(id string, km float64) *Station {
	s := &Station{ID: id, Position: km}
	tt.Stations = append(tt.Stations, s)
	return s
}

// AddTrain appends a new train and returns it.
func (tt *Timetable) AddTrain(id string) *Train {
	t := &Train{ID: id}
	tt.Trains = append(tt.Trains, t)
	return t
}

// Station looks up a station by ID.
func (tt *Timetable) Station(id string) (*Station, bool) {
	for _, s := range tt.Stations {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// TimeRange returns the earliest and latest event time over all trains.
// ok is false when there are no events.
func (tt *Timetable) TimeRange() (start, end time.Duration, ok bool) {
	for _, t := range tt.Trains {
		for _, e := range t.Events {
			if !ok {
				start, end, ok = e.Time, e.Time, true
				continue
			}
			start = min(start, e.Time)
			end = max(end, e.Time)
		}
	}
	return start, end, ok
}

// EventCount returns the number of events over all trains.
func (tt *Timetable) EventCount() int {
	n := 0
	for _, t := range tt.Trains {
		n += len(t.Events)
	}
	return n
}
