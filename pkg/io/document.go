package io

import (
	"github.com/matzehuels/trackgraph/pkg/errors"
	"github.com/matzehuels/trackgraph/pkg/timetable"
)

type document struct {
	Name     string    `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Stations []station `json:"stations" yaml:"stations" toml:"stations"`
	Trains   []train   `json:"trains" yaml:"trains" toml:"trains"`
}

type station struct {
	ID     string   `json:"id" yaml:"id" toml:"id"`
	Name   string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Km     float64  `json:"km" yaml:"km" toml:"km"`
	Tracks []string `json:"tracks,omitempty" yaml:"tracks,omitempty" toml:"tracks,omitempty"`
}

type train struct {
	ID    string `json:"id" yaml:"id" toml:"id"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Stops []stop `json:"stops" yaml:"stops" toml:"stops"`
}

type stop struct {
	Station string `json:"station" yaml:"station" toml:"station"`
	Track   string `json:"track,omitempty" yaml:"track,omitempty" toml:"track,omitempty"`
	Arrive  string `json:"arrive,omitempty" yaml:"arrive,omitempty" toml:"arrive,omitempty"`
	Depart  string `json:"depart,omitempty" yaml:"depart,omitempty" toml:"depart,omitempty"`
	Pass    string `json:"pass,omitempty" yaml:"pass,omitempty" toml:"pass,omitempty"`
}

// defaultTrack is the track given to stations that list none.
const defaultTrack = "1"

func (doc *document) timetable() (*timetable.Timetable, error) {
	tt := &timetable.Timetable{Name: doc.Name}
	for _, s := range doc.Stations {
		st := tt.AddStation(s.ID, s.Km)
		st.Name = s.Name
		tracks := s.Tracks
		if len(tracks) == 0 {
			tracks = []string{defaultTrack}
		}
		for _, id := range tracks {
			st.AddTrack(id)
		}
	}

	for _, t := range doc.Trains {
		tr := tt.AddTrain(t.ID)
		tr.Name = t.Name
		for i, s := range t.Stops {
			if err := addStop(tt, tr, s); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidTimetable, err, "train %q stop %d", t.ID, i+1)
			}
		}
	}
	return tt, nil
}

func addStop(tt *timetable.Timetable, tr *timetable.Train, s stop) error {
	st, ok := tt.Station(s.Station)
	if !ok {
		return errors.New(errors.ErrCodeInvalidTimetable, "unknown station %q", s.Station)
	}
	track := st.Tracks[0]
	if s.Track != "" {
		track = nil
		for _, t := range st.Tracks {
			if t.ID == s.Track {
				track = t
				break
			}
		}
		if track == nil {
			return errors.New(errors.ErrCodeInvalidTimetable, "station %q has no track %q", s.Station, s.Track)
		}
	}

	if s.Pass != "" {
		if s.Arrive != "" || s.Depart != "" {
			return errors.New(errors.ErrCodeInvalidTimetable, "a passage at %q cannot also arrive or depart", s.Station)
		}
		at, err := timetable.ParseClock(s.Pass)
		if err != nil {
			return err
		}
		tr.AddEvent(timetable.Passage, at, track)
		return nil
	}

	if s.Arrive == "" && s.Depart == "" {
		return errors.New(errors.ErrCodeInvalidTimetable, "stop at %q has no time", s.Station)
	}
	if s.Arrive != "" {
		at, err := timetable.ParseClock(s.Arrive)
		if err != nil {
			return err
		}
		tr.AddEvent(timetable.Arrival, at, track)
	}
	if s.Depart != "" {
		at, err := timetable.ParseClock(s.Depart)
		if err != nil {
			return err
		}
		tr.AddEvent(timetable.Departure, at, track)
	}
	return nil
}

func fromTimetable(tt *timetable.Timetable) document {
	doc := document{Name: tt.Name}
	for _, s := range tt.Stations {
		st := station{ID: s.ID, Name: s.Name, Km: s.Position}
		for _, t := range s.Tracks {
			st.Tracks = append(st.Tracks, t.ID)
		}
		doc.Stations = append(doc.Stations, st)
	}

	for _, tr := range tt.Trains {
		t := train{ID: tr.ID, Name: tr.Name}
		for i := 0; i < len(tr.Events); i++ {
			e := tr.Events[i]
			s := stop{Station: e.Station().ID, Track: e.Track.ID}
			switch e.Kind {
			case timetable.Passage:
				s.Pass = timetable.FormatClock(e.Time)
			case timetable.Departure:
				s.Depart = timetable.FormatClock(e.Time)
			case timetable.Arrival:
				s.Arrive = timetable.FormatClock(e.Time)
				if i+1 < len(tr.Events) {
					next := tr.Events[i+1]
					if next.Kind == timetable.Departure && next.Track == e.Track {
						s.Depart = timetable.FormatClock(next.Time)
						i++
					}
				}
			}
			t.Stops = append(t.Stops, s)
		}
		doc.Trains = append(doc.Trains, t)
	}
	return doc
}
