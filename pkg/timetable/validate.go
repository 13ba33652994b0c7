package timetable

import "github.com/matzehuels/trackgraph/pkg/errors"

// Validate checks the structural invariants the layout engine relies on:
//   - at least one station, every station with at least one track
//   - unique, well-formed station, track (per station) and train IDs
//   - every train has at least two events, in non-decreasing time order
//   - every event sits on a track of one of the timetable's stations
func (tt *Timetable) Validate() error {
	if len(tt.Stations) == 0 {
		return errors.New(errors.ErrCodeInvalidTimetable, "timetable has no stations")
	}

	tracks := make(map[*Track]bool)
	stationIDs := make(map[string]bool, len(tt.Stations))
	for _, s := range tt.Stations {
		if err := errors.ValidateID("station", s.ID); err != nil {
			return err
		}
		if stationIDs[s.ID] {
			return errors.New(errors.ErrCodeInvalidTimetable, "duplicate station %q", s.ID)
		}
		stationIDs[s.ID] = true

		if len(s.Tracks) == 0 {
			return errors.New(errors.ErrCodeInvalidTimetable, "station %q has no tracks", s.ID)
		}
		trackIDs := make(map[string]bool, len(s.Tracks))
		for _, t := range s.Tracks {
			if err := errors.ValidateID("track", t.ID); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidTimetable, err, "station %q", s.ID)
			}
			if trackIDs[t.ID] {
				return errors.New(errors.ErrCodeInvalidTimetable, "duplicate track %q at station %q", t.ID, s.ID)
			}
			if t.Station != s {
				return errors.New(errors.ErrCodeInvalidTimetable, "track %q is not owned by station %q", t.ID, s.ID)
			}
			trackIDs[t.ID] = true
			tracks[t] = true
		}
	}

	trainIDs := make(map[string]bool, len(tt.Trains))
	for _, tr := range tt.Trains {
		if err := errors.ValidateID("train", tr.ID); err != nil {
			return err
		}
		if trainIDs[tr.ID] {
			return errors.New(errors.ErrCodeInvalidTimetable, "duplicate train %q", tr.ID)
		}
		trainIDs[tr.ID] = true

		if len(tr.Events) < 2 {
			return errors.New(errors.ErrCodeInvalidTimetable, "train %q needs at least two events, has %d", tr.ID, len(tr.Events))
		}
		for i, e := range tr.Events {
			if e.Train != tr {
				return errors.New(errors.ErrCodeInvalidTimetable, "event %d of train %q belongs to another train", i, tr.ID)
			}
			if !tracks[e.Track] {
				return errors.New(errors.ErrCodeInvalidTimetable, "event %d of train %q is on an unknown track", i, tr.ID)
			}
			if i > 0 && e.Time < tr.Events[i-1].Time {
				return errors.New(errors.ErrCodeInvalidTimetable, "train %q goes back in time at %s", tr.ID, e)
			}
		}
	}
	return nil
}
