package timetable

import (
	"testing"
	"time"

	"github.com/matzehuels/trackgraph/pkg/errors"
)

func clock(h, m int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
}

func sample() *Timetable {
	tt := &Timetable{Name: "Main line"}
	a := tt.AddStation("A", 0)
	a1 := a.AddTrack("1")
	b := tt.AddStation("B", 12)
	b1 := b.AddTrack("1")
	b.AddTrack("2")

	tr := tt.AddTrain("RB 1")
	tr.AddEvent(Departure, clock(8, 0), a1)
	tr.AddEvent(Arrival, clock(8, 12), b1)
	return tt
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tt *Timetable)
		wantErr bool
	}{
		{"valid", func(*Timetable) {}, false},
		{"no stations", func(tt *Timetable) { tt.Stations = nil }, true},
		{"station without tracks", func(tt *Timetable) { tt.AddStation("C", 20) }, true},
		{"duplicate station", func(tt *Timetable) { tt.AddStation("A", 20).AddTrack("1") }, true},
		{"duplicate track", func(tt *Timetable) { tt.Stations[0].AddTrack("1") }, true},
		{"duplicate train", func(tt *Timetable) {
			tr := tt.AddTrain("RB 1")
			tr.AddEvent(Departure, clock(9, 0), tt.Stations[0].Tracks[0])
			tr.AddEvent(Arrival, clock(9, 10), tt.Stations[1].Tracks[0])
		}, true},
		{"single event", func(tt *Timetable) {
			tt.AddTrain("RB 2").AddEvent(Departure, clock(9, 0), tt.Stations[0].Tracks[0])
		}, true},
		{"backwards in time", func(tt *Timetable) {
			tt.Trains[0].Events[1].Time = clock(7, 0)
		}, true},
		{"foreign track", func(tt *Timetable) {
			tt.Trains[0].Events[1].Track = &Track{ID: "x"}
		}, true},
		{"empty train id", func(tt *Timetable) { tt.Trains[0].ID = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := sample()
			tt.mutate(table)
			err := table.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidTimetable) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidTimetable)
			}
		})
	}
}

func TestTimeRange(t *testing.T) {
	tt := sample()
	tr := tt.AddTrain("RB 3")
	tr.AddEvent(Departure, clock(6, 30), tt.Stations[1].Tracks[1])
	tr.AddEvent(Arrival, clock(6, 45), tt.Stations[0].Tracks[0])

	start, end, ok := tt.TimeRange()
	if !ok {
		t.Fatal("TimeRange() ok = false")
	}
	if start != clock(6, 30) || end != clock(8, 12) {
		t.Errorf("TimeRange() = %v..%v, want 6h30m..8h12m", start, end)
	}
	if n := tt.EventCount(); n != 4 {
		t.Errorf("EventCount() = %d, want 4", n)
	}

	if _, _, ok := (&Timetable{}).TimeRange(); ok {
		t.Error("TimeRange() ok = true for empty timetable")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"08:05", clock(8, 5), false},
		{"8:05", clock(8, 5), false},
		{"23:59:30", clock(23, 59) + 30*time.Second, false},
		{"25:10", clock(25, 10), false},
		{" 07:00 ", clock(7, 0), false},
		{"08", 0, true},
		{"08:60", 0, true},
		{"08:00:61", 0, true},
		{"aa:bb", 0, true},
		{"-1:00", 0, true},
		{"1:2:3:4", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{clock(8, 5), "08:05"},
		{clock(8, 5) + 30*time.Second, "08:05:30"},
		{clock(26, 0), "26:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := Minutes(clock(14, 7)); got != "07" {
		t.Errorf("Minutes() = %q, want %q", got, "07")
	}
}

func TestEventStringAndStation(t *testing.T) {
	tt := sample()
	e := tt.Trains[0].Events[1]
	if e.Station() != tt.Stations[1] {
		t.Errorf("Station() = %v, want B", e.Station())
	}
	if got, want := e.String(), "RB 1 arrival at B/1 08:12"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
