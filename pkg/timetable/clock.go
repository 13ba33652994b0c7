package timetable

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/trackgraph/pkg/errors"
)

// ParseClock parses "HH:MM" or "HH:MM:SS" into a duration since the start of
// the service day. Hours may exceed 23 for trains running past midnight.
func ParseClock(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, errors.New(errors.ErrCodeInvalidTimetable, "invalid clock time %q (want HH:MM or HH:MM:SS)", s)
	}

	limits := []int{-1, 59, 59}
	units := []time.Duration{time.Hour, time.Minute, time.Second}
	var d time.Duration
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (limits[i] >= 0 && n > limits[i]) {
			return 0, errors.New(errors.ErrCodeInvalidTimetable, "invalid clock time %q", s)
		}
		d += time.Duration(n) * units[i]
	}
	return d, nil
}

// FormatClock renders d as HH:MM, or HH:MM:SS when it has seconds.
func FormatClock(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if s != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Minutes returns the minute-of-hour digits shown next to an event.
func Minutes(d time.Duration) string {
	return fmt.Sprintf("%02d", int(d%time.Hour/time.Minute))
}
