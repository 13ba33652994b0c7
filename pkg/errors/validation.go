package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxIDLength bounds station, track and train identifiers.
const maxIDLength = 128

// ValidateID validates a station, track or train identifier.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No leading or trailing whitespace
//   - Maximum length of 128 characters
//
// Identifiers end up in SVG ids and cache keys, so anything that would need
// escaping there is rejected early.
func ValidateID(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidTimetable, "%s id cannot be empty", kind)
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidTimetable, "%s id too long (max %d characters)", kind, maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTimetable, "%s id %q contains control characters", kind, id)
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidTimetable, "%s id %q has surrounding whitespace", kind, id)
	}

	return nil
}

// ValidateDimensions validates a frame size in pixels.
// Both sides must be finite and strictly positive.
func ValidateDimensions(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "frame size must be finite (got %vx%v)", width, height)
		}
		if v <= 0 {
			return New(ErrCodeInvalidInput, "frame size must be positive (got %vx%v)", width, height)
		}
	}
	return nil
}

// ValidateNonNegative validates a length option such as a margin or a gap.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidConfig, "%s must be a finite non-negative number (got %v)", name, v)
	}
	return nil
}
