package cache

import "fmt"

// Keyer derives cache keys from the inputs of each cached computation.
type Keyer interface {
	// TimetableKey identifies a parsed timetable by the hash of its source
	// bytes and the format they were read as.
	TimetableKey(sourceHash, format string) string

	// ArtifactKey identifies a rendered output of a timetable.
	ArtifactKey(timetableHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists everything besides the timetable that changes a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale,omitempty"`

	// Settings carries the diagram configuration. It must marshal to JSON
	// deterministically.
	Settings any `json:"settings,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// TimetableKey returns "timetable:<format>:<hash>".
func (DefaultKeyer) TimetableKey(sourceHash, format string) string {
	return fmt.Sprintf("timetable:%s:%s", format, sourceHash)
}

// ArtifactKey returns "artifact:<sha256>" over the timetable hash and opts.
func (DefaultKeyer) ArtifactKey(timetableHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", timetableHash, opts)
}
