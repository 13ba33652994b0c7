package diagram

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trackgraph/pkg/errors"
)

// LabelMode selects which departures get a train name label.
type LabelMode string

const (
	LabelFirst LabelMode = "first"
	LabelAll   LabelMode = "all"
	LabelNone  LabelMode = "none"
)

// Config controls the geometry and styling of a diagram.
type Config struct {
	// PixelsPerKm converts the distance between stations into span height.
	PixelsPerKm float64
	// MinSpan is the smallest span between two adjacent stations.
	MinSpan float64
	// TrackSpacing is the least distance between two tracks of a station.
	TrackSpacing float64
	// Padding surrounds the plot area.
	Padding float64
	// Gap separates annotations from the train path.
	Gap float64

	FontSize    float64
	TrackStroke float64
	TrainStroke float64
	// Scale is the device pixel ratio of the target canvas.
	Scale float64

	TrainLabels LabelMode
	// Strict fails the build when an annotation cannot be placed instead of
	// skipping it.
	Strict bool

	Logger *log.Logger
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		PixelsPerKm:  8,
		MinSpan:      40,
		TrackSpacing: 6,
		Padding:      16,
		Gap:          3,
		FontSize:     11,
		TrackStroke:  1,
		TrainStroke:  1.5,
		Scale:        1,
		TrainLabels:  LabelFirst,
	}
}

func (c *Config) setDefaults() {
	def := DefaultConfig()
	if c.PixelsPerKm == 0 {
		c.PixelsPerKm = def.PixelsPerKm
	}
	if c.MinSpan == 0 {
		c.MinSpan = def.MinSpan
	}
	if c.TrackSpacing == 0 {
		c.TrackSpacing = def.TrackSpacing
	}
	if c.Padding == 0 {
		c.Padding = def.Padding
	}
	if c.FontSize == 0 {
		c.FontSize = def.FontSize
	}
	if c.TrackStroke == 0 {
		c.TrackStroke = def.TrackStroke
	}
	if c.TrainStroke == 0 {
		c.TrainStroke = def.TrainStroke
	}
	if c.Scale == 0 {
		c.Scale = def.Scale
	}
	if c.TrainLabels == "" {
		c.TrainLabels = def.TrainLabels
	}
	if c.Logger == nil {
		c.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"pixels_per_km", c.PixelsPerKm},
		{"min_span", c.MinSpan},
		{"track_spacing", c.TrackSpacing},
		{"padding", c.Padding},
		{"gap", c.Gap},
		{"font_size", c.FontSize},
		{"track_stroke", c.TrackStroke},
		{"train_stroke", c.TrainStroke},
		{"scale", c.Scale},
	} {
		if err := errors.ValidateNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	switch c.TrainLabels {
	case "", LabelFirst, LabelAll, LabelNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown train label mode %q", c.TrainLabels)
	}
	return nil
}
