// Package pipeline runs the import → layout → render cycle shared by the CLI
// and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode a timetable document (JSON, YAML or TOML) and validate it
//  2. Layout: Build a [diagram.Diagram] and run Measure, Arrange and Dock
//  3. Render: Draw the diagram into every requested format (SVG, PNG, PDF, JSON)
//
// Loaded timetables and rendered artifacts are cached. Artifact keys hash the
// canonical timetable together with every option that affects the output, so
// a cached artifact is reused only when it would be rendered identically.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	tt, err := runner.LoadFile(ctx, "valley.toml")
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, tt, pipeline.Options{Formats: []string{"svg"}})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trackgraph/pkg/cache"
	"github.com/matzehuels/trackgraph/pkg/diagram"
	"github.com/matzehuels/trackgraph/pkg/errors"
	"github.com/matzehuels/trackgraph/pkg/render/canvas"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 1200.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 800.0

	// DefaultScale is the device pixel ratio used for raster output.
	DefaultScale = 2.0

	// DefaultBackground fills the frame of SVG and PNG output.
	DefaultBackground = "#ffffff"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// It decodes from JSON request bodies and TOML config files alike.
type Options struct {
	// Frame
	Width  float64 `json:"width,omitempty" toml:"width"`
	Height float64 `json:"height,omitempty" toml:"height"`

	// Output
	Formats    []string `json:"formats,omitempty" toml:"formats"`
	Scale      float64  `json:"scale,omitempty" toml:"scale"`
	Background string   `json:"background,omitempty" toml:"background"`
	HitTargets bool     `json:"hit_targets,omitempty" toml:"hit_targets"`

	// Diagram geometry, zero values fall back to diagram.DefaultConfig
	PixelsPerKm  float64 `json:"pixels_per_km,omitempty" toml:"pixels_per_km"`
	MinSpan      float64 `json:"min_span,omitempty" toml:"min_span"`
	TrackSpacing float64 `json:"track_spacing,omitempty" toml:"track_spacing"`
	Padding      float64 `json:"padding,omitempty" toml:"padding"`
	Gap          float64 `json:"gap,omitempty" toml:"gap"`
	FontSize     float64 `json:"font_size,omitempty" toml:"font_size"`
	TrackStroke  float64 `json:"track_stroke,omitempty" toml:"track_stroke"`
	TrainStroke  float64 `json:"train_stroke,omitempty" toml:"train_stroke"`
	TrainLabels  string  `json:"train_labels,omitempty" toml:"train_labels"`
	Strict       bool    `json:"strict,omitempty" toml:"strict"`

	// Refresh skips cache reads. Fresh results are still written.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the laid-out diagram. It is nil when every artifact came
	// from the cache.
	Diagram *diagram.Diagram

	// TimetableHash is the content hash of the canonical timetable.
	TimetableHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Stations   int
	Trains     int
	Skipped    int
	Scale      float64
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per format.
type CacheInfo struct {
	Hits      map[string]bool
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero values. Diagram geometry is left to the diagram
// package so that its defaults stay in one place.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks every option.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive (got %v)", o.Scale)
	}
	return o.DiagramConfig().Validate()
}

// DiagramConfig translates the options into a diagram configuration.
func (o *Options) DiagramConfig() diagram.Config {
	return diagram.Config{
		PixelsPerKm:  o.PixelsPerKm,
		MinSpan:      o.MinSpan,
		TrackSpacing: o.TrackSpacing,
		Padding:      o.Padding,
		Gap:          o.Gap,
		FontSize:     o.FontSize,
		TrackStroke:  o.TrackStroke,
		TrainStroke:  o.TrainStroke,
		Scale:        o.Scale,
		TrainLabels:  diagram.LabelMode(o.TrainLabels),
		Strict:       o.Strict,
		Logger:       o.Logger,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	settings := o.DiagramConfig()
	settings.Logger = nil
	return cache.ArtifactKeyOpts{
		Format: format,
		Width:  o.Width,
		Height: o.Height,
		Scale:  o.Scale,
		Settings: struct {
			Diagram    diagram.Config
			Background canvas.Color
			HitTargets bool
		}{settings, canvas.Color(o.Background), o.HitTargets},
	}
}
