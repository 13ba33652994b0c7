package pipeline

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/trackgraph/pkg/errors"
)

// LoadOptions reads options from a TOML file. Unknown keys are rejected so
// that a misspelt setting does not silently fall back to its default.
//
//	width = 1600
//	formats = ["svg", "png"]
//	pixels_per_km = 10
//	train_labels = "all"
func LoadOptions(path string) (Options, error) {
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %s", path, undec[0])
	}
	return opts, nil
}

// Merge returns o with every non-zero field of override applied on top.
// The CLI uses it to let flags win over the config file.
func (o Options) Merge(override Options) Options {
	floats := []struct{ dst, src *float64 }{
		{&o.Width, &override.Width},
		{&o.Height, &override.Height},
		{&o.Scale, &override.Scale},
		{&o.PixelsPerKm, &override.PixelsPerKm},
		{&o.MinSpan, &override.MinSpan},
		{&o.TrackSpacing, &override.TrackSpacing},
		{&o.Padding, &override.Padding},
		{&o.Gap, &override.Gap},
		{&o.FontSize, &override.FontSize},
		{&o.TrackStroke, &override.TrackStroke},
		{&o.TrainStroke, &override.TrainStroke},
	}
	for _, f := range floats {
		if *f.src != 0 {
			*f.dst = *f.src
		}
	}
	if len(override.Formats) > 0 {
		o.Formats = override.Formats
	}
	if override.Background != "" {
		o.Background = override.Background
	}
	if override.TrainLabels != "" {
		o.TrainLabels = override.TrainLabels
	}
	o.HitTargets = o.HitTargets || override.HitTargets
	o.Strict = o.Strict || override.Strict
	o.Refresh = o.Refresh || override.Refresh
	if override.Logger != nil {
		o.Logger = override.Logger
	}
	return o
}
