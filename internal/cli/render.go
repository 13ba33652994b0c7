package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trackgraph/pkg/pipeline"
)

// renderFlags holds the command-line flags of the render command.
type renderFlags struct {
	output  string // output file (single format) or base path (multiple)
	formats string // comma-separated output formats
	config  string // TOML options file
	noCache bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags renderFlags
		opts  pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render [timetable]",
		Short: "Render a timetable to SVG, PNG, PDF or JSON",
		Long: `Render a timetable to SVG, PNG, PDF or JSON.

The timetable format follows the file extension (.json, .yaml, .yml, .toml).
Options are read from --config and overridden by flags. Rendered artifacts
are cached locally; --refresh re-renders and replaces them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(flags.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], flags, opts)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "TOML options file")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, &opts)
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "device pixel ratio for PNG output (default 2)")
	cmd.Flags().BoolVar(&opts.HitTargets, "hit-targets", false, "add hover targets with element ids to SVG output")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached artifacts")

	return cmd
}

// addLayoutFlags registers the flags shared by render and inspect.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "frame width in pixels (default 1200)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "frame height in pixels (default 800)")
	cmd.Flags().Float64Var(&opts.PixelsPerKm, "px-per-km", 0, "vertical pixels per kilometre between stations")
	cmd.Flags().StringVar(&opts.TrainLabels, "labels", "", "train labels: first (default), all, none")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail on annotations that cannot be placed")
}

// runRender loads the timetable, runs the pipeline and writes artifacts.
func (c *CLI) runRender(ctx context.Context, input string, flags renderFlags, flagOpts pipeline.Options) error {
	opts, err := loadOptions(flags.config, flagOpts)
	if err != nil {
		return err
	}
	opts.Logger = c.Logger
	opts.SetDefaults()

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
	spinner.Start()

	var (
		result  *pipeline.Result
		skipped []string
	)
	err = withSpinnerHooks(spinner, func(h *spinnerHooks) error {
		tt, err := runner.LoadFile(ctx, input)
		if err != nil {
			return err
		}
		result, err = runner.Execute(ctx, tt, opts)
		skipped = h.Skipped()
		return err
	})
	if err != nil {
		spinner.StopWithError(c.stdout(), "Render failed")
		return err
	}
	spinner.Stop()
	prog.done("rendered", "input", input)

	out := c.stdout()
	printSuccess(out, "Rendered %s", StyleHighlight.Render(filepath.Base(input)))
	printStats(out, result.Stats.Stations, result.Stats.Trains, result.CacheInfo.RenderHit)
	if result.Stats.Scale > 0 && result.Stats.Scale < 1 {
		printDetail(out, "scaled to %.0f%% to fit %vx%v", result.Stats.Scale*100, opts.Width, opts.Height)
	}
	for _, s := range skipped {
		printWarning(out, "skipped %s", s)
	}
	return writeArtifacts(out, result.Artifacts, opts.Formats, input, flags.output)
}

// writeArtifacts writes one file per format. With a single format the output
// path is used as given; with several it is a base path that receives the
// format as extension. Without an output path, files are named after input.
func writeArtifacts(out io.Writer, artifacts map[string][]byte, formats []string, input, output string) error {
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if len(formats) > 1 {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}

	for _, format := range formats {
		path := base + "." + format
		if output != "" && len(formats) == 1 {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(out, path)
	}
	return nil
}
