// Package cli implements the trackgraph command-line interface.
//
// # Commands
//
//   - render: Lay out a timetable and write SVG, PNG, PDF or JSON output
//   - inspect: Print the segment stack of a laid-out timetable
//   - serve: Expose the render pipeline over HTTP
//   - cache: Manage the local artifact cache
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trackgraph/pkg/buildinfo"
	"github.com/matzehuels/trackgraph/pkg/cache"
	"github.com/matzehuels/trackgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "trackgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// out receives command output; nil means stdout.
	out io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output, mainly for tests.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

func (c *CLI) stdout() io.Writer {
	if c.out == nil {
		return os.Stdout
	}
	return c.out
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Trackgraph draws railway timetables as time-distance graphs",
		Long:         `Trackgraph renders train timetables as time-distance graphs: stations and tracks as horizontal lines, trains as diagonal paths, with arrival and departure times placed beside every stop.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the local file cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newSharedRunner creates a runner for the server. A redis URL selects the
// shared cache; otherwise the local file cache is used.
func (c *CLI) newSharedRunner(ctx context.Context, redisURL string, noCache bool) (*pipeline.Runner, error) {
	keyer := cache.NewScopedKeyer(nil, "server:")
	if redisURL == "" || noCache {
		store, err := newCache(noCache)
		if err != nil {
			return nil, err
		}
		return pipeline.NewRunner(store, keyer, c.Logger), nil
	}
	store, err := cache.NewRedisCache(ctx, redisURL)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/trackgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// loadOptions reads the config file, if any, and lets flags override it.
func loadOptions(configPath string, flags pipeline.Options) (pipeline.Options, error) {
	var base pipeline.Options
	if configPath != "" {
		var err error
		if base, err = pipeline.LoadOptions(configPath); err != nil {
			return pipeline.Options{}, err
		}
	}
	return base.Merge(flags), nil
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so that config file formats apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
