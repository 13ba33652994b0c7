package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trackgraph/pkg/cache"
	"github.com/matzehuels/trackgraph/pkg/diagram"
	"github.com/matzehuels/trackgraph/pkg/errors"
	pkgio "github.com/matzehuels/trackgraph/pkg/io"
	"github.com/matzehuels/trackgraph/pkg/observability"
	"github.com/matzehuels/trackgraph/pkg/timetable"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// =============================================================================
// Load
// =============================================================================

// LoadFile reads a timetable file, deriving the format from its extension.
// A timetable without a name is named after the file.
func (r *Runner) LoadFile(ctx context.Context, path string) (*timetable.Timetable, error) {
	format, err := pkgio.FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	tt, err := r.Load(ctx, path, data, format)
	if err != nil {
		return nil, err
	}
	if tt.Name == "" {
		tt.Name = baseName(path)
	}
	return tt, nil
}

// Load decodes a timetable document. Decoded timetables are cached in
// canonical JSON form, keyed by the hash of the source bytes.
func (r *Runner) Load(ctx context.Context, source string, data []byte, format pkgio.Format) (*timetable.Timetable, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, source)
	start := time.Now()

	tt, hit, err := r.load(ctx, data, format)
	trains := 0
	if tt != nil {
		trains = len(tt.Trains)
	}
	hooks.OnParseComplete(ctx, source, trains, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("loaded timetable",
		"source", source,
		"stations", len(tt.Stations),
		"trains", trains,
		"cached", hit)
	return tt, nil
}

func (r *Runner) load(ctx context.Context, data []byte, format pkgio.Format) (*timetable.Timetable, bool, error) {
	key := r.Keyer.TimetableKey(cache.Hash(data), string(format))
	if cached, ok := r.cacheGet(ctx, "timetable", key); ok {
		if tt, err := pkgio.Read(bytes.NewReader(cached), pkgio.FormatJSON); err == nil {
			return tt, true, nil
		}
	}

	tt, err := pkgio.Read(bytes.NewReader(data), format)
	if err != nil {
		return nil, false, err
	}
	if canonical, err := canonicalJSON(tt); err == nil {
		r.cacheSet(ctx, "timetable", key, canonical, cache.TimetableTTL)
	}
	return tt, false, nil
}

// =============================================================================
// Execute
// =============================================================================

// Execute lays out tt and renders every requested format, reusing cached
// artifacts where the timetable and options match.
func (r *Runner) Execute(ctx context.Context, tt *timetable.Timetable, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	canonical, err := canonicalJSON(tt)
	if err != nil {
		return nil, err
	}
	result := &Result{
		TimetableHash: cache.Hash(canonical),
		Artifacts:     make(map[string][]byte, len(opts.Formats)),
		CacheInfo:     CacheInfo{Hits: make(map[string]bool, len(opts.Formats))},
		Stats: Stats{
			Stations: len(tt.Stations),
			Trains:   len(tt.Trains),
		},
	}

	var missing []string
	for _, format := range opts.Formats {
		if _, dup := result.Artifacts[format]; dup {
			continue
		}
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(result.TimetableHash, opts.ArtifactKeyOpts(format))
			if data, ok := r.cacheGet(ctx, "artifact", key); ok {
				result.Artifacts[format] = data
				result.CacheInfo.Hits[format] = true
				continue
			}
		}
		result.Artifacts[format] = nil
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		result.CacheInfo.RenderHit = true
		r.Logger.Info("all artifacts cached", "formats", opts.Formats)
		return result, nil
	}

	layoutStart := time.Now()
	d, err := Layout(ctx, tt, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Diagram = d
	result.Stats.LayoutTime = time.Since(layoutStart)
	stats := d.Stats()
	result.Stats.Skipped = stats.Skipped
	result.Stats.Scale = stats.Scale

	r.Logger.Info("computed layout",
		"annotations", stats.Annotations,
		"skipped", stats.Skipped,
		"scale", fmt.Sprintf("%.3f", stats.Scale),
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	rendered, err := Render(ctx, d, missing, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	for format, data := range rendered {
		result.Artifacts[format] = data
		key := r.Keyer.ArtifactKey(result.TimetableHash, opts.ArtifactKeyOpts(format))
		r.cacheSet(ctx, "artifact", key, data, cache.ArtifactTTL)
	}

	r.Logger.Info("rendered outputs",
		"formats", missing,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Layout builds a diagram for tt and runs one layout cycle on the frame
// given by opts.
func Layout(ctx context.Context, tt *timetable.Timetable, opts Options) (*diagram.Diagram, error) {
	opts.SetDefaults()
	d, err := diagram.Build(ctx, tt, opts.DiagramConfig())
	if err != nil {
		return nil, err
	}
	if err := d.Layout(ctx, opts.Width, opts.Height); err != nil {
		return nil, err
	}
	return d, nil
}

// =============================================================================
// Cache helpers
// =============================================================================

// cacheGet treats backend failures as misses; the pipeline never fails
// because the cache is unavailable.
func (r *Runner) cacheGet(ctx context.Context, kind, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "kind", kind, "err", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, kind)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, kind)
	return nil, false
}

func (r *Runner) cacheSet(ctx context.Context, kind, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

func canonicalJSON(tt *timetable.Timetable) ([]byte, error) {
	var buf bytes.Buffer
	if err := pkgio.Write(tt, &buf, pkgio.FormatJSON); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
