package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/barchart/pkg/cache"
	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// with different options.
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

// Execute runs load then render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	loadStart := time.Now()
	ds, hash, loadHit, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Dataset:  ds,
		DataHash: hash,
		Stats: Stats{
			Points:   len(ds.Points),
			LoadTime: time.Since(loadStart),
		},
		CacheInfo: CacheInfo{LoadHit: loadHit},
	}
	r.Logger.Info("loaded dataset",
		"name", ds.Name,
		"points", len(ds.Points),
		"cached", loadHit,
		"duration", result.Stats.LoadTime)

	renderStart := time.Now()
	c, artifacts, renderHit, err := r.Render(ctx, ds, hash, opts)
	if err != nil {
		return nil, err
	}
	result.Chart = c
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ChartConfig returns opts.Config adjusted for ds: time series get a time
// axis and an unset target takes the dataset name.
func ChartConfig(ds *dataset.Dataset, opts Options) chart.Config {
	cfg := opts.Config
	if ds.Time {
		cfg.TimeAxis = true
	}
	if cfg.Target == "" && ds.Name != "" {
		cfg.Target = ds.Name
	}
	return cfg
}

// Render builds a chart for ds and renders every requested format. The
// chart is always rendered so callers can inspect it, even when every
// artifact comes from the cache.
func (r *Runner) Render(ctx context.Context, ds *dataset.Dataset, dataHash string, opts Options) (*chart.Chart, map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	c, artifacts, hit, err := r.render(ctx, ds, dataHash, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return c, artifacts, hit, err
}

func (r *Runner) render(ctx context.Context, ds *dataset.Dataset, dataHash string, opts Options) (*chart.Chart, map[string][]byte, bool, error) {
	cfg := ChartConfig(ds, opts)
	c, err := chart.New(cfg)
	if err != nil {
		return nil, nil, false, err
	}
	// Animated output starts from an empty chart so every bar enters.
	if err := c.Render(ds.Points, chart.WithAnimate(opts.Animate)); err != nil {
		return nil, nil, false, err
	}

	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(dataHash, opts.ArtifactKeyOpts(format, cfg))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				cacheHooks.OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			cacheHooks.OnCacheMiss(ctx, "artifact")
		}
		allCached = false

		data, err := Artifact(ctx, c, format, opts)
		if err != nil {
			return nil, nil, false, err
		}
		artifacts[format] = data
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}
	return c, artifacts, allCached, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
