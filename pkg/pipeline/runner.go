package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/surveycharts/pkg/cache"
	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/observability"
	"github.com/matzehuels/surveycharts/pkg/render"
	"github.com/matzehuels/surveycharts/pkg/source"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL applies to dataset and artifact entries. Zero never expires.
	TTL time.Duration
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

// Load reads the dataset from src. Remote sources go through the dataset
// cache; refresh skips the cached copy.
func (r *Runner) Load(ctx context.Context, src source.Source, refresh bool) (*survey.Dataset, error) {
	start := time.Now()
	ds, err := source.Load(ctx, &source.Cached{
		Inner:   src,
		Cache:   r.Cache,
		Keyer:   r.Keyer,
		TTL:     r.TTL,
		Refresh: refresh,
		Logger:  r.Logger,
	})
	if err != nil {
		return nil, err
	}
	s := ds.Summary()
	r.Logger.Info("loaded dataset",
		"source", src.Name(),
		"roles", s.Roles,
		"links", s.Links,
		"orgs", s.Orgs,
		"duration", time.Since(start))
	return ds, nil
}

// Forget drops the cached snapshot of src so the next Load reads it again.
func (r *Runner) Forget(ctx context.Context, src source.Source) error {
	return (&source.Cached{Inner: src, Cache: r.Cache, Keyer: r.Keyer}).Invalidate(ctx)
}

// Render lays out and encodes every requested chart in every requested
// format. Artifacts found in the cache skip layout entirely.
func (r *Runner) Render(ctx context.Context, ds *survey.Dataset, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, errors.New(errors.ErrCodeMissingDataset, "no dataset loaded")
	}

	data, err := survey.MarshalDataset(ds)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash dataset")
	}
	result := &Result{
		RunID:       uuid.NewString(),
		DatasetHash: cache.Hash(data),
		Artifacts:   make(map[string][]byte),
	}

	charts := opts.ChartsFor(ds)
	if len(charts) == 0 {
		return nil, errors.New(errors.ErrCodeMissingDataset, "dataset has no data for any chart")
	}

	for _, chart := range charts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.renderChart(ctx, ds, chart, opts, result); err != nil {
			return nil, err
		}
		result.Stats.Charts++
	}

	r.Logger.Info("rendered outputs",
		"run", result.RunID,
		"charts", charts,
		"formats", opts.Formats,
		"artifacts", result.Stats.Artifacts,
		"cache_hits", result.CacheInfo.Hits,
		"duration", result.Stats.LayoutTime+result.Stats.RenderTime)
	return result, nil
}

// renderChart fills result with one chart's artifacts, laying the chart out
// only if some format is missing from the cache.
func (r *Runner) renderChart(ctx context.Context, ds *survey.Dataset, chart string, opts Options, result *Result) error {
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(result.DatasetHash, opts.ArtifactKeyOpts(chart, format))
		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Warn("artifact cache read failed", "chart", chart, "format", format, "error", err)
			}
			if hit {
				r.store(result, chart, format, data)
				result.CacheInfo.Hits++
				continue
			}
		}
		result.CacheInfo.Misses++
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		r.Logger.Debug("chart served from cache", "chart", chart)
		return nil
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, chart, records(ds, chart))
	layoutStart := time.Now()
	c, err := Layout(ds, chart, *opts.Config)
	layoutTime := time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, chart, layoutTime, err)
	if err != nil {
		return err
	}
	result.Stats.LayoutTime += layoutTime
	r.Logger.Debug("computed layout", "chart", chart, "duration", layoutTime)

	enc := EncodeOptions{Scale: opts.Scale, Rasterizer: render.Rasterizer(opts.Config.Render.Rasterizer)}
	for _, format := range missing {
		hooks.OnRenderStart(ctx, chart, format)
		renderStart := time.Now()
		data, err := Encode(ctx, c, render.Format(format), enc)
		renderTime := time.Since(renderStart)
		hooks.OnRenderComplete(ctx, chart, format, len(data), renderTime, err)
		if err != nil {
			return err
		}
		result.Stats.RenderTime += renderTime
		r.store(result, chart, format, data)
		opts.Logger.Debug("rendered chart", "chart", chart, "format", format, "bytes", len(data))

		key := r.Keyer.ArtifactKey(result.DatasetHash, opts.ArtifactKeyOpts(chart, format))
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("artifact cache write failed", "chart", chart, "format", format, "error", err)
		}
	}
	return nil
}

func (r *Runner) store(result *Result, chart, format string, data []byte) {
	result.Artifacts[ArtifactName(chart, format)] = data
	result.Stats.Artifacts++
	result.Stats.Bytes += len(data)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
