package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/surveycharts/pkg/config"
	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/observability"
	"github.com/matzehuels/surveycharts/pkg/pipeline"
	"github.com/matzehuels/surveycharts/pkg/publish"
	"github.com/matzehuels/surveycharts/pkg/render"
	"github.com/matzehuels/surveycharts/pkg/source"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file (single artifact) or base path
	charts      []string // roles, orgs, network, histogram
	formats     []string // svg, png, pdf, json
	scale       float64  // raster scale; 0 takes the config value
	noCache     bool     // bypass the artifact and dataset cache
	refresh     bool     // re-render and overwrite cached entries
	redisAddr   string   // use a Redis cache at this address
	mongoDB     string   // database name for mongodb:// sources
	publish     string   // s3://bucket/prefix upload target
	metricsFile string   // Prometheus textfile written after the run
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var chartsStr, formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <dataset>",
		Short: "Render survey charts from a dataset directory or MongoDB",
		Long: `Render survey charts from a directory of JSON files (yoe.json, connect.json,
metrics.json) or from a MongoDB database.

Without --chart every chart the dataset has data for is rendered. Files are
written as <output>_<chart>.<format>; a single artifact is written to
--output as given when it carries an extension.`,
		Example: `  surveycharts render ./data
  surveycharts render ./data -c roles,orgs -f svg,png -o out/survey
  surveycharts render mongodb://localhost:27017 --mongo-db survey --publish s3://charts/2024`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.charts = splitList(chartsStr)
			opts.formats = splitList(formatsStr)
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&chartsStr, "chart", "c", "", "chart(s): "+strings.Join(pipeline.Charts, ", ")+" (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single artifact) or base path")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "raster scale for png output (default from config)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and re-render")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "use a Redis cache at host:port (env "+envRedisAddr+")")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "", "database name for mongodb:// sources")
	cmd.Flags().StringVar(&opts.publish, "publish", "", "upload artifacts to s3://bucket/prefix")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")

	registerListCompletions(cmd)

	return cmd
}

// runRender loads the dataset, renders the requested charts and writes or
// publishes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) (err error) {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.redisAddr != "" {
		cfg.Cache.Backend = config.CacheRedis
		cfg.Cache.RedisAddr = opts.redisAddr
	}
	if opts.publish == "" {
		opts.publish = cfg.Publish.Target
	}

	if opts.metricsFile != "" {
		hooks := observability.NewPrometheusHooks(prometheus.NewRegistry())
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetPublishHooks(hooks)
		defer func() {
			observability.Reset()
			if werr := observability.WriteTextfile(opts.metricsFile, hooks.Registry()); werr != nil && err == nil {
				err = werr
			}
		}()
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	src, err := source.Open(ctx, input, source.Options{Files: cfg.Files, Database: opts.mongoDB})
	if err != nil {
		return err
	}
	defer source.Close(ctx, src)

	prog := newProgress(logger)
	spinner := newSpinner(ctx, "Loading "+src.Name())
	spinner.Start()
	defer spinner.Stop()
	ds, err := runner.Load(ctx, src, opts.refresh)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Charts:  opts.charts,
		Formats: opts.formats,
		Scale:   opts.scale,
		Refresh: opts.refresh,
		Config:  &cfg,
		Logger:  logger,
	}
	spinner.SetMessage("Rendering " + pluralize(len(popts.ChartsFor(ds)), "chart"))
	result, err := runner.Render(ctx, ds, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, defaultBase(input, opts.mongoDB), result.Names())
	for _, name := range result.Names() {
		if err := writeArtifact(paths[name], result.Artifacts[name]); err != nil {
			return err
		}
	}
	prog.done(fmt.Sprintf("Rendered %d artifacts", result.Stats.Artifacts))

	printSuccess("Rendered %s", pluralize(result.Stats.Charts, "chart"))
	printRunStats(result)
	for _, name := range result.Names() {
		printFile(paths[name])
	}

	if opts.publish != "" {
		return c.publish(ctx, opts.publish, cfg.Publish, result)
	}
	return nil
}

// publish uploads result to target and prints the object URLs.
func (c *CLI) publish(ctx context.Context, target string, cfg config.PublishConfig, result *pipeline.Result) error {
	p, err := publish.NewS3(ctx, target, cfg)
	if err != nil {
		return err
	}
	p.Logger = c.Logger

	spinner := newSpinner(ctx, "Uploading to "+target)
	spinner.Start()
	objects, err := p.Publish(ctx, result)
	spinner.Stop()
	for _, obj := range objects {
		printURL(obj.URL(p.Bucket))
	}
	if err != nil {
		if len(objects) > 0 {
			printWarning("Uploaded %s before the failure", pluralize(len(objects), "object"))
		}
		return err
	}
	printSuccess("Published %s under run %s", pluralize(len(objects), "object"), StyleHighlight.Render(result.RunID))
	return nil
}

// defaultBase derives the base output path from the dataset argument: the
// directory name, or the database name for MongoDB sources.
func defaultBase(input, mongoDB string) string {
	if errors.IsMongoURI(input) {
		if mongoDB == "" {
			return appName
		}
		return survey.Slug(mongoDB)
	}
	base := filepath.Base(filepath.Clean(input))
	if base == "." || base == string(filepath.Separator) {
		return appName
	}
	return base
}

// outputPaths maps artifact names to files. A lone artifact goes to output
// verbatim when output has a file extension; otherwise every artifact is
// written as <base>_<chart>.<format>.
func outputPaths(output, fallback string, names []string) map[string]string {
	paths := make(map[string]string, len(names))
	if len(names) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[names[0]] = output
		return paths
	}

	base := output
	if base == "" {
		base = fallback
	}
	if ext := filepath.Ext(base); ext != "" {
		if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
			base = strings.TrimSuffix(base, ext)
		}
	}
	for _, name := range names {
		chart, format, _ := pipeline.SplitArtifactName(name)
		paths[name] = fmt.Sprintf("%s_%s.%s", base, chart, format)
	}
	return paths
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// printRunStats prints artifact counts and cache usage on one line.
func printRunStats(result *pipeline.Result) {
	cached := result.CacheInfo.Hits > 0 && result.CacheInfo.Misses == 0
	parts := []string{
		pluralize(result.Stats.Artifacts, "artifact"),
		formatBytes(result.Stats.Bytes),
	}
	if result.CacheInfo.Hits > 0 && !cached {
		parts = append(parts, fmt.Sprintf("%d from cache", result.CacheInfo.Hits))
	}
	printStats(parts, cached)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
