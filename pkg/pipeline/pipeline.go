// Package pipeline turns a survey dataset into chart artifacts.
//
// The pipeline has three stages:
//
//  1. Load: read the dataset from a directory or MongoDB ([Runner.Load])
//  2. Layout: compute scales and the scene for one chart ([Layout])
//  3. Render: encode the chart as SVG, PNG, PDF or JSON ([Encode])
//
// The CLI drives all three through a [Runner], which caches datasets and
// artifacts and reports each stage to the observability hooks.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	ds, err := runner.Load(ctx, src, false)
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Render(ctx, ds, pipeline.Options{
//	    Charts:  []string{"roles", "orgs"},
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["roles/svg"]
package pipeline

import (
	stderrors "errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/surveycharts/pkg/cache"
	"github.com/matzehuels/surveycharts/pkg/config"
	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/render"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

// Chart names.
const (
	ChartRoles     = "roles"
	ChartOrgs      = "orgs"
	ChartNetwork   = "network"
	ChartHistogram = "histogram"
)

// Charts lists every chart in render order.
var Charts = []string{ChartRoles, ChartOrgs, ChartNetwork, ChartHistogram}

// DefaultFormats is used when no format is requested.
var DefaultFormats = []string{string(render.FormatSVG)}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configure one pipeline run.
type Options struct {
	// Charts to render. Empty means every chart the dataset supports.
	Charts []string `json:"charts,omitempty" validate:"dive,oneof=roles orgs network histogram"`
	// Formats to render each chart in.
	Formats []string `json:"formats,omitempty" validate:"dive,oneof=svg png pdf json"`
	// Scale multiplies raster output size. Zero takes the config value.
	Scale float64 `json:"scale,omitempty" validate:"gte=0,lte=10"`
	// Refresh ignores cached artifacts and stores fresh ones.
	Refresh bool `json:"refresh,omitempty"`

	// Config supplies chart geometry and theme. Nil means config.Default().
	Config *config.Config `json:"-" validate:"-"`
	Logger *log.Logger    `json:"-" validate:"-"`

	validated bool
}

var validate = validator.New()

// ValidateAndSetDefaults checks charts, formats and scale and fills in
// defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	for i, c := range o.Charts {
		o.Charts[i] = strings.ToLower(strings.TrimSpace(c))
		if err := ValidateChart(o.Charts[i]); err != nil {
			return err
		}
	}
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
		if err := ValidateFormat(o.Formats[i]); err != nil {
			return err
		}
	}
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			return errors.New(errors.ErrCodeInvalidInput, "invalid %s: %v", strings.ToLower(verrs[0].Field()), verrs[0].Value())
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}

	o.Charts = dedupe(o.Charts)
	o.Formats = dedupe(o.Formats)
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if o.Config == nil {
		cfg := config.Default()
		o.Config = &cfg
	}
	if o.Scale == 0 {
		o.Scale = o.Config.Render.Scale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ChartsFor returns the requested charts, or when none were requested the
// charts ds has data for.
func (o *Options) ChartsFor(ds *survey.Dataset) []string {
	if len(o.Charts) > 0 {
		return o.Charts
	}
	return Available(ds)
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(chart, format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Chart:      chart,
		Format:     format,
		ConfigHash: o.Config.Hash(),
	}
	if format == string(render.FormatPNG) {
		opts.Scale = o.Scale
	}
	return opts
}

func dedupe(items []string) []string {
	var out []string
	for _, it := range items {
		if !slices.Contains(out, it) {
			out = append(out, it)
		}
	}
	return out
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateChart checks that a chart name is known.
func ValidateChart(chart string) error {
	if !slices.Contains(Charts, chart) {
		return errors.New(errors.ErrCodeInvalidChart, "invalid chart: %q (must be one of: %s)", chart, strings.Join(Charts, ", "))
	}
	return nil
}

// ValidateFormat checks that a format is known.
func ValidateFormat(format string) error {
	if _, err := render.ParseFormat(format); err != nil || format != strings.ToLower(format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// Available lists the charts ds has data for.
func Available(ds *survey.Dataset) []string {
	var out []string
	if ds.HasRoles() || ds.HasConnect() {
		out = append(out, ChartRoles)
	}
	if ds.HasOrgs() {
		out = append(out, ChartOrgs)
	}
	if ds.HasConnect() {
		out = append(out, ChartNetwork)
	}
	if ds.HasRoles() {
		out = append(out, ChartHistogram)
	}
	return out
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and published object keys.
	RunID string

	// DatasetHash is the content hash of the dataset.
	DatasetHash string

	// Artifacts holds rendered outputs keyed by ArtifactName.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Charts     int
	Artifacts  int
	Bytes      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo counts artifact cache lookups.
type CacheInfo struct {
	Hits   int
	Misses int
}

// ArtifactName is the Result.Artifacts key for chart in format.
func ArtifactName(chart, format string) string {
	return chart + "/" + format
}

// SplitArtifactName reverses ArtifactName.
func SplitArtifactName(name string) (chart, format string, err error) {
	chart, format, ok := strings.Cut(name, "/")
	if !ok || chart == "" || format == "" {
		return "", "", fmt.Errorf("malformed artifact name %q", name)
	}
	return chart, format, nil
}

// Names returns the artifact names in chart then format order.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Artifacts))
	for name := range r.Artifacts {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		ac, af, _ := strings.Cut(a, "/")
		bc, bf, _ := strings.Cut(b, "/")
		if c := indexOr(Charts, ac) - indexOr(Charts, bc); c != 0 {
			return c
		}
		return indexOr(formatNames(), af) - indexOr(formatNames(), bf)
	})
	return names
}

func formatNames() []string {
	out := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		out[i] = string(f)
	}
	return out
}

func indexOr(list []string, s string) int {
	if i := slices.Index(list, s); i >= 0 {
		return i
	}
	return len(list)
}
