package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/matzehuels/surveycharts/pkg/cache"
	"github.com/matzehuels/surveycharts/pkg/config"
	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/observability"
	"github.com/matzehuels/surveycharts/pkg/source"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

const testdata = "../survey/testdata"

func loadTestdata(t *testing.T) *survey.Dataset {
	t.Helper()
	ds, err := survey.LoadDir(testdata, survey.DefaultFiles())
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateChart(t *testing.T) {
	tests := []struct {
		chart   string
		wantErr bool
	}{
		{"roles", false},
		{"orgs", false},
		{"network", false},
		{"histogram", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateChart(tt.chart)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateChart(%q) error = %v, wantErr %v", tt.chart, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidChart) {
			t.Errorf("ValidateChart(%q) code = %s", tt.chart, errors.GetCode(err))
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{
		Charts:  []string{" Roles", "orgs", "roles"},
		Formats: []string{"SVG", "json", "svg"},
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(opts.Charts, []string{"roles", "orgs"}) {
		t.Errorf("Charts = %v", opts.Charts)
	}
	if !slices.Equal(opts.Formats, []string{"svg", "json"}) {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Config == nil || opts.Scale != opts.Config.Render.Scale {
		t.Errorf("Scale = %v, want config default", opts.Scale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	opts.Formats = append(opts.Formats, "bogus")
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op: %v", err)
	}
}

func TestValidateAndSetDefaultsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(opts.Formats, DefaultFormats) {
		t.Errorf("Formats = %v, want %v", opts.Formats, DefaultFormats)
	}
	if len(opts.Charts) != 0 {
		t.Errorf("Charts = %v, want empty (chosen per dataset)", opts.Charts)
	}
}

func TestValidateAndSetDefaultsRejects(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"chart", Options{Charts: []string{"pie"}}, errors.ErrCodeInvalidChart},
		{"format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative scale", Options{Scale: -1}, errors.ErrCodeInvalidInput},
		{"huge scale", Options{Scale: 11}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestAvailable(t *testing.T) {
	ds := loadTestdata(t)
	if got := Available(ds); !slices.Equal(got, Charts) {
		t.Errorf("Available(full) = %v", got)
	}
	orgsOnly := &survey.Dataset{Orgs: ds.Orgs}
	if got := Available(orgsOnly); !slices.Equal(got, []string{ChartOrgs}) {
		t.Errorf("Available(orgs only) = %v", got)
	}
	if got := Available(&survey.Dataset{}); len(got) != 0 {
		t.Errorf("Available(empty) = %v", got)
	}
}

func TestArtifactNames(t *testing.T) {
	r := &Result{Artifacts: map[string][]byte{
		"histogram/svg": nil,
		"orgs/json":     nil,
		"roles/png":     nil,
		"roles/svg":     nil,
	}}
	want := []string{"roles/svg", "roles/png", "orgs/json", "histogram/svg"}
	if got := r.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	chart, format, err := SplitArtifactName("orgs/json")
	if err != nil || chart != "orgs" || format != "json" {
		t.Errorf("SplitArtifactName = %q, %q, %v", chart, format, err)
	}
	if _, _, err := SplitArtifactName("orgs"); err == nil {
		t.Error("expected error for name without format")
	}
}

func TestLayoutMissingDataset(t *testing.T) {
	ds := loadTestdata(t)
	cfg := config.Default()
	tests := []struct {
		chart string
		ds    *survey.Dataset
	}{
		{ChartRoles, &survey.Dataset{Orgs: ds.Orgs}},
		{ChartOrgs, &survey.Dataset{Roles: ds.Roles}},
		{ChartNetwork, &survey.Dataset{Roles: ds.Roles}},
		{ChartHistogram, &survey.Dataset{Orgs: ds.Orgs}},
		{ChartRoles, nil},
	}
	for _, tt := range tests {
		if _, err := Layout(tt.ds, tt.chart, cfg); !errors.Is(err, errors.ErrCodeMissingDataset) {
			t.Errorf("Layout(%s) error = %v, want MISSING_DATASET", tt.chart, err)
		}
	}
}

func TestLayoutCharts(t *testing.T) {
	ds := loadTestdata(t)
	cfg := config.Default()
	for _, chart := range Charts {
		c, err := Layout(ds, chart, cfg)
		if err != nil {
			t.Fatalf("Layout(%s): %v", chart, err)
		}
		switch chart {
		case ChartRoles, ChartOrgs:
			if c.Scene == nil {
				t.Errorf("%s: no scene", chart)
			}
		case ChartNetwork:
			if !strings.HasPrefix(c.DOT, "digraph") {
				t.Errorf("network DOT = %.40q", c.DOT)
			}
		case ChartHistogram:
			if len(c.Series) == 0 {
				t.Error("histogram: no series")
			}
		}
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu      sync.Mutex
	layouts []string
	renders []string
}

func (h *recordingHooks) OnLayoutStart(_ context.Context, chart string, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts = append(h.layouts, chart)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, chart, format string, _ int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err == nil {
		h.renders = append(h.renders, chart+"/"+format)
	}
}

func TestRunnerRender(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	ds := loadTestdata(t)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	ctx := context.Background()

	opts := func() Options {
		return Options{
			Charts:  []string{ChartRoles, ChartOrgs, ChartNetwork},
			Formats: []string{"svg", "json"},
		}
	}
	// The network SVG needs Graphviz; only its JSON is checked here.
	first, err := runner.Render(ctx, ds, Options{
		Charts:  []string{ChartRoles, ChartOrgs},
		Formats: []string{"svg", "json"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if first.RunID == "" || first.DatasetHash == "" {
		t.Errorf("RunID=%q DatasetHash=%q", first.RunID, first.DatasetHash)
	}
	for _, chart := range []string{ChartRoles, ChartOrgs} {
		svg := first.Artifacts[ArtifactName(chart, "svg")]
		if !bytes.HasPrefix(svg, []byte("<svg")) {
			t.Errorf("%s svg = %.40q", chart, svg)
		}
		var doc map[string]any
		if err := json.Unmarshal(first.Artifacts[ArtifactName(chart, "json")], &doc); err != nil {
			t.Errorf("%s json: %v", chart, err)
		}
		if _, ok := doc["root"]; !ok {
			t.Errorf("%s json has no root: %v", chart, doc)
		}
	}
	if first.CacheInfo.Hits != 0 || first.CacheInfo.Misses != 4 {
		t.Errorf("first run cache = %+v", first.CacheInfo)
	}
	if first.Stats.Charts != 2 || first.Stats.Artifacts != 4 {
		t.Errorf("first run stats = %+v", first.Stats)
	}
	if !slices.Equal(hooks.layouts, []string{ChartRoles, ChartOrgs}) {
		t.Errorf("layout hooks = %v", hooks.layouts)
	}

	second, err := runner.Render(ctx, ds, Options{
		Charts:  []string{ChartRoles, ChartOrgs},
		Formats: []string{"svg", "json"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheInfo.Hits != 4 {
		t.Errorf("second run cache = %+v", second.CacheInfo)
	}
	if len(hooks.layouts) != 2 {
		t.Errorf("cached run should skip layout, hooks = %v", hooks.layouts)
	}
	if second.RunID == first.RunID {
		t.Error("each run needs its own id")
	}
	if !bytes.Equal(second.Artifacts["roles/svg"], first.Artifacts["roles/svg"]) {
		t.Error("cached svg differs from rendered svg")
	}

	o := opts()
	o.Formats = []string{"json"}
	o.Refresh = true
	third, err := runner.Render(ctx, ds, o)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.Hits != 0 || third.CacheInfo.Misses != 3 {
		t.Errorf("refresh run cache = %+v", third.CacheInfo)
	}
	var network struct{ DOT string }
	if err := json.Unmarshal(third.Artifacts["network/json"], &network); err != nil || !strings.Contains(network.DOT, "->") {
		t.Errorf("network json = %s (%v)", third.Artifacts["network/json"], err)
	}
}

func TestRunnerRenderConfigChangesKey(t *testing.T) {
	ds := loadTestdata(t)
	fc, _ := cache.NewFileCache(t.TempDir())
	runner := NewRunner(fc, nil, nil)
	ctx := context.Background()

	if _, err := runner.Render(ctx, ds, Options{Charts: []string{ChartOrgs}}); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Orgs.RadiusOrg = 120
	res, err := runner.Render(ctx, ds, Options{Charts: []string{ChartOrgs}, Config: &cfg})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.Hits != 0 {
		t.Error("geometry change should miss the artifact cache")
	}
}

func TestRunnerRenderDefaultsToAvailableCharts(t *testing.T) {
	ds := loadTestdata(t)
	runner := NewRunner(nil, nil, nil)
	res, err := runner.Render(context.Background(), &survey.Dataset{Orgs: ds.Orgs}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Names(); !slices.Equal(got, []string{"orgs/svg"}) {
		t.Errorf("artifacts = %v", got)
	}
}

func TestRunnerRenderMissingDataset(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()

	_, err := runner.Render(ctx, &survey.Dataset{}, Options{})
	if !errors.Is(err, errors.ErrCodeMissingDataset) {
		t.Errorf("empty dataset: %v", err)
	}
	ds := loadTestdata(t)
	_, err = runner.Render(ctx, &survey.Dataset{Roles: ds.Roles}, Options{Charts: []string{ChartOrgs}})
	if !errors.Is(err, errors.ErrCodeMissingDataset) {
		t.Errorf("orgs without metrics: %v", err)
	}
}

func TestRunnerRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil, nil, nil).Render(ctx, loadTestdata(t), Options{})
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestRunnerLoad(t *testing.T) {
	ctx := context.Background()
	fc, _ := cache.NewFileCache(t.TempDir())
	runner := NewRunner(fc, nil, nil)
	runner.TTL = 24 * time.Hour

	src := source.NewDir(testdata, survey.Files{})
	ds, err := runner.Load(ctx, src, false)
	if err != nil {
		t.Fatal(err)
	}
	if !ds.HasOrgs() {
		t.Error("loaded dataset has no orgs")
	}
	if _, hit, _ := fc.Get(ctx, runner.Keyer.DatasetKey(src.Name())); hit {
		t.Error("directory datasets should not be cached")
	}

	mongo := source.NewMongo("mongodb://db/survey", memStore{ds: ds})
	if _, err := runner.Load(ctx, mongo, false); err != nil {
		t.Fatal(err)
	}
	key := runner.Keyer.DatasetKey(mongo.Name())
	if _, hit, _ := fc.Get(ctx, key); !hit {
		t.Error("mongo dataset should be cached after Load")
	}
	if err := runner.Forget(ctx, mongo); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := fc.Get(ctx, key); hit {
		t.Error("Forget should drop the cached snapshot")
	}
}

func TestRunnerLoadSeesEdits(t *testing.T) {
	ctx := context.Background()
	fc, _ := cache.NewFileCache(t.TempDir())
	runner := NewRunner(fc, nil, nil)
	runner.TTL = 24 * time.Hour

	write := func(dir, role string) {
		t.Helper()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		data := `[{"role": "` + role + `", "iRole": 0, "roleTotal": 1, "primaries": []}]`
		if err := os.WriteFile(filepath.Join(dir, "yoe.json"), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	load := func(path string) string {
		t.Helper()
		ds, err := runner.Load(ctx, source.NewDir(path, survey.Files{}), false)
		if err != nil {
			t.Fatal(err)
		}
		return ds.Roles[0].Role
	}

	dir := t.TempDir()
	write(dir, "Analyst")
	load(dir)
	write(dir, "Engineer")
	if got := load(dir); got != "Engineer" {
		t.Errorf("after editing yoe.json got %q, want Engineer", got)
	}

	a, b := t.TempDir(), t.TempDir()
	write(filepath.Join(a, "data"), "ProjectA")
	write(filepath.Join(b, "data"), "ProjectB")
	t.Chdir(a)
	load("data")
	t.Chdir(b)
	if got := load("data"); got != "ProjectB" {
		t.Errorf("second working directory loaded %q, want ProjectB", got)
	}
}

// memStore serves a fixed dataset through the Mongo source.
type memStore struct{ ds *survey.Dataset }

func (m memStore) FindAll(_ context.Context, collection string, _ bson.D, out any) error {
	switch collection {
	case source.CollectionRoles:
		*out.(*[]survey.Role) = m.ds.Roles
	case source.CollectionOrgs:
		*out.(*[]survey.Org) = m.ds.Orgs
	case source.CollectionNodes:
		if m.ds.Connect != nil {
			*out.(*[]survey.Node) = m.ds.Connect.Nodes
		}
	case source.CollectionLinks:
		if m.ds.Connect != nil {
			*out.(*[]survey.Link) = m.ds.Connect.Links
		}
	}
	return nil
}

func (memStore) ReplaceAll(context.Context, string, []any) error { return nil }
