package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/surveycharts/pkg/cache"
	"github.com/matzehuels/surveycharts/pkg/config"
	"github.com/matzehuels/surveycharts/pkg/errors"
)

const testdata = "../../pkg/survey/testdata"

func newTestCLI() *CLI {
	return New(io.Discard, log.InfoLevel)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "svg", []string{"svg"}},
		{"multiple", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and blanks", " roles, ,orgs ,", []string{"roles", "orgs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitList(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDefaultBase(t *testing.T) {
	tests := []struct {
		input, db, want string
	}{
		{"data", "", "data"},
		{"./surveys/2024/", "", "2024"},
		{".", "", appName},
		{"mongodb://localhost:27017", "Survey 2024", "survey-2024"},
		{"mongodb://localhost:27017", "", appName},
	}
	for _, tt := range tests {
		if got := defaultBase(tt.input, tt.db); got != tt.want {
			t.Errorf("defaultBase(%q, %q) = %q, want %q", tt.input, tt.db, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name   string
		output string
		names  []string
		want   map[string]string
	}{
		{
			name:  "fallback base",
			names: []string{"roles/svg", "orgs/png"},
			want:  map[string]string{"roles/svg": "data_roles.svg", "orgs/png": "data_orgs.png"},
		},
		{
			name:   "single artifact keeps output",
			output: "out/chart.svg",
			names:  []string{"roles/svg"},
			want:   map[string]string{"roles/svg": "out/chart.svg"},
		},
		{
			name:   "format extension stripped from base",
			output: "out/chart.svg",
			names:  []string{"roles/svg", "roles/json"},
			want:   map[string]string{"roles/svg": "out/chart_roles.svg", "roles/json": "out/chart_roles.json"},
		},
		{
			name:   "base without extension",
			output: "out/survey",
			names:  []string{"orgs/pdf"},
			want:   map[string]string{"orgs/pdf": "out/survey_orgs.pdf"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, "data", tt.names)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("path[%s] = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestRunRender(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	out := filepath.Join(t.TempDir(), "charts", "survey")
	metrics := filepath.Join(t.TempDir(), "metrics.prom")

	c := newTestCLI()
	err := c.runRender(context.Background(), testdata, renderOpts{
		output:      out,
		charts:      []string{"roles", "orgs"},
		formats:     []string{"svg", "json"},
		metricsFile: metrics,
	})
	if err != nil {
		t.Fatalf("runRender: %v", err)
	}

	for _, chart := range []string{"roles", "orgs"} {
		svg, err := os.ReadFile(out + "_" + chart + ".svg")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(svg), "<svg") {
			t.Errorf("%s.svg = %.40q", chart, svg)
		}
		data, err := os.ReadFile(out + "_" + chart + ".json")
		if err != nil {
			t.Fatal(err)
		}
		if !json.Valid(data) {
			t.Errorf("%s.json is not valid JSON", chart)
		}
	}

	prom, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("metrics file: %v", err)
	}
	if !strings.Contains(string(prom), "surveycharts_layout_duration_seconds") {
		t.Errorf("metrics file lacks layout histogram:\n%s", prom)
	}
}

func TestRunRenderErrors(t *testing.T) {
	c := newTestCLI()
	ctx := context.Background()
	tests := []struct {
		name  string
		input string
		opts  renderOpts
		code  errors.Code
	}{
		{"unknown chart", testdata, renderOpts{noCache: true, charts: []string{"pie"}}, errors.ErrCodeInvalidChart},
		{"unknown format", testdata, renderOpts{noCache: true, formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"missing dir", filepath.Join(t.TempDir(), "missing"), renderOpts{noCache: true}, errors.ErrCodeFileNotFound},
		{"mongo without db", "mongodb://localhost:1", renderOpts{noCache: true}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.runRender(ctx, tt.input, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	c, err := newCache(ctx, config.CacheConfig{Backend: config.CacheFile}, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("--no-cache gave %T", c)
	}

	dir := t.TempDir()
	c, err = newCache(ctx, config.CacheConfig{Backend: config.CacheFile, Dir: dir, Compress: true}, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("value"), 0); err != nil {
		t.Fatal(err)
	}
	if got, hit, _ := c.Get(ctx, "k"); !hit || string(got) != "value" {
		t.Errorf("Get = %q, %v", got, hit)
	}

	mr := miniredis.RunT(t)
	c, err = newCache(ctx, config.CacheConfig{Backend: config.CacheRedis, RedisAddr: mr.Addr()}, false)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists(cache.DefaultRedisPrefix + "k") {
		t.Error("redis cache did not write through")
	}

	if _, err := newCache(ctx, config.CacheConfig{Backend: config.CacheRedis}, false); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("redis without address: %v", err)
	}
}

func TestLoadConfigRedisEnv(t *testing.T) {
	t.Setenv(envRedisAddr, "")
	cfg, err := newTestCLI().loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != config.CacheFile {
		t.Errorf("default Backend = %q, want %q", cfg.Cache.Backend, config.CacheFile)
	}

	t.Setenv(envRedisAddr, "cache.internal:6379")
	cfg, err = newTestCLI().loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.RedisAddr != "cache.internal:6379" {
		t.Errorf("RedisAddr = %q", cfg.Cache.RedisAddr)
	}
	if cfg.Cache.Backend != config.CacheRedis {
		t.Errorf("Backend = %q, want %q", cfg.Cache.Backend, config.CacheRedis)
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surveycharts.yaml")
	if err := writeDefaultConfig(path, "", false); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Hash() != config.Default().Hash() {
		t.Error("written config differs from defaults")
	}

	if err := writeDefaultConfig(path, "", false); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("overwrite without force: %v", err)
	}
	if err := writeDefaultConfig(path, config.FormatYAML, true); err != nil {
		t.Errorf("overwrite with force: %v", err)
	}
}

func TestRootCommand(t *testing.T) {
	root := newTestCLI().RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"render", "inspect", "push", "config", "cache", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q in %v", want, names)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestConfigValidateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[roles]\nwidth = -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"config", "validate", path})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestListCompletion(t *testing.T) {
	complete := listCompletion([]string{"svg", "png", "pdf", "json"})
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg", "png", "pdf", "json"}},
		{"p", []string{"png", "pdf"}},
		{"svg,", []string{"svg,png", "svg,pdf", "svg,json"}},
		{"svg,png,j", []string{"svg,png,json"}},
		{"gif", nil},
	}
	for _, tt := range tests {
		got, _ := complete(nil, nil, tt.input)
		if !slices.Equal(got, tt.want) {
			t.Errorf("complete(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		root := newTestCLI().RootCommand()
		var buf strings.Builder
		root.SetOut(&buf)
		root.SetArgs([]string{"completion", shell})
		if err := root.Execute(); err != nil {
			t.Fatalf("%s: %v", shell, err)
		}
		if !strings.Contains(buf.String(), appName) {
			t.Errorf("%s completion does not mention %s", shell, appName)
		}
	}
}
