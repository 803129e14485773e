package histogram

import (
	"bytes"
	"strings"
	"testing"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/matzehuels/surveycharts/pkg/config"
	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/render"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

func testDataset() *survey.Dataset {
	return &survey.Dataset{Roles: []survey.Role{
		{Role: "Analyst", IRole: 0, Primaries: []survey.Primary{
			{Primary: true, YOEMetrics: []survey.YOEMetric{{YOE: 0, PctVolume: 0.1}, {YOE: 5, PctVolume: 0.3}}},
			{Primary: false, YOEMetrics: []survey.YOEMetric{{YOE: 2, PctVolume: 0.2}}},
		}},
		{Role: "Engineer", IRole: 1, Primaries: []survey.Primary{
			{Primary: false, YOEMetrics: []survey.YOEMetric{{YOE: 1, PctVolume: 0.05}, {YOE: 10, PctVolume: 0.15}, {YOE: 20, PctVolume: 0.1}}},
		}},
	}}
}

func TestBuild(t *testing.T) {
	series, err := Build(testDataset())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("series = %d, want single-point lines dropped", len(series))
	}
	if series[0].Name != "Analyst (primary)" || series[1].Name != "Engineer (secondary)" {
		t.Errorf("names = %q, %q", series[0].Name, series[1].Name)
	}
	if got := series[1].YOE; len(got) != 3 || got[2] != 20 {
		t.Errorf("yoe = %v", got)
	}
}

func TestBuildMissing(t *testing.T) {
	tests := []*survey.Dataset{
		{},
		{Roles: []survey.Role{{Role: "x", Primaries: []survey.Primary{{YOEMetrics: []survey.YOEMetric{{YOE: 1}}}}}}},
	}
	for _, ds := range tests {
		if _, err := Build(ds); !errors.Is(err, errors.ErrCodeMissingDataset) {
			t.Errorf("Build error = %v, want missing dataset", err)
		}
	}
}

func TestRender(t *testing.T) {
	series, _ := Build(testDataset())
	opts := OptionsFrom(config.Default())

	svg, err := Render(series, opts, render.FormatSVG)
	if err != nil {
		t.Fatalf("Render svg: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "Analyst (primary)") {
		t.Error("svg output missing chart or legend")
	}

	png, err := Render(series, opts, render.FormatPNG)
	if err != nil {
		t.Fatalf("Render png: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("png output missing signature")
	}

	if _, err := Render(series, opts, render.FormatPDF); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("pdf error = %v, want unsupported", err)
	}
}

func TestRoleColor(t *testing.T) {
	n := len(chart.DefaultColors)
	tests := []struct {
		iRole, want int
	}{
		{0, 0},
		{2, 2},
		{n + 1, 1},
		{-1, n - 1},
		{-n, 0},
	}
	for _, tt := range tests {
		if got := roleColor(tt.iRole); got != chart.DefaultColors[tt.want] {
			t.Errorf("roleColor(%d) = %v, want palette[%d]", tt.iRole, got, tt.want)
		}
	}
}

func TestRenderNegativeRoleIndex(t *testing.T) {
	series := []Series{{
		Name:    "Unassigned (primary)",
		IRole:   -1,
		Primary: true,
		YOE:     []float64{0, 5},
		Volume:  []float64{0.2, 0.4},
	}}
	svg, err := Render(series, OptionsFrom(config.Default()), render.FormatSVG)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(svg), "Unassigned (primary)") {
		t.Error("svg output missing legend entry")
	}
}

func TestOptionsFrom(t *testing.T) {
	opts := OptionsFrom(config.Default())
	if opts.Width != 1024 || opts.Height != 640 || opts.YOEMax != 38 {
		t.Errorf("options = %+v", opts)
	}
}
