// Package histogram draws the experience distribution of every role as a
// line chart, one line per role and primary flag.
package histogram

import (
	"bytes"
	"fmt"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/surveycharts/pkg/config"
	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/render"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

// Series is one line of the chart.
type Series struct {
	Name    string      `json:"name"`
	Role    string      `json:"role"`
	IRole   int         `json:"i_role"`
	Primary survey.Flag `json:"primary"`
	YOE     []float64   `json:"yoe"`
	Volume  []float64   `json:"volume"`
}

// Build extracts the series from role records. Lines with fewer than two
// points are dropped.
func Build(ds *survey.Dataset) ([]Series, error) {
	if !ds.HasRoles() {
		return nil, errors.New(errors.ErrCodeMissingDataset, "histogram needs yoe data")
	}
	var out []Series
	for _, r := range ds.Roles {
		for _, p := range r.Primaries {
			if len(p.YOEMetrics) < 2 {
				continue
			}
			s := Series{
				Name:    seriesName(r.Role, p.Primary),
				Role:    r.Role,
				IRole:   r.IRole,
				Primary: p.Primary,
			}
			for _, m := range p.YOEMetrics {
				s.YOE = append(s.YOE, m.YOE)
				s.Volume = append(s.Volume, m.PctVolume)
			}
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeMissingDataset, "histogram needs at least one role with two experience points")
	}
	return out, nil
}

func seriesName(role string, primary survey.Flag) string {
	if primary {
		return role + " (primary)"
	}
	return role + " (secondary)"
}

// Options sizes and colours the chart.
type Options struct {
	Width      int
	Height     int
	YOEMax     float64
	Background string
}

// OptionsFrom takes the chart size from the histogram settings, the
// experience range from the roles chart and the background from the theme.
func OptionsFrom(cfg config.Config) Options {
	return Options{
		Width:      cfg.Histogram.Width,
		Height:     cfg.Histogram.Height,
		YOEMax:     cfg.Roles.YOEMax,
		Background: cfg.Theme.Background,
	}
}

// roleColor picks the palette entry for iRole. Negative indices wrap.
func roleColor(iRole int) drawing.Color {
	n := len(chart.DefaultColors)
	return chart.DefaultColors[((iRole%n)+n)%n]
}

// Render draws series as SVG or PNG. Secondary lines are dashed; each role
// keeps one colour.
func Render(series []Series, opts Options, format render.Format) ([]byte, error) {
	var provider chart.RendererProvider
	switch format {
	case render.FormatSVG:
		provider = chart.SVG
	case render.FormatPNG:
		provider = chart.PNG
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "histogram cannot render %s directly", format)
	}

	maxVolume := 0.0
	cs := make([]chart.Series, 0, len(series))
	for _, s := range series {
		for _, v := range s.Volume {
			maxVolume = max(maxVolume, v)
		}
		style := chart.Style{
			StrokeColor: roleColor(s.IRole),
			StrokeWidth: 2,
		}
		if !s.Primary {
			style.StrokeDashArray = []float64{6, 4}
		}
		cs = append(cs, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.YOE,
			YValues: s.Volume,
			Style:   style,
		})
	}
	if maxVolume == 0 {
		maxVolume = 1
	}

	graph := chart.Chart{
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 200, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Years of Work Experience",
			Range: &chart.ContinuousRange{Min: 0, Max: opts.YOEMax},
		},
		YAxis: chart.YAxis{
			Name:           "Share of respondents",
			Range:          &chart.ContinuousRange{Min: 0, Max: maxVolume * 1.1},
			ValueFormatter: chart.PercentValueFormatter,
		},
		Series: cs,
	}
	if opts.Background != "" {
		graph.Background.FillColor = ColorFor(opts.Background)
		graph.Canvas.FillColor = ColorFor(opts.Background)
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(provider, &buf); err != nil {
		return nil, fmt.Errorf("render histogram: %w", err)
	}
	return buf.Bytes(), nil
}

// ColorFor parses a "#rrggbb" theme colour for use in chart styles.
func ColorFor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
