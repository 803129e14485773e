package pipeline

import (
	"github.com/matzehuels/surveycharts/pkg/config"
	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/render/histogram"
	"github.com/matzehuels/surveycharts/pkg/render/nodelink"
	"github.com/matzehuels/surveycharts/pkg/render/orgs"
	"github.com/matzehuels/surveycharts/pkg/render/roles"
	"github.com/matzehuels/surveycharts/pkg/render/scene"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

// =============================================================================
// Layout Generation
// =============================================================================

// Chart is a laid-out chart ready to be encoded. Exactly one of Scene, DOT
// and Series is set, depending on the chart.
type Chart struct {
	Name string

	// Scene is the element tree of the roles and orgs charts.
	Scene *scene.Document
	// DOT is the Graphviz source of the network chart.
	DOT string
	// Series are the lines of the histogram chart.
	Series []histogram.Series
	// Histogram sizes the histogram chart.
	Histogram histogram.Options
}

// Layout builds the named chart from ds. A chart whose data is absent
// fails with errors.ErrCodeMissingDataset.
func Layout(ds *survey.Dataset, chart string, cfg config.Config) (*Chart, error) {
	if err := ValidateChart(chart); err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, errors.New(errors.ErrCodeMissingDataset, "no dataset loaded")
	}

	th := cfg.Theme
	switch chart {
	case ChartRoles:
		l, err := roles.Build(ds, cfg.Roles)
		if err != nil {
			return nil, err
		}
		return &Chart{Name: chart, Scene: roles.Render(l, roles.WithTheme(th))}, nil

	case ChartOrgs:
		l, err := orgs.Build(ds, cfg.Orgs)
		if err != nil {
			return nil, err
		}
		return &Chart{Name: chart, Scene: orgs.Render(l, orgs.WithTheme(th))}, nil

	case ChartNetwork:
		if !ds.HasConnect() {
			return nil, errors.New(errors.ErrCodeMissingDataset, "network chart needs connect data")
		}
		return &Chart{Name: chart, DOT: nodelink.ToDOT(ds.Connect, nodelink.OptionsFrom(cfg.Network, th))}, nil

	default:
		series, err := histogram.Build(ds)
		if err != nil {
			return nil, err
		}
		return &Chart{Name: chart, Series: series, Histogram: histogram.OptionsFrom(cfg)}, nil
	}
}

// records counts the dataset records a chart is built from.
func records(ds *survey.Dataset, chart string) int {
	if ds == nil {
		return 0
	}
	s := ds.Summary()
	switch chart {
	case ChartRoles:
		return s.Roles + s.Links
	case ChartOrgs:
		return s.Orgs
	case ChartNetwork:
		return s.Nodes + s.Links
	default:
		return s.Primaries
	}
}
