package orgs

import (
	"github.com/matzehuels/surveycharts/pkg/render/scene"
	"github.com/matzehuels/surveycharts/pkg/render/theme"
	"github.com/matzehuels/surveycharts/pkg/shape"
)

// Option configures Render.
type Option func(*renderer)

type renderer struct {
	theme theme.Theme
}

// WithTheme sets the palette. The default is [theme.Default].
func WithTheme(t theme.Theme) Option { return func(r *renderer) { r.theme = t } }

// Render draws a layout as an SVG scene.
func Render(l *Layout, opts ...Option) *scene.Document {
	r := renderer{theme: theme.Default()}
	for _, opt := range opts {
		opt(&r)
	}

	doc := scene.NewDocument(l.Width, l.Height)
	doc.Background = r.theme.Background
	for _, o := range l.Orgs {
		doc.Root.Add(r.org(o))
	}
	return doc
}

func (r *renderer) style(n *scene.Node, classes ...string) *scene.Node {
	return r.theme.Style(n, classes...)
}

func (r *renderer) org(o OrgLayout) *scene.Node {
	g := scene.Group(scene.A("transform", scene.Translate(o.Center.X, o.Center.Y))).Class("org", o.Slug)
	grid := g.Append(scene.Group().Class("grid"))
	for _, rl := range o.Roles {
		grid.Add(r.role(rl))
	}
	g.Add(r.style(scene.Text(0, 0, o.Title), "text", "org-text"))
	return g
}

func (r *renderer) role(rl RoleLayout) *scene.Node {
	g := scene.Group().Class("role", rl.Slug)

	for _, m := range []Metric{MetricYOE, MetricSalary} {
		for _, a := range rl.Areas {
			if a.Metric != m {
				continue
			}
			side := g.Append(scene.Group().Class(string(m)))
			side.Add(r.style(scene.Path(a.Path), "centrality", "primary-"+a.Primary.String()))
			if m == MetricSalary {
				side.Add(r.style(scene.Circle(0, 0, rl.CleanupRadius), "cleanup", rl.Slug))
			}
		}
		g.Add(r.style(scene.Path(rl.Gridline[m]), "gridline"))
	}

	g.Append(scene.Group().Class("title")).Add(
		r.style(scene.Path(rl.TitleArc).Set("id", rl.TitleID), "title-path", "hidden"),
		r.style(scene.El("text"), "text").Add(scene.TextPath(rl.TitleID, rl.Role)),
	)

	if len(rl.Bars) > 0 {
		bar := g.Append(scene.Group().Class("bar"))
		primary := bar.Append(scene.Group())
		secondary := bar.Append(scene.Group())
		totals := bar.Append(scene.Group().Class("total"))
		for _, b := range rl.Bars {
			slug := rl.Slug
			primary.Add(r.style(scene.Path(b.Primary), "primary", slug))
			secondary.Add(r.style(scene.Path(b.Secondary), "secondary", slug))
			totals.Add(r.style(scene.Text(0, b.LabelY, shape.FormatNumber(b.Total, 3)).
				Set("transform", scene.Rotate(b.LabelRotate)), "total", "text"))
		}
	}
	return g
}
