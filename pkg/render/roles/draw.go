package roles

import (
	"fmt"

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
	root := doc.Root
	root.Add(r.theme.Defs())

	for _, rl := range l.Roles {
		root.Add(r.role(l, rl))
	}
	if len(l.Roles) > 0 {
		root.Add(r.grid(l))
	}
	if len(l.Links) > 0 {
		root.Add(r.links(l))
	}
	if len(l.Nodes) > 0 {
		root.Add(r.nodes(l))
	}
	root.Add(r.labels(l))
	return doc
}

func (r *renderer) style(n *scene.Node, classes ...string) *scene.Node {
	return r.theme.Style(n, classes...)
}

func (r *renderer) role(l *Layout, rl RoleLayout) *scene.Node {
	g := scene.Group(scene.A("transform", scene.Translate(rl.X, 0))).Class("role", rl.Slug)

	circles := g.Append(scene.Group(scene.A("transform", scene.Translate(0, l.CenterY))))
	circles.Add(
		r.style(scene.Circle(0, 0, rl.Radius).
			Set("fill", scene.URL(theme.CircleGradientID)).
			Set("stroke-width", 0), "role-background"),
		r.style(scene.Circle(0, 0, rl.Radius).Set("fill", "none"), "role-background"),
	)

	id := titleID(rl.Slug)
	title := g.Append(scene.Group(scene.A("transform", scene.Translate(0, l.CenterY))).Class("title"))
	title.Add(
		r.style(scene.Path(l.TitleArc()).Set("id", id), "title-path", "hidden"),
		r.style(scene.El("text"), "role-title").Add(scene.TextPath(id, rl.Role)),
	)

	if l.Config.Backgrounds {
		bg := g.Append(scene.Group().Class("background"))
		for _, s := range rl.Sides {
			b := s.Background
			bg.Add(scene.Group().Class("centrality-background").Add(
				scene.Rect(b.X, b.Y, b.Width, b.Height).
					Set("fill", scene.URL(theme.SideGradientID(bool(s.Primary)))),
			))
		}
	}

	yoe := g.Append(scene.Group().Class("yoe"))
	for _, s := range rl.Sides {
		if s.Area == "" {
			continue
		}
		yoe.Add(scene.Group().Class("centrality").Add(
			r.style(scene.Path(s.Area), "centrality", "primary-"+s.Primary.String()),
		))
	}

	axis := shape.NewPath()
	axis.MoveTo(0, l.GridTop())
	axis.LineTo(0, l.GridBottom())
	g.Append(scene.Group().Class("gridline")).
		Add(r.style(scene.Path(axis.String()), "gridline", rl.Slug))

	g.Append(scene.Group().Class("role-total")).
		Add(r.style(scene.Text(0, l.CenterY-3.5, shape.FormatNumber(rl.Total, 3)), "role-total"))
	return g
}

func (r *renderer) grid(l *Layout) *scene.Node {
	cfg := l.Config
	g := scene.Group().Class("grid")
	axis := g.Append(scene.Group().Class("axis"))
	text := g.Append(scene.Group().Class("text"))
	for _, year := range l.Years {
		y := l.Scales.YOE.Apply(year)
		p := shape.NewPath()
		p.MoveTo(cfg.PagePadding, y)
		p.LineTo(cfg.Width-cfg.PagePadding+20, y)
		axis.Add(r.style(scene.Path(p.String()), "axis"))
		text.Add(r.style(scene.Text(cfg.PagePadding, y-2, yearLabel(year)), "axis-text"))
	}
	return g
}

func (r *renderer) links(l *Layout) *scene.Node {
	g := scene.Group().Class("links")
	paths := g.Append(scene.Group())
	starts := g.Append(scene.Group())
	ends := g.Append(scene.Group())
	for _, k := range l.Links {
		paths.Add(r.style(scene.Path(k.Path).
			Set("opacity", k.Opacity).
			Set("stroke-width", k.StrokeWidth), "link"))
		starts.Add(r.style(scene.Circle(k.Start.X, k.Start.Y, linkCircleRadius), "link-circle"))
		ends.Add(r.style(scene.Circle(k.End.X, k.End.Y, linkCircleRadius), "link-circle"))
	}
	return g
}

func (r *renderer) nodes(l *Layout) *scene.Node {
	g := scene.Group().Class("nodes")
	shadows := g.Append(scene.Group())
	outlines := g.Append(scene.Group())
	labels := g.Append(scene.Group())
	for _, n := range l.Nodes {
		s, b := n.Shadow, n.Box
		shadows.Add(r.style(scene.Rect(s.X, s.Y, s.Width, s.Height).Set("opacity", n.Opacity), "nodes"))
		outlines.Add(r.style(scene.Rect(b.X, b.Y, b.Width, b.Height), "nodes-outline"))
		labels.Add(r.style(scene.Text(n.Label.X, n.Label.Y, n.ID), "nodes-outline-text"))
	}
	return g
}

func (r *renderer) labels(l *Layout) *scene.Node {
	cfg := l.Config
	x := cfg.PagePadding - 20
	g := scene.Group().Class("labels")

	titles := []struct {
		y    float64
		text string
	}{
		{cfg.YRoleOffset + cfg.Height/4 + 0.6*cfg.PagePadding, "Years of Work Experience"},
		{l.CenterY, "Roles"},
		{cfg.PagePadding, "Orgs"},
	}
	for _, t := range titles {
		g.Add(scene.Group(scene.A("transform", scene.Translate(x, t.y))).Class("axis-title").Add(
			r.style(scene.Text(0, 0, t.text).Set("transform", scene.Rotate(-90)), "axis-title"),
		))
	}
	return g
}

func titleID(slug string) string { return "title-path-" + slug }

func yearLabel(year float64) string {
	return fmt.Sprintf("%s years", shape.FormatNumber(year, 3))
}
