package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/surveycharts/pkg/config"
	"github.com/matzehuels/surveycharts/pkg/render"
	"github.com/matzehuels/surveycharts/pkg/render/theme"
	"github.com/matzehuels/surveycharts/pkg/scale"
	"github.com/matzehuels/surveycharts/pkg/shape"
	"github.com/matzehuels/surveycharts/pkg/survey"
)

// Options configures network diagram generation.
type Options struct {
	// RankDir is the Graphviz rank direction, LR by default.
	RankDir  string
	MinPen   float64
	MaxPen   float64
	FontSize float64
	// OrgColor and RoleColor fill the two node ranks.
	OrgColor   string
	RoleColor  string
	EdgeColor  string
	FontFamily string
	// Counts appends respondent counts to node labels.
	Counts bool
}

// OptionsFrom builds options from configuration and theme.
func OptionsFrom(cfg config.NetworkConfig, t theme.Theme) Options {
	opts := Options{
		RankDir:    cfg.RankDir,
		MinPen:     cfg.MinPen,
		MaxPen:     cfg.MaxPen,
		FontSize:   cfg.FontSize,
		FontFamily: t.FontFamily,
		Counts:     true,
	}
	if s, ok := t.Styles["nodes"]; ok {
		opts.OrgColor = s.Fill
	}
	if s, ok := t.Styles["primary-true"]; ok {
		opts.RoleColor = s.Fill
	}
	if s, ok := t.Styles["link"]; ok {
		opts.EdgeColor = s.Stroke
	}
	return opts
}

func (o Options) withDefaults() Options {
	if o.RankDir == "" {
		o.RankDir = "LR"
	}
	if o.MaxPen == 0 {
		o.MinPen, o.MaxPen = 0.5, 6
	}
	if o.FontSize == 0 {
		o.FontSize = 14
	}
	if o.OrgColor == "" {
		o.OrgColor = "white"
	}
	if o.RoleColor == "" {
		o.RoleColor = "white"
	}
	if o.EdgeColor == "" {
		o.EdgeColor = "black"
	}
	return o
}

// ToDOT converts the connect table to Graphviz DOT. Org nodes form the
// first rank and role nodes the second; links point from org to role.
// Links whose endpoints have no node get a placeholder named after the
// link's org or role.
func ToDOT(c *survey.Connect, opts Options) string {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.RankDir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fontsize=%s, margin=\"0.2,0.1\"", num(opts.FontSize))
	if opts.FontFamily != "" {
		fmt.Fprintf(&buf, ", fontname=%q", opts.FontFamily)
	}
	buf.WriteString("];\n")
	fmt.Fprintf(&buf, "  edge [arrowhead=none, color=%q];\n", opts.EdgeColor)
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.2;\n")

	if c == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	orgs := map[int]survey.Node{}
	roles := map[int]survey.Node{}
	for _, n := range c.Nodes {
		if n.IsOrg() {
			orgs[n.Index] = n
		} else {
			roles[n.Index] = n
		}
	}
	for _, l := range c.Links {
		if _, ok := orgs[l.IOrg]; !ok {
			orgs[l.IOrg] = survey.Node{ID: placeholder(l.Org, "org", l.IOrg), Index: l.IOrg}
		}
		if _, ok := roles[l.IRole]; !ok {
			roles[l.IRole] = survey.Node{ID: placeholder(l.Role, "role", l.IRole), Index: l.IRole, Level: 1}
		}
	}

	buf.WriteString("\n  subgraph orgs {\n    rank=same;\n")
	for _, i := range slices.Sorted(maps.Keys(orgs)) {
		n := orgs[i]
		fmt.Fprintf(&buf, "    %q [label=%q, fillcolor=%q];\n", orgID(i), fmtLabel(n, opts.Counts), opts.OrgColor)
	}
	buf.WriteString("  }\n\n  subgraph roles {\n    rank=same;\n")
	for _, i := range slices.Sorted(maps.Keys(roles)) {
		n := roles[i]
		fmt.Fprintf(&buf, "    %q [label=%q, fillcolor=%q];\n", roleID(i), fmtLabel(n, opts.Counts), opts.RoleColor)
	}
	buf.WriteString("  }\n\n")

	pen := penScale(c.Links, opts)
	for _, l := range c.Links {
		fmt.Fprintf(&buf, "  %q -> %q [penwidth=%s, tooltip=%q];\n",
			orgID(l.IOrg), roleID(l.IRole), num(pen.Apply(l.Value)), num(l.Value))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func penScale(links []survey.Link, opts Options) scale.Linear {
	values := make([]float64, len(links))
	for i, l := range links {
		values[i] = l.Value
	}
	lo, hi := scale.Extent(values)
	return scale.NewLinear(lo, hi, opts.MinPen, opts.MaxPen)
}

func orgID(i int) string  { return "org:" + strconv.Itoa(i) }
func roleID(i int) string { return "role:" + strconv.Itoa(i) }

func placeholder(name, kind string, i int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s %d", kind, i)
}

func fmtLabel(n survey.Node, counts bool) string {
	if !counts || n.Value == 0 {
		return n.ID
	}
	return n.ID + "\n" + num(n.Value)
}

func num(v float64) string { return shape.FormatNumber(v, 2) }

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the drawing starts at the origin
// and carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion, using the given
// rasterizer mode. A scale of 2.0 produces a 2x resolution image.
func RenderPNG(ctx context.Context, dot string, factor float64, mode render.Rasterizer) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.Convert(svg, render.FormatPNG, factor, mode)
}
