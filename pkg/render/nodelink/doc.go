// Package nodelink renders the connect table as an org → role network.
//
// # Overview
//
// Orgs and roles become two ranks of Graphviz nodes; every link becomes an
// edge whose pen width grows with the number of respondents. It is a plain
// companion to the roles chart for readers who want exact counts.
//
// # Usage
//
//	dot := nodelink.ToDOT(ds.Connect, nodelink.OptionsFrom(cfg.Network, cfg.Theme))
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use [RenderPDF] and [RenderPNG], which convert the
// SVG with the shared converters in the render package.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
