// Package render turns survey datasets into chart artifacts.
//
// # Overview
//
// Each chart lives in its own subpackage and produces either a [scene]
// tree (roles, orgs) or finished SVG (network, histogram):
//
//   - [roles]: cartesian role chart with experience areas and org links
//   - [orgs]: radial per-org chart with experience, salary and bar arcs
//   - [nodelink]: org → role network drawn by Graphviz
//   - [histogram]: experience distribution line chart
//
// # Format Conversion
//
// [ToPNG] rasterizes SVG in-process with oksvg; [ToPDF] shells out to
// rsvg-convert. [Convert] picks the right path for a [Format] and
// [Rasterizer] mode.
//
//	svg := doc.SVG()
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//	pdf, err := render.ToPDF(svg)
//
// [scene]: github.com/matzehuels/surveycharts/pkg/render/scene
// [roles]: github.com/matzehuels/surveycharts/pkg/render/roles
// [orgs]: github.com/matzehuels/surveycharts/pkg/render/orgs
// [nodelink]: github.com/matzehuels/surveycharts/pkg/render/nodelink
// [histogram]: github.com/matzehuels/surveycharts/pkg/render/histogram
package render
