// Package pkg provides the libraries behind surveycharts, which draws
// organizational survey results as SVG charts.
//
// # Overview
//
// A survey dataset is three JSON tables: per-role experience and salary
// distributions, an org to role connect table, and per-org role shares. The
// pkg directory is organized into these areas:
//
//  1. [survey] - Dataset types, JSON import and summaries
//  2. [scale] and [shape] - Linear, band and point scales plus path generators
//  3. [render] - Chart layouts that emit a [render/scene] document
//  4. [pipeline] - Orchestration (load → layout → encode)
//  5. [cache], [source] and [publish] - Infrastructure around the pipeline
//
// # Architecture
//
//	survey directory or MongoDB
//	         ↓
//	    [source] package (load the dataset)
//	         ↓
//	    [render/roles], [render/orgs] (scales + shapes → scene)
//	         ↓
//	    [render] package (SVG, PNG, PDF or JSON)
//	         ↓
//	    local files or S3 via [publish]
//
// # Quick Start
//
//	ds, _ := survey.LoadDir("./data", survey.DefaultFiles())
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, _ := runner.Render(ctx, ds, pipeline.Options{
//	    Charts:  []string{pipeline.ChartRoles, pipeline.ChartOrgs},
//	    Formats: []string{"svg"},
//	})
//	os.WriteFile("roles.svg", result.Artifacts["roles/svg"], 0o644)
//
// # Testing
//
//	go test ./pkg/...
//	go test ./internal/...
//
// [survey]: https://pkg.go.dev/github.com/matzehuels/surveycharts/pkg/survey
// [scale]: https://pkg.go.dev/github.com/matzehuels/surveycharts/pkg/scale
// [shape]: https://pkg.go.dev/github.com/matzehuels/surveycharts/pkg/shape
// [render]: https://pkg.go.dev/github.com/matzehuels/surveycharts/pkg/render
// [render/scene]: https://pkg.go.dev/github.com/matzehuels/surveycharts/pkg/render/scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/surveycharts/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/surveycharts/pkg/cache
// [source]: https://pkg.go.dev/github.com/matzehuels/surveycharts/pkg/source
// [publish]: https://pkg.go.dev/github.com/matzehuels/surveycharts/pkg/publish
//
// [render/roles]: https://pkg.go.dev/github.com/matzehuels/surveycharts/pkg/render/roles
// [render/orgs]: https://pkg.go.dev/github.com/matzehuels/surveycharts/pkg/render/orgs
package pkg
