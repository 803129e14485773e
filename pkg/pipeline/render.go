package pipeline

import (
	"context"
	"encoding/json"

	"github.com/matzehuels/surveycharts/pkg/errors"
	"github.com/matzehuels/surveycharts/pkg/render"
	"github.com/matzehuels/surveycharts/pkg/render/histogram"
	"github.com/matzehuels/surveycharts/pkg/render/nodelink"
)

// EncodeOptions control raster output.
type EncodeOptions struct {
	Scale      float64
	Rasterizer render.Rasterizer
}

// Encode renders c in one format.
//
// JSON is the scene tree for the roles and orgs charts, the DOT source for
// the network chart and the series for the histogram.
func Encode(ctx context.Context, c *Chart, format render.Format, opts EncodeOptions) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case c.Scene != nil:
		data, err = encodeScene(c, format, opts)
	case c.DOT != "":
		data, err = encodeNetwork(ctx, c, format, opts)
	case c.Series != nil:
		data, err = encodeHistogram(c, format, opts)
	default:
		return nil, errors.New(errors.ErrCodeInternal, "chart %s has no content", c.Name)
	}
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s %s", c.Name, format)
	}
	return data, nil
}

func encodeScene(c *Chart, format render.Format, opts EncodeOptions) ([]byte, error) {
	if format == render.FormatJSON {
		return json.Marshal(c.Scene)
	}
	return render.Convert(c.Scene.SVG(), format, opts.Scale, opts.Rasterizer)
}

func encodeNetwork(ctx context.Context, c *Chart, format render.Format, opts EncodeOptions) ([]byte, error) {
	switch format {
	case render.FormatSVG:
		return nodelink.RenderSVG(ctx, c.DOT)
	case render.FormatPNG:
		return nodelink.RenderPNG(ctx, c.DOT, opts.Scale, opts.Rasterizer)
	case render.FormatPDF:
		return nodelink.RenderPDF(ctx, c.DOT)
	case render.FormatJSON:
		return json.Marshal(struct {
			Chart string `json:"chart"`
			DOT   string `json:"dot"`
		}{c.Name, c.DOT})
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported network format: %s", format)
}

func encodeHistogram(c *Chart, format render.Format, opts EncodeOptions) ([]byte, error) {
	switch format {
	case render.FormatSVG, render.FormatPNG:
		return histogram.Render(c.Series, c.Histogram, format)
	case render.FormatPDF:
		svg, err := histogram.Render(c.Series, c.Histogram, render.FormatSVG)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(svg)
	case render.FormatJSON:
		return json.Marshal(c.Series)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported histogram format: %s", format)
}
