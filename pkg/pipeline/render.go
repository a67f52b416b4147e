package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/sink"
)

// Artifact renders one output format from a chart's current surface.
func Artifact(ctx context.Context, c *chart.Chart, format string, opts Options) ([]byte, error) {
	s := c.Surface()
	svgOpts := []sink.SVGOption{}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}

	switch format {
	case FormatSVG:
		if opts.Interactive {
			svgOpts = append(svgOpts, sink.WithInteraction())
		}
		if !opts.Animate {
			svgOpts = append(svgOpts, sink.WithoutAnimation())
		}
		return sink.RenderSVG(s, svgOpts...), nil
	case FormatJSON:
		return sink.RenderJSON(s)
	case FormatHTML:
		var buf bytes.Buffer
		echartsOpts := []sink.EChartsOption{}
		if opts.Title != "" {
			echartsOpts = append(echartsOpts, sink.WithEChartsTitle(opts.Title, ""))
		}
		if err := sink.RenderECharts(&buf, s, echartsOpts...); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, s, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
	case FormatPDF:
		return sink.RenderPDF(ctx, s, svgOpts...)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
}

// Artifacts renders every requested format.
func Artifacts(ctx context.Context, c *chart.Chart, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := Artifact(ctx, c, format, opts)
		if err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "render %s", format)
		}
		out[format] = data
	}
	return out, nil
}
