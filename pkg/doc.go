// Package pkg holds the libraries behind the barchart command.
//
// Data flows in one direction:
//
//	file / HTTP body / Mongo document
//	         ↓
//	  dataset    load JSON, CSV and XLSX into sorted bins
//	         ↓
//	  chart      scales, axes and bar layers with an enter/update/exit join
//	         ↓
//	  scene      retained shapes with tweened attributes
//	         ↓
//	  sink       SVG, JSON and ECharts HTML
//	         ↓
//	  render     PNG and PDF through rsvg-convert
//
// Supporting packages:
//
//   - [scale] maps data to pixels (linear, time, color) and computes ticks.
//   - [ease] provides named easing curves for transitions.
//   - [pipeline] ties loading and rendering together behind a [cache].
//   - [server] exposes live charts over HTTP.
//   - [observability] carries hooks for logging and metrics.
//   - [errors] defines the coded errors every package returns.
//
// A chart can be driven directly:
//
//	c, err := chart.New(chart.Config{Width: 640, Height: 320, Nice: true})
//	if err != nil {
//	    return err
//	}
//	if err := c.Render(points); err != nil {
//	    return err // errors.ErrCodeChartTooSmall when bars would be narrower than 1px
//	}
//	svg := sink.RenderSVG(c.Surface())
//
// Or through the pipeline, which adds caching and multiple output formats:
//
//	r := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := r.Execute(ctx, pipeline.Options{Source: "sales.csv", Formats: []string{"svg", "html"}})
//
// [scale]: github.com/matzehuels/barchart/pkg/scale
// [ease]: github.com/matzehuels/barchart/pkg/ease
// [pipeline]: github.com/matzehuels/barchart/pkg/pipeline
// [cache]: github.com/matzehuels/barchart/pkg/cache
// [server]: github.com/matzehuels/barchart/pkg/server
// [observability]: github.com/matzehuels/barchart/pkg/observability
// [errors]: github.com/matzehuels/barchart/pkg/errors
package pkg
