// Package sink serializes a chart [scene.Surface] into output formats.
//
// # Overview
//
//   - SVG: [RenderSVG], with SMIL animations for pending transitions and an
//     optional pointer script
//   - JSON: [RenderJSON], the scene snapshot for external tools
//   - HTML: [RenderECharts], an interactive echarts page of the bound data
//   - PNG and PDF: [RenderPNG] and [RenderPDF] (require rsvg-convert)
//
// # SVG Output
//
// Shapes are written at their final geometry. When a layer carries a
// transition, shapes with a From rectangle get <animate> children whose
// values are the eased interpolation sampled at [DefaultKeyframes] steps, so
// the browser replays the same easing the chart was configured with:
//
//	svg := sink.RenderSVG(c.Surface(),
//	    sink.WithInteraction(),
//	    sink.WithTitle("Requests per day"),
//	)
//
// [WithInteraction] embeds the bound data and the horizontal mapping, plus a
// script that dispatches "barchart:mouseover" (detail {bin, value}) and
// "barchart:mouseout" events on the svg element as the pointer moves over
// the overlay layer. The lookup matches chart.Nearest.
//
// Raster and print output drop animations and show the final state.
package sink
