// Package chart renders bar charts into a retained scene.
//
// # Overview
//
// A [Chart] is built once from a [Config] and then rendered any number of
// times with [Chart.Render] or [Chart.Update]. Each render recomputes the
// horizontal (bin) and vertical (value) scale domains from the data, redraws
// both axes and joins three keyed layers against the data:
//
//   - column: full-height background shapes, one per bin
//   - bar: the value bars, optionally rounded and color-filled
//   - overlay: transparent full-width hit targets for pointer lookups
//
// Update animates by default; Render applies changes immediately. Either
// can be overridden with [WithAnimate].
//
// # Configuration
//
// Zero fields in a Config take the documented defaults (400x200, margins
// 15/0/35/60, bar padding 13, linear easing over 250ms, rounded bars):
//
//	c, err := chart.New(chart.Config{Width: 800},
//	    chart.WithNice(),
//	    chart.WithColorRange("hcl", "#d9f0a3", "#005a32"),
//	)
//
// Configs can also be loaded from TOML with [LoadConfig].
//
// # Pointer Interaction
//
// [Nearest] resolves a pointer offset to the data point whose bin precedes
// it. [Chart.MouseOver] applies it to the chart's current data and scale and
// forwards the result to the configured callback.
//
// # Errors
//
// Rendering fails with errors.ErrCodeChartTooSmall when bars would be
// narrower than one unit, and with errors.ErrCodeInvalidData for bins that
// are not strictly ascending or coordinates that are not finite. A failed
// render leaves the previous state untouched.
package chart
