// Package scale maps data values onto drawing coordinates and colors.
//
// # Continuous Scales
//
// [Linear] maps a numeric domain onto a numeric range by linear
// interpolation, and back again with Invert. [Time] is a Linear scale over
// Unix milliseconds whose ticks fall on calendar boundaries (seconds, minutes,
// hours, days, weeks, months, years). Both implement [Continuous], which is
// what charts and axes program against.
//
//	x := scale.NewLinear()
//	x.SetDomain(0, 10)
//	x.SetRange(0, 400)
//	x.Map(2.5)    // 100
//	x.Invert(100) // 2.5
//
// # Nice Domains and Ticks
//
// Nice rounds a domain outward so that its bounds are multiples of the tick
// step that Ticks would pick for the same count. Tick steps are 1, 2 or 5
// times a power of ten; time scales snap to the calendar interval closest to
// the requested density.
//
// # Color
//
// [Sequential] maps a numeric domain onto a list of colors, interpolating in
// a chosen color space (hcl by default) using go-colorful.
package scale
