// Package render converts SVG documents to raster and print formats.
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg), which must
// be on PATH:
//
//	svg := sink.RenderSVG(c.Surface())
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// Install with "brew install librsvg" (macOS) or "apt install librsvg2-bin"
// (Linux). When the tool is missing the functions return an error with code
// errors.ErrCodeUnsupported; use [Available] to check up front.
package render
