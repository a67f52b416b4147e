package sink

import (
	"context"

	"github.com/matzehuels/barchart/pkg/render"
	"github.com/matzehuels/barchart/pkg/scene"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG renders the surface's final state as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, s *scene.Surface, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(s, append([]SVGOption{WithoutAnimation()}, r.svgOpts...)...)
	return render.ToPNG(ctx, svg, r.scale)
}

// RenderPDF renders the surface's final state as PDF via SVG conversion.
func RenderPDF(ctx context.Context, s *scene.Surface, opts ...SVGOption) ([]byte, error) {
	svg := RenderSVG(s, append([]SVGOption{WithoutAnimation()}, opts...)...)
	return render.ToPDF(ctx, svg)
}
