package chart

import (
	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/scene"
)

// ErrTooSmall is the message of the error returned when bars would be
// narrower than one unit.
const ErrTooSmall = "too small for the amount of data provided"

// barWidth returns the bar width for n points: the column width minus the
// bar padding. It fails when the result is below one unit.
func (c *Chart) barWidth(n int) (float64, error) {
	if n == 0 {
		return c.w - *c.cfg.BarPadding, nil
	}
	bw := c.w/float64(n) - *c.cfg.BarPadding
	if bw < 1 {
		return 0, errors.New(errors.ErrCodeChartTooSmall, ErrTooSmall)
	}
	return bw, nil
}

// renderBars joins the column, bar and overlay layers against the bound
// data. Callers hold c.mu.
func (c *Chart) renderBars(tr *scene.Transition) error {
	n := len(c.data)
	bw, err := c.barWidth(n)
	if err != nil {
		return err
	}
	var colWidth float64
	if n > 0 {
		colWidth = c.w / float64(n)
	}

	columns := make([]scene.Shape, n)
	bars := make([]scene.Shape, n)
	overlays := make([]scene.Shape, n)
	for i, p := range c.data {
		key := scene.KeyOf(p.Bin)
		x := c.x.Map(p.Bin)
		y := c.y.Map(p.Value)

		columns[i] = scene.Shape{
			Key: key, Bin: p.Bin, Value: p.Value,
			Rect:    scene.Rect{X: x, Y: 0, W: bw, H: c.h},
			Opacity: 1,
		}

		bar := scene.Shape{
			Key: key, Bin: p.Bin, Value: p.Value,
			Rect:    scene.Rect{X: x, Y: y, W: bw, H: c.h - y},
			Opacity: 1,
			From:    &scene.Rect{X: x, Y: c.h, W: bw, H: 0},
		}
		if c.cfg.Type == TypeRounded {
			bar.Radius = bw / 2
		}
		if c.color != nil {
			bar.Fill = c.color.Map(p.Value)
		}
		bars[i] = bar

		overlays[i] = scene.Shape{
			Key: key, Bin: p.Bin, Value: p.Value,
			Rect: scene.Rect{X: x, Y: 0, W: colWidth, H: c.h},
		}
	}

	c.surface.Layer(LayerColumn).Apply(columns, tr)
	c.surface.Layer(LayerBar).Apply(bars, tr)
	c.surface.Layer(LayerOverlay).Apply(overlays, tr)
	return nil
}

// BarWidth returns the width each bar would have for n points.
func (c *Chart) BarWidth(n int) (float64, error) {
	return c.barWidth(n)
}
