package chart

import (
	"github.com/matzehuels/barchart/pkg/scale"
	"github.com/matzehuels/barchart/pkg/scene"
)

// renderAxis updates scale domains from the bound data and redraws the axes.
// Callers hold c.mu.
func (c *Chart) renderAxis(tr *scene.Transition) {
	x0, x1 := domainOf(c.cfg.XDomain, bins(c.data))
	y0, y1 := domainOf(c.cfg.YDomain, values(c.data))

	c.x.SetDomain(x0, x1)
	c.y.SetDomain(y0, y1)
	if c.color != nil {
		c.color.SetDomain(y0, y1)
	}
	if c.cfg.Nice {
		c.x.Nice(scale.DefaultNiceCount)
		c.y.Nice(scale.DefaultNiceCount)
	}

	if c.xAxis != nil {
		c.xAxis.Apply(axisTicks(c.x, xTickCount), tr)
	}
	if c.yAxis != nil {
		c.yAxis.Apply(axisTicks(c.y, yTickCount), tr)
	}
}

// domainOf returns the override when set, else the extent of vs, else [0, 1].
func domainOf(override, vs []float64) (float64, float64) {
	if len(override) == 2 {
		return override[0], override[1]
	}
	if lo, hi, ok := scale.Extent(vs); ok {
		return lo, hi
	}
	return 0, 1
}

func axisTicks(s scale.Continuous, count int) []scene.Tick {
	values := s.Ticks(count)
	format := s.TickFormat(count)
	ticks := make([]scene.Tick, len(values))
	for i, v := range values {
		ticks[i] = scene.Tick{Value: v, Label: format(v), Pos: s.Map(v)}
	}
	return ticks
}
