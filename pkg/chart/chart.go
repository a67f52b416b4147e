package chart

import (
	"sync"

	"github.com/matzehuels/barchart/pkg/scale"
	"github.com/matzehuels/barchart/pkg/scene"
)

// Layer names, in draw order.
const (
	LayerColumn  = "column"
	LayerBar     = "bar"
	LayerOverlay = "overlay"
)

// Axis names on the surface.
const (
	AxisX = "x"
	AxisY = "y"
)

// Chart renders a data set into a retained [scene.Surface].
// A Chart is safe for concurrent use.
type Chart struct {
	mu sync.Mutex

	cfg  Config
	w, h float64

	surface *scene.Surface
	x       scale.Continuous
	y       *scale.Linear
	color   *scale.Sequential
	xAxis   *scene.Axis
	yAxis   *scene.Axis

	data []Point
}

// New merges cfg and opts over the defaults and builds the chart surface,
// scales and axes. Nothing is drawn until [Chart.Render].
func New(cfg Config, opts ...Option) (*Chart, error) {
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Chart{cfg: cfg}
	c.w, c.h = cfg.Dimensions()

	c.surface = scene.NewSurface(cfg.Target, cfg.Width, cfg.Height, cfg.Margin.Left, cfg.Margin.Top)

	if len(cfg.ColorRange) > 0 {
		color, err := scale.NewSequential(cfg.ColorRange, cfg.ColorInterpolate)
		if err != nil {
			return nil, err
		}
		c.color = color
	}

	if cfg.TimeAxis {
		c.x = scale.NewTime()
	} else {
		c.x = scale.NewLinear()
	}
	c.x.SetRange(0, c.w)
	c.y = scale.NewLinear()
	c.y.SetRange(c.h, 0)

	if !cfg.NoAxis {
		c.xAxis = &scene.Axis{
			Name:        AxisX,
			Orient:      scene.Bottom,
			TickSize:    *cfg.TickSize,
			TickPadding: TickPadding,
			Range:       [2]float64{0, c.w},
			Offset:      c.h + *cfg.AxisPadding,
		}
		c.yAxis = &scene.Axis{
			Name:        AxisY,
			Orient:      scene.Left,
			TickSize:    *cfg.TickSize,
			TickPadding: TickPadding,
			Range:       [2]float64{c.h, 0},
			Offset:      -*cfg.AxisPadding,
		}
		c.surface.AddAxis(c.xAxis)
		c.surface.AddAxis(c.yAxis)
	}

	for _, name := range []string{LayerColumn, LayerBar, LayerOverlay} {
		c.surface.Layer(name)
	}
	return c, nil
}

// RenderOption modifies a single Render or Update call.
type RenderOption func(*renderOptions)

type renderOptions struct {
	animate bool
}

// WithAnimate controls whether changes are applied through a transition.
func WithAnimate(animate bool) RenderOption {
	return func(o *renderOptions) { o.animate = animate }
}

// Render binds data and redraws axes then bars. Changes apply immediately
// unless WithAnimate(true) is given.
func (c *Chart) Render(data []Point, opts ...RenderOption) error {
	return c.render(data, false, opts)
}

// Update is Render with animation enabled by default.
func (c *Chart) Update(data []Point, opts ...RenderOption) error {
	return c.render(data, true, opts)
}

func (c *Chart) render(data []Point, animate bool, opts []RenderOption) error {
	o := renderOptions{animate: animate}
	for _, opt := range opts {
		opt(&o)
	}
	if err := ValidatePoints(data); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.barWidth(len(data)); err != nil {
		return err
	}

	var tr *scene.Transition
	if o.animate {
		t, err := scene.NewTransition(c.cfg.Duration, c.cfg.Ease)
		if err != nil {
			return err
		}
		tr = t
	}

	c.data = append([]Point(nil), data...)
	c.renderAxis(tr)
	if err := c.renderBars(tr); err != nil {
		return err
	}
	c.updatePointer()
	return nil
}

func (c *Chart) updatePointer() {
	d0, d1 := c.x.Domain()
	r0, r1 := c.x.Range()
	c.surface.Pointer = &scene.Pointer{
		Bins:   bins(c.data),
		Values: values(c.data),
		Domain: [2]float64{d0, d1},
		Range:  [2]float64{r0, r1},
		Time:   c.cfg.TimeAxis,
	}
}

// Dimensions returns the drawable width and height.
func (c *Chart) Dimensions() (w, h float64) {
	return c.w, c.h
}

// ID returns the surface identifier.
func (c *Chart) ID() string {
	return c.surface.ID
}

// Config returns the effective configuration.
func (c *Chart) Config() Config {
	return c.cfg.WithDefaults()
}

// Surface returns a snapshot of the rendered scene.
func (c *Chart) Surface() *scene.Surface {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface.Clone()
}

// Data returns a copy of the bound data.
func (c *Chart) Data() []Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Point(nil), c.data...)
}

// XScale returns a copy of the horizontal scale as of the last render.
func (c *Chart) XScale() scale.Continuous {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.x.Clone()
}

// YDomain returns the vertical domain as of the last render.
func (c *Chart) YDomain() (lo, hi float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.y.Domain()
}
