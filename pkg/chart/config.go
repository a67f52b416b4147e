package chart

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/barchart/pkg/ease"
	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/scale"
)

// Bar shape variants.
const (
	TypeRounded = "rounded"
	TypeSquare  = "square"
)

// Defaults applied by [Config.WithDefaults].
const (
	DefaultTarget      = "chart"
	DefaultWidth       = 400
	DefaultHeight      = 200
	DefaultAxisPadding = 5
	DefaultTickSize    = 10
	DefaultBarPadding  = 13
	DefaultDuration    = 250 * time.Millisecond
	DefaultType        = TypeRounded

	// TickPadding is the gap between a tick line and its label. It is fixed.
	TickPadding = 8

	xTickCount = 5
	yTickCount = 3
)

// DefaultMargin leaves room for the bottom and left axes.
var DefaultMargin = Margin{Top: 15, Right: 0, Bottom: 35, Left: 60}

// Margin is the space between the outer surface and the drawable area.
type Margin struct {
	Top    float64 `toml:"top" json:"top"`
	Right  float64 `toml:"right" json:"right"`
	Bottom float64 `toml:"bottom" json:"bottom"`
	Left   float64 `toml:"left" json:"left"`
}

// Config holds chart options. Zero fields take the package defaults; a nil
// Margin means [DefaultMargin]. When NoAxis is set the margin is forced to
// zero regardless of what was supplied.
type Config struct {
	Target string  `toml:"target" json:"target,omitempty"`
	Width  float64 `toml:"width" json:"width,omitempty"`
	Height float64 `toml:"height" json:"height,omitempty"`
	Margin *Margin `toml:"margin" json:"margin,omitempty"`

	NoAxis bool `toml:"no_axis" json:"no_axis,omitempty"`
	Nice   bool `toml:"nice" json:"nice,omitempty"`

	// Paddings and tick size are pointers so that an explicit 0 survives
	// defaulting. Use [Float] to set them in a literal.
	AxisPadding *float64 `toml:"axis_padding" json:"axis_padding,omitempty"`
	TickSize    *float64 `toml:"tick_size" json:"tick_size,omitempty"`
	BarPadding  *float64 `toml:"bar_padding" json:"bar_padding,omitempty"`

	// XDomain and YDomain override the data extents when they hold exactly
	// two values. With TimeAxis, XDomain is in Unix milliseconds.
	XDomain []float64 `toml:"x_domain" json:"x_domain,omitempty"`
	YDomain []float64 `toml:"y_domain" json:"y_domain,omitempty"`

	// ColorRange enables bar fills interpolated across these hex colors.
	ColorRange       []string `toml:"color_range" json:"color_range,omitempty"`
	ColorInterpolate string   `toml:"color_interpolate" json:"color_interpolate,omitempty"`

	Ease     string        `toml:"ease" json:"ease,omitempty"`
	Duration time.Duration `toml:"duration" json:"duration,omitempty"`
	Type     string        `toml:"type" json:"type,omitempty"`
	TimeAxis bool          `toml:"time_axis" json:"time_axis,omitempty"`

	Mouseover func(Point) `toml:"-" json:"-"`
	Mouseout  func()      `toml:"-" json:"-"`
}

// Option modifies a Config.
type Option func(*Config)

// Float returns a pointer to v, for the optional numeric Config fields.
func Float(v float64) *float64 { return &v }

// WithTarget sets the surface identifier.
func WithTarget(id string) Option { return func(c *Config) { c.Target = id } }

// WithSize sets the outer width and height, margins included.
func WithSize(width, height float64) Option {
	return func(c *Config) { c.Width, c.Height = width, height }
}

// WithMargin replaces the default margin. It has no effect with [WithoutAxis].
func WithMargin(m Margin) Option { return func(c *Config) { c.Margin = &m } }

// WithoutAxis drops both axes and zeroes the margin.
func WithoutAxis() Option { return func(c *Config) { c.NoAxis = true } }

// WithAxisPadding sets the gap between the drawable area and each axis.
func WithAxisPadding(p float64) Option { return func(c *Config) { c.AxisPadding = &p } }

// WithTickSize sets the tick length; 0 hides the tick marks.
func WithTickSize(s float64) Option { return func(c *Config) { c.TickSize = &s } }

// WithBarPadding sets the gap subtracted from each column to get the bar
// width; 0 makes bars touch.
func WithBarPadding(p float64) Option { return func(c *Config) { c.BarPadding = &p } }

// WithNice rounds both domains outward to nice values.
func WithNice() Option { return func(c *Config) { c.Nice = true } }

// WithTimeAxis treats bins as Unix milliseconds on a calendar axis.
func WithTimeAxis() Option { return func(c *Config) { c.TimeAxis = true } }

// WithType selects rounded or square bars.
func WithType(t string) Option { return func(c *Config) { c.Type = t } }

// WithEase names the easing used by animated updates.
func WithEase(name string) Option { return func(c *Config) { c.Ease = name } }

// WithDuration sets the transition length of animated updates.
func WithDuration(d time.Duration) Option { return func(c *Config) { c.Duration = d } }

// WithXDomain fixes the horizontal domain instead of using the bin extent.
func WithXDomain(lo, hi float64) Option {
	return func(c *Config) { c.XDomain = []float64{lo, hi} }
}

// WithYDomain fixes the vertical domain instead of using the value extent.
func WithYDomain(lo, hi float64) Option {
	return func(c *Config) { c.YDomain = []float64{lo, hi} }
}

// WithColorRange fills bars by value, interpolating across colors in the
// named color space (hcl when empty).
func WithColorRange(interpolate string, colors ...string) Option {
	return func(c *Config) {
		c.ColorRange = colors
		c.ColorInterpolate = interpolate
	}
}

// WithMouseOver sets the callback that receives the point nearest the pointer.
func WithMouseOver(fn func(Point)) Option { return func(c *Config) { c.Mouseover = fn } }

// WithMouseOut sets the callback invoked when the pointer leaves the chart.
func WithMouseOut(fn func()) Option { return func(c *Config) { c.Mouseout = fn } }

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.Target == "" {
		c.Target = DefaultTarget
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	switch {
	case c.NoAxis:
		c.Margin = &Margin{}
	case c.Margin == nil:
		m := DefaultMargin
		c.Margin = &m
	default:
		m := *c.Margin
		c.Margin = &m
	}
	c.AxisPadding = floatOr(c.AxisPadding, DefaultAxisPadding)
	c.TickSize = floatOr(c.TickSize, DefaultTickSize)
	c.BarPadding = floatOr(c.BarPadding, DefaultBarPadding)
	if c.ColorInterpolate == "" {
		c.ColorInterpolate = scale.DefaultInterpolate
	}
	if c.Ease == "" {
		c.Ease = ease.Default
	}
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}
	if c.Type == "" {
		c.Type = DefaultType
	}
	c.XDomain = append([]float64(nil), c.XDomain...)
	c.YDomain = append([]float64(nil), c.YDomain...)
	c.ColorRange = append([]string(nil), c.ColorRange...)
	return c
}

// floatOr returns a fresh copy of *p, or of def when p is nil.
func floatOr(p *float64, def float64) *float64 {
	if p != nil {
		def = *p
	}
	return &def
}

// Dimensions returns the drawable width and height: the outer size minus
// the effective margin.
func (c Config) Dimensions() (w, h float64) {
	m := c.effectiveMargin()
	return c.Width - m.Left - m.Right, c.Height - m.Top - m.Bottom
}

func (c Config) effectiveMargin() Margin {
	if c.NoAxis {
		return Margin{}
	}
	if c.Margin == nil {
		return DefaultMargin
	}
	return *c.Margin
}

// Validate checks a defaulted config.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "width and height must be positive, got %gx%g", c.Width, c.Height)
	}
	if w, h := c.Dimensions(); w <= 0 || h <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margins leave no drawable area (%gx%g)", w, h)
	}
	if c.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "duration must not be negative")
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{{"axis_padding", c.AxisPadding}, {"tick_size", c.TickSize}, {"bar_padding", c.BarPadding}} {
		if f.v != nil && (*f.v < 0 || !finite(*f.v)) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be a finite non-negative number, got %v", f.name, *f.v)
		}
	}
	switch c.Type {
	case TypeRounded, TypeSquare:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown bar type %q (want %s or %s)", c.Type, TypeRounded, TypeSquare)
	}
	if err := validateDomain("x_domain", c.XDomain); err != nil {
		return err
	}
	if err := validateDomain("y_domain", c.YDomain); err != nil {
		return err
	}
	for _, col := range c.ColorRange {
		if err := errors.ValidateColor(col); err != nil {
			return err
		}
	}
	if err := scale.ValidateInterpolate(c.ColorInterpolate); err != nil {
		return err
	}
	if _, err := ease.Get(c.Ease); err != nil {
		return err
	}
	return nil
}

func validateDomain(name string, d []float64) error {
	if len(d) == 0 {
		return nil
	}
	if len(d) != 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s needs exactly two values, got %d", name, len(d))
	}
	for _, v := range d {
		if !finite(v) {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be finite, got %v", name, d)
		}
	}
	return nil
}

// LoadConfig reads a TOML config file. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
