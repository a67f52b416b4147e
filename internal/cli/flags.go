package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/barchart/pkg/chart"
)

// chartFlags are the chart options shared by render, serve and explore.
// Flags override values from --config; unset flags leave them alone.
type chartFlags struct {
	configPath  string
	width       float64
	height      float64
	noAxis      bool
	nice        bool
	timeAxis    bool
	barPadding  float64
	colors      string
	interpolate string
	ease        string
	duration    time.Duration
	typ         string
}

func (f *chartFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "TOML chart config file")
	fs.Float64Var(&f.width, "width", chart.DefaultWidth, "outer chart width")
	fs.Float64Var(&f.height, "height", chart.DefaultHeight, "outer chart height")
	fs.BoolVar(&f.noAxis, "no-axis", false, "hide axes and drop the margin")
	fs.BoolVar(&f.nice, "nice", false, "extend domains to round tick values")
	fs.BoolVar(&f.timeAxis, "time", false, "treat bins as Unix milliseconds")
	fs.Float64Var(&f.barPadding, "bar-padding", chart.DefaultBarPadding, "gap between bars")
	fs.StringVar(&f.colors, "color", "", "color range for bar fills, comma-separated hex colors")
	fs.StringVar(&f.interpolate, "interpolate", "", "color interpolation: hcl (default), lab, hsv, rgb, luv")
	fs.StringVar(&f.ease, "ease", "", "transition easing, e.g. cubic-in-out")
	fs.DurationVar(&f.duration, "duration", chart.DefaultDuration, "transition duration")
	fs.StringVar(&f.typ, "type", chart.DefaultType, "bar type: rounded or square")
}

// config loads --config (if any) and applies the flags that were set.
func (f *chartFlags) config(cmd *cobra.Command) (chart.Config, error) {
	var cfg chart.Config
	if f.configPath != "" {
		loaded, err := chart.LoadConfig(f.configPath)
		if err != nil {
			return chart.Config{}, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("width") {
		cfg.Width = f.width
	}
	if changed("height") {
		cfg.Height = f.height
	}
	if changed("no-axis") {
		cfg.NoAxis = f.noAxis
	}
	if changed("nice") {
		cfg.Nice = f.nice
	}
	if changed("time") {
		cfg.TimeAxis = f.timeAxis
	}
	if changed("bar-padding") {
		cfg.BarPadding = chart.Float(f.barPadding)
	}
	if changed("color") {
		cfg.ColorRange = splitList(f.colors)
	}
	if changed("interpolate") {
		cfg.ColorInterpolate = f.interpolate
	}
	if changed("ease") {
		cfg.Ease = f.ease
	}
	if changed("duration") {
		cfg.Duration = f.duration
	}
	if changed("type") {
		cfg.Type = f.typ
	}
	return cfg, cfg.WithDefaults().Validate()
}
