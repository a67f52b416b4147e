package sink

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/scale"
	"github.com/matzehuels/barchart/pkg/scene"
)

// EChartsOption configures [RenderECharts].
type EChartsOption func(*echartsRenderer)

type echartsRenderer struct {
	title    string
	subtitle string
	theme    string
	layer    string
	series   string
}

// WithEChartsTitle sets the chart title and subtitle.
func WithEChartsTitle(title, subtitle string) EChartsOption {
	return func(r *echartsRenderer) { r.title, r.subtitle = title, subtitle }
}

// WithEChartsTheme selects a built-in echarts theme, e.g. types.ThemeWesteros.
func WithEChartsTheme(theme string) EChartsOption {
	return func(r *echartsRenderer) { r.theme = theme }
}

// WithEChartsLayer names the layer whose fills color the bars (default "bar").
func WithEChartsLayer(name string) EChartsOption {
	return func(r *echartsRenderer) { r.layer = name }
}

// RenderECharts writes a standalone interactive HTML page showing the
// surface's bound data as an echarts bar chart. Bar colors follow the fills
// of the bar layer.
func RenderECharts(w io.Writer, s *scene.Surface, options ...EChartsOption) error {
	r := echartsRenderer{layer: "bar", series: "value"}
	for _, opt := range options {
		opt(&r)
	}
	if s.Pointer == nil {
		return errors.New(errors.ErrCodeInvalidInput, "surface %s has not been rendered", s.ID)
	}

	fills := map[string]string{}
	for _, l := range s.Layers {
		if l.Name != r.layer {
			continue
		}
		for _, sh := range l.Shapes {
			fills[sh.Key] = sh.Fill
		}
	}

	labels := make([]string, len(s.Pointer.Bins))
	items := make([]opts.BarData, len(s.Pointer.Bins))
	for i, b := range s.Pointer.Bins {
		labels[i] = binLabel(b, s.Pointer.Time)
		items[i] = opts.BarData{Name: labels[i], Value: s.Pointer.Values[i]}
		if fill := fills[scene.KeyOf(b)]; fill != "" {
			items[i].ItemStyle = &opts.ItemStyle{Color: fill}
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: s.ID,
			Width:   fmt.Sprintf("%.0fpx", s.Width),
			Height:  fmt.Sprintf("%.0fpx", s.Height),
			Theme:   r.theme,
		}),
		charts.WithTitleOpts(opts.Title{Title: r.title, Subtitle: r.subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries(r.series, items)

	if err := bar.Render(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render echarts page")
	}
	return nil
}

func binLabel(b float64, isTime bool) string {
	if isTime {
		return scale.FromMillis(b).Format("2006-01-02 15:04")
	}
	return strconv.FormatFloat(b, 'g', -1, 64)
}
