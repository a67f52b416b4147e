package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/dataset"
	"github.com/matzehuels/barchart/pkg/pipeline"
	"github.com/matzehuels/barchart/pkg/scale"
)

var (
	barStyle     = lipgloss.NewStyle().Foreground(colorGray)
	barHotStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	labelStyle   = lipgloss.NewStyle().Foreground(colorDim).Width(12).Align(lipgloss.Right)
	pointerStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// hoverState is written by the chart callbacks and read by the view.
type hoverState struct {
	point  *chart.Point
	events int
}

func (h *hoverState) over(p chart.Point) {
	h.point = &p
	h.events++
}

func (h *hoverState) out() {
	h.point = nil
	h.events++
}

// exploreModel moves a pointer across the chart surface and shows the
// point the chart resolves for it.
type exploreModel struct {
	chart  *chart.Chart
	name   string
	isTime bool
	hover  *hoverState

	px      float64 // pointer position in surface coordinates
	left    float64
	right   float64
	step    float64
	barCols int
}

func newExploreModel(ds *dataset.Dataset, cfg chart.Config) (exploreModel, error) {
	hover := &hoverState{}
	cfg.Mouseover = hover.over
	cfg.Mouseout = hover.out

	c, err := chart.New(cfg)
	if err != nil {
		return exploreModel{}, err
	}
	if err := c.Render(ds.Points); err != nil {
		return exploreModel{}, err
	}

	eff := c.Config()
	w, _ := c.Dimensions()
	m := exploreModel{
		chart:   c,
		name:    ds.Name,
		isTime:  eff.TimeAxis,
		hover:   hover,
		left:    eff.Margin.Left,
		right:   eff.Margin.Left + w,
		barCols: 40,
	}
	m.step = w / 40
	if n := len(ds.Points); n > 0 {
		m.step = w / float64(n)
	}
	m.px = m.left
	return m, nil
}

func (m exploreModel) Init() tea.Cmd { return nil }

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.pointTo(math.Max(m.left, m.px-m.step))
		case "right", "l":
			m.pointTo(math.Min(m.right, m.px+m.step))
		case "home", "g":
			m.pointTo(m.left)
		case "end", "G":
			m.pointTo(m.right)
		case "o":
			m.chart.MouseOut()
		}
	case tea.WindowSizeMsg:
		m.barCols = max(10, msg.Width-24)
	}
	return m, nil
}

// pointTo moves the pointer to px. With no point before px the hover is
// cleared through the mouseout callback.
func (m *exploreModel) pointTo(px float64) {
	m.px = px
	if _, ok := m.chart.MouseOver(px); !ok {
		m.chart.MouseOut()
	}
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("barchart · " + m.name))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ move pointer  o mouseout  q quit"))
	b.WriteString("\n\n")

	data := m.chart.Data()
	lo, hi := m.chart.YDomain()
	for _, p := range data {
		n := 0
		if hi > lo {
			n = int(math.Round((p.Value - lo) / (hi - lo) * float64(m.barCols)))
		}
		n = max(0, min(n, m.barCols))
		style := barStyle
		if m.hover.point != nil && *m.hover.point == p {
			style = barHotStyle
		}
		b.WriteString(labelStyle.Render(m.binLabel(p.Bin)))
		b.WriteString(" ")
		b.WriteString(style.Render(strings.Repeat("█", n)))
		b.WriteString(" ")
		b.WriteString(StyleDim.Render(formatValue(p.Value)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(pointerStyle.Render(fmt.Sprintf("pointer x=%s", scale.FormatNumber(m.px, 1))))
	b.WriteString("  ")
	b.WriteString(m.status())
	b.WriteString("\n")
	return b.String()
}

func (m exploreModel) status() string {
	if m.hover.point == nil {
		return StyleDim.Render("no point")
	}
	p := *m.hover.point
	return StyleValue.Render(fmt.Sprintf("bin %s: %s", m.binLabel(p.Bin), formatValue(p.Value)))
}

func (m exploreModel) binLabel(bin float64) string {
	if m.isTime {
		return scale.FormatTime(bin)
	}
	return formatValue(bin)
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return scale.FormatNumber(v, 0)
	}
	return scale.FormatNumber(v, 2)
}

func (c *CLI) exploreCommand() *cobra.Command {
	var flags chartFlags
	cmd := &cobra.Command{
		Use:   "explore <data>",
		Short: "Explore a chart in the terminal with a movable pointer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(cmd)
			if err != nil {
				return err
			}
			return c.runExplore(cmd.Context(), args[0], cfg)
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) runExplore(ctx context.Context, input string, cfg chart.Config) error {
	runner, err := c.newRunner(false)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	ds, _, _, err := runner.Load(ctx, pipeline.Options{Source: input})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %s", ds.Name))

	m, err := newExploreModel(ds, pipeline.ChartConfig(ds, pipeline.Options{Config: cfg}))
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}
