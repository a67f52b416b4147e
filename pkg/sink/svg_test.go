package sink

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/scene"
)

var sample = []chart.Point{{Bin: 0, Value: 1}, {Bin: 1, Value: 5}, {Bin: 2, Value: 2}}

func renderedSurface(t *testing.T, opts ...chart.Option) (*chart.Chart, *scene.Surface) {
	t.Helper()
	c, err := chart.New(chart.Config{Target: "sales"}, opts...)
	if err != nil {
		t.Fatalf("chart.New() error: %v", err)
	}
	if err := c.Render(sample); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return c, c.Surface()
}

func TestRenderSVGWellFormed(t *testing.T) {
	_, s := renderedSurface(t)
	svg := RenderSVG(s, WithInteraction(), WithTitle("A & B"))

	dec := xml.NewDecoder(strings.NewReader(string(svg)))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("invalid XML: %v\n%s", err, svg)
		}
	}
}

func TestRenderSVGContent(t *testing.T) {
	_, s := renderedSurface(t)
	out := string(RenderSVG(s, WithTitle("A & B")))

	checks := []string{
		`id="sales"`,
		`viewBox="0 0 400 200"`,
		`<title>A &amp; B</title>`,
		`transform="translate(60,15)"`,
		`class="x axis" transform="translate(0,155)"`,
		`class="y axis" transform="translate(-5,0)"`,
		`<rect class="bar" data-bin="1" data-value="5" x="170" y="0" width="100.333" height="150" rx="50.167" ry="50.167"/>`,
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if got := strings.Count(out, "<rect "); got != 9 {
		t.Errorf("rect count = %d, want 9 (3 layers x 3 points)", got)
	}
	if strings.Contains(out, "<script") {
		t.Error("SVG has a script without WithInteraction")
	}
	if strings.Contains(out, "<animate") {
		t.Error("Render without animation produced <animate> elements")
	}
}

func TestRenderSVGInteraction(t *testing.T) {
	_, s := renderedSurface(t)
	out := string(RenderSVG(s, WithInteraction()))

	for _, want := range []string{`class="pointer-state"`, `"bins":[0,1,2]`, `barchart:mouseover`, `barchart:mouseout`} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}

	// Overlays leave gaps between columns, so the listeners belong to the
	// svg element, backed by a hit rect the size of the whole surface.
	for _, want := range []string{`svg.addEventListener('mousemove'`, `svg.addEventListener('mouseleave'`} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing surface listener %q", want)
		}
	}
	if strings.Contains(out, `querySelectorAll('.overlay')`) {
		t.Error("listeners should not be bound per overlay")
	}
	hit := fmt.Sprintf(`<rect class="pointer-surface" x="0" y="0" width="%s" height="%s"`, num(s.Width), num(s.Height))
	hitAt, plotAt := strings.Index(out, hit), strings.Index(out, `class="plot"`)
	if hitAt < 0 || hitAt > plotAt {
		t.Errorf("pointer surface rect missing or drawn above the plot (at %d, plot at %d)", hitAt, plotAt)
	}

	if strings.Contains(string(RenderSVG(s)), "pointer-surface") {
		t.Error("pointer surface should only be written with interaction")
	}
}

func TestRenderSVGAnimation(t *testing.T) {
	c, _ := renderedSurface(t, chart.WithEase("quad-in"))
	if err := c.Update([]chart.Point{{Bin: 0, Value: 2}, {Bin: 1, Value: 5}, {Bin: 2, Value: 2}, {Bin: 3, Value: 4}}); err != nil {
		t.Fatal(err)
	}
	s := c.Surface()

	out := string(RenderSVG(s, WithKeyframes(4)))
	if !strings.Contains(out, `<animate attributeName="height" dur="250ms"`) {
		t.Error("missing height animation")
	}
	if !strings.Contains(out, `keyTimes="0;0.25;0.5;0.75;1"`) {
		t.Error("missing sampled keyTimes")
	}
	if !strings.Contains(out, `<animate attributeName="opacity"`) {
		t.Error("entering ticks should fade in")
	}

	still := string(RenderSVG(s, WithoutAnimation()))
	if strings.Contains(still, "<animate") {
		t.Error("WithoutAnimation still wrote animations")
	}
}

func TestSVGValues(t *testing.T) {
	tr, err := scene.NewTransition(1000, "quad-in")
	if err != nil {
		t.Fatal(err)
	}
	r := svgRenderer{keyframes: 4}
	if got := r.values(tr, 0, 16); got != "0;1;4;9;16" {
		t.Errorf("values() = %q, want 0;1;4;9;16", got)
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{
		0:         "0",
		-0.0001:   "0",
		1:         "1",
		1.5:       "1.5",
		100.33333: "100.333",
		-2.25:     "-2.25",
	}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestClampRect(t *testing.T) {
	got := clampRect(scene.Rect{X: 1, Y: 150, W: -2, H: -20})
	want := scene.Rect{X: 1, Y: 130, W: 0, H: 20}
	if got != want {
		t.Errorf("clampRect() = %+v, want %+v", got, want)
	}
}
