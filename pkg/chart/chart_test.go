package chart

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/scene"
)

var sample = []Point{{Bin: 0, Value: 1}, {Bin: 1, Value: 5}, {Bin: 2, Value: 2}}

func mustNew(t *testing.T, opts ...Option) *Chart {
	t.Helper()
	c, err := New(Config{}, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}

func layer(t *testing.T, s *scene.Surface, name string) *scene.Layer {
	t.Helper()
	for _, l := range s.Layers {
		if l.Name == name {
			return l
		}
	}
	t.Fatalf("surface has no %s layer", name)
	return nil
}

func TestDimensions(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		wantW float64
		wantH float64
	}{
		{"defaults", nil, 340, 150},
		{"custom margin", []Option{WithSize(500, 300), WithMargin(Margin{Top: 10, Right: 20, Bottom: 30, Left: 40})}, 440, 260},
		{"no axis", []Option{WithMargin(Margin{Top: 10, Right: 20, Bottom: 30, Left: 40}), WithoutAxis()}, 400, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustNew(t, tt.opts...)
			if w, h := c.Dimensions(); w != tt.wantW || h != tt.wantH {
				t.Errorf("Dimensions() = (%v, %v), want (%v, %v)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestNewSurface(t *testing.T) {
	c := mustNew(t, WithTarget("sales"))
	s := c.Surface()

	if c.ID() != "sales" || s.ID != "sales" {
		t.Errorf("ID = %q/%q, want sales", c.ID(), s.ID)
	}
	if s.Width != 400 || s.Height != 200 || s.OffsetX != 60 || s.OffsetY != 15 {
		t.Errorf("surface geometry = %vx%v+%v+%v", s.Width, s.Height, s.OffsetX, s.OffsetY)
	}
	if len(s.Axes) != 2 {
		t.Fatalf("len(Axes) = %d, want 2 attached at init", len(s.Axes))
	}
	if s.Axes[0].TickPadding != TickPadding || s.Axes[0].TickSize != 10 {
		t.Errorf("axis ticks = size %v padding %v", s.Axes[0].TickSize, s.Axes[0].TickPadding)
	}
	names := []string{s.Layers[0].Name, s.Layers[1].Name, s.Layers[2].Name}
	if names[0] != LayerColumn || names[1] != LayerBar || names[2] != LayerOverlay {
		t.Errorf("layer order = %v", names)
	}

	noAxis := mustNew(t, WithoutAxis()).Surface()
	if len(noAxis.Axes) != 0 {
		t.Errorf("len(Axes) = %d without axis, want 0", len(noAxis.Axes))
	}
}

func TestBarWidth(t *testing.T) {
	c := mustNew(t)

	bw, err := c.BarWidth(24)
	if err != nil {
		t.Fatalf("BarWidth(24) error: %v", err)
	}
	if want := 340.0/24 - 13; math.Abs(bw-want) > 1e-9 {
		t.Errorf("BarWidth(24) = %v, want %v", bw, want)
	}

	_, err = c.BarWidth(25)
	if !errors.Is(err, errors.ErrCodeChartTooSmall) {
		t.Fatalf("BarWidth(25) error = %v, want CHART_TOO_SMALL", err)
	}
	if got := errors.UserMessage(err); got != ErrTooSmall {
		t.Errorf("message = %q, want %q", got, ErrTooSmall)
	}
}

func TestRenderTooSmall(t *testing.T) {
	c := mustNew(t)
	if err := c.Render(sample); err != nil {
		t.Fatal(err)
	}

	data := make([]Point, 25)
	for i := range data {
		data[i] = Point{Bin: float64(i), Value: 1}
	}
	err := c.Render(data)
	if !errors.Is(err, errors.ErrCodeChartTooSmall) {
		t.Fatalf("Render() error = %v, want CHART_TOO_SMALL", err)
	}
	if got := len(c.Data()); got != len(sample) {
		t.Errorf("failed render replaced data: len = %d, want %d", got, len(sample))
	}
}

func TestRenderDomains(t *testing.T) {
	c := mustNew(t)
	if err := c.Render(sample); err != nil {
		t.Fatal(err)
	}
	if lo, hi := c.YDomain(); lo != 1 || hi != 5 {
		t.Errorf("y domain = [%v, %v], want [1, 5]", lo, hi)
	}
	if lo, hi := c.XScale().Domain(); lo != 0 || hi != 2 {
		t.Errorf("x domain = [%v, %v], want [0, 2]", lo, hi)
	}
}

func TestRenderDomainOverrides(t *testing.T) {
	c := mustNew(t, WithXDomain(-1, 10), WithYDomain(0, 3))
	if err := c.Render(sample); err != nil {
		t.Fatal(err)
	}
	if lo, hi := c.XScale().Domain(); lo != -1 || hi != 10 {
		t.Errorf("x domain = [%v, %v], want [-1, 10]", lo, hi)
	}
	if lo, hi := c.YDomain(); lo != 0 || hi != 3 {
		t.Errorf("y domain = [%v, %v], want [0, 3]", lo, hi)
	}
}

func TestRenderNice(t *testing.T) {
	c := mustNew(t, WithNice())
	if err := c.Render([]Point{{Bin: 0.3, Value: 1.1}, {Bin: 9.6, Value: 10.9}}); err != nil {
		t.Fatal(err)
	}
	if lo, hi := c.YDomain(); lo != 1 || hi != 11 {
		t.Errorf("y domain = [%v, %v], want [1, 11]", lo, hi)
	}
	if lo, hi := c.XScale().Domain(); lo != 0 || hi != 10 {
		t.Errorf("x domain = [%v, %v], want [0, 10]", lo, hi)
	}
}

func TestRenderShapes(t *testing.T) {
	c := mustNew(t)
	if err := c.Render(sample); err != nil {
		t.Fatal(err)
	}
	s := c.Surface()
	bw := 340.0/3 - 13

	bars := layer(t, s, LayerBar)
	if len(bars.Shapes) != 3 {
		t.Fatalf("len(bars) = %d, want 3", len(bars.Shapes))
	}
	want := []scene.Rect{
		{X: 0, Y: 150, W: bw, H: 0},
		{X: 170, Y: 0, W: bw, H: 150},
		{X: 340, Y: 112.5, W: bw, H: 37.5},
	}
	for i, b := range bars.Shapes {
		if b.Rect != want[i] {
			t.Errorf("bar %d rect = %+v, want %+v", i, b.Rect, want[i])
		}
		if b.Radius != bw/2 {
			t.Errorf("bar %d radius = %v, want %v", i, b.Radius, bw/2)
		}
		if b.Fill != "" {
			t.Errorf("bar %d fill = %q without color range", i, b.Fill)
		}
		if b.From != nil || b.Key != scene.KeyOf(sample[i].Bin) {
			t.Errorf("bar %d = %+v", i, b)
		}
	}

	for _, col := range layer(t, s, LayerColumn).Shapes {
		if col.Rect.Y != 0 || col.Rect.H != 150 || col.Rect.W != bw {
			t.Errorf("column %s rect = %+v", col.Key, col.Rect)
		}
	}
	for _, ov := range layer(t, s, LayerOverlay).Shapes {
		if ov.Rect.W != 340.0/3 || ov.Rect.H != 150 || ov.Opacity != 0 {
			t.Errorf("overlay %s = %+v", ov.Key, ov)
		}
	}
}

func TestRenderSquareAndColor(t *testing.T) {
	c := mustNew(t, WithType(TypeSquare), WithColorRange("rgb", "#000000", "#ffffff"))
	if err := c.Render(sample); err != nil {
		t.Fatal(err)
	}
	bars := layer(t, c.Surface(), LayerBar)
	wantFill := []string{"#000000", "#ffffff", "#404040"}
	for i, b := range bars.Shapes {
		if b.Radius != 0 {
			t.Errorf("bar %d radius = %v, want 0", i, b.Radius)
		}
		if b.Fill != wantFill[i] {
			t.Errorf("bar %d fill = %q, want %q", i, b.Fill, wantFill[i])
		}
	}
}

func TestRenderAxes(t *testing.T) {
	c := mustNew(t)
	if err := c.Render(sample); err != nil {
		t.Fatal(err)
	}
	s := c.Surface()
	y, ok := s.Axis(AxisY)
	if !ok {
		t.Fatal("no y axis")
	}
	labels := make([]string, len(y.Ticks))
	for i, tk := range y.Ticks {
		labels[i] = tk.Label
	}
	if len(labels) != 5 || labels[0] != "1" || labels[4] != "5" {
		t.Errorf("y labels = %v, want 1..5", labels)
	}
	if y.Ticks[0].Pos != 150 || y.Ticks[4].Pos != 0 {
		t.Errorf("y tick positions = %v..%v, want 150..0", y.Ticks[0].Pos, y.Ticks[4].Pos)
	}

	x, _ := s.Axis(AxisX)
	if len(x.Ticks) != 5 || x.Ticks[len(x.Ticks)-1].Pos != 340 {
		t.Errorf("x ticks = %+v", x.Ticks)
	}
	if x.Offset != 155 || y.Offset != -5 {
		t.Errorf("axis offsets = %v/%v, want 155/-5", x.Offset, y.Offset)
	}
}

func TestRenderThenUpdateIsIdempotent(t *testing.T) {
	a := mustNew(t)
	if err := a.Render(sample); err != nil {
		t.Fatal(err)
	}
	before := a.Surface()

	if err := a.Update(sample); err != nil {
		t.Fatal(err)
	}
	after := a.Surface()

	for i := range before.Layers {
		bl, al := before.Layers[i], after.Layers[i]
		if len(bl.Shapes) != len(al.Shapes) {
			t.Fatalf("layer %s: %d shapes became %d", bl.Name, len(bl.Shapes), len(al.Shapes))
		}
		for j := range bl.Shapes {
			b, u := bl.Shapes[j], al.Shapes[j]
			if b.Key != u.Key || b.Rect != u.Rect || b.Radius != u.Radius || b.Fill != u.Fill || b.Opacity != u.Opacity {
				t.Errorf("layer %s shape %d: %+v became %+v", bl.Name, j, b, u)
			}
		}
		if bl.Transition != nil {
			t.Errorf("layer %s: Render applied a transition", bl.Name)
		}
		if al.Transition == nil {
			t.Errorf("layer %s: Update did not apply a transition", al.Name)
		}
	}
}

func TestUpdateAnimatesJoin(t *testing.T) {
	c := mustNew(t, WithEase("cubic-in-out"), WithDuration(time.Second))
	if err := c.Render([]Point{{Bin: 0, Value: 1}, {Bin: 1, Value: 5}}); err != nil {
		t.Fatal(err)
	}
	if err := c.Update([]Point{{Bin: 1, Value: 2}, {Bin: 2, Value: 3}}); err != nil {
		t.Fatal(err)
	}

	bars := layer(t, c.Surface(), LayerBar)
	if bars.Transition == nil || bars.Transition.EaseName != "cubic-in-out" || bars.Transition.Duration != time.Second {
		t.Fatalf("transition = %+v", bars.Transition)
	}
	if _, ok := bars.Shape("0"); ok {
		t.Error("exiting bar 0 still present")
	}
	kept, _ := bars.Shape("1")
	if kept.Entered || kept.From == nil {
		t.Errorf("retained bar = %+v, want From set", kept)
	}
	added, _ := bars.Shape("2")
	if !added.Entered || added.From == nil || added.From.H != 0 || added.From.Y != 150 {
		t.Errorf("entering bar = %+v, want growth from baseline", added)
	}

	if err := c.Update(c.Data(), WithAnimate(false)); err != nil {
		t.Fatal(err)
	}
	if l := layer(t, c.Surface(), LayerBar); l.Transition != nil {
		t.Error("WithAnimate(false) should override Update's default")
	}
}

func TestRenderEmpty(t *testing.T) {
	c := mustNew(t)
	if err := c.Render(sample); err != nil {
		t.Fatal(err)
	}
	if err := c.Render(nil); err != nil {
		t.Fatalf("Render(nil) error: %v", err)
	}
	for _, l := range c.Surface().Layers {
		if len(l.Shapes) != 0 {
			t.Errorf("layer %s has %d shapes after empty render", l.Name, len(l.Shapes))
		}
	}
	if lo, hi := c.YDomain(); lo != 0 || hi != 1 {
		t.Errorf("y domain = [%v, %v], want [0, 1]", lo, hi)
	}
}

func TestRenderInvalidData(t *testing.T) {
	tests := []struct {
		name string
		data []Point
	}{
		{"descending", []Point{{Bin: 2, Value: 1}, {Bin: 1, Value: 1}}},
		{"duplicate", []Point{{Bin: 1, Value: 1}, {Bin: 1, Value: 2}}},
		{"nan value", []Point{{Bin: 1, Value: math.NaN()}}},
		{"inf bin", []Point{{Bin: math.Inf(1), Value: 1}}},
	}
	c := mustNew(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Render(tt.data); !errors.Is(err, errors.ErrCodeInvalidData) {
				t.Errorf("Render() error = %v, want INVALID_DATA", err)
			}
		})
	}
}

func TestTimeAxis(t *testing.T) {
	c := mustNew(t, WithTimeAxis())
	day := func(d int) float64 { return TimeBin(time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)) }
	var data []Point
	for d := 1; d <= 8; d++ {
		data = append(data, Point{Bin: day(d), Value: float64(d % 3)})
	}
	if err := c.Render(data); err != nil {
		t.Fatal(err)
	}

	x, _ := c.Surface().Axis(AxisX)
	if len(x.Ticks) == 0 {
		t.Fatal("time axis has no ticks")
	}
	if got := x.Ticks[0].Label; got != "2024" {
		t.Errorf("first label = %q, want 2024", got)
	}
	if got := x.Ticks[1].Label; got != "Jan 02" {
		t.Errorf("second label = %q, want Jan 02", got)
	}
	if got := data[1].Time(); got.Day() != 2 {
		t.Errorf("Point.Time() = %v", got)
	}
}

func TestConcurrentRenderAndPointer(t *testing.T) {
	c := mustNew(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.Update(sample)
		}()
		go func() {
			defer wg.Done()
			c.MouseOver(200)
			_ = c.Surface()
		}()
	}
	wg.Wait()
}
