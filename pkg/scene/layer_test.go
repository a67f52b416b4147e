package scene

import (
	"testing"
	"time"
)

func bar(key string, r Rect) Shape {
	return Shape{Key: key, Rect: r, Opacity: 1}
}

func TestLayerApplyWithoutTransition(t *testing.T) {
	l := &Layer{Name: "bar"}
	res := l.Apply([]Shape{bar("0", Rect{0, 10, 5, 90}), bar("1", Rect{10, 20, 5, 80})}, nil)

	if len(res.Enter) != 2 {
		t.Fatalf("Enter = %v, want 2 keys", res.Enter)
	}
	for _, s := range l.Shapes {
		if !s.Entered {
			t.Errorf("shape %s: Entered = false, want true", s.Key)
		}
		if s.From != nil {
			t.Errorf("shape %s: From = %v, want nil", s.Key, s.From)
		}
		if s.Class != "bar" {
			t.Errorf("shape %s: Class = %q, want layer name", s.Key, s.Class)
		}
	}

	res = l.Apply([]Shape{bar("1", Rect{0, 30, 5, 70})}, nil)
	if len(res.Exit) != 1 || res.Exit[0] != "0" {
		t.Errorf("Exit = %v, want [0]", res.Exit)
	}
	if len(l.Shapes) != 1 {
		t.Fatalf("len(Shapes) = %d, want 1", len(l.Shapes))
	}
	if s := l.Shapes[0]; s.Entered || s.From != nil || s.Rect.Y != 30 {
		t.Errorf("retained shape = %+v, want updated in place", s)
	}
}

func TestLayerApplyWithTransition(t *testing.T) {
	tr, err := NewTransition(250*time.Millisecond, "cubic-in-out")
	if err != nil {
		t.Fatal(err)
	}

	l := &Layer{Name: "bar"}
	l.Apply([]Shape{bar("0", Rect{0, 10, 5, 90})}, nil)

	entering := bar("1", Rect{10, 40, 5, 60})
	entering.From = &Rect{10, 100, 5, 0}
	l.Apply([]Shape{bar("0", Rect{0, 50, 5, 50}), entering}, tr)

	if l.Transition != tr {
		t.Error("layer transition not recorded")
	}

	s0, _ := l.Shape("0")
	if s0.From == nil || *s0.From != (Rect{0, 10, 5, 90}) {
		t.Errorf("retained From = %v, want previous geometry", s0.From)
	}
	if s0.Entered {
		t.Error("retained shape marked as entered")
	}

	s1, _ := l.Shape("1")
	if !s1.Entered || s1.From == nil || s1.From.H != 0 {
		t.Errorf("entering shape = %+v, want baseline From", s1)
	}

	// Re-applying identical geometry leaves nothing to animate.
	l.Apply([]Shape{bar("0", Rect{0, 50, 5, 50}), bar("1", Rect{10, 40, 5, 60})}, tr)
	for _, s := range l.Shapes {
		if s.From != nil {
			t.Errorf("shape %s: From = %v, want nil for unchanged geometry", s.Key, s.From)
		}
	}
}

func TestLayerApplyDropsEnterFromWithoutTransition(t *testing.T) {
	l := &Layer{Name: "bar"}
	s := bar("0", Rect{0, 10, 5, 90})
	s.From = &Rect{0, 100, 5, 0}
	l.Apply([]Shape{s}, nil)
	if l.Shapes[0].From != nil {
		t.Errorf("From = %v, want nil without transition", l.Shapes[0].From)
	}
}

func TestAxisApply(t *testing.T) {
	tr, _ := NewTransition(time.Second, "")
	a := &Axis{Name: "x", Orient: Bottom}
	a.Apply([]Tick{{Value: 0, Pos: 0}, {Value: 1, Pos: 50}}, nil)

	res := a.Apply([]Tick{{Value: 1, Pos: 25}, {Value: 2, Pos: 50}}, tr)
	if len(res.Exit) != 1 || len(res.Enter) != 1 || len(res.Update) != 1 {
		t.Fatalf("join = %+v, want one of each", res)
	}
	if a.Ticks[0].From == nil || *a.Ticks[0].From != 50 {
		t.Errorf("retained tick From = %v, want 50", a.Ticks[0].From)
	}
	if !a.Ticks[1].Entered {
		t.Error("new tick not marked entered")
	}
}

func TestSurfaceClone(t *testing.T) {
	s := NewSurface("chart", 400, 200, 60, 15)
	l := s.Layer("bar")
	from := Rect{0, 0, 1, 1}
	l.Shapes = []Shape{{Key: "0", From: &from}}
	s.AddAxis(&Axis{Name: "x", Ticks: []Tick{{Value: 1}}})

	c := s.Clone()
	l.Shapes[0].Rect.X = 99
	l.Shapes[0].From.X = 99
	s.Axes[0].Ticks[0].Value = 7

	cl := c.Layer("bar")
	if cl.Shapes[0].Rect.X != 0 || cl.Shapes[0].From.X != 0 {
		t.Error("clone shares shape storage with original")
	}
	if ax, _ := c.Axis("x"); ax.Ticks[0].Value != 1 {
		t.Error("clone shares tick storage with original")
	}
	if s.Layer("bar") != l {
		t.Error("Layer() should return the existing layer")
	}
	if len(s.Layers) != 1 {
		t.Errorf("len(Layers) = %d, want 1", len(s.Layers))
	}
}
