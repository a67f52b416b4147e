package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/dataset"
)

func press(t *testing.T, m exploreModel, keys ...tea.KeyMsg) exploreModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(exploreModel)
	}
	return m
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyOut   = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")}
)

func testExploreModel(t *testing.T) exploreModel {
	t.Helper()
	ds := &dataset.Dataset{Name: "sales", Points: []chart.Point{{Bin: 1, Value: 2}, {Bin: 2, Value: 4}, {Bin: 3, Value: 1}}}
	m, err := newExploreModel(ds, chart.Config{})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestExplorePointer(t *testing.T) {
	m := testExploreModel(t)
	if m.hover.point != nil {
		t.Fatal("no point should be hovered initially")
	}

	m = press(t, m, keyLeft)
	if m.hover.point != nil || m.hover.events != 1 {
		t.Errorf("pointer at the left edge should fire only mouseout, got %+v after %d events", m.hover.point, m.hover.events)
	}

	m = press(t, m, keyRight)
	if m.hover.point == nil || m.hover.point.Bin != 1 {
		t.Fatalf("after one step hovered = %+v, want bin 1", m.hover.point)
	}

	m = press(t, m, keyRight)
	if m.hover.point == nil || m.hover.point.Bin != 2 {
		t.Fatalf("after two steps hovered = %+v, want bin 2", m.hover.point)
	}

	m = press(t, m, keyRight, keyRight, keyRight)
	if m.px != m.right {
		t.Errorf("pointer = %v, want clamped to %v", m.px, m.right)
	}

	m = press(t, m, keyOut)
	if m.hover.point != nil {
		t.Error("mouseout should clear the hovered point")
	}
}

func TestExplorePointerBackToEdgeClearsHover(t *testing.T) {
	m := press(t, testExploreModel(t), keyRight)
	if m.hover.point == nil || m.hover.point.Bin != 1 {
		t.Fatalf("hovered = %+v, want bin 1", m.hover.point)
	}

	m = press(t, m, keyLeft)
	if m.hover.point != nil {
		t.Errorf("moving back to the left edge should clear the hover, still %+v", m.hover.point)
	}
	if strings.Contains(m.View(), "bin 1: 2") {
		t.Error("status line still shows the previous point")
	}
}

func TestExploreView(t *testing.T) {
	m := press(t, testExploreModel(t), keyRight)
	view := m.View()
	for _, want := range []string{"sales", "bin 1: 2", "█"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestExploreQuit(t *testing.T) {
	_, cmd := testExploreModel(t).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestExploreTooSmall(t *testing.T) {
	ds := &dataset.Dataset{Name: "big", Points: make([]chart.Point, 100)}
	for i := range ds.Points {
		ds.Points[i] = chart.Point{Bin: float64(i), Value: 1}
	}
	if _, err := newExploreModel(ds, chart.Config{}); err == nil || !strings.Contains(err.Error(), chart.ErrTooSmall) {
		t.Errorf("error = %v, want %q", err, chart.ErrTooSmall)
	}
}
