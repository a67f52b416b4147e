package sink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/barchart/pkg/chart"
	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/scene"
)

func TestRenderECharts(t *testing.T) {
	_, s := renderedSurface(t, chart.WithColorRange("rgb", "#000000", "#ffffff"))

	var buf bytes.Buffer
	if err := RenderECharts(&buf, s, WithEChartsTitle("Sales", "per bin")); err != nil {
		t.Fatalf("RenderECharts() error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"echarts", "Sales", "#ffffff"} {
		if !strings.Contains(out, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestRenderEChartsUnrendered(t *testing.T) {
	s := scene.NewSurface("empty", 400, 200, 0, 0)
	err := RenderECharts(&bytes.Buffer{}, s)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RenderECharts() error = %v, want INVALID_INPUT", err)
	}
}

func TestBinLabel(t *testing.T) {
	if got := binLabel(2.5, false); got != "2.5" {
		t.Errorf("binLabel(2.5) = %q", got)
	}
	if got := binLabel(0, true); got != "1970-01-01 00:00" {
		t.Errorf("binLabel(epoch) = %q", got)
	}
}
