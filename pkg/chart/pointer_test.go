package chart

import (
	"testing"

	"github.com/matzehuels/barchart/pkg/scale"
)

func TestNearest(t *testing.T) {
	x := scale.NewLinear()
	x.SetDomain(0, 2)
	x.SetRange(0, 340)

	tests := []struct {
		name   string
		px     float64
		want   float64
		wantOK bool
	}{
		{"between 0 and 1", 85, 0, true},
		{"between 1 and 2", 255, 1, true},
		{"exactly on bin 1", 170, 0, true},
		{"past last bin", 400, 2, true},
		{"on first bin", 0, 0, false},
		{"before first bin", -10, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Nearest(sample, x, tt.px)
			if ok != tt.wantOK {
				t.Fatalf("Nearest(%v) ok = %v, want %v", tt.px, ok, tt.wantOK)
			}
			if ok && p.Bin != tt.want {
				t.Errorf("Nearest(%v) = bin %v, want %v", tt.px, p.Bin, tt.want)
			}
		})
	}

	if _, ok := Nearest(nil, x, 100); ok {
		t.Error("Nearest on empty data should report !ok")
	}
}

func TestMouseOverCallbacks(t *testing.T) {
	var got []Point
	outs := 0
	c := mustNew(t,
		WithMouseOver(func(p Point) { got = append(got, p) }),
		WithMouseOut(func() { outs++ }),
	)
	if err := c.Render(sample); err != nil {
		t.Fatal(err)
	}

	// Surface x 145 is 85 inside the 60px left margin.
	p, ok := c.MouseOver(145)
	if !ok || p.Bin != 0 {
		t.Errorf("MouseOver(145) = %+v, %v; want bin 0", p, ok)
	}
	if _, ok := c.MouseOver(60); ok {
		t.Error("MouseOver at the left edge should find nothing")
	}
	if len(got) != 1 || got[0] != sample[0] {
		t.Errorf("mouseover calls = %v, want one call with %v", got, sample[0])
	}

	c.MouseOut()
	if outs != 1 {
		t.Errorf("mouseout calls = %d, want 1", outs)
	}
}

func TestMouseOverWithoutCallbacks(t *testing.T) {
	c := mustNew(t)
	if err := c.Render(sample); err != nil {
		t.Fatal(err)
	}
	c.MouseOver(300)
	c.MouseOut()
}
