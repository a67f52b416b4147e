package chart

import (
	"sort"

	"github.com/matzehuels/barchart/pkg/scale"
)

// Nearest inverts the pointer offset px (relative to the drawable area)
// through x and returns the data point whose bin precedes the inverted
// value. data must be in ascending bin order. ok is false when no point
// precedes it.
func Nearest(data []Point, x scale.Continuous, px float64) (p Point, ok bool) {
	v := x.Invert(px)
	i := sort.Search(len(data), func(i int) bool { return data[i].Bin >= v })
	if i == 0 {
		return Point{}, false
	}
	return data[i-1], true
}

// MouseOver handles a pointer at horizontal surface coordinate px. It
// resolves the nearest point against a snapshot of the current data and
// scale and passes it to the mouseover callback.
func (c *Chart) MouseOver(px float64) (Point, bool) {
	c.mu.Lock()
	data := c.data
	x := c.x.Clone()
	left := c.cfg.Margin.Left
	cb := c.cfg.Mouseover
	c.mu.Unlock()

	p, ok := Nearest(data, x, px-left)
	if ok && cb != nil {
		cb(p)
	}
	return p, ok
}

// MouseOut invokes the mouseout callback.
func (c *Chart) MouseOut() {
	if cb := c.cfg.Mouseout; cb != nil {
		cb()
	}
}
