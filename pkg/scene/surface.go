package scene

// Surface is the canvas a chart draws into. Width and Height are the outer
// size; shapes and axes are positioned relative to (OffsetX, OffsetY).
type Surface struct {
	ID      string   `json:"id"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	OffsetX float64  `json:"offset_x"`
	OffsetY float64  `json:"offset_y"`
	Layers  []*Layer `json:"layers"`
	Axes    []*Axis  `json:"axes,omitempty"`
	Pointer *Pointer `json:"pointer,omitempty"`
}

// Pointer is the state a pointer lookup needs: the bound data in ascending
// bin order and the horizontal scale mapping bins onto the drawable width.
type Pointer struct {
	Bins   []float64  `json:"bins"`
	Values []float64  `json:"values"`
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
	Time   bool       `json:"time,omitempty"`
}

// NewSurface returns an empty surface of the given outer size.
func NewSurface(id string, width, height, offsetX, offsetY float64) *Surface {
	return &Surface{ID: id, Width: width, Height: height, OffsetX: offsetX, OffsetY: offsetY}
}

// Layer returns the named layer, appending an empty one if absent.
// Layers draw in creation order.
func (s *Surface) Layer(name string) *Layer {
	for _, l := range s.Layers {
		if l.Name == name {
			return l
		}
	}
	l := &Layer{Name: name}
	s.Layers = append(s.Layers, l)
	return l
}

// AddAxis attaches an axis to the surface.
func (s *Surface) AddAxis(a *Axis) {
	s.Axes = append(s.Axes, a)
}

// Axis returns the axis with the given name.
func (s *Surface) Axis(name string) (*Axis, bool) {
	for _, a := range s.Axes {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the surface.
func (s *Surface) Clone() *Surface {
	if s == nil {
		return nil
	}
	c := *s
	c.Layers = make([]*Layer, len(s.Layers))
	for i, l := range s.Layers {
		c.Layers[i] = l.clone()
	}
	if s.Axes != nil {
		c.Axes = make([]*Axis, len(s.Axes))
		for i, a := range s.Axes {
			c.Axes[i] = a.clone()
		}
	}
	if s.Pointer != nil {
		p := *s.Pointer
		p.Bins = append([]float64(nil), s.Pointer.Bins...)
		p.Values = append([]float64(nil), s.Pointer.Values...)
		c.Pointer = &p
	}
	return &c
}
