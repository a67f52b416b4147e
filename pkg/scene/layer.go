package scene

// Rect is an axis-aligned rectangle in drawable-area coordinates.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Shape is a keyed rectangle bound to one datum.
type Shape struct {
	Key     string  `json:"key"`
	Class   string  `json:"class"`
	Bin     float64 `json:"bin"`
	Value   float64 `json:"value"`
	Rect    Rect    `json:"rect"`
	Radius  float64 `json:"radius,omitempty"`
	Fill    string  `json:"fill,omitempty"`
	Opacity float64 `json:"opacity"`

	// From is the geometry the shape animates from. It is nil when the
	// last change was applied without a transition or did not move it.
	From *Rect `json:"from,omitempty"`
	// Entered reports whether the shape was added by the last Apply.
	Entered bool `json:"entered,omitempty"`
}

// Layer is an ordered, keyed collection of shapes sharing a class.
type Layer struct {
	Name       string      `json:"name"`
	Shapes     []Shape     `json:"shapes"`
	Transition *Transition `json:"transition,omitempty"`
}

// Keys returns the keys of the layer's shapes in draw order.
func (l *Layer) Keys() []string {
	keys := make([]string, len(l.Shapes))
	for i, s := range l.Shapes {
		keys[i] = s.Key
	}
	return keys
}

// Shape returns the shape with the given key.
func (l *Layer) Shape(key string) (Shape, bool) {
	for _, s := range l.Shapes {
		if s.Key == key {
			return s, true
		}
	}
	return Shape{}, false
}

// Apply joins next against the current shapes by key and replaces the
// layer's contents with next. Entering shapes keep any From geometry the
// caller set (e.g. a zero-height baseline) only when tr is non-nil; retained
// shapes record their previous geometry in From when tr is non-nil and the
// geometry changed. Exiting shapes are removed.
func (l *Layer) Apply(next []Shape, tr *Transition) JoinResult {
	prev := make(map[string]Shape, len(l.Shapes))
	for _, s := range l.Shapes {
		prev[s.Key] = s
	}

	keys := make([]string, len(next))
	for i, s := range next {
		keys[i] = s.Key
	}
	res := Join(l.Keys(), keys)

	shapes := make([]Shape, 0, len(next))
	seen := make(map[string]struct{}, len(next))
	for _, s := range next {
		if _, dup := seen[s.Key]; dup {
			continue
		}
		seen[s.Key] = struct{}{}

		if s.Class == "" {
			s.Class = l.Name
		}
		old, retained := prev[s.Key]
		s.Entered = !retained
		switch {
		case tr == nil:
			s.From = nil
		case retained && old.Rect != s.Rect:
			from := old.Rect
			s.From = &from
		case retained:
			s.From = nil
		case s.From != nil:
			from := *s.From
			s.From = &from
		}
		shapes = append(shapes, s)
	}

	l.Shapes = shapes
	l.Transition = tr
	return res
}

func (l *Layer) clone() *Layer {
	c := &Layer{Name: l.Name, Transition: l.Transition}
	c.Shapes = make([]Shape, len(l.Shapes))
	for i, s := range l.Shapes {
		if s.From != nil {
			from := *s.From
			s.From = &from
		}
		c.Shapes[i] = s
	}
	return c
}
