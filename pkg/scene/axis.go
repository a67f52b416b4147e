package scene

// Orient is the side of the drawable area an axis is attached to.
type Orient string

const (
	Bottom Orient = "bottom"
	Left   Orient = "left"
)

// Tick is a labelled axis tick. Pos is measured along the axis in pixels.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Pos   float64 `json:"pos"`

	// From is the previous position of a retained tick under a transition.
	From *float64 `json:"from,omitempty"`
	// Entered reports whether the tick was added by the last Apply.
	Entered bool `json:"entered,omitempty"`
}

// Axis is a rendered axis: a domain path spanning Range plus ticks.
type Axis struct {
	Name        string      `json:"name"`
	Orient      Orient      `json:"orient"`
	Ticks       []Tick      `json:"ticks"`
	TickSize    float64     `json:"tick_size"`
	TickPadding float64     `json:"tick_padding"`
	Range       [2]float64  `json:"range"`
	Offset      float64     `json:"offset"`
	Transition  *Transition `json:"transition,omitempty"`
}

// Apply joins next against the current ticks by value. Retained ticks
// record their previous position when tr is non-nil.
func (a *Axis) Apply(next []Tick, tr *Transition) JoinResult {
	prev := make(map[string]Tick, len(a.Ticks))
	prevKeys := make([]string, len(a.Ticks))
	for i, t := range a.Ticks {
		k := KeyOf(t.Value)
		prev[k] = t
		prevKeys[i] = k
	}
	nextKeys := make([]string, len(next))
	for i, t := range next {
		nextKeys[i] = KeyOf(t.Value)
	}
	res := Join(prevKeys, nextKeys)

	ticks := make([]Tick, 0, len(next))
	seen := make(map[string]struct{}, len(next))
	for i, t := range next {
		k := nextKeys[i]
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		old, retained := prev[k]
		t.Entered = !retained
		t.From = nil
		if tr != nil && retained && old.Pos != t.Pos {
			from := old.Pos
			t.From = &from
		}
		ticks = append(ticks, t)
	}
	a.Ticks = ticks
	a.Transition = tr
	return res
}

func (a *Axis) clone() *Axis {
	c := *a
	c.Ticks = make([]Tick, len(a.Ticks))
	for i, t := range a.Ticks {
		if t.From != nil {
			from := *t.From
			t.From = &from
		}
		c.Ticks[i] = t
	}
	return &c
}
