package scene

import (
	"time"

	"github.com/matzehuels/barchart/pkg/ease"
)

// Transition describes how changes applied to a layer or axis are animated.
type Transition struct {
	Duration time.Duration `json:"duration"`
	EaseName string        `json:"ease"`
	Ease     ease.Func     `json:"-"`
}

// NewTransition resolves the named easing function.
func NewTransition(d time.Duration, easeName string) (*Transition, error) {
	f, err := ease.Get(easeName)
	if err != nil {
		return nil, err
	}
	if easeName == "" {
		easeName = ease.Default
	}
	return &Transition{Duration: d, EaseName: easeName, Ease: f}, nil
}

// At returns eased progress for normalized time t.
func (tr *Transition) At(t float64) float64 {
	if tr == nil || tr.Ease == nil {
		return clamp01(t)
	}
	return tr.Ease(clamp01(t))
}

// Sample returns steps+1 eased progress values for evenly spaced times in
// [0, 1]. The first value is always 0 and the last 1.
func (tr *Transition) Sample(steps int) []float64 {
	if steps < 1 {
		steps = 1
	}
	out := make([]float64, steps+1)
	for i := range out {
		out[i] = tr.At(float64(i) / float64(steps))
	}
	out[0], out[steps] = 0, 1
	return out
}

// Interpolate returns the rectangle at progress t between from and to.
// Progress outside [0, 1] is allowed so overshooting easings work.
func Interpolate(from, to Rect, t float64) Rect {
	return Rect{
		X: lerp(from.X, to.X, t),
		Y: lerp(from.Y, to.Y, t),
		W: lerp(from.W, to.W, t),
		H: lerp(from.H, to.H, t),
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
