package scale

import "math"

// DefaultNiceCount is the tick count Nice uses when given a non-positive count.
const DefaultNiceCount = 10

// Continuous is a scale with a continuous numeric domain and range.
type Continuous interface {
	Domain() (d0, d1 float64)
	SetDomain(d0, d1 float64)
	Range() (r0, r1 float64)
	SetRange(r0, r1 float64)
	// Map returns the range value for domain value v.
	Map(v float64) float64
	// Invert returns the domain value for range value r.
	Invert(r float64) float64
	// Nice extends the domain to round bounds for roughly count ticks.
	Nice(count int)
	// Ticks returns roughly count representative domain values.
	Ticks(count int) []float64
	// TickFormat returns a label formatter suited to Ticks(count).
	TickFormat(count int) func(float64) string
	// Clone returns an independent copy of the scale.
	Clone() Continuous
}

// Linear is a continuous scale with linear interpolation.
// The zero value has domain and range [0, 0]; use NewLinear for [0, 1].
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear returns a linear scale with unit domain and range.
func NewLinear() *Linear {
	return &Linear{d1: 1, r1: 1}
}

func (s *Linear) Domain() (float64, float64) { return s.d0, s.d1 }
func (s *Linear) SetDomain(d0, d1 float64)   { s.d0, s.d1 = d0, d1 }
func (s *Linear) Range() (float64, float64)  { return s.r0, s.r1 }
func (s *Linear) SetRange(r0, r1 float64)    { s.r0, s.r1 = r0, r1 }
func (s *Linear) Clone() Continuous          { c := *s; return &c }
func (s *Linear) Ticks(count int) []float64  { return Ticks(s.d0, s.d1, count) }

// Map returns the range value for v. A degenerate domain maps every value
// onto the middle of the range.
func (s *Linear) Map(v float64) float64 {
	return interpolate(s.r0, s.r1, normalize(s.d0, s.d1, v))
}

// Invert returns the domain value for r. A degenerate range inverts to the
// middle of the domain.
func (s *Linear) Invert(r float64) float64 {
	return interpolate(s.d0, s.d1, normalize(s.r0, s.r1, r))
}

// Nice extends the domain so that both ends are multiples of the tick step
// for count ticks (DefaultNiceCount when count <= 0).
func (s *Linear) Nice(count int) {
	if count <= 0 {
		count = DefaultNiceCount
	}
	start, stop := s.d0, s.d1
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}
	start, stop = niceBounds(start, stop, count)
	if reversed {
		start, stop = stop, start
	}
	s.d0, s.d1 = start, stop
}

// TickFormat returns a formatter with just enough decimals to tell
// Ticks(count) apart, using comma thousands separators.
func (s *Linear) TickFormat(count int) func(float64) string {
	prec := precisionFixed(TickStep(s.d0, s.d1, count))
	return func(v float64) string { return FormatNumber(v, prec) }
}

func normalize(a, b, v float64) float64 {
	if b-a == 0 || math.IsNaN(b-a) {
		return 0.5
	}
	return (v - a) / (b - a)
}

func interpolate(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

var _ Continuous = (*Linear)(nil)
