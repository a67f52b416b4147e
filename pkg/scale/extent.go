package scale

import "gonum.org/v1/gonum/floats"

// Extent returns the minimum and maximum of values.
// ok is false when values is empty.
func Extent(values []float64) (lo, hi float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	return floats.Min(values), floats.Max(values), true
}
