package chart

import (
	"math"
	"time"

	"github.com/matzehuels/barchart/pkg/errors"
	"github.com/matzehuels/barchart/pkg/scale"
)

// Point is one datum. On a time axis Bin holds Unix milliseconds.
type Point struct {
	Bin   float64 `json:"bin" bson:"bin"`
	Value float64 `json:"value" bson:"value"`
}

// TimeBin converts t into a Bin value for time-axis charts.
func TimeBin(t time.Time) float64 {
	return scale.Millis(t)
}

// Time interprets the bin as Unix milliseconds.
func (p Point) Time() time.Time {
	return scale.FromMillis(p.Bin)
}

// ValidatePoints reports NaN or infinite coordinates and bins that are not
// strictly ascending.
func ValidatePoints(data []Point) error {
	for i, p := range data {
		if !finite(p.Bin) || !finite(p.Value) {
			return errors.New(errors.ErrCodeInvalidData, "point %d is not finite: {bin: %v, value: %v}", i, p.Bin, p.Value)
		}
		if i > 0 && p.Bin <= data[i-1].Bin {
			return errors.New(errors.ErrCodeInvalidData, "bins must be strictly ascending (index %d: %v after %v)", i, p.Bin, data[i-1].Bin)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func bins(data []Point) []float64 {
	out := make([]float64, len(data))
	for i, p := range data {
		out[i] = p.Bin
	}
	return out
}

func values(data []Point) []float64 {
	out := make([]float64, len(data))
	for i, p := range data {
		out[i] = p.Value
	}
	return out
}
