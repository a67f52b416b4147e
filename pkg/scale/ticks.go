package scale

import (
	"math"
	"strconv"
	"strings"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// TickIncrement returns the tick step for roughly count ticks over
// [start, stop], assuming start <= stop. Positive results are the step
// itself; negative results -k mean a step of 1/k, which keeps fractional
// steps exact.
func TickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / math.Max(0, float64(count))
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// TickStep returns the absolute tick step for roughly count ticks between
// start and stop, in either order.
func TickStep(start, stop float64, count int) float64 {
	step0 := math.Abs(stop-start) / math.Max(0, float64(count))
	step1 := math.Pow(10, math.Floor(math.Log10(step0)))
	errRatio := step0 / step1
	switch {
	case errRatio >= e10:
		step1 *= 10
	case errRatio >= e5:
		step1 *= 5
	case errRatio >= e2:
		step1 *= 2
	}
	if stop < start {
		return -step1
	}
	return step1
}

// Ticks returns roughly count+1 uniformly spaced, nicely rounded values
// between start and stop inclusive.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	step := TickIncrement(start, stop, count)
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return nil
	}

	var ticks []float64
	if step > 0 {
		r0, r1 := math.Ceil(start/step), math.Floor(stop/step)
		for r := r0; r <= r1; r++ {
			ticks = append(ticks, r*step)
		}
	} else {
		step = -step
		r0, r1 := math.Ceil(start*step), math.Floor(stop*step)
		for r := r0; r <= r1; r++ {
			ticks = append(ticks, r/step)
		}
	}

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// niceBounds extends [start, stop] outward to multiples of the tick step.
// It iterates because widening the bounds can change the step.
func niceBounds(start, stop float64, count int) (float64, float64) {
	var prestep float64
	for i := 0; i < 10; i++ {
		step := TickIncrement(start, stop, count)
		switch {
		case step == prestep:
			return start, stop
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return start, stop
		}
		prestep = step
	}
	return start, stop
}

// precisionFixed returns the number of decimals needed to print multiples of step.
func precisionFixed(step float64) int {
	step = math.Abs(step)
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return 0
	}
	// Round the exponent so 0.1 (0.1000000000000000055...) yields 1.
	p := -int(math.Floor(math.Log10(step) + 1e-9))
	if p < 0 {
		return 0
	}
	return p
}

// FormatNumber prints v with prec decimals and comma thousands separators.
func FormatNumber(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}
	if hasFrac {
		intPart += "." + frac
	}
	if neg && strings.Trim(intPart, "0.,") != "" {
		intPart = "-" + intPart
	}
	return intPart
}
