// Package ease provides named easing functions for chart transitions.
//
// Names follow the "family[-mode]" convention: the family picks the curve
// (linear, quad, cubic, poly, sin, exp, circle, elastic, back, bounce) and
// the mode picks how it is applied (in, out, in-out, out-in). A bare family
// name uses the family's default mode: "in" for the polynomial and
// trigonometric curves, "out" for elastic and bounce.
//
//	f, err := ease.Get("cubic-in-out")
//	y := f(0.25) // 0.0625
//
// Every returned function maps [0,1] onto a curve with f(0) = 0 and f(1) = 1.
// Inputs outside [0,1] are clamped.
package ease

import (
	"math"
	"sort"
	"strings"

	"github.com/matzehuels/barchart/pkg/errors"
)

// Func maps normalized time t in [0,1] to eased progress.
type Func func(t float64) float64

// Default is the easing used when none is configured.
const Default = "linear"

const (
	modeIn    = "in"
	modeOut   = "out"
	modeInOut = "in-out"
	modeOutIn = "out-in"
)

var families = map[string]Func{
	"linear":  func(t float64) float64 { return t },
	"quad":    func(t float64) float64 { return t * t },
	"cubic":   func(t float64) float64 { return t * t * t },
	"poly":    func(t float64) float64 { return math.Pow(t, 3) },
	"sin":     func(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) },
	"exp":     expIn,
	"circle":  func(t float64) float64 { return 1 - math.Sqrt(1-t*t) },
	"elastic": elasticIn,
	"back":    func(t float64) float64 { return t * t * (2.70158*t - 1.70158) },
	"bounce":  func(t float64) float64 { return 1 - bounceOut(1-t) },
}

// outByDefault lists families whose bare name means the "out" mode.
var outByDefault = map[string]bool{"elastic": true, "bounce": true}

func expIn(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*(t-1))
}

func elasticIn(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	const period = 0.45
	s := period / (2 * math.Pi) * math.Asin(1)
	return -math.Pow(2, 10*(t-1)) * math.Sin((t-1-s)*2*math.Pi/period)
}

func bounceOut(t float64) float64 {
	const (
		b1 = 4.0 / 11
		b2 = 6.0 / 11
		b3 = 8.0 / 11
		b4 = 3.0 / 4
		b5 = 9.0 / 11
		b6 = 10.0 / 11
		b7 = 15.0 / 16
		b8 = 21.0 / 22
		b9 = 63.0 / 64
		b0 = 1 / b1 / b1
	)
	switch {
	case t < b1:
		return b0 * t * t
	case t < b3:
		t -= b2
		return b0*t*t + b4
	case t < b6:
		t -= b5
		return b0*t*t + b7
	default:
		t -= b8
		return b0*t*t + b9
	}
}

func reverse(f Func) Func {
	return func(t float64) float64 { return 1 - f(1-t) }
}

func reflect(f Func) Func {
	return func(t float64) float64 {
		if t < 0.5 {
			return 0.5 * f(2*t)
		}
		return 1 - 0.5*f(2-2*t)
	}
}

func clamp(f Func) Func {
	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		return f(t)
	}
}

// Get returns the easing function registered under name.
// Names are case-insensitive; camel-case d3 names such as "easeCubicInOut"
// are accepted as well. Unknown names return an INVALID_CONFIG error.
func Get(name string) (Func, error) {
	family, mode := parse(name)
	f, ok := families[family]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown easing %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	if mode == "" {
		mode = modeIn
		if outByDefault[family] {
			mode = modeOut
		}
	}
	switch mode {
	case modeIn:
	case modeOut:
		f = reverse(f)
	case modeInOut:
		f = reflect(f)
	case modeOutIn:
		f = reflect(reverse(f))
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown easing mode %q in %q", mode, name)
	}
	return clamp(f), nil
}

// MustGet is like Get but panics on unknown names. Intended for constants.
func MustGet(name string) Func {
	f, err := Get(name)
	if err != nil {
		panic(err)
	}
	return f
}

// Names returns the known easing families in sorted order.
func Names() []string {
	names := make([]string, 0, len(families))
	for n := range families {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// parse splits "cubic-in-out" or "easeCubicInOut" into family and mode.
func parse(name string) (family, mode string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Default, ""
	}
	if strings.HasPrefix(name, "ease") && len(name) > 4 && name[4] >= 'A' && name[4] <= 'Z' {
		name = camelToKebab(name[4:])
	}
	name = strings.ToLower(name)
	family, mode, _ = strings.Cut(name, "-")
	return family, mode
}

func camelToKebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
