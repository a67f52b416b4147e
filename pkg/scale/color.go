package scale

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/barchart/pkg/errors"
)

// DefaultInterpolate is the color space used when none is configured.
const DefaultInterpolate = "hcl"

type blendFunc func(a, b colorful.Color, t float64) colorful.Color

var blends = map[string]blendFunc{
	"hcl":        func(a, b colorful.Color, t float64) colorful.Color { return a.BlendHcl(b, t) },
	"lab":        func(a, b colorful.Color, t float64) colorful.Color { return a.BlendLab(b, t) },
	"luv":        func(a, b colorful.Color, t float64) colorful.Color { return a.BlendLuv(b, t) },
	"rgb":        func(a, b colorful.Color, t float64) colorful.Color { return a.BlendRgb(b, t) },
	"linear-rgb": blendLinearRgb,
	"hsv":        func(a, b colorful.Color, t float64) colorful.Color { return a.BlendHsv(b, t) },
}

// blendLinearRgb mixes in gamma-decoded RGB.
func blendLinearRgb(a, b colorful.Color, t float64) colorful.Color {
	r1, g1, b1 := a.LinearRgb()
	r2, g2, b2 := b.LinearRgb()
	return colorful.LinearRgb(r1+t*(r2-r1), g1+t*(g2-g1), b1+t*(b2-b1))
}

// Sequential maps a numeric domain onto a list of colors. With more than
// two colors the domain is split into equal segments, one per color pair.
type Sequential struct {
	d0, d1 float64
	stops  []colorful.Color
	space  string
	blend  blendFunc
}

// NewSequential builds a color scale over colors (hex strings, at least two)
// interpolated in the named color space. Accepted spaces are hcl, lab, luv,
// rgb, linear-rgb and hsv; d3-style names such as "interpolateHcl" work too.
func NewSequential(colors []string, space string) (*Sequential, error) {
	if len(colors) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "color range needs at least two colors, got %d", len(colors))
	}
	if err := ValidateInterpolate(space); err != nil {
		return nil, err
	}
	name := normalizeSpace(space)
	blend := blends[name]
	stops := make([]colorful.Color, len(colors))
	for i, c := range colors {
		col, err := colorful.Hex(c)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid color %q", c)
		}
		stops[i] = col
	}
	return &Sequential{d1: 1, stops: stops, space: name, blend: blend}, nil
}

// ValidateInterpolate reports an INVALID_CONFIG error for an unknown color
// space name. The empty name means [DefaultInterpolate].
func ValidateInterpolate(space string) error {
	if _, ok := blends[normalizeSpace(space)]; !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown color interpolation %q", space)
	}
	return nil
}

func normalizeSpace(space string) string {
	s := strings.TrimSpace(space)
	if s == "" {
		return DefaultInterpolate
	}
	s = strings.TrimPrefix(s, "interpolate")
	s = strings.ToLower(s)
	if s == "linearrgb" {
		return "linear-rgb"
	}
	return s
}

// Domain returns the input domain.
func (s *Sequential) Domain() (float64, float64) { return s.d0, s.d1 }

// SetDomain sets the input domain.
func (s *Sequential) SetDomain(d0, d1 float64) { s.d0, s.d1 = d0, d1 }

// Space returns the normalized interpolation color space.
func (s *Sequential) Space() string { return s.space }

// Map returns the hex color for v. Values outside the domain clamp to the
// end colors.
func (s *Sequential) Map(v float64) string {
	t := math.Max(0, math.Min(1, normalize(s.d0, s.d1, v)))
	segments := len(s.stops) - 1
	pos := t * float64(segments)
	i := int(math.Floor(pos))
	if i >= segments {
		i = segments - 1
	}
	return s.blend(s.stops[i], s.stops[i+1], pos-float64(i)).Clamped().Hex()
}

// Clone returns an independent copy of the scale.
func (s *Sequential) Clone() *Sequential {
	c := *s
	c.stops = append([]colorful.Color(nil), s.stops...)
	return &c
}
