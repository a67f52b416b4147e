package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/barchart/pkg/scene"
)

// DefaultKeyframes is the number of eased steps written per animation.
const DefaultKeyframes = 12

const chartCSS = `
    .barchart text { font: 10px sans-serif; fill: #444; }
    .axis path, .axis line { fill: none; stroke: #999; shape-rendering: crispEdges; }
    .column { fill: #f4f4f4; }
    .bar { fill: #4c8eda; }
    .bar.active { filter: brightness(1.15); }
    .overlay { fill: transparent; cursor: crosshair; }`

const pointerJS = `
    const svg = document.currentScript ? document.currentScript.closest('svg') : document.querySelector('svg.barchart');
    const state = JSON.parse(svg.querySelector('.pointer-state').textContent);
    const plot = svg.querySelector('.plot');
    function invert(px) {
      const [d0, d1] = state.domain, [r0, r1] = state.range;
      if (r1 === r0) return (d0 + d1) / 2;
      return d0 + (px - r0) / (r1 - r0) * (d1 - d0);
    }
    function nearest(px) {
      const v = invert(px);
      let lo = 0, hi = state.bins.length;
      while (lo < hi) { const mid = (lo + hi) >>> 1; if (state.bins[mid] < v) lo = mid + 1; else hi = mid; }
      return lo === 0 ? null : { bin: state.bins[lo - 1], value: state.values[lo - 1] };
    }
    function highlight(bin) {
      svg.querySelectorAll('.bar').forEach(b => b.classList.toggle('active', b.dataset.bin === String(bin)));
    }
    let active = null;
    svg.addEventListener('mousemove', evt => {
      const pt = svg.createSVGPoint();
      pt.x = evt.clientX; pt.y = evt.clientY;
      const local = pt.matrixTransform(plot.getScreenCTM().inverse());
      const d = nearest(local.x);
      highlight(d ? d.bin : null);
      if (d) {
        active = d.bin;
        svg.dispatchEvent(new CustomEvent('barchart:mouseover', { detail: d, bubbles: true }));
      } else if (active !== null) {
        active = null;
        svg.dispatchEvent(new CustomEvent('barchart:mouseout', { bubbles: true }));
      }
    });
    svg.addEventListener('mouseleave', () => {
      active = null;
      highlight(null);
      svg.dispatchEvent(new CustomEvent('barchart:mouseout', { bubbles: true }));
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interaction bool
	animate     bool
	keyframes   int
	title       string
	css         string
}

// WithInteraction embeds the pointer state and a script that tracks the
// pointer over the whole svg element. It dispatches barchart:mouseover with
// the nearest point while the pointer moves, and barchart:mouseout when it
// leaves the svg or no point precedes it.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interaction = true } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithStyle appends CSS to the default stylesheet.
func WithStyle(css string) SVGOption { return func(r *svgRenderer) { r.css = css } }

// WithoutAnimation writes final geometry only, ignoring pending transitions.
func WithoutAnimation() SVGOption { return func(r *svgRenderer) { r.animate = false } }

// WithKeyframes sets how many eased steps each animation is sampled at.
func WithKeyframes(n int) SVGOption {
	return func(r *svgRenderer) {
		if n > 0 {
			r.keyframes = n
		}
	}
}

// RenderSVG serializes a surface. Shapes and ticks with a pending
// transition are written at their final geometry plus SMIL animations that
// play the eased change once on load.
func RenderSVG(s *scene.Surface, opts ...SVGOption) []byte {
	r := svgRenderer{animate: true, keyframes: DefaultKeyframes}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" class="barchart" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		escapeXML(s.ID), num(s.Width), num(s.Height), num(s.Width), num(s.Height))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s%s\n  </style>\n", chartCSS, r.css)
	if r.interaction && s.Pointer != nil {
		fmt.Fprintf(&buf, `  <rect class="pointer-surface" x="0" y="0" width="%s" height="%s" fill="transparent" pointer-events="all"/>`+"\n",
			num(s.Width), num(s.Height))
	}

	fmt.Fprintf(&buf, `  <g class="plot" transform="translate(%s,%s)">`+"\n", num(s.OffsetX), num(s.OffsetY))
	for _, a := range s.Axes {
		r.renderAxis(&buf, a)
	}
	for _, l := range s.Layers {
		r.renderLayer(&buf, l)
	}
	buf.WriteString("  </g>\n")

	if r.interaction && s.Pointer != nil {
		renderPointerScript(&buf, s.Pointer)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderLayer(buf *bytes.Buffer, l *scene.Layer) {
	fmt.Fprintf(buf, `    <g class="layer-%s">`+"\n", escapeXML(l.Name))
	tr := l.Transition
	if !r.animate {
		tr = nil
	}
	for _, sh := range l.Shapes {
		rect := clampRect(sh.Rect)
		fmt.Fprintf(buf, `      <rect class="%s" data-bin="%s" data-value="%s" x="%s" y="%s" width="%s" height="%s"`,
			escapeXML(sh.Class), scene.KeyOf(sh.Bin), num(sh.Value), num(rect.X), num(rect.Y), num(rect.W), num(rect.H))
		if sh.Radius > 0 {
			fmt.Fprintf(buf, ` rx="%s" ry="%s"`, num(sh.Radius), num(sh.Radius))
		}
		if sh.Fill != "" {
			fmt.Fprintf(buf, ` style="fill:%s"`, escapeXML(sh.Fill))
		}
		if sh.Opacity != 1 {
			fmt.Fprintf(buf, ` fill-opacity="%s"`, num(sh.Opacity))
		}

		if tr == nil || sh.From == nil || tr.Duration <= 0 {
			buf.WriteString("/>\n")
			continue
		}
		buf.WriteString(">\n")
		from := clampRect(*sh.From)
		r.writeAnimate(buf, tr, "x", from.X, rect.X)
		r.writeAnimate(buf, tr, "y", from.Y, rect.Y)
		r.writeAnimate(buf, tr, "width", from.W, rect.W)
		r.writeAnimate(buf, tr, "height", from.H, rect.H)
		buf.WriteString("      </rect>\n")
	}
	buf.WriteString("    </g>\n")
}

func (r *svgRenderer) renderAxis(buf *bytes.Buffer, a *scene.Axis) {
	tr := a.Transition
	if !r.animate || (tr != nil && tr.Duration <= 0) {
		tr = nil
	}
	k, size, pad := 1.0, a.TickSize, a.TickPadding
	r0, r1 := a.Range[0], a.Range[1]

	switch a.Orient {
	case scene.Left:
		k = -1
		fmt.Fprintf(buf, `    <g class="%s axis" transform="translate(%s,0)" text-anchor="end">`+"\n", escapeXML(a.Name), num(a.Offset))
		fmt.Fprintf(buf, `      <path class="domain" d="M%s,%sH0.5V%sH%s"/>`+"\n", num(k*size), num(r0), num(r1), num(k*size))
	default:
		fmt.Fprintf(buf, `    <g class="%s axis" transform="translate(0,%s)" text-anchor="middle">`+"\n", escapeXML(a.Name), num(a.Offset))
		fmt.Fprintf(buf, `      <path class="domain" d="M%s,%sV0.5H%sV%s"/>`+"\n", num(r0), num(k*size), num(r1), num(k*size))
	}

	for _, t := range a.Ticks {
		translate := func(pos float64) string {
			if a.Orient == scene.Left {
				return "0," + num(pos)
			}
			return num(pos) + ",0"
		}
		fmt.Fprintf(buf, `      <g class="tick" transform="translate(%s)">`, translate(t.Pos))
		if a.Orient == scene.Left {
			fmt.Fprintf(buf, `<line x2="%s"/><text x="%s" dy="0.32em">%s</text>`, num(-size), num(-(size + pad)), escapeXML(t.Label))
		} else {
			fmt.Fprintf(buf, `<line y2="%s"/><text y="%s" dy="0.71em">%s</text>`, num(size), num(size+pad), escapeXML(t.Label))
		}
		if tr != nil {
			if t.From != nil {
				fmt.Fprintf(buf, `<animateTransform attributeName="transform" type="translate" dur="%s" values="%s" keyTimes="%s" fill="freeze"/>`,
					dur(tr.Duration), r.translateValues(tr, *t.From, t.Pos, translate), r.keyTimes())
			}
			if t.Entered {
				fmt.Fprintf(buf, `<animate attributeName="opacity" dur="%s" values="%s" keyTimes="%s" fill="freeze"/>`,
					dur(tr.Duration), r.values(tr, 0, 1), r.keyTimes())
			}
		}
		buf.WriteString("</g>\n")
	}
	buf.WriteString("    </g>\n")
}

func (r *svgRenderer) writeAnimate(buf *bytes.Buffer, tr *scene.Transition, attr string, from, to float64) {
	if from == to {
		return
	}
	fmt.Fprintf(buf, `        <animate attributeName="%s" dur="%s" values="%s" keyTimes="%s" fill="freeze"/>`+"\n",
		attr, dur(tr.Duration), r.values(tr, from, to), r.keyTimes())
}

// values samples the eased path from a to b.
func (r *svgRenderer) values(tr *scene.Transition, a, b float64) string {
	samples := tr.Sample(r.keyframes)
	parts := make([]string, len(samples))
	for i, p := range samples {
		parts[i] = num(a + (b-a)*p)
	}
	return strings.Join(parts, ";")
}

func (r *svgRenderer) translateValues(tr *scene.Transition, a, b float64, translate func(float64) string) string {
	samples := tr.Sample(r.keyframes)
	parts := make([]string, len(samples))
	for i, p := range samples {
		parts[i] = strings.Replace(translate(a+(b-a)*p), ",", " ", 1)
	}
	return strings.Join(parts, ";")
}

func (r *svgRenderer) keyTimes() string {
	parts := make([]string, r.keyframes+1)
	for i := range parts {
		parts[i] = num(float64(i) / float64(r.keyframes))
	}
	return strings.Join(parts, ";")
}

type pointerState struct {
	Bins   []float64  `json:"bins"`
	Values []float64  `json:"values"`
	Domain [2]float64 `json:"domain"`
	Range  [2]float64 `json:"range"`
}

func renderPointerScript(buf *bytes.Buffer, p *scene.Pointer) {
	state, _ := json.Marshal(pointerState{Bins: p.Bins, Values: p.Values, Domain: p.Domain, Range: p.Range})
	fmt.Fprintf(buf, "  <script type=\"application/json\" class=\"pointer-state\"><![CDATA[%s]]></script>\n", state)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", pointerJS)
}

func clampRect(r scene.Rect) scene.Rect {
	if r.W < 0 {
		r.W = 0
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// num formats a coordinate with at most three decimals.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func dur(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
