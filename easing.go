package reel

import (
	"math"

	"github.com/tanema/gween/ease"
)

// EasingKind names an easing curve. The zero value ("") behaves as linear.
type EasingKind string

const (
	EaseLinear EasingKind = "linear"

	EaseInSine    EasingKind = "ease_in_sine"
	EaseOutSine   EasingKind = "ease_out_sine"
	EaseInOutSine EasingKind = "ease_in_out_sine"

	EaseInQuad    EasingKind = "ease_in_quad"
	EaseOutQuad   EasingKind = "ease_out_quad"
	EaseInOutQuad EasingKind = "ease_in_out_quad"

	EaseInCubic    EasingKind = "ease_in_cubic"
	EaseOutCubic   EasingKind = "ease_out_cubic"
	EaseInOutCubic EasingKind = "ease_in_out_cubic"

	EaseInQuart    EasingKind = "ease_in_quart"
	EaseOutQuart   EasingKind = "ease_out_quart"
	EaseInOutQuart EasingKind = "ease_in_out_quart"

	EaseInQuint    EasingKind = "ease_in_quint"
	EaseOutQuint   EasingKind = "ease_out_quint"
	EaseInOutQuint EasingKind = "ease_in_out_quint"

	EaseInExpo    EasingKind = "ease_in_expo"
	EaseOutExpo   EasingKind = "ease_out_expo"
	EaseInOutExpo EasingKind = "ease_in_out_expo"

	EaseInCirc    EasingKind = "ease_in_circ"
	EaseOutCirc   EasingKind = "ease_out_circ"
	EaseInOutCirc EasingKind = "ease_in_out_circ"

	EaseInBack    EasingKind = "ease_in_back"
	EaseOutBack   EasingKind = "ease_out_back"
	EaseInOutBack EasingKind = "ease_in_out_back"

	EaseInElastic    EasingKind = "ease_in_elastic"
	EaseOutElastic   EasingKind = "ease_out_elastic"
	EaseInOutElastic EasingKind = "ease_in_out_elastic"

	EaseInBounce    EasingKind = "ease_in_bounce"
	EaseOutBounce   EasingKind = "ease_out_bounce"
	EaseInOutBounce EasingKind = "ease_in_out_bounce"

	// EaseSimpleBezier is a cubic bezier with implicit (0,0) and (1,1)
	// endpoints and two control points.
	EaseSimpleBezier EasingKind = "simple_bezier"
	// EaseBezier is an N-point bezier; Points are the interior control
	// points, endpoints (0,0) and (1,1) are implicit.
	EaseBezier EasingKind = "bezier"
)

// Default shape parameters for the parameterized curve families.
const (
	defaultBackC1        = 1.70158
	defaultElasticPeriod = 0.3
	defaultBounceN1      = 7.5625
	defaultBounceD1      = 2.75
)

// gweenCurves maps the fixed-shape curve kinds onto the Penner easing
// functions from gween. The parameterized families (back, elastic, bounce,
// bezier) are computed locally because gween's versions take no shape
// parameters.
var gweenCurves = map[EasingKind]ease.TweenFunc{
	EaseLinear:     ease.Linear,
	EaseInSine:     ease.InSine,
	EaseOutSine:    ease.OutSine,
	EaseInOutSine:  ease.InOutSine,
	EaseInQuad:     ease.InQuad,
	EaseOutQuad:    ease.OutQuad,
	EaseInOutQuad:  ease.InOutQuad,
	EaseInCubic:    ease.InCubic,
	EaseOutCubic:   ease.OutCubic,
	EaseInOutCubic: ease.InOutCubic,
	EaseInQuart:    ease.InQuart,
	EaseOutQuart:   ease.OutQuart,
	EaseInOutQuart: ease.InOutQuart,
	EaseInQuint:    ease.InQuint,
	EaseOutQuint:   ease.OutQuint,
	EaseInOutQuint: ease.InOutQuint,
	EaseInExpo:     ease.InExpo,
	EaseOutExpo:    ease.OutExpo,
	EaseInOutExpo:  ease.InOutExpo,
	EaseInCirc:     ease.InCirc,
	EaseOutCirc:    ease.OutCirc,
	EaseInOutCirc:  ease.InOutCirc,
}

// Easing selects the interpolation curve for one keyframe segment. It is a
// pure function of normalized time: Apply maps [0,1] → eased progress.
// The easing stored on a keyframe shapes the segment that *starts* there.
type Easing struct {
	Kind EasingKind `json:"kind,omitempty"`

	// C1 is the overshoot amount for the back family. Zero means the
	// standard 1.70158.
	C1 float64 `json:"c1,omitempty"`
	// Period is the oscillation period for the elastic family. Zero means 0.3.
	Period float64 `json:"period,omitempty"`
	// N1 and D1 shape the bounce family. Zero means 7.5625 / 2.75.
	N1 float64 `json:"n1,omitempty"`
	D1 float64 `json:"d1,omitempty"`

	// Points are bezier control points: exactly two for simple_bezier,
	// any number of interior points for bezier.
	Points [][2]float64 `json:"points,omitempty"`
}

// Linear is the zero easing, shared for convenience.
var Linear = Easing{Kind: EaseLinear}

// Apply maps normalized segment time t in [0,1] to eased progress.
// Unknown kinds fall back to linear so a bad easing never breaks a frame.
func (e Easing) Apply(t float64) float64 {
	if e.Kind == "" || e.Kind == EaseLinear {
		return t
	}
	if fn, ok := gweenCurves[e.Kind]; ok {
		// gween curves are the classic (t, begin, change, duration) form;
		// with b=0, c=1, d=1 they reduce to progress in [0,1].
		return float64(fn(float32(t), 0, 1, 1))
	}

	switch e.Kind {
	case EaseInBack:
		c1 := nonZero(e.C1, defaultBackC1)
		c3 := c1 + 1
		return c3*t*t*t - c1*t*t
	case EaseOutBack:
		c1 := nonZero(e.C1, defaultBackC1)
		c3 := c1 + 1
		u := t - 1
		return 1 + c3*u*u*u + c1*u*u
	case EaseInOutBack:
		c1 := nonZero(e.C1, defaultBackC1)
		c2 := c1 * 1.525
		if t < 0.5 {
			return (math.Pow(2*t, 2) * ((c2+1)*2*t - c2)) / 2
		}
		return (math.Pow(2*t-2, 2)*((c2+1)*(t*2-2)+c2) + 2) / 2
	case EaseInElastic:
		if t == 0 || t == 1 {
			return t
		}
		c4 := 2 * math.Pi / nonZero(e.Period, defaultElasticPeriod)
		return -math.Pow(2, 10*t-10) * math.Sin((t*10-10.75)*c4)
	case EaseOutElastic:
		if t == 0 || t == 1 {
			return t
		}
		c4 := 2 * math.Pi / nonZero(e.Period, defaultElasticPeriod)
		return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
	case EaseInOutElastic:
		if t == 0 || t == 1 {
			return t
		}
		c5 := 2 * math.Pi / nonZero(e.Period, defaultElasticPeriod)
		if t < 0.5 {
			return -(math.Pow(2, 20*t-10) * math.Sin((20*t-11.125)*c5)) / 2
		}
		return (math.Pow(2, -20*t+10)*math.Sin((20*t-11.125)*c5))/2 + 1
	case EaseInBounce:
		return 1 - e.bounceOut(1-t)
	case EaseOutBounce:
		return e.bounceOut(t)
	case EaseInOutBounce:
		if t < 0.5 {
			return (1 - e.bounceOut(1-2*t)) / 2
		}
		return (1 + e.bounceOut(2*t-1)) / 2
	case EaseSimpleBezier:
		if len(e.Points) < 2 {
			return t
		}
		return bezierAtTime([][2]float64{{0, 0}, e.Points[0], e.Points[1], {1, 1}}, t)
	case EaseBezier:
		if len(e.Points) == 0 {
			return t
		}
		pts := make([][2]float64, 0, len(e.Points)+2)
		pts = append(pts, [2]float64{0, 0})
		pts = append(pts, e.Points...)
		pts = append(pts, [2]float64{1, 1})
		return bezierAtTime(pts, t)
	}
	return t
}

func (e Easing) bounceOut(t float64) float64 {
	n1 := nonZero(e.N1, defaultBounceN1)
	d1 := nonZero(e.D1, defaultBounceD1)
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

func nonZero(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// bezierAtTime finds the curve parameter u where the curve's y coordinate
// equals t (Newton iteration, clamped to [0,1]) and returns the x coordinate
// there. 16 iterations are enough at animation accuracy; a flat derivative
// terminates early.
func bezierAtTime(points [][2]float64, t float64) float64 {
	const (
		maxIterations = 16
		epsilon       = 1e-6
		delta         = 0.001
	)
	u := t
	for i := 0; i < maxIterations; i++ {
		_, y := evalBezier(points, u)
		if math.Abs(y-t) < epsilon {
			break
		}
		_, yPlus := evalBezier(points, u+delta)
		dy := (yPlus - y) / delta
		if math.Abs(dy) < epsilon {
			break
		}
		u -= (y - t) / dy
		u = math.Max(0, math.Min(1, u))
	}
	x, _ := evalBezier(points, u)
	return x
}

// evalBezier evaluates a bezier curve at parameter u by de Casteljau
// reduction.
func evalBezier(points [][2]float64, u float64) (x, y float64) {
	if len(points) == 1 {
		return points[0][0], points[0][1]
	}
	tmp := make([][2]float64, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		tmp[i][0] = (1-u)*points[i][0] + u*points[i+1][0]
		tmp[i][1] = (1-u)*points[i][1] + u*points[i+1][1]
	}
	return evalBezier(tmp, u)
}
