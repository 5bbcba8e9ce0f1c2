package reel

import (
	"math"
	"testing"
)

func TestLinearIsIdentity(t *testing.T) {
	for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if got := Linear.Apply(v); got != v {
			t.Errorf("Apply(%g) = %g, want %g", v, got, v)
		}
	}
	// The zero value behaves as linear too.
	var zero Easing
	if got := zero.Apply(0.3); got != 0.3 {
		t.Errorf("zero easing Apply(0.3) = %g, want 0.3", got)
	}
}

func TestCurvesHitEndpoints(t *testing.T) {
	kinds := []EasingKind{
		EaseInSine, EaseOutSine, EaseInOutSine,
		EaseInQuad, EaseOutQuad, EaseInOutQuad,
		EaseInCubic, EaseOutCubic, EaseInOutCubic,
		EaseInQuart, EaseOutQuart, EaseInOutQuart,
		EaseInQuint, EaseOutQuint, EaseInOutQuint,
		EaseInCirc, EaseOutCirc, EaseInOutCirc,
		EaseInBack, EaseOutBack, EaseInOutBack,
		EaseInElastic, EaseOutElastic, EaseInOutElastic,
		EaseInBounce, EaseOutBounce, EaseInOutBounce,
	}
	for _, kind := range kinds {
		e := Easing{Kind: kind}
		if got := e.Apply(0); math.Abs(got) > 0.01 {
			t.Errorf("%s: Apply(0) = %g, want ~0", kind, got)
		}
		if got := e.Apply(1); math.Abs(got-1) > 0.01 {
			t.Errorf("%s: Apply(1) = %g, want ~1", kind, got)
		}
	}
}

func TestEaseInQuadMidpoint(t *testing.T) {
	e := Easing{Kind: EaseInQuad}
	if got := e.Apply(0.5); math.Abs(got-0.25) > 0.001 {
		t.Errorf("Apply(0.5) = %g, want 0.25", got)
	}
}

func TestBackOvershoots(t *testing.T) {
	e := Easing{Kind: EaseOutBack}
	overshot := false
	for v := 0.05; v < 1; v += 0.05 {
		if e.Apply(v) > 1 {
			overshot = true
			break
		}
	}
	if !overshot {
		t.Error("ease_out_back never exceeded 1")
	}

	// A larger C1 overshoots further.
	big := Easing{Kind: EaseOutBack, C1: 4}
	if big.Apply(0.7) <= e.Apply(0.7) {
		t.Error("larger C1 should overshoot more at t=0.7")
	}
}

func TestBounceOutKneePoints(t *testing.T) {
	e := Easing{Kind: EaseOutBounce}
	// First knee: t = 1/2.75 lands exactly on n1*t^2.
	knee := 1 / 2.75
	want := 7.5625 * knee * knee
	if got := e.Apply(knee); math.Abs(got-want) > 1e-9 {
		t.Errorf("Apply(%g) = %g, want %g", knee, got, want)
	}
}

func TestSimpleBezierEndpoints(t *testing.T) {
	e := Easing{Kind: EaseSimpleBezier, Points: [][2]float64{{0.42, 0}, {0.58, 1}}}
	if got := e.Apply(0); math.Abs(got) > 0.01 {
		t.Errorf("Apply(0) = %g, want ~0", got)
	}
	if got := e.Apply(1); math.Abs(got-1) > 0.01 {
		t.Errorf("Apply(1) = %g, want ~1", got)
	}
	// Symmetric ease-in-out passes through the midpoint.
	if got := e.Apply(0.5); math.Abs(got-0.5) > 0.01 {
		t.Errorf("Apply(0.5) = %g, want ~0.5", got)
	}
}

func TestBezierWithTooFewPointsFallsBackToLinear(t *testing.T) {
	e := Easing{Kind: EaseSimpleBezier}
	if got := e.Apply(0.3); got != 0.3 {
		t.Errorf("Apply(0.3) = %g, want 0.3", got)
	}
}

func TestUnknownKindFallsBackToLinear(t *testing.T) {
	e := Easing{Kind: "wobble"}
	if got := e.Apply(0.4); got != 0.4 {
		t.Errorf("Apply(0.4) = %g, want 0.4", got)
	}
}
