package reel

import (
	"math"
	"testing"
)

func numberKfs() []Keyframe {
	return []Keyframe{
		{Time: 1, Value: Number(10)},
		{Time: 3, Value: Number(30)},
	}
}

func TestInterpolateClampsOutsideRange(t *testing.T) {
	kfs := numberKfs()
	if v, _ := InterpolateKeyframes(kfs, 0); v.Num() != 10 {
		t.Errorf("before range = %g, want 10", v.Num())
	}
	if v, _ := InterpolateKeyframes(kfs, 99); v.Num() != 30 {
		t.Errorf("after range = %g, want 30", v.Num())
	}
	if v, _ := InterpolateKeyframes(kfs, 3); v.Num() != 30 {
		t.Errorf("at last = %g, want 30", v.Num())
	}
}

func TestInterpolateLinearMidpoint(t *testing.T) {
	v, ok := InterpolateKeyframes(numberKfs(), 2)
	if !ok {
		t.Fatal("expected a value")
	}
	if math.Abs(v.Num()-20) > 1e-9 {
		t.Errorf("midpoint = %g, want 20", v.Num())
	}
}

func TestInterpolateEmptyList(t *testing.T) {
	if _, ok := InterpolateKeyframes(nil, 1); ok {
		t.Fatal("expected no value from empty list")
	}
}

func TestInterpolateZeroDurationSegment(t *testing.T) {
	kfs := []Keyframe{
		{Time: 1, Value: Number(10)},
		{Time: 1, Value: Number(50)},
		{Time: 2, Value: Number(100)},
	}
	// Exactly on the duplicate time: the first of the pair wins.
	v, _ := InterpolateKeyframes(kfs, 1)
	if v.Num() != 10 {
		t.Errorf("at duplicate time = %g, want 10", v.Num())
	}
}

func TestInterpolateAppliesStartingKeyframeEasing(t *testing.T) {
	kfs := []Keyframe{
		{Time: 0, Value: Number(0), Easing: Easing{Kind: EaseInQuad}},
		{Time: 1, Value: Number(100)},
	}
	v, _ := InterpolateKeyframes(kfs, 0.5)
	if math.Abs(v.Num()-25) > 1e-6 {
		t.Errorf("eased midpoint = %g, want 25", v.Num())
	}
}

func TestInterpolateColorRoundsPerChannel(t *testing.T) {
	kfs := []Keyframe{
		{Time: 0, Value: ColorValue(Color{0, 0, 0, 255})},
		{Time: 1, Value: ColorValue(Color{255, 10, 0, 255})},
	}
	v, _ := InterpolateKeyframes(kfs, 0.5)
	c := v.Color()
	if c.R != 128 {
		t.Errorf("R = %d, want 128 (127.5 rounded)", c.R)
	}
	if c.G != 5 {
		t.Errorf("G = %d, want 5", c.G)
	}
	if c.A != 255 {
		t.Errorf("A = %d, want 255", c.A)
	}
}

func TestInterpolateVecComponentwise(t *testing.T) {
	kfs := []Keyframe{
		{Time: 0, Value: Vec2Value(0, 10)},
		{Time: 2, Value: Vec2Value(100, 20)},
	}
	v, _ := InterpolateKeyframes(kfs, 1)
	x, y := v.Vec2()
	if x != 50 || y != 15 {
		t.Errorf("vec = (%g, %g), want (50, 15)", x, y)
	}
}

func TestInterpolateArrayElementwise(t *testing.T) {
	kfs := []Keyframe{
		{Time: 0, Value: ArrayValue(Number(0), Number(100))},
		{Time: 1, Value: ArrayValue(Number(10), Number(200))},
	}
	v, _ := InterpolateKeyframes(kfs, 0.5)
	items := v.Array()
	if items[0].Num() != 5 || items[1].Num() != 150 {
		t.Errorf("array = [%g, %g], want [5, 150]", items[0].Num(), items[1].Num())
	}
}

func TestInterpolateArrayLengthMismatchSnapsToStart(t *testing.T) {
	kfs := []Keyframe{
		{Time: 0, Value: ArrayValue(Number(1))},
		{Time: 1, Value: ArrayValue(Number(2), Number(3))},
	}
	v, _ := InterpolateKeyframes(kfs, 0.5)
	if len(v.Array()) != 1 || v.Array()[0].Num() != 1 {
		t.Errorf("mismatched arrays should hold the start value, got %v", v.Array())
	}
}

func TestInterpolateMapByKey(t *testing.T) {
	from := NewValueMap()
	from.Set("radius", Number(0))
	from.Set("only_start", Number(7))
	to := NewValueMap()
	to.Set("radius", Number(10))

	kfs := []Keyframe{
		{Time: 0, Value: MapValue(from)},
		{Time: 1, Value: MapValue(to)},
	}
	v, _ := InterpolateKeyframes(kfs, 0.5)
	m := v.Map()
	if r, _ := m.Get("radius"); r.Num() != 5 {
		t.Errorf("radius = %g, want 5", r.Num())
	}
	if s, _ := m.Get("only_start"); s.Num() != 7 {
		t.Errorf("only_start = %g, want held start value 7", s.Num())
	}
}

func TestInterpolateMismatchedKindsSnapToStart(t *testing.T) {
	kfs := []Keyframe{
		{Time: 0, Value: Number(1)},
		{Time: 1, Value: String("x")},
	}
	v, _ := InterpolateKeyframes(kfs, 0.5)
	if v.Kind != KindNumber || v.Num() != 1 {
		t.Errorf("mismatched kinds = %v, want start value Number(1)", v)
	}
}

func TestInterpolateStringHoldsUntilSegmentEnd(t *testing.T) {
	kfs := []Keyframe{
		{Time: 0, Value: String("a")},
		{Time: 1, Value: String("b")},
	}
	if v, _ := InterpolateKeyframes(kfs, 0.99); v.Str() != "a" {
		t.Errorf("mid segment = %q, want a", v.Str())
	}
	if v, _ := InterpolateKeyframes(kfs, 1); v.Str() != "b" {
		t.Errorf("at end = %q, want b", v.Str())
	}
}

func TestOvershootingEasingClampsColorChannels(t *testing.T) {
	kfs := []Keyframe{
		{Time: 0, Value: ColorValue(Color{0, 0, 0, 255}), Easing: Easing{Kind: EaseOutBack}},
		{Time: 1, Value: ColorValue(Color{250, 250, 250, 255})},
	}
	// ease_out_back overshoots past 1 mid-segment; channels must clamp
	// at 255 rather than wrap.
	v, _ := InterpolateKeyframes(kfs, 0.7)
	c := v.Color()
	if c.R < 250 {
		t.Errorf("R = %d, want clamped near 255", c.R)
	}
}
