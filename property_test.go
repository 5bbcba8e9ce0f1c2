package reel

import (
	"encoding/json"
	"testing"
)

func TestUpsertKeyframeKeepsOrder(t *testing.T) {
	p := Keyframed()
	p.UpsertKeyframe(Keyframe{Time: 2, Value: Number(20)})
	p.UpsertKeyframe(Keyframe{Time: 0, Value: Number(0)})
	p.UpsertKeyframe(Keyframe{Time: 1, Value: Number(10)})

	times := []float64{0, 1, 2}
	if len(p.Keyframes) != 3 {
		t.Fatalf("len = %d, want 3", len(p.Keyframes))
	}
	for i, want := range times {
		if p.Keyframes[i].Time != want {
			t.Errorf("keyframe %d at %g, want %g", i, p.Keyframes[i].Time, want)
		}
	}
}

func TestUpsertKeyframeReplacesInPlace(t *testing.T) {
	p := Keyframed(
		Keyframe{Time: 0, Value: Number(0)},
		Keyframe{Time: 1, Value: Number(10)},
	)
	p.UpsertKeyframe(Keyframe{Time: 1, Value: Number(99)})

	if len(p.Keyframes) != 2 {
		t.Fatalf("len = %d, want 2", len(p.Keyframes))
	}
	if p.Keyframes[1].Value.Num() != 99 {
		t.Errorf("value = %g, want 99", p.Keyframes[1].Value.Num())
	}
}

func TestRemoveKeyframe(t *testing.T) {
	p := Keyframed(
		Keyframe{Time: 0, Value: Number(0)},
		Keyframe{Time: 1, Value: Number(10)},
	)
	if !p.RemoveKeyframe(1) {
		t.Fatal("expected removal")
	}
	if p.RemoveKeyframe(5) {
		t.Fatal("removed a keyframe that does not exist")
	}
	if len(p.Keyframes) != 1 {
		t.Errorf("len = %d, want 1", len(p.Keyframes))
	}
}

func TestKeyframedSortsInitialList(t *testing.T) {
	p := Keyframed(
		Keyframe{Time: 3, Value: Number(3)},
		Keyframe{Time: 1, Value: Number(1)},
	)
	if p.Keyframes[0].Time != 1 {
		t.Errorf("first keyframe at %g, want 1", p.Keyframes[0].Time)
	}
	if p.Value.Num() != 1 {
		t.Errorf("fallback value = %g, want first keyframe's 1", p.Value.Num())
	}
}

func TestPropertyMapRoundTripPreservesOrder(t *testing.T) {
	m := NewPropertyMap()
	m.SetConstant("scale_x", Number(100))
	m.SetConstant("anchor_x", Number(0))
	m.Set("opacity", Keyframed(
		Keyframe{Time: 0, Value: Number(0)},
		Keyframe{Time: 1, Value: Number(100), Easing: Easing{Kind: EaseOutQuad}},
	))

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	var back PropertyMap
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}

	want := []string{"scale_x", "anchor_x", "opacity"}
	keys := back.Keys()
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}

	op, _ := back.Get("opacity")
	if op.Evaluator != EvalKeyframe || len(op.Keyframes) != 2 {
		t.Fatalf("opacity did not round trip: %+v", op)
	}
	if op.Keyframes[1].Easing.Kind != EaseOutQuad {
		t.Errorf("easing kind = %s, want %s", op.Keyframes[1].Easing.Kind, EaseOutQuad)
	}
}

func TestPropertyMapDelete(t *testing.T) {
	m := NewPropertyMap()
	m.SetConstant("a", Number(1))
	m.SetConstant("b", Number(2))
	if !m.Delete("a") {
		t.Fatal("expected delete")
	}
	if m.Len() != 1 || m.Keys()[0] != "b" {
		t.Errorf("keys = %v, want [b]", m.Keys())
	}
}
