package reel

import (
	"io"
	"log/slog"
	"math"
	"testing"
)

func quietEvaluators() *PropertyEvaluators {
	return NewPropertyEvaluators(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestConstantEvaluator(t *testing.T) {
	r := quietEvaluators()
	v := r.Evaluate(Constant(Number(42)), EvalInfo{Time: 7})
	if v.Num() != 42 {
		t.Errorf("constant = %g, want 42", v.Num())
	}
}

func TestKeyframeEvaluator(t *testing.T) {
	r := quietEvaluators()
	p := Keyframed(
		Keyframe{Time: 0, Value: Number(0)},
		Keyframe{Time: 2, Value: Number(100)},
	)
	v := r.Evaluate(p, EvalInfo{Time: 1})
	if math.Abs(v.Num()-50) > 1e-9 {
		t.Errorf("keyframed = %g, want 50", v.Num())
	}
}

func TestExpressionEvaluator(t *testing.T) {
	r := quietEvaluators()
	p := Expression("t * 2 + 1")
	v := r.Evaluate(p, EvalInfo{Time: 3})
	if math.Abs(v.Num()-7) > 1e-9 {
		t.Errorf("expression = %g, want 7", v.Num())
	}
}

func TestExpressionSeesFrameAndFPS(t *testing.T) {
	r := quietEvaluators()
	p := Expression("frame / fps")
	v := r.Evaluate(p, EvalInfo{Frame: 30, FPS: 60})
	if math.Abs(v.Num()-0.5) > 1e-9 {
		t.Errorf("frame/fps = %g, want 0.5", v.Num())
	}
}

func TestExpressionFailureYieldsZero(t *testing.T) {
	r := quietEvaluators()
	p := Expression("nonsense +")
	p.Value = Number(5)
	v := r.Evaluate(p, EvalInfo{Time: 1})
	if v.Kind != KindNumber || v.Num() != 0 {
		t.Errorf("failed expression = %v, want Number(0)", v)
	}
}

func TestUnknownEvaluatorYieldsZero(t *testing.T) {
	r := quietEvaluators()
	p := &Property{Evaluator: "plugin.missing", Value: Number(9)}
	v := r.Evaluate(p, EvalInfo{})
	if v.Kind != KindNumber || v.Num() != 0 {
		t.Errorf("unknown evaluator = %v, want Number(0)", v)
	}

	// The zero is type appropriate, not always numeric.
	s := &Property{Evaluator: "plugin.missing", Value: String("hi")}
	if v := r.Evaluate(s, EvalInfo{}); v.Kind != KindString || v.Str() != "" {
		t.Errorf("unknown evaluator on string = %v, want empty String", v)
	}
}

func TestRegisterPluginEvaluator(t *testing.T) {
	r := quietEvaluators()
	r.Register("doubler", PropertyEvaluatorFunc(func(p *Property, info EvalInfo) PropertyValue {
		return Number(p.Value.Num() * 2)
	}))
	p := &Property{Evaluator: "doubler", Value: Number(21)}
	if v := r.Evaluate(p, EvalInfo{}); v.Num() != 42 {
		t.Errorf("plugin evaluator = %g, want 42", v.Num())
	}
}

func TestNilPropertyYieldsZero(t *testing.T) {
	r := quietEvaluators()
	if v := r.Evaluate(nil, EvalInfo{}); v.Num() != 0 {
		t.Errorf("nil property = %v, want Number(0)", v)
	}
}
