package reel

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
)

// countingEvaluator counts Evaluate calls to observe memoization.
type countingEvaluator struct {
	calls atomic.Int64
}

func (c *countingEvaluator) Handles() []string { return []string{"counting."} }

func (c *countingEvaluator) Evaluate(nodeID uuid.UUID, pin string, ctx *EvalContext) (PinValue, error) {
	c.calls.Add(1)
	return ScalarPin(7), nil
}

func TestEvaluatePinMemoizesWithinPass(t *testing.T) {
	p, comp, _ := testComposition()
	counter := &countingEvaluator{}
	evals, err := NewEvaluatorSet(counter)
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(EngineConfig{
		Renderer:   &fakeRenderer{},
		Source:     &fakeSource{},
		Evaluators: evals,
		Log:        quietLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}

	node := &GraphNode{ID: newTestID(), TypeID: "counting.node", Properties: NewPropertyMap()}
	p.AddNode(node)

	ctx := e.Context(p, comp, 0)
	for i := 0; i < 5; i++ {
		v, err := ctx.EvaluatePin(node.ID, "out")
		if err != nil {
			t.Fatal(err)
		}
		if v.AsScalar(0) != 7 {
			t.Fatalf("value = %v, want 7", v)
		}
	}
	if got := counter.calls.Load(); got != 1 {
		t.Errorf("evaluator ran %d times, want 1 (memoized)", got)
	}

	// A fresh context re-evaluates.
	ctx2 := e.Context(p, comp, 0)
	if _, err := ctx2.EvaluatePin(node.ID, "out"); err != nil {
		t.Fatal(err)
	}
	if got := counter.calls.Load(); got != 2 {
		t.Errorf("evaluator ran %d times across two passes, want 2", got)
	}
}

func TestEvaluatePinUnknownNode(t *testing.T) {
	p, comp, _ := testComposition()
	e := testEngine(&fakeRenderer{}, &fakeSource{})
	ctx := e.Context(p, comp, 0)
	if _, err := ctx.EvaluatePin(newTestID(), PinImageOut); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("err = %v, want ErrNodeNotFound", err)
	}
}

func TestEvaluatePinNoEvaluator(t *testing.T) {
	p, comp, _ := testComposition()
	e := testEngine(&fakeRenderer{}, &fakeSource{})
	node := &GraphNode{ID: newTestID(), TypeID: "unknown.kind", Properties: NewPropertyMap()}
	p.AddNode(node)
	ctx := e.Context(p, comp, 0)
	if _, err := ctx.EvaluatePin(node.ID, PinImageOut); !errors.Is(err, ErrNoEvaluator) {
		t.Errorf("err = %v, want ErrNoEvaluator", err)
	}
}

func TestCorruptedCyclicGraphReturnsError(t *testing.T) {
	p, comp, _ := testComposition()
	e := testEngine(&fakeRenderer{}, &fakeSource{})
	types := BuiltinTypes()
	a, _ := NewGraphNode(types, "effect.blur", "a")
	b, _ := NewGraphNode(types, "effect.glow", "b")
	p.AddNode(a)
	p.AddNode(b)
	// Bypass the store's validation to build a cycle by hand.
	connect(p, a, PinImageOut, b, PinImageIn)
	connect(p, b, PinImageOut, a, PinImageIn)

	ctx := e.Context(p, comp, 0)
	if _, err := ctx.EvaluatePin(a.ID, PinImageOut); !errors.Is(err, ErrCycle) {
		t.Errorf("err = %v, want ErrCycle (not a hang)", err)
	}
}

func TestPullInputValueUsesDeclaredDefault(t *testing.T) {
	p, comp, _ := testComposition()
	e := testEngine(&fakeRenderer{}, &fakeSource{})
	add, err := NewGraphNode(BuiltinTypes(), "math.multiply", "mul")
	if err != nil {
		t.Fatal(err)
	}
	p.AddNode(add)
	ctx := e.Context(p, comp, 0)

	// math.multiply declares a=1 as default.
	v, err := ctx.PullInputValue(add.ID, "a")
	if err != nil {
		t.Fatal(err)
	}
	if v.AsScalar(0) != 1 {
		t.Errorf("unconnected a = %v, want declared default 1", v)
	}

	// An undeclared pin is None, not an error.
	v, err = ctx.PullInputValue(add.ID, "nope")
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsNone() {
		t.Errorf("undeclared pin = %v, want None", v)
	}
}

func TestPrefixOverlapRejected(t *testing.T) {
	if _, err := NewEvaluatorSet(EffectEvaluator{}, EffectEvaluator{}); err == nil {
		t.Error("duplicate prefix registration should fail")
	}
	_, err := NewEvaluatorSet(TransformEvaluator{}, prefixEvaluator{prefix: "compositing."})
	if err == nil {
		t.Error("overlapping prefixes should fail")
	}
}

type prefixEvaluator struct{ prefix string }

func (p prefixEvaluator) Handles() []string { return []string{p.prefix} }

func (p prefixEvaluator) Evaluate(nodeID uuid.UUID, pin string, ctx *EvalContext) (PinValue, error) {
	return NonePin(), nil
}

func TestResolveHelpersFallBackToDefaults(t *testing.T) {
	p, comp, _ := testComposition()
	e := testEngine(&fakeRenderer{}, &fakeSource{})
	ctx := e.Context(p, comp, 0)

	props := NewPropertyMap()
	props.SetConstant("n", Number(5))
	if got := ctx.ResolveNumber(props, "n", -1); got != 5 {
		t.Errorf("n = %g, want 5", got)
	}
	if got := ctx.ResolveNumber(props, "missing", -1); got != -1 {
		t.Errorf("missing = %g, want default -1", got)
	}
	if got := ctx.ResolveString(props, "missing", "d"); got != "d" {
		t.Errorf("missing string = %q, want d", got)
	}
}
