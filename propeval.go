package reel

import (
	"log/slog"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// EvalInfo carries the time context a property evaluator samples at.
type EvalInfo struct {
	// Time in seconds from composition start.
	Time float64
	// Frame index at the composition's fps.
	Frame int
	// FPS of the composition being evaluated.
	FPS float64
}

// PropertyEvaluator produces the current value of a property at a point in
// time. Evaluators must be pure with respect to (property, info): the memo
// cache assumes the same inputs give the same value within a pass.
type PropertyEvaluator interface {
	Evaluate(p *Property, info EvalInfo) PropertyValue
}

// PropertyEvaluatorFunc adapts a function to PropertyEvaluator.
type PropertyEvaluatorFunc func(p *Property, info EvalInfo) PropertyValue

// Evaluate calls f.
func (f PropertyEvaluatorFunc) Evaluate(p *Property, info EvalInfo) PropertyValue {
	return f(p, info)
}

// PropertyEvaluators dispatches property evaluation by the property's
// Evaluator key. Unknown keys degrade to the property's static value (warn
// logged) rather than failing the frame.
type PropertyEvaluators struct {
	mu     sync.RWMutex
	byName map[string]PropertyEvaluator
	log    *slog.Logger
}

// NewPropertyEvaluators returns a registry with the built-in constant,
// keyframe and expression evaluators installed. A nil logger uses
// slog.Default.
func NewPropertyEvaluators(log *slog.Logger) *PropertyEvaluators {
	if log == nil {
		log = slog.Default()
	}
	r := &PropertyEvaluators{
		byName: make(map[string]PropertyEvaluator),
		log:    log,
	}
	r.Register(EvalConstant, PropertyEvaluatorFunc(evalConstant))
	r.Register(EvalKeyframe, PropertyEvaluatorFunc(evalKeyframe))
	r.Register(EvalExpression, newExpressionEvaluator(log))
	return r
}

// Register installs or replaces an evaluator under name.
func (r *PropertyEvaluators) Register(name string, ev PropertyEvaluator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[name] = ev
}

// Evaluate resolves p at info. A nil property yields Number(0). An empty
// evaluator key means constant.
func (r *PropertyEvaluators) Evaluate(p *Property, info EvalInfo) PropertyValue {
	if p == nil {
		return Number(0)
	}
	name := p.Evaluator
	if name == "" {
		name = EvalConstant
	}
	r.mu.RLock()
	ev, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		r.log.Warn("unknown property evaluator, yielding zero", "evaluator", name)
		return p.Value.Zero()
	}
	return ev.Evaluate(p, info)
}

func evalConstant(p *Property, _ EvalInfo) PropertyValue {
	return p.Value
}

func evalKeyframe(p *Property, info EvalInfo) PropertyValue {
	if v, ok := InterpolateKeyframes(p.Keyframes, info.Time); ok {
		return v
	}
	return p.Value
}

// expressionEvaluator compiles property expressions with expr and caches the
// compiled programs by source text. The environment exposes t, time, frame
// and fps. Any compile or runtime failure logs and yields zero.
type expressionEvaluator struct {
	mu       sync.Mutex
	programs map[string]*vm.Program
	log      *slog.Logger
}

func newExpressionEvaluator(log *slog.Logger) *expressionEvaluator {
	return &expressionEvaluator{
		programs: make(map[string]*vm.Program),
		log:      log,
	}
}

func (e *expressionEvaluator) Evaluate(p *Property, info EvalInfo) PropertyValue {
	if p.Expression == "" {
		return p.Value
	}
	prog, err := e.compile(p.Expression)
	if err != nil {
		e.log.Warn("expression compile failed", "expression", p.Expression, "error", err)
		return p.Value.Zero()
	}
	env := map[string]any{
		"t":     info.Time,
		"time":  info.Time,
		"frame": info.Frame,
		"fps":   info.FPS,
	}
	out, err := expr.Run(prog, env)
	if err != nil {
		e.log.Warn("expression eval failed", "expression", p.Expression, "error", err)
		return p.Value.Zero()
	}
	switch v := out.(type) {
	case float64:
		return Number(v)
	case float32:
		return Number(float64(v))
	case int:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case bool:
		return Boolean(v)
	case string:
		return String(v)
	}
	e.log.Warn("expression yielded unsupported type", "expression", p.Expression)
	return p.Value.Zero()
}

func (e *expressionEvaluator) compile(src string) (*vm.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if prog, ok := e.programs[src]; ok {
		return prog, nil
	}
	prog, err := expr.Compile(src, expr.Env(map[string]any{
		"t":     float64(0),
		"time":  float64(0),
		"frame": 0,
		"fps":   float64(0),
	}))
	if err != nil {
		return nil, err
	}
	e.programs[src] = prog
	return prog, nil
}
